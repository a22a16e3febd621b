package appcontext

import (
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Context struct {
	Config *Config
	DB     *gorm.DB
	Logger *zap.Logger
}
