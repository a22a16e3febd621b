package appcontext

import "time"

// Config is read from the environment, after an optional .env file.
type Config struct {
	Environment    string   `env:"ENVIRONMENT" envDefault:"development"`
	Port           int      `env:"PORT" envDefault:"8888"`
	DatabaseURL    string   `env:"DATABASE_URL" envDefault:"sqlite://data/data_redmane.db"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
	LogLevel       string   `env:"LOG_LEVEL" envDefault:"info"`

	DBMaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"10"`
	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"100"`
	DBConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"1h"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
