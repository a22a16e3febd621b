package utils

import (
	"errors"

	"github.com/zeebo/errs"
	"gorm.io/gorm"
)

var (
	// ErrNotFound marks a missing entity or parent entity.
	ErrNotFound = errs.Class("not found")
	// ErrStorage wraps any database failure.
	ErrStorage = errs.Class("storage")
)

// storageErr classifies a gorm error, turning a record miss into ErrNotFound
// described by what.
func storageErr(err error, what string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound.New(what, args...)
	}
	if ErrNotFound.Has(err) || ErrStorage.Has(err) {
		return err
	}
	return ErrStorage.Wrap(err)
}
