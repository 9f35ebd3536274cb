package service

import (
	"errors"

	"github.com/realbLanK993/water/internal/db"
)

// Failures are wrapped with one of these so callers can branch with errors.Is.
var (
	ErrStorageUnavailable = db.ErrUnavailable
	ErrReadFailed         = errors.New("read failed")
	ErrWriteFailed        = errors.New("write failed")
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("invalid input")
	ErrCooldown           = errors.New("cooldown active")
)
