package repository

import (
	"errors"

	"github.com/okian/scout/internal/domain/model"
)

// Sentinel kinds for store errors.
var (
	ErrInvalidObservation = model.ErrInvalidObservation
	ErrDatabaseExists     = errors.New("database already exists")
	ErrDatabaseNotFound   = errors.New("database not found")
	ErrClosed             = errors.New("store is closed")
)
