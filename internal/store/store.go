// Package store provides the persistence boundary of the finance engine.
// The engine operates on the in-memory FinanceState a Store hands it and
// writes a full replacement document back; retry and backoff policy belong
// to the backend, not the engine.
package store

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"lifequest/finance-engine/internal/models"
)

// ErrNotFound is returned by Load when no document exists for the user key.
var ErrNotFound = errors.New("finance state not found")

// Store is the document-store capability the engine requires.
type Store interface {
	// Load reads the full finance document for a user key. It returns
	// ErrNotFound (possibly wrapped) when the user has no document yet.
	Load(ctx context.Context, userKey string) (models.FinanceState, error)

	// Save replaces the full finance document for a user key.
	Save(ctx context.Context, userKey string, state models.FinanceState) error
}

// Lister is implemented by backends that can enumerate stored user keys,
// which batch reconciliation needs.
type Lister interface {
	UserKeys(ctx context.Context) ([]string, error)
}

var log = logrus.New()

// SetLogger allows setting a custom logger for the store backends.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}
