package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"lifequest/finance-engine/internal/models"
)

// YAMLStore keeps one YAML document per user key under a directory.
type YAMLStore struct {
	Directory string
}

// NewYAMLStore creates a YAML-backed store rooted at the given directory.
func NewYAMLStore(directory string) *YAMLStore {
	return &YAMLStore{Directory: directory}
}

func (s *YAMLStore) path(userKey string) string {
	return filepath.Join(s.Directory, userKey+".yaml")
}

// Load reads and decodes the user's document. A missing file maps to
// ErrNotFound so callers can start from an empty state.
func (s *YAMLStore) Load(ctx context.Context, userKey string) (models.FinanceState, error) {
	if err := ctx.Err(); err != nil {
		return models.FinanceState{}, err
	}

	data, err := os.ReadFile(s.path(userKey))
	if err != nil {
		if os.IsNotExist(err) {
			return models.FinanceState{}, ErrNotFound
		}
		return models.FinanceState{}, fmt.Errorf("error reading finance document: %w", err)
	}

	var state models.FinanceState
	if err := yaml.Unmarshal(data, &state); err != nil {
		return models.FinanceState{}, fmt.Errorf("error parsing finance document: %w", err)
	}

	state.EnsureInitialized()
	log.WithField("user", userKey).Debug("Loaded finance document")
	return state, nil
}

// Save writes the full document, creating the directory if needed.
func (s *YAMLStore) Save(ctx context.Context, userKey string, state models.FinanceState) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(s.Directory, 0750); err != nil {
		return fmt.Errorf("error creating data directory: %w", err)
	}

	data, err := yaml.Marshal(state)
	if err != nil {
		return fmt.Errorf("error marshaling finance document: %w", err)
	}

	if err := os.WriteFile(s.path(userKey), data, 0644); err != nil {
		return fmt.Errorf("error writing finance document: %w", err)
	}

	log.WithField("user", userKey).Debug("Saved finance document")
	return nil
}

// UserKeys lists the user keys that have a stored document.
func (s *YAMLStore) UserKeys(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.Directory)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error listing data directory: %w", err)
	}

	var keys []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".yaml") {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, ".yaml"))
	}
	sort.Strings(keys)
	return keys, nil
}
