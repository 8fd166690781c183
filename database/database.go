package database

import (
	"sync/atomic"

	"github.com/rs/zerolog"

	"retailbrain/models"
)

// Store holds the current dataset snapshot. Replacing the dataset swaps a
// pointer, so readers always see one complete snapshot for the whole call.
type Store struct {
	current atomic.Pointer[models.Dataset]
	log     zerolog.Logger
}

// NewStore creates an empty store.
func NewStore(log zerolog.Logger) *Store {
	return &Store{log: log}
}

// Replace installs ds as the current dataset.
func (s *Store) Replace(ds *models.Dataset) {
	prev := s.current.Swap(ds)
	ev := s.log.Info().Str("dataset_id", ds.ID).Int("rows", ds.Len()).Strs("columns", ds.Columns)
	if prev != nil {
		ev = ev.Str("replaced", prev.ID)
	}
	ev.Msg("Dataset loaded")
}

// Current returns the loaded dataset, or false before the first upload.
func (s *Store) Current() (*models.Dataset, bool) {
	ds := s.current.Load()
	return ds, ds != nil
}

// Clear drops the loaded dataset.
func (s *Store) Clear() {
	if prev := s.current.Swap(nil); prev != nil {
		s.log.Info().Str("dataset_id", prev.ID).Msg("Dataset cleared")
	}
}
