package database

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"retailbrain/models"
)

func TestStoreReplaceAndClear(t *testing.T) {
	store := NewStore(zerolog.Nop())

	_, ok := store.Current()
	assert.False(t, ok)

	first := models.NewDataset("first", []string{"a"}, nil)
	store.Replace(first)
	got, ok := store.Current()
	assert.True(t, ok)
	assert.Same(t, first, got)

	second := models.NewDataset("second", []string{"a"}, [][]models.Value{{models.Number(1)}})
	store.Replace(second)
	got, _ = store.Current()
	assert.Same(t, second, got)
	// Readers holding the old snapshot keep a consistent view.
	assert.Equal(t, 0, first.Len())

	store.Clear()
	_, ok = store.Current()
	assert.False(t, ok)
}
