package organize

import (
	"imgsort/internal/config"
	"imgsort/internal/trash"
)

// SorterFactory is a function that creates a Sorter from config
// This allows for dependency injection in tests
type SorterFactory func(cfg *config.Config) (Sorter, error)

// DefaultSorterFactory creates an engine backed by the configured trash
var DefaultSorterFactory SorterFactory = func(cfg *config.Config) (Sorter, error) {
	store, err := trash.NewXDG(cfg.Trash.Dir)
	if err != nil {
		return nil, err
	}
	return NewWithConfig(cfg, store), nil
}

// CurrentSorterFactory is the currently active factory
// This can be swapped in tests
var CurrentSorterFactory = DefaultSorterFactory

// SetSorterFactory sets a custom sorter factory for dependency injection
func SetSorterFactory(factory SorterFactory) {
	CurrentSorterFactory = factory
}

// ResetSorterFactory resets to the default sorter factory
func ResetSorterFactory() {
	CurrentSorterFactory = DefaultSorterFactory
}
