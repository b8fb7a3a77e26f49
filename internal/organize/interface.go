package organize

import (
	"imgsort/internal/catalog"
	"imgsort/internal/history"
	"imgsort/pkg/types"
)

// Sorter defines the sort engine operations the shells drive.
// This allows for dependency injection in tests and other parts of the application
type Sorter interface {
	// OpenSourceFolder replaces the pending queue with the images in dir
	OpenSourceFolder(dir string) error

	// SetDestination assigns a directory to a category slot
	SetDestination(s types.Slot, dir string)

	// Destination returns the directory assigned to a slot
	Destination(s types.Slot) string

	// SortTo moves the current image to the directory of slot s
	SortTo(s types.Slot) (*history.Action, error)

	// DeleteCurrent moves the current image to the trash
	DeleteCurrent() (*history.Action, error)

	// Undo reverses the most recent action
	Undo() (*history.Action, error)

	Catalog() *catalog.Catalog
	Current() (string, bool)
	Remaining() int
	Source() string
	LastAction() (history.Action, bool)

	CanSort(s types.Slot) bool
	CanDelete() bool
	CanUndo() bool
}

// Ensure Engine implements the Sorter interface
var _ Sorter = (*Engine)(nil)
