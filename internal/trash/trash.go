// Package trash moves files into the desktop trash and brings them back,
// using the freedesktop.org home trash layout.
package trash

import (
	"time"
)

// Entry is one file sitting in the trash
type Entry struct {
	// Name is the file name under the trash "files" directory
	Name string
	// OriginalPath is where the file lived before it was trashed
	OriginalPath string
	DeletedAt    time.Time
	// Path is the file's current location inside the trash
	Path string
}

// Storage defines the operations the sort engine needs from a trash
type Storage interface {
	// Put moves the file at src into the trash
	Put(src string) (*Entry, error)

	// List returns every entry currently in the trash
	List() ([]*Entry, error)

	// Find returns the most recent entry that was trashed from original
	Find(original string) (*Entry, error)

	// Restore moves entry back out of the trash. An empty dst restores it to
	// its original path.
	Restore(entry *Entry, dst string) error
}
