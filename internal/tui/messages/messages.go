package messages

import (
	"imgsort/pkg/types"
)

type ErrorMsg struct {
	Err error
}

// DirectoryChangeMsg asks the model to open Path as the source folder
type DirectoryChangeMsg struct {
	Path string
}

// DestinationMsg assigns Path to Slot
type DestinationMsg struct {
	Slot types.Slot
	Path string
}
