package common

import (
	"imgsort/internal/session"
	"imgsort/internal/tui/styles"
	"imgsort/pkg/types"
)

type Mode int

const (
	Normal Mode = iota
	Command
)

// ModelReader defines the interface that views use to read model state
type ModelReader interface {
	Snapshot() session.Snapshot
	Mode() Mode
	CommandView() string
	HelpView() string
	Keys() types.KeyMap
	Size() (width, height int)
	Err() error
	Theme() styles.Theme
	ImageView() string
	StatusView() string
}
