package gui

import (
	"imgsort/internal/config"
	"imgsort/internal/session"
)

// Interface defines the contract for GUI operations
type Interface interface {
	Run()
	ShowError(title string, err error)
	ShowInfo(message string)
}

// Factory creates GUI instances
type Factory struct {
	config  *config.Config
	session *session.Session
}

// NewFactory creates a new GUI factory
func NewFactory(cfg *config.Config, sess *session.Session) *Factory {
	return &Factory{
		config:  cfg,
		session: sess,
	}
}
