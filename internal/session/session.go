// Package session is the contract between the sort engine and the shells.
// A shell forwards folder choices, controls and its viewport size; it gets
// back a Snapshot to draw after every call.
package session

import (
	"fmt"
	"image"
	"path/filepath"

	"imgsort/internal/analysis"
	"imgsort/internal/config"
	"imgsort/internal/history"
	"imgsort/internal/log"
	"imgsort/internal/organize"
	"imgsort/internal/preview"
	"imgsort/pkg/types"
)

// Snapshot is everything a shell needs to redraw
type Snapshot struct {
	Bitmap       image.Image
	Current      string
	Remaining    int
	Source       string
	Destinations [types.NumSlots]string
	CanSort      [types.NumSlots]bool
	CanDelete    bool
	CanUndo      bool
	Status       string
	Info         *analysis.Info
}

// Session drives one Sorter on behalf of a shell
type Session struct {
	engine    organize.Sorter
	pipeline  *preview.Pipeline
	inspector *analysis.Engine
	cfg       *config.Config
	cfgPath   string

	viewW, viewH int
	status       string
}

// Option configures a Session
type Option func(*Session)

// WithConfigPath lets the session write chosen folders back to path when
// settings.remember is on.
func WithConfigPath(path string) Option {
	return func(s *Session) {
		s.cfgPath = path
	}
}

// New creates a session around engine, sized to the configured preview viewport
func New(cfg *config.Config, engine organize.Sorter, opts ...Option) *Session {
	if cfg == nil {
		cfg = config.New()
	}
	s := &Session{
		engine:    engine,
		pipeline:  preview.New(),
		inspector: analysis.New(),
		cfg:       cfg,
		viewW:     cfg.Preview.Width,
		viewH:     cfg.Preview.Height,
		status:    "Open a folder to start",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Engine returns the sorter behind the session
func (s *Session) Engine() organize.Sorter {
	return s.engine
}

// Viewport returns the size previews are fitted to
func (s *Session) Viewport() (int, int) {
	return s.viewW, s.viewH
}

// Open loads dir as the source folder
func (s *Session) Open(dir string) (Snapshot, error) {
	if err := s.engine.OpenSourceFolder(dir); err != nil {
		s.status = "Cannot open " + dir
		return s.Snapshot(), err
	}
	s.status = fmt.Sprintf("Opened %s", dir)
	s.cfg.Directories.Source = dir
	s.remember()
	return s.refresh()
}

// SetDestination assigns dir to slot
func (s *Session) SetDestination(slot types.Slot, dir string) (Snapshot, error) {
	if !slot.Valid() {
		return s.Snapshot(), nil
	}
	s.engine.SetDestination(slot, dir)
	s.cfg.SetDestination(slot, dir)
	s.status = fmt.Sprintf("%s set to %s", slot, dir)
	s.remember()
	return s.Snapshot(), nil
}

// Handle performs a sort, delete or undo. Other controls belong to the shell
// and leave the state untouched.
func (s *Session) Handle(c types.Control) (Snapshot, error) {
	var (
		action *history.Action
		err    error
	)

	switch c {
	case types.ControlSortOne, types.ControlSortTwo, types.ControlSortThree:
		slot, _ := c.SortSlot()
		action, err = s.engine.SortTo(slot)
	case types.ControlDelete:
		action, err = s.engine.DeleteCurrent()
	case types.ControlUndo:
		action, err = s.engine.Undo()
	default:
		log.LogWithFields(log.F("control", c.String())).Debug("Control not handled by session")
		return s.Snapshot(), nil
	}

	if err != nil {
		snap, _ := s.refresh()
		s.status = "Error: " + err.Error()
		snap.Status = s.status
		return snap, err
	}
	if action == nil {
		return s.Snapshot(), nil
	}
	s.status = s.describe(c, action)
	return s.refresh()
}

// Resize changes the viewport and re-renders the current image
func (s *Session) Resize(w, h int) (Snapshot, error) {
	if w < 1 || h < 1 || (w == s.viewW && h == s.viewH) {
		return s.Snapshot(), nil
	}
	s.viewW, s.viewH = w, h
	return s.refresh()
}

// Snapshot returns the current state without rendering
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Bitmap:    s.pipeline.Current(),
		Remaining: s.engine.Remaining(),
		Source:    s.engine.Source(),
		CanDelete: s.engine.CanDelete(),
		CanUndo:   s.engine.CanUndo(),
		Status:    s.status,
	}
	snap.Current, _ = s.engine.Current()
	for _, slot := range types.Slots {
		snap.Destinations[slot] = s.engine.Destination(slot)
		snap.CanSort[slot] = s.engine.CanSort(slot)
	}
	if snap.Current != "" {
		if info, err := s.inspector.Inspect(snap.Current); err == nil {
			snap.Info = info
		}
	}
	return snap
}

// refresh re-renders the head of the queue. A failed render keeps the
// previous bitmap and is reported alongside the snapshot.
func (s *Session) refresh() (Snapshot, error) {
	_, err := s.pipeline.RenderHead(s.engine.Catalog(), s.viewW, s.viewH)
	if err != nil {
		s.status = "Cannot preview: " + err.Error()
	}
	return s.Snapshot(), err
}

func (s *Session) describe(c types.Control, a *history.Action) string {
	name := filepath.Base(a.Source)
	left := s.engine.Remaining()
	switch {
	case c == types.ControlUndo:
		return fmt.Sprintf("Undid %s of %s (%d left)", a.Kind, name, left)
	case a.Kind == history.Move:
		slot, _ := c.SortSlot()
		return fmt.Sprintf("Moved %s to %s (%d left)", name, slot, left)
	default:
		return fmt.Sprintf("Deleted %s (%d left)", name, left)
	}
}

func (s *Session) remember() {
	if !s.cfg.Settings.Remember || s.cfgPath == "" {
		return
	}
	if err := config.SaveConfig(s.cfg, s.cfgPath); err != nil {
		log.LogWithError(err).Warn("Could not save folders to config")
	}
}
