package organize

import (
	"os"
	"path/filepath"
	"unicode/utf8"

	"imgsort/internal/catalog"
	"imgsort/internal/config"
	"imgsort/internal/errors"
	"imgsort/internal/history"
	"imgsort/internal/log"
	"imgsort/internal/trash"
	"imgsort/pkg/types"
)

// Options tunes how the engine treats its queue
type Options struct {
	// KeepScanOrder keeps the pending queue in directory order instead of
	// swapping the last image to the front on every pop.
	KeepScanOrder bool
	// RequeueOnFailure puts an image back at the head of the queue when its
	// move or delete fails. When false the image is dropped from the queue.
	RequeueOnFailure bool
}

// DefaultOptions returns the options used when no config is given
func DefaultOptions() Options {
	return Options{RequeueOnFailure: true}
}

// Engine owns the pending queue, the undo history and the destination slots,
// and is the only thing that mutates queue and history together.
type Engine struct {
	catalog      *catalog.Catalog
	history      *history.Log
	destinations [types.NumSlots]string
	trash        trash.Storage
	opts         Options
	source       string
}

// New creates an engine with an empty queue
func New(store trash.Storage, opts Options) *Engine {
	e := &Engine{
		history: history.New(),
		trash:   store,
		opts:    opts,
	}
	e.catalog = catalog.New(nil, e.catalogOptions()...)
	return e
}

// NewWithConfig creates an engine whose options and destinations come from cfg
func NewWithConfig(cfg *config.Config, store trash.Storage) *Engine {
	e := New(store, Options{
		KeepScanOrder:    cfg.Settings.KeepScanOrder,
		RequeueOnFailure: cfg.Settings.RequeueOnFailure,
	})
	for _, s := range types.Slots {
		e.destinations[s] = cfg.Destination(s)
	}
	return e
}

func (e *Engine) catalogOptions() []catalog.Option {
	if e.opts.KeepScanOrder {
		return []catalog.Option{catalog.WithScanOrder()}
	}
	return nil
}

// OpenSourceFolder replaces the queue with the images in dir and starts a new
// undo history. A failed open leaves both untouched.
func (e *Engine) OpenSourceFolder(dir string) error {
	c, err := catalog.Load(dir, e.catalogOptions()...)
	if err != nil {
		return err
	}
	if !e.history.IsEmpty() {
		log.LogWithFields(log.F("discarded", e.history.Len())).Debug("Undo history cleared")
	}
	e.catalog = c
	e.history = history.New()
	e.source = dir
	return nil
}

// Source returns the folder last opened
func (e *Engine) Source() string {
	return e.source
}

// SetDestination assigns dir to slot s. An empty dir clears the slot.
func (e *Engine) SetDestination(s types.Slot, dir string) {
	if !s.Valid() {
		return
	}
	e.destinations[s] = dir
	log.LogWithFields(log.F("slot", s.String()), log.F("directory", dir)).Debug("Destination set")
}

// Destination returns the directory assigned to slot s
func (e *Engine) Destination(s types.Slot) string {
	if !s.Valid() {
		return ""
	}
	return e.destinations[s]
}

// Catalog exposes the pending queue for read-only use
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Current returns the image on screen
func (e *Engine) Current() (string, bool) {
	return e.catalog.PeekHead()
}

// Remaining returns the number of pending images
func (e *Engine) Remaining() int {
	return e.catalog.Len()
}

// LastAction returns the action Undo would reverse
func (e *Engine) LastAction() (history.Action, bool) {
	return e.history.Last()
}

// CanSort reports whether slot s has an existing directory and an image is pending
func (e *Engine) CanSort(s types.Slot) bool {
	return !e.catalog.IsEmpty() && isDir(e.Destination(s))
}

// CanDelete reports whether an image is pending
func (e *Engine) CanDelete() bool {
	return !e.catalog.IsEmpty()
}

// CanUndo reports whether there is an action to reverse
func (e *Engine) CanUndo() bool {
	return !e.history.IsEmpty()
}

// SortTo moves the current image into the directory of slot s. It returns
// (nil, nil) when there is nothing to sort or the slot is unusable.
func (e *Engine) SortTo(s types.Slot) (*history.Action, error) {
	if !e.CanSort(s) {
		log.LogWithFields(log.F("slot", s.String())).Debug("Sort ignored")
		return nil, nil
	}
	if err := e.checkHead(); err != nil {
		return nil, err
	}

	src := e.take()
	target := filepath.Join(e.destinations[s], filepath.Base(src))

	if err := moveFile(src, target); err != nil {
		e.failed(src, err, log.F("slot", s.String()), log.F("target", target))
		return nil, err
	}
	e.commit()

	action := history.NewMove(src, target)
	e.history.Record(action)
	log.LogWithFields(
		log.F("slot", s.String()),
		log.F("source", src),
		log.F("target", target),
		log.F("remaining", e.catalog.Len()),
	).Info("Sorted image")
	return &action, nil
}

// DeleteCurrent sends the current image to the trash
func (e *Engine) DeleteCurrent() (*history.Action, error) {
	if !e.CanDelete() {
		log.Debug("Delete ignored: catalog is empty")
		return nil, nil
	}
	if e.trash == nil {
		return nil, errors.Io("no trash configured", "", nil)
	}
	if err := e.checkHead(); err != nil {
		return nil, err
	}

	src := e.take()
	entry, err := e.trash.Put(src)
	if err != nil {
		e.failed(src, err)
		return nil, err
	}
	e.commit()

	action := history.NewDelete(src, entry.Name)
	e.history.Record(action)
	log.LogWithFields(
		log.F("source", src),
		log.F("trash_name", entry.Name),
		log.F("remaining", e.catalog.Len()),
	).Info("Deleted image")
	return &action, nil
}

// Undo reverses the most recent action. The action is consumed even when the
// reversal fails.
func (e *Engine) Undo() (*history.Action, error) {
	action, ok := e.history.PopLast()
	if !ok {
		log.Debug("Undo ignored: nothing to undo")
		return nil, nil
	}

	var err error
	switch action.Kind {
	case history.Move:
		err = moveFile(action.Destination, action.Source)
	case history.Delete:
		err = e.restore(action)
	default:
		err = errors.Newf("unknown action kind %s", action.Kind)
	}
	if err != nil {
		log.LogWithError(err).With(log.F("action", action.String())).Warn("Undo failed; action discarded")
		return nil, err
	}

	e.catalog.PushFront(action.Source)
	log.LogWithFields(
		log.F("action", action.Kind.String()),
		log.F("source", action.Source),
		log.F("remaining", e.catalog.Len()),
	).Info("Undid action")
	return &action, nil
}

func (e *Engine) restore(action history.Action) error {
	if e.trash == nil {
		return errors.Io("no trash configured", action.Source, nil)
	}
	entry, err := e.trash.Find(action.Source)
	if err != nil {
		return err
	}
	return e.trash.Restore(entry, action.Source)
}

// checkHead rejects a head path that is not valid text before anything is popped.
func (e *Engine) checkHead() error {
	head, _ := e.catalog.PeekHead()
	if !utf8.ValidString(head) {
		return errors.NewFileError("path is not valid UTF-8", head, errors.PathEncoding, nil)
	}
	return nil
}

// take returns the head for a move or delete. With requeueing on, the head
// stays queued until commit, so a failure leaves the queue order unchanged.
// Otherwise it is popped right away and lost if the operation fails.
func (e *Engine) take() string {
	if e.opts.RequeueOnFailure {
		head, _ := e.catalog.PeekHead()
		return head
	}
	head, _ := e.catalog.PopHead()
	return head
}

// commit removes the head taken by take once its operation succeeded
func (e *Engine) commit() {
	if e.opts.RequeueOnFailure {
		e.catalog.PopHead()
	}
}

func (e *Engine) failed(src string, err error, fields ...log.Field) {
	fields = append(fields, log.F("source", src), log.F("requeued", e.opts.RequeueOnFailure))
	log.LogWithError(err).With(fields...).Warn("Operation failed")
}

// moveFile renames src to dest. It never replaces an existing file.
func moveFile(src, dest string) error {
	cleanSrc := filepath.Clean(src)
	cleanDest := filepath.Clean(dest)

	if cleanSrc == cleanDest {
		return errors.Io("source and destination are the same", cleanSrc, nil)
	}

	srcInfo, err := os.Stat(cleanSrc)
	if err != nil {
		return errors.Io("source file error", cleanSrc, err)
	}
	if srcInfo.IsDir() {
		return errors.Io("cannot move directory as file", cleanSrc, nil)
	}

	if _, err := os.Lstat(cleanDest); err == nil {
		return errors.Io("destination already exists", cleanDest, os.ErrExist)
	} else if !os.IsNotExist(err) {
		return errors.Io("error checking destination", cleanDest, err)
	}

	log.Debugf("Moving %s to %s", cleanSrc, cleanDest)
	if err := os.Rename(cleanSrc, cleanDest); err != nil {
		return errors.Io("failed to move file", cleanSrc, err)
	}
	return nil
}

func isDir(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
