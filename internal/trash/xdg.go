package trash

import (
	"bufio"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"imgsort/internal/errors"
	"imgsort/internal/log"
)

const (
	infoSuffix  = ".trashinfo"
	infoHeader  = "[Trash Info]"
	deletionFmt = "2006-01-02T15:04:05"
	maxAttempts = 10000
)

// XDG is a home trash laid out as <root>/files and <root>/info.
type XDG struct {
	root string
}

var _ Storage = (*XDG)(nil)

// DefaultRoot returns $XDG_DATA_HOME/Trash, falling back to ~/.local/share/Trash.
func DefaultRoot() (string, error) {
	if data := os.Getenv("XDG_DATA_HOME"); data != "" {
		return filepath.Join(data, "Trash"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Io("cannot locate home directory", "", err)
	}
	return filepath.Join(home, ".local", "share", "Trash"), nil
}

// NewXDG opens the trash rooted at root, or the default home trash when root is empty.
func NewXDG(root string) (*XDG, error) {
	if root == "" {
		var err error
		root, err = DefaultRoot()
		if err != nil {
			return nil, err
		}
	}
	return &XDG{root: root}, nil
}

// Root returns the trash directory
func (x *XDG) Root() string {
	return x.root
}

func (x *XDG) filesDir() string { return filepath.Join(x.root, "files") }
func (x *XDG) infoDir() string  { return filepath.Join(x.root, "info") }

func (x *XDG) ensureDirs() error {
	for _, dir := range []string{x.filesDir(), x.infoDir()} {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return errors.Io("cannot create trash directory", dir, err)
		}
	}
	return nil
}

// Put moves src into the trash. The info file is created first with O_EXCL,
// which reserves the name against concurrent trashers.
func (x *XDG) Put(src string) (*Entry, error) {
	abs, err := filepath.Abs(src)
	if err != nil {
		return nil, errors.Io("cannot resolve path", src, err)
	}
	if _, err := os.Lstat(abs); err != nil {
		return nil, errors.Io("cannot trash file", abs, err)
	}
	if err := x.ensureDirs(); err != nil {
		return nil, err
	}

	now := time.Now()
	name, infoFile, err := x.reserve(filepath.Base(abs))
	if err != nil {
		return nil, err
	}
	_, werr := fmt.Fprintf(infoFile, "%s\nPath=%s\nDeletionDate=%s\n",
		infoHeader, escapePath(abs), now.Format(deletionFmt))
	cerr := infoFile.Close()
	infoPath := filepath.Join(x.infoDir(), name+infoSuffix)
	if werr != nil || cerr != nil {
		os.Remove(infoPath)
		if werr == nil {
			werr = cerr
		}
		return nil, errors.Io("cannot write trash info", infoPath, werr)
	}

	dst := filepath.Join(x.filesDir(), name)
	if err := moveFile(abs, dst); err != nil {
		os.Remove(infoPath)
		return nil, errors.Io("cannot move file to trash", abs, err)
	}

	log.LogWithFields(log.F("source", abs), log.F("name", name)).Debug("Trashed file")
	return &Entry{Name: name, OriginalPath: abs, DeletedAt: now, Path: dst}, nil
}

// reserve picks an unused name and creates its info file exclusively.
func (x *XDG) reserve(base string) (string, *os.File, error) {
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	for i := 0; i < maxAttempts; i++ {
		name := base
		if i > 0 {
			name = fmt.Sprintf("%s.%d%s", stem, i, ext)
		}
		if _, err := os.Lstat(filepath.Join(x.filesDir(), name)); err == nil {
			continue
		}
		infoPath := filepath.Join(x.infoDir(), name+infoSuffix)
		f, err := os.OpenFile(infoPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
		if err == nil {
			return name, f, nil
		}
		if !os.IsExist(err) {
			return "", nil, errors.Io("cannot create trash info", infoPath, err)
		}
	}
	return "", nil, errors.Io("no free trash name", base, nil)
}

// List returns trash entries ordered by deletion time, newest first.
// Info files without a matching trashed file are skipped.
func (x *XDG) List() ([]*Entry, error) {
	infos, err := os.ReadDir(x.infoDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Io("cannot read trash", x.infoDir(), err)
	}

	var entries []*Entry
	for _, info := range infos {
		if info.IsDir() || !strings.HasSuffix(info.Name(), infoSuffix) {
			continue
		}
		name := strings.TrimSuffix(info.Name(), infoSuffix)
		entry, err := x.readInfo(name)
		if err != nil {
			log.LogWithError(err).Debug("Skipping unreadable trash info")
			continue
		}
		if _, err := os.Lstat(entry.Path); err != nil {
			continue
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].DeletedAt.After(entries[j].DeletedAt)
	})
	return entries, nil
}

func (x *XDG) readInfo(name string) (*Entry, error) {
	infoPath := filepath.Join(x.infoDir(), name+infoSuffix)
	f, err := os.Open(infoPath)
	if err != nil {
		return nil, errors.Io("cannot open trash info", infoPath, err)
	}
	defer f.Close()

	entry := &Entry{Name: name, Path: filepath.Join(x.filesDir(), name)}
	scanner := bufio.NewScanner(f)
	inSection := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "[") {
			inSection = line == infoHeader
			continue
		}
		if !inSection {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		switch key {
		case "Path":
			p, err := url.PathUnescape(value)
			if err != nil {
				return nil, errors.Io("bad Path in trash info", infoPath, err)
			}
			entry.OriginalPath = filepath.FromSlash(p)
		case "DeletionDate":
			if t, err := time.ParseInLocation(deletionFmt, value, time.Local); err == nil {
				entry.DeletedAt = t
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Io("cannot read trash info", infoPath, err)
	}
	if entry.OriginalPath == "" {
		return nil, errors.Io("trash info has no Path", infoPath, nil)
	}
	return entry, nil
}

// Find returns the newest entry trashed from exactly original. When none
// matches exactly, the newest entry whose original path ends in the same file
// name is used instead.
func (x *XDG) Find(original string) (*Entry, error) {
	entries, err := x.List()
	if err != nil {
		return nil, err
	}

	for _, e := range entries {
		if e.OriginalPath == original {
			return e, nil
		}
	}
	suffix := string(filepath.Separator) + filepath.Base(original)
	for _, e := range entries {
		if strings.HasSuffix(e.OriginalPath, suffix) {
			return e, nil
		}
	}
	return nil, errors.NewFileError("no trash entry for file", original, errors.NotInTrash, nil)
}

// Restore moves entry out of the trash and removes its info file. It never
// overwrites an existing file at the destination.
func (x *XDG) Restore(entry *Entry, dst string) error {
	if entry == nil {
		return errors.NewFileError("no trash entry to restore", dst, errors.NotInTrash, nil)
	}
	if dst == "" {
		dst = entry.OriginalPath
	}
	if _, err := os.Lstat(dst); err == nil {
		return errors.Io("restore target already exists", dst, os.ErrExist)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return errors.Io("cannot recreate parent directory", filepath.Dir(dst), err)
	}
	if err := moveFile(entry.Path, dst); err != nil {
		return errors.Io("cannot restore from trash", entry.Path, err)
	}

	infoPath := filepath.Join(x.infoDir(), entry.Name+infoSuffix)
	if err := os.Remove(infoPath); err != nil && !os.IsNotExist(err) {
		log.LogWithError(err).Warn("Restored file but could not remove trash info")
	}
	log.LogWithFields(log.F("name", entry.Name), log.F("target", dst)).Debug("Restored file from trash")
	return nil
}

func escapePath(p string) string {
	return (&url.URL{Path: filepath.ToSlash(p)}).EscapedPath()
}

// rename and remove are swapped out by tests to force the cross-device path
var (
	rename = os.Rename
	remove = os.Remove
)

// moveFile renames src to dst, copying across filesystems. Only one of the two
// paths exists when it returns.
func moveFile(src, dst string) error {
	err := rename(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return err
	}
	if err := copyFile(src, dst); err != nil {
		return err
	}
	if err := remove(src); err != nil {
		remove(dst)
		return err
	}
	return nil
}

func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	info, err := srcFile.Stat()
	if err != nil {
		return err
	}

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		remove(dst)
		return err
	}
	if err := dstFile.Close(); err != nil {
		remove(dst)
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
