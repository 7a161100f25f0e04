package fat16

import (
	"errors"
	"io"
	"os"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/aligator/fat16/checkpoint"
	"github.com/spf13/afero"
)

// These errors may occur while using the filesystem facade.
var (
	ErrReadOnly     = errors.New("the filesystem is read-only")
	ErrOpenFile     = errors.New("could not open the file")
	ErrNotADir      = errors.New("not a directory")
	ErrEntryMissing = errors.New("no such file or directory")
)

// Fs is a read-only afero.Fs over a single FAT16 Image.
//
// The Image shares one read cursor for everything, so Fs serializes all
// operations with its own lock. Do not bypass it by using the wrapped Image
// concurrently.
type Fs struct {
	lock sync.Mutex
	img  *Image
}

// New opens a FAT16 filesystem from the given reader. The boot sector is
// validated; use NewSkipChecks for images which fail these checks.
func New(reader io.ReadSeeker) (*Fs, error) {
	img, err := NewImageStrict(reader)
	if err != nil {
		return nil, checkpoint.From(err)
	}

	return &Fs{img: img}, nil
}

// NewSkipChecks opens a FAT16 filesystem without any boot sector validation.
// A short boot sector read leaves the missing fields zero instead of failing.
// Use with caution!
func NewSkipChecks(reader io.ReadSeeker) (*Fs, error) {
	return &Fs{img: NewImage(reader)}, nil
}

// Image returns the underlying parsing session.
func (fs *Fs) Image() *Image {
	return fs.img
}

// Label returns the volume label.
func (fs *Fs) Label() string {
	return fs.img.Label()
}

// FSType returns the filesystem identifier from the boot sector.
func (fs *Fs) FSType() string {
	return fs.img.FSType()
}

// collect enumerates one directory into independent Entry values. Deleted
// records, dot records and the volume label are filtered out; an unused
// record ends the directory.
func (fs *Fs) collect(entry Entry) []Entry {
	var result []Entry

	for fs.img.NextEntry(&entry) {
		switch entry.Short.Kind() {
		case KindUnused:
			return result
		case KindDeleted, KindDirectory:
			continue
		}

		if entry.Short.IsVolumeLabel() {
			continue
		}

		result = append(result, entry.clone())
	}

	return result
}

func (fs *Fs) readRoot() ([]Entry, error) {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	return fs.collect(Entry{}), nil
}

func (fs *Fs) readDir(cluster ClusterID) ([]Entry, error) {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	return fs.collect(Entry{root: cluster}), nil
}

// readFileAt reads up to readSize bytes of file content starting at offset.
// Reads beyond fileSize are clamped and reported with io.EOF.
func (fs *Fs) readFileAt(cluster ClusterID, fileSize int64, offset int64, readSize int64) ([]byte, error) {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	if offset >= fileSize {
		return nil, io.EOF
	}

	truncated := false
	if offset+readSize > fileSize {
		readSize = fileSize - offset
		truncated = true
	}

	buf := make([]byte, readSize)
	n := fs.img.ReadFromCluster(buf, uint32(offset), cluster)
	if int64(n) < readSize {
		return buf[:n], io.ErrUnexpectedEOF
	}

	if truncated {
		return buf, io.EOF
	}
	return buf, nil
}

// normalizePath strips the path down to its slash-separated components.
// An empty result addresses the root directory.
func normalizePath(path string) string {
	path = strings.ReplaceAll(path, "\\", "/")
	path = strings.Trim(path, "/")
	if path == "." {
		return ""
	}
	return path
}

// findEntry resolves a normalized, non-empty path to its directory entry.
// Lookup is case-insensitive, as FAT names are.
func (fs *Fs) findEntry(path string) (Entry, error) {
	parts := strings.Split(path, "/")

	entries, err := fs.readRoot()
	if err != nil {
		return Entry{}, err
	}

	var found *Entry
	for i, part := range parts {
		found = nil
		for j := range entries {
			if strings.EqualFold(entries[j].Filename(), part) {
				found = &entries[j]
				break
			}
		}

		if found == nil {
			return Entry{}, checkpoint.Wrap(os.ErrNotExist, ErrEntryMissing)
		}

		if i < len(parts)-1 {
			if !found.Short.IsDirectory() {
				return Entry{}, checkpoint.Wrap(syscall.ENOTDIR, ErrNotADir)
			}

			entries, err = fs.readDir(found.Short.StartingCluster)
			if err != nil {
				return Entry{}, err
			}
		}
	}

	return *found, nil
}

// rootFileInfo is the synthetic stat result for the root directory, which has
// no directory entry of its own.
type rootFileInfo struct {
	label string
}

func (r rootFileInfo) Name() string       { return r.label }
func (r rootFileInfo) Size() int64        { return 0 }
func (r rootFileInfo) Mode() os.FileMode  { return os.ModeDir }
func (r rootFileInfo) ModTime() time.Time { return time.Time{} }
func (r rootFileInfo) IsDir() bool        { return true }
func (r rootFileInfo) Sys() interface{}   { return nil }

// Open opens the file or directory at the given slash-separated path.
// The empty path, "/" and "." address the root directory.
func (fs *Fs) Open(name string) (afero.File, error) {
	path := normalizePath(name)
	if path == "" {
		return &File{
			fs:          fs,
			path:        "",
			isDirectory: true,
			stat:        rootFileInfo{label: fs.Label()},
		}, nil
	}

	entry, err := fs.findEntry(path)
	if err != nil {
		return nil, checkpoint.Wrap(err, ErrOpenFile)
	}

	return &File{
		fs:           fs,
		path:         path,
		isDirectory:  entry.Short.IsDirectory(),
		isReadOnly:   entry.Short.IsReadOnly(),
		isHidden:     entry.Short.IsHidden(),
		isSystem:     entry.Short.IsSystem(),
		firstCluster: entry.Short.StartingCluster,
		stat:         entry.FileInfo(),
	}, nil
}

// OpenFile opens the given path like Open. Any writing flag fails because the
// filesystem is read-only.
func (fs *Fs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if flag&(os.O_WRONLY|os.O_RDWR|os.O_APPEND|os.O_CREATE|os.O_TRUNC) != 0 {
		return nil, checkpoint.Wrap(syscall.EPERM, ErrReadOnly)
	}

	return fs.Open(name)
}

// Stat returns the FileInfo of the file or directory at the given path.
func (fs *Fs) Stat(name string) (os.FileInfo, error) {
	path := normalizePath(name)
	if path == "" {
		return rootFileInfo{label: fs.Label()}, nil
	}

	entry, err := fs.findEntry(path)
	if err != nil {
		return nil, err
	}

	return entry.FileInfo(), nil
}

// Name returns the name of this filesystem implementation.
func (fs *Fs) Name() string {
	return "fat16"
}

func (fs *Fs) Create(name string) (afero.File, error) {
	return nil, checkpoint.Wrap(syscall.EPERM, ErrReadOnly)
}

func (fs *Fs) Mkdir(name string, perm os.FileMode) error {
	return checkpoint.Wrap(syscall.EPERM, ErrReadOnly)
}

func (fs *Fs) MkdirAll(path string, perm os.FileMode) error {
	return checkpoint.Wrap(syscall.EPERM, ErrReadOnly)
}

func (fs *Fs) Remove(name string) error {
	return checkpoint.Wrap(syscall.EPERM, ErrReadOnly)
}

func (fs *Fs) RemoveAll(path string) error {
	return checkpoint.Wrap(syscall.EPERM, ErrReadOnly)
}

func (fs *Fs) Rename(oldname, newname string) error {
	return checkpoint.Wrap(syscall.EPERM, ErrReadOnly)
}

func (fs *Fs) Chmod(name string, mode os.FileMode) error {
	return checkpoint.Wrap(syscall.EPERM, ErrReadOnly)
}

func (fs *Fs) Chown(name string, uid, gid int) error {
	return checkpoint.Wrap(syscall.EPERM, ErrReadOnly)
}

func (fs *Fs) Chtimes(name string, atime time.Time, mtime time.Time) error {
	return checkpoint.Wrap(syscall.EPERM, ErrReadOnly)
}
