package fat16

import (
	"errors"
	"io"
	"io/fs"
)

// GoDirEntry adapts an os.FileInfo to fs.DirEntry.
type GoDirEntry struct {
	fs.FileInfo
}

func (g GoDirEntry) Type() fs.FileMode {
	return g.FileInfo.Mode().Type()
}

func (g GoDirEntry) Info() (fs.FileInfo, error) {
	return g.FileInfo, nil
}

// GoFile adapts a File to fs.File and fs.ReadDirFile.
type GoFile struct {
	*File
}

func (g GoFile) Stat() (fs.FileInfo, error) {
	return g.File.Stat()
}

func (g GoFile) Read(p []byte) (int, error) {
	return g.File.Read(p)
}

func (g GoFile) Close() error {
	return g.File.Close()
}

func (g GoFile) ReadDir(n int) ([]fs.DirEntry, error) {
	entries, err := g.File.Readdir(n)

	goEntries := make([]fs.DirEntry, len(entries))
	for i, e := range entries {
		goEntries[i] = GoDirEntry{e}
	}

	return goEntries, err
}

// GoFs just wraps the afero FAT16 implementation to be compatible with fs.FS.
type GoFs struct {
	*Fs
}

// NewGoFS opens a FAT16 filesystem from the given reader as fs.FS compatible
// filesystem.
func NewGoFS(reader io.ReadSeeker) (*GoFs, error) {
	fatFs, err := New(reader)
	if err != nil {
		return nil, err
	}

	return &GoFs{fatFs}, nil
}

// NewGoFSSkipChecks works like NewGoFS but skips the boot sector validations,
// which may allow opening not perfectly standard FAT16 filesystems.
// Use with caution!
func NewGoFSSkipChecks(reader io.ReadSeeker) (*GoFs, error) {
	fatFs, err := NewSkipChecks(reader)
	if err != nil {
		return nil, err
	}

	return &GoFs{fatFs}, nil
}

func (g GoFs) Open(name string) (fs.File, error) {
	file, err := g.Fs.Open(name)
	if err != nil {
		return nil, err
	}

	f, ok := file.(*File)
	if !ok {
		return nil, errors.New("invalid File implementation")
	}

	return GoFile{f}, nil
}
