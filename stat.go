package fat16

import (
	"os"
	"time"
)

// FileInfo adapts the entry to os.FileInfo. The returned value is independent
// of the Entry and stays valid across further NextEntry calls.
func (e *Entry) FileInfo() os.FileInfo {
	return entryFileInfo{name: e.Filename(), entry: e.Short}
}

type entryFileInfo struct {
	name  string
	entry ShortEntry
}

func (e entryFileInfo) Name() string {
	return e.name
}

func (e entryFileInfo) Size() int64 {
	return int64(e.entry.FileSize)
}

func (e entryFileInfo) Mode() os.FileMode {
	if e.IsDir() {
		return os.ModeDir
	}
	return 0
}

func (e entryFileInfo) ModTime() time.Time {
	modDate := ParseDate(e.entry.ModifiedDate)
	modTime := ParseTime(e.entry.ModifiedTime)

	// An invalid date makes the whole stamp invalid. The time part cannot be
	// checked the same way because a zero time of day is perfectly valid.
	if modDate.IsZero() {
		return time.Time{}
	}

	return time.Date(modDate.Year(), modDate.Month(), modDate.Day(),
		modTime.Hour(), modTime.Minute(), modTime.Second(), 0, time.UTC)
}

func (e entryFileInfo) IsDir() bool {
	return e.entry.IsDirectory()
}

func (e entryFileInfo) Sys() interface{} {
	return e.entry
}
