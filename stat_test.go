package fat16

import (
	"os"
	"testing"
	"time"
)

func TestEntry_FileInfo(t *testing.T) {
	entry := Entry{
		Short: testShortEntry("HELLO~1", "TXT", AttrArchive, 2, testFileSize),
		fragments: []LongNameFragment{
			testFragment(2, "xt"),
			testFragment(1, "Hello World.t"),
		},
	}
	entry.Short.ModifiedDate = 40<<9 | 5<<5 | 4
	entry.Short.ModifiedTime = 12<<11 | 30<<5 | 7

	info := entry.FileInfo()

	if got := info.Name(); got != "Hello World.txt" {
		t.Errorf("FileInfo.Name() = %q, want %q", got, "Hello World.txt")
	}
	if got := info.Size(); got != testFileSize {
		t.Errorf("FileInfo.Size() = %v, want %v", got, testFileSize)
	}
	if info.IsDir() {
		t.Error("FileInfo.IsDir() = true, want false")
	}
	if got := info.Mode(); got != 0 {
		t.Errorf("FileInfo.Mode() = %v, want 0", got)
	}

	want := time.Date(2020, 5, 4, 12, 30, 14, 0, time.UTC)
	if got := info.ModTime(); !got.Equal(want) {
		t.Errorf("FileInfo.ModTime() = %v, want %v", got, want)
	}

	sys, ok := info.Sys().(ShortEntry)
	if !ok {
		t.Fatalf("FileInfo.Sys() = %T, want ShortEntry", info.Sys())
	}
	if sys != entry.Short {
		t.Errorf("FileInfo.Sys() = %v, want %v", sys, entry.Short)
	}
}

func TestEntry_FileInfo_Directory(t *testing.T) {
	entry := Entry{Short: testShortEntry("SUBDIR", "", AttrDirectory, 4, 0)}

	info := entry.FileInfo()

	if got := info.Name(); got != "SUBDIR" {
		t.Errorf("FileInfo.Name() = %q, want %q", got, "SUBDIR")
	}
	if !info.IsDir() {
		t.Error("FileInfo.IsDir() = false, want true")
	}
	if got := info.Mode(); got != os.ModeDir {
		t.Errorf("FileInfo.Mode() = %v, want %v", got, os.ModeDir)
	}
}

func TestEntry_FileInfo_InvalidModTime(t *testing.T) {
	entry := Entry{Short: testShortEntry("FOO", "TXT", AttrArchive, 2, 1)}
	// Day zero makes the whole stamp invalid.
	entry.Short.ModifiedDate = 37 << 9

	if got := entry.FileInfo().ModTime(); !got.IsZero() {
		t.Errorf("FileInfo.ModTime() = %v, want the zero time", got)
	}
}

func TestEntry_FileInfo_IndependentOfEntry(t *testing.T) {
	img := newTestImage(t)

	var entry Entry
	if !img.NextEntry(&entry) || !img.NextEntry(&entry) {
		t.Fatal("Image.NextEntry() = false, want true")
	}

	info := entry.FileInfo()

	// Advancing the entry must not change the already taken FileInfo.
	img.NextEntry(&entry)

	if got := info.Name(); got != "Hello World.txt" {
		t.Errorf("FileInfo.Name() after advancing = %q, want %q", got, "Hello World.txt")
	}
}
