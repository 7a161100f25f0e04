package fat16

import (
	"testing"
)

func TestImage_NextEntry_Root(t *testing.T) {
	img := newTestImage(t)

	var entry Entry

	// Volume label record, no fragments.
	if !img.NextEntry(&entry) {
		t.Fatal("Image.NextEntry() = false for the volume label, want true")
	}
	if len(entry.Fragments()) != 0 {
		t.Errorf("Fragments() = %v records, want 0", len(entry.Fragments()))
	}
	if !entry.Short.IsVolumeLabel() {
		t.Error("ShortEntry.IsVolumeLabel() = false, want true")
	}
	if entry.cursor != DirRecordSize {
		t.Errorf("cursor = %v, want %v", entry.cursor, DirRecordSize)
	}

	// Two fragments followed by the short entry: the cursor advances by
	// three records at once.
	if !img.NextEntry(&entry) {
		t.Fatal("Image.NextEntry() = false for HELLO~1.TXT, want true")
	}
	if len(entry.Fragments()) != 2 {
		t.Fatalf("Fragments() = %v records, want 2", len(entry.Fragments()))
	}
	if got := entry.Fragments()[0].Position; got != 2 {
		t.Errorf("first collected fragment has position %v, want 2 (disk order)", got)
	}
	if got := entry.Filename(); got != "Hello World.txt" {
		t.Errorf("Entry.Filename() = %q, want %q", got, "Hello World.txt")
	}
	if got := entry.Short.Filename(); got != "HELLO~1TXT" {
		t.Errorf("ShortEntry.Filename() = %q, want %q", got, "HELLO~1TXT")
	}
	if entry.cursor != 4*DirRecordSize {
		t.Errorf("cursor = %v, want %v", entry.cursor, 4*DirRecordSize)
	}

	// Plain directory entry.
	if !img.NextEntry(&entry) {
		t.Fatal("Image.NextEntry() = false for SUBDIR, want true")
	}
	if got := entry.Filename(); got != "SUBDIR" {
		t.Errorf("Entry.Filename() = %q, want %q", got, "SUBDIR")
	}
	if !entry.Short.IsDirectory() {
		t.Error("ShortEntry.IsDirectory() = false, want true")
	}
}

func TestImage_NextEntry_RootIsBounded(t *testing.T) {
	img := newTestImage(t)

	// The walk must yield at most one short entry per root directory record
	// and stop at the fixed record count, unused records included.
	var entry Entry
	yielded := 0
	for img.NextEntry(&entry) {
		yielded++
		if yielded > int(img.BootSector().RootEntryCount) {
			t.Fatal("Image.NextEntry() did not terminate at the root entry count")
		}
	}

	// Two records of the region are long-name fragments, all others
	// terminate one NextEntry call each.
	if want := int(img.BootSector().RootEntryCount) - 2; yielded != want {
		t.Errorf("root walk yielded %v entries, want %v", yielded, want)
	}
}

func TestImage_NextEntry_Subdirectory(t *testing.T) {
	img := newTestImage(t)

	parent := findTestEntry(t, img, "SUBDIR")

	var child Entry
	if !img.FirstEntryOfDir(&parent, &child) {
		t.Fatal("Image.FirstEntryOfDir() = false for a directory, want true")
	}

	if !img.NextEntry(&child) {
		t.Fatal("Image.NextEntry() = false for NESTED.TXT, want true")
	}
	if len(child.Fragments()) != 1 {
		t.Fatalf("Fragments() = %v records, want 1", len(child.Fragments()))
	}
	if got := child.Filename(); got != "nested.txt" {
		t.Errorf("Entry.Filename() = %q, want %q", got, "nested.txt")
	}
	// One fragment plus the short entry.
	if child.cursor != 2*DirRecordSize {
		t.Errorf("cursor = %v, want %v", child.cursor, 2*DirRecordSize)
	}

	// The subdirectory walk has no record bound; it runs over the unused
	// records of the cluster and terminates on the failing read behind the
	// chain end.
	remaining := 0
	for img.NextEntry(&child) {
		if got := child.Short.Kind(); got != KindUnused {
			t.Fatalf("ShortEntry.Kind() = %v, want %v", got, KindUnused)
		}
		remaining++
		if remaining > 32 {
			t.Fatal("Image.NextEntry() did not terminate on the subdirectory chain end")
		}
	}

	// 16 records fit into the single cluster, two are consumed above.
	if remaining != 14 {
		t.Errorf("subdirectory walk yielded %v trailing entries, want 14", remaining)
	}
}

func TestImage_FirstEntryOfDir_NotADirectory(t *testing.T) {
	img := newTestImage(t)

	parent := findTestEntry(t, img, "Hello World.txt")

	var child Entry
	if img.FirstEntryOfDir(&parent, &child) {
		t.Error("Image.FirstEntryOfDir() = true for a file, want false")
	}
}

func TestImage_NextEntry_InterleavedWalks(t *testing.T) {
	img := newTestImage(t)

	// Two independent walks over the same image must not disturb each other
	// as long as their calls are strictly ordered.
	var a, b Entry
	if !img.NextEntry(&a) || !img.NextEntry(&b) {
		t.Fatal("Image.NextEntry() = false, want true")
	}
	if !img.NextEntry(&a) || !img.NextEntry(&b) {
		t.Fatal("Image.NextEntry() = false, want true")
	}

	if a.Filename() != b.Filename() {
		t.Errorf("interleaved walks diverged: %q vs %q", a.Filename(), b.Filename())
	}
	if a.cursor != b.cursor {
		t.Errorf("interleaved walk cursors diverged: %v vs %v", a.cursor, b.cursor)
	}
}

// findTestEntry walks the root directory until the entry with the given
// display name is found.
func findTestEntry(t *testing.T, img *Image, name string) Entry {
	t.Helper()

	var entry Entry
	for img.NextEntry(&entry) {
		if entry.Filename() == name {
			return entry.clone()
		}
	}

	t.Fatalf("entry %q not found in the root directory", name)
	return Entry{}
}
