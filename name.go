package fat16

import (
	"strings"
	"unicode/utf16"
)

// EntryKind classifies a short entry by the first byte of its name field.
type EntryKind int

const (
	KindFile EntryKind = iota
	// KindDirectory marks the "." and ".." records of a subdirectory.
	KindDirectory
	KindDeleted
	KindUnused
)

// Marker bytes at the start of a short name.
const (
	nameUnused  = 0x00
	nameDeleted = 0xE5
	nameDot     = 0x2E
	// nameEscape escapes a name which legitimately starts with the
	// deleted-entry marker byte.
	nameEscape = 0x05
)

// Kind classifies the entry by its raw name field.
func (e *ShortEntry) Kind() EntryKind {
	switch e.Name[0] {
	case nameUnused:
		return KindUnused
	case nameDeleted:
		return KindDeleted
	case nameDot:
		return KindDirectory
	}

	return KindFile
}

// BaseName returns the processed 8-byte name field: cut at the first NUL,
// stripped of its kind marker byte for non-file entries, the 0x05 escape
// mapped back to 0xE5 and trailing space padding removed.
func (e *ShortEntry) BaseName() string {
	name := string(e.Name[:])
	if i := strings.IndexByte(name, 0); i >= 0 {
		name = name[:i]
	}

	if e.Kind() != KindFile && len(name) > 0 {
		// The first byte is a marker, not part of the name.
		name = name[1:]
	}

	if len(name) > 0 && name[0] == nameEscape {
		name = string([]byte{nameDeleted}) + name[1:]
	}

	return strings.TrimRight(name, " ")
}

// Filename returns the full 8.3 display name: the processed base name
// followed by the extension field, with trailing space padding removed.
func (e *ShortEntry) Filename() string {
	return strings.TrimRight(e.BaseName()+string(e.Ext[:]), " ")
}

// appendSegment appends the code units of one fixed-width fragment segment.
// It reports whether the segment contained a terminating zero unit before its
// full width, which ends the whole name.
func appendSegment(units []uint16, segment []uint16) ([]uint16, bool) {
	for _, u := range segment {
		if u == 0 {
			return units, true
		}
		units = append(units, u)
	}

	return units, false
}

// Filename returns the display name of the entry. If long-filename fragments
// were collected they take precedence: they are visited in reverse of disk
// order (disk order is the reverse of name order) and their three segments
// concatenated until a zero code unit terminates the name. Without fragments
// the short 8.3 name is used.
func (e *Entry) Filename() string {
	if len(e.fragments) == 0 {
		return e.Short.Filename()
	}

	var units []uint16
	var done bool
	for i := len(e.fragments) - 1; i >= 0 && !done; i-- {
		f := &e.fragments[i]
		for _, segment := range [][]uint16{f.Part1[:], f.Part2[:], f.Part3[:]} {
			if units, done = appendSegment(units, segment); done {
				break
			}
		}
	}

	return string(utf16.Decode(units))
}
