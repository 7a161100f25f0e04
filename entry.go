package fat16

import (
	"bytes"
	"encoding/binary"
	"io"
)

// Entry is the result slot of a directory enumeration. A zero Entry walks the
// fixed root directory region; FirstEntryOfDir rewires it to walk a
// subdirectory's cluster chain instead. NextEntry advances it in place.
type Entry struct {
	// Short is the 8.3 record matched by the last NextEntry call.
	Short ShortEntry

	// fragments holds the long-filename records which preceded Short on
	// disk, in disk order. Disk order is the reverse of name order.
	fragments []LongNameFragment

	// cursor is the byte offset of the next record within the walked
	// directory.
	cursor uint32

	// root is 0 while walking the root directory region and the starting
	// cluster of the subdirectory otherwise.
	root ClusterID
}

// Fragments returns the long-filename records collected for the current
// entry, in disk order.
func (e *Entry) Fragments() []LongNameFragment {
	return e.fragments
}

// clone returns an independent copy of e, safe to keep across further
// NextEntry calls on the original.
func (e *Entry) clone() Entry {
	c := *e
	c.fragments = append([]LongNameFragment(nil), e.fragments...)
	return c
}

func decodeShortEntry(record []byte) (e ShortEntry) {
	// The buffer is always exactly one record, the decode cannot fail.
	_ = binary.Read(bytes.NewReader(record), binary.LittleEndian, &e)
	return e
}

func decodeLongNameFragment(record []byte) (f LongNameFragment) {
	_ = binary.Read(bytes.NewReader(record), binary.LittleEndian, &f)
	return f
}

// readRecord reads the 32-byte record at entry.cursor. For a subdirectory
// walk it goes through the cluster chain; for the root directory walk the
// reader has already been positioned and is read sequentially.
func (img *Image) readRecord(entry *Entry, record []byte) bool {
	if entry.root != 0 {
		return img.ReadFromCluster(record, entry.cursor, entry.root) == DirRecordSize
	}

	_, err := io.ReadFull(img.reader, record)
	return err == nil
}

// NextEntry advances entry to the next short entry of the walked directory,
// collecting the run of long-filename fragments which precedes it. It returns
// false when the directory is exhausted or any record read comes up short.
//
// The fragment list of entry is rebuilt on every call, so the previous result
// is only valid until the next call (use the filename before advancing).
func (img *Image) NextEntry(entry *Entry) bool {
	rootDirStart := int64(img.boot.RootDirRegionStart())

	if entry.root == 0 {
		// Only the root directory has a fixed record count to check
		// against. Subdirectory walks terminate through failing reads or
		// the caller recognizing an unused entry.
		if entry.cursor/DirRecordSize >= uint32(img.boot.RootEntryCount) {
			return false
		}
		if _, err := img.reader.Seek(rootDirStart+int64(entry.cursor), io.SeekStart); err != nil {
			return false
		}
	}

	entry.fragments = entry.fragments[:0]
	var record [DirRecordSize]byte

	for {
		if !img.readRecord(entry, record[:]) {
			return false
		}

		fragment := decodeLongNameFragment(record[:])
		if !fragment.isLongName() {
			// This record is the short entry. The sequential root walk
			// has consumed it from the stream, so seek back and re-read
			// it below. The subdirectory walk reads by position anyway
			// and reuses the buffer directly.
			if entry.root == 0 {
				if _, err := img.reader.Seek(rootDirStart+int64(entry.cursor), io.SeekStart); err != nil {
					return false
				}
			}
			break
		}

		entry.cursor += DirRecordSize
		entry.fragments = append(entry.fragments, fragment)

		if entry.root == 0 && entry.cursor/DirRecordSize >= uint32(img.boot.RootEntryCount) {
			break
		}
	}

	if entry.root == 0 {
		if !img.readRecord(entry, record[:]) {
			return false
		}
	}
	entry.Short = decodeShortEntry(record[:])
	entry.cursor += DirRecordSize

	return true
}

// FirstEntryOfDir prepares first to enumerate the subdirectory described by
// parent from its beginning. It returns false if parent is not a directory.
func (img *Image) FirstEntryOfDir(parent, first *Entry) bool {
	if !parent.Short.IsDirectory() {
		return false
	}

	first.root = parent.Short.StartingCluster
	first.cursor = 0

	return true
}
