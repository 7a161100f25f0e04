package fat16

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"
)

// These errors may occur while opening an image in strict mode.
var (
	ErrReadBootSector  = errors.New("could not read a complete boot sector")
	ErrInvalidGeometry = errors.New("boot sector describes an invalid geometry")
)

// bootSignature is the magic word at the end of a valid boot sector.
const bootSignature = 0xAA55

// Image is a parsing session over a single FAT16 byte source.
//
// All operations issue positioned reads through the one reader the Image was
// opened with, so an Image must not be used from multiple goroutines and two
// interleaved directory walks must be serialized by the caller. Image itself
// does no locking; the higher level Fs does.
type Image struct {
	reader io.ReadSeeker
	boot   BootSector
}

// NewImage opens an image in permissive mode: a short or failing boot sector
// read is tolerated and simply leaves the missing fields zero. Use
// NewImageStrict to surface such images as errors instead.
func NewImage(reader io.ReadSeeker) *Image {
	img := &Image{reader: reader}
	img.readBootSector()
	return img
}

// NewImageStrict opens an image and fails if the boot sector cannot be read
// completely, does not end in the boot signature or describes a geometry the
// parser cannot do arithmetic on (zero block or cluster size).
func NewImageStrict(reader io.ReadSeeker) (*Image, error) {
	img := &Image{reader: reader}
	if err := img.readBootSector(); err != nil {
		return nil, err
	}

	if img.boot.Signature != bootSignature {
		return nil, fmt.Errorf("%w: boot signature is %#04x", ErrInvalidGeometry, img.boot.Signature)
	}
	if img.boot.BytesPerBlock == 0 || img.boot.BlocksPerCluster == 0 {
		return nil, fmt.Errorf("%w: zero block or cluster size", ErrInvalidGeometry)
	}

	return img, nil
}

func (img *Image) readBootSector() error {
	if _, err := img.reader.Seek(0, io.SeekStart); err != nil {
		return ErrReadBootSector
	}

	// Decode from a full-size buffer even on a short read so that permissive
	// mode sees zeroes instead of failing.
	buf := make([]byte, BootSectorSize)
	_, err := io.ReadFull(img.reader, buf)
	decodeErr := binary.Read(bytes.NewReader(buf), binary.LittleEndian, &img.boot)

	if err != nil || decodeErr != nil {
		return ErrReadBootSector
	}
	return nil
}

// BootSector returns a copy of the parsed boot sector.
func (img *Image) BootSector() BootSector {
	return img.boot
}

// BytesPerCluster returns the size of one allocation unit in bytes.
func (img *Image) BytesPerCluster() uint32 {
	return img.boot.BytesPerCluster()
}

// Label returns the volume label from the extended boot record, without
// trailing space padding.
func (img *Image) Label() string {
	return strings.TrimRight(string(img.boot.VolumeLabel[:]), " \x00")
}

// FSType returns the filesystem identifier string from the extended boot
// record, e.g. "FAT16".
func (img *Image) FSType() string {
	return strings.TrimRight(string(img.boot.FileSystemType[:]), " \x00")
}

// currentOffset returns the reader's current position.
func (img *Image) currentOffset() (int64, error) {
	return img.reader.Seek(0, io.SeekCurrent)
}

// SuccessorCluster looks up the successor of target in the FAT.
// It returns 0 if the FAT entry cannot be read completely.
//
// The reader position is restored before returning, so callers in the middle
// of a sequential read are not disturbed.
func (img *Image) SuccessorCluster(target ClusterID) ClusterID {
	current, err := img.currentOffset()
	if err != nil {
		return 0
	}

	var next ClusterID
	if _, err := img.reader.Seek(int64(img.boot.FATRegionStart())+int64(target)*2, io.SeekStart); err == nil {
		var raw [2]byte
		if _, err := io.ReadFull(img.reader, raw[:]); err == nil {
			next = ClusterID(binary.LittleEndian.Uint16(raw[:]))
		}
	}

	img.reader.Seek(current, io.SeekStart)
	return next
}

// ReadFromCluster reads len(dest) bytes of the chain starting at start,
// beginning at the logical byte offset within that chain. It returns the
// number of bytes actually read, which is less than len(dest) if any physical
// read came up short.
//
// The chain is not checked against FAT end-of-chain markers; the walk is
// bounded only by len(dest). Callers derive the length from a known file size.
func (img *Image) ReadFromCluster(dest []byte, offset uint32, start ClusterID) uint32 {
	bytesPerCluster := img.boot.BytesPerCluster()
	size := uint32(len(dest))
	if bytesPerCluster == 0 || size == 0 {
		return 0
	}

	clustersToRead := (size + bytesPerCluster - 1) / bytesPerCluster
	clustersToSkip := offset / bytesPerCluster
	offsetInCluster := offset % bytesPerCluster

	cluster := start
	for ; clustersToSkip != 0; clustersToSkip-- {
		cluster = img.SuccessorCluster(cluster)
	}

	// The intra-cluster remainder of the offset shifts the seek base for
	// every cluster of the span.
	base := int64(img.boot.DataRegionStart()) + int64(offsetInCluster)

	left := size
	for i := uint32(0); i < clustersToRead; i++ {
		pos := base + (int64(cluster)-2)*int64(bytesPerCluster)
		if pos < 0 {
			break
		}
		if _, err := img.reader.Seek(pos, io.SeekStart); err != nil {
			break
		}

		take := bytesPerCluster
		if left < take {
			take = left
		}

		done := size - left
		n, err := io.ReadFull(img.reader, dest[done:done+take])
		left -= uint32(n)
		if err != nil {
			break
		}

		cluster = img.SuccessorCluster(cluster)
	}

	return size - left
}
