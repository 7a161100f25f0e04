// File model contains the structs which match the on-disk structures of a
// FAT16 filesystem. All of them are read with encoding/binary in little-endian
// byte order, so the field layout must match the disk layout exactly.

package fat16

// DirRecordSize is the size of a single directory record on disk.
// Both short entries and long-filename fragments occupy exactly one record.
const DirRecordSize = 32

// BootSectorSize is the size of the boot sector at the start of the image.
const BootSectorSize = 512

// ClusterID identifies a data cluster. Valid data clusters are numbered
// from 2 upwards; 0 is used as "no cluster" throughout this package.
type ClusterID uint16

// BootSector is the first 512 bytes of a FAT16 image.
type BootSector struct {
	JumpCode         [3]byte
	OEMName          [8]byte
	BytesPerBlock    uint16
	BlocksPerCluster uint8
	ReservedBlocks   uint16
	NumFATs          uint8
	RootEntryCount   uint16
	TotalBlocks16    uint16
	MediaDescriptor  byte
	BlocksPerFAT     uint16
	BlocksPerTrack   uint16
	NumHeads         uint16
	HiddenBlocks     uint32
	TotalBlocks32    uint32
	DriveNumber      uint16
	ExtBootSignature byte
	VolumeID         uint32
	VolumeLabel      [11]byte
	FileSystemType   [8]byte
	BootstrapCode    [448]byte
	Signature        uint16
}

// Attribute bits of a directory entry.
const (
	AttrReadOnly    = 0x01
	AttrHidden      = 0x02
	AttrSystem      = 0x04
	AttrVolumeLabel = 0x08
	AttrDirectory   = 0x10
	AttrArchive     = 0x20

	// attrLongName marks a record as a long-filename fragment instead of a
	// real short entry. It is the combination of the four attribute bits
	// which never occur together on a real entry.
	attrLongName = AttrReadOnly | AttrHidden | AttrSystem | AttrVolumeLabel
)

// ShortEntry is a classic 32-byte 8.3 directory record.
type ShortEntry struct {
	Name            [8]byte
	Ext             [3]byte
	Attribute       byte
	Reserved        [10]byte
	ModifiedTime    uint16
	ModifiedDate    uint16
	StartingCluster ClusterID
	FileSize        uint32
}

// IsDirectory reports whether the directory attribute bit is set.
func (e *ShortEntry) IsDirectory() bool { return e.Attribute&AttrDirectory != 0 }

// IsReadOnly reports whether the read-only attribute bit is set.
func (e *ShortEntry) IsReadOnly() bool { return e.Attribute&AttrReadOnly != 0 }

// IsHidden reports whether the hidden attribute bit is set.
func (e *ShortEntry) IsHidden() bool { return e.Attribute&AttrHidden != 0 }

// IsSystem reports whether the system attribute bit is set.
func (e *ShortEntry) IsSystem() bool { return e.Attribute&AttrSystem != 0 }

// IsVolumeLabel reports whether the volume-label attribute bit is set.
func (e *ShortEntry) IsVolumeLabel() bool { return e.Attribute&AttrVolumeLabel != 0 }

// IsArchive reports whether the archive attribute bit is set.
func (e *ShortEntry) IsArchive() bool { return e.Attribute&AttrArchive != 0 }

// LongNameFragment is a 32-byte directory record which extends the name of
// the short entry that follows it on disk. One fragment carries up to 13
// UTF-16 code units split over three fixed-width segments.
type LongNameFragment struct {
	// Position orders the fragments of one name. The real format also sets
	// a high bit on the last fragment which is not interpreted here.
	Position  byte
	Part1     [5]uint16
	Attribute byte
	Type      byte
	Checksum  byte
	Part2     [6]uint16
	// Padding must be zero for the record to be accepted as a fragment.
	Padding uint16
	Part3   [2]uint16
}

// isLongName reports whether the record decoded into f is really a
// long-filename fragment and not a short entry.
func (f *LongNameFragment) isLongName() bool {
	return f.Attribute == attrLongName && f.Padding == 0
}
