package fat16

// The image is split into four consecutive regions:
// reserved blocks (incl. boot sector) -> FATs -> root directory -> data area.
// The offsets below are derived purely from boot sector fields; no attempt is
// made to cross-check them against each other or against the image size.

// FATRegionStart returns the byte offset of the first FAT.
func (b *BootSector) FATRegionStart() uint32 {
	return uint32(b.ReservedBlocks) * uint32(b.BytesPerBlock)
}

// RootDirRegionStart returns the byte offset of the root directory region,
// which follows all FAT copies.
func (b *BootSector) RootDirRegionStart() uint32 {
	return b.FATRegionStart() + uint32(b.NumFATs)*uint32(b.BlocksPerFAT)*uint32(b.BytesPerBlock)
}

// DataRegionStart returns the byte offset of the data area, which follows the
// fixed-size root directory.
func (b *BootSector) DataRegionStart() uint32 {
	return b.RootDirRegionStart() + uint32(b.RootEntryCount)*DirRecordSize
}

// BytesPerCluster returns the size of one allocation unit in bytes.
func (b *BootSector) BytesPerCluster() uint32 {
	return uint32(b.BytesPerBlock) * uint32(b.BlocksPerCluster)
}
