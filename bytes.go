package main

// ByteImage is the immutable, random-access image of a loaded SMF file.
// All reads are big-endian, matching the Standard MIDI File wire format.
type ByteImage struct {
	data []byte
}

// NewByteImage wraps a loaded file's raw bytes for cursor access.
func NewByteImage(data []byte) *ByteImage {
	return &ByteImage{data: data}
}

// Len returns the number of bytes in the image.
func (b *ByteImage) Len() int {
	return len(b.data)
}

// u8 reads one byte at off. Bounds checking is the caller's responsibility;
// reads past the end are a fatal parse error surfaced by the caller.
func (b *ByteImage) u8(off int) uint8 {
	return b.data[off]
}

// u16 reads a big-endian two-byte value at off.
func (b *ByteImage) u16(off int) uint16 {
	return uint16(b.data[off])<<8 | uint16(b.data[off+1])
}

// u32 reads a big-endian four-byte value at off.
func (b *ByteImage) u32(off int) uint32 {
	return uint32(b.u16(off))<<16 | uint32(b.u16(off+2))
}

// slice returns the raw bytes in [off, off+size), for carving out track chunks.
func (b *ByteImage) slice(off, size int) []byte {
	return b.data[off : off+size]
}
