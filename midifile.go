package main

import "fmt"

// defaultTempo is 120 BPM expressed as microseconds per quarter note,
// used until the first Set Tempo meta event, if any.
const defaultTempo uint32 = 500000

// MidiFile is a parsed Standard MIDI File: its header fields plus the
// set of tracks ready to be driven by the scheduler. Grounded on
// Midi_Init in original_source/Midi.c and the MThd/MTrk handling in
// tanaygodse-GHero/simple_midi_parser.go's ParseFile.
type MidiFile struct {
	img          *ByteImage
	formatType   uint16
	trackCount   uint16
	timeDivision uint16 // ticks per quarter note; high bit set means SMPTE
	tempo        uint32
	tracks       []*Track
}

// parseMidiFile reads the MThd header and every MTrk chunk out of img.
// A malformed or unsupported (SMPTE) header is a fatal file error; a
// malformed track body is a fatal crash with a hex dump, matching
// spec.md's error taxonomy.
func parseMidiFile(img *ByteImage) (*MidiFile, error) {
	if img.Len() < 14 {
		return nil, fileError("file too small to contain an MThd header")
	}
	if string(img.slice(0, 4)) != "MThd" {
		return nil, fileError("missing MThd chunk")
	}
	headerLen := img.u32(4)
	if headerLen != 6 {
		return nil, fileError(fmt.Sprintf("unexpected MThd length %d", headerLen))
	}
	formatType := img.u16(8)
	trackCount := img.u16(10)
	timeDivision := img.u16(12)
	if timeDivision&0x8000 != 0 {
		return nil, fileError("SMPTE time division is not supported")
	}

	mf := &MidiFile{
		img:          img,
		formatType:   formatType,
		trackCount:   trackCount,
		timeDivision: timeDivision,
		tempo:        defaultTempo,
	}
	if err := mf.readTracks(); err != nil {
		return nil, err
	}
	return mf, nil
}

func (mf *MidiFile) readTracks() error {
	offset := 14
	mf.tracks = mf.tracks[:0]
	for i := 0; i < int(mf.trackCount); i++ {
		if offset+8 > mf.img.Len() {
			return fileError(fmt.Sprintf("truncated file before track %d", i))
		}
		if string(mf.img.slice(offset, 4)) != "MTrk" {
			return fileError(fmt.Sprintf("missing MTrk chunk for track %d", i))
		}
		size := int(mf.img.u32(offset + 4))
		base := offset + 8
		if base+size > mf.img.Len() {
			return fileError(fmt.Sprintf("truncated track %d body", i))
		}
		mf.tracks = append(mf.tracks, newTrack(mf.img, base, size, i))
		offset = base + size
	}
	return nil
}

// reset rebuilds all tracks from scratch for song looping: tempo carries
// over from wherever playback left it, but every track's cursor and
// running-status rewind to the start of its chunk.
func (mf *MidiFile) reset() error {
	return mf.readTracks()
}
