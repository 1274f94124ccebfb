package main

// Track is one MTrk chunk: a cursor into the shared ByteImage plus the
// running-status and pending-delay state the scheduler needs to decide
// when the track's next event is due. Grounded on Track in
// original_source/Track.c and the hand-rolled track reader in
// tanaygodse-GHero/simple_midi_parser.go, generalized from a single
// linear scan into the scheduler-driven advance/dispatch shape spec.md
// requires.
type Track struct {
	img    *ByteImage
	base   int // offset of first event byte
	size   int // byte length of the chunk
	index  int // read cursor, absolute offset into img
	number int // track index, for crash diagnostics

	pendingDelta  int64 // ticks until the next event; -1 means "not yet read"
	runningStatus uint8
	running       bool // cleared on End-Of-Track
}

// newTrack constructs a track positioned at the start of its MTrk data
// and primes its first delta.
func newTrack(img *ByteImage, base, size, number int) *Track {
	t := &Track{img: img, base: base, size: size, index: base, number: number, pendingDelta: -1, running: true}
	t.ensureDelta()
	return t
}

func (t *Track) crash() {
	crashWindow(t.img.data, t.index)
	panic(crashError("malformed track data"))
}

// u8 reads one byte and advances the cursor, crashing on overrun exactly
// as Track_U8/Track_Crash do in the original.
func (t *Track) u8() uint8 {
	if t.index >= t.base+t.size || t.index >= t.img.Len() {
		t.crash()
	}
	b := t.img.u8(t.index)
	t.index++
	return b
}

func (t *Track) back() {
	t.index--
}

// readVar reads a variable-length quantity: up to four 7-bit groups, each
// continued by a set high bit, grounded on Track_Var in Track.c.
func (t *Track) readVar() uint32 {
	var out uint32
	for i := 0; i < 4; i++ {
		b := t.u8()
		out = out<<7 | uint32(b&0x7F)
		if b&0x80 == 0 {
			return out
		}
	}
	return out
}

func (t *Track) str(n int) []byte {
	start := t.index
	for i := 0; i < n; i++ {
		t.u8()
	}
	return t.img.slice(start, n)
}

// status resolves the next event's status byte, honoring running status:
// a byte with its high bit set becomes the new running status; otherwise
// the cursor backs up one byte and the previously latched status is
// reused, grounded on Track_Status in Track.c.
func (t *Track) status() uint8 {
	b := t.u8()
	if b&0x80 != 0 {
		t.runningStatus = b
		return b
	}
	t.back()
	return t.runningStatus
}

// ensureDelta reads the next delta-time VLQ if one hasn't been read yet.
func (t *Track) ensureDelta() {
	if t.pendingDelta == -1 && t.running {
		t.pendingDelta = int64(t.readVar())
	}
}

// advanceTime subtracts ticks from a running track's pending delta. It does
// not clamp the result at zero.
func (t *Track) advanceTime(ticks int64) {
	if t.running {
		t.pendingDelta -= ticks
	}
}

// due reports whether this track has an event ready to dispatch now.
func (t *Track) due() bool {
	return t.running && t.pendingDelta <= 0
}

// dispatchIfDue dispatches every zero-delta event in sequence, looping
// where Track_Play uses tail recursion once a new delta reads as zero,
// and stops once a positive delta is latched or the track ends.
func (t *Track) dispatchIfDue(vt *VoiceTable, tempo *uint32) {
	for t.due() {
		t.dispatchOne(vt, tempo)
		t.pendingDelta = -1
		t.ensureDelta()
	}
}

func (t *Track) dispatchOne(vt *VoiceTable, tempo *uint32) {
	status := t.status()
	switch {
	case status == 0xFF:
		t.dispatchMeta(tempo)
	case status == 0xF0 || status == 0xF7:
		n := t.readVar()
		t.str(int(n))
	case status >= 0x80 && status < 0xF0:
		t.dispatchChannel(vt, status)
	default:
		t.crash()
	}
}

func (t *Track) dispatchChannel(vt *VoiceTable, status uint8) {
	event := status >> 4
	channel := int(status & 0x0F)
	ch := &vt.channel[channel]

	switch event {
	case 0x8: // note off
		pitch := int(t.u8())
		t.u8() // velocity, unused on note-off
		if channel != drumChannel {
			vt.voice[channel][pitch].setGainSetpoint(0)
			ch.setBend(bendDefault)
		}
	case 0x9: // note on (velocity 0 behaves as note off)
		pitch := int(t.u8())
		velocity := int32(t.u8())
		if channel == drumChannel {
			return
		}
		v := &vt.voice[channel][pitch]
		if velocity == 0 {
			v.setGainSetpoint(0)
			ch.setBend(bendDefault)
			return
		}
		v.setGainSetpoint(attack * velocity)
		v.setOn(true)
		ch.setBend(bendDefault)
	case 0xA: // polyphonic key pressure, consumed
		t.u8()
		t.u8()
	case 0xB: // controller
		controller := t.u8()
		value := int32(t.u8())
		if controller == 0x07 && channel != drumChannel {
			for pitch := 0; pitch < notesMax; pitch++ {
				v := &vt.voice[channel][pitch]
				if v.gainSetpointValue() > 0 {
					v.setGainSetpoint(attack * value)
				}
			}
		}
	case 0xC: // program change
		program := t.u8()
		ch.setProgram(program)
	case 0xD: // channel pressure, consumed
		t.u8()
	case 0xE: // pitch bend
		lsb := int32(t.u8())
		msb := int32(t.u8())
		ch.setBend(msb<<7 | lsb)
	case 0xF: // sysex, length-prefixed
		n := t.readVar()
		t.str(int(n))
	default:
		t.crash()
	}
}

// dispatchMeta handles the 0xFF meta-event family described in spec.md
// §4.2, grounded on Track_MetaEvent in Track.c/main.c. Only tempo and
// end-of-track affect playback; the other known sub-types are consumed and
// discarded, and an unknown sub-type is a fatal crash.
func (t *Track) dispatchMeta(tempo *uint32) {
	kind := t.u8()
	n := t.readVar()
	switch kind {
	case 0x2F: // end of track
		t.str(int(n))
		t.running = false
		t.pendingDelta = 0
	case 0x51: // set tempo, 3-byte big-endian microseconds per quarter note
		b := t.str(int(n))
		*tempo = uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
	case 0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09,
		0x20, 0x21, 0x54, 0x58, 0x59, 0x7F, 0xF0, 0xF7:
		t.str(int(n))
	default:
		t.crash()
	}
}
