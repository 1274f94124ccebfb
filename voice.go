package main

import (
	"math"
	"sync/atomic"
)

// Tuning constants, grounded on the original C source's Const enum
// (main.c) and its simpler Meta.c variant.
const (
	notesMax        = 128 // MIDI pitches 0..127
	channelMax      = 16  // MIDI channels 0..15
	drumChannel     = 9   // channel 10 (0-indexed), intentionally muted
	attack          = 4   // gain units per unit velocity at note-on
	sustainMax      = 4   // gain clamp multiplier: 0 <= gain <= sustainMax*127
	decaySamples    = 300 // samples between each one-unit sustain decay step
	bendDefault     = 8192
	bendSemitones   = 12.0
	amplification   = 4 // global post-mix amplification
	modulationGain  = 512
	sampleRate      = 44100
	framesPerPeriod = 1024 // audio sink frame size (spec.samples)
)

// Voice is one oscillator slot indexed by (channel, pitch). gain,
// gainSetpoint, progress and on are written by the scheduler (producer)
// and read/advanced by the mixer (consumer); they are plain int32/int32
// backing stores operated on with sync/atomic, mirroring the original's
// SDL_atomic_t fields and the atomic-field style already used in the
// retrieval pack (zurustar-son-et/pkg/engine: atomic.StoreInt64 on shared
// ticks). The phase-related float fields are mutated only by the mixer
// and need no synchronization.
type Voice struct {
	gain         int32 // atomic
	gainSetpoint int32 // atomic
	progress     int32 // atomic
	on           int32 // atomic, 0 or 1

	// Mixer-owned phase state; never touched by the scheduler.
	id          float64 // effective pitch, sub-semitone once bent
	bendLast    int32
	wait        bool
	initialized bool
	cycle       int32 // zero-crossing counter, for alternate-cycle kernels
}

func (v *Voice) setGainSetpoint(x int32) { atomic.StoreInt32(&v.gainSetpoint, x) }
func (v *Voice) gainSetpointValue() int32 { return atomic.LoadInt32(&v.gainSetpoint) }
func (v *Voice) setOn(on bool) {
	if on {
		atomic.StoreInt32(&v.on, 1)
	} else {
		atomic.StoreInt32(&v.on, 0)
	}
}
func (v *Voice) isOn() bool { return atomic.LoadInt32(&v.on) == 1 }
func (v *Voice) gainValue() int32 { return atomic.LoadInt32(&v.gain) }

// ChannelState holds the per-channel controller state the scheduler
// writes: current program (instrument) and pitch bend. Channel volume
// (controller 0x07) has no state of its own here — it rescales every
// currently-held voice's gainSetpoint directly at the moment it arrives
// (track.go's dispatchChannel), per Track_RealEvent in
// original_source/Track.c.
type ChannelState struct {
	program int32 // atomic
	bend    int32 // atomic
}

func (c *ChannelState) setProgram(p uint8) { atomic.StoreInt32(&c.program, int32(p)) }
func (c *ChannelState) programValue() uint8 { return uint8(atomic.LoadInt32(&c.program)) }
func (c *ChannelState) setBend(b int32)     { atomic.StoreInt32(&c.bend, b) }
func (c *ChannelState) bendValue() int32    { return atomic.LoadInt32(&c.bend) }

// VoiceTable is the shared (channel x pitch) voice grid plus a companion
// modulator table for FM synthesis, dimensioned identically, whose gains
// are driven to a fixed modulation constant rather than by note-on events
// (see Notes_Setup in the original's main.c).
type VoiceTable struct {
	voice     [channelMax][notesMax]Voice
	modulator [channelMax][notesMax]Voice
	channel   [channelMax]ChannelState
}

// NewVoiceTable allocates a zero-initialized voice table and arms the
// modulator table's gain/gainSetpoint at the fixed modulation constant so
// FM carriers always have a modulator signal to read from once their
// carrier turns on.
func NewVoiceTable() *VoiceTable {
	vt := &VoiceTable{}
	for ch := 0; ch < channelMax; ch++ {
		vt.channel[ch].bend = bendDefault
		for note := 0; note < notesMax; note++ {
			m := &vt.modulator[ch][note]
			m.gain = modulationGain
			m.gainSetpoint = modulationGain
		}
	}
	return vt
}

func midiNoteFrequency(id float64) float64 {
	return 440.0 * math.Pow(2.0, (id-69.0)/12.0)
}
