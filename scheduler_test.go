package main

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func newTestMidiFile(timeDivision uint16, tempo uint32) *MidiFile {
	return &MidiFile{timeDivision: timeDivision, tempo: tempo}
}

// Property: doubling the tempo (microseconds per quarter note) doubles
// the wall-clock delay computed for any fixed tick count, grounded on
// Midi_ToMicrosecondDelay in original_source/Midi.c.
func TestTempoDoublingDoublesDelayProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("doubling tempo doubles the computed delay", prop.ForAll(
		func(ticks, tempo int) bool {
			boundedTicks := int64(ticks%10000 + 1)
			boundedTempo := uint32(tempo%1_000_000 + 1)

			mf := newTestMidiFile(480, boundedTempo)
			s := newScheduler(mf, nil, false)
			base := s.microsecondDelay(boundedTicks)

			mf2 := newTestMidiFile(480, boundedTempo*2)
			s2 := newScheduler(mf2, nil, false)
			doubled := s2.microsecondDelay(boundedTicks)

			// integer tick*tempo/division truncation can introduce a
			// one-microsecond rounding slack; allow it.
			diff := doubled - 2*base
			if diff < 0 {
				diff = -diff
			}
			return diff <= time.Microsecond
		},
		gen.IntRange(0, 1000000),
		gen.IntRange(0, 1000000),
	))

	properties.TestingRun(t)
}

func TestShaveTicksAdvancesAllRunningTracksBySmallestDelta(t *testing.T) {
	a := newTestTrack([]byte{})
	a.pendingDelta = 10
	b := newTestTrack([]byte{})
	b.pendingDelta = 4
	c := newTestTrack([]byte{})
	c.running = false
	c.pendingDelta = 1 // stopped tracks must not influence the minimum

	mf := &MidiFile{tracks: []*Track{a, b, c}, timeDivision: 480, tempo: defaultTempo}
	s := newScheduler(mf, NewVoiceTable(), false)

	min := s.shaveTicks()
	if min != 4 {
		t.Fatalf("shaveTicks returned %d, want 4 (the smaller running delta)", min)
	}
	if a.pendingDelta != 6 {
		t.Fatalf("track a pendingDelta = %d, want 6", a.pendingDelta)
	}
	if b.pendingDelta != 0 {
		t.Fatalf("track b pendingDelta = %d, want 0", b.pendingDelta)
	}
}

func TestAllStoppedTrueOnlyWhenEveryTrackEnded(t *testing.T) {
	a := newTestTrack([]byte{})
	a.running = false
	b := newTestTrack([]byte{})
	b.running = true
	mf := &MidiFile{tracks: []*Track{a, b}}
	s := newScheduler(mf, NewVoiceTable(), false)

	if s.allStopped() {
		t.Fatalf("allStopped should be false while track b is still running")
	}
	b.running = false
	if !s.allStopped() {
		t.Fatalf("allStopped should be true once every track has ended")
	}
}
