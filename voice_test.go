package main

import (
	"sync/atomic"
	"testing"
)

func TestRollEnvelopeAttackRampsTowardSetpoint(t *testing.T) {
	v := &Voice{}
	v.setGainSetpoint(10)
	v.setOn(true)

	for i := 0; i < 10; i++ {
		rollEnvelope(v)
	}

	if got := atomic.LoadInt32(&v.gain); got != 10 {
		t.Fatalf("gain after 10 attack steps = %d, want 10", got)
	}
}

func TestRollEnvelopeDecaysOnceHeldAtSetpoint(t *testing.T) {
	v := &Voice{}
	atomic.StoreInt32(&v.gain, 5)
	v.setGainSetpoint(5)
	v.setOn(true)

	// progress must be a multiple of decaySamples for a decay step to fire.
	atomic.StoreInt32(&v.progress, decaySamples)
	rollEnvelope(v)

	if got := atomic.LoadInt32(&v.gain); got != 4 {
		t.Fatalf("gain after decay step = %d, want 4", got)
	}
	if got := atomic.LoadInt32(&v.gainSetpoint); got != 4 {
		t.Fatalf("gainSetpoint after decay step = %d, want 4 (tracks gain down)", got)
	}
}

func TestRollEnvelopeTurnsOffAtZeroGain(t *testing.T) {
	v := &Voice{}
	v.setOn(true)
	rollEnvelope(v)

	if v.isOn() {
		t.Fatalf("voice should turn off once gain and gainSetpoint both reach 0")
	}
}

func TestClampEnvelopeBounds(t *testing.T) {
	v := &Voice{}
	atomic.StoreInt32(&v.gain, -5)
	clampEnvelope(v)
	if atomic.LoadInt32(&v.gain) != 0 {
		t.Fatalf("gain should clamp to 0 from below")
	}

	atomic.StoreInt32(&v.gain, sustainMax*127+50)
	clampEnvelope(v)
	if atomic.LoadInt32(&v.gain) != sustainMax*127 {
		t.Fatalf("gain should clamp to sustainMax*127 from above")
	}
}

func TestAdvancePhaseBendOnlyAppliesAtZeroCrossing(t *testing.T) {
	v := &Voice{}
	atomic.StoreInt32(&v.gain, 100)
	// Advance once to initialize and establish a baseline pitch id.
	advancePhase(v, 60, bendDefault)
	if v.id != 60 {
		t.Fatalf("id should start at midiPitch, got %v", v.id)
	}

	// A bend change should not move id immediately; it must wait for a
	// positive-going zero crossing, grounded on Wave_Tick/Note_Tick.
	advancePhase(v, 60, bendDefault+100)
	if v.wait != true || v.id != 60 {
		t.Fatalf("bend should not apply before a zero crossing")
	}
}

func TestIsEvenCycleTracksCrossingParity(t *testing.T) {
	v := &Voice{cycle: 0}
	if !isEvenCycle(v) {
		t.Fatalf("cycle 0 should be even")
	}
	v.cycle = 1
	if isEvenCycle(v) {
		t.Fatalf("cycle 1 should be odd")
	}
}

func TestNewVoiceTableSeedsModulatorGain(t *testing.T) {
	vt := NewVoiceTable()
	m := &vt.modulator[3][60]
	if m.gainValue() != modulationGain {
		t.Fatalf("modulator gain = %d, want %d", m.gainValue(), modulationGain)
	}
	if vt.channel[3].bendValue() != bendDefault {
		t.Fatalf("channel bend should default to %d", bendDefault)
	}
}
