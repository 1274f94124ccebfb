package main

import (
	"math"
	"sync/atomic"
)

// rollEnvelope advances one voice's gain by one sample's worth of attack
// ramp, sustain decay, or release, grounded on Note_Roll (original_source
// Note.c / src/Note.c): the anti-click ramp steps gain by one unit per
// sample toward gainSetpoint; once they match, a held note decays one
// unit every decaySamples samples, and a fully-decayed note turns off.
func rollEnvelope(v *Voice) {
	gain := atomic.LoadInt32(&v.gain)
	setpoint := atomic.LoadInt32(&v.gainSetpoint)
	diff := setpoint - gain
	switch {
	case diff == 0:
		if gain == 0 {
			v.setOn(false)
			v.initialized = false
			return
		}
		progress := atomic.LoadInt32(&v.progress)
		if progress != 0 && progress%decaySamples == 0 {
			atomic.AddInt32(&v.gain, -1)
			atomic.AddInt32(&v.gainSetpoint, -1)
		}
	default:
		step := int32(1)
		if diff < 0 {
			step = -1
		}
		atomic.AddInt32(&v.gain, step)
	}
}

// clampEnvelope enforces 0 <= gain <= sustainMax*127.
func clampEnvelope(v *Voice) {
	const min, max = 0, sustainMax * 127
	gain := atomic.LoadInt32(&v.gain)
	if gain < min {
		atomic.StoreInt32(&v.gain, min)
	} else if gain > max {
		atomic.StoreInt32(&v.gain, max)
	}
}

// phaseX returns the nominal phase angle for a voice at a given sample
// progress, given its currently-committed pitch id.
func phaseX(v *Voice, progress float64) float64 {
	freq := midiNoteFrequency(v.id)
	return progress * (2.0 * math.Pi) * freq / sampleRate
}

// advancePhase implements the zero-crossing guarded pitch-bend step:
// the nominal phase for this sample, with progress incremented
// afterward. A channel bend change only takes effect at the next
// positive-going zero crossing, preventing audible snaps (grounded on
// Wave_Tick in original_source/src/Wave.c and Note_Tick in main.c).
func advancePhase(v *Voice, midiPitch int, bend int32) float64 {
	if !v.initialized {
		v.initialized = true
		v.id = float64(midiPitch)
	}
	if bend != v.bendLast {
		v.bendLast = bend
		v.wait = true
	}
	progress := float64(atomic.LoadInt32(&v.progress))
	gain := float64(atomic.LoadInt32(&v.gain))
	a := gain * math.Sin(phaseX(v, progress-0.2))
	b := gain * math.Sin(phaseX(v, progress+0.0))
	crossed := a < 0.0 && b > 0.0
	if crossed {
		v.cycle++
		if v.wait {
			bendID := float64(bend-bendDefault) / (bendDefault / bendSemitones)
			v.id = bendID + float64(midiPitch)
			v.wait = false
			atomic.StoreInt32(&v.progress, 0)
		}
	}
	committed := atomic.LoadInt32(&v.progress)
	x := phaseX(v, float64(committed))
	atomic.AddInt32(&v.progress, 1)
	return x
}

func isEvenCycle(v *Voice) bool {
	return v.cycle%2 == 0
}
