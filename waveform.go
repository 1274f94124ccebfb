package main

import (
	"math"
	"sync/atomic"
)

// kernel is a single oscillator primitive. fm is an additional phase
// offset contributed by a modulator voice (0 for carrier-only kernels
// invoked directly, non-zero when invoked through an FM instrument).
type kernel func(v *Voice, midiPitch int, bend int32, fm float64) float64

func kernelSin(v *Voice, midiPitch int, bend int32, fm float64) float64 {
	x := advancePhase(v, midiPitch, bend)
	gain := float64(atomic.LoadInt32(&v.gain))
	return gain * math.Sin(x+fm)
}

func kernelSinHalf(v *Voice, midiPitch int, bend int32, fm float64) float64 {
	amp := kernelSin(v, midiPitch, bend, fm)
	if amp > 0 {
		return 1.1 * amp
	}
	return 0
}

func kernelSinAbs(v *Voice, midiPitch int, bend int32, fm float64) float64 {
	return math.Abs(kernelSin(v, midiPitch, bend, fm))
}

func kernelSinQuarter(v *Voice, midiPitch int, bend int32, fm float64) float64 {
	committed := float64(atomic.LoadInt32(&v.progress))
	f := phaseX(v, committed)
	x := 0.4 * kernelSinHalf(v, midiPitch, bend, fm)
	if math.Cos(f) > 0.0 {
		return x
	}
	return 0
}

func kernelSinAlt(v *Voice, midiPitch int, bend int32, fm float64) float64 {
	x := kernelSin(v, midiPitch, bend, fm)
	if isEvenCycle(v) {
		return x
	}
	return 0
}

func kernelSinAbsAlt(v *Voice, midiPitch int, bend int32, fm float64) float64 {
	x := kernelSinAbs(v, midiPitch, bend, fm)
	if isEvenCycle(v) {
		return x
	}
	return 0
}

func kernelSquare(v *Voice, midiPitch int, bend int32, fm float64) float64 {
	amp := kernelSin(v, midiPitch, bend, fm)
	gain := float64(atomic.LoadInt32(&v.gain))
	if amp >= 0 {
		return gain / 8.0
	}
	return -gain / 8.0
}

func kernelTriangle(v *Voice, midiPitch int, bend int32, fm float64) float64 {
	x := advancePhase(v, midiPitch, bend)
	gain := float64(atomic.LoadInt32(&v.gain))
	return gain * math.Asin(math.Sin(x+fm)) / 1.5708 / 3.0
}

func kernelTriangleHalf(v *Voice, midiPitch int, bend int32, fm float64) float64 {
	amp := kernelTriangle(v, midiPitch, bend, fm)
	if amp > 0 {
		return 1.6 * amp
	}
	return 0
}

// flatten maps a modulator's raw gain-scaled sample back to roughly [-1, 1]
// for use as a phase offset multiplier, grounded on Flatten in main.c.
func flatten(sample float64) float64 {
	return sample / modulationGain
}

// instrument is one program-table entry: a carrier kernel, a modulator
// kernel, a modulation multiplier, and a post-mix gain, grounded on the
// Wave_FM-composed instrument functions in original_source/main.c
// (Wave_Piano, Wave_Guitar, Wave_Bass, Wave_Pipe, Wave_Strings,
// Wave_Brass, Wave_Reed).
type instrument struct {
	carrier    kernel
	modulator  kernel
	multiplier float64
	gain       float64
}

func (i instrument) render(carrierVoice, modulatorVoice *Voice, midiPitch int, bend int32) float64 {
	modSample := i.modulator(modulatorVoice, midiPitch, bend, 0.0)
	fm := i.multiplier * flatten(modSample)
	return i.gain * i.carrier(carrierVoice, midiPitch, bend, fm)
}

// programTable maps MIDI program numbers 0..127 to an instrument, a fixed
// piecewise-constant assignment by General MIDI family grounded on the
// WAVE_WAVEFORMS table in original_source/main.c.
var programTable = buildProgramTable()

func buildProgramTable() [128]instrument {
	var t [128]instrument
	piano := instrument{kernelTriangleHalf, kernelSin, 1.0, 0.2}
	synth := instrument{kernelTriangle, kernelSin, 1.0, 0.4}
	guitar := instrument{kernelSinQuarter, kernelSin, 1.0, 0.5}
	bass := instrument{kernelSinHalf, kernelSin, 1.0, 0.8}
	pipe := instrument{kernelSquare, kernelTriangle, 0.5, 0.35}
	strings := instrument{kernelTriangleHalf, kernelSquare, 1.0, 0.35}
	brass := instrument{kernelSquare, kernelSin, 1.0, 0.4}
	reed := instrument{kernelTriangle, kernelSin, 1.0, 0.4}

	fill := func(lo, hi int, inst instrument) {
		for p := lo; p <= hi; p++ {
			t[p] = inst
		}
	}
	fill(0, 7, piano)      // piano
	fill(8, 15, piano)     // chromatic percussion
	fill(16, 23, piano)    // organ
	fill(24, 31, guitar)   // guitar
	fill(32, 39, bass)     // bass
	fill(40, 47, strings)  // strings
	fill(48, 55, strings)  // strings (ensemble)
	fill(56, 63, brass)    // brass
	fill(64, 71, reed)     // reed
	fill(72, 79, pipe)     // pipe
	fill(80, 87, synth)    // synth lead
	fill(88, 95, synth)    // synth pad
	fill(96, 103, synth)   // synth effects
	fill(104, 111, piano)  // ethnic
	fill(112, 119, piano)  // percussive
	fill(120, 127, piano)  // sound effects
	return t
}

// primitiveKernels names every oscillator primitive spec.md §4.4
// describes, including kernelSinAlt/kernelSinAbsAlt (grounded on
// Note_IsEvenCycle/Wave_SinAlt/Wave_SinAbsAlt in main.c, a supplement
// the spec.md distillation dropped). No GM program in programTable
// routes through the alternate-cycle pair or through this map itself —
// they are exercised only by waveform_test.go, not by the player at
// runtime. They are kept as a documented supplement rather than wired
// into programTable because no instrument family in main.c's
// WAVE_WAVEFORMS table actually selects them either.
var primitiveKernels = map[string]kernel{
	"sin":          kernelSin,
	"halfsin":      kernelSinHalf,
	"absin":        kernelSinAbs,
	"quartersin":   kernelSinQuarter,
	"sinalt":       kernelSinAlt,
	"absinalt":     kernelSinAbsAlt,
	"square":       kernelSquare,
	"triangle":     kernelTriangle,
	"trianglehalf": kernelTriangleHalf,
}
