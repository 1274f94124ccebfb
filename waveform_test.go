package main

import "testing"

func TestProgramTableCoversAllPrograms(t *testing.T) {
	for p := 0; p < 128; p++ {
		inst := programTable[p]
		if inst.carrier == nil || inst.modulator == nil {
			t.Fatalf("program %d has an unassigned kernel", p)
		}
		if inst.gain <= 0 {
			t.Fatalf("program %d has non-positive gain %v", p, inst.gain)
		}
	}
}

func TestDrumChannelIsExcludedFromMixing(t *testing.T) {
	vt := NewVoiceTable()
	vt.voice[drumChannel][36].setGainSetpoint(400)
	vt.voice[drumChannel][36].setOn(true)
	m := newMixer(vt, &fakeSink{})

	frame := m.renderFrame()
	for _, s := range frame {
		if s != 0 {
			t.Fatalf("drum channel voice must never reach the mix, got sample %d", s)
		}
	}
}

func TestKernelsStayWithinGainBounds(t *testing.T) {
	v := &Voice{}
	v.gain = sustainMax * 127
	for name, k := range primitiveKernels {
		sample := k(v, 60, bendDefault, 0)
		limit := float64(sustainMax*127) * 2 // generous bound; kernels attenuate, never amplify past 2x
		if sample > limit || sample < -limit {
			t.Fatalf("kernel %s produced out-of-bound sample %v", name, sample)
		}
	}
}

func TestFlattenIsLinearInModulationGain(t *testing.T) {
	if flatten(modulationGain) != 1.0 {
		t.Fatalf("flatten(modulationGain) = %v, want 1.0", flatten(modulationGain))
	}
	if flatten(-modulationGain) != -1.0 {
		t.Fatalf("flatten(-modulationGain) = %v, want -1.0", flatten(-modulationGain))
	}
}
