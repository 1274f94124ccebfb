package main

import (
	"sync/atomic"
	"time"
)

// AudioSink is the external collaborator the mixer renders PCM frames
// into: queueDepth reports how many frames are already buffered for
// playback, queue appends one more stereo int16 frame, and pause toggles
// device playback. Grounded on the SDL audio device wrapped by
// Audio_Play in original_source/src/Audio.c, generalized to an interface
// so it can be backed by beep (sink.go) or a fake recorder in tests.
type AudioSink interface {
	queueDepth() int
	queue(frame []int16) error
	pause(p bool)
}

// Mixer is the sole consumer of the voice table: it rolls every active
// voice's envelope, clamps it, sums the FM-rendered waveform across all
// live channels and pitches, and hands fixed-size stereo frames to the
// sink, throttled against the sink's own queue depth. Grounded on
// Audio_Play in original_source/src/Audio.c and main.c.
type Mixer struct {
	vt   *VoiceTable
	sink AudioSink
	done int32 // atomic

	terminal *TerminalVisualizer
}

func newMixer(vt *VoiceTable, sink AudioSink) *Mixer {
	return &Mixer{vt: vt, sink: sink, terminal: newTerminalVisualizer()}
}

func (m *Mixer) stop() {
	atomic.StoreInt32(&m.done, 1)
}

func (m *Mixer) isDone() bool {
	return atomic.LoadInt32(&m.done) == 1
}

const (
	lowWatermark  = 3 * framesPerPeriod
	highWatermark = 5 * framesPerPeriod
)

func clampSample(mix float64) int16 {
	const limit = 32767.0
	if mix > limit {
		return int16(limit)
	}
	if mix < -limit-1 {
		return int16(-limit - 1)
	}
	return int16(mix)
}

// renderFrame fills one frame of framesPerPeriod stereo sample pairs by
// summing every live voice's FM-rendered waveform across every non-drum
// channel, rolling and clamping each voice's envelope along the way.
func (m *Mixer) renderFrame() []int16 {
	frame := make([]int16, framesPerPeriod*2)
	for i := 0; i < framesPerPeriod; i++ {
		var mix float64
		for ch := 0; ch < channelMax; ch++ {
			if ch == drumChannel {
				continue
			}
			state := &m.vt.channel[ch]
			inst := programTable[state.programValue()]
			bend := state.bendValue()
			for pitch := 0; pitch < notesMax; pitch++ {
				v := &m.vt.voice[ch][pitch]
				if !v.isOn() {
					continue
				}
				rollEnvelope(v)
				clampEnvelope(v)
				if v.gainValue() <= 0 {
					continue
				}
				mod := &m.vt.modulator[ch][pitch]
				rollEnvelope(mod)
				clampEnvelope(mod)
				mix += inst.render(v, mod, pitch, bend)
			}
		}
		sample := clampSample(mix * amplification)
		frame[2*i] = sample
		frame[2*i+1] = sample
	}
	return frame
}

// run polls the sink's queue depth, pausing playback while it's
// under-filled and feeding one more frame whenever there's room, exactly
// matching the watermark thresholds in Audio_Play. The terminal
// visualizer redraws every 10 cycles, the same cadence Audio_Play uses
// for Notes_Draw in original_source/src/Audio.c, so a plain headless run
// still has a live view of the voice table without the raylib window.
func (m *Mixer) run() {
	for cycles := 0; !m.isDone(); cycles++ {
		depth := m.sink.queueDepth()
		m.sink.pause(depth < lowWatermark)
		if depth < highWatermark {
			frame := m.renderFrame()
			m.sink.queue(frame)
		}
		if cycles%10 == 0 {
			m.terminal.draw(m.vt)
		}
		time.Sleep(time.Millisecond)
	}
	m.terminal.clear()
}
