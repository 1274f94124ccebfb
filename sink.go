package main

import (
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
)

// beepSink backs AudioSink with the beep/speaker device, grounded on
// AudioManager in tanaygodse-GHero/audio_manager.go. Where the teacher's
// streamer synthesizes samples lazily inside Stream, the mixer here is
// the one doing the synthesis; beepSink is just a pull/push adapter
// between the mixer's push-style frame production and beep's pull-style
// Stream callback, buffering interleaved int16 stereo samples between
// the two.
type beepSink struct {
	mu   sync.Mutex
	buf  []int16
	ctrl *beep.Ctrl
}

// newBeepSink initializes the speaker device and starts a silent,
// paused stream that the mixer will feed and unpause as frames arrive.
func newBeepSink() (*beepSink, error) {
	rate := beep.SampleRate(sampleRate)
	if err := speaker.Init(rate, rate.N(time.Second/20)); err != nil {
		return nil, err
	}
	s := &beepSink{}
	s.ctrl = &beep.Ctrl{Streamer: s, Paused: true}
	volume := &effects.Volume{Streamer: s.ctrl, Base: 2, Volume: 0, Silent: false}
	speaker.Play(volume)
	return s, nil
}

func (s *beepSink) queueDepth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buf) / 2
}

func (s *beepSink) queue(frame []int16) error {
	s.mu.Lock()
	s.buf = append(s.buf, frame...)
	s.mu.Unlock()
	return nil
}

func (s *beepSink) pause(p bool) {
	speaker.Lock()
	s.ctrl.Paused = p
	speaker.Unlock()
}

// Stream implements beep.Streamer, draining buffered int16 pairs into
// beep's normalized float64 stereo format and padding with silence when
// the mixer hasn't kept up.
func (s *beepSink) Stream(samples [][2]float64) (n int, ok bool) {
	s.mu.Lock()
	avail := len(s.buf) / 2
	take := len(samples)
	if avail < take {
		take = avail
	}
	for i := 0; i < take; i++ {
		samples[i][0] = float64(s.buf[2*i]) / 32768.0
		samples[i][1] = float64(s.buf[2*i+1]) / 32768.0
	}
	s.buf = s.buf[2*take:]
	s.mu.Unlock()

	for i := take; i < len(samples); i++ {
		samples[i][0] = 0
		samples[i][1] = 0
	}
	return len(samples), true
}

func (s *beepSink) Err() error {
	return nil
}
