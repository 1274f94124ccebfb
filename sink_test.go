package main

import "sync"

// fakeSink is a recording AudioSink used by tests in place of beepSink,
// so mixer/scheduler behavior can be asserted without a real audio
// device.
type fakeSink struct {
	mu     sync.Mutex
	frames [][]int16
	paused bool
}

func (f *fakeSink) queueDepth() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.frames) * framesPerPeriod
}

func (f *fakeSink) queue(frame []int16) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := make([]int16, len(frame))
	copy(cp, frame)
	f.frames = append(f.frames, cp)
	return nil
}

func (f *fakeSink) pause(p bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paused = p
}
