package main

import (
	"sync/atomic"
	"time"
)

// Scheduler drives every track forward in lockstep, converting MIDI
// ticks to wall-clock delay via the current tempo and dispatching due
// events into the shared voice table. Grounded on Midi_Play,
// Midi_ShaveTicks and Midi_ToMicrosecondDelay in original_source/Midi.c
// and main.c.
type Scheduler struct {
	mf   *MidiFile
	vt   *VoiceTable
	loop bool

	done int32 // atomic, set once playback should stop

	// sleepError accumulates the difference between requested and actual
	// sleep duration for the closed-loop corrector below; there is no
	// analogue for this in original_source, which sleeps open-loop via
	// SDL_Delay and tolerates the resulting drift.
	sleepError time.Duration
}

func newScheduler(mf *MidiFile, vt *VoiceTable, loop bool) *Scheduler {
	return &Scheduler{mf: mf, vt: vt, loop: loop}
}

func (s *Scheduler) stop() {
	atomic.StoreInt32(&s.done, 1)
}

func (s *Scheduler) isDone() bool {
	return atomic.LoadInt32(&s.done) == 1
}

// allStopped reports whether every track has reached End-Of-Track.
func (s *Scheduler) allStopped() bool {
	for _, t := range s.mf.tracks {
		if t.running {
			return false
		}
	}
	return true
}

// shaveTicks finds the smallest pending delta among running tracks and
// subtracts it from every running track, the way Midi_ShaveTicks keeps
// all tracks' clocks synchronized to the nearest upcoming event.
func (s *Scheduler) shaveTicks() int64 {
	var min int64 = -1
	for _, t := range s.mf.tracks {
		if !t.running {
			continue
		}
		if min == -1 || t.pendingDelta < min {
			min = t.pendingDelta
		}
	}
	if min == -1 {
		return 0
	}
	for _, t := range s.mf.tracks {
		t.advanceTime(min)
	}
	return min
}

// microsecondDelay converts a tick count to a wall-clock delay using the
// live tempo, grounded on Midi_ToMicrosecondDelay.
func (s *Scheduler) microsecondDelay(ticks int64) time.Duration {
	if ticks <= 0 {
		return 0
	}
	us := ticks * int64(s.mf.tempo) / int64(s.mf.timeDivision)
	return time.Duration(us) * time.Microsecond
}

// sleep waits for d, correcting future waits by the error accumulated
// from prior calls so that scheduler jitter from OS timer granularity
// does not compound across a long playback; this closed-loop correction
// has no precedent in original_source and is a deliberate addition for
// parity with spec.md's resolution of that Open Question.
func (s *Scheduler) sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	target := d + s.sleepError
	if target <= 0 {
		s.sleepError += d
		return
	}
	start := time.Now()
	time.Sleep(target)
	actual := time.Since(start)
	s.sleepError += d - actual
}

// run drives playback to completion (or until stop is called), looping
// the whole file from the start when s.loop is set.
func (s *Scheduler) run() error {
	for !s.isDone() {
		for _, t := range s.mf.tracks {
			t.dispatchIfDue(s.vt, &s.mf.tempo)
		}
		if s.allStopped() {
			if !s.loop {
				s.stop()
				return nil
			}
			if err := s.mf.reset(); err != nil {
				return err
			}
			continue
		}
		ticks := s.shaveTicks()
		s.sleep(s.microsecondDelay(ticks))
	}
	return nil
}
