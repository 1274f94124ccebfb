package main

import (
	"fmt"
	"os"
)

// runPlayer wires a parsed file into the scheduler/mixer/visualizer
// pipeline and blocks until playback finishes, grounded on the
// audio_thread/video_thread join in original_source/main.c's int main.
func runPlayer(path string, loop bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fileError(fmt.Sprintf("cannot read %s: %v", path, err))
	}

	img := NewByteImage(data)
	mf, err := parseMidiFile(img)
	if err != nil {
		return err
	}

	vt := NewVoiceTable()
	scheduler := newScheduler(mf, vt, loop)

	sink, err := newBeepSink()
	if err != nil {
		return fmt.Errorf("audio sink init: %w", err)
	}
	mixer := newMixer(vt, sink)

	viz := newVisualizer()
	viz.open(fmt.Sprintf("minimidi - %s", path))
	defer viz.close()

	log().Info("starting playback", "file", path, "tracks", len(mf.tracks), "loop", loop)

	schedDone := make(chan error, 1)
	go func() {
		schedDone <- runGuarded(scheduler.run)
	}()
	go mixer.run()

	for !viz.shouldClose() {
		select {
		case err := <-schedDone:
			mixer.stop()
			return err
		default:
		}
		viz.draw(vt)
	}

	scheduler.stop()
	mixer.stop()
	<-schedDone
	log().Info("playback stopped")
	return nil
}

// runGuarded recovers a track-parse crash panic (see Track.crash in
// track.go) into the PlayerError it already carries, keeping the
// "no panics escape main" contract from spec.md §7.
func runGuarded(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if pe, ok := r.(*PlayerError); ok {
				err = pe
				return
			}
			panic(r)
		}
	}()
	return fn()
}

func main() {
	if err := initLogging("info"); err != nil {
		exitWith(err)
	}

	args := os.Args
	if len(args) < 2 || len(args) > 3 {
		exitWith(argcError("./minimidi <file> <loop [0, 1]>"))
	}

	loop := false
	if len(args) == 3 {
		loop = args[2] == "1"
	}

	if err := runGuarded(func() error { return runPlayer(args[1], loop) }); err != nil {
		exitWith(err)
	}
}

// exitWith prints a fatal error's message and terminates with its exit
// code, converting a bare error into a file-kind failure; this is the
// single os.Exit call site spec.md §7 requires.
func exitWith(err error) {
	if pe, ok := err.(*PlayerError); ok {
		fmt.Fprintln(os.Stderr, pe.Error())
		os.Exit(pe.ExitCode())
	}
	fmt.Fprintln(os.Stderr, err)
	os.Exit(exitFile)
}
