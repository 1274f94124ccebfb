package main

import (
	"fmt"
	"os"
)

// VoiceSnapshot is a single (channel, pitch) reading taken without
// locking, tearing-tolerant by design since it only feeds a display.
type VoiceSnapshot struct {
	Pitch      int
	Channel    int
	Instrument uint8
	Gain       int32
}

// takeSnapshot returns a point-in-time, read-only projection of every audible
// voice in a VoiceTable, grounded on the Notes struct in
// original_source/src/Notes.c.
func takeSnapshot(vt *VoiceTable) []VoiceSnapshot {
	var out []VoiceSnapshot
	for pitch := 0; pitch < notesMax; pitch++ {
		for ch := 0; ch < channelMax; ch++ {
			v := &vt.voice[ch][pitch]
			gain := v.gainValue()
			if gain <= 0 {
				continue
			}
			out = append(out, VoiceSnapshot{
				Pitch:      pitch,
				Channel:    ch,
				Instrument: vt.channel[ch].programValue(),
				Gain:       gain,
			})
		}
	}
	return out
}

// TerminalVisualizer redraws a fixed-size grid of pitches in place,
// coloring each audible pitch cell green (silent ones red) and annotating it with
// instrument:gain:channel triples per active channel, grounded on
// Notes_Draw in original_source/src/Notes.c.
type TerminalVisualizer struct {
	rows int
	cols int
}

func newTerminalVisualizer() *TerminalVisualizer {
	const rows = 32
	return &TerminalVisualizer{rows: rows, cols: notesMax / rows}
}

const (
	ansiGreen  = "\x1b[0;32m"
	ansiRed    = "\x1b[0;31m"
	ansiNormal = "\x1b[0;00m"
)

func (tv *TerminalVisualizer) draw(vt *VoiceTable) {
	const perRowSlots = 4
	pitch := 0
	for y := 0; y < tv.rows; y++ {
		for x := 0; x < tv.cols; x++ {
			audible := false
			for ch := 0; ch < channelMax; ch++ {
				if vt.voice[ch][pitch].gainValue() > 0 {
					audible = true
					break
				}
			}
			color := ansiRed
			if audible {
				color = ansiGreen
			}
			fmt.Printf("%s%4d", color, pitch)
			got := 0
			for ch := 0; ch < channelMax; ch++ {
				gain := vt.voice[ch][pitch].gainValue()
				if gain <= 0 {
					continue
				}
				fmt.Printf("%3X:%3X:%1X", vt.channel[ch].programValue(), gain, ch)
				got++
			}
			for i := 0; i < perRowSlots-got; i++ {
				fmt.Printf("%9s", "")
			}
			pitch++
		}
		fmt.Println()
	}
	fmt.Printf("\x1B[%dA\r%s", tv.rows, ansiNormal)
}

func (tv *TerminalVisualizer) clear() {
	for i := 0; i < tv.rows; i++ {
		fmt.Fprintln(os.Stdout)
	}
}
