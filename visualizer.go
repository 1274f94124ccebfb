package main

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Visualizer is an optional, read-only window onto the voice table: one
// bar per live (channel, pitch) voice, colored by channel, redrawn every
// frame from takeSnapshot. Grounded on Renderer in
// tanaygodse-GHero/renderer.go (window lifecycle, rl.BeginDrawing /
// rl.DrawText / rl.MeasureText idioms) generalized from rhythm-game
// lanes to a MIDI voice display, and on the per-channel instrument:gain
// layout of Notes_Draw in original_source/src/Notes.c.
type Visualizer struct {
	screenWidth  int32
	screenHeight int32
}

var channelColors = [channelMax]rl.Color{
	rl.Red, rl.Orange, rl.Gold, rl.Lime,
	rl.Green, rl.SkyBlue, rl.Blue, rl.Purple,
	rl.Violet, rl.Pink, rl.Maroon, rl.Beige,
	rl.Brown, rl.DarkGreen, rl.DarkBlue, rl.DarkPurple,
}

func newVisualizer() *Visualizer {
	return &Visualizer{screenWidth: 800, screenHeight: 600}
}

func (v *Visualizer) open(title string) {
	rl.InitWindow(v.screenWidth, v.screenHeight, title)
	rl.SetTargetFPS(60)
}

func (v *Visualizer) close() {
	rl.CloseWindow()
}

func (v *Visualizer) shouldClose() bool {
	return rl.WindowShouldClose()
}

// draw renders one frame: a vertical bar per audible voice, positioned
// by pitch along the x axis and scaled by gain along the y axis.
func (v *Visualizer) draw(vt *VoiceTable) {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	snap := takeSnapshot(vt)
	barWidth := float32(v.screenWidth) / float32(notesMax)
	maxGain := float32(sustainMax * 127)

	for _, s := range snap {
		height := float32(s.Gain) / maxGain * float32(v.screenHeight)
		x := float32(s.Pitch) * barWidth
		y := float32(v.screenHeight) - height
		rl.DrawRectangle(int32(x), int32(y), int32(barWidth)+1, int32(height), channelColors[s.Channel])
	}

	label := fmt.Sprintf("voices: %d", len(snap))
	rl.DrawText(label, 10, 10, 20, rl.White)

	rl.EndDrawing()
}
