package render

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Surface is something sprites can be drawn on, one frame at a time.
type Surface interface {
	ShouldClose() bool
	BeginFrame(bg color.RGBA)
	DrawBox(s Sprite)
	EndFrame()
	Close()
}

// Window is a raylib window.
type Window struct {
	closed bool
}

func NewWindow(width, height int, title string) *Window {
	rl.InitWindow(int32(width), int32(height), title)
	rl.SetTargetFPS(60)
	return &Window{}
}

func (w *Window) ShouldClose() bool {
	return w.closed || rl.WindowShouldClose()
}

func (w *Window) BeginFrame(bg color.RGBA) {
	rl.BeginDrawing()
	rl.ClearBackground(bg)
}

func (w *Window) DrawBox(s Sprite) {
	rec := rl.NewRectangle(float32(s.X), float32(s.Y), float32(s.Width), float32(s.Height))
	origin := rl.NewVector2(float32(s.Width/2), float32(s.Height/2))
	rl.DrawRectanglePro(rec, origin, float32(s.Rotation), s.Color)
}

func (w *Window) EndFrame() {
	rl.EndDrawing()
}

func (w *Window) Close() {
	if w.closed {
		return
	}
	w.closed = true
	rl.CloseWindow()
}
