package render

import (
	"context"
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/san-kum/rigidsim/internal/dynamo"
	"github.com/san-kum/rigidsim/internal/scene"
)

type fakeSurface struct {
	closeAfter int
	polls      int
	closedSeen bool
	inFrame    bool
	frames     int
	draws      int
	lateDraws  int
	closes     int
	bg         color.RGBA
	last       []Sprite
}

func (s *fakeSurface) ShouldClose() bool {
	s.polls++
	if s.closeAfter > 0 && s.polls > s.closeAfter {
		s.closedSeen = true
	}
	return s.closedSeen
}

func (s *fakeSurface) BeginFrame(bg color.RGBA) {
	s.inFrame = true
	s.bg = bg
	s.last = s.last[:0]
}

func (s *fakeSurface) DrawBox(sp Sprite) {
	if s.closedSeen {
		s.lateDraws++
	}
	s.draws++
	s.last = append(s.last, sp)
}

func (s *fakeSurface) EndFrame() {
	s.inFrame = false
	s.frames++
}

func (s *fakeSurface) Close() { s.closes++ }

// slideWorld moves one dynamic body right by 1 m per step.
type slideWorld struct {
	x float64
}

func (w *slideWorld) Step(dt float64, vi, pi int) { w.x++ }

func (w *slideWorld) Bodies() []dynamo.BodyState {
	return []dynamo.BodyState{
		{Name: "ground", X: 0, Y: 0},
		{Name: "box", X: w.x, Y: 10, Angle: math.Pi / 2},
	}
}

func testScene() *scene.Scene {
	return &scene.Scene{
		Name: "slide",
		Bodies: []scene.Body{
			{Name: "ground", Kind: scene.Static, Width: 20, Height: 1, Color: "blue"},
			{Name: "box", Kind: scene.Dynamic, Y: 10, Width: 2, Height: 1, Color: "yellow"},
		},
	}
}

func TestTransform(t *testing.T) {
	tf := DefaultTransform(900)

	tests := []struct {
		x, y   float64
		sx, sy float64
	}{
		{0, 0, 0, 900},
		{90, 90, 900, 0},
		{2, 85, 20, 50},
		{55, 30, 550, 600},
	}
	for _, tt := range tests {
		sx, sy := tf.Point(tt.x, tt.y)
		if math.Abs(sx-tt.sx) > 1e-9 || math.Abs(sy-tt.sy) > 1e-9 {
			t.Errorf("Point(%v, %v) = (%v, %v), want (%v, %v)", tt.x, tt.y, sx, sy, tt.sx, tt.sy)
		}
	}

	if got := tf.Rotation(math.Pi / 6); math.Abs(got+30) > 1e-9 {
		t.Errorf("Rotation(pi/6) = %v, want -30", got)
	}
	if got := tf.Length(1.5); got != 15 {
		t.Errorf("Length(1.5) = %v, want 15", got)
	}
}

func TestNewSprites(t *testing.T) {
	sprites := NewSprites(testScene(), 900)

	ground, ok := sprites.Get("ground")
	if !ok {
		t.Fatal("ground sprite missing")
	}
	if ground.Color != StaticFill {
		t.Errorf("static body should be red, got %v", ground.Color)
	}
	if ground.Width != 200 || ground.Height != 10 {
		t.Errorf("unexpected ground size %vx%v", ground.Width, ground.Height)
	}

	box, _ := sprites.Get("box")
	if box.Color != (color.RGBA{255, 255, 0, 255}) {
		t.Errorf("expected yellow box, got %v", box.Color)
	}
	if box.Y != 800 {
		t.Errorf("expected box at y=800 px, got %v", box.Y)
	}
}

func TestMachineSprites(t *testing.T) {
	sc := scene.NewMachine()
	sprites := NewSprites(sc, float64(sc.WindowOrDefault().Height))

	if len(sprites.Items()) != len(sc.Bodies) {
		t.Fatalf("expected %d sprites, got %d", len(sc.Bodies), len(sprites.Items()))
	}
	block, _ := sprites.Get("block2")
	if math.Abs(block.X-135) > 1e-9 || math.Abs(block.Y-155) > 1e-9 {
		t.Errorf("block2 at (%v, %v), want (135, 155)", block.X, block.Y)
	}
	if block.Width != 10 || block.Height != 80 {
		t.Errorf("block2 size %vx%v, want 10x80", block.Width, block.Height)
	}
	ramp, _ := sprites.Get("ramp1")
	if math.Abs(ramp.Rotation-30) > 1e-9 {
		t.Errorf("ramp1 rotation %v, want 30", ramp.Rotation)
	}
}

func TestParseColor(t *testing.T) {
	def := color.RGBA{1, 2, 3, 255}
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"blue", color.RGBA{0, 0, 255, 255}},
		{" Green ", color.RGBA{0, 255, 0, 255}},
		{"#102030", color.RGBA{0x10, 0x20, 0x30, 255}},
		{"#zzzzzz", def},
		{"", def},
	}
	for _, tt := range tests {
		if got := ParseColor(tt.in, def); got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoopStopsOnClose(t *testing.T) {
	surface := &fakeSurface{closeAfter: 5}
	sim := dynamo.New(&slideWorld{})
	cfg := dynamo.DefaultConfig()
	cfg.Steps = 0

	frames, err := Loop(context.Background(), surface, sim, cfg, NewSprites(testScene(), 900))
	if err != nil {
		t.Fatal(err)
	}
	if frames != 5 || surface.frames != 5 {
		t.Errorf("expected 5 frames, got %d (surface saw %d)", frames, surface.frames)
	}
	if sim.Steps() != 5 {
		t.Errorf("expected 5 steps, got %d", sim.Steps())
	}
	if surface.lateDraws != 0 {
		t.Errorf("drew %d sprites after close", surface.lateDraws)
	}
	if surface.closes != 1 {
		t.Errorf("expected one Close, got %d", surface.closes)
	}
	if surface.bg != Background {
		t.Errorf("expected black background, got %v", surface.bg)
	}
}

func TestLoopDrawsPoseBeforeStep(t *testing.T) {
	surface := &fakeSurface{closeAfter: 3}
	sim := dynamo.New(&slideWorld{})
	cfg := dynamo.DefaultConfig()
	cfg.Steps = 0

	if _, err := Loop(context.Background(), surface, sim, cfg, NewSprites(testScene(), 900)); err != nil {
		t.Fatal(err)
	}

	// third frame shows the pose after two steps
	var box Sprite
	for _, s := range surface.last {
		if s.Name == "box" {
			box = s
		}
	}
	if box.X != 20 {
		t.Errorf("expected box at x=20 px, got %v", box.X)
	}
	if math.Abs(box.Rotation+90) > 1e-9 {
		t.Errorf("expected rotation -90, got %v", box.Rotation)
	}
}

func TestLoopStepLimit(t *testing.T) {
	surface := &fakeSurface{}
	sim := dynamo.New(&slideWorld{})
	cfg := dynamo.DefaultConfig()

	frames, err := Loop(context.Background(), surface, sim, cfg, NewSprites(testScene(), 900))
	if err != nil {
		t.Fatal(err)
	}
	if frames != dynamo.DefaultSteps {
		t.Errorf("expected %d frames, got %d", dynamo.DefaultSteps, frames)
	}
	if surface.draws != 2*dynamo.DefaultSteps {
		t.Errorf("expected two sprites per frame, got %d draws", surface.draws)
	}
}

func TestLoopClosedBeforeFirstFrame(t *testing.T) {
	surface := &fakeSurface{closedSeen: true}
	sim := dynamo.New(&slideWorld{})

	frames, err := Loop(context.Background(), surface, sim, dynamo.DefaultConfig(), NewSprites(testScene(), 900))
	if err != nil {
		t.Fatal(err)
	}
	if frames != 0 || surface.draws != 0 || sim.Steps() != 0 {
		t.Errorf("expected nothing drawn or stepped, got %d frames %d draws %d steps", frames, surface.draws, sim.Steps())
	}
	if surface.closes != 1 {
		t.Error("surface should still be closed")
	}
}

func TestLoopContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	surface := &fakeSurface{}
	cfg := dynamo.DefaultConfig()
	cfg.Steps = 0
	_, err := Loop(ctx, surface, dynamo.New(&slideWorld{}), cfg, NewSprites(testScene(), 900))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if surface.closes != 1 {
		t.Error("surface should be closed on cancel")
	}
}

func TestLoopInvalidConfig(t *testing.T) {
	surface := &fakeSurface{}
	cfg := dynamo.DefaultConfig()
	cfg.Dt = 0

	_, err := Loop(context.Background(), surface, dynamo.New(&slideWorld{}), cfg, NewSprites(testScene(), 900))
	if !errors.Is(err, dynamo.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
	if surface.closes != 1 {
		t.Error("surface should be closed on error")
	}
}
