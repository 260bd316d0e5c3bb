// Package render draws a running simulation onto a window.
//
// Scenes are laid out in metres with y pointing up; windows are in pixels
// with y pointing down. Transform maps one onto the other at
// scene.PixelsPerMeter pixels per metre, and Loop drives a Simulator while
// redrawing one sprite per body until the window is closed:
//
//	win := render.NewWindow(900, 900, "machine")
//	frames, err := render.Loop(ctx, win, sim, cfg, render.NewSprites(sc, 900))
package render
