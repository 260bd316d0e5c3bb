// Package scene holds declarative rigid-body scenes: which bodies exist, how
// big and heavy they are, and which joints tie them together.
//
// Scenes carry no engine state. They are plain data that the adapters in
// package physics turn into live worlds, and they round-trip through YAML so
// a scene can be edited without recompiling:
//
//	rigidsim dump machine > machine.yaml
//	rigidsim window --scene-file machine.yaml
//
// Three scenes are built in: [NewMoon], [NewLaunch] and [NewMachine].
package scene
