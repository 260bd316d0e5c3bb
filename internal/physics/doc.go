// Package physics adapts external rigid-body engines to [dynamo.World].
//
// Nothing in here integrates motion. Each adapter turns a [scene.Scene] into
// the engine's own bodies, fixtures and joints, forwards Step, and reads
// positions back:
//
//   - [Box2DWorld]: github.com/ByteArena/box2d, supports every joint kind
//   - [ChipmunkWorld]: github.com/jakecoffman/cp, joint-free scenes only
//
// Bodies are reported in scene declaration order.
package physics
