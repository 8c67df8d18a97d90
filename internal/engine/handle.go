package engine

import "math"

// MeshHandle identifies a registered cooked mesh. Handles are indices into
// an append-only registry: they stay valid for the life of the engine and
// are never reused.
type MeshHandle uint32

// ControllerHandle identifies a character controller, with the same
// append-only registry semantics as MeshHandle.
type ControllerHandle uint32

// Sentinel values returned alongside an error by failed creation calls.
const (
	InvalidMesh       MeshHandle       = math.MaxUint32
	InvalidController ControllerHandle = math.MaxUint32
)
