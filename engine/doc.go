// Package engine defines the host value types a snapshot can hold.
//
// Small fixed-size structs (vectors, rects, bounds, quaternions, colors)
// are captured inline. Curves, gradients and object handles are reference
// payloads and live in side tables.
package engine
