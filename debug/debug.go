package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Capture bool
	Tree    bool
	Encode  bool
	Decode  bool
	Slots   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Capture = boolEnv("SNAP_DEBUG_CAPTURE")
	d.Tree = boolEnv("SNAP_DEBUG_TREE")
	d.Encode = boolEnv("SNAP_DEBUG_ENCODE")
	d.Decode = boolEnv("SNAP_DEBUG_DECODE")
	d.Slots = boolEnv("SNAP_DEBUG_SLOTS")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Capture() bool {
	return d.Capture
}
func Tree() bool {
	return d.Tree
}
func Encode() bool {
	return d.Encode
}
func Decode() bool {
	return d.Decode
}
func Slots() bool {
	return d.Slots
}

// JSON marks a Logf argument to be rendered as indented JSON.
type JSON struct{ V any }

func Logf(msg string, args ...any) {
	for i := range args {
		switch x := args[i].(type) {
		case JSON:
			d, err := json.MarshalIndent(x.V, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", x.V)
				continue
			}
			args[i] = string(d)
		case []byte:
			args[i] = fmt.Sprintf("% x", x)
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
