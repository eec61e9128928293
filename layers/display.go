package layers

import "fmt"

// Display describes one output the compositor composes into: a physical
// panel, an external screen, or a virtual capture sink.
type Display struct {
	// ID uniquely identifies the display within a snapshot.
	ID uint64
	// Name is the compositor-assigned label (e.g. "Built-in Screen").
	Name string
	// LayerStackID links the display to layers via Layer.StackID.
	LayerStackID uint32
	// Size is the active mode resolution.
	Size Rect
	// IsVirtual marks capture sinks (screen recording, casting).
	IsVirtual bool
	// IsOff marks displays that are currently powered down.
	IsOff bool
}

// IsOn reports whether the display is composing output.
func (d *Display) IsOn() bool { return !d.IsOff }

// String renders a short identity for error messages and listings.
func (d *Display) String() string {
	name := d.Name
	if name == "" {
		name = "<unnamed>"
	}
	return fmt.Sprintf("%s (id=%d, stack=%d)", name, d.ID, d.LayerStackID)
}
