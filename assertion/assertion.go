package assertion

import (
	"errors"
	"fmt"
	"strings"

	"github.com/surfkit/layertrace/layers"
	"github.com/surfkit/layertrace/snapshot"
	"github.com/surfkit/layertrace/trace"
)

// Sentinel errors for assertion evaluation.
var (
	// ErrAssertionFailed indicates a snapshot or trace violated an assertion.
	ErrAssertionFailed = errors.New("assertion: assertion failed")
	// ErrNoAssertions indicates a sequence was evaluated without steps.
	ErrNoAssertions = errors.New("assertion: sequence has no assertions")
)

// Assertion is a named predicate over a single snapshot. Check returns nil
// when the snapshot satisfies the predicate and a descriptive error
// (wrapping ErrAssertionFailed) when it does not.
type Assertion struct {
	Name  string
	Check func(*snapshot.Snapshot) error
}

// LayerExists asserts that at least one layer with the given name is part
// of the reconstructed forest, visible or not.
func LayerExists(name string) Assertion {
	return Assertion{
		Name: fmt.Sprintf("exists(%s)", name),
		Check: func(s *snapshot.Snapshot) error {
			if len(s.LayersByName(name)) > 0 {
				return nil
			}
			return fmt.Errorf("%w: no layer named %q in %s", ErrAssertionFailed, name, s)
		},
	}
}

// LayerIsVisible asserts that at least one layer with the given name
// contributes pixels to the frame.
func LayerIsVisible(name string) Assertion {
	return Assertion{
		Name: fmt.Sprintf("isVisible(%s)", name),
		Check: func(s *snapshot.Snapshot) error {
			matches := s.LayersByName(name)
			if len(matches) == 0 {
				return fmt.Errorf("%w: no layer named %q in %s", ErrAssertionFailed, name, s)
			}
			var reasons []string
			for _, l := range matches {
				if l.IsVisible() {
					return nil
				}
				reasons = append(reasons, l.Describe())
			}
			return fmt.Errorf("%w: layer %q is not visible: %s",
				ErrAssertionFailed, name, strings.Join(reasons, "; "))
		},
	}
}

// LayerIsInvisible asserts that no layer with the given name contributes
// pixels, whether absent from the forest or present but invisible.
func LayerIsInvisible(name string) Assertion {
	return Assertion{
		Name: fmt.Sprintf("isInvisible(%s)", name),
		Check: func(s *snapshot.Snapshot) error {
			for _, l := range s.LayersByName(name) {
				if l.IsVisible() {
					return fmt.Errorf("%w: layer %s is visible", ErrAssertionFailed, l)
				}
			}
			return nil
		},
	}
}

// VisibleRegionCovers asserts that the combined visible region of layers
// with the given name encloses the target rect.
func VisibleRegionCovers(name string, target layers.Rect) Assertion {
	return Assertion{
		Name: fmt.Sprintf("covers(%s, %s)", name, target),
		Check: func(s *snapshot.Snapshot) error {
			matches := s.LayersByName(name)
			if len(matches) == 0 {
				return fmt.Errorf("%w: no layer named %q in %s", ErrAssertionFailed, name, s)
			}
			for _, l := range matches {
				if l.VisibleRegion.Bounds().Contains(target) {
					return nil
				}
			}
			return fmt.Errorf("%w: no layer named %q covers %s", ErrAssertionFailed, name, target)
		},
	}
}

// Not inverts an assertion, keeping a readable name.
func Not(a Assertion) Assertion {
	return Assertion{
		Name: "not(" + a.Name + ")",
		Check: func(s *snapshot.Snapshot) error {
			if err := a.Check(s); err != nil {
				return nil
			}
			return fmt.Errorf("%w: %s holds but was expected not to", ErrAssertionFailed, a.Name)
		},
	}
}

// Verify checks that the assertion holds on every entry of the trace.
// The returned error names the first failing entry's elapsed time.
func Verify(tr *trace.Trace, a Assertion) error {
	entries := tr.Entries()
	if len(entries) == 0 {
		return trace.ErrEmptyTrace
	}
	for _, e := range entries {
		if err := a.Check(e); err != nil {
			return fmt.Errorf("at elapsed %dns: %w", e.ElapsedTimestamp, err)
		}
	}
	return nil
}
