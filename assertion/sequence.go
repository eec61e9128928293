package assertion

import (
	"fmt"

	"github.com/surfkit/layertrace/trace"
)

// Sequence is an ordered chain of assertions describing a UI transition:
// each step must hold for a non-empty contiguous run of trace entries, the
// runs appear in step order, and together they cover the whole trace.
//
// A step ends exactly when it stops holding; at that entry the next step
// must already hold, otherwise the transition is broken.
type Sequence struct {
	steps []Assertion
}

// NewSequence starts an empty chain.
func NewSequence() *Sequence { return &Sequence{} }

// Then appends the next expected phase of the transition.
func (s *Sequence) Then(a Assertion) *Sequence {
	s.steps = append(s.steps, a)
	return s
}

// Evaluate walks the trace once, advancing through the chain greedily.
// It fails when an entry satisfies neither the current step nor the next,
// or when the trace ends with steps still unvisited.
// Complexity: O(entries) assertion checks.
func (s *Sequence) Evaluate(tr *trace.Trace) error {
	if len(s.steps) == 0 {
		return ErrNoAssertions
	}
	entries := tr.Entries()
	if len(entries) == 0 {
		return trace.ErrEmptyTrace
	}

	step, matched := 0, 0
	for _, e := range entries {
		err := s.steps[step].Check(e)
		if err == nil {
			matched++
			continue
		}
		if matched > 0 && step+1 < len(s.steps) {
			step++
			next := s.steps[step].Check(e)
			if next == nil {
				matched = 1
				continue
			}
			return fmt.Errorf("at elapsed %dns: %q no longer holds and %q does not hold yet: %w",
				e.ElapsedTimestamp, s.steps[step-1].Name, s.steps[step].Name, next)
		}
		return fmt.Errorf("at elapsed %dns: %w", e.ElapsedTimestamp, err)
	}

	if step != len(s.steps)-1 {
		return fmt.Errorf("%w: trace ended before %q was reached",
			ErrAssertionFailed, s.steps[step+1].Name)
	}
	return nil
}
