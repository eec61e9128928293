package snapshot

import (
	"errors"
	"fmt"

	"github.com/surfkit/layertrace/layers"
)

// Sentinel errors for snapshot construction.
var (
	// ErrDuplicateLayer indicates two input layers share the same id.
	ErrDuplicateLayer = errors.New("snapshot: duplicate layer id")
	// ErrOrphanLayer indicates a layer references a parent id absent from
	// the snapshot and no orphan policy tolerated it.
	ErrOrphanLayer = errors.New("snapshot: orphan layer")
	// ErrBuilderReused indicates Build was called twice on one Builder.
	ErrBuilderReused = errors.New("snapshot: builder already consumed")
)

// DuplicateError reports a layer id collision during deduplication.
// It unwraps to ErrDuplicateLayer.
type DuplicateError struct {
	Existing *layers.Layer
	Incoming *layers.Layer
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("snapshot: duplicate layer id %d: %s collides with %s",
		e.Incoming.ID, e.Incoming, e.Existing)
}

func (e *DuplicateError) Unwrap() error { return ErrDuplicateLayer }

// OrphanError reports a layer whose parent id resolved to nothing and whose
// orphan policy (or the default) rejected it. It unwraps to ErrOrphanLayer.
type OrphanError struct {
	Layer *layers.Layer
}

func (e *OrphanError) Error() string {
	return fmt.Sprintf("snapshot: layer %s references missing parent id %d",
		e.Layer, e.Layer.ParentID)
}

func (e *OrphanError) Unwrap() error { return ErrOrphanLayer }
