// Package dump reads and writes per-frame compositor dumps in layertrace's
// own document schema (JSON or YAML) and bridges them to the snapshot
// builder.
//
// What:
//
//   - Document: one flat dump — layers, displays, capture metadata. Layer
//     relations are id references (parent, zOrderRelativeOf), never
//     pointers, so documents are plain data with no cycles.
//   - Decode/DecodeJSON/DecodeYAML: read a document; Decode sniffs the
//     format from the first non-whitespace byte.
//   - Document.Snapshot: run the hierarchy builder over the document.
//   - FromSnapshot + EncodeJSON/EncodeYAML: export a built snapshot back
//     to flat document form (depth-first layer order).
//
// The schema is deliberately layertrace's own: mirroring any compositor's
// native binary trace format is out of scope. Capture tooling is expected
// to translate into this schema.
//
// Unset reference fields decode to "no parent" / "no z-order target";
// an absent color decodes to the no-fill sentinel with full alpha, and an
// absent transform to the identity.
package dump
