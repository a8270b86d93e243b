// Package treewire defines the generic wire tree shared by all codec
// packages: named elements carrying an ordered attribute list and an
// ordered child list, plus leaf text nodes.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	treewire/            Root package with the Node model and reserved vocabulary
//	├── codec/           Schema-driven conversion between values and wire trees
//	├── schemafile/      YAML type descriptions compiled to codec schemas
//	├── xmltext/         XML text to/from the Node model
//	└── errors/          Structured error types for debugging
//
// # Wire Tree
//
// A Node is either an Element or a Text leaf:
//
//	Element{Name, Attrs, Children}
//	Text{Content}
//
// Attribute keys are not required to be unique. The codec itself reads
// and writes only the reserved vocabulary below; everything else is
// application data.
//
// # Reserved Vocabulary
//
//	Name                  Meaning
//	─────────────────────────────────────────────────────────────
//	"record"   (element)  wrapper produced by record encoding
//	"record"="unwrapped"  node already extracted from a field slot
//	"variant"  (element)  tagged sum; first child is the tag text
//	"__option" (element)  optional value; empty = none
//	"l"        (element)  sequence wrapper
//	"p"        (element)  scalar wrapper
//
// Downstream systems depend on these exact strings; they are part of
// the wire contract, not an implementation detail.
//
// # Lifecycle
//
// Nodes are ephemeral: constructed bottom-up during one conversion
// call and discarded. Construction is append-only; no node is mutated
// after it is built. Helpers that "modify" a node, such as
// MarkUnwrapped, return a copy.
package treewire
