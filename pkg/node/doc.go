// Package node models the content tree walked by the renderer. A Node carries
// an optional render type, free-form props, marker tags under metadata.tags,
// and either leaf text or an ordered list of children.
//
// Nodes decode from JSON and YAML through the same FromValue conversion, so
// content authored in either format produces identical trees.
package node
