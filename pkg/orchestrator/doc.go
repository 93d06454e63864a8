// Package orchestrator runs whole render passes. It prepares the cross-item
// lookup tables, builds the render function registry, renders every item of
// every collection in order and wraps each one in the page layout. A pass is
// either static (every page), serverless (the page matching one request path)
// or preview (a single page from the supplied collections).
package orchestrator
