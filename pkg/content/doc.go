// Package content defines the page-level data model shared by the item
// renderer and its delegated collaborators: content items, page meta, the
// page data handed to render functions, and the layout, navigation, slug and
// pagination contracts.
package content
