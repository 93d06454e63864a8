// Package template defines the template rendering seam shared by the field
// component and the page layout. The gotemplate subpackage provides the
// pongo2-backed implementation.
package template
