// Package richtext implements the richText render function. Rich text is
// authored either as a structured document (a tree of typed nodes) or as an
// HTML or markdown string. Every form is converted to HTML, sanitised, and
// scanned for headings; headings inside the configured level range receive
// anchor ids and are appended to the page's current heading zone.
package richtext
