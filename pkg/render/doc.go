// Package render walks a content tree and turns it into markup. Each node is
// handed to the render function registered for its renderType; the function
// answers with the markup that goes before and after the node's children.
// Content filters from the hooks package may rewrite that markup on the way
// out, and every render pass records which components a page used and which
// headings its rich text produced.
package render
