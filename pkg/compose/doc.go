// Package compose implements content-template composition: extracting
// template skeletons out of a content list and filling their slots and
// repeat regions from the remaining entries.
//
// Both steps are synchronous and never touch their inputs beyond the deep
// copies they make, so they are safe to call from any render function.
package compose
