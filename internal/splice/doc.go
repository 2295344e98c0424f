// Package splice turns markdown text into Go doc comments and back.
//
// A documentation unit is rendered as a complete Go source file in one of
// two forms:
//
//   - attached: the text documents a supplied declaration, which is emitted
//     verbatim. A package clause target makes the text the package doc.
//   - standalone: the text documents an empty import block, an inert
//     placeholder that exists only to carry the comment.
//
// Rendering is pure. The only change made to the text is Normalize, which
// removes what the Go scanner would drop or reject anyway. Extract parses a
// rendered file and recovers the unit, so for any accepted text t:
//
//	Extract(Render(t)).Unit.Text == Normalize(t)
package splice
