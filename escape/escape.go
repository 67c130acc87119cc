// Package escape makes arbitrary text safe to embed in a JavaScript template
// literal.
package escape

import "strings"

// Template escapes s for safe embedding inside a JavaScript template literal
// (`...`). Neutralizes \, ` and ${ so the literal neither terminates early
// nor interpolates.
//
// Backslashes are escaped first, otherwise the backslashes added for ` and ${
// would be doubled by a later pass.
//
// Carriage returns are left as is. JavaScript turns CRLF and CR inside a
// template literal into LF, so text with CR line endings only round trips
// after its newlines are normalized.
func Template(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "`", "\\`")
	s = strings.ReplaceAll(s, "${", `\${`)
	return s
}

// Counts holds the number of occurrences of each sequence Template rewrites.
type Counts struct {
	Backslashes   int
	Backticks     int
	Interpolation int
}

// Total number of escapes.
func (c Counts) Total() int {
	return c.Backslashes + c.Backticks + c.Interpolation
}

// Count reports how many escapes Template(s) will insert.
func Count(s string) Counts {
	return Counts{
		Backslashes:   strings.Count(s, `\`),
		Backticks:     strings.Count(s, "`"),
		Interpolation: strings.Count(s, "${"),
	}
}
