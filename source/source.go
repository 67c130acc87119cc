// Package source builds the generated JavaScript file: an ordered list of
// const declarations, each holding a template literal.
package source

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/utilitycheck/utility-data/escape"
)

// Declaration is a single `const Name = `Content`;` line. Content is already
// escaped.
type Declaration struct {
	Name    string
	Content string
}

// NewDeclaration escapes raw and returns the declaration for it.
func NewDeclaration(name, raw string) Declaration {
	return Declaration{Name: name, Content: escape.Template(raw)}
}

// Document is the output file. Declarations are emitted in order.
type Document struct {
	// Header is written as a line comment before the declarations when set.
	Header       string
	Declarations []Declaration
}

// GeneratedHeader returns the conventional "Code generated ... DO NOT EDIT."
// marker for the given input paths.
func GeneratedHeader(paths []string) string {
	return fmt.Sprintf("Code generated by utility-data from %s. DO NOT EDIT.", strings.Join(paths, ", "))
}

// Render writes the document to w.
func (d Document) Render(w io.Writer) error {
	if d.Header != "" {
		if _, err := fmt.Fprintf(w, "// %s\n\n", d.Header); err != nil {
			return err
		}
	}
	for _, decl := range d.Declarations {
		if _, err := fmt.Fprintf(w, "const %s = `%s`;\n", decl.Name, decl.Content); err != nil {
			return err
		}
	}
	return nil
}

// Bytes renders the document into memory.
func (d Document) Bytes() []byte {
	var buf bytes.Buffer
	// bytes.Buffer writes never fail.
	_ = d.Render(&buf)
	return buf.Bytes()
}

var identifierRe = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

var reservedWords = map[string]bool{
	"await": true, "break": true, "case": true, "catch": true, "class": true,
	"const": true, "continue": true, "debugger": true, "default": true,
	"delete": true, "do": true, "else": true, "enum": true, "export": true,
	"extends": true, "false": true, "finally": true, "for": true,
	"function": true, "if": true, "implements": true, "import": true,
	"in": true, "instanceof": true, "interface": true, "let": true,
	"new": true, "null": true, "package": true, "private": true,
	"protected": true, "public": true, "return": true, "static": true,
	"super": true, "switch": true, "this": true, "throw": true, "true": true,
	"try": true, "typeof": true, "var": true, "void": true, "while": true,
	"with": true, "yield": true,
}

// ValidIdentifier returns an error if name cannot be used as a const binding.
// Only ASCII identifiers are accepted.
func ValidIdentifier(name string) error {
	if !identifierRe.MatchString(name) {
		return fmt.Errorf("%q is not a valid JavaScript identifier", name)
	}
	if reservedWords[name] {
		return fmt.Errorf("%q is a reserved word", name)
	}
	return nil
}
