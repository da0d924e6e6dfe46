package solface

import (
	"encoding/json"
	"fmt"
	"strings"
)

/*
The assembled output of the generator: a single interface declaration,
packaged with the caller-supplied annotations, a generated documentation
block, and the passthrough bytecode metadata, ready for handing to the
downstream interface expander. Produced by "Attach"; see ".String" for the
textual form.
*/
type Declaration struct {
	Annotations      []string // caller-supplied, spliced verbatim
	Doc              string   // generated documentation block
	Bytecode         string   // verbatim hex, or empty
	DeployedBytecode string   // verbatim hex, or empty
	Name             string
	Body             string // starts at the first "{" of the rendered interface
}

/*
Packages a rendered interface together with passthrough bytecode metadata and
caller-supplied annotations into a single declaration. The rendered text is
consumed starting at its first "{"; the header is re-emitted from "name" so
that downstream diagnostics anchor to the caller's identifier.

The generated documentation block embeds both the rendered interface text and
a pretty-printed JSON dump of the normalized ABI. Bytecode blobs present on
the document are carried into the "sol(...)" annotation, case preserved.

A rendered text without "{", or one the declaration tokenizer rejects, is a
bug in the renderer, not a user error; such failures are reported as internal
invariant violations.
*/
func Attach(name string, annotations []string, rendered string, doc *AbiDocument) (Declaration, error) {
	brace := strings.IndexByte(rendered, '{')
	if brace < 0 {
		return Declaration{}, invariantErrorf(name, rendered,
			`Attach: rendered interface is missing "{"`)
	}

	body := rendered[brace:]
	err := scanBody(body)
	if err != nil {
		return Declaration{}, invariantErrorf(name, body,
			`Attach: rendered interface produced invalid tokens: %v`, err)
	}

	pretty, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return Declaration{}, invariantErrorf(name, rendered,
			`Attach: failed to serialize the normalized ABI: %v`, err)
	}

	out := Declaration{
		Annotations:      annotations,
		Doc:              declarationDoc(rendered, string(pretty)),
		Bytecode:         doc.Bytecode,
		DeployedBytecode: doc.DeployedBytecode,
		Name:             name,
		Body:             body,
	}

	_, err = ParseDeclaration(out.String())
	if err != nil {
		return Declaration{}, invariantErrorf(name, out.String(),
			`Attach: failed to parse the assembled declaration: %v`, err)
	}
	return out, nil
}

func declarationDoc(rendered string, prettyAbi string) string {
	return fmt.Sprintf("Generated by the following Solidity interface...\n"+
		"```solidity\n%v\n```\n"+
		"...which was generated by the following JSON ABI:\n"+
		"```json\n%v\n```",
		rendered, prettyAbi)
}

/*
The textual form handed to the downstream expander: the caller's annotations
verbatim, the documentation block, the "sol(...)" annotation enumerating the
bytecode key/value pairs, then the interface declaration itself.
*/
func (self Declaration) String() string {
	var buf strings.Builder
	for _, annotation := range self.Annotations {
		buf.WriteString(annotation)
		buf.WriteByte('\n')
	}
	buf.WriteString("/*\n")
	buf.WriteString(self.Doc)
	buf.WriteString("\n*/\n")
	buf.WriteString(self.SolAnnotation())
	buf.WriteByte('\n')
	buf.WriteString("interface ")
	buf.WriteString(self.Name)
	buf.WriteByte(' ')
	buf.WriteString(self.Body)
	return buf.String()
}

// The "@sol(...)" annotation carrying the bytecode metadata. Empty pairs are
// omitted; the annotation itself is always present.
func (self Declaration) SolAnnotation() string {
	var pairs []string
	if self.Bytecode != "" {
		pairs = append(pairs, fmt.Sprintf(`bytecode = %q`, self.Bytecode))
	}
	if self.DeployedBytecode != "" {
		pairs = append(pairs, fmt.Sprintf(`deployed_bytecode = %q`, self.DeployedBytecode))
	}
	return "@sol(" + strings.Join(pairs, ", ") + ")"
}

/*
Validates a rendered interface body as a downstream token stream. The body
must begin with "{", contain only identifiers, numbers, and the dialect's
punctuation, and close its first brace exactly at the end.
*/
func scanBody(input string) error {
	if len(input) == 0 || input[0] != '{' {
		return fmt.Errorf(`missing "{"`)
	}

	var depth []byte
	for i := 0; i < len(input); {
		char := input[i]
		switch {
		case char == ' ' || char == '\t' || char == '\n' || char == '\r':
			i++

		case char == '{' || char == '(' || char == '[':
			depth = append(depth, char)
			i++

		case char == '}' || char == ')' || char == ']':
			if len(depth) == 0 {
				return fmt.Errorf("unbalanced %q at offset %v", char, i)
			}
			open := depth[len(depth)-1]
			if !(open == '{' && char == '}' || open == '(' && char == ')' || open == '[' && char == ']') {
				return fmt.Errorf("mismatched %q at offset %v", char, i)
			}
			depth = depth[:len(depth)-1]
			i++
			if len(depth) == 0 && strings.TrimSpace(input[i:]) != "" {
				return fmt.Errorf("trailing tokens after the closing %q at offset %v", char, i)
			}

		case isIdentByte(char, true):
			for i < len(input) && isIdentByte(input[i], false) {
				i++
			}

		case char >= '0' && char <= '9':
			for i < len(input) && input[i] >= '0' && input[i] <= '9' {
				i++
			}

		case char == ';' || char == ',' || char == '.':
			i++

		default:
			return fmt.Errorf("unexpected character %q at offset %v", char, i)
		}
	}

	if len(depth) != 0 {
		return fmt.Errorf("unbalanced body: %v unclosed groups", len(depth))
	}
	return nil
}

func isIdentByte(char byte, first bool) bool {
	switch {
	case char >= 'a' && char <= 'z' || char >= 'A' && char <= 'Z' || char == '_' || char == '$':
		return true
	case char >= '0' && char <= '9':
		return !first
	}
	return false
}

/*
The downstream view of an assembled declaration: the annotations that precede
the interface item, and the item's name and braced body. Produced by
"ParseDeclaration".
*/
type ParsedDeclaration struct {
	Annotations []string
	Docs        []string
	Name        string
	Body        string
}

/*
Parses the textual form of an assembled declaration, the way the downstream
interface expander consumes it: optional comment blocks and "@" annotations,
then exactly one "interface <name> { ... }" item, and nothing else.
*/
func ParseDeclaration(src string) (ParsedDeclaration, error) {
	out := ParsedDeclaration{}
	i := 0

	for i < len(src) {
		for i < len(src) && (src[i] == ' ' || src[i] == '\t' || src[i] == '\n' || src[i] == '\r') {
			i++
		}
		if i >= len(src) {
			break
		}

		switch {
		case strings.HasPrefix(src[i:], "/*"):
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				return ParsedDeclaration{}, fmt.Errorf("unterminated comment at offset %v", i)
			}
			out.Docs = append(out.Docs, strings.TrimSpace(src[i+2:i+2+end]))
			i += 2 + end + 2

		case strings.HasPrefix(src[i:], "//"):
			line := strings.IndexByte(src[i:], '\n')
			if line < 0 {
				i = len(src)
			} else {
				i += line + 1
			}

		case src[i] == '@':
			line := strings.IndexByte(src[i:], '\n')
			var annotation string
			if line < 0 {
				annotation = src[i:]
				i = len(src)
			} else {
				annotation = src[i : i+line]
				i += line + 1
			}
			out.Annotations = append(out.Annotations, strings.TrimSpace(annotation))

		case isIdentByte(src[i], true):
			start := i
			for i < len(src) && isIdentByte(src[i], false) {
				i++
			}
			if src[start:i] != "interface" {
				return ParsedDeclaration{}, fmt.Errorf("expected %q, found %q at offset %v", "interface", src[start:i], start)
			}

			for i < len(src) && (src[i] == ' ' || src[i] == '\t' || src[i] == '\n' || src[i] == '\r') {
				i++
			}
			start = i
			for i < len(src) && isIdentByte(src[i], i == start) {
				i++
			}
			if start == i {
				return ParsedDeclaration{}, fmt.Errorf("missing interface name at offset %v", start)
			}
			out.Name = src[start:i]

			for i < len(src) && (src[i] == ' ' || src[i] == '\t' || src[i] == '\n' || src[i] == '\r') {
				i++
			}
			if i >= len(src) || src[i] != '{' {
				return ParsedDeclaration{}, fmt.Errorf("missing interface body at offset %v", i)
			}
			err := scanBody(src[i:])
			if err != nil {
				return ParsedDeclaration{}, err
			}
			out.Body = strings.TrimSpace(src[i:])
			if out.Name == "" {
				return ParsedDeclaration{}, fmt.Errorf("declaration has no interface name")
			}
			return out, nil

		default:
			return ParsedDeclaration{}, fmt.Errorf("unexpected character %q at offset %v", src[i], i)
		}
	}

	return ParsedDeclaration{}, fmt.Errorf("declaration has no interface item")
}

/*
Decoded key/value pairs of the parsed "@sol(...)" annotation, such as
"bytecode" and "deployed_bytecode". Returns nil when the annotation is
absent.
*/
func (self ParsedDeclaration) SolPairs() map[string]string {
	for _, annotation := range self.Annotations {
		rest, ok := strings.CutPrefix(annotation, "@sol(")
		if !ok {
			continue
		}
		rest = strings.TrimSuffix(rest, ")")
		out := map[string]string{}
		for _, pair := range strings.Split(rest, ",") {
			key, val, ok := strings.Cut(pair, "=")
			if !ok {
				continue
			}
			out[strings.TrimSpace(key)] = strings.Trim(strings.TrimSpace(val), `"`)
		}
		return out
	}
	return nil
}
