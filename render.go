package solface

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

/*
Emits a textual Solidity interface declaration from a normalized ABI
document. The output begins with the header "interface <name>", followed by
the body: user-defined value types first, then structs, error declarations,
event declarations, and function declarations, in that order. Constructor,
fallback and receive definitions have no interface form and are omitted.

The renderer is deterministic: identical documents, including bucket order,
produce byte-identical output. Value types and structs print in sorted name
order; errors, events and functions print in bucket order.
*/
func RenderInterface(name string, doc *AbiDocument) string {
	self := renderer{
		doc:          doc,
		udvts:        map[string]string{},
		structsByTup: map[string]string{},
		structNames:  map[string]bool{},
	}
	self.discover()
	return self.render(name)
}

type renderer struct {
	doc *AbiDocument

	// Value-type aliases discovered from internal-type annotations:
	// alias name -> underlying elementary spelling.
	udvts map[string]string

	// Structs discovered from tuple-typed parameters, deduplicated by
	// canonical tuple signature.
	structsByTup map[string]string // canonical tuple signature -> struct name
	structNames  map[string]bool
	structs      []structDef
}

type structDef struct {
	Name   string
	Fields []Param
}

/*
Walks every parameter transitively, in the order the body is rendered, and
registers the canonical tuple signature of every named tuple plus every
elementary alias found in internal-type annotations.
*/
func (self *renderer) discover() {
	if self.doc.Constructor != nil {
		self.walkParams(self.doc.Constructor.Inputs)
	}
	for _, name := range self.doc.Errors.Names() {
		for _, entry := range self.doc.Errors.Get(name) {
			self.walkParams(entry.Inputs)
		}
	}
	for _, name := range self.doc.Events.Names() {
		for _, entry := range self.doc.Events.Get(name) {
			self.walkParams(entry.Inputs)
		}
	}
	for _, name := range self.doc.Functions.Names() {
		for _, entry := range self.doc.Functions.Get(name) {
			self.walkParams(entry.Inputs)
			self.walkParams(entry.Outputs)
		}
	}
}

func (self *renderer) walkParams(params []Param) {
	for _, param := range params {
		self.walkParam(param)
	}
}

func (self *renderer) walkParam(param Param) {
	base := param.Desc.base()

	switch base.Kind {
	case TypeElementary:
		alias, ok := udvtAlias(param)
		if !ok {
			return
		}
		// First registration wins; a conflicting later alias falls back to
		// the canonical spelling at render time.
		if _, taken := self.udvts[alias]; !taken {
			self.udvts[alias] = base.Elementary
		}

	case TypeTuple:
		self.registerStruct(param, base)
		self.walkParams(param.Components)
	}
}

func (self *renderer) registerStruct(param Param, base TypeDesc) {
	canon := base.Canonical()
	if _, ok := self.structsByTup[canon]; ok {
		return
	}

	name := structName(param)
	if name == "" {
		name = "Struct" + strconv.Itoa(len(self.structs))
	}
	name = sanitizeIdent(name)
	for self.structNames[name] {
		name += "_"
	}

	self.structsByTup[canon] = name
	self.structNames[name] = true
	self.structs = append(self.structs, structDef{Name: name, Fields: param.Components})
}

func (self *renderer) render(name string) string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "interface %v {\n", sanitizeIdent(name))

	udvtNames := make([]string, 0, len(self.udvts))
	for alias := range self.udvts {
		udvtNames = append(udvtNames, alias)
	}
	sort.Strings(udvtNames)
	for _, alias := range udvtNames {
		fmt.Fprintf(&buf, "    type %v is %v;\n", alias, self.udvts[alias])
	}

	structs := make([]structDef, len(self.structs))
	copy(structs, self.structs)
	sort.Slice(structs, func(a, b int) bool {
		return structs[a].Name < structs[b].Name
	})
	for _, def := range structs {
		fmt.Fprintf(&buf, "    struct %v {\n", def.Name)
		for i, field := range def.Fields {
			fieldName := field.Name
			if fieldName == "" {
				fieldName = "_" + strconv.Itoa(i)
			} else {
				fieldName = sanitizeIdent(fieldName)
			}
			fmt.Fprintf(&buf, "        %v %v;\n", self.renderType(field), fieldName)
		}
		buf.WriteString("    }\n")
	}

	for _, bucket := range self.doc.Errors.Names() {
		for _, entry := range self.doc.Errors.Get(bucket) {
			fmt.Fprintf(&buf, "    error %v(%v);\n",
				sanitizeIdent(entry.Name), self.renderFields(entry.Inputs, false))
		}
	}

	for _, bucket := range self.doc.Events.Names() {
		for _, entry := range self.doc.Events.Get(bucket) {
			anonymous := ""
			if entry.Anonymous {
				anonymous = " anonymous"
			}
			fmt.Fprintf(&buf, "    event %v(%v)%v;\n",
				sanitizeIdent(entry.Name), self.renderFields(entry.Inputs, true), anonymous)
		}
	}

	for _, bucket := range self.doc.Functions.Names() {
		for _, entry := range self.doc.Functions.Get(bucket) {
			// One placeholder counter per function, shared between arguments
			// and returns, advanced only when a name is synthesized.
			counter := 0
			args := self.renderArgs(entry.Inputs, &counter)

			mutability := ""
			switch entry.StateMutability {
			case "", "nonpayable":
			default:
				mutability = " " + entry.StateMutability
			}

			returns := ""
			if len(entry.Outputs) > 0 {
				returns = fmt.Sprintf(" returns (%v)", self.renderArgs(entry.Outputs, &counter))
			}

			fmt.Fprintf(&buf, "    function %v(%v) external%v%v;\n",
				sanitizeIdent(entry.Name), args, mutability, returns)
		}
	}

	buf.WriteString("}")
	return buf.String()
}

/*
Renders a function argument or return list. Every entry gets an identifier:
the declared name when present, otherwise a synthesized placeholder drawn
from the per-function counter.
*/
func (self *renderer) renderArgs(params []Param, counter *int) string {
	var buf strings.Builder
	for i, param := range params {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(self.renderType(param))
		buf.WriteByte(' ')
		if param.Name == "" {
			buf.WriteString(synthName(counter))
		} else {
			buf.WriteString(sanitizeIdent(param.Name))
		}
	}
	return buf.String()
}

/*
Renders an error or event parameter list. Unlike function arguments, unnamed
parameters stay unnamed; event parameters emit "indexed" right after the
type when flagged.
*/
func (self *renderer) renderFields(params []Param, event bool) string {
	var buf strings.Builder
	for i, param := range params {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(self.renderType(param))
		if event && param.Indexed {
			buf.WriteString(" indexed")
		}
		if param.Name != "" {
			buf.WriteByte(' ')
			buf.WriteString(sanitizeIdent(param.Name))
		}
	}
	return buf.String()
}

/*
Renders the type of one parameter. Tuples print as the registered struct
name when one exists, otherwise as the parenthesized canonical form.
Elementary types print as the discovered alias when the internal-type
annotation names one, otherwise as the canonical spelling. Array dimensions
print in textual outer-to-inner order after the element type.
*/
func (self *renderer) renderType(param Param) string {
	desc := param.Desc
	if desc.Kind == TypeArray {
		return self.renderBase(param, *desc.Elem) + desc.dimSuffix()
	}
	return self.renderBase(param, desc)
}

func (self *renderer) renderBase(param Param, base TypeDesc) string {
	switch base.Kind {
	case TypeTuple:
		if name, ok := self.structsByTup[base.Canonical()]; ok {
			return name
		}
		return base.Canonical()

	case TypeElementary:
		alias, ok := udvtAlias(param)
		if ok && self.udvts[alias] == base.Elementary {
			return alias
		}
		return base.Elementary
	}
	return base.Canonical()
}

var identPathReg = regexp.MustCompile(`^[A-Za-z_$][0-9A-Za-z_$]*(\.[A-Za-z_$][0-9A-Za-z_$]*)*$`)

/*
Extracts a user-defined value type alias from a parameter's internal-type
annotation. Enums surface as "enum Lib.Name"; genuine value types surface as
a bare identifier path that differs from the ABI type. Contract references
and "address payable" are not aliases.
*/
func udvtAlias(param Param) (string, bool) {
	annot := stripArraySuffix(param.InternalType)
	if annot == "" {
		return "", false
	}

	if rest, ok := strings.CutPrefix(annot, "enum "); ok {
		if !identPathReg.MatchString(rest) {
			return "", false
		}
		return sanitizeIdent(lastSegment(rest)), true
	}
	if strings.HasPrefix(annot, "struct ") || strings.HasPrefix(annot, "contract ") {
		return "", false
	}

	base := param.Desc.base()
	if base.Kind != TypeElementary {
		return "", false
	}
	if annot == base.Elementary || annot == stripArraySuffix(param.Type) {
		return "", false
	}
	if !identPathReg.MatchString(annot) {
		return "", false
	}
	return sanitizeIdent(lastSegment(annot)), true
}

/*
Extracts a struct name from a tuple parameter's internal-type annotation,
which has the form "struct Lib.Name" with an optional array suffix. Returns
an empty string when the annotation is absent or malformed.
*/
func structName(param Param) string {
	annot := stripArraySuffix(param.InternalType)
	rest, ok := strings.CutPrefix(annot, "struct ")
	if !ok || !identPathReg.MatchString(rest) {
		return ""
	}
	return lastSegment(rest)
}

func stripArraySuffix(input string) string {
	brace := strings.IndexByte(input, '[')
	if brace >= 0 {
		return input[:brace]
	}
	return input
}

func lastSegment(input string) string {
	dot := strings.LastIndexByte(input, '.')
	return input[dot+1:]
}

/*
Synthesizes a placeholder identifier for an unnamed argument or return:
"a" through "z" for the first 26, then "_<index>". Advances the counter.
*/
func synthName(counter *int) string {
	index := *counter
	*counter++
	if index < 26 {
		return string(rune('a' + index))
	}
	return "_" + strconv.Itoa(index)
}

/*
Mangles identifiers that collide with a reserved word of the emitted dialect
by appending a trailing underscore. The set is closed and maintained here.
*/
func sanitizeIdent(name string) string {
	if solReserved[name] {
		return name + "_"
	}
	return name
}

var solReserved = func() map[string]bool {
	out := map[string]bool{}
	for _, word := range strings.Fields(`
		abstract address after alias anonymous apply assembly auto become bool
		break byte bytes calldata case catch constant constructor continue
		contract copyof days default define delete do else emit enum error
		ether event external fallback false final fixed for function gwei
		hours if immutable implements import in indexed inline int interface
		internal is let library macro mapping match memory minutes modifier
		mutable new null of override partial payable pragma private promise
		public pure receive reference relocatable return returns revert
		sealed seconds sizeof static storage string struct supports switch
		this throw true try type typedef typeof ufixed uint unchecked using
		var view virtual weeks wei while years
	`) {
		out[word] = true
	}
	return out
}()
