package solface

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Represents a broad category of ABI types. See "TypeDesc".
type TypeKind byte

const (
	TypeElementary TypeKind = iota + 1
	TypeTuple
	TypeArray
)

// Implements "fmt.Stringer".
func (self TypeKind) String() string {
	switch self {
	case TypeElementary:
		return "TypeElementary"
	case TypeTuple:
		return "TypeTuple"
	case TypeArray:
		return "TypeArray"
	default:
		return ""
	}
}

/*
Describes one ABI type: an elementary type such as "uint256" or "bytes32", a
tuple of further types, or an array.

Array dimensions are stored in the textual outer-to-inner order: "Dims[0]" is
the first bracket group printed after the element type, and a zero dimension
is unbounded. A descriptor with an elementary "T" element and dimensions
"[0, 3]" prints as "T[][3]". This is the only dimension convention in this
package; some ABI libraries store dimensions innermost-first, and their
descriptors must be reversed before they can be represented here.
*/
type TypeDesc struct {
	Kind       TypeKind
	Elementary string     // canonical spelling; set when Kind == TypeElementary
	Components []TypeDesc // set when Kind == TypeTuple
	Elem       *TypeDesc  // set when Kind == TypeArray; elementary or tuple
	Dims       []int      // set when Kind == TypeArray; 0 = unbounded
}

var (
	typeUintReg  = regexp.MustCompile(`^uint(\d+)?$`)
	typeIntReg   = regexp.MustCompile(`^int(\d+)?$`)
	typeBytesReg = regexp.MustCompile(`^bytes(\d+)$`)
	typeFixedReg = regexp.MustCompile(`^(u?)fixed((\d+)x(\d+))?$`)
	typeDimReg   = regexp.MustCompile(`^\[(\d*)\]`)
)

/*
Accepts the name of an ABI type, such as "bytes32", "uint" or "address[12]",
and returns its details as a TypeDesc. For tuple types, the caller must supply
the descriptors of the tuple's components, in order; for every other type,
"components" must be empty. Used internally when decoding ABI parameters; see
"Param".
*/
func ParseTypeDesc(typeName string, components []TypeDesc) (TypeDesc, error) {
	base := typeName
	var dims []int

	brace := strings.IndexByte(typeName, '[')
	if brace >= 0 {
		base = typeName[:brace]
		suffix := typeName[brace:]
		for len(suffix) > 0 {
			match := typeDimReg.FindStringSubmatch(suffix)
			if match == nil {
				return TypeDesc{}, errors.Errorf("failed to parse %q as Solidity type: malformed array suffix %q", typeName, suffix)
			}
			if match[1] == "" {
				dims = append(dims, 0)
			} else {
				length, err := strconv.Atoi(match[1])
				if err != nil || length <= 0 {
					return TypeDesc{}, errors.Errorf("failed to parse %q as Solidity type: invalid array length %q", typeName, match[1])
				}
				dims = append(dims, length)
			}
			suffix = suffix[len(match[0]):]
		}
	}

	var elem TypeDesc
	if base == "tuple" {
		if components == nil {
			components = []TypeDesc{}
		}
		elem = TypeDesc{Kind: TypeTuple, Components: components}
	} else {
		if len(components) > 0 {
			return TypeDesc{}, errors.Errorf(`failed to parse %q as Solidity type: components are allowed only on tuples`, typeName)
		}
		spelling, err := canonicalElementary(base)
		if err != nil {
			return TypeDesc{}, err
		}
		elem = TypeDesc{Kind: TypeElementary, Elementary: spelling}
	}

	if len(dims) == 0 {
		return elem, nil
	}
	return TypeDesc{Kind: TypeArray, Elem: &elem, Dims: dims}, nil
}

/*
Validates an elementary ABI type name and returns its canonical spelling:
"uint" becomes "uint256", "int" becomes "int256", "byte" becomes "bytes1",
and bare fixed-point forms gain the default 128x18 precision.
*/
func canonicalElementary(base string) (string, error) {
	switch base {
	case "bool", "address", "string", "bytes", "function":
		return base, nil
	case "uint":
		return "uint256", nil
	case "int":
		return "int256", nil
	case "byte":
		return "bytes1", nil
	}

	if match := typeUintReg.FindStringSubmatch(base); match != nil {
		err := validateIntWidth(base, match[1])
		return base, err
	}
	if match := typeIntReg.FindStringSubmatch(base); match != nil {
		err := validateIntWidth(base, match[1])
		return base, err
	}
	if match := typeBytesReg.FindStringSubmatch(base); match != nil {
		size, err := strconv.Atoi(match[1])
		if err != nil || size < 1 || size > 32 {
			return "", errors.Errorf("failed to parse %q as Solidity type: bytes size out of range", base)
		}
		return base, nil
	}
	if match := typeFixedReg.FindStringSubmatch(base); match != nil {
		if match[2] == "" {
			return base + "128x18", nil
		}
		bits, err := strconv.Atoi(match[3])
		if err != nil || bits%8 != 0 || bits < 8 || bits > 256 {
			return "", errors.Errorf("failed to parse %q as Solidity type: fixed-point width out of range", base)
		}
		decimals, err := strconv.Atoi(match[4])
		if err != nil || decimals > 80 {
			return "", errors.Errorf("failed to parse %q as Solidity type: fixed-point precision out of range", base)
		}
		return base, nil
	}

	return "", errors.Errorf("failed to parse %q as Solidity type", base)
}

func validateIntWidth(base string, width string) error {
	bits, err := strconv.Atoi(width)
	if err != nil || bits%8 != 0 || bits < 8 || bits > 256 {
		return errors.Errorf("failed to parse %q as Solidity type: integer width out of range", base)
	}
	return nil
}

/*
Returns the canonical ABI rendering of this type: elementary types print as
their canonical spelling, tuples as the parenthesized comma-separated
canonical forms of their components, arrays as the element followed by the
dimensions in textual order. Canonical strings are the basis for signature
checksums and for equality comparisons during deduplication.
*/
func (self TypeDesc) Canonical() string {
	var buf strings.Builder
	self.appendCanonical(&buf)
	return buf.String()
}

func (self TypeDesc) appendCanonical(buf *strings.Builder) {
	switch self.Kind {
	case TypeElementary:
		buf.WriteString(self.Elementary)

	case TypeTuple:
		buf.WriteByte('(')
		for i, component := range self.Components {
			if i > 0 {
				buf.WriteByte(',')
			}
			component.appendCanonical(buf)
		}
		buf.WriteByte(')')

	case TypeArray:
		self.Elem.appendCanonical(buf)
		buf.WriteString(self.dimSuffix())
	}
}

// Prints the bracket groups of an array type, in textual order.
func (self TypeDesc) dimSuffix() string {
	var buf strings.Builder
	for _, dim := range self.Dims {
		if dim == 0 {
			buf.WriteString("[]")
		} else {
			buf.WriteByte('[')
			buf.WriteString(strconv.Itoa(dim))
			buf.WriteByte(']')
		}
	}
	return buf.String()
}

// Innermost non-array descriptor: the receiver itself, or an array's element.
func (self TypeDesc) base() TypeDesc {
	if self.Kind == TypeArray {
		return *self.Elem
	}
	return self
}
