package solface

import (
	"encoding/hex"

	"github.com/pkg/errors"
)

/*
Validates a bytecode blob as supplied in a contract artifact. The "0x" prefix
is optional. The remainder must be non-empty, have an even length, and consist
entirely of hex digits. The input itself is not modified; callers are expected
to carry the original string verbatim. See "ContractArtifact".
*/
func ValidateHex(input string) error {
	raw := drop0x(input)
	if len(raw) == 0 {
		return errors.Errorf("malformed hex input %q: empty payload", input)
	}
	if len(raw)%2 != 0 {
		return errors.Errorf("malformed hex input %q: odd length %v", input, len(raw))
	}
	for i := 0; i < len(raw); i++ {
		char := raw[i]
		if !(char >= '0' && char <= '9' || char >= 'a' && char <= 'f' || char >= 'A' && char <= 'F') {
			return errors.Errorf("malformed hex input %q: non-hex byte %q at index %v", input, char, i)
		}
	}
	return nil
}

func drop0x(input string) string {
	if len(input) >= 2 && input[0] == '0' && input[1] == 'x' {
		return input[2:]
	}
	return input
}

// Version of "[]byte" that uses "0x"-prefixed hex encoding and decoding.
type HexBytes []byte

/*
Decodes the provided string. Zero-length input is ok. The "0x" prefix is
optional.
*/
func ParseHexBytes(input string) (HexBytes, error) {
	if len(input) == 0 {
		return nil, nil
	}
	err := ValidateHex(input)
	if err != nil {
		return nil, err
	}
	raw := drop0x(input)
	out := make([]byte, hex.DecodedLen(len(raw)))
	_, err = hex.Decode(out, stringToBytesUnsafe(raw))
	return HexBytes(out), errors.WithStack(err)
}

/*
Version of "ParseHexBytes" that panics on error. Convenient for initializing
global variables.
*/
func MustParseHexBytes(input string) HexBytes {
	out, err := ParseHexBytes(input)
	if err != nil {
		panic(err)
	}
	return out
}

// Implements "encoding.TextMarshaler". Uses hex encoding prefixed with "0x".
func (self HexBytes) MarshalText() ([]byte, error) {
	out := make([]byte, hex.EncodedLen(len(self))+2)
	out[0] = '0'
	out[1] = 'x'
	hex.Encode(out[2:], self)
	return out, nil
}

/*
Implements "encoding.TextUnmarshaler". Empty input is ok. The "0x" prefix is
optional.
*/
func (self *HexBytes) UnmarshalText(input []byte) error {
	out, err := ParseHexBytes(string(input))
	if err != nil {
		return err
	}
	*self = out
	return nil
}

// Implements "fmt.Stringer". Follows the same rules as "MarshalText".
func (self HexBytes) String() string {
	out, _ := self.MarshalText()
	return bytesToMutableString(out)
}

/*
A 32-byte EVM word. Used for event topics: the topic of a non-anonymous event
is the Keccak-256 checksum of its canonical signature.
*/
type Word [32]byte

// Implements "encoding.TextMarshaler". Uses hex encoding prefixed with "0x".
func (self Word) MarshalText() ([]byte, error) {
	return HexBytes(self[:]).MarshalText()
}

// Implements "fmt.Stringer". Follows the same rules as "MarshalText".
func (self Word) String() string {
	return HexBytes(self[:]).String()
}

/*
End-biased: if the input is shorter, it's written to the end; if the input is
longer, it's sliced from the end.
*/
func bytesToWord(input []byte) Word {
	var out Word
	if len(input) > len(out) {
		copy(out[:], input[len(input)-len(out):])
	} else {
		copy(out[len(out)-len(input):], input)
	}
	return out
}
