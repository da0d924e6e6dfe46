package solface

import (
	"fmt"

	"github.com/pkg/errors"
)

// Classifies generator diagnostics. See "Error".
type ErrorKind byte

const (
	// The supplied artifact carries no ABI. A problem with the input, not
	// with this package.
	KindUser ErrorKind = iota + 1

	// The generator emitted text the downstream expander could not consume.
	// Always a bug in this package.
	KindInvariant

	// A failure propagated verbatim from the downstream expander after a
	// successful attach. This package adds no interpretation.
	KindDownstream
)

// Implements "fmt.Stringer".
func (self ErrorKind) String() string {
	switch self {
	case KindUser:
		return "KindUser"
	case KindInvariant:
		return "KindInvariant"
	case KindDownstream:
		return "KindDownstream"
	default:
		return ""
	}
}

/*
The diagnostic type returned by "Expand". Anchors to the interface identifier
supplied by the caller, whose source span the host resolves. Internal
invariant violations include the failing text, to aid bug reports.
*/
type Error struct {
	Kind  ErrorKind
	Ident string
	Msg   string
	Text  string // the failing generated text, for KindInvariant
	Cause error
}

// Implements "error".
func (self *Error) Error() string {
	return self.Msg
}

// Supports "errors.Unwrap".
func (self *Error) Unwrap() error {
	return self.Cause
}

func userErrorf(ident string, pattern string, args ...any) *Error {
	return &Error{Kind: KindUser, Ident: ident, Msg: fmt.Sprintf(pattern, args...)}
}

func invariantErrorf(ident string, text string, pattern string, args ...any) *Error {
	return &Error{
		Kind:  KindInvariant,
		Ident: ident,
		Msg: fmt.Sprintf(pattern, args...) +
			".\nThis is a bug. We would appreciate a bug report: " +
			"https://github.com/purelabio/solface/issues/new\n" +
			"Failing text:\n" + text,
		Text: text,
	}
}

/*
Wraps a failure reported by the downstream interface expander, anchoring it
to the caller's identifier without interpreting it.
*/
func DownstreamError(ident string, cause error) *Error {
	return &Error{Kind: KindDownstream, Ident: ident, Msg: cause.Error(), Cause: cause}
}

/*
The single entry point of the generator. Normalizes the artifact's ABI,
renders the interface declaration named by the caller, and attaches the
passthrough bytecode metadata and the caller's annotations. Pure and
synchronous: the document is owned exclusively for the duration of the call,
and no partial output is produced on failure.

All diagnostics are returned as "*Error" values; see "ErrorKind" for the
taxonomy.
*/
func Expand(name string, artifact ContractArtifact, annotations []string) (Declaration, error) {
	if artifact.Abi == nil {
		return Declaration{}, userErrorf(name, "ABI not found in the contract artifact for %q", name)
	}

	doc := artifact.Abi
	Normalize(doc)

	rendered := RenderInterface(name, doc)
	return Attach(name, annotations, rendered, doc)
}

/*
Version of "Expand" that decodes the contract artifact from JSON first.
Convenient for callers holding raw compiler output.
*/
func ExpandJson(name string, artifactJson []byte, annotations []string) (Declaration, error) {
	artifact, err := DecodeContractArtifact(artifactJson)
	if err != nil {
		return Declaration{}, errors.Wrapf(err, "failed to expand %q", name)
	}
	return Expand(name, artifact, annotations)
}
