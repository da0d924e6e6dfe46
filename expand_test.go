package solface

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExpand(t *testing.T) {
	decl, err := ExpandJson("Erc20", []byte(testErc20Artifact("0x6080")), []string{"@derive(Debug)"})
	require.NoError(t, err)

	require.Equal(t, "Erc20", decl.Name)
	require.Equal(t, "0x6080", decl.Bytecode)

	// The textual form round-trips through the downstream parser.
	parsed, err := ParseDeclaration(decl.String())
	require.NoError(t, err)
	require.Equal(t, "Erc20", parsed.Name)
	require.Equal(t, decl.Body, parsed.Body)
	require.Equal(t, map[string]string{"bytecode": "0x6080"}, parsed.SolPairs())
	require.Equal(t, "@derive(Debug)", parsed.Annotations[0])
	require.Equal(t, "@sol(bytecode = \"0x6080\")", parsed.Annotations[1])
}

func TestExpandNormalizes(t *testing.T) {
	decl, err := ExpandJson("Dup", []byte(`{"abi": [
		{"type": "function", "name": "get", "inputs": [], "outputs": [{"name": "", "type": "uint256"}], "stateMutability": "view"},
		{"type": "function", "name": "get", "inputs": [], "outputs": [{"name": "", "type": "uint256"}], "stateMutability": "view"}
	]}`), nil)
	require.NoError(t, err)

	items := topLevelItems(t, "interface Dup "+decl.Body)
	require.Equal(t, []topItem{
		{"function", "function get() external view returns (uint256 a);"},
	}, items)
}

func TestExpandMissingAbi(t *testing.T) {
	_, err := ExpandJson("Nope", []byte(`{"bytecode": "0x00"}`), nil)
	require.Error(t, err)

	var typed *Error
	require.ErrorAs(t, err, &typed)
	require.Equal(t, KindUser, typed.Kind)
	require.Equal(t, "Nope", typed.Ident)
	require.Equal(t, `ABI not found in the contract artifact for "Nope"`, typed.Msg)
	require.NotContains(t, typed.Msg, "This is a bug")
}

func TestExpandInvalidArtifactJson(t *testing.T) {
	_, err := ExpandJson("Bad", []byte(`{`), nil)
	require.Error(t, err)

	var typed *Error
	require.False(t, errors.As(err, &typed))
}

func TestDownstreamError(t *testing.T) {
	cause := errors.New("unsupported type at path foo.bar")
	err := DownstreamError("Erc20", cause)

	require.Equal(t, KindDownstream, err.Kind)
	require.Equal(t, "Erc20", err.Ident)
	require.Equal(t, cause.Error(), err.Error())
	require.Same(t, cause, errors.Unwrap(err))
}

func TestExpandSeaportEndToEnd(t *testing.T) {
	artifact := readArtifact(t, `testdata/udvts.json`)

	decl, err := Expand("Seaport", artifact, nil)
	require.NoError(t, err)

	parsed, err := ParseDeclaration(decl.String())
	require.NoError(t, err)
	require.Equal(t, "Seaport", parsed.Name)

	items := topLevelItems(t, "interface Seaport "+parsed.Body)
	require.Len(t, items, 12)
}

func TestErrorKindString(t *testing.T) {
	require.Equal(t, "KindUser", KindUser.String())
	require.Equal(t, "KindInvariant", KindInvariant.String())
	require.Equal(t, "KindDownstream", KindDownstream.String())
	require.Equal(t, "", ErrorKind(0).String())
}
