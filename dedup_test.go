package solface

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeAdjacentDuplicates(t *testing.T) {
	doc := MustParseAbiJson(`[
		{"type": "function", "name": "transfer", "inputs": [{"name": "to", "type": "address"}, {"name": "amount", "type": "uint256"}]},
		{"type": "function", "name": "transfer", "inputs": [{"name": "dst", "type": "address"}, {"name": "wad", "type": "uint256"}]},
		{"type": "function", "name": "transfer", "inputs": [{"name": "to", "type": "address"}]}
	]`)

	Normalize(doc)

	entries := doc.Functions.Get("transfer")
	require.Len(t, entries, 2)
	// Parameter names do not distinguish entries; only canonical types do.
	require.Equal(t, "transfer(address,uint256)", Signature("transfer", entries[0].Inputs))
	require.Equal(t, "transfer(address)", Signature("transfer", entries[1].Inputs))
}

func TestNormalizeKeepsOverloads(t *testing.T) {
	doc := MustParseAbiJson(`[
		{"type": "function", "name": "get", "inputs": []},
		{"type": "function", "name": "get", "inputs": [{"name": "", "type": "uint256"}]},
		{"type": "function", "name": "get", "inputs": [{"name": "", "type": "bytes32"}]}
	]`)

	Normalize(doc)
	require.Len(t, doc.Functions.Get("get"), 3)
}

func TestNormalizeEventsAndErrors(t *testing.T) {
	doc := MustParseAbiJson(`[
		{"type": "event", "name": "Ping", "inputs": [{"name": "", "type": "uint256"}]},
		{"type": "event", "name": "Ping", "inputs": [{"name": "", "type": "uint256"}]},
		{"type": "error", "name": "Nope", "inputs": []},
		{"type": "error", "name": "Nope", "inputs": []},
		{"type": "error", "name": "Nope", "inputs": [{"name": "", "type": "address"}]}
	]`)

	Normalize(doc)
	require.Len(t, doc.Events.Get("Ping"), 1)
	require.Len(t, doc.Errors.Get("Nope"), 2)
}

func TestNormalizeIdempotent(t *testing.T) {
	doc := MustParseAbiJson(testErc20AbiJson)

	Normalize(doc)
	before := RenderInterface("Erc20", doc)
	Normalize(doc)
	require.Equal(t, before, RenderInterface("Erc20", doc))
}
