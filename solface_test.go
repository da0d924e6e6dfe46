package solface

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"
)

const testErc20AbiJson = `[
	{"type": "constructor", "inputs": [{"name": "supply", "type": "uint256"}], "stateMutability": "nonpayable"},
	{"type": "function", "name": "transfer", "inputs": [{"name": "to", "type": "address"}, {"name": "amount", "type": "uint256"}], "outputs": [{"name": "", "type": "bool"}], "stateMutability": "nonpayable"},
	{"type": "function", "name": "balanceOf", "inputs": [{"name": "owner", "type": "address"}], "outputs": [{"name": "", "type": "uint256"}], "stateMutability": "view"},
	{"type": "function", "name": "approve", "inputs": [{"name": "spender", "type": "address"}, {"name": "amount", "type": "uint256"}], "outputs": [{"name": "", "type": "bool"}], "stateMutability": "nonpayable"},
	{"type": "event", "name": "Transfer", "inputs": [{"name": "from", "type": "address", "indexed": true}, {"name": "to", "type": "address", "indexed": true}, {"name": "value", "type": "uint256"}], "anonymous": false},
	{"type": "event", "name": "Approval", "inputs": [{"name": "owner", "type": "address", "indexed": true}, {"name": "spender", "type": "address", "indexed": true}, {"name": "value", "type": "uint256"}], "anonymous": false},
	{"type": "error", "name": "InsufficientBalance", "inputs": [{"name": "available", "type": "uint256"}, {"name": "required", "type": "uint256"}]},
	{"type": "receive", "stateMutability": "payable"}
]`

var testAbi = MustParseAbiJson(testErc20AbiJson)

func testErc20Artifact(bytecode string) string {
	if bytecode == "" {
		return fmt.Sprintf(`{"abi": %v}`, testErc20AbiJson)
	}
	return fmt.Sprintf(`{"abi": %v, "bytecode": %q}`, testErc20AbiJson, bytecode)
}

func readArtifact(t testing.TB, path string) ContractArtifact {
	t.Helper()
	input, err := os.ReadFile(path)
	require.NoError(t, err)
	artifact, err := DecodeContractArtifact(input)
	require.NoError(t, err)
	require.NotNil(t, artifact.Abi)
	return artifact
}

type topItem struct {
	Kind string // "type", "struct", "error", "event", "function"
	Text string
}

/*
Splits the body of a rendered interface into its top-level items, in order.
Struct bodies are folded into a single item.
*/
func topLevelItems(t testing.TB, rendered string) []topItem {
	t.Helper()

	lines := strings.Split(rendered, "\n")
	require.True(t, strings.HasSuffix(lines[0], "{"), rendered)
	require.Equal(t, "}", lines[len(lines)-1], rendered)

	var out []topItem
	for i := 1; i < len(lines)-1; i++ {
		line := lines[i]
		switch {
		case strings.HasPrefix(line, "    struct "):
			text := []string{strings.TrimSpace(line)}
			for i++; i < len(lines)-1 && lines[i] != "    }"; i++ {
				text = append(text, strings.TrimSpace(lines[i]))
			}
			text = append(text, "}")
			out = append(out, topItem{"struct", strings.Join(text, " ")})

		case strings.HasPrefix(line, "    type "):
			out = append(out, topItem{"type", strings.TrimSpace(line)})
		case strings.HasPrefix(line, "    error "):
			out = append(out, topItem{"error", strings.TrimSpace(line)})
		case strings.HasPrefix(line, "    event "):
			out = append(out, topItem{"event", strings.TrimSpace(line)})
		case strings.HasPrefix(line, "    function "):
			out = append(out, topItem{"function", strings.TrimSpace(line)})
		default:
			t.Fatalf("unexpected top-level line %q in rendered interface:\n%v\nitems so far:\n%v",
				line, rendered, spew.Sdump(out))
		}
	}
	return out
}
