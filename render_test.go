package solface

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderInterfaceErc20(t *testing.T) {
	rendered := RenderInterface(`Erc20`, testAbi)

	require.Equal(t, strings.TrimSpace(`
interface Erc20 {
    error InsufficientBalance(uint256 available, uint256 required);
    event Transfer(address indexed from, address indexed to, uint256 value);
    event Approval(address indexed owner, address indexed spender, uint256 value);
    function transfer(address to, uint256 amount) external returns (bool a);
    function balanceOf(address owner) external view returns (uint256 a);
    function approve(address spender, uint256 amount) external returns (bool a);
}
`), rendered)
}

func TestRenderInterfaceUdvts(t *testing.T) {
	artifact := readArtifact(t, `testdata/udvts.json`)
	rendered := RenderInterface(`Seaport`, artifact.Abi)
	items := topLevelItems(t, rendered)

	var kinds, names []string
	for _, item := range items {
		kinds = append(kinds, item.Kind)
	}
	require.Equal(t, []string{
		"type", "type", "type",
		"struct", "struct", "struct", "struct", "struct", "struct", "struct", "struct",
		"function",
	}, kinds)

	require.Equal(t, "type ItemType is bytes32;", items[0].Text)
	require.Equal(t, "type OrderType is uint256;", items[1].Text)
	require.Equal(t, "type Side is bool;", items[2].Text)

	for _, item := range items[3:11] {
		names = append(names, strings.Fields(item.Text)[1])
	}
	require.Equal(t, []string{
		"AdvancedOrder", "ConsiderationItem", "CriteriaResolver", "Execution",
		"FulfillmentComponent", "OfferItem", "OrderParameters", "ReceivedItem",
	}, names)

	require.Equal(t,
		"struct FulfillmentComponent { uint256 orderIndex; uint256 itemIndex; }",
		items[7].Text)
	require.Equal(t,
		"struct Execution { ReceivedItem item; address offerer; bytes32 conduitKey; }",
		items[6].Text)

	require.Equal(t,
		"function fulfillAvailableAdvancedOrders(AdvancedOrder[] a, CriteriaResolver[] b, "+
			"FulfillmentComponent[][] c, FulfillmentComponent[][] d, bytes32 fulfillerConduitKey, "+
			"address recipient, uint256 maximumFulfilled) external payable "+
			"returns (bool[] e, Execution[] f);",
		items[11].Text)
}

func TestRenderInterfaceEnums(t *testing.T) {
	artifact := readArtifact(t, `testdata/enums_in_library_functions.json`)
	rendered := RenderInterface(`EnumsInLibraryFunctions`, artifact.Abi)

	require.Equal(t, strings.TrimSpace(`
interface EnumsInLibraryFunctions {
    type TheEnum is uint8;
    function enumArray(TheEnum[2] x) external pure returns (TheEnum[2] a);
    function enumArrays(TheEnum[][69][] x) external pure returns (TheEnum[][69][] a);
    function enumDynArray(TheEnum[] x) external pure returns (TheEnum[] a);
    function enum_(TheEnum x) external pure returns (TheEnum a);
}
`), rendered)
}

func TestRenderDeterministic(t *testing.T) {
	artifact := readArtifact(t, `testdata/udvts.json`)
	expected := RenderInterface(`Seaport`, artifact.Abi)

	for i := 0; i < 64; i++ {
		require.Equal(t, expected, RenderInterface(`Seaport`, artifact.Abi))
	}
}

func TestRenderReservedWords(t *testing.T) {
	doc := MustParseAbiJson(`[
		{"type": "function", "name": "address", "inputs": [
			{"name": "contract", "type": "address"},
			{"name": "free", "type": "uint256"}
		], "stateMutability": "view"},
		{"type": "event", "name": "emit", "inputs": [{"name": "virtual", "type": "bool"}]}
	]`)

	rendered := RenderInterface(`interface`, doc)
	items := topLevelItems(t, rendered)

	require.True(t, strings.HasPrefix(rendered, "interface interface_ {"), rendered)
	require.Equal(t, "event emit_(bool virtual_);", items[0].Text)
	require.Equal(t,
		"function address_(address contract_, uint256 free) external view;",
		items[1].Text)
}

func TestRenderSynthesizedStructNames(t *testing.T) {
	// Tuples with no usable internal-type annotation get positional names.
	doc := MustParseAbiJson(`[
		{"type": "function", "name": "f", "inputs": [
			{"name": "x", "type": "tuple", "components": [
				{"name": "a", "type": "uint256"},
				{"name": "", "type": "bool"}
			]},
			{"name": "y", "type": "tuple", "components": [
				{"name": "b", "type": "address"}
			]}
		]}
	]`)

	items := topLevelItems(t, RenderInterface(`Anon`, doc))
	require.Equal(t, []topItem{
		{"struct", "struct Struct0 { uint256 a; bool _1; }"},
		{"struct", "struct Struct1 { address b; }"},
		{"function", "function f(Struct0 x, Struct1 y) external;"},
	}, items)
}

func TestRenderStructNameCollision(t *testing.T) {
	// Distinct tuple shapes annotated with the same struct name stay distinct.
	doc := MustParseAbiJson(`[
		{"type": "function", "name": "f", "inputs": [
			{"name": "x", "type": "tuple", "internalType": "struct A.Point", "components": [
				{"name": "x", "type": "uint256"}
			]},
			{"name": "y", "type": "tuple", "internalType": "struct B.Point", "components": [
				{"name": "x", "type": "int256"}
			]}
		]}
	]`)

	items := topLevelItems(t, RenderInterface(`Collide`, doc))
	require.Equal(t, []topItem{
		{"struct", "struct Point { uint256 x; }"},
		{"struct", "struct Point_ { int256 x; }"},
		{"function", "function f(Point x, Point_ y) external;"},
	}, items)
}

func TestRenderPlaceholderOverflow(t *testing.T) {
	var inputs []string
	for i := 0; i < 28; i++ {
		inputs = append(inputs, `{"name": "", "type": "uint8"}`)
	}
	doc := MustParseAbiJson(`[{"type": "function", "name": "wide", "inputs": [` +
		strings.Join(inputs, ", ") + `]}]`)

	items := topLevelItems(t, RenderInterface(`Wide`, doc))
	text := items[0].Text
	require.Contains(t, text, "uint8 a,")
	require.Contains(t, text, "uint8 z,")
	require.Contains(t, text, "uint8 _26,")
	require.Contains(t, text, "uint8 _27)")
}
