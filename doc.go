/*
Compile-time generator that turns a contract's JSON ABI into a typed Solidity
interface declaration, ready for a downstream contract-interface expander to
lower into concrete client bindings.

Work in progress. Pull requests are welcome.

Features:

	* JSON ABI model: functions, events, errors, constructor, fallback,
	  receive, with overloads preserved

	* normalization: deduplication of entries that collide after type erasure

	* interface rendering: user-defined value types, structs, errors, events,
	  functions, with deterministic byte-for-byte output

	* artifact attachment: bytecode metadata carried through verbatim,
	  alongside a generated documentation block

	* precomputed function selectors and event topics

	* optional CLI tool for turning contract artifacts into Go code or
	  interface source files; see the "gen_solface" subpackage

Why

Binding generators such as abigen couple ABI interpretation to the generation
of one specific output language, and lose information along the way: tuples
are flattened, overloads are renamed, internal-type annotations are dropped.
This package does one narrow thing instead: it reconstructs a behaviorally
equivalent interface declaration from the ABI, preserving overloads, named
tuples, and user-defined value types, and leaves the lowering to a downstream
expander with a narrow textual contract.

Usage

Parse a contract artifact and expand it:

	artifact, err := solface.DecodeContractArtifact(artifactJson)
	decl, err := solface.Expand("MyToken", artifact, nil)
	fmt.Println(decl.String())

The assembled declaration has the shape:

	@sol(bytecode = "0x...", deployed_bytecode = "0x...")
	interface MyToken {
	    function transfer(address a, uint256 b) external returns (bool c);
	}

preceded by any caller-supplied annotations, spliced verbatim, and a
documentation block embedding both the rendered interface and the normalized
ABI as pretty-printed JSON.

Errors

The generator does not panic across its API boundary ("Must" helpers
excepted). Every failure is a returned "*Error" carrying a kind: user errors
for artifacts without an ABI, internal invariant violations when the emitted
text fails the downstream token check (these are bugs in this package and say
so), and downstream errors propagated verbatim after a successful attach.

Determinism

Identical documents produce byte-identical output. The ABI model keeps name
buckets in first-appearance order, value types and structs render in sorted
name order, and nothing iterates a bare Go map on the render path.
*/
package solface
