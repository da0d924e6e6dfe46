package solface

/*
See https://docs.soliditylang.org/en/develop/abi-spec.html for the JSON ABI
serialization this package consumes.
*/

import (
	"encoding/hex"
	"encoding/json"
	"io"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"
)

/*
Represents a method parameter, method return value, event parameter, or error
parameter. Part of an ABI definition. Decoding also parses the type into a
"TypeDesc"; see the ".Desc" field.
*/
type Param struct {
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	InternalType string   `json:"internalType,omitempty"`
	Components   []Param  `json:"components,omitempty"`
	Indexed      bool     `json:"indexed,omitempty"` // event only
	Desc         TypeDesc `json:"-"`
}

// Implements "json.Unmarshaler".
func (self *Param) UnmarshalJSON(input []byte) error {
	var plain struct {
		Name         string
		Type         string
		InternalType string
		Components   []Param
		Indexed      bool
	}

	err := json.Unmarshal(input, &plain)
	if err != nil {
		return errors.WithStack(err)
	}

	components := make([]TypeDesc, 0, len(plain.Components))
	for _, component := range plain.Components {
		components = append(components, component.Desc)
	}

	desc, err := ParseTypeDesc(plain.Type, components)
	if err != nil {
		return err
	}
	if desc.base().Kind == TypeTuple && len(plain.Components) == 0 {
		return errors.Errorf(`malformed ABI parameter %q: tuple type without components`, plain.Type)
	}

	*self = Param{
		Name:         plain.Name,
		Type:         plain.Type,
		InternalType: plain.InternalType,
		Components:   plain.Components,
		Indexed:      plain.Indexed,
		Desc:         desc,
	}
	return nil
}

/*
Returns the canonical signature of a method, event, or error definition:
the name followed by the parenthesized canonical types of the parameters,
with tuples expanded. For example: "transfer(address,uint256)".
*/
func Signature(name string, params []Param) string {
	var buf strings.Builder
	buf.WriteString(name)
	buf.WriteString(paramsCanonical(params))
	return buf.String()
}

// Parenthesized canonical input-type sequence: "(address,uint256)".
func paramsCanonical(params []Param) string {
	var buf strings.Builder
	buf.WriteByte('(')
	for i, param := range params {
		if i > 0 {
			buf.WriteByte(',')
		}
		param.Desc.appendCanonical(&buf)
	}
	buf.WriteByte(')')
	return buf.String()
}

/*
Computes the Keccak-256 checksum of a method or event definition. This is an
intermediary step to computing a function selector (for method calls) or an
event topic (for log filtering). This is used internally, and shouldn't be
necessary for most users.
*/
func SignatureChecksum(name string, params []Param) []byte {
	hash := sha3.NewLegacyKeccak256()
	hash.Write(stringToBytesUnsafe(Signature(name, params)))
	return hash.Sum(nil)
}

/*
Represents a contract method. The ".Selector" is precomputed during JSON
decoding from the canonical signature.
*/
type FunctionEntry struct {
	Name            string
	Inputs          []Param
	Outputs         []Param
	StateMutability string
	Selector        [4]byte
}

/*
Implements "json.Unmarshaler". In addition to parsing the JSON structure, this
precomputes the method's ".Selector" and, for pre-0.5 compilers that emit only
the "constant" and "payable" flags, derives the state mutability.
*/
func (self *FunctionEntry) UnmarshalJSON(input []byte) error {
	var plain struct {
		Name            string
		Inputs          []Param
		Outputs         []Param
		StateMutability string
		Constant        bool
		Payable         bool
	}

	err := json.Unmarshal(input, &plain)
	if err != nil {
		return errors.WithStack(err)
	}
	if plain.Name == "" {
		return errors.New(`malformed ABI entry: function without a name`)
	}

	mutability := plain.StateMutability
	if mutability == "" {
		switch {
		case plain.Payable:
			mutability = "payable"
		case plain.Constant:
			mutability = "view"
		default:
			mutability = "nonpayable"
		}
	}

	sum := SignatureChecksum(plain.Name, plain.Inputs)
	*self = FunctionEntry{
		Name:            plain.Name,
		Inputs:          plain.Inputs,
		Outputs:         plain.Outputs,
		StateMutability: mutability,
		Selector:        [4]byte{sum[0], sum[1], sum[2], sum[3]},
	}
	return nil
}

// Implements "json.Marshaler". Emits the standard JSON ABI shape.
func (self FunctionEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type            string  `json:"type"`
		Name            string  `json:"name"`
		Inputs          []Param `json:"inputs"`
		Outputs         []Param `json:"outputs"`
		StateMutability string  `json:"stateMutability"`
	}{"function", self.Name, orEmptyParams(self.Inputs), orEmptyParams(self.Outputs), self.StateMutability})
}

/*
Represents a contract event. The ".Selector" is the topic under which the
event appears in logs, precomputed during JSON decoding.
*/
type EventEntry struct {
	Name      string
	Inputs    []Param
	Anonymous bool
	Selector  Word
}

// Implements "json.Unmarshaler". Also precomputes the event's ".Selector".
func (self *EventEntry) UnmarshalJSON(input []byte) error {
	var plain struct {
		Name      string
		Inputs    []Param
		Anonymous bool
	}

	err := json.Unmarshal(input, &plain)
	if err != nil {
		return errors.WithStack(err)
	}
	if plain.Name == "" {
		return errors.New(`malformed ABI entry: event without a name`)
	}

	*self = EventEntry{
		Name:      plain.Name,
		Inputs:    plain.Inputs,
		Anonymous: plain.Anonymous,
		Selector:  bytesToWord(SignatureChecksum(plain.Name, plain.Inputs)),
	}
	return nil
}

// Implements "json.Marshaler". Emits the standard JSON ABI shape.
func (self EventEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type      string  `json:"type"`
		Name      string  `json:"name"`
		Inputs    []Param `json:"inputs"`
		Anonymous bool    `json:"anonymous"`
	}{"event", self.Name, orEmptyParams(self.Inputs), self.Anonymous})
}

// Represents a custom contract error.
type ErrorEntry struct {
	Name     string
	Inputs   []Param
	Selector [4]byte
}

// Implements "json.Unmarshaler". Also precomputes the error's ".Selector".
func (self *ErrorEntry) UnmarshalJSON(input []byte) error {
	var plain struct {
		Name   string
		Inputs []Param
	}

	err := json.Unmarshal(input, &plain)
	if err != nil {
		return errors.WithStack(err)
	}
	if plain.Name == "" {
		return errors.New(`malformed ABI entry: error without a name`)
	}

	sum := SignatureChecksum(plain.Name, plain.Inputs)
	*self = ErrorEntry{
		Name:     plain.Name,
		Inputs:   plain.Inputs,
		Selector: [4]byte{sum[0], sum[1], sum[2], sum[3]},
	}
	return nil
}

// Implements "json.Marshaler". Emits the standard JSON ABI shape.
func (self ErrorEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type   string  `json:"type"`
		Name   string  `json:"name"`
		Inputs []Param `json:"inputs"`
	}{"error", self.Name, orEmptyParams(self.Inputs)})
}

// Represents a contract constructor.
type ConstructorEntry struct {
	Inputs          []Param `json:"inputs"`
	StateMutability string  `json:"stateMutability"`
}

// Implements "json.Marshaler". Emits the standard JSON ABI shape.
func (self ConstructorEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type            string  `json:"type"`
		Inputs          []Param `json:"inputs"`
		StateMutability string  `json:"stateMutability"`
	}{"constructor", orEmptyParams(self.Inputs), orNonpayable(self.StateMutability)})
}

// Represents a contract fallback definition.
type FallbackEntry struct {
	StateMutability string `json:"stateMutability"`
}

// Implements "json.Marshaler". Emits the standard JSON ABI shape.
func (self FallbackEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type            string `json:"type"`
		StateMutability string `json:"stateMutability"`
	}{"fallback", orNonpayable(self.StateMutability)})
}

// Represents a contract receive definition. Always payable.
type ReceiveEntry struct {
	StateMutability string `json:"stateMutability"`
}

// Implements "json.Marshaler". Emits the standard JSON ABI shape.
func (self ReceiveEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type            string `json:"type"`
		StateMutability string `json:"stateMutability"`
	}{"receive", "payable"})
}

func orEmptyParams(params []Param) []Param {
	if params == nil {
		return []Param{}
	}
	return params
}

func orNonpayable(mutability string) string {
	if mutability == "" {
		return "nonpayable"
	}
	return mutability
}

/*
An insertion-ordered grouping of ABI entries by name. Within each bucket,
entries keep their source order, which preserves overloads; across buckets,
names keep the order of their first appearance. The zero value is ready for
use.

This stands in contrast to plain Go maps, whose iteration order is
randomized: everything downstream of the ABI model must be deterministic,
byte for byte.
*/
type Buckets[T any] struct {
	names   []string
	entries map[string][]T
}

// Appends an entry to the bucket under the given name, registering the name
// on first appearance.
func (self *Buckets[T]) Add(name string, entry T) {
	if self.entries == nil {
		self.entries = map[string][]T{}
	}
	if _, ok := self.entries[name]; !ok {
		self.names = append(self.names, name)
	}
	self.entries[name] = append(self.entries[name], entry)
}

// Bucket names in first-appearance order. The returned slice is shared;
// treat it as read-only.
func (self *Buckets[T]) Names() []string {
	return self.names
}

// Entries of one bucket, in source order. The returned slice is shared;
// treat it as read-only.
func (self *Buckets[T]) Get(name string) []T {
	return self.entries[name]
}

// Replaces the entries of an existing bucket. An empty replacement keeps the
// bucket registered; empty buckets are valid.
func (self *Buckets[T]) Replace(name string, entries []T) {
	if self.entries == nil {
		return
	}
	if _, ok := self.entries[name]; ok {
		self.entries[name] = entries
	}
}

// Total number of entries across all buckets.
func (self *Buckets[T]) Len() int {
	total := 0
	for _, entries := range self.entries {
		total += len(entries)
	}
	return total
}

/*
In-memory representation of a parsed JSON ABI: method, event and error
definitions grouped into name buckets, at most one constructor, fallback and
receive definition, plus optional compiled and deployed bytecode blobs
carried as verbatim hex strings.

A document is parsed once per generator invocation, mutated only by
"Normalize", and consumed by "RenderInterface"; it is not shared across
invocations.
*/
type AbiDocument struct {
	Constructor *ConstructorEntry
	Fallback    *FallbackEntry
	Receive     *ReceiveEntry
	Functions   Buckets[FunctionEntry]
	Events      Buckets[EventEntry]
	Errors      Buckets[ErrorEntry]

	// Optional bytecode blobs, carried verbatim from the contract artifact.
	Bytecode         string
	DeployedBytecode string
}

/*
Parses an ABI definition. The input must be a JSON ABI array from a Solidity
compiler. Panics on failure. Convenient for initializing global variables:

	var TestAbi = solface.MustParseAbiJson(`[{"type": "function", "name": "test", ...}]`)
*/
func MustParseAbiJson(input string) *AbiDocument {
	var doc AbiDocument
	err := doc.UnmarshalJSON(stringToBytesUnsafe(input))
	if err != nil {
		panic(err)
	}
	return &doc
}

/*
Implements "json.Unmarshaler". Decodes a JSON ABI array produced by a Solidity
compiler, dispatching each entry on its "type" tag.
*/
func (self *AbiDocument) UnmarshalJSON(input []byte) error {
	var chunks []json.RawMessage

	err := json.Unmarshal(input, &chunks)
	if err != nil {
		return errors.WithStack(err)
	}

	out := AbiDocument{}
	for _, chunk := range chunks {
		err := out.addEntry(chunk)
		if err != nil {
			return err
		}
	}
	*self = out
	return nil
}

func (self *AbiDocument) addEntry(input []byte) error {
	var tag struct{ Type string }

	err := json.Unmarshal(input, &tag)
	if err != nil {
		return errors.WithStack(err)
	}

	switch tag.Type {
	case "function", "":
		var val FunctionEntry
		err = json.Unmarshal(input, &val)
		if err != nil {
			return err
		}
		self.Functions.Add(val.Name, val)

	case "event":
		var val EventEntry
		err = json.Unmarshal(input, &val)
		if err != nil {
			return err
		}
		self.Events.Add(val.Name, val)

	case "error":
		var val ErrorEntry
		err = json.Unmarshal(input, &val)
		if err != nil {
			return err
		}
		self.Errors.Add(val.Name, val)

	case "constructor":
		if self.Constructor != nil {
			return errors.New(`malformed ABI: more than one constructor`)
		}
		var val ConstructorEntry
		err = json.Unmarshal(input, &val)
		if err != nil {
			return errors.WithStack(err)
		}
		self.Constructor = &val

	case "fallback":
		if self.Fallback != nil {
			return errors.New(`malformed ABI: more than one fallback`)
		}
		var val FallbackEntry
		err = json.Unmarshal(input, &val)
		if err != nil {
			return errors.WithStack(err)
		}
		self.Fallback = &val

	case "receive":
		if self.Receive != nil {
			return errors.New(`malformed ABI: more than one receive`)
		}
		var val ReceiveEntry
		err = json.Unmarshal(input, &val)
		if err != nil {
			return errors.WithStack(err)
		}
		self.Receive = &val

	default:
		return errors.Errorf("unknown ABI type: %v", tag.Type)
	}
	return nil
}

/*
Implements "json.Marshaler". Emits a standard JSON ABI array: constructor,
fallback and receive first, then functions, events and errors in bucket
order. The output is deterministic and round-trips through "UnmarshalJSON".
Bytecode blobs are not part of the ABI serialization.
*/
func (self *AbiDocument) MarshalJSON() ([]byte, error) {
	out := []any{}
	if self.Constructor != nil {
		out = append(out, *self.Constructor)
	}
	if self.Fallback != nil {
		out = append(out, *self.Fallback)
	}
	if self.Receive != nil {
		out = append(out, *self.Receive)
	}
	for _, name := range self.Functions.Names() {
		for _, entry := range self.Functions.Get(name) {
			out = append(out, entry)
		}
	}
	for _, name := range self.Events.Names() {
		for _, entry := range self.Events.Get(name) {
			out = append(out, entry)
		}
	}
	for _, name := range self.Errors.Names() {
		for _, entry := range self.Errors.Get(name) {
			out = append(out, entry)
		}
	}
	return json.Marshal(out)
}

// Attempts to find the method by name. For overloaded methods, returns the
// first overload. Boolean indicates success or failure.
func (self *AbiDocument) MaybeFunction(name string) (FunctionEntry, bool) {
	entries := self.Functions.Get(name)
	if len(entries) == 0 {
		return FunctionEntry{}, false
	}
	return entries[0], true
}

// Finds the method by name. Panics if not found.
func (self *AbiDocument) Function(name string) FunctionEntry {
	out, ok := self.MaybeFunction(name)
	if !ok {
		panic("function " + name + " not found in ABI definition")
	}
	return out
}

// Attempts to find the event by name. Boolean indicates success or failure.
func (self *AbiDocument) MaybeEvent(name string) (EventEntry, bool) {
	entries := self.Events.Get(name)
	if len(entries) == 0 {
		return EventEntry{}, false
	}
	return entries[0], true
}

// Finds the event by name. Panics if not found.
func (self *AbiDocument) Event(name string) EventEntry {
	out, ok := self.MaybeEvent(name)
	if !ok {
		panic("event " + name + " not found in ABI definition")
	}
	return out
}

/*
Maps the canonical signature of every method, overloads included, to its
hex-encoded 4-byte selector, the way compiler artifacts expose
"methodIdentifiers".
*/
func (self *AbiDocument) MethodIdentifiers() map[string]string {
	out := make(map[string]string, self.Functions.Len())
	for _, name := range self.Functions.Names() {
		for _, entry := range self.Functions.Get(name) {
			out[Signature(entry.Name, entry.Inputs)] = hex.EncodeToString(entry.Selector[:])
		}
	}
	return out
}

/*
A contract artifact as produced by a Solidity toolchain: a top-level JSON
object with an optional "abi" array and optional "bytecode" and
"deployedBytecode" blobs. The blobs may be bare hex strings or objects
carrying the string under "object"; they are validated as hex and carried
verbatim, preserving case, on the decoded document.

An absent "abi" key leaves ".Abi" nil; "Expand" reports this as a user error.
*/
type ContractArtifact struct {
	Abi     *AbiDocument
	AbiJson string
}

// Implements "json.Unmarshaler". See the type comment for the accepted shape.
func (self *ContractArtifact) UnmarshalJSON(input []byte) error {
	var plain struct {
		Abi              json.RawMessage `json:"abi"`
		Bytecode         bytecodeRef     `json:"bytecode"`
		DeployedBytecode bytecodeRef     `json:"deployedBytecode"`
	}

	err := json.Unmarshal(input, &plain)
	if err != nil {
		return errors.Wrap(err, `failed to decode contract artifact`)
	}

	out := ContractArtifact{}
	if len(plain.Abi) > 0 && string(plain.Abi) != "null" {
		var doc AbiDocument
		err = json.Unmarshal(plain.Abi, &doc)
		if err != nil {
			return errors.Wrap(err, `failed to decode contract artifact`)
		}
		doc.Bytecode = plain.Bytecode.Hex
		doc.DeployedBytecode = plain.DeployedBytecode.Hex
		out.Abi = &doc
		out.AbiJson = string(plain.Abi)
	}
	*self = out
	return nil
}

/*
Decodes one bytecode blob of a contract artifact: either a bare hex string or
an object carrying the hex string under "object". The hex is validated but
carried verbatim.
*/
type bytecodeRef struct{ Hex string }

// Implements "json.Unmarshaler".
func (self *bytecodeRef) UnmarshalJSON(input []byte) error {
	if string(input) == "null" {
		return nil
	}

	if len(input) > 0 && input[0] == '{' {
		var obj struct {
			Object string `json:"object"`
		}
		err := json.Unmarshal(input, &obj)
		if err != nil {
			return errors.WithStack(err)
		}
		if obj.Object == "" {
			return nil
		}
		err = ValidateHex(obj.Object)
		if err != nil {
			return err
		}
		self.Hex = obj.Object
		return nil
	}

	var str string
	err := json.Unmarshal(input, &str)
	if err != nil {
		return errors.WithStack(err)
	}
	if str == "" {
		return nil
	}
	err = ValidateHex(str)
	if err != nil {
		return err
	}
	self.Hex = str
	return nil
}

/*
Decodes a contract artifact from a JSON stream. See "ContractArtifact" for
the accepted shape.
*/
func ReadContractArtifact(src io.Reader) (ContractArtifact, error) {
	var out ContractArtifact
	err := json.NewDecoder(src).Decode(&out)
	if err != nil {
		return ContractArtifact{}, errors.Wrap(err, `failed to read contract artifact`)
	}
	return out, nil
}

// Decodes a contract artifact. See "ReadContractArtifact" for details.
func DecodeContractArtifact(input []byte) (ContractArtifact, error) {
	var out ContractArtifact
	err := json.Unmarshal(input, &out)
	if err != nil {
		return ContractArtifact{}, errors.Wrap(err, `failed to decode contract artifact`)
	}
	return out, nil
}
