package solface

/*
Normalizes the document in place by collapsing ABI entries that are
indistinguishable once projected onto their name and canonical input-type
sequence. Within each name bucket, an entry is dropped when its canonical
input types equal those of the immediately preceding retained entry.

Some ABI producers emit the same entry twice when merging multiple
compilation units. Non-adjacent duplicates are legitimate overloads (same
name, different input types) and survive; the input is assumed to group
overloads. Idempotent; cannot fail.
*/
func Normalize(doc *AbiDocument) {
	for _, name := range doc.Functions.Names() {
		doc.Functions.Replace(name, dedupAdjacent(doc.Functions.Get(name), func(entry FunctionEntry) []Param {
			return entry.Inputs
		}))
	}
	for _, name := range doc.Events.Names() {
		doc.Events.Replace(name, dedupAdjacent(doc.Events.Get(name), func(entry EventEntry) []Param {
			return entry.Inputs
		}))
	}
	for _, name := range doc.Errors.Names() {
		doc.Errors.Replace(name, dedupAdjacent(doc.Errors.Get(name), func(entry ErrorEntry) []Param {
			return entry.Inputs
		}))
	}
}

/*
Drops every entry whose canonical input types equal those of the previous
retained entry. Parameter names and internal-type annotations are ignored;
only the canonical type string matters. Filters in place.
*/
func dedupAdjacent[T any](entries []T, inputs func(T) []Param) []T {
	out := entries[:0]
	prev := ""
	for _, entry := range entries {
		canon := paramsCanonical(inputs(entry))
		if len(out) > 0 && canon == prev {
			continue
		}
		out = append(out, entry)
		prev = canon
	}
	return out
}
