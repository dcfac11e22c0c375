// Package deagg expands KPL-aggregated stream records back into the user
// records a producer originally submitted.
//
// Input is a sequence of RawRecord values: the stream record payload plus the
// envelope fields supplied by whatever delivered it (Lambda event, GetRecords
// response, replay file). Output is an ordered sequence of UserRecord values
// that look as if aggregation never happened: original partition keys,
// explicit hash keys, and payload bytes, plus a 0-based sub-sequence number
// identifying each record's position within its aggregate.
//
// A payload that is not a KPL aggregate passes through unchanged as a single
// UserRecord with Aggregated=false. Decoding failures are scoped to the one
// RawRecord that produced them and never block sibling records.
//
// Three traversal modes share the same decode pipeline:
//
//   - Deaggregate: eager, fails the whole call on the first scoped error
//   - DeaggregateTolerant: eager, collects per-record errors alongside output
//   - Iterator / EachRecord: lazy pull and callback-driven push with
//     per-record error isolation
//
// A Deaggregator holds no mutable state between calls; independent callers
// may share one instance across goroutines.
package deagg
