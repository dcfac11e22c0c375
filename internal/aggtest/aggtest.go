// Package aggtest builds wire-exact KPL aggregated payloads for tests.
//
// It encodes the AggregatedRecord protobuf message with protowire rather than
// sharing any code with the decoder, so tests exercise the real container
// format instead of round-tripping through the implementation under test.
package aggtest

import (
	"crypto/md5" //nolint:gosec // KPL trailer digest

	"google.golang.org/protobuf/encoding/protowire"
)

// Magic is the KPL aggregate marker
var Magic = []byte{0xF3, 0x89, 0x9A, 0xC2}

// Record describes one sub-record to pack into an aggregate
type Record struct {
	PartitionKeyIndex    uint64
	ExplicitHashKeyIndex *uint64
	Data                 []byte
}

// EHK is a convenience for taking the address of an explicit hash key index
func EHK(i uint64) *uint64 {
	return &i
}

// Build assembles a complete aggregated payload: magic marker, protobuf body,
// and trailing MD5 digest.
func Build(partitionKeys, explicitHashKeys []string, records []Record) []byte {
	payload := append([]byte{}, Magic...)
	payload = append(payload, Body(partitionKeys, explicitHashKeys, records)...)
	sum := md5.Sum(payload) //nolint:gosec
	return append(payload, sum[:]...)
}

// Body encodes just the AggregatedRecord protobuf message
func Body(partitionKeys, explicitHashKeys []string, records []Record) []byte {
	var b []byte
	for _, pk := range partitionKeys {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendString(b, pk)
	}
	for _, ehk := range explicitHashKeys {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendString(b, ehk)
	}
	for _, r := range records {
		var rec []byte
		rec = protowire.AppendTag(rec, 1, protowire.VarintType)
		rec = protowire.AppendVarint(rec, r.PartitionKeyIndex)
		if r.ExplicitHashKeyIndex != nil {
			rec = protowire.AppendTag(rec, 2, protowire.VarintType)
			rec = protowire.AppendVarint(rec, *r.ExplicitHashKeyIndex)
		}
		rec = protowire.AppendTag(rec, 3, protowire.BytesType)
		rec = protowire.AppendBytes(rec, r.Data)

		b = protowire.AppendTag(b, 3, protowire.BytesType)
		b = protowire.AppendBytes(b, rec)
	}
	return b
}

// Seal wraps an already-encoded body with the magic marker and digest.
// Useful for constructing deliberately malformed aggregates whose checksum
// still validates.
func Seal(body []byte) []byte {
	payload := append([]byte{}, Magic...)
	payload = append(payload, body...)
	sum := md5.Sum(payload) //nolint:gosec
	return append(payload, sum[:]...)
}
