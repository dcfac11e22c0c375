// Package codec implements the KPL aggregated record container format for Heimdall.
//
// The Kinesis Producer Library (KPL) packs multiple logical records into a
// single stream record to make better use of shard throughput. The codec
// package recognizes and decodes that container so consumers can recover the
// original records.
//
// # Container Format
//
// An aggregated payload has the following structure:
//
//	[Magic(4)][Body(protobuf)][MD5(16)]
//
// Fields:
//   - Magic: fixed marker 0xF3 0x89 0x9A 0xC2 identifying a KPL aggregate
//   - Body: protobuf-encoded AggregatedRecord message (see below)
//   - MD5: 16-byte MD5 digest over everything before it (magic + body)
//
// The minimum possible aggregate is 20 bytes. Anything shorter, anything
// without the magic marker, or anything whose trailing digest does not match
// is classified as not aggregated and must be treated as a plain record.
//
// # Body Schema
//
// The body is the KPL AggregatedRecord protobuf message:
//
//	message AggregatedRecord {
//	  repeated string partition_key_table    = 1;
//	  repeated string explicit_hash_key_table = 2;
//	  repeated Record records                = 3;
//	}
//
//	message Record {
//	  required uint64 partition_key_index     = 1;
//	  optional uint64 explicit_hash_key_index = 2;
//	  required bytes  data                    = 3;
//	}
//
// Sub-records reference the key tables by index; resolving those indices is
// the concern of the deagg package. Unknown fields in either message are
// skipped by wire type so future producer additions do not break decoding.
//
// # Error Handling
//
// DecodeAggregate distinguishes two outcomes that are easy to conflate:
//   - Not aggregated: short payload, missing magic, or checksum mismatch.
//     This is a classification, not an error. A record that happens to start
//     with the magic bytes must still be usable as a plain record.
//   - Corrupt aggregate: the checksum validated, so the payload is certainly
//     a KPL aggregate, but the body violates the message framing. This is
//     reported as a *CorruptAggregateError scoped to that one payload.
//
// # Thread Safety
//
// Decoding allocates its own state per call and never mutates the input
// buffer. Decoded AggregateBody values are immutable after construction and
// safe to share between goroutines.
package codec
