package deagg

import (
	"fmt"
	"time"
)

// RawRecord is one stream record as delivered by an event source, before
// deaggregation. Everything except Data is envelope metadata copied verbatim
// into every UserRecord derived from it.
type RawRecord struct {
	Data              []byte
	PartitionKey      string
	ExplicitHashKey   string
	SequenceNumber    string
	SubSequenceNumber uint64

	// Source metadata passed through from the delivering adapter
	ApproximateArrivalTimestamp time.Time
	EventID                     string
	EventName                   string
	EventSourceARN              string
	AwsRegion                   string
	KinesisSchemaVersion        string
}

// UserRecord is one logical record as originally submitted by a producer.
// For an aggregated source record, PartitionKey and ExplicitHashKey are
// resolved from the aggregate's key tables and SubSequenceNumber is the
// record's 0-based position within the aggregate. For a passthrough record
// the fields are copied from the RawRecord unchanged.
type UserRecord struct {
	PartitionKey      string
	ExplicitHashKey   string
	Data              []byte
	SequenceNumber    string
	SubSequenceNumber uint64
	Aggregated        bool

	ApproximateArrivalTimestamp time.Time
	EventID                     string
	EventName                   string
	EventSourceARN              string
	AwsRegion                   string
	KinesisSchemaVersion        string
}

// RecordError describes a decoding failure scoped to one RawRecord. It
// carries enough context for the caller to log, skip, or retry at the
// message level.
type RecordError struct {
	SequenceNumber    string
	SubSequenceNumber uint64
	Err               error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %s sub-record %d: %v", e.SequenceNumber, e.SubSequenceNumber, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// IndexOutOfRangeError reports a sub-record referencing a key table index
// beyond the table's bounds.
type IndexOutOfRangeError struct {
	Table    string // "partition key" or "explicit hash key"
	Index    uint64
	TableLen int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("%s index %d out of range (table has %d entries)", e.Table, e.Index, e.TableLen)
}
