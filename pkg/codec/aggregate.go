package codec

import (
	"bytes"
	"fmt"
)

// Magic is the fixed 4-byte marker at the start of every KPL aggregate
var Magic = []byte{0xF3, 0x89, 0x9A, 0xC2}

// MinAggregateSize is the smallest payload that could possibly be an
// aggregate: the magic marker plus the trailing digest.
const MinAggregateSize = 4 + DigestSize

// AggregatedRecord field numbers from the KPL protobuf schema
const (
	fieldPartitionKeyTable    = 1
	fieldExplicitHashKeyTable = 2
	fieldRecords              = 3
)

// Record message field numbers from the KPL protobuf schema
const (
	fieldPartitionKeyIndex    = 1
	fieldExplicitHashKeyIndex = 2
	fieldData                 = 3
)

// Protobuf wire types
const (
	wireVarint  = 0
	wireFixed64 = 1
	wireBytes   = 2
	wireFixed32 = 5
)

// SubRecord is one logical record inside an aggregate body. Index fields
// reference the enclosing body's key tables; a nil ExplicitHashKeyIndex means
// the producer supplied no explicit hash key for this record.
type SubRecord struct {
	PartitionKeyIndex    uint64
	ExplicitHashKeyIndex *uint64
	Data                 []byte
}

// AggregateBody is the decoded form of an aggregated payload's body: the key
// tables and the ordered sub-records that reference them. Table order is
// significant; it determines sub-sequence numbering downstream.
type AggregateBody struct {
	PartitionKeys    []string
	ExplicitHashKeys []string
	Records          []SubRecord
}

// IsAggregate reports whether payload carries the aggregate magic marker and
// a valid trailing checksum. It does not parse the body.
func IsAggregate(payload []byte) bool {
	if len(payload) < MinAggregateSize {
		return false
	}
	if !bytes.Equal(payload[:len(Magic)], Magic) {
		return false
	}
	split := len(payload) - DigestSize
	return Verify(payload[:split], payload[split:])
}

// DecodeAggregate decodes a stream record payload.
//
// The boolean reports whether the payload is a KPL aggregate. When it is
// false the payload must be treated as a single plain record; this covers
// short payloads, payloads without the magic marker, and payloads whose
// trailing checksum does not match. None of those are errors.
//
// A non-nil error is only returned once the checksum has validated, meaning
// the payload is certainly an aggregate but its body violates the expected
// framing. That error is a *CorruptAggregateError scoped to this payload.
func DecodeAggregate(payload []byte) (*AggregateBody, bool, error) {
	if len(payload) < MinAggregateSize {
		return nil, false, nil
	}
	if !bytes.Equal(payload[:len(Magic)], Magic) {
		return nil, false, nil
	}
	split := len(payload) - DigestSize
	if !Verify(payload[:split], payload[split:]) {
		return nil, false, nil
	}

	body, err := parseBody(payload[len(Magic):split])
	if err != nil {
		return nil, true, err
	}
	return body, true, nil
}

// parseBody parses the AggregatedRecord message
func parseBody(b []byte) (*AggregateBody, error) {
	r := NewReader(b)
	body := &AggregateBody{}

	for r.Remaining() > 0 {
		off := r.Pos()
		tag, err := r.ReadVarint()
		if err != nil {
			return nil, &CorruptAggregateError{Offset: off, Err: err}
		}
		field, wire := tag>>3, tag&0x7

		switch {
		case field == fieldPartitionKeyTable && wire == wireBytes:
			s, err := r.ReadLengthDelimited()
			if err != nil {
				return nil, &CorruptAggregateError{Offset: off, Err: err}
			}
			body.PartitionKeys = append(body.PartitionKeys, string(s))

		case field == fieldExplicitHashKeyTable && wire == wireBytes:
			s, err := r.ReadLengthDelimited()
			if err != nil {
				return nil, &CorruptAggregateError{Offset: off, Err: err}
			}
			body.ExplicitHashKeys = append(body.ExplicitHashKeys, string(s))

		case field == fieldRecords && wire == wireBytes:
			raw, err := r.ReadLengthDelimited()
			if err != nil {
				return nil, &CorruptAggregateError{Offset: off, Err: err}
			}
			rec, err := parseSubRecord(raw)
			if err != nil {
				return nil, &CorruptAggregateError{Offset: off, Err: err}
			}
			body.Records = append(body.Records, rec)

		default:
			if err := skipField(r, wire); err != nil {
				return nil, &CorruptAggregateError{Offset: off, Err: err}
			}
		}
	}

	return body, nil
}

// parseSubRecord parses one nested Record message
func parseSubRecord(b []byte) (SubRecord, error) {
	r := NewReader(b)
	var rec SubRecord
	var sawIndex, sawData bool

	for r.Remaining() > 0 {
		tag, err := r.ReadVarint()
		if err != nil {
			return SubRecord{}, err
		}
		field, wire := tag>>3, tag&0x7

		switch {
		case field == fieldPartitionKeyIndex && wire == wireVarint:
			v, err := r.ReadVarint()
			if err != nil {
				return SubRecord{}, err
			}
			rec.PartitionKeyIndex = v
			sawIndex = true

		case field == fieldExplicitHashKeyIndex && wire == wireVarint:
			v, err := r.ReadVarint()
			if err != nil {
				return SubRecord{}, err
			}
			idx := v
			rec.ExplicitHashKeyIndex = &idx

		case field == fieldData && wire == wireBytes:
			d, err := r.ReadLengthDelimited()
			if err != nil {
				return SubRecord{}, err
			}
			rec.Data = d
			sawData = true

		default:
			if err := skipField(r, wire); err != nil {
				return SubRecord{}, err
			}
		}
	}

	// partition_key_index and data are required fields in the KPL schema
	if !sawIndex {
		return SubRecord{}, fmt.Errorf("sub-record missing partition key index")
	}
	if !sawData {
		return SubRecord{}, fmt.Errorf("sub-record missing data field")
	}

	return rec, nil
}

// skipField consumes one field of the given wire type without interpreting it
func skipField(r *Reader, wire uint64) error {
	switch wire {
	case wireVarint:
		_, err := r.ReadVarint()
		return err
	case wireFixed64:
		_, err := r.ReadFixed(8)
		return err
	case wireBytes:
		_, err := r.ReadLengthDelimited()
		return err
	case wireFixed32:
		_, err := r.ReadFixed(4)
		return err
	default:
		return fmt.Errorf("unsupported wire type %d", wire)
	}
}
