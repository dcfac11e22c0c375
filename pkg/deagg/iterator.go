package deagg

import "github.com/ssargent/heimdall/pkg/codec"

// Iterator provides lazy, forward-only access to the user records of a batch.
// Each call to Next does just enough work to produce the next item: either a
// user record or a scoped error. The sequence is finite and non-restartable.
//
// Usage:
//
//	it := d.Iterator(records)
//	for it.Next() {
//	    if err := it.Err(); err != nil {
//	        // failure scoped to one source record; keep pulling
//	        continue
//	    }
//	    process(it.Record())
//	}
//
// When Err returns non-nil the current item is the failure itself, Record
// returns a zero value, and the iterator skips the remainder of the source
// record in flight. Subsequent source records decode independently.
type Iterator struct {
	records []RawRecord
	next    int

	// expansion state of the aggregate in flight
	raw  RawRecord
	body *codec.AggregateBody
	sub  int

	cur UserRecord
	err *RecordError
}

// Iterator creates a lazy traversal over records
func (d *Deaggregator) Iterator(records []RawRecord) *Iterator {
	return &Iterator{records: records}
}

// Next advances to the next item. It returns false once all source records
// are exhausted.
func (it *Iterator) Next() bool {
	it.err = nil
	it.cur = UserRecord{}

	for {
		if it.body != nil {
			if it.sub < len(it.body.Records) {
				rec := it.body.Records[it.sub]
				partitionKey, explicitHashKey, err := resolveKeys(it.body, rec)
				if err != nil {
					it.err = &RecordError{
						SequenceNumber:    it.raw.SequenceNumber,
						SubSequenceNumber: uint64(it.sub),
						Err:               err,
					}
					// abandon the rest of this aggregate
					it.body = nil
					return true
				}
				it.cur = newUserRecord(it.raw, partitionKey, explicitHashKey, rec.Data, uint64(it.sub))
				it.sub++
				return true
			}
			it.body = nil
		}

		if it.next >= len(it.records) {
			return false
		}
		raw := it.records[it.next]
		it.next++

		body, ok, err := codec.DecodeAggregate(raw.Data)
		if err != nil {
			it.err = &RecordError{SequenceNumber: raw.SequenceNumber, Err: err}
			return true
		}
		if !ok {
			it.cur = passthrough(raw)
			return true
		}
		it.raw = raw
		it.body = body
		it.sub = 0
	}
}

// Record returns the user record produced by the last successful Next.
// It is only valid when Err returns nil.
func (it *Iterator) Record() UserRecord {
	return it.cur
}

// Err returns the scoped error for the current item, if the current item is
// a failure. It is reset on every call to Next.
func (it *Iterator) Err() error {
	if it.err == nil {
		return nil
	}
	return it.err
}
