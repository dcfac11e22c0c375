package deagg

import "github.com/ssargent/heimdall/pkg/codec"

// newUserRecord builds one output record from a resolved sub-record,
// inheriting the envelope fields of the enclosing RawRecord.
func newUserRecord(raw RawRecord, partitionKey, explicitHashKey string, data []byte, subSequence uint64) UserRecord {
	return UserRecord{
		PartitionKey:      partitionKey,
		ExplicitHashKey:   explicitHashKey,
		Data:              data,
		SequenceNumber:    raw.SequenceNumber,
		SubSequenceNumber: subSequence,
		Aggregated:        true,

		ApproximateArrivalTimestamp: raw.ApproximateArrivalTimestamp,
		EventID:                     raw.EventID,
		EventName:                   raw.EventName,
		EventSourceARN:              raw.EventSourceARN,
		AwsRegion:                   raw.AwsRegion,
		KinesisSchemaVersion:        raw.KinesisSchemaVersion,
	}
}

// passthrough reinterprets a non-aggregated RawRecord as a single UserRecord
func passthrough(raw RawRecord) UserRecord {
	return UserRecord{
		PartitionKey:      raw.PartitionKey,
		ExplicitHashKey:   raw.ExplicitHashKey,
		Data:              raw.Data,
		SequenceNumber:    raw.SequenceNumber,
		SubSequenceNumber: 0,
		Aggregated:        false,

		ApproximateArrivalTimestamp: raw.ApproximateArrivalTimestamp,
		EventID:                     raw.EventID,
		EventName:                   raw.EventName,
		EventSourceARN:              raw.EventSourceARN,
		AwsRegion:                   raw.AwsRegion,
		KinesisSchemaVersion:        raw.KinesisSchemaVersion,
	}
}

// assemble expands a decoded aggregate body into user records in table order.
// On a resolve failure it returns the records produced so far together with a
// RecordError identifying the failing position; expansion of that aggregate
// stops there.
func assemble(raw RawRecord, body *codec.AggregateBody) ([]UserRecord, *RecordError) {
	out := make([]UserRecord, 0, len(body.Records))
	for i, rec := range body.Records {
		partitionKey, explicitHashKey, err := resolveKeys(body, rec)
		if err != nil {
			return out, &RecordError{
				SequenceNumber:    raw.SequenceNumber,
				SubSequenceNumber: uint64(i),
				Err:               err,
			}
		}
		out = append(out, newUserRecord(raw, partitionKey, explicitHashKey, rec.Data, uint64(i)))
	}
	return out, nil
}
