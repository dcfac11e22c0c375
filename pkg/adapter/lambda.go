// Package adapter translates event-source shapes into the fixed-shape records
// the deagg engine consumes. Adapters are translation only; they never talk
// to the stream.
package adapter

import (
	"github.com/aws/aws-lambda-go/events"
	"github.com/ssargent/heimdall/pkg/deagg"
)

// FromLambdaEvent converts the records of a Lambda Kinesis event into raw
// records, carrying the event envelope through unchanged.
func FromLambdaEvent(event events.KinesisEvent) []deagg.RawRecord {
	records := make([]deagg.RawRecord, 0, len(event.Records))
	for _, r := range event.Records {
		records = append(records, deagg.RawRecord{
			Data:           r.Kinesis.Data,
			PartitionKey:   r.Kinesis.PartitionKey,
			SequenceNumber: r.Kinesis.SequenceNumber,

			ApproximateArrivalTimestamp: r.Kinesis.ApproximateArrivalTimestamp.Time,
			EventID:                     r.EventID,
			EventName:                   r.EventName,
			EventSourceARN:              r.EventSourceArn,
			AwsRegion:                   r.AwsRegion,
			KinesisSchemaVersion:        r.Kinesis.KinesisSchemaVersion,
		})
	}
	return records
}

// DeaggregateLambdaEvent expands a Lambda Kinesis event into user records in
// one call, failing fast on the first scoped decode error.
func DeaggregateLambdaEvent(d *deagg.Deaggregator, event events.KinesisEvent) ([]deagg.UserRecord, error) {
	return d.Deaggregate(FromLambdaEvent(event))
}
