package adapter

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/kinesis"
	"github.com/ssargent/heimdall/pkg/deagg"
)

// FromKinesisRecords converts records from a GetRecords response into raw
// records. The SDK record carries no source metadata of its own, so the
// caller supplies the stream ARN and region it read from; both may be empty.
func FromKinesisRecords(recs []*kinesis.Record, eventSourceARN, region string) []deagg.RawRecord {
	records := make([]deagg.RawRecord, 0, len(recs))
	for _, r := range recs {
		if r == nil {
			continue
		}
		records = append(records, deagg.RawRecord{
			Data:           r.Data,
			PartitionKey:   aws.StringValue(r.PartitionKey),
			SequenceNumber: aws.StringValue(r.SequenceNumber),

			ApproximateArrivalTimestamp: aws.TimeValue(r.ApproximateArrivalTimestamp),
			EventSourceARN:              eventSourceARN,
			AwsRegion:                   region,
		})
	}
	return records
}

// DeaggregateKinesisRecords expands GetRecords output into user records in
// one call, failing fast on the first scoped decode error.
func DeaggregateKinesisRecords(d *deagg.Deaggregator, recs []*kinesis.Record, eventSourceARN, region string) ([]deagg.UserRecord, error) {
	return d.Deaggregate(FromKinesisRecords(recs, eventSourceARN, region))
}
