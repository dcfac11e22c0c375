package deagg

import "github.com/ssargent/heimdall/pkg/codec"

// resolveKeys resolves a sub-record's table indices into concrete key
// strings. An empty explicit hash key means the producer supplied none.
func resolveKeys(body *codec.AggregateBody, rec codec.SubRecord) (partitionKey, explicitHashKey string, err error) {
	if rec.PartitionKeyIndex >= uint64(len(body.PartitionKeys)) {
		return "", "", &IndexOutOfRangeError{
			Table:    "partition key",
			Index:    rec.PartitionKeyIndex,
			TableLen: len(body.PartitionKeys),
		}
	}
	partitionKey = body.PartitionKeys[rec.PartitionKeyIndex]

	if rec.ExplicitHashKeyIndex != nil {
		if *rec.ExplicitHashKeyIndex >= uint64(len(body.ExplicitHashKeys)) {
			return "", "", &IndexOutOfRangeError{
				Table:    "explicit hash key",
				Index:    *rec.ExplicitHashKeyIndex,
				TableLen: len(body.ExplicitHashKeys),
			}
		}
		explicitHashKey = body.ExplicitHashKeys[*rec.ExplicitHashKeyIndex]
	}

	return partitionKey, explicitHashKey, nil
}
