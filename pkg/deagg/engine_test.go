package deagg

import (
	"errors"
	"testing"
	"time"

	"github.com/ssargent/heimdall/internal/aggtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoRecordAggregate() []byte {
	return aggtest.Build(
		[]string{"pk1", "pk2"},
		nil,
		[]aggtest.Record{
			{PartitionKeyIndex: 0, Data: []byte("A")},
			{PartitionKeyIndex: 1, Data: []byte("B")},
		},
	)
}

// outOfRangeAggregate references a partition key index equal to the table
// length, which must fail resolution.
func outOfRangeAggregate() []byte {
	return aggtest.Build(
		[]string{"pk1"},
		nil,
		[]aggtest.Record{
			{PartitionKeyIndex: 0, Data: []byte("ok")},
			{PartitionKeyIndex: 1, Data: []byte("bad")},
		},
	)
}

func TestDeaggregate_Aggregate(t *testing.T) {
	d := NewDeaggregator(Config{})
	arrival := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	out, err := d.Deaggregate([]RawRecord{{
		Data:                        twoRecordAggregate(),
		PartitionKey:                "envelope-pk",
		SequenceNumber:              "49000000000000000000000000000000000000000000000001",
		ApproximateArrivalTimestamp: arrival,
		EventID:                     "shardId-000000000000:49000",
		EventSourceARN:              "arn:aws:kinesis:us-east-1:123456789012:stream/test",
		AwsRegion:                   "us-east-1",
		KinesisSchemaVersion:        "1.0",
	}})
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "pk1", out[0].PartitionKey)
	assert.Equal(t, []byte("A"), out[0].Data)
	assert.Equal(t, uint64(0), out[0].SubSequenceNumber)
	assert.True(t, out[0].Aggregated)

	assert.Equal(t, "pk2", out[1].PartitionKey)
	assert.Equal(t, []byte("B"), out[1].Data)
	assert.Equal(t, uint64(1), out[1].SubSequenceNumber)
	assert.True(t, out[1].Aggregated)

	// envelope fields copied unchanged into every derived record
	for _, ur := range out {
		assert.Equal(t, "49000000000000000000000000000000000000000000000001", ur.SequenceNumber)
		assert.Equal(t, arrival, ur.ApproximateArrivalTimestamp)
		assert.Equal(t, "shardId-000000000000:49000", ur.EventID)
		assert.Equal(t, "arn:aws:kinesis:us-east-1:123456789012:stream/test", ur.EventSourceARN)
		assert.Equal(t, "us-east-1", ur.AwsRegion)
		assert.Equal(t, "1.0", ur.KinesisSchemaVersion)
	}
}

func TestDeaggregate_Passthrough(t *testing.T) {
	d := NewDeaggregator(Config{})

	out, err := d.Deaggregate([]RawRecord{{
		Data:            []byte("hello"),
		PartitionKey:    "plain-pk",
		ExplicitHashKey: "123",
		SequenceNumber:  "49002",
		EventID:         "evt-1",
	}})
	require.NoError(t, err)
	require.Len(t, out, 1)

	ur := out[0]
	assert.Equal(t, []byte("hello"), ur.Data)
	assert.False(t, ur.Aggregated)
	assert.Equal(t, uint64(0), ur.SubSequenceNumber)
	assert.Equal(t, "plain-pk", ur.PartitionKey)
	assert.Equal(t, "123", ur.ExplicitHashKey)
	assert.Equal(t, "49002", ur.SequenceNumber)
	assert.Equal(t, "evt-1", ur.EventID)
}

func TestDeaggregate_ExplicitHashKeys(t *testing.T) {
	d := NewDeaggregator(Config{})
	payload := aggtest.Build(
		[]string{"pk"},
		[]string{"340282366920938463463374607431768211455"},
		[]aggtest.Record{
			{PartitionKeyIndex: 0, ExplicitHashKeyIndex: aggtest.EHK(0), Data: []byte("with")},
			{PartitionKeyIndex: 0, Data: []byte("without")},
		},
	)

	out, err := d.Deaggregate([]RawRecord{{Data: payload, SequenceNumber: "49003"}})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "340282366920938463463374607431768211455", out[0].ExplicitHashKey)
	assert.Empty(t, out[1].ExplicitHashKey)
}

func TestDeaggregate_MixedBatchOrdering(t *testing.T) {
	d := NewDeaggregator(Config{})

	out, err := d.Deaggregate([]RawRecord{
		{Data: []byte("first"), SequenceNumber: "49001", PartitionKey: "p1"},
		{Data: twoRecordAggregate(), SequenceNumber: "49002"},
		{Data: []byte("last"), SequenceNumber: "49003", PartitionKey: "p3"},
	})
	require.NoError(t, err)
	require.Len(t, out, 4)

	assert.Equal(t, []byte("first"), out[0].Data)
	assert.Equal(t, []byte("A"), out[1].Data)
	assert.Equal(t, []byte("B"), out[2].Data)
	assert.Equal(t, []byte("last"), out[3].Data)
}

func TestDeaggregate_FailsFastWithContext(t *testing.T) {
	d := NewDeaggregator(Config{})

	out, err := d.Deaggregate([]RawRecord{
		{Data: []byte("fine"), SequenceNumber: "49001"},
		{Data: outOfRangeAggregate(), SequenceNumber: "49002"},
		{Data: []byte("never reached"), SequenceNumber: "49003"},
	})
	require.Error(t, err)
	assert.Nil(t, out)

	var recErr *RecordError
	require.ErrorAs(t, err, &recErr)
	assert.Equal(t, "49002", recErr.SequenceNumber)
	assert.Equal(t, uint64(1), recErr.SubSequenceNumber)

	var rangeErr *IndexOutOfRangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, uint64(1), rangeErr.Index)
	assert.Equal(t, 1, rangeErr.TableLen)
}

func TestDeaggregateTolerant_IsolatesFailures(t *testing.T) {
	d := NewDeaggregator(Config{})

	out, errs := d.DeaggregateTolerant([]RawRecord{
		{Data: outOfRangeAggregate(), SequenceNumber: "49001"},
		{Data: twoRecordAggregate(), SequenceNumber: "49002"},
	})
	require.Len(t, errs, 1)
	assert.Equal(t, "49001", errs[0].SequenceNumber)

	// the failing aggregate's first sub-record decoded before the failure,
	// then the sibling aggregate expanded fully
	require.Len(t, out, 3)
	assert.Equal(t, []byte("ok"), out[0].Data)
	assert.Equal(t, "49001", out[0].SequenceNumber)
	assert.Equal(t, []byte("A"), out[1].Data)
	assert.Equal(t, []byte("B"), out[2].Data)
	assert.Equal(t, "49002", out[1].SequenceNumber)
}

func TestDeaggregateTolerant_CorruptBody(t *testing.T) {
	d := NewDeaggregator(Config{})

	// checksum validates but the body framing is broken
	corrupt := aggtest.Seal([]byte{0x0A, 0x10, 'p', 'k'})

	out, errs := d.DeaggregateTolerant([]RawRecord{
		{Data: corrupt, SequenceNumber: "49001"},
		{Data: []byte("plain"), SequenceNumber: "49002"},
	})
	require.Len(t, errs, 1)
	assert.Equal(t, "49001", errs[0].SequenceNumber)
	require.Len(t, out, 1)
	assert.Equal(t, []byte("plain"), out[0].Data)
}

func TestEachRecord_Callbacks(t *testing.T) {
	d := NewDeaggregator(Config{})

	var produced []UserRecord
	completions := map[string]*RecordError{}

	d.EachRecord(
		[]RawRecord{
			{Data: twoRecordAggregate(), SequenceNumber: "49001"},
			{Data: outOfRangeAggregate(), SequenceNumber: "49002"},
			{Data: []byte("plain"), SequenceNumber: "49003"},
		},
		func(ur UserRecord) { produced = append(produced, ur) },
		func(raw RawRecord, recErr *RecordError) { completions[raw.SequenceNumber] = recErr },
	)

	// 2 from the good aggregate, 1 partial from the failing one, 1 passthrough
	require.Len(t, produced, 4)
	assert.Equal(t, []byte("ok"), produced[2].Data)
	assert.Equal(t, []byte("plain"), produced[3].Data)

	require.Len(t, completions, 3)
	assert.Nil(t, completions["49001"])
	assert.Nil(t, completions["49003"])
	require.NotNil(t, completions["49002"])
	assert.Equal(t, "49002", completions["49002"].SequenceNumber)
	assert.Equal(t, uint64(1), completions["49002"].SubSequenceNumber)
}

func TestEachRecord_NilCallbacks(t *testing.T) {
	d := NewDeaggregator(Config{})
	assert.NotPanics(t, func() {
		d.EachRecord([]RawRecord{{Data: []byte("plain")}}, nil, nil)
	})
}

func TestDeaggregate_Idempotent(t *testing.T) {
	d := NewDeaggregator(Config{})
	records := []RawRecord{
		{Data: twoRecordAggregate(), SequenceNumber: "49001"},
		{Data: []byte("plain"), SequenceNumber: "49002"},
	}

	first, err1 := d.Deaggregate(records)
	second, err2 := d.Deaggregate(records)
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first, second)
}

func TestDeaggregate_EmptyBatch(t *testing.T) {
	d := NewDeaggregator(Config{})
	out, err := d.Deaggregate(nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRecordError_Unwrap(t *testing.T) {
	inner := &IndexOutOfRangeError{Table: "partition key", Index: 3, TableLen: 1}
	recErr := &RecordError{SequenceNumber: "49001", SubSequenceNumber: 2, Err: inner}

	var rangeErr *IndexOutOfRangeError
	assert.True(t, errors.As(recErr, &rangeErr))
	assert.Contains(t, recErr.Error(), "49001")
	assert.Contains(t, recErr.Error(), "sub-record 2")
}
