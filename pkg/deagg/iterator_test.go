package deagg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIterator_MatchesBulkOutput(t *testing.T) {
	d := NewDeaggregator(Config{})
	records := []RawRecord{
		{Data: twoRecordAggregate(), SequenceNumber: "49001"},
		{Data: []byte("plain"), SequenceNumber: "49002", PartitionKey: "p"},
		{Data: twoRecordAggregate(), SequenceNumber: "49003"},
	}

	bulk, err := d.Deaggregate(records)
	require.NoError(t, err)

	var lazy []UserRecord
	it := d.Iterator(records)
	for it.Next() {
		require.NoError(t, it.Err())
		lazy = append(lazy, it.Record())
	}

	assert.Equal(t, bulk, lazy)
}

func TestIterator_ErrorScopedToRecordInFlight(t *testing.T) {
	d := NewDeaggregator(Config{})
	it := d.Iterator([]RawRecord{
		{Data: outOfRangeAggregate(), SequenceNumber: "49001"},
		{Data: []byte("plain"), SequenceNumber: "49002"},
	})

	// first item: the sub-record that resolves cleanly
	require.True(t, it.Next())
	require.NoError(t, it.Err())
	assert.Equal(t, []byte("ok"), it.Record().Data)
	assert.Equal(t, uint64(0), it.Record().SubSequenceNumber)

	// second item: the failure, scoped to sequence 49001
	require.True(t, it.Next())
	err := it.Err()
	require.Error(t, err)
	var recErr *RecordError
	require.ErrorAs(t, err, &recErr)
	assert.Equal(t, "49001", recErr.SequenceNumber)
	assert.Equal(t, uint64(1), recErr.SubSequenceNumber)
	assert.Empty(t, it.Record().Data)

	// the sibling record still decodes
	require.True(t, it.Next())
	require.NoError(t, it.Err())
	assert.Equal(t, []byte("plain"), it.Record().Data)
	assert.Equal(t, "49002", it.Record().SequenceNumber)

	assert.False(t, it.Next())
}

func TestIterator_Exhaustion(t *testing.T) {
	d := NewDeaggregator(Config{})

	it := d.Iterator(nil)
	assert.False(t, it.Next())
	assert.NoError(t, it.Err())

	it = d.Iterator([]RawRecord{{Data: []byte("one"), SequenceNumber: "49001"}})
	require.True(t, it.Next())
	assert.False(t, it.Next())
	assert.False(t, it.Next(), "iterator must stay exhausted")
}

func TestIterator_SuspendsBetweenItems(t *testing.T) {
	d := NewDeaggregator(Config{})
	it := d.Iterator([]RawRecord{{Data: twoRecordAggregate(), SequenceNumber: "49001"}})

	require.True(t, it.Next())
	first := it.Record()
	assert.Equal(t, uint64(0), first.SubSequenceNumber)

	// the first item stays valid until the next pull
	require.True(t, it.Next())
	second := it.Record()
	assert.Equal(t, uint64(1), second.SubSequenceNumber)
	assert.NotEqual(t, first.Data, second.Data)
}
