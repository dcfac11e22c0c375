package deagg

import (
	"fmt"

	"github.com/ssargent/heimdall/pkg/codec"
	"go.uber.org/zap"
)

// Config holds construction options for a Deaggregator. Logging is an
// explicit dependency here rather than a process-wide toggle.
type Config struct {
	Logger *zap.Logger // nil means no logging
}

// Deaggregator expands batches of raw stream records into user records
type Deaggregator struct {
	logger *zap.Logger
}

// NewDeaggregator creates a new deaggregation engine
func NewDeaggregator(config Config) *Deaggregator {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Deaggregator{logger: logger}
}

// expand decodes one RawRecord into its user records. The returned
// RecordError is nil on success; on failure it identifies the failing
// sub-record position and the records decoded before the failure are still
// returned.
func (d *Deaggregator) expand(raw RawRecord) ([]UserRecord, *RecordError) {
	body, ok, err := codec.DecodeAggregate(raw.Data)
	if err != nil {
		d.logger.Debug("aggregate body corrupt",
			zap.String("sequence_number", raw.SequenceNumber),
			zap.Error(err))
		return nil, &RecordError{SequenceNumber: raw.SequenceNumber, Err: err}
	}
	if !ok {
		d.logger.Debug("payload not aggregated, passing through",
			zap.String("sequence_number", raw.SequenceNumber),
			zap.Int("size", len(raw.Data)))
		return []UserRecord{passthrough(raw)}, nil
	}

	out, recErr := assemble(raw, body)
	if recErr != nil {
		d.logger.Debug("aggregate expansion failed",
			zap.String("sequence_number", recErr.SequenceNumber),
			zap.Uint64("sub_sequence_number", recErr.SubSequenceNumber),
			zap.Error(recErr.Err))
		return out, recErr
	}

	d.logger.Debug("aggregate expanded",
		zap.String("sequence_number", raw.SequenceNumber),
		zap.Int("user_records", len(out)))
	return out, nil
}

// Deaggregate expands records in input order into one flat slice of user
// records. The first scoped decoding failure fails the whole call; the
// returned error identifies the offending record's sequence number so the
// caller can decide whether to skip or abort. No records are silently
// dropped.
func (d *Deaggregator) Deaggregate(records []RawRecord) ([]UserRecord, error) {
	out := make([]UserRecord, 0, len(records))
	for _, raw := range records {
		expanded, recErr := d.expand(raw)
		if recErr != nil {
			return nil, fmt.Errorf("deaggregate: %w", recErr)
		}
		out = append(out, expanded...)
	}
	return out, nil
}

// DeaggregateTolerant expands records in input order, collecting per-record
// errors instead of failing the call. User records decoded before a failure
// within an aggregate are kept.
func (d *Deaggregator) DeaggregateTolerant(records []RawRecord) ([]UserRecord, []*RecordError) {
	out := make([]UserRecord, 0, len(records))
	var errs []*RecordError
	for _, raw := range records {
		expanded, recErr := d.expand(raw)
		out = append(out, expanded...)
		if recErr != nil {
			errs = append(errs, recErr)
		}
	}
	return out, errs
}

// EachRecord drives a callback-based traversal. onRecord is invoked once per
// produced user record, in order. onComplete is invoked once per RawRecord
// after its expansion finishes: with a nil RecordError on success, or with
// the error that terminated the expansion early. Records after a failing one
// are still processed. Either callback may be nil.
func (d *Deaggregator) EachRecord(records []RawRecord, onRecord func(UserRecord), onComplete func(RawRecord, *RecordError)) {
	for _, raw := range records {
		expanded, recErr := d.expand(raw)
		if onRecord != nil {
			for _, ur := range expanded {
				onRecord(ur)
			}
		}
		if onComplete != nil {
			onComplete(raw, recErr)
		}
	}
}
