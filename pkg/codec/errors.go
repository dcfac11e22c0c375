package codec

import "fmt"

// Errors
var (
	ErrTruncated       = &CodecError{"input truncated"}
	ErrMalformedVarint = &CodecError{"malformed varint"}
)

// CodecError represents a structural error while reading framed fields
type CodecError struct {
	Message string
}

func (e *CodecError) Error() string {
	return e.Message
}

// CorruptAggregateError reports a payload whose checksum validated but whose
// body violates the AggregatedRecord framing. It is scoped to a single
// payload and must never abort sibling records in a batch.
type CorruptAggregateError struct {
	Offset int   // byte offset into the body where decoding failed
	Err    error // underlying framing error
}

func (e *CorruptAggregateError) Error() string {
	return fmt.Sprintf("corrupt aggregate body at offset %d: %v", e.Offset, e.Err)
}

func (e *CorruptAggregateError) Unwrap() error {
	return e.Err
}
