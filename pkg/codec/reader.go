package codec

// maxVarintLen is the longest legal encoding of a 64-bit varint.
const maxVarintLen = 10

// Reader is a sequential, read-only cursor over an immutable byte buffer.
// It never seeks backward; all consumers are single-pass.
type Reader struct {
	buf []byte
	pos int
}

// NewReader creates a new reader positioned at the start of buf
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// ReadFixed returns exactly n bytes, advancing the cursor. The returned slice
// aliases the underlying buffer and must not be modified.
func (r *Reader) ReadFixed(n int) ([]byte, error) {
	if n < 0 || r.pos+n > len(r.buf) {
		return nil, ErrTruncated
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// ReadVarint decodes a base-128 variable-length unsigned integer, LSB first,
// high bit as continuation. The continuation chain must terminate within 10
// bytes and before the buffer ends.
func (r *Reader) ReadVarint() (uint64, error) {
	var v uint64
	for i := 0; i < maxVarintLen; i++ {
		if r.pos >= len(r.buf) {
			return 0, ErrMalformedVarint
		}
		b := r.buf[r.pos]
		r.pos++
		v |= uint64(b&0x7f) << (7 * uint(i))
		if b&0x80 == 0 {
			return v, nil
		}
	}
	return 0, ErrMalformedVarint
}

// ReadLengthDelimited reads a varint length prefix followed by that many
// bytes. This is the framing used for nested messages, strings, and byte
// fields in the aggregate body.
func (r *Reader) ReadLengthDelimited() ([]byte, error) {
	n, err := r.ReadVarint()
	if err != nil {
		return nil, err
	}
	if n > uint64(len(r.buf)-r.pos) {
		return nil, ErrTruncated
	}
	return r.ReadFixed(int(n))
}

// Remaining returns the number of unread bytes
func (r *Reader) Remaining() int {
	return len(r.buf) - r.pos
}

// Pos returns the current cursor offset from the start of the buffer
func (r *Reader) Pos() int {
	return r.pos
}
