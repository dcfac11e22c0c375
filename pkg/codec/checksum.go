package codec

import (
	"bytes"
	"crypto/md5" //nolint:gosec // integrity check mandated by the KPL format, not authentication
)

// DigestSize is the length of the trailing checksum on an aggregated payload
const DigestSize = md5.Size

// Digest computes the 16-byte MD5 digest used as the aggregate trailer
func Digest(b []byte) [DigestSize]byte {
	return md5.Sum(b) //nolint:gosec
}

// Verify reports whether trailer matches the digest of data
func Verify(data, trailer []byte) bool {
	sum := Digest(data)
	return bytes.Equal(sum[:], trailer)
}
