package docenc

import (
	"bytes"
	"io"
)

// Lob is a driver-provided handle to out-of-line character or binary data
// that must be explicitly read to materialize its content.
//
// Known limitation: normalization concatenates whatever the handle's reader
// returns and does not verify completeness against a declared size. Drivers
// that cannot deliver very large objects in full may yield truncated content;
// callers must not assume completeness for large fields.
type Lob interface {
	// Open positions a reader at the start of the LOB content.
	Open() (io.Reader, error)
}

// MemoryLob is an in-memory Lob, used by tests and as an adapter for values
// already materialized by a driver.
type MemoryLob []byte

// Open returns a reader over the buffered content.
func (m MemoryLob) Open() (io.Reader, error) {
	return bytes.NewReader(m), nil
}
