package termlog

import (
	"bytes"
	"io"

	"pkt.systems/jpact"
)

// CompactTo writes the compacted form of the JSON document read from r.
func CompactTo(w io.Writer, r io.Reader) error {
	return jpact.CompactWriter(w, r, 0)
}

// compactJSON returns a compacted copy of a JSON document.
func compactJSON(raw []byte) ([]byte, error) {
	buf := acquireBuffer()
	defer releaseBuffer(buf)
	if err := CompactTo(buf, bytes.NewReader(raw)); err != nil {
		return nil, err
	}
	return bytes.Clone(buf.Bytes()), nil
}
