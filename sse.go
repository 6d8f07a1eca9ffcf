package pumpd

import (
	"bufio"
	"bytes"
	"io"
)

// An SSEReader splits the monitor stream into payloads.
// Payloads are separated by an empty line.
type SSEReader struct {
	r *bufio.Reader
}

func NewSSEReader(r io.Reader) *SSEReader {
	return &SSEReader{
		r: bufio.NewReaderSize(r, 64<<10),
	}
}

// Next returns the next payload. Lines of a multi-line payload are kept.
func (s *SSEReader) Next() ([]byte, error) {
	var payload []byte
	for {
		line, err := s.r.ReadBytes('\n')
		if err != nil {
			return append(payload, line...), err
		}

		line = bytes.TrimRight(line, "\r\n")
		if len(line) == 0 {
			if len(payload) == 0 {
				continue // Keep-alive
			}
			return payload, nil
		}

		if len(payload) > 0 {
			payload = append(payload, '\n')
		}
		payload = append(payload, bytes.TrimPrefix(line, []byte("data: "))...)
	}
}
