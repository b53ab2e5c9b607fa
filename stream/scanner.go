// Package stream drives a gnaw parser over an io.Reader. The engine itself
// never buffers: a parser reporting incomplete input expects its caller to
// come back with a longer Input. Scanner is that caller. It owns a growable
// buffer, re-runs the parser on the buffered window after each refill, and
// only ever appends to the window during retries, so every byte a failed
// attempt observed is still there, unchanged, on the next attempt.
package stream

import (
	"errors"
	"io"

	"github.com/zostay/gnaw"
)

const minRead = 512

// Scanner repeatedly applies one parser to a byte stream, yielding one
// parsed value per call to Next. It is the streaming counterpart of calling
// the parser yourself on a complete buffer.
//
// Values produced by zero-copy parsers view the Scanner's internal buffer
// and remain valid only until the next call to Next, the same contract as
// bufio.Scanner.Bytes.
type Scanner[T any] struct {
	r   io.Reader
	p   gnaw.Parser[T]
	buf []byte
	off int
	eof bool
}

// NewScanner creates a Scanner that reads from r and parses with p.
func NewScanner[T any](r io.Reader, p gnaw.Parser[T]) *Scanner[T] {
	return NewScannerSize(r, p, minRead)
}

// NewScannerSize creates a Scanner with an initial buffer capacity for
// callers that know their record sizes.
func NewScannerSize[T any](r io.Reader, p gnaw.Parser[T], size int) *Scanner[T] {
	if size < 1 {
		size = minRead
	}
	return &Scanner[T]{
		r:   r,
		p:   p,
		buf: make([]byte, 0, size),
	}
}

// Next parses the next value from the stream. When the parser reports
// incomplete input, Next reads at least the needed amount more and retries
// the whole parse on the grown window.
//
// At the end of the stream Next returns io.EOF if no unconsumed bytes
// remain, or io.ErrUnexpectedEOF if the source dried up in the middle of a
// match. A parse failure is returned as the parser's own error.
func (s *Scanner[T]) Next() (T, error) {
	// collect up front rather than on the way out, so views returned by
	// the previous call stay valid until this one
	s.collect()

	var zero T
	for {
		in := gnaw.New(s.buf[s.off:])
		v, rest, err := s.p(in)
		if err == nil {
			s.off += rest.Offset()
			return v, nil
		}

		needed, more := gnaw.NeedsMore(err)
		if !more {
			return zero, err
		}

		n, exact := needed.Count()
		if !exact {
			n = 1
		}
		if ferr := s.fill(n); ferr != nil {
			if errors.Is(ferr, io.EOF) && s.off < len(s.buf) {
				return zero, io.ErrUnexpectedEOF
			}
			return zero, ferr
		}
	}
}

// fill appends at least n more bytes from the reader to the window.
func (s *Scanner[T]) fill(n int) error {
	if s.eof {
		return io.EOF
	}
	for n > 0 {
		chunk := make([]byte, minRead)
		m, err := s.r.Read(chunk)
		if m > 0 {
			s.buf = append(s.buf, chunk[:m]...)
			n -= m
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.eof = true
				if n > 0 {
					return io.EOF
				}
				return nil
			}
			return err
		}
	}
	return nil
}

// collect frees the consumed prefix once it dominates the buffer. This runs
// only at the top of Next, never between the retries of one parse, so a
// retried parser always sees the bytes of its earlier attempts and the
// previous call's zero-copy outputs are not clobbered mid-flight.
func (s *Scanner[T]) collect() {
	if s.off <= len(s.buf)/2 {
		return
	}
	n := copy(s.buf, s.buf[s.off:])
	s.buf = s.buf[:n]
	s.off = 0
}
