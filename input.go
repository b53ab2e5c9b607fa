package gnaw

import "fmt"

// Input is an immutable, zero-copy view over a backing byte buffer. It is
// the value every Parser consumes and every successful parse returns a
// suffix of. Sub-views produced during parsing share the backing buffer, so
// an Input is only valid as long as the buffer it was built from.
//
// An Input never mutates the buffer and the engine never copies it. Callers
// that grow a buffer to satisfy an incomplete parse must only ever append;
// bytes already visible through an Input must not change.
type Input struct {
	buf []byte
	off int
}

// New creates an Input viewing the whole of the given buffer.
func New(bs []byte) Input {
	return Input{buf: bs}
}

// NewString creates an Input over the bytes of the given string. The string
// is copied into a buffer once here; all views derived from the result share
// that one buffer.
func NewString(s string) Input {
	return Input{buf: []byte(s)}
}

// Len returns the number of unconsumed bytes in view.
func (in Input) Len() int {
	return len(in.buf) - in.off
}

// Empty reports whether any unconsumed bytes remain.
func (in Input) Empty() bool {
	return in.off >= len(in.buf)
}

// Offset returns the position of this view within the backing buffer. Error
// positions are reported in terms of this offset.
func (in Input) Offset() int {
	return in.off
}

// Bytes returns the unconsumed bytes as a view into the backing buffer. The
// caller must not modify the returned slice.
func (in Input) Bytes() []byte {
	return in.buf[in.off:]
}

// Take returns the first n unconsumed bytes as a view into the backing
// buffer. It panics if fewer than n bytes remain, which is a programmer
// error: parsers check Len before taking.
func (in Input) Take(n int) []byte {
	if n > in.Len() {
		panic(fmt.Sprintf("gnaw: take %d of %d available", n, in.Len()))
	}
	return in.buf[in.off : in.off+n]
}

// Drop returns a new Input positioned n bytes further into the backing
// buffer. The receiver is unchanged. It panics if fewer than n bytes remain.
func (in Input) Drop(n int) Input {
	if n > in.Len() {
		panic(fmt.Sprintf("gnaw: drop %d of %d available", n, in.Len()))
	}
	return Input{buf: in.buf, off: in.off + n}
}

// String renders the unconsumed bytes as a string. Mostly useful in tests
// and traces.
func (in Input) String() string {
	return string(in.Bytes())
}
