package parser

import (
	"bufio"
	"io"

	"github.com/heathj/htmlcheck/parser/spec"
	"github.com/pkg/errors"
)

const inputBufferSize = 4096

// inputStream reads characters with newlines normalized and keeps track of
// where each one came from.
type inputStream struct {
	r     *bufio.Reader
	pos   spec.Position // position of the last character returned by next
	ahead spec.Position // position of the next unread character
	read  int64
	limit int64
}

func newInputStream(r io.Reader, limit int64) *inputStream {
	in := &inputStream{
		r:     bufio.NewReaderSize(r, inputBufferSize),
		ahead: spec.Position{Line: 1, Col: 1},
		limit: limit,
	}
	in.pos = in.ahead
	return in
}

func (in *inputStream) count(n int) error {
	in.read += int64(n)
	if in.limit > 0 && in.read > in.limit {
		return errors.Wrapf(ErrResourceExhausted, "input exceeds %d bytes", in.limit)
	}
	return nil
}

// skipBOM drops a leading UTF-8 byte order mark.
func (in *inputStream) skipBOM() error {
	b, _ := in.r.Peek(3)
	if len(b) == 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		in.r.Discard(3)
		in.ahead.Offset += 3
		in.pos = in.ahead
		return in.count(3)
	}
	return nil
}

// surrogate decodes a UTF-8 style encoding of a lone surrogate at the start of
// b, which ReadRune would turn into U+FFFD.
func surrogate(b []byte) (rune, bool) {
	if len(b) < 3 || b[0] != 0xED || b[1] < 0xA0 || b[1] > 0xBF || b[2] < 0x80 || b[2] > 0xBF {
		return 0, false
	}
	return 0xD000 | rune(b[1]&0x3F)<<6 | rune(b[2]&0x3F), true
}

// next returns the next character. CR and CRLF both come back as LF. An
// encoded surrogate comes back as the surrogate code point so the caller can
// report it; writing it to a string yields U+FFFD.
func (in *inputStream) next() (rune, bool, error) {
	if b, _ := in.r.Peek(3); len(b) == 3 {
		if r, ok := surrogate(b); ok {
			in.r.Discard(3)
			if err := in.count(3); err != nil {
				return 0, false, err
			}
			in.pos = in.ahead
			in.ahead.Offset += 3
			in.ahead.Col++
			return r, false, nil
		}
	}

	r, size, err := in.r.ReadRune()
	if err == io.EOF {
		in.pos = in.ahead
		return 0, true, nil
	}
	if err != nil {
		return 0, false, errors.WithStack(err)
	}
	if err := in.count(size); err != nil {
		return 0, false, err
	}

	in.pos = in.ahead
	in.ahead.Offset += size
	if r == '\r' {
		r = '\n'
		if b, _ := in.r.Peek(1); len(b) == 1 && b[0] == '\n' {
			in.r.Discard(1)
			in.ahead.Offset++
			if err := in.count(1); err != nil {
				return 0, false, err
			}
		}
	}
	if r == '\n' {
		in.ahead.Line++
		in.ahead.Col = 1
	} else {
		in.ahead.Col++
	}
	return r, false, nil
}

// peek returns up to n upcoming bytes without consuming them.
func (in *inputStream) peek(n int) []byte {
	if n > inputBufferSize {
		n = inputBufferSize
	}
	b, _ := in.r.Peek(n)
	return b
}

// discard consumes n bytes the caller has already peeked. They must be ASCII
// and contain no newlines.
func (in *inputStream) discard(n int) error {
	d, _ := in.r.Discard(n)
	in.ahead.Offset += d
	in.ahead.Col += d
	return in.count(d)
}
