package intcode

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Parse reads a program image: comma-separated base-10 integers, cell 0
// first. Whitespace around tokens and one trailing comma are ignored.
func Parse(r io.Reader) ([]int64, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), 1<<20)
	sc.Split(splitComma)

	var cells []int64
	emptyAt := -1 // an empty token is only legal as the last one
	for i := 0; sc.Scan(); i++ {
		if emptyAt >= 0 {
			return nil, fmt.Errorf("%w: empty cell %d", ErrMalformedImage, emptyAt)
		}
		tok := strings.TrimSpace(sc.Text())
		if tok == "" {
			emptyAt = i
			continue
		}
		x, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: cell %d: %q", ErrMalformedImage, i, tok)
		}
		cells = append(cells, x)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if len(cells) == 0 {
		return nil, ErrEmptyImage
	}
	return cells, nil
}

// Load parses an image and creates a Program from it.
func Load(r io.Reader, opts Opts) (*Program, error) {
	cells, err := Parse(r)
	if err != nil {
		return nil, err
	}
	return New(cells, opts), nil
}

// splitComma is a bufio.SplitFunc yielding comma-separated tokens.
func splitComma(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, ','); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
