// Package driver runs a single intcode machine against a console.
//
// A Session resumes the machine after every pause: outputs are written to
// Out as they are produced, and when the machine waits for input a line is
// read from In and queued.
package driver

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/fortiblox/intcode/pkg/intcode"
)

var (
	// ErrInputExhausted is returned when the machine needs input and none is left.
	ErrInputExhausted = errors.New("input exhausted")

	// ErrInvalidPatch is returned by ParsePatches for a malformed entry.
	ErrInvalidPatch = errors.New("invalid patch")

	// ErrInvalidInput is returned by ParseInputs for a non-integer token.
	ErrInvalidInput = errors.New("invalid input")
)

// Session drives one Program to completion.
type Session struct {
	// Program is the machine to run.
	Program *intcode.Program

	// In supplies input lines when the machine asks for more than was
	// queued up front. Nil means no further input.
	In io.Reader

	// Out receives outputs. Nil discards them.
	Out io.Writer

	// ASCII writes outputs in 0..127 as raw bytes and queues input lines
	// as characters instead of integers.
	ASCII bool

	// Logger defaults to a no-op logger.
	Logger *zap.Logger

	in *bufio.Reader
}

// Result summarizes a finished or interrupted session.
type Result struct {
	State   intcode.State
	Steps   uint64
	Outputs []int64
}

// Run executes the program until it stops, input runs out, a fault occurs
// or ctx is cancelled. The Result is always non-nil.
func (s *Session) Run(ctx context.Context) (*Result, error) {
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	p := s.Program
	res := &Result{}
	finish := func(err error) (*Result, error) {
		res.State = p.State()
		res.Steps = p.Steps()
		return res, err
	}

	for {
		if err := ctx.Err(); err != nil {
			return finish(err)
		}

		if err := p.Run(); err != nil {
			logger.Warn("program faulted", zap.Error(err), zap.Uint64("steps", p.Steps()))
			return finish(err)
		}

		switch p.State() {
		case intcode.StatePaused:
			x := s.takeOutput()
			res.Outputs = append(res.Outputs, x)
			if err := s.emit(x); err != nil {
				return finish(err)
			}

		case intcode.StatePausedWaitingForInput:
			logger.Debug("input requested", zap.Int64("ptr", p.Pointer()))
			if err := s.feed(); err != nil {
				return finish(err)
			}

		case intcode.StateStopped:
			logger.Debug("program halted",
				zap.Uint64("steps", p.Steps()),
				zap.Int("outputs", len(res.Outputs)))
			return finish(nil)
		}
	}
}

// takeOutput removes the value just produced. The channel is shared with
// input, so anything queued ahead of it is still pending input and goes
// back in order.
func (s *Session) takeOutput() int64 {
	ch := s.Program.IO()
	vals := ch.Drain()
	x := vals[len(vals)-1]
	ch.Enqueue(vals[:len(vals)-1]...)
	return x
}

func (s *Session) emit(x int64) error {
	if s.Out == nil {
		return nil
	}
	var err error
	if s.ASCII && x >= 0 && x <= 127 {
		_, err = s.Out.Write([]byte{byte(x)})
	} else {
		_, err = fmt.Fprintln(s.Out, x)
	}
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// feed reads lines from In until at least one value is queued.
func (s *Session) feed() error {
	if s.In == nil {
		return ErrInputExhausted
	}
	if s.in == nil {
		s.in = bufio.NewReader(s.In)
	}

	for {
		line, err := s.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read input: %w", err)
		}
		if line == "" && err != nil {
			return ErrInputExhausted
		}
		line = strings.TrimRight(line, "\r\n")

		if s.ASCII {
			vals := make([]int64, 0, len(line)+1)
			for i := 0; i < len(line); i++ {
				vals = append(vals, int64(line[i]))
			}
			s.Program.Enqueue(append(vals, '\n')...)
			return nil
		}

		vals, perr := ParseInputs(line)
		if perr != nil {
			return perr
		}
		if len(vals) > 0 {
			s.Program.Enqueue(vals...)
			return nil
		}
		if err != nil {
			return ErrInputExhausted
		}
	}
}

func isSeparator(r rune) bool {
	return r == ',' || unicode.IsSpace(r)
}

// ParseInputs parses a comma or whitespace separated list of integers.
func ParseInputs(s string) ([]int64, error) {
	fields := strings.FieldsFunc(s, isSeparator)
	vals := make([]int64, 0, len(fields))
	for _, f := range fields {
		x, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidInput, f)
		}
		vals = append(vals, x)
	}
	return vals, nil
}

// ParsePatches parses memory patches written as addr=value pairs, e.g.
// "1=12,2=2".
func ParsePatches(s string) (map[int64]int64, error) {
	patches := make(map[int64]int64)
	for _, f := range strings.FieldsFunc(s, isSeparator) {
		k, v, ok := strings.Cut(f, "=")
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPatch, f)
		}
		addr, err := strconv.ParseInt(k, 10, 64)
		if err != nil || addr < 0 {
			return nil, fmt.Errorf("%w: address %q", ErrInvalidPatch, k)
		}
		x, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: value %q", ErrInvalidPatch, v)
		}
		patches[addr] = x
	}
	return patches, nil
}

// Patch writes patches into p's memory in address order.
func Patch(p *intcode.Program, patches map[int64]int64) error {
	addrs := make([]int64, 0, len(patches))
	for addr := range patches {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })

	for _, addr := range addrs {
		if err := p.Write(addr, patches[addr]); err != nil {
			return fmt.Errorf("patch %d: %w", addr, err)
		}
	}
	return nil
}
