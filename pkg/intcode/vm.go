// Package intcode implements a stored-program integer virtual machine.
//
// A Program holds a single tape of int64 cells containing both code and
// data, an instruction pointer, a relative base register and an I/O queue.
// Execution is cooperative: Run returns whenever the machine produces an
// output, asks for input that has not been queued yet, or halts. Drivers
// resume the machine simply by calling Run again.
//
// Instruction words encode the opcode in their two lowest decimal digits and
// one addressing mode per parameter in the hundreds, thousands and
// ten-thousands digits. Parameters may be read by position (the operand is
// an address), immediately (the operand is the value) or relative to the
// relative base.
package intcode

import (
	"go.uber.org/zap"
)

// State is the execution state of a Program.
type State int

// Execution states.
const (
	StateInitialized           State = iota // loaded, never run
	StateRunning                            // executing instructions
	StatePaused                             // produced an output
	StatePausedWaitingForInput              // input requested, queue empty
	StateStopped                            // halted or faulted
)

func (s State) String() string {
	switch s {
	case StateInitialized:
		return "initialized"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StatePausedWaitingForInput:
		return "waiting-for-input"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Opts configures a Program.
type Opts struct {
	// MaxSteps bounds the number of instructions executed. Zero is unlimited.
	MaxSteps uint64

	// Logger receives debug events (memory growth, halt, faults).
	// Defaults to a no-op logger.
	Logger *zap.Logger
}

// Program is one machine instance. It is not safe for concurrent use.
type Program struct {
	mem          *Memory
	io           Channel
	ptr          int64
	relativeBase int64
	state        State
	meter        *StepMeter
	logger       *zap.Logger
	err          error
}

// New creates a Program whose memory is a copy of image.
func New(image []int64, opts Opts) *Program {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &Program{
		mem:    NewMemory(image),
		meter:  NewStepMeter(opts.MaxSteps),
		logger: logger,
	}
	p.watchMemory()
	return p
}

// watchMemory attaches the growth log to the current memory.
func (p *Program) watchMemory() {
	p.mem.onGrow = func(addr int64, from, to int) {
		p.logger.Debug("memory resized",
			zap.Int64("addr", addr),
			zap.Int("from", from),
			zap.Int("to", to))
	}
}

// Clone returns a fresh machine with a copy of the memory and relative base.
// The clone starts initialized at pointer 0 with an empty queue, so it
// shares neither execution progress nor pending I/O with p.
func (p *Program) Clone() *Program {
	c := &Program{
		mem:          p.mem.clone(),
		relativeBase: p.relativeBase,
		meter:        NewStepMeter(p.meter.Limit()),
		logger:       p.logger,
	}
	c.watchMemory()
	return c
}

// State returns the execution state.
func (p *Program) State() State {
	return p.state
}

// Pointer returns the instruction pointer.
func (p *Program) Pointer() int64 {
	return p.ptr
}

// RelativeBase returns the relative base register.
func (p *Program) RelativeBase() int64 {
	return p.relativeBase
}

// Err returns the fault that stopped the machine, if any.
func (p *Program) Err() error {
	return p.err
}

// Steps returns the number of instructions executed.
func (p *Program) Steps() uint64 {
	return p.meter.Consumed()
}

// Memory returns the machine's tape.
func (p *Program) Memory() *Memory {
	return p.mem
}

// IO returns the machine's I/O queue.
func (p *Program) IO() *Channel {
	return &p.io
}

// Read returns the memory cell at addr.
func (p *Program) Read(addr int64) (int64, error) {
	return p.mem.Read(addr)
}

// Write stores x at addr, e.g. to patch parameters before a run.
func (p *Program) Write(addr int64, x int64) error {
	return p.mem.Write(addr, x)
}

// Enqueue queues input values.
func (p *Program) Enqueue(vals ...int64) {
	p.io.Enqueue(vals...)
}

// Dequeue removes the oldest queued value.
func (p *Program) Dequeue() (int64, error) {
	return p.io.Dequeue()
}

// Peek returns the oldest queued value without removing it.
func (p *Program) Peek() (int64, error) {
	return p.io.Peek()
}

// Run executes instructions until the machine pauses on an output, waits
// for input or stops. Calling Run on a stopped machine does nothing and
// returns the fault that stopped it, if any.
func (p *Program) Run() error {
	if p.state == StateStopped {
		return p.err
	}

	p.state = StateRunning
	for p.state == StateRunning {
		if err := p.step(); err != nil {
			return p.fault(err)
		}
	}
	return nil
}

// RunUntilHalted executes until the machine stops or waits for input,
// resuming transparently after every output.
func (p *Program) RunUntilHalted() error {
	for {
		if err := p.Run(); err != nil {
			return err
		}
		if p.state == StateStopped || p.state == StatePausedWaitingForInput {
			return nil
		}
	}
}

// fault stops the machine and records err.
func (p *Program) fault(err error) error {
	word, _ := p.mem.Read(p.ptr)
	f := &Fault{Ptr: p.ptr, Word: word, Err: err}

	p.state = StateStopped
	p.err = f
	p.logger.Debug("fault", zap.Int64("ptr", p.ptr), zap.Int64("word", word), zap.Error(err))
	return f
}

// step executes the instruction at the pointer.
func (p *Program) step() error {
	word, err := p.mem.Read(p.ptr)
	if err != nil {
		return err
	}
	ins, err := Decode(word)
	if err != nil {
		return err
	}

	// Missing input parks the machine without touching anything else, so
	// the same instruction is retried on resume.
	if ins.Op == OpInput && p.io.Len() == 0 {
		p.state = StatePausedWaitingForInput
		return nil
	}

	if err := p.meter.Consume(); err != nil {
		return err
	}

	switch ins.Op {
	case OpAdd:
		return p.binary(ins, func(a, b int64) int64 { return a + b })

	case OpMultiply:
		return p.binary(ins, func(a, b int64) int64 { return a * b })

	case OpInput:
		out, err := p.address(ins, 0)
		if err != nil {
			return err
		}
		x, _ := p.io.Dequeue()
		if err := p.mem.Write(out, x); err != nil {
			return err
		}
		p.ptr += OpInput.Width()

	case OpOutput:
		x, err := p.param(ins, 0)
		if err != nil {
			return err
		}
		p.io.Enqueue(x)
		p.state = StatePaused
		p.ptr += OpOutput.Width()

	case OpJumpIfTrue:
		return p.jump(ins, func(a int64) bool { return a != 0 })

	case OpJumpIfFalse:
		return p.jump(ins, func(a int64) bool { return a == 0 })

	case OpLessThan:
		return p.binary(ins, func(a, b int64) int64 { return boolCell(a < b) })

	case OpEquals:
		return p.binary(ins, func(a, b int64) int64 { return boolCell(a == b) })

	case OpSetRelativeBase:
		x, err := p.param(ins, 0)
		if err != nil {
			return err
		}
		p.relativeBase += x
		p.ptr += OpSetRelativeBase.Width()

	case OpHalt:
		p.state = StateStopped
		p.logger.Debug("halt", zap.Int64("ptr", p.ptr), zap.Uint64("steps", p.meter.Consumed()))

	default:
		return ErrInvalidOpcode
	}

	return nil
}

// binary executes a two-operand instruction writing to its third parameter.
func (p *Program) binary(ins Instruction, fn func(a, b int64) int64) error {
	a, err := p.param(ins, 0)
	if err != nil {
		return err
	}
	b, err := p.param(ins, 1)
	if err != nil {
		return err
	}
	out, err := p.address(ins, 2)
	if err != nil {
		return err
	}
	if err := p.mem.Write(out, fn(a, b)); err != nil {
		return err
	}
	p.ptr += ins.Op.Width()
	return nil
}

// jump moves the pointer to the second parameter when cond holds for the first.
func (p *Program) jump(ins Instruction, cond func(a int64) bool) error {
	a, err := p.param(ins, 0)
	if err != nil {
		return err
	}
	b, err := p.param(ins, 1)
	if err != nil {
		return err
	}
	if cond(a) {
		p.ptr = b
	} else {
		p.ptr += ins.Op.Width()
	}
	return nil
}

// param reads the value of the i-th parameter.
func (p *Program) param(ins Instruction, i int) (int64, error) {
	operand, err := p.mem.Read(p.ptr + 1 + int64(i))
	if err != nil {
		return 0, err
	}
	switch ins.Modes[i] {
	case ModeImmediate:
		return operand, nil
	case ModeRelative:
		return p.mem.Read(operand + p.relativeBase)
	default:
		return p.mem.Read(operand)
	}
}

// address resolves the i-th parameter as a write target. Immediate mode
// targets resolve like position mode.
func (p *Program) address(ins Instruction, i int) (int64, error) {
	operand, err := p.mem.Read(p.ptr + 1 + int64(i))
	if err != nil {
		return 0, err
	}
	if ins.Modes[i] == ModeRelative {
		return operand + p.relativeBase, nil
	}
	return operand, nil
}

func boolCell(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
