package intcode

import "fmt"

// Opcode selects the operation encoded in the low two decimal digits of an
// instruction word.
type Opcode int64

// Opcodes.
const (
	OpAdd             Opcode = 1  // out = a + b
	OpMultiply        Opcode = 2  // out = a * b
	OpInput           Opcode = 3  // out = next queued value
	OpOutput          Opcode = 4  // queue a, then pause
	OpJumpIfTrue      Opcode = 5  // ptr = b if a != 0
	OpJumpIfFalse     Opcode = 6  // ptr = b if a == 0
	OpLessThan        Opcode = 7  // out = a < b
	OpEquals          Opcode = 8  // out = a == b
	OpSetRelativeBase Opcode = 9  // relative base += a
	OpHalt            Opcode = 99 // stop
)

// Mode is a parameter addressing mode.
type Mode int64

// Parameter modes.
const (
	ModePosition  Mode = 0 // operand is an address
	ModeImmediate Mode = 1 // operand is the value (reads only)
	ModeRelative  Mode = 2 // operand is an offset from the relative base
)

// MaxParams is the number of parameter modes carried by an instruction word.
const MaxParams = 3

// modePlaces are the decimal places of the mode digits, in parameter order.
var modePlaces = [MaxParams]int64{100, 1000, 10000}

// Valid reports whether op is part of the instruction set.
func (op Opcode) Valid() bool {
	switch op {
	case OpAdd, OpMultiply, OpInput, OpOutput, OpJumpIfTrue, OpJumpIfFalse,
		OpLessThan, OpEquals, OpSetRelativeBase, OpHalt:
		return true
	}
	return false
}

// Params returns the number of parameters the opcode takes.
func (op Opcode) Params() int {
	switch op {
	case OpAdd, OpMultiply, OpLessThan, OpEquals:
		return 3
	case OpJumpIfTrue, OpJumpIfFalse:
		return 2
	case OpInput, OpOutput, OpSetRelativeBase:
		return 1
	default:
		return 0
	}
}

// Width returns the instruction length in cells, opcode word included.
func (op Opcode) Width() int64 {
	return int64(op.Params()) + 1
}

func (op Opcode) String() string {
	switch op {
	case OpAdd:
		return "add"
	case OpMultiply:
		return "mul"
	case OpInput:
		return "in"
	case OpOutput:
		return "out"
	case OpJumpIfTrue:
		return "jt"
	case OpJumpIfFalse:
		return "jf"
	case OpLessThan:
		return "lt"
	case OpEquals:
		return "eq"
	case OpSetRelativeBase:
		return "rb"
	case OpHalt:
		return "halt"
	default:
		return fmt.Sprintf("op(%d)", int64(op))
	}
}

func (m Mode) String() string {
	switch m {
	case ModePosition:
		return "position"
	case ModeImmediate:
		return "immediate"
	case ModeRelative:
		return "relative"
	default:
		return fmt.Sprintf("mode(%d)", int64(m))
	}
}

// Instruction is a decoded instruction word.
type Instruction struct {
	Op    Opcode
	Modes [MaxParams]Mode
}

// Decode splits an instruction word into its opcode and parameter modes.
// All three mode digits are validated, whatever the opcode's arity.
func Decode(word int64) (Instruction, error) {
	var ins Instruction

	ins.Op = Opcode(word % 100)
	if !ins.Op.Valid() {
		return ins, fmt.Errorf("%w: %d", ErrInvalidOpcode, word)
	}

	for i, place := range modePlaces {
		m := Mode((word / place) % 10)
		switch m {
		case ModePosition, ModeImmediate, ModeRelative:
			ins.Modes[i] = m
		default:
			return ins, fmt.Errorf("%w: digit %d of %d", ErrInvalidParameterMode, int64(m), word)
		}
	}

	return ins, nil
}

// Encode builds an instruction word from an opcode and up to three modes.
// Missing modes default to position mode.
func Encode(op Opcode, modes ...Mode) int64 {
	word := int64(op)
	for i, m := range modes {
		if i >= MaxParams {
			break
		}
		word += int64(m) * modePlaces[i]
	}
	return word
}
