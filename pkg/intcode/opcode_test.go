package intcode

import (
	"errors"
	"testing"
)

// TestDecode tests splitting instruction words.
func TestDecode(t *testing.T) {
	tests := []struct {
		word    int64
		op      Opcode
		modes   [MaxParams]Mode
		wantErr error
	}{
		{word: 1, op: OpAdd},
		{word: 2, op: OpMultiply},
		{word: 1002, op: OpMultiply, modes: [MaxParams]Mode{ModePosition, ModeImmediate, ModePosition}},
		{word: 1101, op: OpAdd, modes: [MaxParams]Mode{ModeImmediate, ModeImmediate, ModePosition}},
		{word: 21101, op: OpAdd, modes: [MaxParams]Mode{ModeImmediate, ModeImmediate, ModeRelative}},
		{word: 203, op: OpInput, modes: [MaxParams]Mode{ModeRelative}},
		{word: 104, op: OpOutput, modes: [MaxParams]Mode{ModeImmediate}},
		{word: 1105, op: OpJumpIfTrue, modes: [MaxParams]Mode{ModeImmediate, ModeImmediate}},
		{word: 1206, op: OpJumpIfFalse, modes: [MaxParams]Mode{ModeRelative, ModeImmediate}},
		{word: 22207, op: OpLessThan, modes: [MaxParams]Mode{ModeRelative, ModeRelative, ModeRelative}},
		{word: 8, op: OpEquals},
		{word: 109, op: OpSetRelativeBase, modes: [MaxParams]Mode{ModeImmediate}},
		{word: 99, op: OpHalt},
		{word: 100099, op: OpHalt}, // digits above the modes are ignored
		{word: 0, wantErr: ErrInvalidOpcode},
		{word: 10, wantErr: ErrInvalidOpcode},
		{word: 42, wantErr: ErrInvalidOpcode},
		{word: 98, wantErr: ErrInvalidOpcode},
		{word: 1100, wantErr: ErrInvalidOpcode},
		{word: -1, wantErr: ErrInvalidOpcode},
		{word: 301, wantErr: ErrInvalidParameterMode},
		{word: 4001, wantErr: ErrInvalidParameterMode},
		{word: 90001, wantErr: ErrInvalidParameterMode},
		{word: 399, wantErr: ErrInvalidParameterMode},
	}

	for _, tt := range tests {
		ins, err := Decode(tt.word)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Decode(%d) error = %v, want %v", tt.word, err, tt.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("Decode(%d) failed: %v", tt.word, err)
			continue
		}
		if ins.Op != tt.op {
			t.Errorf("Decode(%d).Op = %v, want %v", tt.word, ins.Op, tt.op)
		}
		if ins.Modes != tt.modes {
			t.Errorf("Decode(%d).Modes = %v, want %v", tt.word, ins.Modes, tt.modes)
		}
	}
}

// TestEncode tests building instruction words.
func TestEncode(t *testing.T) {
	tests := []struct {
		got  int64
		want int64
	}{
		{Encode(OpHalt), 99},
		{Encode(OpAdd, ModeImmediate, ModeImmediate), 1101},
		{Encode(OpMultiply, ModePosition, ModeImmediate), 1002},
		{Encode(OpAdd, ModeRelative, ModeRelative, ModeRelative), 22201},
		{Encode(OpOutput, ModeRelative), 204},
		{Encode(OpInput, ModeRelative, ModeImmediate, ModeImmediate, ModeRelative), 11203},
	}

	for i, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("case %d: Encode() = %d, want %d", i, tt.got, tt.want)
		}
	}

	ins, err := Decode(Encode(OpEquals, ModeRelative, ModeImmediate, ModeRelative))
	if err != nil {
		t.Fatalf("Decode(Encode()) failed: %v", err)
	}
	if ins.Op != OpEquals || ins.Modes != [MaxParams]Mode{ModeRelative, ModeImmediate, ModeRelative} {
		t.Errorf("Decode(Encode()) = %+v", ins)
	}
}

// TestOpcodeWidth tests instruction lengths.
func TestOpcodeWidth(t *testing.T) {
	tests := map[Opcode]int64{
		OpAdd:             4,
		OpMultiply:        4,
		OpInput:           2,
		OpOutput:          2,
		OpJumpIfTrue:      3,
		OpJumpIfFalse:     3,
		OpLessThan:        4,
		OpEquals:          4,
		OpSetRelativeBase: 2,
		OpHalt:            1,
	}
	for op, want := range tests {
		if !op.Valid() {
			t.Errorf("%v.Valid() = false", op)
		}
		if got := op.Width(); got != want {
			t.Errorf("%v.Width() = %d, want %d", op, got, want)
		}
	}
	if Opcode(3000).Valid() {
		t.Error("Opcode(3000).Valid() = true")
	}
}

// TestNames tests opcode and mode names.
func TestNames(t *testing.T) {
	if got := OpSetRelativeBase.String(); got != "rb" {
		t.Errorf("OpSetRelativeBase.String() = %q, want %q", got, "rb")
	}
	if got := Opcode(13).String(); got != "op(13)" {
		t.Errorf("Opcode(13).String() = %q, want %q", got, "op(13)")
	}
	if got := ModeRelative.String(); got != "relative" {
		t.Errorf("ModeRelative.String() = %q, want %q", got, "relative")
	}
	if got := Mode(7).String(); got != "mode(7)" {
		t.Errorf("Mode(7).String() = %q, want %q", got, "mode(7)")
	}
}
