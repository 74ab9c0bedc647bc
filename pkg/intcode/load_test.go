package intcode

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

// TestParse tests the textual image format.
func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		want    []int64
		wantErr error
	}{
		{name: "plain", src: "1,2,3", want: []int64{1, 2, 3}},
		{name: "newline", src: "1,0,0,3,99\n", want: []int64{1, 0, 0, 3, 99}},
		{name: "spaces", src: " 1, 2 ,\n3\t", want: []int64{1, 2, 3}},
		{name: "trailing comma", src: "1,2,3,", want: []int64{1, 2, 3}},
		{name: "trailing comma newline", src: "1,2,3,\n", want: []int64{1, 2, 3}},
		{name: "signs", src: "-5,+7,0", want: []int64{-5, 7, 0}},
		{name: "large", src: "104,1125899906842624,99", want: []int64{104, 1125899906842624, 99}},
		{name: "single", src: "99", want: []int64{99}},
		{name: "empty", src: "", wantErr: ErrEmptyImage},
		{name: "blank", src: " \n", wantErr: ErrEmptyImage},
		{name: "gap", src: "1,,2", wantErr: ErrMalformedImage},
		{name: "leading comma", src: ",1", wantErr: ErrMalformedImage},
		{name: "word", src: "1,two,3", wantErr: ErrMalformedImage},
		{name: "float", src: "1.5", wantErr: ErrMalformedImage},
		{name: "overflow", src: "99999999999999999999", wantErr: ErrMalformedImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(tt.src))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Parse(%q) error = %v, want %v", tt.src, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.src, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.src, got, tt.want)
			}
		})
	}
}

// TestLoad tests the initial state of a loaded program.
func TestLoad(t *testing.T) {
	p, err := Load(strings.NewReader("1101,100,-1,4,0\n"), Opts{})
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if p.State() != StateInitialized {
		t.Errorf("State() = %v, want %v", p.State(), StateInitialized)
	}
	if p.Pointer() != 0 || p.RelativeBase() != 0 {
		t.Errorf("pointer=%d base=%d, want 0 and 0", p.Pointer(), p.RelativeBase())
	}
	if p.IO().Len() != 0 {
		t.Errorf("IO().Len() = %d, want 0", p.IO().Len())
	}

	// 100 + -1 lands on the 0 at cell 4, turning it into a halt.
	if err := p.Run(); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if p.State() != StateStopped {
		t.Errorf("State() = %v, want %v", p.State(), StateStopped)
	}
	if got, _ := p.Read(4); got != 99 {
		t.Errorf("Read(4) = %d, want 99", got)
	}

	if _, err := Load(strings.NewReader("x"), Opts{}); !errors.Is(err, ErrMalformedImage) {
		t.Errorf("Load(\"x\") = %v, want ErrMalformedImage", err)
	}
}
