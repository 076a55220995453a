// Copyright (C) 2022  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package encoding_test

import (
	"bytes"
	"testing"

	"github.com/lassandro/lc3vm/pkg/encoding"
)

func TestSignExtend(t *testing.T) {
	tests := []struct {
		Value    uint16
		Bitcount uint16
		Want     uint16
	}{
		{0b11111, 5, 0xFFFF}, // -1
		{0b01111, 5, 0x000F},
		{0b10000, 5, 0xFFF0}, // -16
		{0b111110, 6, 0xFFFE},
		{0b011111, 6, 0x001F},
		{0b111111110, 9, 0xFFFE},
		{0b011111111, 9, 0x00FF},
		{0b11111111110, 11, 0xFFFE},
		{0b00000000001, 11, 0x0001},
	}

	for _, test := range tests {
		have := encoding.SignExtend(test.Value, test.Bitcount)

		if have != test.Want {
			t.Errorf(
				"SignExtend(%#b, %d)\nwant:%#04x\nhave:%#04x",
				test.Value,
				test.Bitcount,
				test.Want,
				have,
			)
		}
	}
}

func TestSwapEndian(t *testing.T) {
	if have := encoding.SwapEndian(0x1234); have != 0x3412 {
		t.Errorf("want 0x3412, have %#04x", have)
	}
}

func TestDecodeHex(t *testing.T) {
	tests := []struct {
		Input string
		Want  uint16
		Fails bool
	}{
		{"0x3000", 0x3000, false},
		{"x3000", 0x3000, false},
		{"0xFF", 0xFF, false},
		{"xFF", 0xFF, false},
		{"3000", 0, true},
		{"zzzz", 0, true},
	}

	for _, test := range tests {
		have, err := encoding.DecodeHex(test.Input)

		if test.Fails {
			if err == nil {
				t.Errorf("DecodeHex(%q) should have failed", test.Input)
			}
			continue
		}

		if err != nil {
			t.Errorf("DecodeHex(%q): %v", test.Input, err)
		} else if have != test.Want {
			t.Errorf(
				"DecodeHex(%q)\nwant:%#04x\nhave:%#04x",
				test.Input,
				test.Want,
				have,
			)
		}
	}
}

func TestDecodeInt(t *testing.T) {
	tests := []struct {
		Input string
		Want  int16
	}{
		{"#123", 123},
		{"123", 123},
		{"#-1", -1},
	}

	for _, test := range tests {
		have, err := encoding.DecodeInt(test.Input)

		if err != nil {
			t.Errorf("DecodeInt(%q): %v", test.Input, err)
		} else if have != test.Want {
			t.Errorf(
				"DecodeInt(%q)\nwant:%d\nhave:%d",
				test.Input,
				test.Want,
				have,
			)
		}
	}
}

func TestReadProgram(t *testing.T) {
	t.Run("Big Endian Words", func(t *testing.T) {
		program, err := encoding.ReadProgram(
			bytes.NewReader([]byte{0x12, 0x34, 0xF0, 0x25}),
		)

		if err != nil {
			t.Fatal(err)
		}

		if len(program) != 2 {
			t.Fatalf("want 2 words, have %d", len(program))
		}

		if program[0] != 0x1234 || program[1] != 0xF025 {
			t.Errorf("want [0x1234 0xF025], have %#04x", program)
		}
	})

	t.Run("Odd Byte Count", func(t *testing.T) {
		_, err := encoding.ReadProgram(bytes.NewReader([]byte{0x12, 0x34, 0xF0}))

		if err == nil {
			t.Error("odd sized image should have been rejected")
		}
	})

	t.Run("Empty", func(t *testing.T) {
		program, err := encoding.ReadProgram(bytes.NewReader(nil))

		if err != nil {
			t.Fatal(err)
		}

		if len(program) != 0 {
			t.Errorf("want empty program, have %d words", len(program))
		}
	})
}
