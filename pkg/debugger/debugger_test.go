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

package debugger_test

import (
	"testing"

	"github.com/lassandro/lc3vm/pkg/debugger"
	"github.com/lassandro/lc3vm/pkg/machine"
)

type nullIOHandle struct{}

func (nullIOHandle) PutChar(ch byte) error  { return nil }
func (nullIOHandle) GetChar() (byte, error) { return 0, nil }
func (nullIOHandle) IsKeyDown() (bool, error) {
	return false, nil
}

func TestBreakpoint(t *testing.T) {
	var stopped []uint16

	dbg := debugger.Debugger{
		Breakpoints: []debugger.Breakpoint{{Addr: 0x3001}},
		HandleBreak: func(dbg *debugger.Debugger, mc *machine.Machine) {
			pc, err := mc.RegRead(machine.RPC)

			if err != nil {
				t.Fatal(err)
			}

			stopped = append(stopped, pc-1)
		},
	}

	mc := machine.New(nullIOHandle{})
	mc.AddPlugin(&dbg)

	if err := mc.RegWrite(machine.RPC, 0x3000); err != nil {
		t.Fatal(err)
	}

	// Two no-op branches
	if err := mc.MemWrite(0x3000, 0); err != nil {
		t.Fatal(err)
	}

	if err := mc.MemWrite(0x3001, 0); err != nil {
		t.Fatal(err)
	}

	if err := mc.Step(); err != nil {
		t.Fatal(err)
	}

	if len(stopped) != 0 {
		t.Fatalf("break fired before the breakpoint: %#04x", stopped)
	}

	if err := mc.Step(); err != nil {
		t.Fatal(err)
	}

	if len(stopped) != 1 || stopped[0] != 0x3001 {
		t.Fatalf("want break at 0x3001, have %#04x", stopped)
	}
}

func TestBreakFlag(t *testing.T) {
	breaks := 0

	dbg := debugger.Debugger{
		Break: true,
		HandleBreak: func(dbg *debugger.Debugger, mc *machine.Machine) {
			breaks++
		},
	}

	mc := machine.New(nullIOHandle{})
	mc.AddPlugin(&dbg)

	if err := mc.RegWrite(machine.RPC, 0x3000); err != nil {
		t.Fatal(err)
	}

	if err := mc.Step(); err != nil {
		t.Fatal(err)
	}

	if breaks != 1 {
		t.Fatalf("want 1 break with the break flag raised, have %d", breaks)
	}
}

func TestWatchpoint(t *testing.T) {
	var reads, writes []uint16

	dbg := debugger.Debugger{
		Watchpoints: []debugger.Watchpoint{
			{Addr: 0x4000, Type: debugger.ReadWatch},
			{Addr: 0x4001, Type: debugger.WriteWatch},
		},
		HandleRead: func(addr uint16, dbg *debugger.Debugger, mc *machine.Machine) {
			reads = append(reads, addr)
		},
		HandleWrite: func(addr uint16, dbg *debugger.Debugger, mc *machine.Machine) {
			writes = append(writes, addr)
		},
	}

	mc := machine.New(nullIOHandle{})
	mc.AddPlugin(&dbg)

	if _, err := mc.MemRead(0x4000); err != nil {
		t.Fatal(err)
	}

	if err := mc.MemWrite(0x4000, 1); err != nil {
		t.Fatal(err)
	}

	if _, err := mc.MemRead(0x4001); err != nil {
		t.Fatal(err)
	}

	if err := mc.MemWrite(0x4001, 1); err != nil {
		t.Fatal(err)
	}

	if len(reads) != 1 || reads[0] != 0x4000 {
		t.Errorf("want one read stop at 0x4000, have %#04x", reads)
	}

	if len(writes) != 1 || writes[0] != 0x4001 {
		t.Errorf("want one write stop at 0x4001, have %#04x", writes)
	}
}
