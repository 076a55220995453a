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

package debugger

import (
	"fmt"

	"github.com/lassandro/lc3vm/pkg/machine"
)

// HandleEvent implements machine.Plugin. Accessor calls made from in here
// happen inside the machine's notification round, so they mutate and read
// state without generating further events.
func (dbg *Debugger) HandleEvent(mc *machine.Machine, event machine.Event) error {
	switch event := event.(type) {
	case machine.FetchEvent:
		return dbg.step(mc)

	case machine.MemGetEvent:
		dbg.read(event.Addr, mc)

	case machine.MemSetEvent:
		dbg.write(event.Addr, mc)
	}

	return nil
}

func (dbg *Debugger) step(mc *machine.Machine) error {
	if dbg.Break {
		dbg.HandleBreak(dbg, mc)
		return nil
	}

	// The program counter has already moved past the fetched instruction
	pc, err := mc.RegRead(machine.RPC)

	if err != nil {
		return err
	}

	for _, breakpoint := range dbg.Breakpoints {
		if pc-1 == breakpoint.Addr {
			dbg.HandleBreak(dbg, mc)
			break
		}
	}

	return nil
}

func (dbg *Debugger) read(addr uint16, mc *machine.Machine) {
	for _, watchpoint := range dbg.Watchpoints {
		if watchpoint.Type == WriteWatch {
			continue
		}

		if addr == watchpoint.Addr {
			dbg.HandleRead(addr, dbg, mc)
			break
		}
	}
}

func (dbg *Debugger) write(addr uint16, mc *machine.Machine) {
	for _, watchpoint := range dbg.Watchpoints {
		if watchpoint.Type == ReadWatch {
			continue
		}

		if addr == watchpoint.Addr {
			dbg.HandleWrite(addr, dbg, mc)
			break
		}
	}
}

func (dbg *Debugger) PrintRegs(mc *machine.Machine) error {
	for i := machine.R0; i <= machine.R7; i++ {
		value, err := mc.RegRead(i)

		if err != nil {
			return err
		}

		fmt.Printf("\033[1mR%d:\033[0m %#04x\t", i, value)

		if i == machine.R3 {
			fmt.Println()
		}
	}

	fmt.Println()

	pc, err := mc.RegRead(machine.RPC)

	if err != nil {
		return err
	}

	cond, err := mc.RegRead(machine.RCond)

	if err != nil {
		return err
	}

	fmt.Printf("\033[1mPC:\033[0m %#04x\t\033[1mCC:\033[0m %#04x\n", pc, cond)

	return nil
}

func (dbg *Debugger) PrintMem(mc *machine.Machine, addr, count uint16) error {
	for i := addr; i < addr+count; i++ {
		if i == addr {
			fmt.Printf("\033[1m[%#04x]\033[0m ", i)
		} else if (i-addr)%4 == 0 {
			fmt.Println()
			fmt.Printf("\033[1m[%#04x]\033[0m ", i)
		}

		result, err := mc.MemRead(i)

		if err != nil {
			return err
		}

		if result == 0 {
			fmt.Printf("\033[1;30m%#04x\033[0m ", result)
		} else {
			fmt.Printf("%#04x ", result)
		}
	}

	fmt.Println()

	return nil
}
