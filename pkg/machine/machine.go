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

package machine

import (
	"fmt"
)

// notify delivers an event to every installed plugin in order.
//
// No event may be generated while a round is already in progress: a plugin
// reacting to an event by reading or writing machine state would otherwise
// re-enter this function, and two plugins fighting over the same register
// would chase each other's writes forever. Accesses made during a round
// still take effect, they just go unannounced until the round is over.
func (mc *Machine) notify(event Event) error {
	if mc.notifying {
		return nil
	}

	mc.notifying = true
	defer func() { mc.notifying = false }()

	for _, plugin := range mc.plugins {
		if err := plugin.HandleEvent(mc, event); err != nil {
			return fmt.Errorf("plugin: %w", err)
		}
	}

	return nil
}

// MemRead returns the word at addr, announcing the read after the value has
// been fetched.
//
// Reading the keyboard status register polls the IO handle first. When a
// key is pending the character is read and placed in the keyboard data
// register before the ready bit lands in the status register, so a program
// that sees the ready bit can rely on the data register already holding the
// character. When no key is pending the status register is zeroed. Each of
// these nested writes announces itself as usual.
func (mc *Machine) MemRead(addr uint16) (uint16, error) {
	if addr == DEV_KBSR {
		down, err := mc.isKeyDown()

		if err != nil {
			return 0, err
		}

		if down {
			ch, err := mc.getChar()

			if err != nil {
				return 0, err
			}

			if err := mc.MemWrite(DEV_KBDR, uint16(ch)); err != nil {
				return 0, err
			}

			if err := mc.MemWrite(DEV_KBSR, 1<<15); err != nil {
				return 0, err
			}
		} else {
			if err := mc.MemWrite(DEV_KBSR, 0); err != nil {
				return 0, err
			}
		}
	}

	value := mc.memory[addr]

	if err := mc.notify(MemGetEvent{Addr: addr, Value: value}); err != nil {
		return 0, err
	}

	return value, nil
}

// MemWrite stores a word at addr, announcing the write before it applies.
func (mc *Machine) MemWrite(addr uint16, value uint16) error {
	if err := mc.notify(MemSetEvent{Addr: addr, Value: value}); err != nil {
		return err
	}

	mc.memory[addr] = value

	return nil
}

// RegRead returns the value of a register, announcing the read after the
// value has been fetched.
func (mc *Machine) RegRead(reg Register) (uint16, error) {
	value := mc.registers[reg]

	if err := mc.notify(RegGetEvent{Reg: reg, Value: value}); err != nil {
		return 0, err
	}

	return value, nil
}

// RegWrite sets a register, announcing the write before it applies.
func (mc *Machine) RegWrite(reg Register, value uint16) error {
	if err := mc.notify(RegSetEvent{Reg: reg, Value: value}); err != nil {
		return err
	}

	mc.registers[reg] = value

	return nil
}

// Running reports whether the machine is running.
func (mc *Machine) Running() (bool, error) {
	value := mc.running

	if err := mc.notify(RunningGetEvent{Value: value}); err != nil {
		return false, err
	}

	return value, nil
}

// SetRunning sets the run flag. The HALT trap stops the machine through
// here; the fetch loop checks the flag once per instruction.
func (mc *Machine) SetRunning(value bool) error {
	if err := mc.notify(RunningSetEvent{Value: value}); err != nil {
		return err
	}

	mc.running = value

	return nil
}

func (mc *Machine) putChar(ch byte) error {
	if err := mc.notify(CharPutEvent{Ch: ch}); err != nil {
		return err
	}

	if err := mc.io.PutChar(ch); err != nil {
		return fmt.Errorf("putchar: %w", err)
	}

	return nil
}

func (mc *Machine) getChar() (byte, error) {
	ch, err := mc.io.GetChar()

	if err != nil {
		return 0, fmt.Errorf("getchar: %w", err)
	}

	if err := mc.notify(CharGetEvent{Ch: ch}); err != nil {
		return 0, err
	}

	return ch, nil
}

func (mc *Machine) isKeyDown() (bool, error) {
	down, err := mc.io.IsKeyDown()

	if err != nil {
		return false, fmt.Errorf("keydown: %w", err)
	}

	if err := mc.notify(KeyDownEvent{Value: down}); err != nil {
		return false, err
	}

	return down, nil
}

// updateFlags derives the condition flags from the value just written to a
// register. Exactly one of FLAG_ZERO, FLAG_NEG, FLAG_POS holds afterwards.
func (mc *Machine) updateFlags(reg Register) error {
	value, err := mc.RegRead(reg)

	if err != nil {
		return err
	}

	flag := FLAG_POS

	if value == 0 {
		flag = FLAG_ZERO
	} else if value>>15 == 1 {
		flag = FLAG_NEG
	}

	return mc.RegWrite(RCond, flag)
}

// LoadProgram writes a program image into memory starting at PCStart. An
// image too long to fit before the end of the address space is rejected
// with ProgramSizeError and memory is left untouched. Loading goes through
// the normal write accessor, so plugins observe every word placed.
func (mc *Machine) LoadProgram(program []uint16) error {
	max := MemorySize - int(PCStart)

	if len(program) > max {
		return &ProgramSizeError{Len: len(program), Max: max}
	}

	for i, word := range program {
		if err := mc.MemWrite(PCStart+uint16(i), word); err != nil {
			return err
		}
	}

	return nil
}

// Run executes from PCStart until the machine halts or a step fails. The
// run flag is rechecked once per full instruction; the first error anywhere
// aborts the run with whatever effects have already applied left in place.
func (mc *Machine) Run() error {
	if err := mc.SetRunning(true); err != nil {
		return err
	}

	if err := mc.RegWrite(RPC, PCStart); err != nil {
		return err
	}

	for {
		running, err := mc.Running()

		if err != nil {
			return err
		}

		if !running {
			return nil
		}

		if err := mc.Step(); err != nil {
			return err
		}
	}
}
