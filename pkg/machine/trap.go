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

// trap dispatches the system call routines. The routines run natively
// against the IO handle rather than through trap table code in supervisor
// memory, so the trap table region stays empty.
func (mc *Machine) trap(vector uint16) error {
	switch vector {
	case TRAP_GETC:
		ch, err := mc.getChar()

		if err != nil {
			return err
		}

		return mc.RegWrite(R0, uint16(ch))

	case TRAP_OUT:
		value, err := mc.RegRead(R0)

		if err != nil {
			return err
		}

		return mc.putChar(byte(value & 0xFF))

	case TRAP_PUTS:
		return mc.putString(false)

	case TRAP_IN:
		for _, ch := range []byte("Enter a character: ") {
			if err := mc.putChar(ch); err != nil {
				return err
			}
		}

		ch, err := mc.getChar()

		if err != nil {
			return err
		}

		if err := mc.putChar(ch); err != nil {
			return err
		}

		return mc.RegWrite(R0, uint16(ch))

	case TRAP_PUTSP:
		return mc.putString(true)

	case TRAP_HALT:
		return mc.SetRunning(false)

	default:
		return fmt.Errorf("%w: %#02x", ErrUnknownTrap, vector)
	}
}

// putString writes the null terminated string starting at the address held
// in R0. Plain strings hold one character per word; packed strings hold two
// characters per word, low byte first, and may end mid-word on a zero high
// byte.
func (mc *Machine) putString(packed bool) error {
	addr, err := mc.RegRead(R0)

	if err != nil {
		return err
	}

	for {
		word, err := mc.MemRead(addr)

		if err != nil {
			return err
		}

		if word == 0 {
			return nil
		}

		if packed {
			if err := mc.putChar(byte(word & 0xFF)); err != nil {
				return err
			}

			if word>>8 == 0 {
				return nil
			}

			if err := mc.putChar(byte(word >> 8)); err != nil {
				return err
			}
		} else {
			if err := mc.putChar(byte(word & 0xFF)); err != nil {
				return err
			}
		}

		addr++
	}
}
