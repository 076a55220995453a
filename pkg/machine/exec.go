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

	"github.com/lassandro/lc3vm/pkg/encoding"
)

// Step fetches and executes a single instruction: read the program
// counter, advance it, fetch the word at the pre-increment address and
// execute it. Opcodes that change control flow adjust the already
// incremented counter.
func (mc *Machine) Step() error {
	pc, err := mc.RegRead(RPC)

	if err != nil {
		return err
	}

	if err := mc.RegWrite(RPC, pc+1); err != nil {
		return err
	}

	word, err := mc.MemRead(pc)

	if err != nil {
		return err
	}

	return mc.execute(Command(word))
}

func (mc *Machine) execute(command Command) error {
	if err := mc.notify(FetchEvent{Instruction: command}); err != nil {
		return err
	}

	instruction := uint16(command)

	switch command.OpCode() {
	// ADD  |0001    |DR   |SR1  |0|00 |SR2   | Register  addition
	// ADD  |0001    |DR   |SR1  |1|imm5      | Immediate addition
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_ADD:
		dest := Register((instruction >> 9) & 0x7)

		src1, err := mc.RegRead(Register((instruction >> 6) & 0x7))

		if err != nil {
			return err
		}

		var operand uint16

		if (instruction>>5)&0x1 == 1 {
			operand = encoding.SignExtend(instruction&0x1F, 5)
		} else {
			operand, err = mc.RegRead(Register(instruction & 0x7))

			if err != nil {
				return err
			}
		}

		if err := mc.RegWrite(dest, src1+operand); err != nil {
			return err
		}

		return mc.updateFlags(dest)

	// AND  |0101    |DR   |SR1  |0|00 |SR2   | Register  bitwise
	// AND  |0101    |DR   |SR1  |1|imm5      | Immediate bitwise
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_AND:
		dest := Register((instruction >> 9) & 0x7)

		src1, err := mc.RegRead(Register((instruction >> 6) & 0x7))

		if err != nil {
			return err
		}

		var operand uint16

		if (instruction>>5)&0x1 == 1 {
			operand = encoding.SignExtend(instruction&0x1F, 5)
		} else {
			operand, err = mc.RegRead(Register(instruction & 0x7))

			if err != nil {
				return err
			}
		}

		if err := mc.RegWrite(dest, src1&operand); err != nil {
			return err
		}

		return mc.updateFlags(dest)

	// BR   |0000    |N|Z|P|PCoffset9         | Conditional branch
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_BR:
		flags := (instruction >> 9) & 0x7

		cond, err := mc.RegRead(RCond)

		if err != nil {
			return err
		}

		if flags&cond > 0 {
			pc, err := mc.RegRead(RPC)

			if err != nil {
				return err
			}

			return mc.RegWrite(
				RPC, pc+encoding.SignExtend(instruction&0x1FF, 9),
			)
		}

		return nil

	// JMP  |1100    |000  |BaseR|000000      | Jump
	// RET  |1100    |000  |111  |000000      | Return
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_JMP:
		base, err := mc.RegRead(Register((instruction >> 6) & 0x7))

		if err != nil {
			return err
		}

		return mc.RegWrite(RPC, base)

	// JSR  |0100    |1|PCoffset11            | Jump to subroutine
	// JSRR |0100    |0|00 |BaseR|000000      | Jump to subroutine register
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_JSR:
		pc, err := mc.RegRead(RPC)

		if err != nil {
			return err
		}

		if err := mc.RegWrite(R7, pc); err != nil {
			return err
		}

		if (instruction>>11)&0x1 == 1 {
			return mc.RegWrite(
				RPC, pc+encoding.SignExtend(instruction&0x7FF, 11),
			)
		}

		base, err := mc.RegRead(Register((instruction >> 6) & 0x7))

		if err != nil {
			return err
		}

		return mc.RegWrite(RPC, base)

	// LD   |0010    |DR   |PCoffset9         | Load
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_LD:
		dest := Register((instruction >> 9) & 0x7)

		pc, err := mc.RegRead(RPC)

		if err != nil {
			return err
		}

		value, err := mc.MemRead(
			pc + encoding.SignExtend(instruction&0x1FF, 9),
		)

		if err != nil {
			return err
		}

		if err := mc.RegWrite(dest, value); err != nil {
			return err
		}

		return mc.updateFlags(dest)

	// LDI  |1010    |DR   |PCoffset9         | Load indirect
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_LDI:
		dest := Register((instruction >> 9) & 0x7)

		pc, err := mc.RegRead(RPC)

		if err != nil {
			return err
		}

		addr, err := mc.MemRead(
			pc + encoding.SignExtend(instruction&0x1FF, 9),
		)

		if err != nil {
			return err
		}

		value, err := mc.MemRead(addr)

		if err != nil {
			return err
		}

		if err := mc.RegWrite(dest, value); err != nil {
			return err
		}

		return mc.updateFlags(dest)

	// LDR  |0110    |DR   |BaseR|offset6     | Load base+offset
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_LDR:
		dest := Register((instruction >> 9) & 0x7)

		base, err := mc.RegRead(Register((instruction >> 6) & 0x7))

		if err != nil {
			return err
		}

		value, err := mc.MemRead(
			base + encoding.SignExtend(instruction&0x3F, 6),
		)

		if err != nil {
			return err
		}

		if err := mc.RegWrite(dest, value); err != nil {
			return err
		}

		return mc.updateFlags(dest)

	// LEA  |1110    |DR   |PCoffset9         | Load effective address
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_LEA:
		dest := Register((instruction >> 9) & 0x7)

		pc, err := mc.RegRead(RPC)

		if err != nil {
			return err
		}

		addr := pc + encoding.SignExtend(instruction&0x1FF, 9)

		if err := mc.RegWrite(dest, addr); err != nil {
			return err
		}

		return mc.updateFlags(dest)

	// NOT  |1001    |DR   |SR   |1|11111     | Bitwise complement
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_NOT:
		dest := Register((instruction >> 9) & 0x7)

		src, err := mc.RegRead(Register((instruction >> 6) & 0x7))

		if err != nil {
			return err
		}

		if err := mc.RegWrite(dest, ^src); err != nil {
			return err
		}

		return mc.updateFlags(dest)

	// ST   |0011    |SR   |PCoffset9         | Store
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_ST:
		src, err := mc.RegRead(Register((instruction >> 9) & 0x7))

		if err != nil {
			return err
		}

		pc, err := mc.RegRead(RPC)

		if err != nil {
			return err
		}

		return mc.MemWrite(
			pc+encoding.SignExtend(instruction&0x1FF, 9), src,
		)

	// STI  |1011    |SR   |PCoffset9         | Store indirect
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_STI:
		src, err := mc.RegRead(Register((instruction >> 9) & 0x7))

		if err != nil {
			return err
		}

		pc, err := mc.RegRead(RPC)

		if err != nil {
			return err
		}

		addr, err := mc.MemRead(
			pc + encoding.SignExtend(instruction&0x1FF, 9),
		)

		if err != nil {
			return err
		}

		return mc.MemWrite(addr, src)

	// STR  |0111    |SR   |BaseR|offset6     | Store base+offset
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_STR:
		src, err := mc.RegRead(Register((instruction >> 9) & 0x7))

		if err != nil {
			return err
		}

		base, err := mc.RegRead(Register((instruction >> 6) & 0x7))

		if err != nil {
			return err
		}

		return mc.MemWrite(
			base+encoding.SignExtend(instruction&0x3F, 6), src,
		)

	// TRAP |1111    |0000   |trapvect8       | System call
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_TRAP:
		return mc.trap(instruction & 0xFF)

	// RTI  |1000    |000000000000            | Return from interrupt
	// RES  |1101    |                        | Reserved (illegal)
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	default:
		// Both need privilege and interrupt state this machine does not
		// model.
		return fmt.Errorf(
			"%w: %#04b", ErrUnimplementedOpcode, command.OpCode(),
		)
	}
}
