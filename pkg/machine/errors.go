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
	"errors"
	"fmt"
)

var (
	// ErrUnimplementedOpcode is returned for RTI and the reserved opcode.
	// Both require the privilege and interrupt machinery this machine does
	// not model, so hitting one aborts the run rather than guessing.
	ErrUnimplementedOpcode = errors.New("unimplemented opcode")

	// ErrUnknownTrap is returned for a trap vector outside the defined
	// set. A bad vector means a broken program image, not a condition the
	// machine can recover from.
	ErrUnknownTrap = errors.New("unknown trap vector")
)

// ProgramSizeError reports a program image too large to fit between the
// load address and the end of the address space.
type ProgramSizeError struct {
	Len int
	Max int
}

func (e *ProgramSizeError) Error() string {
	return fmt.Sprintf(
		"program of %d words exceeds available space of %d words",
		e.Len,
		e.Max,
	)
}
