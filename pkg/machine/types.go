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

// IOHandle is the character device the machine talks to. The machine never
// owns a concrete terminal; anything that can produce and consume single
// characters (a raw terminal, a pipe, a test fixture) will do.
//
// GetChar blocks until a character is available. IsKeyDown must not block;
// it answers whether GetChar would return immediately.
type IOHandle interface {
	PutChar(ch byte) error
	GetChar() (byte, error)
	IsKeyDown() (bool, error)
}

// Plugin observes machine state transitions. Every register, memory, run
// state and character access generates one Event, delivered to each plugin
// in registration order before (writes) or after (reads) the access takes
// effect.
//
// A plugin handler receives the machine itself and may call its accessors
// freely; accesses made during a notification round mutate state but do not
// generate further events (see Machine.notify).
type Plugin interface {
	HandleEvent(mc *Machine, event Event) error
}

// Command is a single fetched instruction word. The opcode lives in the top
// four bits; the meaning of the low twelve depends on the opcode and is
// extracted where each opcode is executed.
type Command uint16

func (c Command) OpCode() uint16 {
	return uint16(c) >> 12
}

// Machine is a complete LC-3: 65536 words of memory, the register file, a
// run flag, a character device and the installed plugins. The zero value is
// not usable; construct with New.
type Machine struct {
	memory    [MemorySize]uint16
	registers [NumRegisters]uint16
	running   bool
	io        IOHandle
	plugins   []Plugin

	// Reentrancy guard for plugin notification, see notify()
	notifying bool
}

// New returns a stopped machine with zeroed memory and registers, wired to
// the given character device.
func New(io IOHandle) *Machine {
	return &Machine{io: io}
}

// AddPlugin appends a plugin to the notification list. Plugins receive
// events in the order they were added, for the lifetime of the machine.
func (mc *Machine) AddPlugin(plugin Plugin) {
	mc.plugins = append(mc.plugins, plugin)
}
