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

// Event is one observed machine state access. The set of events is closed:
// the interface is sealed so a plugin switch over the concrete types can be
// checked for completeness against the list below.
//
// Read accesses (MemGet, RegGet, RunningGet, CharGet, KeyDown) are
// delivered after the value has been fetched and carry the fetched value.
// Write accesses (MemSet, RegSet, RunningSet, CharPut) are delivered before
// the mutation applies and carry the pending value. The asymmetry is
// deliberate; plugins see writes while the old value is still readable.
type Event interface {
	event()
}

// MemGetEvent records a memory read, after the fact.
type MemGetEvent struct {
	Addr  uint16
	Value uint16
}

// MemSetEvent records a memory write about to be applied.
type MemSetEvent struct {
	Addr  uint16
	Value uint16
}

// RegGetEvent records a register read, after the fact.
type RegGetEvent struct {
	Reg   Register
	Value uint16
}

// RegSetEvent records a register write about to be applied.
type RegSetEvent struct {
	Reg   Register
	Value uint16
}

// RunningGetEvent records a poll of the run flag.
type RunningGetEvent struct {
	Value bool
}

// RunningSetEvent records the run flag about to change.
type RunningSetEvent struct {
	Value bool
}

// CharGetEvent records a character read from the IO handle.
type CharGetEvent struct {
	Ch byte
}

// CharPutEvent records a character about to be written to the IO handle.
type CharPutEvent struct {
	Ch byte
}

// KeyDownEvent records a key availability poll.
type KeyDownEvent struct {
	Value bool
}

// FetchEvent records a fetched instruction word, before it executes.
type FetchEvent struct {
	Instruction Command
}

func (MemGetEvent) event()     {}
func (MemSetEvent) event()     {}
func (RegGetEvent) event()     {}
func (RegSetEvent) event()     {}
func (RunningGetEvent) event() {}
func (RunningSetEvent) event() {}
func (CharGetEvent) event()    {}
func (CharPutEvent) event()    {}
func (KeyDownEvent) event()    {}
func (FetchEvent) event()      {}
