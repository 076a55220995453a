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

package termio

import (
	"bufio"
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Terminal adapts stdin/stdout into the machine's character device. When
// stdin is a tty it is switched into raw mode (no canonical input, no echo)
// for the duration of the session; plain pipes and files are read as-is,
// which keeps machine programs scriptable.
type Terminal struct {
	input   *os.File
	reader  *bufio.Reader
	writer  *bufio.Writer
	restore unix.Termios
	raw     bool
}

func New() *Terminal {
	return &Terminal{
		input:  os.Stdin,
		reader: bufio.NewReader(os.Stdin),
		writer: bufio.NewWriter(os.Stdout),
	}
}

func (t *Terminal) EnableRawMode() error {
	if !term.IsTerminal(int(t.input.Fd())) {
		return nil
	}

	if err := termios.Tcgetattr(t.input.Fd(), &t.restore); err != nil {
		return err
	}

	termstate := t.restore

	termstate.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.INLCR
	termstate.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.IEXTEN

	// Reads block until one character arrives
	termstate.Cc[unix.VMIN] = 1
	termstate.Cc[unix.VTIME] = 0

	if err := termios.Tcsetattr(
		t.input.Fd(), termios.TCSANOW, &termstate,
	); err != nil {
		return err
	}

	t.raw = true

	return nil
}

func (t *Terminal) DisableRawMode() error {
	if !t.raw {
		return nil
	}

	t.raw = false

	return termios.Tcsetattr(t.input.Fd(), termios.TCSANOW, &t.restore)
}

func (t *Terminal) PutChar(ch byte) error {
	if err := t.writer.WriteByte(ch); err != nil {
		return err
	}

	return t.writer.Flush()
}

func (t *Terminal) GetChar() (byte, error) {
	return t.reader.ReadByte()
}

// IsKeyDown reports whether GetChar would return without blocking, either
// from the read buffer or from a pending byte on the descriptor.
func (t *Terminal) IsKeyDown() (bool, error) {
	if t.reader.Buffered() > 0 {
		return true, nil
	}

	fd := int(t.input.Fd())

	var readfds unix.FdSet
	readfds.Set(fd)

	timeout := unix.Timeval{Sec: 0, Usec: 0}

	for {
		n, err := unix.Select(fd+1, &readfds, nil, nil, &timeout)

		if err == unix.EINTR {
			continue
		} else if err != nil {
			return false, err
		}

		return n != 0, nil
	}
}
