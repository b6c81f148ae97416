package iocli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Stdio консоль процесса: вывод в out, секреты читаются из stdin без эха
type Stdio struct {
	out io.Writer
	in  *os.File
}

// NewStdio создает консоль поверх os.Stdin и out
func NewStdio(out io.Writer) IO {
	return &Stdio{out: out, in: os.Stdin}
}

// Printf печатает в out
func (s *Stdio) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(s.out, format, a...)
}

// Interactive сообщает, подключен ли stdin к терминалу
func (s *Stdio) Interactive() bool {
	return term.IsTerminal(int(s.in.Fd()))
}

// ReadSecret читает строку без эха
func (s *Stdio) ReadSecret(prompt string) (string, error) {
	s.Printf("%s", prompt)
	raw, err := term.ReadPassword(int(s.in.Fd()))
	s.Printf("\n")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(raw)), nil
}
