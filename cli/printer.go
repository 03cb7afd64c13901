package cli

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Printer is where a [Command] writes help text.
// It writes to STDOUT unless redirected.
type Printer struct {
	out io.Writer
}

func NewPrinter() *Printer {
	return &Printer{out: os.Stdout}
}

func (p *Printer) Redirect(writer io.Writer) {
	p.out = writer
}

// Writer returns the current destination.
func (p *Printer) Writer() io.Writer {
	return p.out
}

// Width returns the column count of the terminal being written to, or 0 if the output isn't a terminal.
func (p *Printer) Width() int {
	f, ok := p.out.(*os.File)
	if !ok {
		return 0
	}
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	cols, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return cols
}

func (p *Printer) Print(msg ...any) {
	_, _ = fmt.Fprint(p.out, msg...)
}

func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}

func (p *Printer) Println(msg ...any) {
	_, _ = fmt.Fprintln(p.out, msg...)
}
