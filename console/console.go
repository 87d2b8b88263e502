// Package console is the local transport: a prompt on one stream, output on another.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/zrma/trollsmile/command"
)

const (
	lf    = '\n'
	lfStr = string(lf)
	crStr = "\r"
)

// Console reads one line per prompt and prints whatever commands send back.
type Console struct {
	in     *bufio.Reader
	out    io.Writer
	prompt string

	// at most one read is in flight; its result lands in lines
	lines   chan readResult
	reading bool
}

type readResult struct {
	input string
	err   error
}

func New(in io.Reader, out io.Writer, prompt string) *Console {
	return &Console{
		in:     bufio.NewReader(in),
		out:    out,
		prompt: prompt,
		lines:  make(chan readResult, 1),
	}
}

// Next implements command.Source.
func (c *Console) Next(ctx context.Context) (*command.Message, error) {
	line, err := c.ReadLine(ctx)
	if err != nil {
		return nil, err
	}
	return command.NewMessage(line, c), nil
}

// ReadLine prompts and returns the next line without its line ending. A final
// line without a newline is still returned; io.EOF follows on the next call.
// Cancelling ctx returns at once; a read already started is kept for the next
// call instead of being lost.
func (c *Console) ReadLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if !c.reading {
		fmt.Fprint(c.out, c.prompt)
		c.reading = true
		go func() {
			input, err := c.in.ReadString(lf)
			c.lines <- readResult{input: input, err: err}
		}()
	}

	var r readResult
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r = <-c.lines:
		c.reading = false
	}

	input, err := r.input, r.err
	if err != nil && !(errors.Is(err, io.EOF) && input != "") {
		return "", err
	}

	input = strings.TrimRight(input, lfStr)
	input = strings.TrimRight(input, crStr)
	return input, nil
}

func (c *Console) Send(p command.Payload) error {
	return Render(c.out, p)
}

// Render prints a payload: text verbatim, error reports as their author line
// followed by the indented title.
func Render(w io.Writer, p command.Payload) error {
	var err error
	switch v := p.(type) {
	case command.Text:
		_, err = fmt.Fprintln(w, string(v))
	case *command.ErrorReport:
		_, err = fmt.Fprintf(w, "[%s] %s\n    %s\n", v.Color, v.Author.Name, v.Title)
	default:
		err = fmt.Errorf("unsupported payload %T", p)
	}
	return err
}

// PrintLogo copies the logo file to w, trimmed. An empty path prints nothing.
func PrintLogo(w io.Writer, path string) error {
	if path == "" {
		return nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read logo: %w", err)
	}
	_, err = fmt.Fprintln(w, strings.TrimSpace(string(b)))
	return err
}
