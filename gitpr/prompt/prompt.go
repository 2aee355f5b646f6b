package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Input answers questions.
type Input interface {
	// Ask shows question and returns the answer with
	// surrounding whitespace removed.
	Ask(ctx context.Context, question string) (string, error)
}

// Func adapts a plain function to the Input interface.
type Func func(
	ctx context.Context,
	question string,
) (string, error)

// Ask delegates to the wrapped function.
func (f Func) Ask(
	ctx context.Context,
	question string,
) (string, error) {
	return f(ctx, question)
}

// Console asks questions on out and reads one line per
// answer from in. Input is not masked.
type Console struct {
	mu  sync.Mutex
	in  *bufio.Reader
	out io.Writer
}

// NewConsole returns a Console reading from in and
// writing questions to out.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Ask writes question followed by a space and blocks
// until a full line is read. End of input after a
// partial line returns that line; end of input with
// nothing read returns an empty answer. Only the line
// terminator is removed from the answer.
func (c *Console) Ask(
	ctx context.Context,
	question string,
) (string, error) {
	const errCtx = "reading answer"

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := fmt.Fprint(
		c.out, question+" ",
	); err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	line, err := c.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// Answers returns an Input that replies with answers in
// order, verbatim, and fails once they run out.
func Answers(answers ...string) Input {
	var (
		mu   sync.Mutex
		next int
	)

	return Func(func(
		_ context.Context,
		question string,
	) (string, error) {
		mu.Lock()
		defer mu.Unlock()

		if next >= len(answers) {
			return "", fmt.Errorf(
				"no answer left for %q", question,
			)
		}

		a := answers[next]
		next++

		return a, nil
	})
}
