package connect

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Chooser picks one device when several are attached over USB.
type Chooser interface {
	Choose(ctx context.Context, serials []Serial) (Serial, error)
}

// ChooserFunc adapts a function to the Chooser interface.
type ChooserFunc func(ctx context.Context, serials []Serial) (Serial, error)

func (f ChooserFunc) Choose(ctx context.Context, serials []Serial) (Serial, error) {
	return f(ctx, serials)
}

// PromptChooser asks for a 1-based device number on a line oriented stream
// and keeps asking until it gets a valid one.
type PromptChooser struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPromptChooser creates a PromptChooser reading from in and writing to out.
func NewPromptChooser(in io.Reader, out io.Writer) *PromptChooser {
	return &PromptChooser{in: bufio.NewReader(in), out: out}
}

// Choose prints the numbered device list and blocks until a number in range is entered.
// It gives up only when the input is exhausted or ctx is done.
func (p *PromptChooser) Choose(ctx context.Context, serials []Serial) (Serial, error) {
	if len(serials) == 0 {
		return "", ErrNoDevices
	}

	fmt.Fprintln(p.out, "Multiple Android devices detected. Please select one:")
	for i, serial := range serials {
		fmt.Fprintf(p.out, "%d. %s\n", i+1, serial)
	}

	for {
		fmt.Fprintf(p.out, "Enter the number of the device [1-%d]: ", len(serials))
		line, err := p.readLine(ctx)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		if idx, ok := parseChoice(line, len(serials)); ok {
			return serials[idx-1], nil
		}
		if err != nil {
			return "", fmt.Errorf("reading device selection: %w", err)
		}
		fmt.Fprintln(p.out, "Invalid selection. Please try again.")
	}
}

type lineResult struct {
	line string
	err  error
}

// readLine reads one line, returning early when ctx is done. The pending
// read is abandoned in that case.
func (p *PromptChooser) readLine(ctx context.Context) (string, error) {
	ch := make(chan lineResult, 1)
	go func() {
		line, err := p.in.ReadString('\n')
		ch <- lineResult{line: line, err: err}
	}()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		return r.line, r.err
	}
}

func parseChoice(input string, n int) (int, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, false
	}
	for _, r := range input {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	idx, err := strconv.Atoi(input)
	if err != nil || idx < 1 || idx > n {
		return 0, false
	}
	return idx, true
}
