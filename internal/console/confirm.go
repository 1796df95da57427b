package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Confirmer gates destructive actions behind an explicit user answer.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// PromptConfirmer asks on out and reads a y/N answer from in.
type PromptConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPromptConfirmer(in io.Reader, out io.Writer) *PromptConfirmer {
	return &PromptConfirmer{in: bufio.NewReader(in), out: out}
}

func (p *PromptConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	fmt.Fprintf(p.out, "%s [y/N]: ", prompt)

	line, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// AutoConfirm answers every prompt with its value, for --yes.
type AutoConfirm bool

func (a AutoConfirm) Confirm(context.Context, string) (bool, error) {
	return bool(a), nil
}
