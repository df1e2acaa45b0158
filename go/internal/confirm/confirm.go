// Package confirm provides the yes/no capability destructive operations ask before acting.
package confirm

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// ErrDeclined is returned by operations the user chose not to confirm
var ErrDeclined = errors.New("declined by user")

// Confirmer answers a yes/no question. A false answer aborts the operation.
type Confirmer interface {
	Confirm(ctx context.Context, question string) bool
}

// Func adapts a function to Confirmer
type Func func(ctx context.Context, question string) bool

func (f Func) Confirm(ctx context.Context, question string) bool {
	return f(ctx, question)
}

// Always answers yes to everything
var Always Confirmer = Func(func(context.Context, string) bool { return true })

// Never answers no to everything
var Never Confirmer = Func(func(context.Context, string) bool { return false })

type answerKey struct{}

// WithAnswer records the caller's answer on ctx
func WithAnswer(ctx context.Context, yes bool) context.Context {
	return context.WithValue(ctx, answerKey{}, yes)
}

// FromContext answers with whatever the request carried; no answer means no
type FromContext struct{}

func (FromContext) Confirm(ctx context.Context, _ string) bool {
	yes, _ := ctx.Value(answerKey{}).(bool)
	return yes
}

// Prompt asks on a terminal and reads a y/yes answer
type Prompt struct {
	mu  sync.Mutex
	in  *bufio.Reader
	out io.Writer
}

// NewPrompt creates a Prompt reading from in and writing questions to out
func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{in: bufio.NewReader(in), out: out}
}

func (p *Prompt) Confirm(_ context.Context, question string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.out, "%s [y/N]: ", question)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
