package invoke

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Confirmer decides whether a mutating operation may proceed.
type Confirmer interface {
	// Confirm returns ctx.Err() when ctx ends before an answer arrives.
	Confirm(ctx context.Context, operation, target string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, operation, target string) (bool, error)

// Confirm calls f.
func (f ConfirmFunc) Confirm(ctx context.Context, operation, target string) (bool, error) {
	return f(ctx, operation, target)
}

// PromptConfirmer asks on Out and reads the answer from In. Anything other
// than "y" or "yes" (including end of input) declines.
type PromptConfirmer struct {
	In  io.Reader
	Out io.Writer
}

// Confirm implements Confirmer. The read runs in its own goroutine so a
// canceled ctx returns at once; the goroutine ends when In does.
func (p PromptConfirmer) Confirm(ctx context.Context, operation, target string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	fmt.Fprintf(p.Out, "Performing the operation %q on target %q.\n", operation, target)
	fmt.Fprint(p.Out, "Are you sure you want to perform this action? [y/N]: ")

	type answer struct {
		line string
		err  error
	}
	answers := make(chan answer, 1)
	go func() {
		line, err := bufio.NewReader(p.In).ReadString('\n')
		answers <- answer{line: line, err: err}
	}()

	var a answer
	select {
	case <-ctx.Done():
		fmt.Fprintln(p.Out)
		return false, ctx.Err()
	case a = <-answers:
	}
	if a.err != nil && !errors.Is(a.err, io.EOF) {
		return false, a.err
	}
	switch strings.ToLower(strings.TrimSpace(a.line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
