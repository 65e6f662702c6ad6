package command

import (
	"context"
	"errors"
	"io"
)

// ErrQuit is returned by HandleCommand when the user asks to leave.
var ErrQuit = errors.New("quit")

type Client interface {
	// Run reads one command per line until in is exhausted, ctx is done or
	// the user quits.
	Run(ctx context.Context, in io.Reader) error
	HandleCommand(ctx context.Context, line string) error
}
