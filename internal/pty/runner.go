package pty

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/creack/pty"
)

// Size is a terminal size in cells.
type Size struct {
	Rows uint16
	Cols uint16
}

func (s Size) winsize() *pty.Winsize {
	return &pty.Winsize{Rows: s.Rows, Cols: s.Cols}
}

// Runner starts processes on a pseudo-terminal and resizes them. Sessions
// take one so tests can substitute pipes.
type Runner interface {
	Start(ctx context.Context, cmd *exec.Cmd, size Size) (io.ReadWriteCloser, error)
	Resize(rwc io.ReadWriteCloser, size Size) error
}

// CreackPTY is the Runner backed by github.com/creack/pty.
type CreackPTY struct{}

var _ Runner = CreackPTY{}

// Start runs cmd on a new PTY of the given size. The PTY is closed when ctx
// is done.
func (CreackPTY) Start(ctx context.Context, cmd *exec.Cmd, size Size) (io.ReadWriteCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := pty.StartWithSize(cmd, size.winsize())
	if err != nil {
		return nil, fmt.Errorf("start pty: %w", err)
	}
	context.AfterFunc(ctx, func() { _ = f.Close() })
	return f, nil
}

// Resize sets the window size of a PTY returned by Start. Anything else is
// left alone.
func (CreackPTY) Resize(rwc io.ReadWriteCloser, size Size) error {
	f, ok := rwc.(*os.File)
	if !ok {
		return nil
	}
	return pty.Setsize(f, size.winsize())
}
