package pty

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"sync"
)

// Session is a running PTY process whose output is pumped into a channel
// by a reader goroutine, so a single-threaded UI can poll it.
type Session struct {
	runner Runner
	rwc    io.ReadWriteCloser
	cmd    *exec.Cmd

	mu   sync.Mutex
	size Size

	out       chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

// Spawn starts cmd through runner and begins reading its output.
func Spawn(ctx context.Context, runner Runner, cmd *exec.Cmd, size Size) (*Session, error) {
	rwc, err := runner.Start(ctx, cmd, size)
	if err != nil {
		return nil, fmt.Errorf("spawn %s: %w", cmd.Path, err)
	}
	s := &Session{
		runner: runner,
		rwc:    rwc,
		cmd:    cmd,
		size:   size,
		out:    make(chan []byte, 64),
		done:   make(chan struct{}),
	}
	go s.pump()
	return s, nil
}

// pump is the only sender on out. A full channel stalls the PTY read
// until the UI drains it or the session is closed.
func (s *Session) pump() {
	defer close(s.out)
	buf := make([]byte, 4096)
	for {
		n, err := s.rwc.Read(buf)
		if n > 0 {
			cp := make([]byte, n)
			copy(cp, buf[:n])
			select {
			case s.out <- cp:
			case <-s.done:
				return
			}
		}
		if err != nil {
			return
		}
	}
}

// Output yields chunks read from the PTY. It is closed when the process
// side of the PTY closes.
func (s *Session) Output() <-chan []byte { return s.out }

// Write sends input to the process.
func (s *Session) Write(p []byte) (int, error) { return s.rwc.Write(p) }

// Size returns the last size applied.
func (s *Session) Size() Size {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.size
}

// Resize applies size if it differs from the current one.
func (s *Session) Resize(size Size) error {
	if size.Rows == 0 || size.Cols == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if size == s.size {
		return nil
	}
	if err := s.runner.Resize(s.rwc, size); err != nil {
		return fmt.Errorf("resize pty: %w", err)
	}
	s.size = size
	return nil
}

// Close closes the PTY and kills the process if it is still running.
func (s *Session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		err = s.rwc.Close()
		if s.cmd != nil && s.cmd.Process != nil {
			_ = s.cmd.Process.Kill()
			_ = s.cmd.Wait()
		}
	})
	return err
}
