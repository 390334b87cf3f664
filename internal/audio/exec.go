package audio

import (
	"context"
	"fmt"
	"os/exec"
	"sync"
)

// ExecBackend plays audio URLs by spawning an external player command
// such as mpv, ffplay or afplay.
type ExecBackend struct {
	// Command is the player binary name or path.
	Command string

	// Args are passed before the URL, e.g. ["--no-video"].
	Args []string

	mu  sync.Mutex
	cmd *exec.Cmd
}

// NewExecBackend creates a backend for the given player command.
func NewExecBackend(command string, args ...string) *ExecBackend {
	return &ExecBackend{Command: command, Args: args}
}

// Unlock verifies the player binary is available on PATH.
func (b *ExecBackend) Unlock(_ context.Context) error {
	if b.Command == "" {
		return fmt.Errorf("no player command configured")
	}
	if _, err := exec.LookPath(b.Command); err != nil {
		return fmt.Errorf("player %q not available: %w", b.Command, err)
	}
	return nil
}

// Play stops any current playback and starts the player process for
// the URL. It returns once the process has started; the track keeps
// playing in the background.
func (b *ExecBackend) Play(ctx context.Context, url string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.stopLocked()

	args := append(append([]string{}, b.Args...), url)
	cmd := exec.CommandContext(ctx, b.Command, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start player: %w", err)
	}
	b.cmd = cmd

	// Reap the process when the track ends so it doesn't linger as a
	// zombie.
	go func() { _ = cmd.Wait() }()

	return nil
}

// Stop kills the current player process, if any.
func (b *ExecBackend) Stop() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopLocked()
	return nil
}

func (b *ExecBackend) stopLocked() {
	if b.cmd != nil && b.cmd.Process != nil {
		_ = b.cmd.Process.Kill()
	}
	b.cmd = nil
}
