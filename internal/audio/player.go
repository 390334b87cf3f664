// Package audio models playback of project audio tracks as a small
// state machine over a pluggable playback backend.
package audio

import (
	"context"
	"sync"
)

// State is the player's current display state.
type State int

const (
	// StateIdle means nothing has been played yet.
	StateIdle State = iota

	// StateUnlocking means the backend is being prepared for playback.
	StateUnlocking

	// StatePlaying means a track is playing.
	StatePlaying

	// StateStopped means playback ended or was stopped.
	StateStopped

	// StateBlocked means the backend refused to unlock; a later Play
	// retries the unlock.
	StateBlocked
)

// String returns a short display label for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateUnlocking:
		return "unlocking"
	case StatePlaying:
		return "playing"
	case StateStopped:
		return "stopped"
	case StateBlocked:
		return "blocked"
	default:
		return "unknown"
	}
}

// Backend performs the actual audio work.
//
// Unlock prepares the backend once before the first playback (for the
// exec backend, verifying the player binary exists). Play blocks until
// playback has started or failed; it does not wait for the track to
// finish. Stop ends any current playback.
type Backend interface {
	Unlock(ctx context.Context) error
	Play(ctx context.Context, url string) error
	Stop() error
}

// Player drives a Backend through the playback state machine.
//
// All transitions are user-triggered: Play moves through unlocking (on
// first use) into playing or blocked, Stop moves into stopped. Play
// blocks until playback starts or fails and returns the resulting
// terminal display state, so callers can render it directly.
type Player struct {
	mu       sync.Mutex
	backend  Backend
	state    State
	unlocked bool
	current  string
}

// NewPlayer creates a Player in the idle state.
func NewPlayer(backend Backend) *Player {
	return &Player{backend: backend, state: StateIdle}
}

// State returns the current display state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Current returns the URL of the track that is playing, or empty.
func (p *Player) Current() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StatePlaying {
		return ""
	}
	return p.current
}

// Play starts playback of the given URL, unlocking the backend first
// if needed, and returns the terminal state.
//
// A rejected unlock leaves the player blocked; the next Play attempts
// the unlock again. A failed play leaves the player stopped.
func (p *Player) Play(ctx context.Context, url string) (State, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.unlocked {
		p.state = StateUnlocking
		if err := p.backend.Unlock(ctx); err != nil {
			p.state = StateBlocked
			return p.state, err
		}
		p.unlocked = true
	}

	if err := p.backend.Play(ctx, url); err != nil {
		p.state = StateStopped
		return p.state, err
	}

	p.state = StatePlaying
	p.current = url
	return p.state, nil
}

// Stop ends playback and moves to the stopped state. Stopping an idle
// or blocked player is a no-op.
func (p *Player) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != StatePlaying {
		return nil
	}
	err := p.backend.Stop()
	p.state = StateStopped
	p.current = ""
	return err
}
