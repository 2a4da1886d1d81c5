// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package phase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/danielhkuo/quickly-judge/models"
)

var ErrUnknownPhase = errors.New("unknown phase")

// Persister stores the current phase across restarts.
type Persister interface {
	LoadPhase(ctx context.Context) (models.Phase, error)
	SavePhase(ctx context.Context, p models.Phase) error
}

// Manager holds the server-wide judging phase and fans changes out to
// subscribers.
type Manager struct {
	mu        sync.RWMutex
	current   models.Phase
	persister Persister
	subs      map[int]chan models.Phase
	nextSub   int
}

// NewManager restores the persisted phase. A nil persister keeps the phase
// in memory only, starting at expo.
func NewManager(ctx context.Context, persister Persister) (*Manager, error) {
	m := &Manager{
		current:   models.PhaseExpo,
		persister: persister,
		subs:      make(map[int]chan models.Phase),
	}

	if persister != nil {
		p, err := persister.LoadPhase(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to restore phase: %w", err)
		}
		m.current = p
	}

	return m, nil
}

func (m *Manager) Current() models.Phase {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Set changes the phase. Setting the current phase again is a no-op and
// does not notify subscribers.
func (m *Manager) Set(ctx context.Context, p models.Phase) error {
	if !p.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownPhase, p)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if p == m.current {
		return nil
	}

	if m.persister != nil {
		if err := m.persister.SavePhase(ctx, p); err != nil {
			return err
		}
	}

	slog.Info("phase changed", "from", m.current, "to", p)
	m.current = p

	for _, ch := range m.subs {
		// Subscribers only care about the latest phase.
		select {
		case <-ch:
		default:
		}
		ch <- p
	}

	return nil
}

// Subscribe returns a channel that receives each new phase and a cancel
// func that must be called to release it.
func (m *Manager) Subscribe() (<-chan models.Phase, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextSub
	m.nextSub++
	ch := make(chan models.Phase, 1)
	m.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			delete(m.subs, id)
			close(ch)
		})
	}

	return ch, cancel
}

// Subscribers returns the number of live subscriptions.
func (m *Manager) Subscribers() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subs)
}
