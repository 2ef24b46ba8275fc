// Package store keeps chess games in memory and serializes access to
// each of them.
package store

import (
	"bytes"
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/exp/slices"

	chess "github.com/chesscore/rules"
)

var (
	// ErrNotFound is returned for an id that names no game.
	ErrNotFound = errors.New("store: game not found")
	// ErrFull is returned by Create once the game limit is reached.
	ErrFull = errors.New("store: game limit reached")
)

// Store is a registry of running games addressed by id.
type Store interface {
	// Create registers a new game built with the given options.
	Create(ctx context.Context, options ...func(*chess.Game)) (uuid.UUID, error)
	// Do runs fn with exclusive access to the game.
	Do(ctx context.Context, id uuid.UUID, fn func(*chess.Game) error) error
	// View runs fn with shared access to the game. fn must not modify it.
	View(ctx context.Context, id uuid.UUID, fn func(*chess.Game) error) error
	// Delete forgets the game.
	Delete(ctx context.Context, id uuid.UUID) error
	// Len returns the number of registered games.
	Len() int
}

type entry struct {
	mu   sync.RWMutex
	game *chess.Game
}

// Memory is a Store backed by a map.
type Memory struct {
	mu       sync.RWMutex
	games    map[uuid.UUID]*entry
	maxGames int
	log      zerolog.Logger
}

var _ Store = (*Memory)(nil)

// MaxGames caps the number of games a Memory store holds. Zero or a
// negative n means no limit.
func MaxGames(n int) func(*Memory) {
	return func(m *Memory) {
		m.maxGames = n
	}
}

// NewMemory returns an empty store that logs to log.
func NewMemory(log zerolog.Logger, options ...func(*Memory)) *Memory {
	m := &Memory{
		games: make(map[uuid.UUID]*entry),
		log:   log,
	}
	for _, f := range options {
		f(m)
	}
	return m
}

func (m *Memory) Create(ctx context.Context, options ...func(*chess.Game)) (uuid.UUID, error) {
	if err := ctx.Err(); err != nil {
		return uuid.Nil, err
	}
	g := chess.NewGame(options...)
	id := uuid.New()

	m.mu.Lock()
	if m.maxGames > 0 && len(m.games) >= m.maxGames {
		m.mu.Unlock()
		m.log.Warn().Int("max_games", m.maxGames).Msg("game limit reached")
		return uuid.Nil, ErrFull
	}
	m.games[id] = &entry{game: g}
	n := len(m.games)
	m.mu.Unlock()

	m.log.Info().Str("id", id.String()).Str("fen", g.FEN()).Int("games", n).Msg("game created")
	return id, nil
}

func (m *Memory) lookup(ctx context.Context, id uuid.UUID) (*entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	e, ok := m.games[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return e, nil
}

func (m *Memory) Do(ctx context.Context, id uuid.UUID, fn func(*chess.Game) error) error {
	e, err := m.lookup(ctx, id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(e.game)
}

func (m *Memory) View(ctx context.Context, id uuid.UUID, fn func(*chess.Game) error) error {
	e, err := m.lookup(ctx, id)
	if err != nil {
		return err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(e.game)
}

func (m *Memory) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	_, ok := m.games[id]
	delete(m.games, id)
	m.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	m.log.Info().Str("id", id.String()).Msg("game deleted")
	return nil
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

// IDs returns the ids of all registered games in byte order.
func (m *Memory) IDs() []uuid.UUID {
	m.mu.RLock()
	ids := make([]uuid.UUID, 0, len(m.games))
	for id := range m.games {
		ids = append(ids, id)
	}
	m.mu.RUnlock()

	slices.SortFunc(ids, func(a, b uuid.UUID) int {
		return bytes.Compare(a[:], b[:])
	})
	return ids
}
