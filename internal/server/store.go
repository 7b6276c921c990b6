package server

import (
	"context"
	rand "math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/cardroom/rummyd/internal/game"
	"github.com/cardroom/rummyd/internal/randutil"
)

// RoomStore owns the set of live rooms. It replaces the ad-hoc global room
// map of older iterations with an explicit object that has a defined
// creation and eviction lifecycle. Rooms are fully independent of one
// another; the store lock only guards the map itself, each room serializes
// its own operations.
type RoomStore struct {
	mu     sync.RWMutex
	rooms  map[string]*game.Room
	rules  game.Rules
	clock  quartz.Clock
	rng    *rand.Rand
	seedMu sync.Mutex
	logger *log.Logger
}

// NewRoomStore constructs an empty store. The rng seeds per-room sources so
// rooms do not share one stream.
func NewRoomStore(rules game.Rules, clock quartz.Clock, rng *rand.Rand, logger *log.Logger) *RoomStore {
	return &RoomStore{
		rooms:  make(map[string]*game.Room),
		rules:  rules,
		clock:  clock,
		rng:    rng,
		logger: logger.WithPrefix("store"),
	}
}

// Create makes a new empty room and registers it under a fresh id.
func (s *RoomStore) Create() *game.Room {
	id := uuid.NewString()

	s.seedMu.Lock()
	roomRNG := randutil.New(int64(s.rng.Uint64()))
	s.seedMu.Unlock()

	room := game.NewRoom(id, s.rules, s.clock, roomRNG, s.logger)

	s.mu.Lock()
	s.rooms[id] = room
	s.mu.Unlock()

	s.logger.Info("room created", "room_id", id)
	return room
}

// Get returns the room for an id.
func (s *RoomStore) Get(id string) (*game.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[id]
	if !ok {
		return nil, game.ErrRoomNotFound
	}
	return room, nil
}

// Remove deletes a room by id.
func (s *RoomStore) Remove(id string) {
	s.mu.Lock()
	delete(s.rooms, id)
	s.mu.Unlock()
}

// Len reports the number of live rooms.
func (s *RoomStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}

// EvictIdle removes rooms untouched for longer than ttl and returns how
// many were dropped. A ttl of zero disables eviction. The sweep never
// advances game state; it only forgets rooms nobody is using.
func (s *RoomStore) EvictIdle(ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}

	cutoff := s.clock.Now().Add(-ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, room := range s.rooms {
		if room.IdleSince().Before(cutoff) {
			delete(s.rooms, id)
			evicted++
			s.logger.Info("evicted idle room", "room_id", id)
		}
	}
	return evicted
}

// RunEviction sweeps at the given interval until the context is cancelled.
// Intended to run in its own goroutine from the daemon.
func (s *RoomStore) RunEviction(ctx context.Context, ttl, interval time.Duration) {
	if ttl <= 0 {
		return
	}
	ticker := s.clock.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.EvictIdle(ttl)
		case <-ctx.Done():
			return
		}
	}
}
