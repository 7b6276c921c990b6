package server

import (
	"github.com/charmbracelet/log"

	"github.com/cardroom/rummyd/internal/game"
)

// Service exposes the engine's operations to the transport layer with plain
// request/response semantics: every call names a room, the room resolves
// elapsed turns before anything else, and the caller gets back a full
// snapshot or a coded error.
type Service struct {
	store  *RoomStore
	logger *log.Logger
}

// NewService wires a service over a room store.
func NewService(store *RoomStore, logger *log.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger.WithPrefix("service"),
	}
}

// CreateRoom opens a new room and seats the creator at index 0.
func (s *Service) CreateRoom(hostName string) (game.Snapshot, int, error) {
	room := s.store.Create()
	seat, err := room.AddPlayer(hostName, false)
	if err != nil {
		return game.Snapshot{}, 0, err
	}
	return room.Snapshot(), seat, nil
}

// JoinRoom seats a player in a waiting room and returns their seat index.
func (s *Service) JoinRoom(roomID, name string) (game.Snapshot, int, error) {
	room, err := s.store.Get(roomID)
	if err != nil {
		return game.Snapshot{}, 0, err
	}
	seat, err := room.AddPlayer(name, false)
	if err != nil {
		return game.Snapshot{}, 0, err
	}
	return room.Snapshot(), seat, nil
}

// StartGame deals and begins play. fillSeats above the current seat count
// is made up with bots, which is how singleplayer rooms work.
func (s *Service) StartGame(roomID string, fillSeats int) (game.Snapshot, error) {
	room, err := s.store.Get(roomID)
	if err != nil {
		return game.Snapshot{}, err
	}
	if err := room.Start(fillSeats); err != nil {
		return game.Snapshot{}, err
	}
	return room.Snapshot(), nil
}

// GetState returns the room snapshot. This is a side-effecting read: it is
// the poll that makes a neglected room catch up with its deadlines.
func (s *Service) GetState(roomID string) (game.Snapshot, error) {
	room, err := s.store.Get(roomID)
	if err != nil {
		return game.Snapshot{}, err
	}
	return room.Snapshot(), nil
}

// Draw performs the DRAW half of a turn.
func (s *Service) Draw(roomID string, playerIdx int, source game.DrawSource) (game.Snapshot, error) {
	room, err := s.store.Get(roomID)
	if err != nil {
		return game.Snapshot{}, err
	}
	if err := room.Draw(playerIdx, source); err != nil {
		return game.Snapshot{}, err
	}
	return room.Snapshot(), nil
}

// Discard performs the DISCARD half of a turn and passes play onward.
func (s *Service) Discard(roomID string, playerIdx int, cardID string) (game.Snapshot, error) {
	room, err := s.store.Get(roomID)
	if err != nil {
		return game.Snapshot{}, err
	}
	if err := room.Discard(playerIdx, cardID); err != nil {
		return game.Snapshot{}, err
	}
	return room.Snapshot(), nil
}

// Declare attempts a winning show for the acting player.
func (s *Service) Declare(roomID string, playerIdx int) (game.Snapshot, error) {
	room, err := s.store.Get(roomID)
	if err != nil {
		return game.Snapshot{}, err
	}
	if err := room.Declare(playerIdx); err != nil {
		return game.Snapshot{}, err
	}
	return room.Snapshot(), nil
}

// Reorder rearranges the player's own hand.
func (s *Service) Reorder(roomID string, playerIdx int, cardIDs []string) error {
	room, err := s.store.Get(roomID)
	if err != nil {
		return err
	}
	return room.Reorder(playerIdx, cardIDs)
}
