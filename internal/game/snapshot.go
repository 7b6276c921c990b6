package game

import (
	"time"

	"github.com/cardroom/rummyd/internal/deck"
)

// PlayerView is one seat as it appears in a snapshot.
type PlayerView struct {
	Index int         `json:"index"`
	Name  string      `json:"name"`
	Bot   bool        `json:"is_ai"`
	Hand  []deck.Card `json:"hand"`
}

// Snapshot is the full client-facing view of a room. Every hand is
// included; only the draw pile is reduced to a count so undrawn cards stay
// unknown. Any future redaction of opponent hands would happen here.
type Snapshot struct {
	RoomID      string       `json:"room_id"`
	Status      string       `json:"status"`
	Phase       string       `json:"turn_phase,omitempty"`
	Current     int          `json:"current_player_index"`
	Deadline    time.Time    `json:"turn_deadline,omitzero"`
	Wildcard    string       `json:"wildcard,omitempty"`
	Players     []PlayerView `json:"players"`
	DiscardPile []deck.Card  `json:"discard_pile"`
	DrawCount   int          `json:"deck_count"`
	Winner      string       `json:"winner,omitempty"`
}

// Snapshot captures the room state for a polling client. Like every other
// operation it resolves elapsed turns first, so a poll is the moment a
// neglected room catches up with the clock.
func (r *Room) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolveElapsedLocked()
	r.touch()

	snap := Snapshot{
		RoomID:    r.ID,
		Status:    r.status.String(),
		Current:   r.current,
		DrawCount: len(r.drawPile),
		Winner:    r.winner,
	}
	if r.status == StatusPlaying {
		snap.Phase = r.phase.String()
		snap.Deadline = r.deadline
	}
	if r.status != StatusWaiting {
		snap.Wildcard = r.wildcard.String()
		snap.DiscardPile = append([]deck.Card(nil), r.discardPile...)
	}
	snap.Players = make([]PlayerView, len(r.players))
	for i, p := range r.players {
		snap.Players[i] = PlayerView{
			Index: i,
			Name:  p.Name,
			Bot:   p.Bot,
			Hand:  append([]deck.Card(nil), p.Hand...),
		}
	}
	return snap
}
