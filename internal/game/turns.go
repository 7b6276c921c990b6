package game

import (
	"time"

	"github.com/cardroom/rummyd/internal/deck"
)

// Every gameplay operation follows the same shape: lock the room, resolve
// any turns whose deadline has already passed (the engine keeps no timers;
// elapsed time is reconciled only when some caller touches the room), then
// validate and apply the request. Validation failures leave the room
// unchanged apart from whatever the timeout sweep already did.

// Draw moves one card from the chosen pile into the acting player's hand
// and advances the turn phase to DISCARD. Drawing from the deck recycles
// the discard pile first when the draw pile is empty.
func (r *Room) Draw(playerIdx int, source DrawSource) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolveElapsedLocked()

	if err := r.checkTurnLocked(playerIdx, PhaseDraw); err != nil {
		return err
	}

	var card deck.Card
	switch source {
	case SourceDeck:
		if len(r.drawPile) == 0 {
			draw, kept, err := deck.Recycle(r.discardPile, r.rng)
			if err != nil {
				return ErrNoCardsAvailable
			}
			r.drawPile = draw
			r.discardPile = kept
			r.logger.Debug("recycled discard pile", "draw_pile", len(r.drawPile))
		}
		card = r.drawPile[len(r.drawPile)-1]
		r.drawPile = r.drawPile[:len(r.drawPile)-1]
	case SourceDiscard:
		if len(r.discardPile) == 0 {
			return ErrSourceEmpty
		}
		card = r.discardPile[len(r.discardPile)-1]
		r.discardPile = r.discardPile[:len(r.discardPile)-1]
	default:
		return ErrInvalidSource
	}

	r.players[playerIdx].Hand = append(r.players[playerIdx].Hand, card)
	r.phase = PhaseDiscard
	r.touch()
	return nil
}

// Discard removes the named card from the acting player's hand, puts it on
// top of the discard pile and passes the turn. Consecutive bot seats then
// play immediately.
func (r *Room) Discard(playerIdx int, cardID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolveElapsedLocked()

	if err := r.checkTurnLocked(playerIdx, PhaseDiscard); err != nil {
		return err
	}

	p := r.players[playerIdx]
	idx := -1
	for i, c := range p.Hand {
		if c.ID == cardID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrCardNotInHand
	}

	card := p.Hand[idx]
	p.Hand = append(p.Hand[:idx], p.Hand[idx+1:]...)
	r.discardPile = append(r.discardPile, card)

	r.advanceTurnLocked(r.clock.Now())
	r.touch()
	return nil
}

// Declare checks the acting player's 13-card hand in its current order. On
// success the room is finished permanently with the declarer recorded as
// winner; on failure nothing changes.
func (r *Room) Declare(playerIdx int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolveElapsedLocked()

	if r.status != StatusPlaying {
		if r.status == StatusFinished {
			return ErrGameFinished
		}
		return ErrGameNotStarted
	}
	if !r.playerIndexValid(playerIdx) {
		return ErrInvalidPlayer
	}
	if playerIdx != r.current {
		return ErrWrongTurn
	}

	p := r.players[playerIdx]
	if !ValidDeclaration(p.Hand, r.wildcard) {
		return ErrInvalidDeclaration
	}

	r.status = StatusFinished
	r.winner = p.Name
	r.touch()
	r.logger.Info("declaration accepted", "winner", p.Name)
	return nil
}

// Reorder replaces the player's hand arrangement with the requested card-id
// ordering. The new ordering must be a permutation of the current hand;
// anything added, removed or substituted is rejected. Turn state is not
// affected, and any seated player may reorder at any time during play.
func (r *Room) Reorder(playerIdx int, cardIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolveElapsedLocked()

	if r.status != StatusPlaying {
		if r.status == StatusFinished {
			return ErrGameFinished
		}
		return ErrGameNotStarted
	}
	if !r.playerIndexValid(playerIdx) {
		return ErrInvalidPlayer
	}

	p := r.players[playerIdx]
	if len(cardIDs) != len(p.Hand) {
		return ErrAttemptedCardInjection
	}

	byID := make(map[string]deck.Card, len(p.Hand))
	for _, c := range p.Hand {
		byID[c.ID] = c
	}

	reordered := make([]deck.Card, 0, len(cardIDs))
	for _, id := range cardIDs {
		c, ok := byID[id]
		if !ok {
			return ErrAttemptedCardInjection
		}
		delete(byID, id) // card ids are shoe-unique, so each may appear once
		reordered = append(reordered, c)
	}

	p.Hand = reordered
	r.touch()
	return nil
}

// checkTurnLocked applies the common gameplay guards.
func (r *Room) checkTurnLocked(playerIdx int, want Phase) error {
	if r.status != StatusPlaying {
		if r.status == StatusFinished {
			return ErrGameFinished
		}
		return ErrGameNotStarted
	}
	if !r.playerIndexValid(playerIdx) {
		return ErrInvalidPlayer
	}
	if playerIdx != r.current {
		return ErrWrongTurn
	}
	if r.phase != want {
		return ErrWrongPhase
	}
	return nil
}

// advanceTurnLocked passes the turn to the next seat, resets the phase and
// deadline from the given base time, and runs any consecutive bot seats.
func (r *Room) advanceTurnLocked(base time.Time) {
	r.current = (r.current + 1) % len(r.players)
	r.phase = PhaseDraw
	r.deadline = base.Add(r.rules.TurnDuration)
	r.runBotsLocked()
}

// resolveElapsedLocked reconciles wall-clock time with the turn deadline.
// Each missed turn is forced: a player still in the DRAW phase simply loses
// the turn, a player who drew but never discarded auto-discards the last
// card in their hand. The deadline then advances by one turn duration so a
// long-unpolled room catches up one missed turn per iteration, bounded by
// the sweep limit. If the bound is hit with the deadline still in the past,
// the deadline is clamped forward so the room does not stall permanently.
func (r *Room) resolveElapsedLocked() {
	if r.status != StatusPlaying {
		return
	}

	resolved := 0
	for r.clock.Now().After(r.deadline) && resolved < r.rules.TimeoutLimit {
		p := r.players[r.current]
		if r.phase == PhaseDiscard {
			// The draw already happened; force out the last card in hand
			// order so the hand returns to 13.
			last := p.Hand[len(p.Hand)-1]
			p.Hand = p.Hand[:len(p.Hand)-1]
			r.discardPile = append(r.discardPile, last)
			r.logger.Debug("turn timed out, auto-discarded", "player", p.Name, "card", last.String())
		} else {
			r.logger.Debug("turn timed out, skipped", "player", p.Name)
		}
		r.advanceTurnLocked(r.deadline)
		resolved++

		if r.status != StatusPlaying {
			return
		}
	}

	if resolved == r.rules.TimeoutLimit && r.clock.Now().After(r.deadline) {
		r.deadline = r.clock.Now().Add(r.rules.TurnDuration)
	}
	if resolved > 0 {
		r.touch()
	}
}
