package game

// Bot turns run synchronously inside whichever human action or timeout
// sweep handed them the turn. The loop is bounded so a misconfigured
// all-bot room cannot spin forever inside one request.

// runBotsLocked plays consecutive bot seats until a human seat, an empty
// table, or the chain limit is reached. Each bot takes one full turn:
// greedy draw (prefer the draw pile, fall back to the top discard), then a
// uniformly random discard.
func (r *Room) runBotsLocked() {
	for i := 0; i < r.rules.BotChainLimit; i++ {
		if r.status != StatusPlaying {
			return
		}
		p := r.players[r.current]
		if !p.Bot {
			return
		}
		if !r.botTurnLocked(p) {
			// Nothing left to draw anywhere; stop the chain without
			// consuming the turn.
			return
		}
		r.advanceBotTurnLocked()
	}
	r.logger.Warn("bot chain limit reached", "limit", r.rules.BotChainLimit)
	// Give whoever is current a fresh clock rather than an already-expired
	// deadline.
	r.deadline = r.clock.Now().Add(r.rules.TurnDuration)
}

// botTurnLocked performs one bot draw+discard. Returns false if both piles
// were empty and no move was possible.
func (r *Room) botTurnLocked(p *Player) bool {
	switch {
	case len(r.drawPile) > 0:
		p.Hand = append(p.Hand, r.drawPile[len(r.drawPile)-1])
		r.drawPile = r.drawPile[:len(r.drawPile)-1]
	case len(r.discardPile) > 0:
		p.Hand = append(p.Hand, r.discardPile[len(r.discardPile)-1])
		r.discardPile = r.discardPile[:len(r.discardPile)-1]
	default:
		return false
	}

	di := r.rng.IntN(len(p.Hand))
	card := p.Hand[di]
	p.Hand = append(p.Hand[:di], p.Hand[di+1:]...)
	r.discardPile = append(r.discardPile, card)

	r.logger.Debug("bot played", "player", p.Name, "discarded", card.String())
	return true
}

// advanceBotTurnLocked passes the turn after a bot move without re-entering
// the chain loop; runBotsLocked owns the iteration and its bound.
func (r *Room) advanceBotTurnLocked() {
	r.current = (r.current + 1) % len(r.players)
	r.phase = PhaseDraw
	r.deadline = r.clock.Now().Add(r.rules.TurnDuration)
}
