// Package game implements the authoritative state machine for one rummy
// room: turn and phase sequencing, the deck/discard lifecycle, meld
// validation for win declarations, lazy timeout resolution and synchronous
// bot turns. All mutation goes through Room methods; each method runs to
// completion under the room mutex, so operations on one room are atomic
// with respect to each other while distinct rooms proceed in parallel.
package game

import (
	"fmt"
	rand "math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/cardroom/rummyd/internal/deck"
)

// Status is the room lifecycle state.
type Status int

const (
	StatusWaiting Status = iota
	StatusPlaying
	StatusFinished
)

func (s Status) String() string {
	switch s {
	case StatusWaiting:
		return "WAITING"
	case StatusPlaying:
		return "PLAYING"
	case StatusFinished:
		return "FINISHED"
	default:
		return "UNKNOWN"
	}
}

// Phase is the two-step structure of one turn. It is meaningful only while
// the room is StatusPlaying.
type Phase int

const (
	PhaseDraw Phase = iota
	PhaseDiscard
)

func (p Phase) String() string {
	if p == PhaseDiscard {
		return "DISCARD"
	}
	return "DRAW"
}

// DrawSource selects which pile a draw takes from. The wire values match
// the client protocol.
type DrawSource string

const (
	SourceDeck    DrawSource = "deck"
	SourceDiscard DrawSource = "discard"
)

// Player is one seat in the room. Hand order is meaningful: declarations
// are checked against the hand's current arrangement, which the player
// controls via Reorder.
type Player struct {
	Name string
	Hand []deck.Card
	Bot  bool
}

// Rules are the per-room tunables. Zero values are replaced by defaults in
// NewRoom.
type Rules struct {
	TurnDuration  time.Duration // time each player has per turn
	BotChainLimit int           // max consecutive bot turns per operation
	TimeoutLimit  int           // max missed turns resolved per sweep
	MaxPlayers    int
	DeckOverride  int // fixed shoe size in decks; 0 means size by player count
}

const (
	defaultTurnDuration  = 30 * time.Second
	defaultBotChainLimit = 10
	defaultTimeoutLimit  = 10
	defaultMaxPlayers    = 6
)

func (r Rules) withDefaults() Rules {
	if r.TurnDuration <= 0 {
		r.TurnDuration = defaultTurnDuration
	}
	if r.BotChainLimit <= 0 {
		r.BotChainLimit = defaultBotChainLimit
	}
	if r.TimeoutLimit <= 0 {
		r.TimeoutLimit = defaultTimeoutLimit
	}
	if r.MaxPlayers <= 0 {
		r.MaxPlayers = defaultMaxPlayers
	}
	return r
}

// Room is the aggregate for one game session. The card-id multiset across
// drawPile, discardPile and all hands is fixed at deal time and conserved
// for the life of the room.
type Room struct {
	ID string

	mu          sync.Mutex
	status      Status
	phase       Phase
	current     int
	deadline    time.Time
	drawPile    []deck.Card
	discardPile []deck.Card // top of pile is the last element
	wildcard    deck.Rank
	players     []*Player
	winner      string
	touched     time.Time

	rules  Rules
	clock  quartz.Clock
	rng    *rand.Rand
	logger *log.Logger
}

// NewRoom creates an empty WAITING room.
func NewRoom(id string, rules Rules, clock quartz.Clock, rng *rand.Rand, logger *log.Logger) *Room {
	return &Room{
		ID:      id,
		status:  StatusWaiting,
		rules:   rules.withDefaults(),
		clock:   clock,
		rng:     rng,
		logger:  logger.WithPrefix("room").With("room_id", id),
		touched: clock.Now(),
	}
}

// AddPlayer seats a player while the room is still waiting and returns
// their seat index.
func (r *Room) AddPlayer(name string, bot bool) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.status != StatusWaiting {
		return 0, ErrGameStarted
	}
	if len(r.players) >= r.rules.MaxPlayers {
		return 0, ErrRoomFull
	}
	if name == "" {
		name = fmt.Sprintf("Player %d", len(r.players)+1)
	}
	r.players = append(r.players, &Player{Name: name, Bot: bot})
	r.touch()
	return len(r.players) - 1, nil
}

// Start deals and moves the room to PLAYING. If fillSeats is greater than
// the number of seated players, bots are added to make up the difference
// before dealing. At least two seats are required.
func (r *Room) Start(fillSeats int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.status {
	case StatusPlaying:
		return ErrGameStarted
	case StatusFinished:
		return ErrGameFinished
	}

	seated := len(r.players)
	for i := seated; i < fillSeats && i < r.rules.MaxPlayers; i++ {
		r.players = append(r.players, &Player{
			Name: fmt.Sprintf("Bot %d", i-seated+1),
			Bot:  true,
		})
	}
	if len(r.players) < 2 {
		return ErrNotEnoughPlayers
	}

	decks := r.rules.DeckOverride
	if decks <= 0 {
		decks = deck.DecksFor(len(r.players))
	}

	shoe := deck.NewShuffled(decks, r.rng)
	hands, rest, err := deck.Deal(shoe, len(r.players), handSize)
	if err != nil {
		return err
	}
	for i, p := range r.players {
		p.Hand = hands[i]
	}

	indicator, seed, rest, err := deck.Reveal(rest)
	if err != nil {
		return err
	}
	r.wildcard = deck.WildcardRank(indicator)
	r.drawPile = rest
	r.discardPile = []deck.Card{seed}

	r.status = StatusPlaying
	r.phase = PhaseDraw
	r.current = 0
	r.deadline = r.clock.Now().Add(r.rules.TurnDuration)
	r.touch()

	r.logger.Info("game started",
		"players", len(r.players),
		"decks", decks,
		"wildcard", r.wildcard.String())
	return nil
}

// Wildcard returns the session wildcard rank.
func (r *Room) Wildcard() deck.Rank {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.wildcard
}

// IdleSince reports when the room was last touched by any operation. Used
// by the store's eviction sweep.
func (r *Room) IdleSince() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.touched
}

// Status returns the current lifecycle state, resolving elapsed turns
// first like every other read.
func (r *Room) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolveElapsedLocked()
	return r.status
}

func (r *Room) touch() {
	r.touched = r.clock.Now()
}

func (r *Room) playerIndexValid(idx int) bool {
	return idx >= 0 && idx < len(r.players)
}
