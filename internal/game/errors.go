package game

// GameError is a coded game-rule violation. Codes are stable strings the
// transport layer maps onto HTTP statuses; messages are for humans.
type GameError struct {
	Code    string
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

var (
	ErrRoomNotFound           = &GameError{Code: "room_not_found", Message: "room not found"}
	ErrRoomFull               = &GameError{Code: "room_full", Message: "room is full"}
	ErrGameStarted            = &GameError{Code: "game_started", Message: "game already started"}
	ErrGameNotStarted         = &GameError{Code: "game_not_started", Message: "game has not started"}
	ErrGameFinished           = &GameError{Code: "game_finished", Message: "game is finished"}
	ErrNotEnoughPlayers       = &GameError{Code: "not_enough_players", Message: "need at least 2 players"}
	ErrWrongTurn              = &GameError{Code: "wrong_turn", Message: "not your turn"}
	ErrWrongPhase             = &GameError{Code: "wrong_phase", Message: "action does not match turn phase"}
	ErrSourceEmpty            = &GameError{Code: "source_empty", Message: "requested pile is empty"}
	ErrNoCardsAvailable       = &GameError{Code: "no_cards_available", Message: "no cards left to draw or recycle"}
	ErrCardNotInHand          = &GameError{Code: "card_not_in_hand", Message: "card is not in your hand"}
	ErrInvalidDeclaration     = &GameError{Code: "invalid_declaration", Message: "hand is not a winning declaration"}
	ErrAttemptedCardInjection = &GameError{Code: "card_injection", Message: "reordered hand does not match current hand"}
	ErrInvalidPlayer          = &GameError{Code: "invalid_player", Message: "no such player in this room"}
	ErrInvalidSource          = &GameError{Code: "invalid_source", Message: "draw source must be deck or discard"}
)
