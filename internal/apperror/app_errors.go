package apperror

import "errors"

var (
	ErrIllegalMove    = errors.New("illegal move")
	ErrMalformedToken = errors.New("malformed game token")

	ErrGameFinished   = errors.New("game is already finished")
	ErrWrongSubBoard  = errors.New("move must be played in the constrained sub-board")
	ErrInvalidCell    = errors.New("invalid cell index")
	ErrCellOccupied   = errors.New("cell is already occupied")
	ErrNotYourTurn    = errors.New("it's not your turn")
	ErrNoActiveGames  = errors.New("no active games")
	ErrNotParticipant = errors.New("you were not part of this game")
)
