package service

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/exotended-backend/internal/entity"
	"github.com/rocketscienceinc/exotended-backend/internal/search"
)

var ErrNoAvailableMoves = errors.New("no available moves")

type BotService interface {
	MakeTurn(game *entity.GameState) (entity.Move, error)
}

type botService struct {
	depth int
}

func NewBotService(depth int) BotService {
	if depth <= 0 {
		depth = search.DefaultDepth
	}

	return &botService{
		depth: depth,
	}
}

// MakeTurn plays the searched move for whichever side is to move.
func (that *botService) MakeTurn(game *entity.GameState) (entity.Move, error) {
	move, ok := search.FindBestMove(game, that.depth)
	if !ok {
		return entity.Move{}, ErrNoAvailableMoves
	}

	if err := game.ApplyMove(move.SubBoard, move.Row, move.Col); err != nil {
		return entity.Move{}, fmt.Errorf("bot failed to make turn: %w", err)
	}

	return move, nil
}
