package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/exotended-backend/internal/entity"
)

func TestBotService_MakeTurn(t *testing.T) {
	t.Run("Plays the searched move on the game", func(t *testing.T) {
		// Given: player 1 can complete row 0 of sub-board 0
		game := entity.NewGameState()
		for _, move := range []entity.Move{
			{SubBoard: 0, Row: 0, Col: 0},
			{SubBoard: 0, Row: 1, Col: 1},
			{SubBoard: 4, Row: 1, Col: 1},
			{SubBoard: 4, Row: 0, Col: 0},
			{SubBoard: 0, Row: 0, Col: 1},
			{SubBoard: 1, Row: 0, Col: 0},
		} {
			require.NoError(t, game.ApplyMove(move.SubBoard, move.Row, move.Col))
		}

		botService := NewBotService(1)

		// When: the bot makes its turn
		move, err := botService.MakeTurn(game)

		// Then: the row is completed and the turn passes
		require.NoError(t, err)
		assert.Equal(t, entity.Move{SubBoard: 0, Row: 0, Col: 2}, move)
		assert.Equal(t, entity.Player1, game.Cell(0, 0, 2))
		assert.Equal(t, 1, game.Score(entity.Player1))
		assert.Equal(t, entity.Player2, game.CurrentPlayer())
	})

	t.Run("Falls back to the default depth", func(t *testing.T) {
		// Given: a bot configured without a depth
		botService := NewBotService(0)
		game := entity.NewGameState()

		// When: it opens the game
		move, err := botService.MakeTurn(game)

		// Then: a legal move is played
		require.NoError(t, err)
		assert.Equal(t, entity.Player1, game.Cell(move.SubBoard, move.Row, move.Col))
		assert.Equal(t, 1, game.MovesPlayed())
	})

	t.Run("Fails on a finished game", func(t *testing.T) {
		// Given: a finished game
		game := entity.NewGameState()
		for !game.IsEnded() {
			move := game.LegalMoves()[0]
			require.NoError(t, game.ApplyMove(move.SubBoard, move.Row, move.Col))
		}

		botService := NewBotService(2)

		// When: the bot is asked to move
		_, err := botService.MakeTurn(game)

		// Then: there is nothing to play
		require.ErrorIs(t, err, ErrNoAvailableMoves)
	})
}
