package search

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/exotended-backend/internal/entity"
)

func play(t *testing.T, state *entity.GameState, moves ...entity.Move) {
	t.Helper()

	for _, move := range moves {
		require.NoError(t, state.ApplyMove(move.SubBoard, move.Row, move.Col), "move %+v", move)
	}
}

// randomState plays seeded random legal moves from a fresh game.
func randomState(t *testing.T, seed int64, moves int) *entity.GameState {
	t.Helper()

	rng := rand.New(rand.NewSource(seed)) //nolint: gosec // deterministic test data
	state := entity.NewGameState()
	for !state.IsEnded() && state.MovesPlayed() < moves {
		legal := state.LegalMoves()
		play(t, state, legal[rng.Intn(len(legal))])
	}

	return state
}

// exhaustive is minimax without pruning, the reference for the pruned search.
func exhaustive(state *entity.GameState, depth int, maximizing entity.Player) int {
	moves := state.LegalMoves()
	if depth <= 0 || state.IsEnded() || len(moves) == 0 {
		return evaluate(state, maximizing)
	}

	isMax := state.CurrentPlayer() == maximizing
	best := math.MaxInt
	if isMax {
		best = math.MinInt
	}

	for _, move := range moves {
		score := exhaustive(child(state, move), depth-1, maximizing)
		if isMax {
			best = max(best, score)
		} else {
			best = min(best, score)
		}
	}

	return best
}

func TestFindBestMove(t *testing.T) {
	t.Run("Completes a line when one is available", func(t *testing.T) {
		// Given: player 1 holds two cells of row 0 in sub-board 0 and must play there
		state := entity.NewGameState()
		play(t, state,
			entity.Move{SubBoard: 0, Row: 0, Col: 0},
			entity.Move{SubBoard: 0, Row: 1, Col: 1},
			entity.Move{SubBoard: 4, Row: 1, Col: 1},
			entity.Move{SubBoard: 4, Row: 0, Col: 0},
			entity.Move{SubBoard: 0, Row: 0, Col: 1},
			entity.Move{SubBoard: 1, Row: 0, Col: 0},
		)

		for _, depth := range []int{1, 2, 3} {
			// When: searching for player 1
			move, ok := FindBestMove(state, depth)

			// Then: the row is completed
			require.True(t, ok)
			assert.Equal(t, entity.Move{SubBoard: 0, Row: 0, Col: 2}, move, "depth %d", depth)
		}
	})

	t.Run("Returns the only legal move at any depth", func(t *testing.T) {
		// Given: one empty cell left on the board
		state := randomState(t, 3, entity.CellCount-1)
		require.Len(t, state.LegalMoves(), 1)
		only := state.LegalMoves()[0]

		for depth := 1; depth <= 5; depth++ {
			// When: searching deeper and deeper
			move, ok := FindBestMove(state, depth)

			// Then: that move is returned
			require.True(t, ok)
			assert.Equal(t, only, move)
		}
	})

	t.Run("No move on a finished game", func(t *testing.T) {
		// Given: a finished game
		state := randomState(t, 11, entity.CellCount)
		require.True(t, state.IsEnded())

		// When: searching
		move, ok := FindBestMove(state, DefaultDepth)

		// Then: there is nothing to play
		assert.False(t, ok)
		assert.Equal(t, entity.Move{}, move)
	})

	t.Run("Same answer on every call and no side effects", func(t *testing.T) {
		// Given: a game in progress
		state := randomState(t, 5, 30)
		before := state.Clone()

		// When: searching twice
		first, ok := FindBestMove(state, 3)
		require.True(t, ok)
		second, _ := FindBestMove(state, 3)

		// Then: the answers match and the state is untouched
		assert.Equal(t, first, second)
		assert.Equal(t, before, state)
	})

	t.Run("First move wins ties", func(t *testing.T) {
		// Given: an opening where nothing can be claimed within two plies
		state := entity.NewGameState()

		// When: searching
		move, ok := FindBestMove(state, 2)

		// Then: the first legal move is kept
		require.True(t, ok)
		assert.Equal(t, state.LegalMoves()[0], move)
	})

	t.Run("Non positive depth evaluates children directly", func(t *testing.T) {
		state := entity.NewGameState()

		move, ok := FindBestMove(state, 0)

		require.True(t, ok)
		assert.Equal(t, state.LegalMoves()[0], move)
	})
}

func TestFindBestMove_MatchesExhaustiveSearch(t *testing.T) {
	for seed := range int64(8) {
		for _, plies := range []int{10, 25, 40, 60} {
			// Given: a random position
			state := randomState(t, seed, plies)
			if state.IsEnded() {
				continue
			}

			depth := 2
			if len(state.LegalMoves()) <= 9 {
				depth = 3
			}

			// When: searching with pruning
			move, ok := FindBestMove(state, depth)
			require.True(t, ok)

			// Then: it picks the first move with the best exhaustive score
			maximizing := state.CurrentPlayer()
			var expected entity.Move
			bestScore := math.MinInt
			for i, candidate := range state.LegalMoves() {
				score := exhaustive(child(state, candidate), depth-1, maximizing)
				if i == 0 || score > bestScore {
					bestScore = score
					expected = candidate
				}
			}

			assert.Equal(t, expected, move, "seed %d, plies %d", seed, plies)

			// And: pruning never changes a node's value
			for _, candidate := range state.LegalMoves() {
				next := child(state, candidate)
				assert.Equal(t,
					exhaustive(next, depth-1, maximizing),
					minimax(next, depth-1, math.MinInt, math.MaxInt, maximizing),
				)
			}
		}
	}
}

func TestEvaluate(t *testing.T) {
	// Given: player 1 claimed row 0 of sub-board 0
	state := entity.NewGameState()
	play(t, state,
		entity.Move{SubBoard: 0, Row: 0, Col: 0},
		entity.Move{SubBoard: 0, Row: 1, Col: 1},
		entity.Move{SubBoard: 4, Row: 1, Col: 1},
		entity.Move{SubBoard: 4, Row: 0, Col: 0},
		entity.Move{SubBoard: 0, Row: 0, Col: 1},
		entity.Move{SubBoard: 1, Row: 0, Col: 0},
		entity.Move{SubBoard: 0, Row: 0, Col: 2},
	)

	// Then: the differential is seen from either side
	assert.Equal(t, 1, evaluate(state, entity.Player1))
	assert.Equal(t, -1, evaluate(state, entity.Player2))
}
