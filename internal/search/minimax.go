// Package search picks moves for the automated player with depth limited minimax and alpha-beta pruning.
package search

import (
	"math"

	"github.com/rocketscienceinc/exotended-backend/internal/entity"
)

const DefaultDepth = 4

// FindBestMove returns the move with the highest minimax score for the player to move.
// The first move reaching the best score wins ties. The state itself is never mutated.
func FindBestMove(state *entity.GameState, depth int) (entity.Move, bool) {
	maximizing := state.CurrentPlayer()

	bestScore := math.MinInt
	var bestMove entity.Move
	found := false

	for _, move := range state.LegalMoves() {
		clone := state.Clone()
		if err := clone.ApplyMove(move.SubBoard, move.Row, move.Col); err != nil {
			continue
		}

		score := minimax(clone, depth-1, math.MinInt, math.MaxInt, maximizing)
		if !found || score > bestScore {
			bestScore = score
			bestMove = move
			found = true
		}
	}

	return bestMove, found
}

func minimax(state *entity.GameState, depth, alpha, beta int, maximizing entity.Player) int {
	if depth <= 0 || state.IsEnded() {
		return evaluate(state, maximizing)
	}

	moves := state.LegalMoves()
	if len(moves) == 0 {
		return evaluate(state, maximizing)
	}

	if state.CurrentPlayer() == maximizing {
		best := math.MinInt
		for _, move := range moves {
			best = max(best, minimax(child(state, move), depth-1, alpha, beta, maximizing))
			alpha = max(alpha, best)

			if beta <= alpha {
				break
			}
		}

		return best
	}

	best := math.MaxInt
	for _, move := range moves {
		best = min(best, minimax(child(state, move), depth-1, alpha, beta, maximizing))
		beta = min(beta, best)

		if beta <= alpha {
			break
		}
	}

	return best
}

// child applies a move produced by LegalMoves to a copy, so it cannot be rejected.
func child(state *entity.GameState, move entity.Move) *entity.GameState {
	clone := state.Clone()
	_ = clone.ApplyMove(move.SubBoard, move.Row, move.Col)
	return clone
}

// evaluate is the claimed line differential from the maximizing player's side.
func evaluate(state *entity.GameState, maximizing entity.Player) int {
	return state.Score(maximizing) - state.Score(maximizing.Opponent())
}
