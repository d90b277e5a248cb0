package entity

import (
	"fmt"

	"github.com/rocketscienceinc/exotended-backend/internal/apperror"
)

const (
	SubBoardCount = 9
	SubBoardSize  = 3
	CellCount     = SubBoardCount * SubBoardSize * SubBoardSize

	LinesPerSubBoard = 8
	LineCount        = SubBoardCount * LinesPerSubBoard
)

// Constraint is the sub-board the next move is bound to. The zero value is unconstrained.
type Constraint struct {
	index  int
	active bool
}

func Unconstrained() Constraint {
	return Constraint{}
}

func ConstrainedTo(index int) Constraint {
	return Constraint{index: index, active: true}
}

// SubBoard returns the constrained index and whether a constraint is set at all.
func (c Constraint) SubBoard() (int, bool) {
	return c.index, c.active
}

type Outcome int

const (
	Undecided Outcome = iota
	Player1Wins
	Player2Wins
	Tie
)

func (o Outcome) String() string {
	switch o {
	case Player1Wins:
		return "player 1 wins"
	case Player2Wins:
		return "player 2 wins"
	case Tie:
		return "tie"
	default:
		return "undecided"
	}
}

type Move struct {
	SubBoard int `json:"sub_board"`
	Row      int `json:"row"`
	Col      int `json:"col"`
}

// GameState is the whole eXOtended game. It only changes through ApplyMove.
type GameState struct {
	board   [SubBoardCount][SubBoardSize][SubBoardSize]Player
	current Player
	next    Constraint
	ended   bool
	score   [3]int
	claimed [LineCount]Player
	moves   int
}

func NewGameState() *GameState {
	return &GameState{
		current: Player1,
		next:    Unconstrained(),
	}
}

func (that *GameState) CurrentPlayer() Player {
	return that.current
}

func (that *GameState) Next() Constraint {
	return that.next
}

func (that *GameState) IsEnded() bool {
	return that.ended
}

func (that *GameState) MovesPlayed() int {
	return that.moves
}

func (that *GameState) Score(player Player) int {
	if player != Player1 && player != Player2 {
		return 0
	}
	return that.score[player]
}

// Cell returns the owner of a cell, Empty for free or out of range cells.
func (that *GameState) Cell(sub, row, col int) Player {
	if !inRange(sub, row, col) {
		return Empty
	}
	return that.board[sub][row][col]
}

// ApplyMove places the current player's mark. A rejected move leaves the state untouched.
func (that *GameState) ApplyMove(sub, row, col int) error {
	if that.ended {
		return fmt.Errorf("%w: %w", apperror.ErrIllegalMove, apperror.ErrGameFinished)
	}

	if next, ok := that.next.SubBoard(); ok && sub != next && !that.IsSubBoardFull(next) {
		return fmt.Errorf("%w: %w: expected %d, got %d", apperror.ErrIllegalMove, apperror.ErrWrongSubBoard, next, sub)
	}

	if !inRange(sub, row, col) {
		return fmt.Errorf("%w: %w: sub-board %d, row %d, col %d", apperror.ErrIllegalMove, apperror.ErrInvalidCell, sub, row, col)
	}

	if that.board[sub][row][col] != Empty {
		return fmt.Errorf("%w: %w", apperror.ErrIllegalMove, apperror.ErrCellOccupied)
	}

	that.board[sub][row][col] = that.current
	that.claimLines(sub, that.current)

	that.moves++
	if that.moves == CellCount {
		that.ended = true
	}

	that.current = that.current.Opponent()
	that.next = ConstrainedTo(row*SubBoardSize + col)

	return nil
}

// claimLines awards every unclaimed line of sub that player now fully owns.
func (that *GameState) claimLines(sub int, player Player) {
	for kind := range LinesPerSubBoard {
		id := NewLineID(sub, kind)
		if that.claimed[id] != Empty {
			continue
		}

		if that.lineOwner(id) != player {
			continue
		}

		that.claimed[id] = player
		that.score[player]++
	}
}

// lineOwner returns the player holding all three cells of the line, or Empty.
func (that *GameState) lineOwner(id LineID) Player {
	sub := id.SubBoard()
	cells := lineCells[id.Kind()]

	owner := that.board[sub][cells[0][0]][cells[0][1]]
	for _, cell := range cells[1:] {
		if that.board[sub][cell[0]][cell[1]] != owner {
			return Empty
		}
	}

	return owner
}

// IsSubBoardFull reports whether every cell of the sub-board is taken. Unknown indices count as full.
func (that *GameState) IsSubBoardFull(sub int) bool {
	if sub < 0 || sub >= SubBoardCount {
		return true
	}

	for _, row := range that.board[sub] {
		for _, cell := range row {
			if cell == Empty {
				return false
			}
		}
	}

	return true
}

// LegalSubBoards lists where the current player may move, ascending.
func (that *GameState) LegalSubBoards() []int {
	if that.ended {
		return []int{}
	}

	if next, ok := that.next.SubBoard(); ok && !that.IsSubBoardFull(next) {
		return []int{next}
	}

	// the constrained sub-board is complete, so the player is sent anywhere
	valid := make([]int, 0, SubBoardCount)
	for sub := range SubBoardCount {
		if !that.IsSubBoardFull(sub) {
			valid = append(valid, sub)
		}
	}

	return valid
}

// LegalMoves lists every empty cell of every legal sub-board, sub-board first then row-major.
func (that *GameState) LegalMoves() []Move {
	moves := make([]Move, 0, CellCount)

	for _, sub := range that.LegalSubBoards() {
		for row := range SubBoardSize {
			for col := range SubBoardSize {
				if that.board[sub][row][col] == Empty {
					moves = append(moves, Move{SubBoard: sub, Row: row, Col: col})
				}
			}
		}
	}

	return moves
}

// Outcome decides the game on claimed lines once the board is full.
func (that *GameState) Outcome() Outcome {
	if !that.ended {
		return Undecided
	}

	switch {
	case that.score[Player1] > that.score[Player2]:
		return Player1Wins
	case that.score[Player2] > that.score[Player1]:
		return Player2Wins
	default:
		return Tie
	}
}

// LineOwner returns who claimed the line, Empty if nobody did.
func (that *GameState) LineOwner(id LineID) Player {
	if id < 0 || id >= LineCount {
		return Empty
	}
	return that.claimed[id]
}

// ClaimedLines returns the claimed line ids in ascending order.
func (that *GameState) ClaimedLines() []LineID {
	lines := make([]LineID, 0, LineCount)
	for id, owner := range that.claimed {
		if owner != Empty {
			lines = append(lines, LineID(id))
		}
	}
	return lines
}

// Clone returns an independent copy; the state holds no references.
func (that *GameState) Clone() *GameState {
	clone := *that
	return &clone
}

func inRange(sub, row, col int) bool {
	return sub >= 0 && sub < SubBoardCount &&
		row >= 0 && row < SubBoardSize &&
		col >= 0 && col < SubBoardSize
}
