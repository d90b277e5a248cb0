package entity

// Player is both the owner of a cell and the side to move. Empty marks a free cell.
type Player uint8

const (
	Empty Player = iota
	Player1
	Player2
)

func (p Player) Opponent() Player {
	if p == Player1 {
		return Player2
	}
	return Player1
}

func (p Player) String() string {
	switch p {
	case Player1:
		return "player 1"
	case Player2:
		return "player 2"
	default:
		return "empty"
	}
}
