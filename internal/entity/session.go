package entity

// Session binds a game to the channel it is played in and to the two external player ids.
type Session struct {
	ID      string
	Player1 string
	Player2 string
	Game    *GameState
}

func NewSession(id, player1, player2 string) *Session {
	return &Session{
		ID:      id,
		Player1: player1,
		Player2: player2,
		Game:    NewGameState(),
	}
}

// PlayerID maps a side to the external id playing it.
func (that *Session) PlayerID(player Player) string {
	switch player {
	case Player1:
		return that.Player1
	case Player2:
		return that.Player2
	default:
		return ""
	}
}

// PlayerOf maps an external id to its side.
func (that *Session) PlayerOf(id string) (Player, bool) {
	switch id {
	case that.Player1:
		return Player1, true
	case that.Player2:
		return Player2, true
	default:
		return Empty, false
	}
}

func (that *Session) CurrentPlayerID() string {
	return that.PlayerID(that.Game.CurrentPlayer())
}

func (that *Session) IsParticipant(id string) bool {
	_, ok := that.PlayerOf(id)
	return ok
}

// Token exports the session in the game's single line token format.
func (that *Session) Token() string {
	return that.Game.Serialize(that.Player1, that.Player2)
}

// RestoreSession rebuilds a session for a channel from an exported token.
func RestoreSession(id, token string) (*Session, error) {
	game, player1, player2, err := Deserialize(token)
	if err != nil {
		return nil, err
	}

	return &Session{
		ID:      id,
		Player1: player1,
		Player2: player2,
		Game:    game,
	}, nil
}
