package entity

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/exotended-backend/internal/apperror"
)

// A token is one line of dot separated fields:
//
//	exo1.<p1>.<p2>.<cells>.<current>.<next>.<claimed>.<score1>.<score2>
//
// Identities are raw base64url, cells are 81 digits sub-board by sub-board,
// next is "-" when unconstrained and claimed is a 72 bit mask in hex, one byte per sub-board.
const (
	tokenVersion    = "exo1"
	tokenSeparator  = "."
	tokenFieldCount = 9
	unconstrained   = "-"
)

var identityEncoding = base64.RawURLEncoding

// Serialize encodes the state and both player identities into a single line token.
func (that *GameState) Serialize(player1ID, player2ID string) string {
	var cells strings.Builder
	cells.Grow(CellCount)
	for sub := range SubBoardCount {
		for row := range SubBoardSize {
			for col := range SubBoardSize {
				cells.WriteByte('0' + byte(that.board[sub][row][col]))
			}
		}
	}

	next := unconstrained
	if index, ok := that.next.SubBoard(); ok {
		next = strconv.Itoa(index)
	}

	return strings.Join([]string{
		tokenVersion,
		identityEncoding.EncodeToString([]byte(player1ID)),
		identityEncoding.EncodeToString([]byte(player2ID)),
		cells.String(),
		strconv.Itoa(int(that.current)),
		next,
		hex.EncodeToString(that.claimedMask()),
		strconv.Itoa(that.score[Player1]),
		strconv.Itoa(that.score[Player2]),
	}, tokenSeparator)
}

// Deserialize restores a state and its player identities. It never returns a partial state.
func Deserialize(token string) (*GameState, string, string, error) {
	fields := strings.Split(strings.TrimSpace(token), tokenSeparator)
	if len(fields) != tokenFieldCount {
		return nil, "", "", malformed("expected %d fields, got %d", tokenFieldCount, len(fields))
	}

	if fields[0] != tokenVersion {
		return nil, "", "", malformed("unknown version %q", fields[0])
	}

	player1ID, err := decodeIdentity(fields[1])
	if err != nil {
		return nil, "", "", fmt.Errorf("player 1: %w", err)
	}

	player2ID, err := decodeIdentity(fields[2])
	if err != nil {
		return nil, "", "", fmt.Errorf("player 2: %w", err)
	}

	state := &GameState{}

	if err = state.decodeCells(fields[3]); err != nil {
		return nil, "", "", err
	}

	if err = state.decodeCurrent(fields[4]); err != nil {
		return nil, "", "", err
	}

	if err = state.decodeNext(fields[5]); err != nil {
		return nil, "", "", err
	}

	if err = state.restoreClaims(fields[6], fields[7], fields[8]); err != nil {
		return nil, "", "", err
	}

	return state, player1ID, player2ID, nil
}

func decodeIdentity(field string) (string, error) {
	raw, err := identityEncoding.DecodeString(field)
	if err != nil {
		return "", malformed("identity is not base64url: %v", err)
	}
	return string(raw), nil
}

// decodeCells fills the board and recomputes the move counter and the ended flag.
func (that *GameState) decodeCells(field string) error {
	if len(field) != CellCount {
		return malformed("expected %d cells, got %d", CellCount, len(field))
	}

	for i := range len(field) {
		cell := Player(field[i] - '0')
		if field[i] < '0' || cell > Player2 {
			return malformed("cell %d has invalid value %q", i, field[i])
		}

		sub, rest := i/(SubBoardSize*SubBoardSize), i%(SubBoardSize*SubBoardSize)
		that.board[sub][rest/SubBoardSize][rest%SubBoardSize] = cell

		if cell != Empty {
			that.moves++
		}
	}

	that.ended = that.moves == CellCount

	return nil
}

// decodeCurrent requires the mark counts to agree with alternating play from player 1.
func (that *GameState) decodeCurrent(field string) error {
	switch field {
	case "1":
		that.current = Player1
	case "2":
		that.current = Player2
	default:
		return malformed("invalid current player %q", field)
	}

	marks := [3]int{}
	for _, sub := range that.board {
		for _, row := range sub {
			for _, cell := range row {
				marks[cell]++
			}
		}
	}

	expected := marks[Player2]
	if that.current == Player2 {
		expected++
	}

	if marks[Player1] != expected {
		return malformed("%d player 1 marks and %d player 2 marks with %s to move",
			marks[Player1], marks[Player2], that.current)
	}

	return nil
}

func (that *GameState) decodeNext(field string) error {
	if field == unconstrained {
		if that.moves != 0 {
			return malformed("missing sub-board constraint after %d moves", that.moves)
		}
		that.next = Unconstrained()
		return nil
	}

	index, err := strconv.Atoi(field)
	if err != nil || index < 0 || index >= SubBoardCount {
		return malformed("invalid sub-board constraint %q", field)
	}

	if that.moves == 0 {
		return malformed("sub-board constraint %d set before the first move", index)
	}

	that.next = ConstrainedTo(index)

	return nil
}

// restoreClaims rebuilds claimed lines from the board and checks them against the token.
func (that *GameState) restoreClaims(maskField, score1Field, score2Field string) error {
	mask, err := hex.DecodeString(maskField)
	if err != nil || len(mask) != SubBoardCount {
		return malformed("invalid claimed lines %q", maskField)
	}

	for id := range LineID(LineCount) {
		owner := that.lineOwner(id)
		if owner != Empty {
			that.claimed[id] = owner
			that.score[owner]++
		}

		if (owner != Empty) != maskHas(mask, id) {
			return malformed("claimed line %s does not match the board", id)
		}
	}

	scores := [...]struct {
		player Player
		field  string
	}{
		{Player1, score1Field},
		{Player2, score2Field},
	}

	for _, entry := range scores {
		score, err := strconv.Atoi(entry.field)
		if err != nil {
			return malformed("invalid %s score %q", entry.player, entry.field)
		}

		if score != that.score[entry.player] {
			return malformed("%s score %d does not match %d claimed lines", entry.player, score, that.score[entry.player])
		}
	}

	return nil
}

func (that *GameState) claimedMask() []byte {
	mask := make([]byte, SubBoardCount)
	for id, owner := range that.claimed {
		if owner != Empty {
			mask[id/LinesPerSubBoard] |= 1 << (id % LinesPerSubBoard)
		}
	}
	return mask
}

func maskHas(mask []byte, id LineID) bool {
	return mask[id.SubBoard()]&(1<<id.Kind()) != 0
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", apperror.ErrMalformedToken, fmt.Sprintf(format, args...))
}
