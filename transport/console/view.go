package console

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/rocketscienceinc/exotended-backend/internal/entity"
	"github.com/rocketscienceinc/exotended-backend/internal/usecase"
)

func glyph(player entity.Player) string {
	if player == entity.Player2 {
		return entity.GlyphPlayer2
	}
	return entity.GlyphPlayer1
}

// headline is the score line shown above every board.
func headline(session *entity.Session) string {
	return fmt.Sprintf("%s %s (%d) vs %s %s (%d)\n\n",
		entity.GlyphPlayer1, session.Player1, session.Game.Score(entity.Player1),
		entity.GlyphPlayer2, session.Player2, session.Game.Score(entity.Player2))
}

func currentTurn(session *entity.Session) string {
	current := session.Game.CurrentPlayer()
	return fmt.Sprintf("Current Turn: %s %s\n\n", glyph(current), session.PlayerID(current))
}

// boardView asks the player to move for a big grid.
func boardView(session *entity.Session) string {
	legal := session.Game.LegalSubBoards()
	numbers := lo.Map(legal, func(sub int, _ int) string {
		return strconv.Itoa(sub + 1)
	})

	return headline(session) +
		currentTurn(session) +
		session.Game.Render(entity.WithHighlightable(legal)) +
		fmt.Sprintf("\nPick the big grid for your next move (%s): %s big <n>\n",
			strings.Join(numbers, ", "), session.CurrentPlayerID())
}

// subBoardView asks the player for a square inside the chosen big grid.
func subBoardView(session *entity.Session, sub int) string {
	return headline(session) +
		currentTurn(session) +
		session.Game.Render(entity.WithHighlight(sub)) +
		fmt.Sprintf("\nSelect a square in big grid %d: %s move %d <row> <col>\n",
			sub+1, session.CurrentPlayerID(), sub+1)
}

func gameOverView(session *entity.Session) string {
	var result string

	switch session.Game.Outcome() {
	case entity.Player1Wins:
		result = fmt.Sprintf("Game Over! %s %s won!", entity.GlyphPlayer1, session.Player1)
	case entity.Player2Wins:
		result = fmt.Sprintf("Game Over! %s %s won!", entity.GlyphPlayer2, session.Player2)
	default:
		result = "Game Over! It's a tie!"
	}

	return headline(session) + session.Game.Render() + "\n" + result + "\n"
}

// turnView reports the bot's reply, if any, then either the next prompt or the final result.
func turnView(result *usecase.TurnResult, botID string) string {
	var out strings.Builder

	if result.BotMove != nil {
		side, _ := result.Session.PlayerOf(botID)
		fmt.Fprintf(&out, "%s %s played big grid %d, row %d, col %d\n\n",
			glyph(side), botID, result.BotMove.SubBoard+1, result.BotMove.Row+1, result.BotMove.Col+1)
	}

	if result.Session.Game.IsEnded() {
		out.WriteString(gameOverView(result.Session))
	} else {
		out.WriteString(boardView(result.Session))
	}

	return out.String()
}
