package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/rocketscienceinc/exotended-backend/internal/apperror"
	"github.com/rocketscienceinc/exotended-backend/internal/entity"
	"github.com/rocketscienceinc/exotended-backend/internal/usecase"
)

const botOpponent = "bot"

const helpText = `eXOtended console. Every command starts with the acting user:
  <you> new <opponent|bot>          start a game, you play first
  <you> big <1-9>                   pick the big grid to play in
  <you> move <1-9> <1-3> <1-3>      play big grid, row, col
  <you> show                        show the board
  <you> export                      print a token to restore the game later
  <you> import <token>              restore an exported game
  help                              show this text
`

func (that *Shell) handleNewGame(ctx context.Context, cmd *Command, out io.Writer) error {
	if len(cmd.Args) != 1 {
		return fmt.Errorf("%w: new <opponent|bot>", ErrBadArguments)
	}

	var (
		session *entity.Session
		err     error
	)

	if opponentID := cmd.Args[0]; opponentID == botOpponent {
		session, err = that.games.NewBotGame(ctx, that.channelID, cmd.UserID)
	} else {
		session, err = that.games.NewGame(ctx, that.channelID, cmd.UserID, opponentID)
	}

	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	return write(out, boardView(session))
}

func (that *Shell) handleSelectSubBoard(ctx context.Context, cmd *Command, out io.Writer) error {
	if len(cmd.Args) != 1 {
		return fmt.Errorf("%w: big <1-9>", ErrBadArguments)
	}

	sub, err := parseIndex(cmd.Args[0])
	if err != nil {
		return err
	}

	session, err := that.games.SelectSubBoard(ctx, that.channelID, cmd.UserID, sub)
	if err != nil {
		return fmt.Errorf("failed to select big grid: %w", err)
	}

	return write(out, subBoardView(session, sub))
}

func (that *Shell) handleMove(ctx context.Context, cmd *Command, out io.Writer) error {
	if len(cmd.Args) != 3 {
		return fmt.Errorf("%w: move <1-9> <1-3> <1-3>", ErrBadArguments)
	}

	indices := make([]int, 0, len(cmd.Args))
	for _, arg := range cmd.Args {
		index, err := parseIndex(arg)
		if err != nil {
			return err
		}
		indices = append(indices, index)
	}

	result, err := that.games.MakeTurn(ctx, that.channelID, cmd.UserID, indices[0], indices[1], indices[2])
	if err != nil {
		return fmt.Errorf("failed to make turn: %w", err)
	}

	return write(out, turnView(result, that.games.BotID()))
}

func (that *Shell) handleShow(ctx context.Context, _ *Command, out io.Writer) error {
	session, err := that.games.GetGame(ctx, that.channelID)
	if err != nil {
		return fmt.Errorf("failed to get game: %w", err)
	}

	return write(out, boardView(session))
}

func (that *Shell) handleExport(ctx context.Context, _ *Command, out io.Writer) error {
	token, err := that.games.ExportGame(ctx, that.channelID)
	if err != nil {
		return fmt.Errorf("failed to export game: %w", err)
	}

	return write(out, "Copy this to restore later:\n"+token+"\n")
}

func (that *Shell) handleImport(ctx context.Context, cmd *Command, out io.Writer) error {
	if len(cmd.Args) != 1 {
		return fmt.Errorf("%w: import <token>", ErrBadArguments)
	}

	result, err := that.games.ImportGame(ctx, that.channelID, cmd.UserID, cmd.Args[0])
	if err != nil {
		return fmt.Errorf("failed to import game: %w", err)
	}

	return write(out, turnView(result, that.games.BotID()))
}

func (that *Shell) handleHelp(_ context.Context, _ *Command, out io.Writer) error {
	return write(out, helpText)
}

func (that *Shell) handleUnknown(_ context.Context, cmd *Command, _ io.Writer) error {
	return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Action)
}

// parseIndex turns a 1-based number typed by a player into a 0-based index.
func parseIndex(arg string) (int, error) {
	number, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrBadArguments, arg)
	}

	return number - 1, nil
}

func write(out io.Writer, text string) error {
	if _, err := io.WriteString(out, text); err != nil {
		return fmt.Errorf("failed to write response: %w", err)
	}
	return nil
}

// userMessage maps an error to what the player is told, and whether it was the player's mistake.
func userMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, apperror.ErrNotYourTurn):
		return "Not your turn", true
	case errors.Is(err, usecase.ErrInvalidSubBoard):
		return "Invalid big board", true
	case errors.Is(err, apperror.ErrGameFinished):
		return "That game is already over", true
	case errors.Is(err, apperror.ErrIllegalMove):
		return "Invalid move", true
	case errors.Is(err, apperror.ErrMalformedToken):
		return "Invalid game data: " + err.Error(), true
	case errors.Is(err, apperror.ErrNotParticipant):
		return "You were not part of this game", true
	case errors.Is(err, usecase.ErrCannotChallengeSelf):
		return "You cannot challenge yourself.", true
	case errors.Is(err, usecase.ErrCannotChallengeBot):
		return "The bot cannot start a game. Challenge it with: <you> new bot", true
	case errors.Is(err, apperror.ErrNoActiveGames):
		return "There is no game here. Start one with: <you> new <opponent|bot>", true
	case errors.Is(err, ErrUnknownCommand), errors.Is(err, ErrBadArguments):
		return err.Error() + " (try: help)", true
	default:
		return "Something went wrong", false
	}
}
