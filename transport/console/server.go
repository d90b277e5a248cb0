package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/rocketscienceinc/exotended-backend/internal/entity"
	"github.com/rocketscienceinc/exotended-backend/internal/usecase"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadArguments   = errors.New("bad arguments")
)

type gameManager interface {
	BotID() string

	NewGame(ctx context.Context, channelID, challengerID, opponentID string) (*entity.Session, error)
	NewBotGame(ctx context.Context, channelID, playerID string) (*entity.Session, error)
	SelectSubBoard(ctx context.Context, channelID, playerID string, sub int) (*entity.Session, error)
	MakeTurn(ctx context.Context, channelID, playerID string, sub, row, col int) (*usecase.TurnResult, error)

	ImportGame(ctx context.Context, channelID, playerID, token string) (*usecase.TurnResult, error)
	ExportGame(ctx context.Context, channelID string) (string, error)
	GetGame(ctx context.Context, channelID string) (*entity.Session, error)
}

// Command is one input line: the acting user, the action and its arguments.
type Command struct {
	UserID string
	Action string
	Args   []string
}

type handler func(ctx context.Context, cmd *Command, out io.Writer) error

// Shell plays the games of one channel from line based input.
type Shell struct {
	logger    *slog.Logger
	games     gameManager
	channelID string

	handlers map[string]handler
}

func New(logger *slog.Logger, games gameManager, channelID string) *Shell {
	shell := &Shell{
		logger:    logger,
		games:     games,
		channelID: channelID,

		handlers: make(map[string]handler),
	}

	shell.handlers["new"] = shell.handleNewGame
	shell.handlers["big"] = shell.handleSelectSubBoard
	shell.handlers["move"] = shell.handleMove
	shell.handlers["show"] = shell.handleShow
	shell.handlers["export"] = shell.handleExport
	shell.handlers["import"] = shell.handleImport
	shell.handlers["help"] = shell.handleHelp

	return shell
}

// Run reads commands until the input ends or the context is canceled.
// On cancel an input that is an io.Closer is closed to release the blocked reader;
// any other input keeps its reader goroutine until the next line or EOF.
func (that *Shell) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)

	go func() {
		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), 1<<20)

		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}

		scanErr <- scanner.Err()
		close(lines)
	}()

	if _, err := io.WriteString(out, helpText); err != nil {
		return fmt.Errorf("failed to write help: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			if closer, ok := in.(io.Closer); ok {
				if err := closer.Close(); err != nil {
					that.logger.Warn("failed to close input", "error", err)
				}
			}
			return nil
		case line, ok := <-lines:
			if !ok {
				if err := <-scanErr; err != nil {
					return fmt.Errorf("failed to read input: %w", err)
				}
				return nil
			}

			if err := that.HandleLine(ctx, line, out); err != nil {
				return err
			}
		}
	}
}

// HandleLine runs one command. Player mistakes are answered on out; only write failures are returned.
func (that *Shell) HandleLine(ctx context.Context, line string, out io.Writer) error {
	log := that.logger.With("method", "HandleLine", "channel", that.channelID)

	cmd, ok := parseCommand(line)
	if !ok {
		return nil
	}

	handle, ok := that.handlers[cmd.Action]
	if !ok {
		handle = that.handleUnknown
	}

	err := handle(ctx, cmd, out)
	if err == nil {
		return nil
	}

	message, expected := userMessage(err)
	if expected {
		log.Debug("command rejected", "action", cmd.Action, "user", cmd.UserID, "error", err)
	} else {
		log.Error("error processing command", "action", cmd.Action, "user", cmd.UserID, "error", err)
	}

	if _, writeErr := fmt.Fprintln(out, message); writeErr != nil {
		return fmt.Errorf("failed to write response: %w", writeErr)
	}

	return nil
}

func parseCommand(line string) (*Command, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil, false
	}

	// "help" works without a user
	if len(fields) == 1 {
		return &Command{Action: strings.ToLower(fields[0])}, true
	}

	return &Command{
		UserID: fields[0],
		Action: strings.ToLower(fields[1]),
		Args:   fields[2:],
	}, true
}
