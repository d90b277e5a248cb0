package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/samber/lo"

	"github.com/rocketscienceinc/exotended-backend/internal/apperror"
	"github.com/rocketscienceinc/exotended-backend/internal/entity"
	"github.com/rocketscienceinc/exotended-backend/internal/repository"
)

var (
	ErrCannotChallengeSelf = errors.New("you cannot challenge yourself")
	ErrCannotChallengeBot  = errors.New("the bot cannot challenge players")
	ErrInvalidSubBoard     = errors.New("invalid sub-board")
)

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

type botService interface {
	MakeTurn(game *entity.GameState) (entity.Move, error)
}

// TurnResult is the session after a turn, plus the reply move when the bot answered.
type TurnResult struct {
	Session *entity.Session
	BotMove *entity.Move
}

// GameManager owns the sessions of all channels. Every mutation of one channel's game runs under that channel's lock.
type GameManager struct {
	logger      *slog.Logger
	sessionRepo sessionRepo
	botService  botService
	botID       string

	locks sync.Map
}

func NewGameManager(logger *slog.Logger, sessionRepo sessionRepo, botService botService, botID string) *GameManager {
	return &GameManager{
		logger: logger,

		sessionRepo: sessionRepo,
		botService:  botService,
		botID:       botID,
	}
}

func (that *GameManager) BotID() string {
	return that.botID
}

// NewGame starts a game in the channel, replacing whatever was played there. The challenger moves first.
func (that *GameManager) NewGame(ctx context.Context, channelID, challengerID, opponentID string) (*entity.Session, error) {
	log := that.logger.With("method", "NewGame", "channel", channelID)

	if challengerID == opponentID {
		return nil, ErrCannotChallengeSelf
	}

	// the bot only ever answers, it never opens a game
	if that.botID != "" && challengerID == that.botID {
		return nil, ErrCannotChallengeBot
	}

	unlock := that.lock(channelID)
	defer unlock()

	session := entity.NewSession(channelID, challengerID, opponentID)
	if err := that.updateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed create game: %w", err)
	}

	log.Info("game created", "player1", challengerID, "player2", opponentID)

	return session, nil
}

// NewBotGame starts a game against the configured bot. The player moves first.
func (that *GameManager) NewBotGame(ctx context.Context, channelID, playerID string) (*entity.Session, error) {
	return that.NewGame(ctx, channelID, playerID, that.botID)
}

// SelectSubBoard checks that the player may pick the sub-board and returns the session to render it.
func (that *GameManager) SelectSubBoard(ctx context.Context, channelID, playerID string, sub int) (*entity.Session, error) {
	session, err := that.getSession(ctx, channelID)
	if err != nil {
		return nil, err
	}

	if session.CurrentPlayerID() != playerID {
		return nil, apperror.ErrNotYourTurn
	}

	if !lo.Contains(session.Game.LegalSubBoards(), sub) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSubBoard, sub)
	}

	return session, nil
}

// MakeTurn plays the player's move, lets the bot answer when it is the opponent,
// and drops the session once the board is full.
func (that *GameManager) MakeTurn(ctx context.Context, channelID, playerID string, sub, row, col int) (*TurnResult, error) {
	log := that.logger.With("method", "MakeTurn", "channel", channelID)

	unlock := that.lock(channelID)
	defer unlock()

	session, err := that.getSession(ctx, channelID)
	if err != nil {
		return nil, err
	}

	if session.CurrentPlayerID() != playerID {
		return nil, apperror.ErrNotYourTurn
	}

	if err = session.Game.ApplyMove(sub, row, col); err != nil {
		return nil, fmt.Errorf("failed make turn: %w", err)
	}

	botMove, err := that.playBot(session)
	if err != nil {
		return nil, err
	}

	result := &TurnResult{Session: session, BotMove: botMove}

	if session.Game.IsEnded() {
		that.deleteSession(ctx, session)

		log.Info("game finished", "outcome", session.Game.Outcome().String())

		return result, nil
	}

	if err = that.updateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed update game: %w", err)
	}

	return result, nil
}

// ImportGame restores an exported game into the channel. Only one of its players may import it.
func (that *GameManager) ImportGame(ctx context.Context, channelID, playerID, token string) (*TurnResult, error) {
	log := that.logger.With("method", "ImportGame", "channel", channelID)

	session, err := entity.RestoreSession(channelID, token)
	if err != nil {
		return nil, fmt.Errorf("failed import game: %w", err)
	}

	if !session.IsParticipant(playerID) {
		return nil, apperror.ErrNotParticipant
	}

	if session.Game.IsEnded() {
		return nil, apperror.ErrGameFinished
	}

	unlock := that.lock(channelID)
	defer unlock()

	botMove, err := that.playBot(session)
	if err != nil {
		return nil, err
	}

	if session.Game.IsEnded() {
		that.deleteSession(ctx, session)
		return &TurnResult{Session: session, BotMove: botMove}, nil
	}

	if err = that.updateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed import game: %w", err)
	}

	log.Info("game imported", "player1", session.Player1, "player2", session.Player2)

	return &TurnResult{Session: session, BotMove: botMove}, nil
}

// ExportGame returns the token of the channel's game.
func (that *GameManager) ExportGame(ctx context.Context, channelID string) (string, error) {
	session, err := that.getSession(ctx, channelID)
	if err != nil {
		return "", err
	}

	return session.Token(), nil
}

func (that *GameManager) GetGame(ctx context.Context, channelID string) (*entity.Session, error) {
	return that.getSession(ctx, channelID)
}

// playBot answers for the bot while it is the side to move.
func (that *GameManager) playBot(session *entity.Session) (*entity.Move, error) {
	if that.botID == "" || session.Game.IsEnded() || session.CurrentPlayerID() != that.botID {
		return nil, nil
	}

	move, err := that.botService.MakeTurn(session.Game)
	if err != nil {
		return nil, fmt.Errorf("bot failed to make turn: %w", err)
	}

	return &move, nil
}

func (that *GameManager) getSession(ctx context.Context, channelID string) (*entity.Session, error) {
	session, err := that.sessionRepo.GetByID(ctx, channelID)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return nil, apperror.ErrNoActiveGames
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return session, nil
}

func (that *GameManager) updateSession(ctx context.Context, session *entity.Session) error {
	if err := that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

func (that *GameManager) deleteSession(ctx context.Context, session *entity.Session) {
	log := that.logger.With("method", "deleteSession", "channel", session.ID)

	err := that.sessionRepo.DeleteByID(ctx, session.ID)
	if err != nil && !errors.Is(err, repository.ErrSessionNotFound) {
		log.Error("failed to delete game", "error", err)
		return
	}

	log.Info("game deleted")
}

func (that *GameManager) lock(channelID string) func() {
	value, _ := that.locks.LoadOrStore(channelID, &sync.Mutex{})
	mu := value.(*sync.Mutex) //nolint: forcetypeassert // only mutexes are stored

	mu.Lock()

	return mu.Unlock
}
