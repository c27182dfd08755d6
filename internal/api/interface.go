package api

import (
	"context"

	"github.com/fieldday-games/bingohunt/internal/model"
)

// Interface for dependency injection
type Interface interface {
	Register(ctx context.Context, name, phone string) (*model.Player, error)
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	GetBoard(ctx context.Context, playerID model.PlayerID) (model.Board, error)
	GetGameState(ctx context.Context) (*model.GameStatus, error)
	GetWinners(ctx context.Context) ([]model.Winner, error)
	GetTasks(ctx context.Context) ([]model.Task, error)
	GetPlayerScans(ctx context.Context, playerID model.PlayerID) ([]model.ScanRecord, error)
	SubmitScan(ctx context.Context, scannerID, targetID model.PlayerID, taskID int) (*model.ScanResult, error)
}

var _ Interface = (*Client)(nil)
