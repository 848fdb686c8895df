package api

import (
	"context"

	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/game"
	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/service"
)

// BattleService is what the HTTP layer needs from service.Battles.
type BattleService interface {
	Skins() []service.SkinInfo
	StartBattle(ctx context.Context, skin string) (*game.Session, error)
	GetBattle(ctx context.Context, id string) (*game.Session, error)
	SubmitAction(ctx context.Context, id string, action game.Action) (*service.ActionResult, error)
	RestartBattle(ctx context.Context, id string) (*game.Session, error)
	EndSession(ctx context.Context, id string) error
	Stats(ctx context.Context, skin string) (*game.OutcomeStats, error)
	Recent(ctx context.Context, limit int) ([]game.BattleRecord, error)
}

// BattleHandler groups all battle-related HTTP handlers.
type BattleHandler struct {
	svc BattleService
}

// NewBattleHandler creates a new BattleHandler backed by svc.
func NewBattleHandler(svc BattleService) *BattleHandler {
	return &BattleHandler{svc: svc}
}
