package api

import (
	"github.com/gin-gonic/gin"

	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/constants"
)

// RegisterRoutes mounts the battle API under /api and the health probe at
// the root of r.
func RegisterRoutes(r gin.IRouter, h *BattleHandler) {
	apiRoutes := r.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.GET(constants.RouteSkins, h.ListSkins)
		apiRoutes.GET(constants.RouteStats, h.Stats)
		apiRoutes.GET(constants.RouteVersion, Version)

		apiRoutes.POST(constants.RouteBattles, h.StartBattle)
		apiRoutes.GET(constants.RouteBattlesRecent, h.Recent)
		apiRoutes.GET(constants.RouteBattleByID, h.GetBattle)
		apiRoutes.DELETE(constants.RouteBattleByID, h.EndSession)
		apiRoutes.POST(constants.RouteBattleAction, h.SubmitAction)
		apiRoutes.POST(constants.RouteBattleRestart, h.RestartBattle)
	}
	r.GET(constants.RouteHealth, Health)
}
