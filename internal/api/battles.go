package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/constants"
	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/game"
	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/logging"
	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/service"
)

type StartBattleRequest struct {
	Skin string `json:"skin" binding:"omitempty,max=32"`
}

type ActionRequest struct {
	Action string `json:"action" binding:"required,max=16"`
}

// ListSkins returns every configured skin with its rules.
func (h *BattleHandler) ListSkins(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Skins())
}

// StartBattle opens a new battle session. The body is optional; without a
// skin the default one is used.
func (h *BattleHandler) StartBattle(c *gin.Context) {
	var req StartBattleRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	s, err := h.svc.StartBattle(c.Request.Context(), req.Skin)
	if err != nil {
		if errors.Is(err, service.ErrUnknownSkin) {
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUnknownSkin})
			return
		}
		logging.Error("failed to start battle", err, logging.Fields{constants.LogFieldSkin: req.Skin})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedStartBattle})
		return
	}
	c.JSON(http.StatusCreated, newBattleView(s))
}

// GetBattle returns the current state of a battle.
func (h *BattleHandler) GetBattle(c *gin.Context) {
	id, ok := battleIDParam(c)
	if !ok {
		return
	}
	s, err := h.svc.GetBattle(c.Request.Context(), id)
	if err != nil {
		h.writeBattleError(c, err, constants.ErrBattleNotFound)
		return
	}
	c.JSON(http.StatusOK, newBattleView(s))
}

// SubmitAction resolves the player's action for one turn. Actions the
// battle cannot take are rejected with 409 together with the unchanged
// battle so the client can resync.
func (h *BattleHandler) SubmitAction(c *gin.Context) {
	id, ok := battleIDParam(c)
	if !ok {
		return
	}
	var req ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUnknownAction})
		return
	}
	action, ok := game.ParseAction(req.Action)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUnknownAction})
		return
	}

	res, err := h.svc.SubmitAction(c.Request.Context(), id, action)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBattleOver), errors.Is(err, service.ErrNoHealsLeft):
			msg := constants.ErrBattleOver
			if errors.Is(err, service.ErrNoHealsLeft) {
				msg = constants.ErrNoHealsLeft
			}
			body := gin.H{constants.JSONKeyError: msg}
			if res != nil && res.Session != nil {
				body[constants.JSONKeyBattle] = newBattleView(res.Session)
			}
			c.JSON(http.StatusConflict, body)
		default:
			h.writeBattleError(c, err, constants.ErrFailedStoreAction)
		}
		return
	}

	view := newBattleView(res.Session)
	view.Effects = newEffects(res.Previous, res.Session.Battle)
	c.JSON(http.StatusOK, view)
}

// RestartBattle replaces the session's battle with a fresh one.
func (h *BattleHandler) RestartBattle(c *gin.Context) {
	id, ok := battleIDParam(c)
	if !ok {
		return
	}
	s, err := h.svc.RestartBattle(c.Request.Context(), id)
	if err != nil {
		h.writeBattleError(c, err, constants.ErrFailedRestart)
		return
	}
	c.JSON(http.StatusOK, newBattleView(s))
}

// EndSession discards a battle session.
func (h *BattleHandler) EndSession(c *gin.Context) {
	id, ok := battleIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.EndSession(c.Request.Context(), id); err != nil {
		h.writeBattleError(c, err, constants.ErrFailedEndSession)
		return
	}
	c.Status(http.StatusNoContent)
}

// writeBattleError maps service errors for a single battle to a response;
// anything unexpected is logged and reported with fallback.
func (h *BattleHandler) writeBattleError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrBattleNotFound):
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
	case errors.Is(err, service.ErrUnknownAction):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUnknownAction})
	default:
		logging.Error(fallback, err, logging.Fields{constants.LogFieldBattleID: c.Param(constants.ParamBattleID)})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: fallback})
	}
}
