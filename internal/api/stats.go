package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/constants"
	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/logging"
	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/service"
)

// Stats returns outcome counts of finished battles, optionally for one skin
// (?skin=learning).
func (h *BattleHandler) Stats(c *gin.Context) {
	skin := c.Query("skin")
	st, err := h.svc.Stats(c.Request.Context(), skin)
	if err != nil {
		if errors.Is(err, service.ErrUnknownSkin) {
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUnknownSkin})
			return
		}
		logging.Error("failed to fetch stats", err, logging.Fields{constants.LogFieldSkin: skin})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	c.JSON(http.StatusOK, st)
}

// Recent lists the newest finished battles (?limit=N).
func (h *BattleHandler) Recent(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
			return
		}
		limit = n
	}
	records, err := h.svc.Recent(c.Request.Context(), limit)
	if err != nil {
		logging.Error("failed to fetch battle records", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchRecords})
		return
	}
	out, err := MarshalIntoSnakeTimestamps(records)
	if err != nil {
		logging.Error("failed to encode battle records", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchRecords})
		return
	}
	c.JSON(http.StatusOK, out)
}
