package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/constants"
	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/version"
)

// Version returns build and VCS metadata injected at build time.
func Version(c *gin.Context) {
	c.JSON(http.StatusOK, version.Get())
}

// Health reports liveness for container probes.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyStatus: "ok", "version": version.Version})
}
