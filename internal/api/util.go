package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/constants"
)

// battleIDParam reads and validates the :battleID path parameter. On
// failure it writes a 400 response and returns false.
func battleIDParam(c *gin.Context) (string, bool) {
	raw := strings.TrimSpace(c.Param(constants.ParamBattleID))
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleID})
		return "", false
	}
	return id.String(), true
}

// normalizeTimestamps recursively renames GORM model keys from CamelCase
// (ID, CreatedAt, UpdatedAt, DeletedAt) to snake_case so clients
// consistently receive snake_case keys.
func normalizeTimestamps(v interface{}) interface{} {
	switch vv := v.(type) {
	case map[string]interface{}:
		for k, val := range vv {
			vv[k] = normalizeTimestamps(val)
		}
		for from, to := range gormKeys {
			if val, ok := vv[from]; ok {
				vv[to] = val
				delete(vv, from)
			}
		}
		return vv
	case []interface{}:
		for i := range vv {
			vv[i] = normalizeTimestamps(vv[i])
		}
		return vv
	default:
		return v
	}
}

var gormKeys = map[string]string{
	"ID":        "id",
	"CreatedAt": "created_at",
	"UpdatedAt": "updated_at",
	"DeletedAt": "deleted_at",
}

// MarshalIntoSnakeTimestamps marshals the given value into JSON, then decodes
// into an interface{} and normalizes GORM keys to snake_case. It is used
// to produce API responses for stored records.
func MarshalIntoSnakeTimestamps(v interface{}) (interface{}, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return normalizeTimestamps(out), nil
}
