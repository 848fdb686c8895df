package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/config"
	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/engine"
	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/game"
	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/service"
	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/storage"
)

type memRecords struct {
	records []game.BattleRecord
}

func (m *memRecords) SaveBattleRecord(r *game.BattleRecord) error {
	r.ID = uint(len(m.records) + 1)
	m.records = append(m.records, *r)
	return nil
}

func (m *memRecords) GetOutcomeStats(skin string) (*game.OutcomeStats, error) {
	st := &game.OutcomeStats{Skin: skin}
	for _, r := range m.records {
		if skin != "" && r.Skin != skin {
			continue
		}
		switch game.Phase(r.Outcome) {
		case game.PhaseWon:
			st.Won++
		case game.PhaseLost:
			st.Lost++
		case game.PhaseEscaped:
			st.Escaped++
		}
		st.Total++
	}
	return st, nil
}

func (m *memRecords) GetRecentRecords(limit int) ([]game.BattleRecord, error) {
	out := make([]game.BattleRecord, 0, limit)
	for i := len(m.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.records[i])
	}
	return out, nil
}

func setupRouter(t *testing.T) (*gin.Engine, *memRecords) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := &memRecords{}
	svc, err := service.NewBattles(service.Options{
		Skins: []config.Skin{{
			Name:  "learning",
			Title: "Learning",
			Battle: engine.Config{
				PlayerName:        "Demon Slayer",
				OpponentName:      "Demon",
				PlayerMaxHealth:   100,
				OpponentMaxHealth: 60,
				PlayerDamage:      engine.DamageRange{Min: 10, Max: 18},
				OpponentDamage:    engine.DamageRange{Min: 5, Max: 12},
				HealAmount:        25,
				HealUses:          1,
				Narrative: engine.Narrative{
					Intro:          []string{"A demon appears!"},
					PlayerAttack:   "You slash for {{damage}} damage!",
					Counter:        []string{"The demon strikes back for {{damage}} damage!"},
					Heal:           "Restored {{healed}} HP.",
					RetreatSuccess: "You escaped!",
					RetreatBlocked: "Blocked!",
					Victory:        []string{"Victory!"},
					Defeat:         []string{"Defeat..."},
				},
			},
		}},
		Roller:   engine.RollerFunc(func(_, max int) int { return max }),
		Sessions: storage.NewMemorySessionStore(),
		Records:  rec,
	})
	require.NoError(t, err)
	r := gin.New()
	RegisterRoutes(r, NewBattleHandler(svc))
	return r, rec
}

func doJSON(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBattle(t *testing.T, w *httptest.ResponseRecorder) battleView {
	t.Helper()
	var v battleView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func startBattle(t *testing.T, r http.Handler) battleView {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/api/battles", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeBattle(t, w)
}

func TestStartBattle_DefaultSkin(t *testing.T) {
	r, _ := setupRouter(t)
	v := startBattle(t, r)
	assert.NotEmpty(t, v.ID)
	assert.Equal(t, "learning", v.Skin)
	assert.Equal(t, game.PhaseInProgress, v.Phase)
	assert.Equal(t, 1.0, v.Player.HealthRatio)
	assert.True(t, v.CanAct)
	assert.True(t, v.CanHeal)
	assert.Equal(t, []string{"A demon appears!"}, v.Log)
}

func TestStartBattle_UnknownSkin(t *testing.T) {
	r, _ := setupRouter(t)
	w := doJSON(r, http.MethodPost, "/api/battles", gin.H{"skin": "kyogai"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Unknown skin")
}

func TestSubmitAction_AttackReportsEffects(t *testing.T) {
	r, _ := setupRouter(t)
	v := startBattle(t, r)

	w := doJSON(r, http.MethodPost, "/api/battles/"+v.ID+"/action", gin.H{"action": "attack"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := decodeBattle(t, w)
	assert.Equal(t, 42, got.Opponent.CurrentHealth)
	assert.InDelta(t, 0.7, got.Opponent.HealthRatio, 1e-9)
	assert.Equal(t, 88, got.Player.CurrentHealth)
	require.NotNil(t, got.Effects)
	assert.True(t, got.Effects.OpponentHit)
	assert.True(t, got.Effects.PlayerHit)
	assert.False(t, got.Effects.PlayerHealed)
	assert.Equal(t, 2, got.Effects.NewLogEntries)
}

func TestSubmitAction_HealThenNoHealsLeft(t *testing.T) {
	r, _ := setupRouter(t)
	v := startBattle(t, r)
	path := "/api/battles/" + v.ID + "/action"

	w := doJSON(r, http.MethodPost, path, gin.H{"action": "HEAL"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := decodeBattle(t, w)
	assert.False(t, got.CanHeal)
	assert.True(t, got.Effects.PlayerHealed)
	assert.True(t, got.Effects.PlayerHit)

	w = doJSON(r, http.MethodPost, path, gin.H{"action": "heal"})
	assert.Equal(t, http.StatusConflict, w.Code)
	var body struct {
		Error  string     `json:"error"`
		Battle battleView `json:"battle"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "No heals left", body.Error)
	assert.Equal(t, got.Log, body.Battle.Log)
}

func TestSubmitAction_RetreatFinishesAndRecords(t *testing.T) {
	r, rec := setupRouter(t)
	v := startBattle(t, r)
	path := "/api/battles/" + v.ID + "/action"

	w := doJSON(r, http.MethodPost, path, gin.H{"action": "retreat"})
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeBattle(t, w)
	assert.Equal(t, game.PhaseEscaped, got.Phase)
	assert.False(t, got.CanAct)
	assert.True(t, got.CanRestart)
	assert.True(t, got.Effects.BattleEnded)
	assert.False(t, got.Effects.PlayerHit)
	require.Len(t, rec.records, 1)

	w = doJSON(r, http.MethodPost, path, gin.H{"action": "attack"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Battle is over")
}

func TestSubmitAction_BadInput(t *testing.T) {
	r, _ := setupRouter(t)
	v := startBattle(t, r)

	w := doJSON(r, http.MethodPost, "/api/battles/"+v.ID+"/action", gin.H{"action": "dance"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/battles/not-a-uuid/action", gin.H{"action": "attack"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/battles/6f1c1d8e-9a57-4d0e-8d43-2b1b9f0f6a11/action", gin.H{"action": "attack"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRestartAndEndSession(t *testing.T) {
	r, _ := setupRouter(t)
	v := startBattle(t, r)
	base := "/api/battles/" + v.ID

	doJSON(r, http.MethodPost, base+"/action", gin.H{"action": "attack"})
	w := doJSON(r, http.MethodPost, base+"/restart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeBattle(t, w)
	assert.Equal(t, 2, got.Round)
	assert.Equal(t, 60, got.Opponent.CurrentHealth)
	assert.Equal(t, 100, got.Player.CurrentHealth)

	w = doJSON(r, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = doJSON(r, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStatsAndRecent(t *testing.T) {
	r, _ := setupRouter(t)
	v := startBattle(t, r)
	doJSON(r, http.MethodPost, "/api/battles/"+v.ID+"/action", gin.H{"action": "retreat"})

	w := doJSON(r, http.MethodGet, "/api/stats?skin=learning", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var st game.OutcomeStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	assert.Equal(t, int64(1), st.Escaped)
	assert.Equal(t, int64(1), st.Total)

	w = doJSON(r, http.MethodGet, "/api/stats?skin=nope", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodGet, "/api/battles/recent?limit=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var recs []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recs))
	require.Len(t, recs, 1)
	assert.Equal(t, v.ID, recs[0]["session_id"])
	assert.Equal(t, "escaped", recs[0]["outcome"])
	assert.Contains(t, recs[0], "created_at")
	assert.Contains(t, recs[0], "id")
	assert.NotContains(t, recs[0], "CreatedAt")

	w = doJSON(r, http.MethodGet, "/api/battles/recent?limit=zero", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListSkinsAndHealth(t *testing.T) {
	r, _ := setupRouter(t)
	w := doJSON(r, http.MethodGet, "/api/skins", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var skins []service.SkinInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &skins))
	require.Len(t, skins, 1)
	assert.True(t, skins[0].Default)
	assert.Equal(t, 0.5, skins[0].EscapeChance)

	w = doJSON(r, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(r, http.MethodGet, "/api/version", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "commit")
}
