package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/game"
)

func newTestRepo(t *testing.T) Repository {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "nested", "slayer.db"))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return NewSQLiteRepository(db)
}

func TestSaveAndGetBattleRecord(t *testing.T) {
	repo := newTestRepo(t)
	rec := &game.BattleRecord{SessionID: "s1", Round: 1, Skin: "learning", Outcome: string(game.PhaseWon), Turns: 4, Log: "a\nb"}
	require.NoError(t, repo.SaveBattleRecord(rec))

	got, err := repo.GetBattleRecord("s1", 1)
	require.NoError(t, err)
	assert.Equal(t, "learning", got.Skin)
	assert.Equal(t, 4, got.Turns)
	assert.Equal(t, []string{"a", "b"}, got.Lines())

	_, err = repo.GetBattleRecord("s1", 2)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestSaveBattleRecord_DuplicateIsIgnored(t *testing.T) {
	repo := newTestRepo(t)
	require.NoError(t, repo.SaveBattleRecord(&game.BattleRecord{SessionID: "s1", Round: 1, Outcome: "won", Turns: 4}))
	require.NoError(t, repo.SaveBattleRecord(&game.BattleRecord{SessionID: "s1", Round: 1, Outcome: "lost", Turns: 9}))

	got, err := repo.GetBattleRecord("s1", 1)
	require.NoError(t, err)
	assert.Equal(t, "won", got.Outcome)
}

func TestGetOutcomeStats(t *testing.T) {
	repo := newTestRepo(t)
	seed := []struct {
		skin    string
		outcome game.Phase
	}{
		{"learning", game.PhaseWon}, {"learning", game.PhaseWon}, {"learning", game.PhaseLost},
		{"polished", game.PhaseEscaped}, {"polished", game.PhaseWon},
	}
	for i, s := range seed {
		require.NoError(t, repo.SaveBattleRecord(&game.BattleRecord{SessionID: "s", Round: i + 1, Skin: s.skin, Outcome: string(s.outcome)}))
	}

	st, err := repo.GetOutcomeStats("learning")
	require.NoError(t, err)
	assert.Equal(t, game.OutcomeStats{Skin: "learning", Won: 2, Lost: 1, Total: 3}, *st)

	all, err := repo.GetOutcomeStats("")
	require.NoError(t, err)
	assert.EqualValues(t, 3, all.Won)
	assert.EqualValues(t, 1, all.Escaped)
	assert.EqualValues(t, 5, all.Total)
}

func TestGetRecentRecords(t *testing.T) {
	repo := newTestRepo(t)
	for i := 1; i <= 5; i++ {
		require.NoError(t, repo.SaveBattleRecord(&game.BattleRecord{SessionID: "s", Round: i, Outcome: "won"}))
	}
	recs, err := repo.GetRecentRecords(3)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, 5, recs[0].Round)
	assert.Equal(t, 3, recs[2].Round)
}
