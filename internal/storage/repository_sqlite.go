package storage

import (
	"errors"

	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/game"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) SaveBattleRecord(rec *game.BattleRecord) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}, {Name: "round"}},
		DoNothing: true,
	}).Create(rec).Error
}

func (r *sqliteRepository) GetBattleRecord(sessionID string, round int) (*game.BattleRecord, error) {
	var rec game.BattleRecord
	err := r.db.Where("session_id = ? AND round = ?", sessionID, round).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *sqliteRepository) GetOutcomeStats(skin string) (*game.OutcomeStats, error) {
	var rows []struct {
		Outcome string
		Count   int64
	}
	q := r.db.Model(&game.BattleRecord{}).Select("outcome, COUNT(*) AS count")
	if skin != "" {
		q = q.Where("skin = ?", skin)
	}
	if err := q.Group("outcome").Scan(&rows).Error; err != nil {
		return nil, err
	}

	st := &game.OutcomeStats{Skin: skin}
	for _, row := range rows {
		switch game.Phase(row.Outcome) {
		case game.PhaseWon:
			st.Won = row.Count
		case game.PhaseLost:
			st.Lost = row.Count
		case game.PhaseEscaped:
			st.Escaped = row.Count
		}
		st.Total += row.Count
	}
	return st, nil
}

func (r *sqliteRepository) GetRecentRecords(limit int) ([]game.BattleRecord, error) {
	var recs []game.BattleRecord
	if err := r.db.Order("created_at desc, id desc").Limit(limit).Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}
