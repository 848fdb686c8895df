package service

import (
	"context"
	"strconv"

	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/dedupe"
	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/game"
)

const (
	DefaultRecentLimit = 10
	MaxRecentLimit     = 100
)

// Stats counts finished battles by outcome. An empty skin aggregates every
// skin; an unknown one is ErrUnknownSkin.
func (b *Battles) Stats(ctx context.Context, skin string) (*game.OutcomeStats, error) {
	if skin != "" {
		se, err := b.skin(skin)
		if err != nil {
			return nil, err
		}
		skin = se.info.Name
	}
	v, err, _ := dedupe.StatsGroup.Do("stats:"+skin, func() (interface{}, error) {
		return b.records.GetOutcomeStats(skin)
	})
	if err != nil {
		return nil, err
	}
	st := *v.(*game.OutcomeStats)
	return &st, nil
}

// Recent lists the newest battle records. limit is clamped to
// [1, MaxRecentLimit]; zero or less means DefaultRecentLimit.
func (b *Battles) Recent(ctx context.Context, limit int) ([]game.BattleRecord, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		limit = MaxRecentLimit
	}
	v, err, _ := dedupe.RecentGroup.Do("recent:"+strconv.Itoa(limit), func() (interface{}, error) {
		return b.records.GetRecentRecords(limit)
	})
	if err != nil {
		return nil, err
	}
	shared := v.([]game.BattleRecord)
	return append([]game.BattleRecord(nil), shared...), nil
}
