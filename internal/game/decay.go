package game

import (
	"context"
	"fmt"
	"math"
)

// CatalogDecay is one released song's ongoing monthly contribution.
type CatalogDecay struct {
	Streams int64
	Revenue int64
}

// SongDecay computes one song's catalog contribution for the current turn.
// Songs outside the decay window contribute nothing, and revenue below the
// configured threshold is floored to zero.
func (s *Service) SongDecay(song Song, currentTurn, reputation int, playlistTier string) CatalogDecay {
	d := s.bal.Decay
	months := currentTurn - song.ReleaseTurn
	if months <= 0 || months > d.MaxDecayMonths {
		return CatalogDecay{}
	}

	tier, err := s.bal.PlaylistTier(playlistTier)
	if err != nil {
		return CatalogDecay{}
	}

	decay := math.Pow(d.DecayRate, float64(months))
	repBonus := 1 + float64(reputation-50)*d.RepBonusFactor
	accessBonus := 1 + (tier.Multiplier-1)*d.AccessBonusFactor

	monthlyStreams := float64(song.InitialStreams) * decay * repBonus * accessBonus * d.OngoingFactor
	if monthlyStreams < 0 {
		return CatalogDecay{}
	}
	streams := int64(math.Round(monthlyStreams))
	revenue := roundMoney(monthlyStreams * d.RevenuePerStream)
	if revenue < d.MinRevenueThreshold {
		return CatalogDecay{Streams: streams}
	}
	return CatalogDecay{Streams: streams, Revenue: revenue}
}

// runCatalogDecay walks every released song, accrues its contribution into
// state and summary, and persists all touched songs in one batched write.
func (s *Service) runCatalogDecay(ctx context.Context, state *GameState, summary *TurnSummary) error {
	songs, err := s.store.ReleasedSongs(ctx, state.ID)
	if err != nil {
		return fmt.Errorf("released songs: %w", err)
	}

	var updated []Song
	var total int64
	for _, song := range songs {
		dec := s.SongDecay(song, state.Turn, state.Reputation, state.PlaylistTier)
		if dec.Streams == 0 && dec.Revenue == 0 {
			continue
		}
		song.TotalStreams += dec.Streams
		song.TotalRevenue += dec.Revenue
		updated = append(updated, song)
		if dec.Revenue > 0 {
			total += dec.Revenue
		}
	}
	if len(updated) > 0 {
		if err := s.store.UpdateSongs(ctx, updated); err != nil {
			return fmt.Errorf("update songs: %w", err)
		}
	}
	if total > 0 {
		state.Money += total
		summary.Revenue += total
		summary.logf("Catalog brought in $%d across %d songs", total, len(updated))
	}
	return nil
}
