package game

import (
	"fmt"
	"math"
)

// ValidateProjectConfig checks producer-tier availability and the business
// rules a project must satisfy before any quality math runs. Quality
// computation must not be reached with an illegal configuration.
func (s *Service) ValidateProjectConfig(reputation int, producerTier, timeInvestment string, songCount int) error {
	tier, err := s.bal.ProducerTier(producerTier)
	if err != nil {
		return err
	}
	if _, err := s.bal.TimeInvestment(timeInvestment); err != nil {
		return err
	}
	if reputation < tier.UnlockRep {
		return fmt.Errorf("%w: %s needs reputation %d", ErrTierLocked, producerTier, tier.UnlockRep)
	}
	// Legendary producers do not take rushed bookings.
	if producerTier == "legendary" && timeInvestment == "rushed" {
		return ErrIllegalCombination
	}
	if songCount < 1 || songCount > s.bal.Quality.MaxSongsPerProject {
		return fmt.Errorf("%w: %d", ErrInvalidSongCount, songCount)
	}
	return nil
}

// SongQuality composes one song's quality. It draws exactly one float from
// the stream for the base roll. The caller must have validated the project
// configuration first.
func (s *Service) SongQuality(in QualityInput, rng *Rand) (int, error) {
	q := s.bal.Quality
	tier, err := s.bal.ProducerTier(in.ProducerTier)
	if err != nil {
		return 0, err
	}
	ti, err := s.bal.TimeInvestment(in.TimeInvestment)
	if err != nil {
		return 0, err
	}

	base := rng.Range(q.BaseMin, q.BaseMax)
	moodBonus := math.Floor(float64(in.Mood-50) * q.MoodFactor)
	budget := s.budgetBonus(in.ProducerTier, in.TimeInvestment, in.BudgetPerSong)
	impact := s.songCountImpact(in.SongCount)

	raw := (base + moodBonus + tier.QualityBonus + ti.QualityBonus + budget) * impact
	return ClampQuality(int(math.Round(raw))), nil
}

// MinimumViableCost is the per-song spend at which a configuration stops
// hurting quality.
func (s *Service) MinimumViableCost(producerTier, timeInvestment string) int64 {
	tier, err := s.bal.ProducerTier(producerTier)
	if err != nil {
		return s.bal.Quality.BaseCostPerSong
	}
	ti, err := s.bal.TimeInvestment(timeInvestment)
	if err != nil {
		return s.bal.Quality.BaseCostPerSong
	}
	return roundMoney(float64(s.bal.Quality.BaseCostPerSong) * tier.CostFactor * ti.CostFactor)
}

// budgetBonus is the piecewise diminishing-returns curve over
// budgetRatio = perSongBudget / minimumViableCost. It is monotonic
// non-decreasing: flat penalty below the viable breakpoint, three linear
// ramps to 40%/80%/100% of the max bonus, then sub-linear log growth.
func (s *Service) budgetBonus(producerTier, timeInvestment string, perSongBudget int64) float64 {
	q := s.bal.Quality
	minViable := float64(s.MinimumViableCost(producerTier, timeInvestment))
	if minViable <= 0 {
		return 0
	}
	ratio := float64(perSongBudget) / minViable

	switch {
	case ratio < q.MinimumViable:
		return q.BelowViablePenalty
	case ratio < q.OptimalEfficiency:
		span := (ratio - q.MinimumViable) / (q.OptimalEfficiency - q.MinimumViable)
		return span * 0.4 * q.MaxBudgetBonus
	case ratio < q.LuxuryThreshold:
		span := (ratio - q.OptimalEfficiency) / (q.LuxuryThreshold - q.OptimalEfficiency)
		return (0.4 + span*0.4) * q.MaxBudgetBonus
	case ratio < q.DiminishingAfter:
		span := (ratio - q.LuxuryThreshold) / (q.DiminishingAfter - q.LuxuryThreshold)
		return (0.8 + span*0.2) * q.MaxBudgetBonus
	default:
		excess := ratio - q.DiminishingAfter
		return q.MaxBudgetBonus + math.Log1p(excess)*q.DiminishingFactor*q.MaxBudgetBonus*0.1
	}
}

// songCountImpact degrades per-song quality geometrically as one project
// spans more songs, floored at the configured minimum multiplier.
func (s *Service) songCountImpact(songCount int) float64 {
	if songCount <= 1 {
		return 1
	}
	q := s.bal.Quality
	impact := math.Pow(q.PerSongFactor, float64(songCount-1))
	return math.Max(q.MinSongMultiplier, impact)
}
