package game

import (
	"fmt"
	"math"
)

// StreamingOutcome computes a release's first-week stream count. It draws
// exactly one variance float from the stream.
func (s *Service) StreamingOutcome(in StreamingInput, rng *Rand) (int64, error) {
	st := s.bal.Streaming
	tier, err := s.bal.PlaylistTier(in.PlaylistTier)
	if err != nil {
		return 0, err
	}

	points := float64(in.Quality)*st.QualityWeight +
		tier.Multiplier*st.PlaylistWeight +
		float64(in.Reputation)*st.ReputationWeight +
		math.Sqrt(float64(in.MarketingSpend)/1000)*st.MarketingWeight

	if in.Popularity > st.StarPowerFrom {
		star := float64(in.Popularity-st.StarPowerFrom) / 100
		if star > st.StarPowerCap {
			star = st.StarPowerCap
		}
		points *= 1 + star
	}
	if in.LeadSingleHit {
		points *= 1 + st.LeadSingleBoost
	}

	variance := rng.Range(st.VarianceLow, st.VarianceHigh)
	streams := points * variance * st.FirstWeekMult * st.StreamsPerPoint
	if streams < 0 {
		return 0, nil
	}
	return int64(math.Round(streams)), nil
}

// StreamingRevenue converts a stream count to money.
func (s *Service) StreamingRevenue(streams int64) int64 {
	return roundMoney(float64(streams) * s.bal.Streaming.RevenuePerStream)
}

// PressPickups runs independent Bernoulli trials of the pickup chance, one
// draw per trial, up to the configured maximum pickups per release.
func (s *Service) PressPickups(in PressInput, rng *Rand) (int, error) {
	p := s.bal.Press
	tier, err := s.bal.PressTier(in.PressTier)
	if err != nil {
		return 0, err
	}

	spendMod := float64(in.Spend) / p.SpendDivisor
	if spendMod > p.SpendCap {
		spendMod = p.SpendCap
	}
	chance := p.BaseChance + tier.PressChance + spendMod + float64(in.Reputation-50)*p.RepFactor
	if in.StoryFlag {
		chance += p.StoryFlagBonus
	}
	chance = clamp01(chance)

	pickups := 0
	for i := 0; i < p.MaxPickups; i++ {
		if rng.Float64() < chance {
			pickups++
		}
	}
	return pickups, nil
}

// TourBreakdown computes tour economics. Inputs are validated before any
// computation; the formula itself is deterministic.
func (s *Service) TourBreakdown(in TourInput) (TourBreakdown, error) {
	t := s.bal.Tour
	var out TourBreakdown

	tier, err := s.bal.VenueTier(in.VenueTier)
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrInvalidTourInput, err)
	}
	if in.Reputation < StatMin || in.Reputation > StatMax {
		return out, fmt.Errorf("%w: reputation %d", ErrInvalidTourInput, in.Reputation)
	}
	if in.Popularity < StatMin || in.Popularity > StatMax {
		return out, fmt.Errorf("%w: popularity %d", ErrInvalidTourInput, in.Popularity)
	}
	if in.Cities < t.MinCities || in.Cities > t.MaxCities {
		return out, fmt.Errorf("%w: cities %d", ErrInvalidTourInput, in.Cities)
	}
	if in.MarketingBudget < 0 {
		return out, fmt.Errorf("%w: negative marketing budget", ErrInvalidTourInput)
	}
	if in.VenueCapacity < tier.MinCapacity || in.VenueCapacity > tier.MaxCapacity {
		return out, fmt.Errorf("%w: capacity %d outside %s range", ErrInvalidTourInput, in.VenueCapacity, in.VenueTier)
	}

	sellThrough := t.SellThroughBase + float64(in.Reputation)*t.RepModifier
	sellThrough *= 1 + (float64(in.Popularity)/100)*t.PopularityWeight
	sellThrough = clamp01(sellThrough)

	ticketPrice := t.TicketBasePrice + float64(in.VenueCapacity)*t.PricePerCapacity
	revenuePerCity := float64(in.VenueCapacity) * sellThrough * ticketPrice * (1 + t.MerchPercentage)
	marketingPerCity := in.MarketingBudget / int64(in.Cities)
	costPerCity := tier.VenueFee + marketingPerCity

	out.SellThrough = sellThrough
	out.TicketPrice = ticketPrice
	out.RevenuePerCity = roundMoney(revenuePerCity)
	out.MarketingPerCity = marketingPerCity
	out.CostPerCity = costPerCity
	out.Cities = in.Cities
	out.TotalRevenue = out.RevenuePerCity * int64(in.Cities)
	// MarketingPerCity is the floor share; totals cost the full budget so
	// an uneven split never undercounts the spend.
	out.TotalCosts = tier.VenueFee*int64(in.Cities) + in.MarketingBudget
	out.NetProfit = out.TotalRevenue - out.TotalCosts
	return out, nil
}
