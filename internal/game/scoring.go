package game

// scoreCampaign computes the terminal result once the campaign clock runs
// out. Victory classification checks failure first, then dominance of one
// score over the other, then the balanced floor.
func (s *Service) scoreCampaign(state *GameState) *CampaignResult {
	cfg := s.bal.Campaign

	moneyScore := state.Money / cfg.MoneyDivisor
	repScore := int64(state.Reputation / cfg.RepDivisor)

	var accessBonus int64
	if t, err := s.bal.PlaylistTier(state.PlaylistTier); err == nil {
		accessBonus += t.ScoreBonus
	}
	if t, err := s.bal.PressTier(state.PressTier); err == nil {
		accessBonus += t.ScoreBonus
	}
	if t, err := s.bal.VenueTier(state.VenueTier); err == nil {
		accessBonus += t.ScoreBonus
	}

	total := moneyScore + repScore + accessBonus
	result := &CampaignResult{
		Score:       total,
		MoneyScore:  moneyScore,
		RepScore:    repScore,
		AccessBonus: accessBonus,
	}

	switch {
	case state.Money < 0 || total < cfg.FailureFloor:
		result.Victory = VictoryFailure
	case float64(moneyScore) > float64(repScore)*cfg.DominanceRatio:
		result.Victory = VictoryCommercial
	case float64(repScore) > float64(moneyScore)*cfg.DominanceRatio:
		result.Victory = VictoryAcclaim
	case total >= cfg.BalancedFloor:
		result.Victory = VictoryBalanced
	default:
		result.Victory = VictorySurvival
	}

	state.CampaignCompleted = true
	return result
}
