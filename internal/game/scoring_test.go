package game

import "testing"

func TestScoreCampaignVictoryTypes(t *testing.T) {
	svc := testService()

	cases := []struct {
		name     string
		money    int64
		rep      int
		topTiers bool
		want     VictoryType
	}{
		{"bankrupt", -5_000, 100, false, VictoryFailure},
		{"below floor", 30_000, 10, false, VictoryFailure},
		{"commercial", 400_000, 40, false, VictoryCommercial},
		{"acclaim", 9_000, 95, true, VictoryAcclaim},
		{"balanced", 35_000, 95, true, VictoryBalanced},
		{"survival", 35_000, 90, false, VictorySurvival},
	}
	for _, tc := range cases {
		state := newTestState(svc)
		state.Money = tc.money
		state.Reputation = tc.rep
		if tc.topTiers {
			state.PlaylistTier = "flagship"
			state.PressTier = "national"
			state.VenueTier = "arenas"
		}
		result := svc.scoreCampaign(&state)
		if result.Victory != tc.want {
			t.Fatalf("%s: victory = %s, want %s (score %d, money %d, rep %d)",
				tc.name, result.Victory, tc.want, result.Score, result.MoneyScore, result.RepScore)
		}
		if !state.CampaignCompleted {
			t.Fatalf("%s: terminal state not latched", tc.name)
		}
		if result.Score != result.MoneyScore+result.RepScore+result.AccessBonus {
			t.Fatalf("%s: score %d is not the sum of its parts", tc.name, result.Score)
		}
	}
}

func TestScoreCampaignAccessBonus(t *testing.T) {
	svc := testService()

	state := newTestState(svc)
	state.Money = 60_000
	state.Reputation = 60
	state.PlaylistTier = "flagship"
	state.PressTier = "national"
	state.VenueTier = "arenas"

	result := svc.scoreCampaign(&state)
	if result.AccessBonus != 30 {
		t.Fatalf("access bonus = %d, want 30 for top tiers", result.AccessBonus)
	}
}
