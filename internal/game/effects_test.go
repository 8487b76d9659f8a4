package game

import "testing"

func TestApplyEffectClampsArtistStats(t *testing.T) {
	svc := testService()

	artists := newRoster([]Artist{
		{ID: "a1", Mood: 70},
		{ID: "a2", Mood: 5},
	})
	state := &GameState{}
	summary := &TurnSummary{}

	svc.applyEffect(state, artists, Effect{Kind: EffectArtistMood, Amount: 40, ArtistID: "a1"}, summary)
	svc.applyEffect(state, artists, Effect{Kind: EffectArtistMood, Amount: -20, ArtistID: "a2"}, summary)

	a1, _ := artists.get("a1")
	a2, _ := artists.get("a2")
	if a1.Mood != 100 {
		t.Fatalf("a1 mood = %d, want clamp to 100", a1.Mood)
	}
	if a2.Mood != 0 {
		t.Fatalf("a2 mood = %d, want clamp to 0", a2.Mood)
	}
}

func TestApplyEffectReputationDelta(t *testing.T) {
	svc := testService()

	state := &GameState{Reputation: 98}
	summary := &TurnSummary{}
	svc.applyEffect(state, newRoster(nil), Effect{Kind: EffectReputation, Amount: 10}, summary)

	if state.Reputation != 100 {
		t.Fatalf("reputation = %d, want 100", state.Reputation)
	}
	// The delta reflects the clamped movement, not the nominal amount.
	if summary.ReputationDelta != 2 {
		t.Fatalf("reputation delta = %d, want 2", summary.ReputationDelta)
	}
}

func TestApplyEffectMoneyFlows(t *testing.T) {
	svc := testService()

	state := &GameState{Money: 1_000}
	summary := &TurnSummary{}
	svc.applyEffect(state, newRoster(nil), Effect{Kind: EffectMoney, Amount: 500}, summary)
	svc.applyEffect(state, newRoster(nil), Effect{Kind: EffectMoney, Amount: -2_000}, summary)

	if state.Money != -500 {
		t.Fatalf("money = %d, want -500 (may go negative)", state.Money)
	}
	if summary.Revenue != 500 || summary.Expenses != 2_000 {
		t.Fatalf("summary flows = %d / %d, want 500 / 2000", summary.Revenue, summary.Expenses)
	}
}

func TestApplyDueEffects(t *testing.T) {
	svc := testService()

	state := &GameState{
		Turn: 3,
		DelayedEffects: []DelayedEffect{
			{TriggerTurn: 2, Effect: Effect{Kind: EffectMoney, Amount: 100}, Source: "overdue"},
			{TriggerTurn: 3, Effect: Effect{Kind: EffectMoney, Amount: 10}, Source: "due now"},
			{TriggerTurn: 5, Effect: Effect{Kind: EffectMoney, Amount: 1}, Source: "later"},
		},
	}
	summary := &TurnSummary{}
	svc.applyDueEffects(state, newRoster(nil), summary)

	if state.Money != 110 {
		t.Fatalf("money = %d, want 110", state.Money)
	}
	if len(state.DelayedEffects) != 1 || state.DelayedEffects[0].Source != "later" {
		t.Fatalf("queue = %+v, want only the future effect", state.DelayedEffects)
	}
}

func TestRosterDeltas(t *testing.T) {
	artists := newRoster([]Artist{
		{ID: "a1", Mood: 50, Loyalty: 50},
		{ID: "a2", Mood: 50},
	})
	a1, _ := artists.get("a1")
	a1.Mood = 58
	a1.Loyalty = 47

	deltas := artists.deltas()
	if len(deltas) != 1 {
		t.Fatalf("deltas = %+v, want one entry for a1", deltas)
	}
	if deltas[0].ArtistID != "a1" || deltas[0].Mood != 8 || deltas[0].Loyalty != -3 {
		t.Fatalf("a1 delta = %+v, want mood +8, loyalty -3", deltas[0])
	}
}
