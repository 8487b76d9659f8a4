package game

import "encore/internal/balance"

// updateProgression re-resolves every reputation ladder against the current
// reputation. Access tiers move both ways; producer unlocks and the extra
// artist/focus slots are one-way.
func (s *Service) updateProgression(state *GameState, summary *TurnSummary) {
	state.PlaylistTier = s.noteTierChange(state.PlaylistTier,
		resolveTier(s.bal.Progression.PlaylistTiers, state.Reputation), "playlist access", summary)
	state.PressTier = s.noteTierChange(state.PressTier,
		resolveTier(s.bal.Progression.PressTiers, state.Reputation), "press access", summary)
	state.VenueTier = s.noteTierChange(state.VenueTier,
		resolveTier(s.bal.Progression.VenueTiers, state.Reputation), "venue access", summary)

	for _, tier := range s.bal.Progression.ProducerTiers {
		if state.Reputation < tier.UnlockRep || containsString(state.UnlockedProducers, tier.Name) {
			continue
		}
		state.UnlockedProducers = append(state.UnlockedProducers, tier.Name)
		if tier.UnlockRep > 0 {
			summary.logf("producer tier unlocked: %s", tier.Name)
		}
	}

	if !state.SecondArtistSlot && state.Reputation >= s.bal.Progression.SecondArtistRep {
		state.SecondArtistSlot = true
		state.ArtistSlots++
		summary.logf("roster expanded: a second artist can be signed")
	}
	if !state.FourthFocusSlot && state.Reputation >= s.bal.Progression.FourthSlotRep {
		state.FourthFocusSlot = true
		state.FocusSlots++
		summary.logf("a fourth focus slot is now available")
	}
}

func (s *Service) noteTierChange(old, now, label string, summary *TurnSummary) string {
	if now != old {
		summary.logf("%s changed: %s -> %s", label, old, now)
	}
	return now
}

// resolveTier picks the highest rung whose threshold is met, in slice order.
func resolveTier(tiers []balance.AccessTier, rep int) string {
	name := tiers[0].Name
	for _, t := range tiers {
		if rep >= t.MinRep {
			name = t.Name
		}
	}
	return name
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
