package game

// roster tracks the game's artists across a turn so that effect
// application can clamp stats and the summary can report net deltas.
type roster struct {
	artists  map[string]*Artist
	order    []string
	baseline map[string]Artist
}

func newRoster(artists []Artist) *roster {
	r := &roster{
		artists:  make(map[string]*Artist, len(artists)),
		baseline: make(map[string]Artist, len(artists)),
	}
	for i := range artists {
		a := artists[i]
		r.artists[a.ID] = &artists[i]
		r.baseline[a.ID] = a
		r.order = append(r.order, a.ID)
	}
	return r
}

func (r *roster) get(id string) (*Artist, bool) {
	a, ok := r.artists[id]
	return a, ok
}

func (r *roster) all() []Artist {
	out := make([]Artist, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.artists[id])
	}
	return out
}

func (r *roster) deltas() []ArtistDelta {
	var out []ArtistDelta
	for _, id := range r.order {
		a := r.artists[id]
		was := r.baseline[id]
		d := ArtistDelta{
			ArtistID:   id,
			Mood:       a.Mood - was.Mood,
			Loyalty:    a.Loyalty - was.Loyalty,
			Energy:     a.Energy - was.Energy,
			Popularity: a.Popularity - was.Popularity,
		}
		if d.Mood != 0 || d.Loyalty != 0 || d.Energy != 0 || d.Popularity != 0 {
			out = append(out, d)
		}
	}
	return out
}

// applyEffect dispatches one typed effect against state and roster. The
// switch is exhaustive over EffectKind; unknown kinds are recorded and
// skipped rather than aborting the turn.
func (s *Service) applyEffect(state *GameState, artists *roster, eff Effect, summary *TurnSummary) {
	switch eff.Kind {
	case EffectMoney:
		state.Money += eff.Amount
		if eff.Amount >= 0 {
			summary.Revenue += eff.Amount
		} else {
			summary.Expenses += -eff.Amount
		}
	case EffectReputation:
		before := state.Reputation
		state.Reputation = ClampStat(state.Reputation + int(eff.Amount))
		summary.ReputationDelta += state.Reputation - before
	case EffectCreativeCapital:
		state.CreativeCapital = ClampStat(state.CreativeCapital + int(eff.Amount))
	case EffectArtistMood:
		if a, ok := artists.get(eff.ArtistID); ok {
			a.Mood = ClampStat(a.Mood + int(eff.Amount))
		}
	case EffectArtistLoyalty:
		if a, ok := artists.get(eff.ArtistID); ok {
			a.Loyalty = ClampStat(a.Loyalty + int(eff.Amount))
		}
	case EffectArtistEnergy:
		if a, ok := artists.get(eff.ArtistID); ok {
			a.Energy = ClampStat(a.Energy + int(eff.Amount))
		}
	default:
		summary.logf("Ignored unknown effect kind %q", eff.Kind)
	}
}

// applyDueEffects drains every delayed effect scheduled for the current
// turn or earlier, in queue order.
func (s *Service) applyDueEffects(state *GameState, artists *roster, summary *TurnSummary) {
	if len(state.DelayedEffects) == 0 {
		return
	}
	var remaining []DelayedEffect
	for _, de := range state.DelayedEffects {
		if de.TriggerTurn > state.Turn {
			remaining = append(remaining, de)
			continue
		}
		s.applyEffect(state, artists, de.Effect, summary)
		summary.logf("Delayed effect from %s landed (%s %+d)", de.Source, de.Effect.Kind, de.Effect.Amount)
	}
	state.DelayedEffects = remaining
}
