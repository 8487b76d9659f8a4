package game

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"encore/internal/balance"
)

// Service is the simulation engine. It holds no per-game state: every
// campaign it touches lives in a GameState plus the Datastore rows behind
// it, so one Service can drive any number of games.
type Service struct {
	store Datastore
	bal   *balance.Balance
	log   *slog.Logger
}

func New(store Datastore, bal *balance.Balance, log *slog.Logger) *Service {
	return &Service{store: store, bal: bal, log: log}
}

// Balance exposes the active tuning tables to callers that render choices
// (venue tiers, meeting prompts) without re-deriving them.
func (s *Service) Balance() *balance.Balance { return s.bal }

// Artist fetches one stored artist.
func (s *Service) Artist(ctx context.Context, id string) (Artist, error) {
	return s.store.GetArtist(ctx, id)
}

// NewGame builds the turn-zero state for a fresh campaign.
func (s *Service) NewGame(seed int64) GameState {
	p := s.bal.Progression
	return GameState{
		ID:                uuid.NewString(),
		Turn:              1,
		Money:             s.bal.Campaign.StartingMoney,
		Reputation:        s.bal.Campaign.StartingRep,
		FocusSlots:        p.BaseFocusSlots,
		ArtistSlots:       p.BaseArtistSlots,
		PlaylistTier:      p.PlaylistTiers[0].Name,
		PressTier:         p.PressTiers[0].Name,
		VenueTier:         p.VenueTiers[0].Name,
		UnlockedProducers: []string{p.ProducerTiers[0].Name},
		RNGSeed:           seed,
	}
}

// SignArtist adds an act to the roster if a slot is open and the signing
// cost is covered. Returns the updated state and the stored artist.
func (s *Service) SignArtist(ctx context.Context, state GameState, artist Artist) (GameState, Artist, error) {
	if state.CampaignCompleted {
		return state, Artist{}, ErrCampaignCompleted
	}
	existing, err := s.store.ListArtists(ctx, state.ID)
	if err != nil {
		return state, Artist{}, fmt.Errorf("list artists: %w", err)
	}
	if len(existing) >= state.ArtistSlots {
		return state, Artist{}, ErrRosterFull
	}
	if artist.SigningCost > state.Money {
		return state, Artist{}, fmt.Errorf("%w: signing needs $%d", ErrInsufficientFunds, artist.SigningCost)
	}

	artist.ID = uuid.NewString()
	artist.GameID = state.ID
	if err := s.store.CreateArtist(ctx, artist); err != nil {
		return state, Artist{}, fmt.Errorf("create artist: %w", err)
	}
	state.Money -= artist.SigningCost
	s.log.Info("artist signed", "game", state.ID, "artist", artist.Name, "cost", artist.SigningCost)
	return state, artist, nil
}

// AdvanceTurn runs one full turn. The input state is never mutated; the
// returned state is a fresh value. Store writes are not rolled back here:
// on error the caller must discard the returned state and treat the turn
// as failed, which is why Datastore implementations are expected to wrap a
// turn in a transaction.
//
// Resolution order is fixed: player actions, project pipeline, catalog
// decay, due delayed effects, the random event roll, operating burn,
// progression, then scoring on the final turn.
func (s *Service) AdvanceTurn(ctx context.Context, prev GameState, actions []Action) (GameState, TurnSummary, *CampaignResult, error) {
	if prev.CampaignCompleted {
		return prev, TurnSummary{}, nil, ErrCampaignCompleted
	}

	state := cloneState(prev)
	summary := TurnSummary{Turn: state.Turn}
	rng := TurnRand(state.ID, state.Turn, state.RNGSeed)

	stored, err := s.store.ListArtists(ctx, state.ID)
	if err != nil {
		return prev, summary, nil, fmt.Errorf("list artists: %w", err)
	}
	artists := newRoster(stored)

	if err := s.resolveActions(ctx, &state, artists, actions, rng, &summary); err != nil {
		return prev, summary, nil, err
	}
	if err := s.advanceProjects(ctx, &state, artists, rng, &summary); err != nil {
		return prev, summary, nil, err
	}
	if err := s.runCatalogDecay(ctx, &state, &summary); err != nil {
		return prev, summary, nil, err
	}
	s.applyDueEffects(&state, artists, &summary)
	s.rollEvent(&state, artists, rng, &summary)
	s.applyOperatingBurn(&state, artists, rng, &summary)
	s.updateProgression(&state, &summary)

	if err := s.store.UpdateArtists(ctx, artists.all()); err != nil {
		return prev, summary, nil, fmt.Errorf("update artists: %w", err)
	}
	summary.ArtistDeltas = artists.deltas()

	var result *CampaignResult
	if state.Turn >= s.bal.Campaign.LengthTurns {
		result = s.scoreCampaign(&state)
		summary.logf("Campaign over: %s (score %d)", result.Victory, result.Score)
	}

	state.Turn++
	state.UsedFocusSlots = 0

	s.log.Info("turn advanced",
		"game", state.ID,
		"turn", summary.Turn,
		"money", state.Money,
		"reputation", state.Reputation,
	)
	return state, summary, result, nil
}

// rollEvent fires at most one random event per turn: one draw to decide
// whether anything happens, one weighted draw to pick the entry.
func (s *Service) rollEvent(state *GameState, artists *roster, rng *Rand, summary *TurnSummary) {
	if len(s.bal.Events) == 0 || rng.Float64() >= s.bal.EventChance {
		return
	}

	var totalWeight float64
	for _, ev := range s.bal.Events {
		totalWeight += ev.Weight
	}
	pick := rng.Float64() * totalWeight
	event := s.bal.Events[len(s.bal.Events)-1]
	for _, ev := range s.bal.Events {
		pick -= ev.Weight
		if pick < 0 {
			event = ev
			break
		}
	}

	for _, spec := range event.Effects {
		eff := Effect{Kind: EffectKind(spec.Kind), Amount: spec.Amount}
		if spec.Delay > 0 {
			state.DelayedEffects = append(state.DelayedEffects, DelayedEffect{
				TriggerTurn: state.Turn + spec.Delay,
				Effect:      eff,
				Source:      event.Name,
			})
			continue
		}
		s.applyEffect(state, artists, eff, summary)
	}
	summary.Events = append(summary.Events, event.Name)
	summary.logf("Event: %s", event.Name)
}

// cloneState deep-copies the slices so the caller's value stays untouched.
func cloneState(in GameState) GameState {
	out := in
	out.UnlockedProducers = append([]string(nil), in.UnlockedProducers...)
	out.DelayedEffects = append([]DelayedEffect(nil), in.DelayedEffects...)
	return out
}
