package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"encore/internal/balance"
)

// storeFailure marks a Datastore error inside action resolution. Unlike a
// validation rejection it aborts the whole turn.
type storeFailure struct{ err error }

func (e storeFailure) Error() string { return e.err.Error() }
func (e storeFailure) Unwrap() error { return e.err }

// resolveActions walks the turn's selected actions in submission order.
// Each action consumes exactly one focus slot; rejected actions are
// recorded in the summary and never abort the remaining actions. A
// Datastore failure is not a rejection and fails the turn.
func (s *Service) resolveActions(ctx context.Context, state *GameState, artists *roster, actions []Action, rng *Rand, summary *TurnSummary) error {
	for _, action := range actions {
		if state.UsedFocusSlots >= state.FocusSlots {
			summary.logf("Skipped %s: %v", action.Kind, ErrNoFocusSlots)
			continue
		}
		state.UsedFocusSlots++

		var err error
		switch action.Kind {
		case ActionRoleMeeting:
			err = s.resolveMeeting(state, artists, action, summary)
		case ActionStartProject:
			err = s.resolveStartProject(ctx, state, artists, action, summary)
		case ActionMarketing:
			err = s.resolveMarketing(state, action, rng, summary)
		case ActionArtistDialogue:
			err = s.resolveDialogue(state, artists, action, rng, summary)
		default:
			err = fmt.Errorf("%w: %s", ErrUnknownAction, action.Kind)
		}
		if err != nil {
			var sf storeFailure
			if errors.As(err, &sf) {
				return err
			}
			summary.logf("Rejected %s: %v", action.Kind, err)
		}
	}
	return nil
}

func (s *Service) resolveMeeting(state *GameState, artists *roster, action Action, summary *TurnSummary) error {
	meeting, err := s.bal.Meeting(action.Role)
	if err != nil {
		return err
	}
	var choice *balance.MeetingChoice
	for i := range meeting.Choices {
		if meeting.Choices[i].ID == action.ChoiceID {
			choice = &meeting.Choices[i]
			break
		}
	}
	if choice == nil {
		return fmt.Errorf("unknown choice %q for role %s", action.ChoiceID, action.Role)
	}

	for _, spec := range choice.Effects {
		eff := Effect{Kind: EffectKind(spec.Kind), Amount: spec.Amount, ArtistID: action.TargetID}
		if spec.Delay > 0 {
			state.DelayedEffects = append(state.DelayedEffects, DelayedEffect{
				TriggerTurn: state.Turn + spec.Delay,
				Effect:      eff,
				Source:      fmt.Sprintf("%s meeting (%s)", action.Role, choice.ID),
			})
			continue
		}
		s.applyEffect(state, artists, eff, summary)
	}
	summary.logf("Met with %s: %s", action.Role, choice.Label)
	return nil
}

func (s *Service) resolveStartProject(ctx context.Context, state *GameState, artists *roster, action Action, summary *TurnSummary) error {
	artist, ok := artists.get(action.TargetID)
	if !ok {
		return ErrArtistNotFound
	}
	if err := s.ValidateProjectConfig(state.Reputation, action.ProducerTier, action.TimeInvestment, action.SongCount); err != nil {
		return err
	}
	cost := action.BudgetPerSong * int64(action.SongCount)
	if cost > state.Money {
		return fmt.Errorf("%w: project needs $%d", ErrInsufficientFunds, cost)
	}

	// Name-based id keeps two runs of the same turn byte-identical.
	project := Project{
		ID:             uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%s:%d:%s", state.ID, state.Turn, action.Title))).String(),
		GameID:         state.ID,
		ArtistID:       artist.ID,
		Title:          action.Title,
		Stage:          StagePlanning,
		SongCount:      action.SongCount,
		BudgetPerSong:  action.BudgetPerSong,
		ProducerTier:   action.ProducerTier,
		TimeInvestment: action.TimeInvestment,
		StartTurn:      state.Turn,
	}
	if err := s.store.CreateProject(ctx, project); err != nil {
		return storeFailure{fmt.Errorf("create project: %w", err)}
	}

	state.Money -= cost
	summary.Expenses += cost
	summary.logf("Started %q with %s (%d songs, %s/%s, $%d)",
		project.Title, artist.Name, project.SongCount, project.ProducerTier, project.TimeInvestment, cost)
	return nil
}

func (s *Service) resolveMarketing(state *GameState, action Action, rng *Rand, summary *TurnSummary) error {
	if action.Spend <= 0 {
		return fmt.Errorf("marketing spend must be > 0")
	}
	if action.Spend > state.Money {
		return fmt.Errorf("%w: campaign needs $%d", ErrInsufficientFunds, action.Spend)
	}
	if action.MarketingType != "press" && action.MarketingType != "digital" {
		return fmt.Errorf("marketing type must be press or digital")
	}

	state.Money -= action.Spend
	summary.Expenses += action.Spend

	switch action.MarketingType {
	case "press":
		pickups, err := s.PressPickups(PressInput{
			PressTier:  state.PressTier,
			Spend:      action.Spend,
			Reputation: state.Reputation,
			StoryFlag:  action.StoryFlag,
		}, rng)
		if err != nil {
			return err
		}
		gain := pickups * s.bal.Press.RepPerPickup
		before := state.Reputation
		state.Reputation = ClampStat(state.Reputation + gain)
		summary.ReputationDelta += state.Reputation - before
		summary.logf("Press push ($%d) landed %d pickups", action.Spend, pickups)
	case "digital":
		gain := int(action.Spend / s.bal.Press.DigitalSpendPerRep)
		before := state.Reputation
		state.Reputation = ClampStat(state.Reputation + gain)
		summary.ReputationDelta += state.Reputation - before
		summary.logf("Digital campaign ($%d) raised the label's profile", action.Spend)
	}
	return nil
}

// resolveDialogue applies small randomized deltas. Draw order is fixed:
// mood, then loyalty, then creative capital.
func (s *Service) resolveDialogue(state *GameState, artists *roster, action Action, rng *Rand, summary *TurnSummary) error {
	artist, ok := artists.get(action.TargetID)
	if !ok {
		return ErrArtistNotFound
	}
	mood := rng.IntBetween(-3, 5)
	loyalty := rng.IntBetween(0, 3)
	creative := rng.IntBetween(0, 2)

	artist.Mood = ClampStat(artist.Mood + mood)
	artist.Loyalty = ClampStat(artist.Loyalty + loyalty)
	state.CreativeCapital = ClampStat(state.CreativeCapital + creative)
	summary.logf("Checked in with %s (mood %+d, loyalty %+d)", artist.Name, mood, loyalty)
	return nil
}

// applyOperatingBurn deducts the unconditional end-of-turn overhead: a
// random base range plus each signed artist's weekly cost. One draw.
func (s *Service) applyOperatingBurn(state *GameState, artists *roster, rng *Rand, summary *TurnSummary) {
	burn := int64(rng.IntBetween(int(s.bal.Burn.MinPerTurn), int(s.bal.Burn.MaxPerTurn)))
	for _, a := range artists.all() {
		burn += a.WeeklyCost
	}
	state.Money -= burn
	summary.Expenses += burn
	summary.logf("Operating costs: $%d", burn)
}
