package game_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"reflect"
	"testing"

	"encore/internal/balance"
	"encore/internal/game"
	"encore/internal/store/memory"
)

type fixture struct {
	svc   *game.Service
	store *memory.Store
	state game.GameState
}

// newFixture builds a campaign with fixed IDs so two fixtures are
// byte-identical and RNG streams line up.
func newFixture(t *testing.T, seed int64) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	store := memory.New()
	svc := game.New(store, balance.Default(), logger)

	state := svc.NewGame(seed)
	state.ID = "campaign-1"

	artist := game.Artist{
		ID:         "artist-1",
		GameID:     state.ID,
		Name:       "Vera Vale",
		Archetype:  game.ArchetypeVisionary,
		Talent:     65,
		WorkEthic:  60,
		Mood:       55,
		Loyalty:    50,
		Energy:     75,
		Popularity: 12,
		WeeklyCost: 400,
	}
	if err := store.CreateArtist(context.Background(), artist); err != nil {
		t.Fatalf("create artist: %v", err)
	}
	return &fixture{svc: svc, store: store, state: state}
}

func startProjectAction(songs int) game.Action {
	return game.Action{
		Kind:           game.ActionStartProject,
		TargetID:       "artist-1",
		Title:          "First Light",
		SongCount:      songs,
		BudgetPerSong:  3_500,
		ProducerTier:   "local",
		TimeInvestment: "standard",
	}
}

func TestAdvanceTurnDeterministic(t *testing.T) {
	ctx := context.Background()
	actions := []game.Action{
		startProjectAction(4),
		{Kind: game.ActionArtistDialogue, TargetID: "artist-1"},
		{Kind: game.ActionMarketing, MarketingType: "press", Spend: 3_000},
	}

	a := newFixture(t, 99)
	b := newFixture(t, 99)

	stateA, summaryA, _, errA := a.svc.AdvanceTurn(ctx, a.state, actions)
	stateB, summaryB, _, errB := b.svc.AdvanceTurn(ctx, b.state, actions)
	if errA != nil || errB != nil {
		t.Fatalf("advance errors: %v / %v", errA, errB)
	}
	if !reflect.DeepEqual(stateA, stateB) {
		t.Fatalf("states diverged:\n%+v\n%+v", stateA, stateB)
	}
	if !reflect.DeepEqual(summaryA, summaryB) {
		t.Fatalf("summaries diverged:\n%+v\n%+v", summaryA, summaryB)
	}
}

func TestAdvanceTurnLeavesInputUntouched(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 7)
	before := f.state

	next, _, _, err := f.svc.AdvanceTurn(ctx, f.state, nil)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if !reflect.DeepEqual(before, f.state) {
		t.Fatalf("input state mutated:\n%+v\n%+v", before, f.state)
	}
	if next.Turn != before.Turn+1 {
		t.Fatalf("turn = %d, want %d", next.Turn, before.Turn+1)
	}
	if next.UsedFocusSlots != 0 {
		t.Fatalf("used focus slots = %d, want reset to 0", next.UsedFocusSlots)
	}
}

func TestAdvanceTurnTerminalLatch(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 7)
	f.state.CampaignCompleted = true

	_, _, _, err := f.svc.AdvanceTurn(ctx, f.state, nil)
	if !errors.Is(err, game.ErrCampaignCompleted) {
		t.Fatalf("want ErrCampaignCompleted, got %v", err)
	}
}

func TestAdvanceTurnFocusSlotsExhausted(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 7)

	// Four dialogues against three focus slots.
	actions := make([]game.Action, 4)
	for i := range actions {
		actions[i] = game.Action{Kind: game.ActionArtistDialogue, TargetID: "artist-1"}
	}
	_, summary, _, err := f.svc.AdvanceTurn(ctx, f.state, actions)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	skipped := 0
	for _, line := range summary.Changes {
		if len(line) >= 7 && line[:7] == "Skipped" {
			skipped++
		}
	}
	if skipped != 1 {
		t.Fatalf("skipped actions = %d, want 1\nlog: %v", skipped, summary.Changes)
	}
}

func TestAdvanceTurnRejectedActionDoesNotAbort(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 7)
	// Pin the reputation arithmetic by removing the random event table.
	bal := balance.Default()
	bal.Events = nil
	f.svc = game.New(f.store, bal, slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))

	actions := []game.Action{
		// Regional producer is locked at starting reputation.
		{
			Kind: game.ActionStartProject, TargetID: "artist-1", Title: "Too Soon",
			SongCount: 4, BudgetPerSong: 3_000, ProducerTier: "regional", TimeInvestment: "standard",
		},
		{Kind: game.ActionMarketing, MarketingType: "digital", Spend: 4_000},
	}
	next, summary, _, err := f.svc.AdvanceTurn(ctx, f.state, actions)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	rejected := false
	for _, line := range summary.Changes {
		if len(line) >= 8 && line[:8] == "Rejected" {
			rejected = true
		}
	}
	if !rejected {
		t.Fatalf("no rejection recorded in %v", summary.Changes)
	}
	// The digital campaign after the rejection still ran.
	if next.Reputation != f.state.Reputation+2 {
		t.Fatalf("reputation = %d, want %d", next.Reputation, f.state.Reputation+2)
	}
	projects, err := f.store.ActiveProjects(ctx, f.state.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(projects) != 0 {
		t.Fatalf("rejected project was stored: %+v", projects)
	}
}

// brokenProjectStore fails every project write.
type brokenProjectStore struct {
	*memory.Store
	err error
}

func (s *brokenProjectStore) CreateProject(ctx context.Context, p game.Project) error {
	return s.err
}

func TestAdvanceTurnAbortsOnProjectWriteFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 7)
	broken := &brokenProjectStore{Store: f.store, err: errors.New("disk full")}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	f.svc = game.New(broken, balance.Default(), logger)

	next, summary, _, err := f.svc.AdvanceTurn(ctx, f.state, []game.Action{startProjectAction(2)})
	if err == nil {
		t.Fatal("want error from failing datastore, got nil")
	}
	if !errors.Is(err, broken.err) {
		t.Fatalf("err = %v, want wrapped %v", err, broken.err)
	}
	if next.Turn != f.state.Turn {
		t.Fatalf("turn advanced to %d despite the write failure", next.Turn)
	}
	for _, line := range summary.Changes {
		if len(line) >= 8 && line[:8] == "Rejected" {
			t.Fatalf("write failure logged as a rejection: %q", line)
		}
	}
}

func TestDigitalMarketingRateIsTunable(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 7)
	bal := balance.Default()
	bal.Events = nil
	bal.Press.DigitalSpendPerRep = 1_000
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	f.svc = game.New(f.store, bal, logger)

	actions := []game.Action{{Kind: game.ActionMarketing, MarketingType: "digital", Spend: 4_000}}
	next, _, _, err := f.svc.AdvanceTurn(ctx, f.state, actions)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if next.Reputation != f.state.Reputation+4 {
		t.Fatalf("reputation = %d, want %d", next.Reputation, f.state.Reputation+4)
	}
}

func TestProjectPipelineReleases(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 21)

	state, _, _, err := f.svc.AdvanceTurn(ctx, f.state, []game.Action{startProjectAction(2)})
	if err != nil {
		t.Fatalf("turn 1: %v", err)
	}

	// Turn 1 moved the fresh project into production; turn 2 records both
	// songs and queues marketing; turn 3 releases.
	var released []game.Song
	for turn := 2; turn <= 4; turn++ {
		state, _, _, err = f.svc.AdvanceTurn(ctx, state, nil)
		if err != nil {
			t.Fatalf("turn %d: %v", turn, err)
		}
		released, err = f.store.ReleasedSongs(ctx, f.state.ID)
		if err != nil {
			t.Fatal(err)
		}
		if len(released) == 2 {
			break
		}
	}
	if len(released) != 2 {
		t.Fatalf("released songs = %d, want 2", len(released))
	}
	for _, song := range released {
		if song.Quality < game.MinQuality || song.Quality > game.MaxQuality {
			t.Fatalf("song quality %d out of range", song.Quality)
		}
		if !song.Released || song.ReleaseTurn == 0 {
			t.Fatalf("song not marked released: %+v", song)
		}
	}
	active, err := f.store.ActiveProjects(ctx, f.state.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 0 {
		t.Fatalf("project still active after release: %+v", active)
	}
}

func TestAdvanceTurnScoresFinalTurn(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 5)
	f.state.Turn = f.svc.Balance().Campaign.LengthTurns

	next, _, result, err := f.svc.AdvanceTurn(ctx, f.state, nil)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if result == nil {
		t.Fatal("no campaign result on final turn")
	}
	if !next.CampaignCompleted {
		t.Fatal("campaign not latched after scoring")
	}
	if _, _, _, err := f.svc.AdvanceTurn(ctx, next, nil); !errors.Is(err, game.ErrCampaignCompleted) {
		t.Fatalf("post-terminal advance: want ErrCampaignCompleted, got %v", err)
	}
}

func TestSignArtistGates(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	store := memory.New()
	svc := game.New(store, balance.Default(), logger)

	state := svc.NewGame(1)
	state, _, err := svc.SignArtist(ctx, state, game.Artist{Name: "One", SigningCost: 5_000})
	if err != nil {
		t.Fatalf("first signing: %v", err)
	}

	// Starting roster has a single slot.
	if _, _, err := svc.SignArtist(ctx, state, game.Artist{Name: "Two"}); !errors.Is(err, game.ErrRosterFull) {
		t.Fatalf("want ErrRosterFull, got %v", err)
	}

	state.ArtistSlots = 2
	state.Money = 100
	if _, _, err := svc.SignArtist(ctx, state, game.Artist{Name: "Two", SigningCost: 5_000}); !errors.Is(err, game.ErrInsufficientFunds) {
		t.Fatalf("want ErrInsufficientFunds, got %v", err)
	}
}
