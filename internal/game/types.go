package game

import "fmt"

// Archetype is one of three fixed artist personality categories. It colors
// flavor text and dialogue, not the core formulas.
type Archetype string

const (
	ArchetypeVisionary   Archetype = "visionary"
	ArchetypeWorkhorse   Archetype = "workhorse"
	ArchetypeTrendsetter Archetype = "trendsetter"
)

// Stage is a project's pipeline position. Transitions are monotonic:
// planning -> production -> marketing -> released.
type Stage string

const (
	StagePlanning   Stage = "planning"
	StageProduction Stage = "production"
	StageMarketing  Stage = "marketing"
	StageReleased   Stage = "released"
)

// ActionKind tags the four player action variants.
type ActionKind string

const (
	ActionRoleMeeting    ActionKind = "role_meeting"
	ActionStartProject   ActionKind = "start_project"
	ActionMarketing      ActionKind = "marketing"
	ActionArtistDialogue ActionKind = "artist_dialogue"
)

// EffectKind is the closed set of mutations an effect can apply.
type EffectKind string

const (
	EffectMoney           EffectKind = "money"
	EffectReputation      EffectKind = "reputation"
	EffectCreativeCapital EffectKind = "creative_capital"
	EffectArtistMood      EffectKind = "artist_mood"
	EffectArtistLoyalty   EffectKind = "artist_loyalty"
	EffectArtistEnergy    EffectKind = "artist_energy"
)

// Effect is one typed mutation. ArtistID is required for the artist_* kinds
// and ignored otherwise.
type Effect struct {
	Kind     EffectKind `json:"kind"`
	Amount   int64      `json:"amount"`
	ArtistID string     `json:"artist_id,omitempty"`
}

// DelayedEffect schedules an effect for a future turn.
type DelayedEffect struct {
	TriggerTurn int    `json:"trigger_turn"`
	Effect      Effect `json:"effect"`
	Source      string `json:"source"`
}

// GameState is the full simulation state for one campaign. It is owned by
// AdvanceTurn for the duration of a call and persisted by the caller
// between turns.
type GameState struct {
	ID              string `json:"id"`
	Turn            int    `json:"turn"`
	Money           int64  `json:"money"`
	Reputation      int    `json:"reputation"`
	CreativeCapital int    `json:"creative_capital"`

	FocusSlots     int `json:"focus_slots"`
	UsedFocusSlots int `json:"used_focus_slots"`
	ArtistSlots    int `json:"artist_slots"`

	PlaylistTier string `json:"playlist_tier"`
	PressTier    string `json:"press_tier"`
	VenueTier    string `json:"venue_tier"`

	UnlockedProducers []string `json:"unlocked_producers"`
	SecondArtistSlot  bool     `json:"second_artist_slot"`
	FourthFocusSlot   bool     `json:"fourth_focus_slot"`

	DelayedEffects []DelayedEffect `json:"delayed_effects"`

	RNGSeed           int64 `json:"rng_seed,omitempty"`
	CampaignCompleted bool  `json:"campaign_completed"`
}

// Artist is a signed act. Talent and work ethic are fixed at signing;
// mood, loyalty, energy and popularity move with play.
type Artist struct {
	ID         string    `json:"id"`
	GameID     string    `json:"game_id"`
	Name       string    `json:"name"`
	Archetype  Archetype `json:"archetype"`
	Talent     int       `json:"talent"`
	WorkEthic  int       `json:"work_ethic"`
	Mood       int       `json:"mood"`
	Loyalty    int       `json:"loyalty"`
	Energy     int       `json:"energy"`
	Popularity int       `json:"popularity"`
	SigningCost int64    `json:"signing_cost"`
	WeeklyCost  int64    `json:"weekly_cost"`
}

// Project is a recording project moving through the pipeline. Budget,
// producer tier and time investment are fixed at creation.
type Project struct {
	ID             string `json:"id"`
	GameID         string `json:"game_id"`
	ArtistID       string `json:"artist_id"`
	Title          string `json:"title"`
	Stage          Stage  `json:"stage"`
	SongCount      int    `json:"song_count"`
	SongsCreated   int    `json:"songs_created"`
	BudgetPerSong  int64  `json:"budget_per_song"`
	ProducerTier   string `json:"producer_tier"`
	TimeInvestment string `json:"time_investment"`
	MarketingSpend int64  `json:"marketing_spend"`
	LeadSingleID   string `json:"lead_single_id,omitempty"`
	StartTurn      int    `json:"start_turn"`
}

// Song is created once during production and mutated afterwards only by
// catalog decay.
type Song struct {
	ID             string `json:"id"`
	GameID         string `json:"game_id"`
	ProjectID      string `json:"project_id"`
	ArtistID       string `json:"artist_id"`
	Title          string `json:"title"`
	Quality        int    `json:"quality"`
	Recorded       bool   `json:"recorded"`
	Released       bool   `json:"released"`
	InitialStreams int64  `json:"initial_streams"`
	TotalStreams   int64  `json:"total_streams"`
	TotalRevenue   int64  `json:"total_revenue"`
	ReleaseTurn    int    `json:"release_turn"`
}

// Action is one player selection for the turn. Exactly one focus slot is
// consumed per action, in submission order.
type Action struct {
	Kind     ActionKind `json:"kind"`
	TargetID string     `json:"target_id,omitempty"`

	// role_meeting
	Role     string `json:"role,omitempty"`
	ChoiceID string `json:"choice_id,omitempty"`

	// start_project
	Title          string `json:"title,omitempty"`
	SongCount      int    `json:"song_count,omitempty"`
	BudgetPerSong  int64  `json:"budget_per_song,omitempty"`
	ProducerTier   string `json:"producer_tier,omitempty"`
	TimeInvestment string `json:"time_investment,omitempty"`

	// marketing
	MarketingType string `json:"marketing_type,omitempty"` // "press" or "digital"
	Spend         int64  `json:"spend,omitempty"`
	StoryFlag     bool   `json:"story_flag,omitempty"`
}

// ArtistDelta records one artist's net stat movement over a turn.
type ArtistDelta struct {
	ArtistID   string `json:"artist_id"`
	Mood       int    `json:"mood"`
	Loyalty    int    `json:"loyalty"`
	Energy     int    `json:"energy"`
	Popularity int    `json:"popularity"`
}

// TurnSummary accumulates everything that happened in one advancement call.
// It is write-once: a fresh summary is built per turn and never merged.
type TurnSummary struct {
	Turn            int           `json:"turn"`
	Changes         []string      `json:"changes"`
	Revenue         int64         `json:"revenue"`
	Expenses        int64         `json:"expenses"`
	ReputationDelta int           `json:"reputation_delta"`
	Events          []string      `json:"events"`
	ArtistDeltas    []ArtistDelta `json:"artist_deltas"`
}

func (t *TurnSummary) logf(format string, args ...any) {
	t.Changes = append(t.Changes, fmt.Sprintf(format, args...))
}

// VictoryType classifies a finished campaign.
type VictoryType string

const (
	VictoryFailure    VictoryType = "failure"
	VictoryCommercial VictoryType = "commercial_success"
	VictoryAcclaim    VictoryType = "critical_acclaim"
	VictoryBalanced   VictoryType = "balanced_growth"
	VictorySurvival   VictoryType = "survival"
)

// CampaignResult is the terminal score breakdown.
type CampaignResult struct {
	Score         int64       `json:"score"`
	MoneyScore    int64       `json:"money_score"`
	RepScore      int64       `json:"rep_score"`
	AccessBonus   int64       `json:"access_bonus"`
	Victory       VictoryType `json:"victory"`
}

// StreamingInput feeds the streaming-outcome formula.
type StreamingInput struct {
	Quality        int
	PlaylistTier   string
	Reputation     int
	MarketingSpend int64
	Popularity     int
	LeadSingleHit  bool
}

// PressInput feeds the press-pickup trials.
type PressInput struct {
	PressTier  string
	Spend      int64
	Reputation int
	StoryFlag  bool
}

// TourInput feeds the tour revenue breakdown.
type TourInput struct {
	VenueTier       string
	VenueCapacity   int
	Cities          int
	MarketingBudget int64
	Reputation      int
	Popularity      int
}

// TourBreakdown is the per-city and total tour economics.
type TourBreakdown struct {
	SellThrough      float64 `json:"sell_through"`
	TicketPrice      float64 `json:"ticket_price"`
	RevenuePerCity   int64   `json:"revenue_per_city"`
	CostPerCity      int64   `json:"cost_per_city"`
	MarketingPerCity int64   `json:"marketing_per_city"`
	Cities           int     `json:"cities"`
	TotalRevenue     int64   `json:"total_revenue"`
	TotalCosts       int64   `json:"total_costs"`
	NetProfit        int64   `json:"net_profit"`
}

// QualityInput feeds the song quality model. Talent and WorkEthic are
// part of the model's input contract but carry no weight in the current
// formula; only Mood moves the roll.
type QualityInput struct {
	Mood           int
	Talent         int
	WorkEthic      int
	ProducerTier   string
	TimeInvestment string
	SongCount      int
	BudgetPerSong  int64
}
