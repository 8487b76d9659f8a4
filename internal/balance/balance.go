// Package balance holds the tuning tables behind every engine formula.
// Defaults are compiled in; a YAML file can override any subset of them.
package balance

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Balance struct {
	Quality     QualityTable     `yaml:"quality"`
	Streaming   StreamingTable   `yaml:"streaming"`
	Press       PressTable       `yaml:"press"`
	Tour        TourTable        `yaml:"tour"`
	Decay       DecayTable       `yaml:"decay"`
	Progression ProgressionTable `yaml:"progression"`
	Campaign    CampaignTable    `yaml:"campaign"`
	Burn        BurnTable        `yaml:"burn"`
	EventChance float64          `yaml:"event_chance"`
	Events      []TurnEvent      `yaml:"events"`
	Meetings    []RoleMeeting    `yaml:"meetings"`
}

type QualityTable struct {
	BaseMin           float64 `yaml:"base_min"`
	BaseMax           float64 `yaml:"base_max"`
	MoodFactor        float64 `yaml:"mood_factor"`
	BaseCostPerSong   int64   `yaml:"base_cost_per_song"`
	MaxBudgetBonus    float64 `yaml:"max_budget_bonus"`
	MinimumViable     float64 `yaml:"minimum_viable_ratio"`
	OptimalEfficiency float64 `yaml:"optimal_efficiency_ratio"`
	LuxuryThreshold   float64 `yaml:"luxury_threshold_ratio"`
	DiminishingAfter  float64 `yaml:"diminishing_threshold_ratio"`
	DiminishingFactor float64 `yaml:"diminishing_factor"`
	BelowViablePenalty float64 `yaml:"below_viable_penalty"`
	PerSongFactor     float64 `yaml:"per_song_factor"`
	MinSongMultiplier float64 `yaml:"min_song_multiplier"`
	MaxSongsPerProject int    `yaml:"max_songs_per_project"`
}

type StreamingTable struct {
	QualityWeight    float64 `yaml:"quality_weight"`
	PlaylistWeight   float64 `yaml:"playlist_weight"`
	ReputationWeight float64 `yaml:"reputation_weight"`
	MarketingWeight  float64 `yaml:"marketing_weight"`
	StarPowerFrom    int     `yaml:"star_power_from"`
	StarPowerCap     float64 `yaml:"star_power_cap"`
	VarianceLow      float64 `yaml:"variance_low"`
	VarianceHigh     float64 `yaml:"variance_high"`
	FirstWeekMult    float64 `yaml:"first_week_multiplier"`
	StreamsPerPoint  float64 `yaml:"streams_per_point"`
	RevenuePerStream float64 `yaml:"revenue_per_stream"`
	LeadSingleBoost  float64 `yaml:"lead_single_boost"`
}

type PressTable struct {
	BaseChance     float64 `yaml:"base_chance"`
	SpendDivisor   float64 `yaml:"spend_divisor"`
	SpendCap       float64 `yaml:"spend_cap"`
	RepFactor      float64 `yaml:"rep_factor"`
	StoryFlagBonus float64 `yaml:"story_flag_bonus"`
	MaxPickups     int     `yaml:"max_pickups"`
	RepPerPickup   int     `yaml:"rep_per_pickup"`

	// DigitalSpendPerRep is the spend that buys one reputation point
	// through a digital campaign.
	DigitalSpendPerRep int64 `yaml:"digital_spend_per_rep"`
}

type TourTable struct {
	SellThroughBase float64 `yaml:"sell_through_base"`
	RepModifier     float64 `yaml:"rep_modifier"`
	PopularityWeight float64 `yaml:"popularity_weight"`
	TicketBasePrice  float64 `yaml:"ticket_base_price"`
	PricePerCapacity float64 `yaml:"price_per_capacity"`
	MerchPercentage  float64 `yaml:"merch_percentage"`
	MinCities        int     `yaml:"min_cities"`
	MaxCities        int     `yaml:"max_cities"`
}

type DecayTable struct {
	DecayRate           float64 `yaml:"decay_rate"`
	MaxDecayMonths      int     `yaml:"max_decay_months"`
	RepBonusFactor      float64 `yaml:"rep_bonus_factor"`
	AccessBonusFactor   float64 `yaml:"access_bonus_factor"`
	OngoingFactor       float64 `yaml:"ongoing_factor"`
	RevenuePerStream    float64 `yaml:"revenue_per_stream"`
	MinRevenueThreshold int64   `yaml:"min_revenue_threshold"`
}

// AccessTier is one rung of a reputation ladder. Ladders are resolved to the
// highest rung whose threshold the player meets, in slice order.
type AccessTier struct {
	Name       string  `yaml:"name"`
	MinRep     int     `yaml:"min_rep"`
	Multiplier float64 `yaml:"multiplier"`
	PressChance float64 `yaml:"press_chance"`
	VenueFee    int64   `yaml:"venue_fee"`
	MinCapacity int     `yaml:"min_capacity"`
	MaxCapacity int     `yaml:"max_capacity"`
	ScoreBonus  int64   `yaml:"score_bonus"`
}

type ProducerTier struct {
	Name         string  `yaml:"name"`
	UnlockRep    int     `yaml:"unlock_rep"`
	QualityBonus float64 `yaml:"quality_bonus"`
	CostFactor   float64 `yaml:"cost_factor"`
}

type TimeInvestment struct {
	Name         string  `yaml:"name"`
	QualityBonus float64 `yaml:"quality_bonus"`
	CostFactor   float64 `yaml:"cost_factor"`
}

type ProgressionTable struct {
	PlaylistTiers   []AccessTier     `yaml:"playlist_tiers"`
	PressTiers      []AccessTier     `yaml:"press_tiers"`
	VenueTiers      []AccessTier     `yaml:"venue_tiers"`
	ProducerTiers   []ProducerTier   `yaml:"producer_tiers"`
	TimeInvestments []TimeInvestment `yaml:"time_investments"`
	SecondArtistRep int              `yaml:"second_artist_rep"`
	FourthSlotRep   int              `yaml:"fourth_slot_rep"`
	BaseFocusSlots  int              `yaml:"base_focus_slots"`
	BaseArtistSlots int              `yaml:"base_artist_slots"`
}

type CampaignTable struct {
	LengthTurns     int     `yaml:"length_turns"`
	MoneyDivisor    int64   `yaml:"money_divisor"`
	RepDivisor      int     `yaml:"rep_divisor"`
	FailureFloor    int64   `yaml:"failure_floor"`
	DominanceRatio  float64 `yaml:"dominance_ratio"`
	BalancedFloor   int64   `yaml:"balanced_floor"`
	StartingMoney   int64   `yaml:"starting_money"`
	StartingRep     int     `yaml:"starting_rep"`
}

type BurnTable struct {
	MinPerTurn int64 `yaml:"min_per_turn"`
	MaxPerTurn int64 `yaml:"max_per_turn"`
}

// TurnEvent is one entry of the random event table. Weights are relative;
// Chance is the probability that any event fires at all in a given turn.
type TurnEvent struct {
	Name    string        `yaml:"name"`
	Weight  float64       `yaml:"weight"`
	Effects []EffectSpec  `yaml:"effects"`
}

type EffectSpec struct {
	Kind   string `yaml:"kind"`
	Amount int64  `yaml:"amount"`
	Delay  int    `yaml:"delay"`
}

type MeetingChoice struct {
	ID      string       `yaml:"id"`
	Label   string       `yaml:"label"`
	Effects []EffectSpec `yaml:"effects"`
}

type RoleMeeting struct {
	Role    string          `yaml:"role"`
	Prompt  string          `yaml:"prompt"`
	Choices []MeetingChoice `yaml:"choices"`
}

// Default returns the compiled-in tables.
func Default() *Balance {
	return &Balance{
		Quality: QualityTable{
			BaseMin:            40,
			BaseMax:            60,
			MoodFactor:         0.2,
			BaseCostPerSong:    3_000,
			MaxBudgetBonus:     25,
			MinimumViable:      0.6,
			OptimalEfficiency:  1.0,
			LuxuryThreshold:    2.0,
			DiminishingAfter:   3.5,
			DiminishingFactor:  0.8,
			BelowViablePenalty: -5,
			PerSongFactor:      0.97,
			MinSongMultiplier:  0.75,
			MaxSongsPerProject: 12,
		},
		Streaming: StreamingTable{
			QualityWeight:    0.35,
			PlaylistWeight:   25,
			ReputationWeight: 0.20,
			MarketingWeight:  8,
			StarPowerFrom:    70,
			StarPowerCap:     0.25,
			VarianceLow:      0.9,
			VarianceHigh:     1.1,
			FirstWeekMult:    2.5,
			StreamsPerPoint:  1_000,
			RevenuePerStream: 0.0035,
			LeadSingleBoost:  0.10,
		},
		Press: PressTable{
			BaseChance:         0.15,
			SpendDivisor:       50_000,
			SpendCap:           0.20,
			RepFactor:          0.002,
			StoryFlagBonus:     0.15,
			MaxPickups:         8,
			RepPerPickup:       2,
			DigitalSpendPerRep: 2_000,
		},
		Tour: TourTable{
			SellThroughBase:  0.25,
			RepModifier:      0.005,
			PopularityWeight: 0.30,
			TicketBasePrice:  12,
			PricePerCapacity: 0.03,
			MerchPercentage:  0.25,
			MinCities:        1,
			MaxCities:        10,
		},
		Decay: DecayTable{
			DecayRate:           0.85,
			MaxDecayMonths:      24,
			RepBonusFactor:      0.002,
			AccessBonusFactor:   0.10,
			OngoingFactor:       0.80,
			RevenuePerStream:    0.0035,
			MinRevenueThreshold: 5,
		},
		Progression: ProgressionTable{
			PlaylistTiers: []AccessTier{
				{Name: "none", MinRep: 0, Multiplier: 0.1, ScoreBonus: 0},
				{Name: "niche", MinRep: 10, Multiplier: 0.4, ScoreBonus: 2},
				{Name: "mid", MinRep: 30, Multiplier: 0.75, ScoreBonus: 5},
				{Name: "flagship", MinRep: 60, Multiplier: 1.0, ScoreBonus: 10},
			},
			PressTiers: []AccessTier{
				{Name: "none", MinRep: 0, PressChance: 0.00, ScoreBonus: 0},
				{Name: "blogs", MinRep: 8, PressChance: 0.10, ScoreBonus: 2},
				{Name: "mid_tier", MinRep: 25, PressChance: 0.20, ScoreBonus: 5},
				{Name: "national", MinRep: 50, PressChance: 0.35, ScoreBonus: 10},
			},
			VenueTiers: []AccessTier{
				{Name: "none", MinRep: 0, VenueFee: 0, MinCapacity: 0, MaxCapacity: 50, ScoreBonus: 0},
				{Name: "clubs", MinRep: 5, VenueFee: 500, MinCapacity: 50, MaxCapacity: 500, ScoreBonus: 2},
				{Name: "theaters", MinRep: 20, VenueFee: 2_000, MinCapacity: 500, MaxCapacity: 2_000, ScoreBonus: 5},
				{Name: "arenas", MinRep: 45, VenueFee: 10_000, MinCapacity: 2_000, MaxCapacity: 20_000, ScoreBonus: 10},
			},
			ProducerTiers: []ProducerTier{
				{Name: "local", UnlockRep: 0, QualityBonus: 0, CostFactor: 1.0},
				{Name: "regional", UnlockRep: 15, QualityBonus: 5, CostFactor: 1.5},
				{Name: "national", UnlockRep: 35, QualityBonus: 12, CostFactor: 2.5},
				{Name: "legendary", UnlockRep: 60, QualityBonus: 20, CostFactor: 4.0},
			},
			TimeInvestments: []TimeInvestment{
				{Name: "rushed", QualityBonus: -5, CostFactor: 0.7},
				{Name: "standard", QualityBonus: 0, CostFactor: 1.0},
				{Name: "extended", QualityBonus: 5, CostFactor: 1.4},
				{Name: "perfectionist", QualityBonus: 10, CostFactor: 2.0},
			},
			SecondArtistRep: 25,
			FourthSlotRep:   50,
			BaseFocusSlots:  3,
			BaseArtistSlots: 1,
		},
		Campaign: CampaignTable{
			LengthTurns:    36,
			MoneyDivisor:   1_000,
			RepDivisor:     5,
			FailureFloor:   50,
			DominanceRatio: 2.0,
			BalancedFloor:  60,
			StartingMoney:  75_000,
			StartingRep:    5,
		},
		Burn: BurnTable{
			MinPerTurn: 800,
			MaxPerTurn: 1_500,
		},
		EventChance: 0.18,
		Events: []TurnEvent{
			{Name: "viral moment", Weight: 0.25, Effects: []EffectSpec{{Kind: "reputation", Amount: 4}}},
			{Name: "press scandal", Weight: 0.25, Effects: []EffectSpec{{Kind: "reputation", Amount: -3}, {Kind: "money", Amount: -1_200}}},
			{Name: "studio mishap", Weight: 0.30, Effects: []EffectSpec{{Kind: "money", Amount: -2_000}}},
			{Name: "sync placement", Weight: 0.20, Effects: []EffectSpec{{Kind: "money", Amount: 3_500}, {Kind: "creative_capital", Amount: 1}}},
		},
		Meetings: []RoleMeeting{
			{
				Role:   "manager",
				Prompt: "Quarterly priorities",
				Choices: []MeetingChoice{
					{ID: "cut_costs", Label: "Cut overhead", Effects: []EffectSpec{{Kind: "money", Amount: 2_000}, {Kind: "artist_mood", Amount: -4}}},
					{ID: "studio_time", Label: "Book extra studio time", Effects: []EffectSpec{{Kind: "money", Amount: -3_000}, {Kind: "artist_mood", Amount: 6}, {Kind: "creative_capital", Amount: 1}}},
				},
			},
			{
				Role:   "anr",
				Prompt: "Scouting direction",
				Choices: []MeetingChoice{
					{ID: "chase_trend", Label: "Chase the trend", Effects: []EffectSpec{{Kind: "reputation", Amount: 3}, {Kind: "artist_loyalty", Amount: -3}}},
					{ID: "develop_sound", Label: "Develop our sound", Effects: []EffectSpec{{Kind: "artist_loyalty", Amount: 5}, {Kind: "reputation", Amount: 2, Delay: 3}}},
				},
			},
			{
				Role:   "pr",
				Prompt: "Press strategy",
				Choices: []MeetingChoice{
					{ID: "puff_piece", Label: "Commission a profile", Effects: []EffectSpec{{Kind: "money", Amount: -1_500}, {Kind: "reputation", Amount: 3}}},
					{ID: "lie_low", Label: "Lie low this cycle", Effects: []EffectSpec{{Kind: "artist_mood", Amount: 2}}},
				},
			},
		},
	}
}

// Load reads YAML overrides on top of the defaults. Missing keys keep their
// default values.
func Load(path string) (*Balance, error) {
	b := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(raw, b); err != nil {
		return nil, fmt.Errorf("balance: %w", err)
	}
	return b, nil
}

// PlaylistTier returns the named playlist rung, or an error for unknown names.
func (b *Balance) PlaylistTier(name string) (AccessTier, error) {
	return findTier(b.Progression.PlaylistTiers, name)
}

// PressTier returns the named press rung.
func (b *Balance) PressTier(name string) (AccessTier, error) {
	return findTier(b.Progression.PressTiers, name)
}

// VenueTier returns the named venue rung.
func (b *Balance) VenueTier(name string) (AccessTier, error) {
	return findTier(b.Progression.VenueTiers, name)
}

func findTier(tiers []AccessTier, name string) (AccessTier, error) {
	for _, t := range tiers {
		if t.Name == name {
			return t, nil
		}
	}
	return AccessTier{}, fmt.Errorf("unknown tier: %s", name)
}

// ProducerTier returns the named producer tier.
func (b *Balance) ProducerTier(name string) (ProducerTier, error) {
	for _, t := range b.Progression.ProducerTiers {
		if t.Name == name {
			return t, nil
		}
	}
	return ProducerTier{}, fmt.Errorf("unknown producer tier: %s", name)
}

// TimeInvestment returns the named time investment.
func (b *Balance) TimeInvestment(name string) (TimeInvestment, error) {
	for _, t := range b.Progression.TimeInvestments {
		if t.Name == name {
			return t, nil
		}
	}
	return TimeInvestment{}, fmt.Errorf("unknown time investment: %s", name)
}

// Meeting returns the dialogue catalog entry for a role.
func (b *Balance) Meeting(role string) (RoleMeeting, error) {
	for _, m := range b.Meetings {
		if m.Role == role {
			return m, nil
		}
	}
	return RoleMeeting{}, fmt.Errorf("unknown meeting role: %s", role)
}
