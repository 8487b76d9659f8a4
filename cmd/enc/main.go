package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"encore/internal/balance"
	"encore/internal/game"
	"encore/internal/store/memory"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:          "enc",
		Short:        "Encore label-sim sandbox",
		SilenceUsage: true,
	}

	root.AddCommand(
		newRunCmd(),
		newQualityCmd(),
		newTourCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newService() (*game.Service, *memory.Store) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	store := memory.New()
	return game.New(store, balance.Default(), logger), store
}

func newRunCmd() *cobra.Command {
	var (
		seed  int64
		turns int
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Autopilot a campaign and print the turn log",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _ := newService()
			return runCampaign(cmd.Context(), svc, seed, turns)
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 1, "campaign seed")
	cmd.Flags().IntVar(&turns, "turns", 36, "turns to simulate")
	return cmd
}

// runCampaign plays a simple scripted label: sign one act, keep a project
// in the pipeline, push press when flush. Useful for eyeballing balance.
func runCampaign(ctx context.Context, svc *game.Service, seed int64, turns int) error {
	state := svc.NewGame(seed)
	state, artist, err := svc.SignArtist(ctx, state, game.Artist{
		Name:       "Dawn Chorus",
		Archetype:  game.ArchetypeWorkhorse,
		Talent:     62,
		WorkEthic:  70,
		Mood:       60,
		Loyalty:    50,
		Energy:     80,
		Popularity: 10,
		WeeklyCost: 400,
	})
	if err != nil {
		return err
	}

	album := 0
	for i := 0; i < turns; i++ {
		var actions []game.Action
		projectCost := int64(6 * 3_500)
		if i%5 == 0 && state.Money > projectCost+20_000 {
			album++
			actions = append(actions, game.Action{
				Kind:           game.ActionStartProject,
				TargetID:       artist.ID,
				Title:          fmt.Sprintf("Album %d", album),
				SongCount:      6,
				BudgetPerSong:  3_500,
				ProducerTier:   "local",
				TimeInvestment: "standard",
			})
		}
		if i%4 == 1 && state.Money > 10_000 {
			actions = append(actions, game.Action{
				Kind:          game.ActionMarketing,
				MarketingType: "press",
				Spend:         4_000,
			})
		}
		actions = append(actions, game.Action{
			Kind:     game.ActionArtistDialogue,
			TargetID: artist.ID,
		})

		next, summary, result, err := svc.AdvanceTurn(ctx, state, actions)
		if err != nil {
			return err
		}
		state = next
		renderTurn(state, summary)
		if result != nil {
			renderResult(*result)
			break
		}
	}
	return nil
}

func newQualityCmd() *cobra.Command {
	var (
		in      game.QualityInput
		samples int
		seed    int64
	)
	cmd := &cobra.Command{
		Use:   "quality",
		Short: "Sample the song quality model for a project setup",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _ := newService()
			if err := svc.ValidateProjectConfig(100, in.ProducerTier, in.TimeInvestment, in.SongCount); err != nil {
				return err
			}
			viable := svc.MinimumViableCost(in.ProducerTier, in.TimeInvestment)
			accent.Printf("\n== QUALITY MODEL ==\n")
			fmt.Printf("Viable budget/song: %s\n", formatMoney(viable))
			fmt.Printf("Chosen budget/song: %s\n", formatMoney(in.BudgetPerSong))

			rng := game.NewRand(seed)
			lo, hi, sum := 0, 0, 0
			for i := 0; i < samples; i++ {
				q, err := svc.SongQuality(in, rng)
				if err != nil {
					return err
				}
				if i == 0 || q < lo {
					lo = q
				}
				if q > hi {
					hi = q
				}
				sum += q
			}
			fmt.Printf("Sampled %d songs: min %d, avg %d, max %d\n", samples, lo, sum/samples, hi)
			return nil
		},
	}
	cmd.Flags().IntVar(&in.Mood, "mood", 50, "artist mood")
	cmd.Flags().IntVar(&in.SongCount, "songs", 6, "songs on the project")
	cmd.Flags().Int64Var(&in.BudgetPerSong, "budget", 3_000, "budget per song")
	cmd.Flags().StringVar(&in.ProducerTier, "producer", "local", "producer tier")
	cmd.Flags().StringVar(&in.TimeInvestment, "time", "standard", "time investment")
	cmd.Flags().IntVar(&samples, "samples", 200, "samples to draw")
	cmd.Flags().Int64Var(&seed, "seed", 1, "sampling seed")
	return cmd
}

func newTourCmd() *cobra.Command {
	var in game.TourInput
	cmd := &cobra.Command{
		Use:   "tour",
		Short: "Price a tour without booking it",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _ := newService()
			breakdown, err := svc.TourBreakdown(in)
			if err != nil {
				return err
			}
			renderTour(in, breakdown)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.VenueTier, "tier", "clubs", "venue tier")
	cmd.Flags().IntVar(&in.VenueCapacity, "capacity", 200, "venue capacity")
	cmd.Flags().IntVar(&in.Cities, "cities", 5, "cities on the routing")
	cmd.Flags().Int64Var(&in.MarketingBudget, "marketing", 10_000, "total marketing budget")
	cmd.Flags().IntVar(&in.Reputation, "rep", 20, "label reputation")
	cmd.Flags().IntVar(&in.Popularity, "popularity", 30, "artist popularity")
	return cmd
}
