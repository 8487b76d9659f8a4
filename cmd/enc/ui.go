package main

import (
	"fmt"
	"strconv"
	"strings"

	"encore/internal/game"

	"github.com/fatih/color"
)

var (
	accent  = color.New(color.FgCyan, color.Bold)
	success = color.New(color.FgGreen, color.Bold)
	danger  = color.New(color.FgRed, color.Bold)
	neutral = color.New(color.FgHiWhite)
)

func renderTurn(state game.GameState, summary game.TurnSummary) {
	accent.Printf("\n== TURN %d ==\n", summary.Turn)
	fmt.Printf("Money:      %s\n", colorizeMoney(state.Money))
	fmt.Printf("Reputation: %d (%+d)\n", state.Reputation, summary.ReputationDelta)
	fmt.Printf("Access:     playlists=%s press=%s venues=%s\n",
		state.PlaylistTier, state.PressTier, state.VenueTier)
	for _, line := range summary.Changes {
		neutral.Println("  " + line)
	}
	for _, ev := range summary.Events {
		danger.Println("  ! " + ev)
	}
}

func renderResult(result game.CampaignResult) {
	accent.Println("\n== CAMPAIGN RESULT ==")
	fmt.Printf("Victory:      %s\n", result.Victory)
	fmt.Printf("Score:        %d\n", result.Score)
	fmt.Printf("Money score:  %d\n", result.MoneyScore)
	fmt.Printf("Rep score:    %d\n", result.RepScore)
	fmt.Printf("Access bonus: %d\n", result.AccessBonus)
}

func renderTour(in game.TourInput, b game.TourBreakdown) {
	accent.Printf("\n== TOUR: %d x %s (cap %d) ==\n", b.Cities, in.VenueTier, in.VenueCapacity)
	fmt.Printf("Sell-through:   %.0f%%\n", b.SellThrough*100)
	fmt.Printf("Ticket price:   $%.2f\n", b.TicketPrice)
	fmt.Printf("Per city:       %s revenue, %s costs (%s marketing)\n",
		formatMoney(b.RevenuePerCity), formatMoney(b.CostPerCity), formatMoney(b.MarketingPerCity))
	fmt.Printf("Total revenue:  %s\n", formatMoney(b.TotalRevenue))
	fmt.Printf("Total costs:    %s\n", formatMoney(b.TotalCosts))
	fmt.Printf("Net profit:     %s\n", colorizeMoney(b.NetProfit))
}

func colorizeMoney(v int64) string {
	text := formatMoney(v)
	switch {
	case v > 0:
		return success.Sprint(text)
	case v < 0:
		return danger.Sprint(text)
	default:
		return neutral.Sprint(text)
	}
}

func formatMoney(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return sign + "$" + comma(v)
}

func comma(v int64) string {
	s := strconv.FormatInt(v, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
		b.WriteByte(',')
	}
	for i := pre; i < len(s); i += 3 {
		b.WriteString(s[i : i+3])
		if i+3 < len(s) {
			b.WriteByte(',')
		}
	}
	return b.String()
}
