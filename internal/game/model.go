package game

import (
	"errors"
	"math"
)

const (
	// Quality bounds for a generated song.
	MinQuality = 20
	MaxQuality = 100

	// StatMin and StatMax bound every 0-100 stat (reputation, mood,
	// loyalty, energy, popularity).
	StatMin = 0
	StatMax = 100
)

var (
	ErrCampaignCompleted  = errors.New("campaign already completed")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrArtistNotFound     = errors.New("artist not found")
	ErrProjectNotFound    = errors.New("project not found")
	ErrTierLocked         = errors.New("producer tier not unlocked at current reputation")
	ErrIllegalCombination = errors.New("producer tier rejects this time investment")
	ErrInvalidSongCount   = errors.New("song count out of range for project")
	ErrRosterFull         = errors.New("artist roster is full")
	ErrNoFocusSlots       = errors.New("no focus slots remaining")
	ErrUnknownAction      = errors.New("unknown action kind")
	ErrInvalidTourInput   = errors.New("invalid tour input")
)

// ClampStat keeps a 0-100 stat in range.
func ClampStat(v int) int {
	if v < StatMin {
		return StatMin
	}
	if v > StatMax {
		return StatMax
	}
	return v
}

// ClampQuality keeps a song quality in [MinQuality, MaxQuality].
func ClampQuality(v int) int {
	if v < MinQuality {
		return MinQuality
	}
	if v > MaxQuality {
		return MaxQuality
	}
	return v
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func roundMoney(v float64) int64 {
	return int64(math.Round(v))
}
