package game

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// songsPerProductionTurn bounds how many songs one project records in a
// single turn.
const songsPerProductionTurn = 2

// advanceProjects moves every active project one step along the pipeline.
// Projects are processed in a deterministic order (start turn, then id) so
// that RNG draws line up across runs.
func (s *Service) advanceProjects(ctx context.Context, state *GameState, artists *roster, rng *Rand, summary *TurnSummary) error {
	projects, err := s.store.ActiveProjects(ctx, state.ID)
	if err != nil {
		return fmt.Errorf("active projects: %w", err)
	}
	sort.Slice(projects, func(i, j int) bool {
		if projects[i].StartTurn != projects[j].StartTurn {
			return projects[i].StartTurn < projects[j].StartTurn
		}
		return projects[i].ID < projects[j].ID
	})

	for i := range projects {
		project := &projects[i]
		switch project.Stage {
		case StagePlanning:
			project.Stage = StageProduction
			summary.logf("%q moved into production", project.Title)
		case StageProduction:
			if err := s.recordSongs(ctx, state, artists, project, rng, summary); err != nil {
				return err
			}
		case StageMarketing:
			if err := s.releaseProject(ctx, state, artists, project, rng, summary); err != nil {
				return err
			}
		}
		if err := s.store.UpdateProject(ctx, *project); err != nil {
			return fmt.Errorf("update project %s: %w", project.ID, err)
		}
	}
	return nil
}

// recordSongs generates this turn's batch of songs for a production-stage
// project. One quality draw per song, in track order.
func (s *Service) recordSongs(ctx context.Context, state *GameState, artists *roster, project *Project, rng *Rand, summary *TurnSummary) error {
	artist, ok := artists.get(project.ArtistID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrArtistNotFound, project.ArtistID)
	}

	for i := 0; i < songsPerProductionTurn && project.SongsCreated < project.SongCount; i++ {
		quality, err := s.SongQuality(QualityInput{
			Mood:           artist.Mood,
			Talent:         artist.Talent,
			WorkEthic:      artist.WorkEthic,
			ProducerTier:   project.ProducerTier,
			TimeInvestment: project.TimeInvestment,
			SongCount:      project.SongCount,
			BudgetPerSong:  project.BudgetPerSong,
		}, rng)
		if err != nil {
			return err
		}
		project.SongsCreated++
		song := Song{
			ID:        uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%s:%d", project.ID, project.SongsCreated))).String(),
			GameID:    state.ID,
			ProjectID: project.ID,
			ArtistID:  artist.ID,
			Title:     fmt.Sprintf("%s, Track %d", project.Title, project.SongsCreated),
			Quality:   quality,
			Recorded:  true,
		}
		if err := s.store.CreateSong(ctx, song); err != nil {
			return fmt.Errorf("create song: %w", err)
		}
		summary.logf("%s recorded %q (quality %d)", artist.Name, song.Title, quality)
	}

	if project.SongsCreated >= project.SongCount {
		project.Stage = StageMarketing
		summary.logf("%q wrapped recording and moved to marketing", project.Title)
	}
	return nil
}

// releaseProject drops a marketing-stage project: the lead single goes out
// first, then the full release is scored with streaming and press. Draw
// order per release: lead-single variance, main variance, press trials.
func (s *Service) releaseProject(ctx context.Context, state *GameState, artists *roster, project *Project, rng *Rand, summary *TurnSummary) error {
	artist, ok := artists.get(project.ArtistID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrArtistNotFound, project.ArtistID)
	}
	songs, err := s.projectSongs(ctx, state.ID, project.ID)
	if err != nil {
		return err
	}
	if len(songs) == 0 {
		project.Stage = StageReleased
		return nil
	}

	// Highest quality track leads the release.
	lead := 0
	for i := range songs {
		if songs[i].Quality > songs[lead].Quality {
			lead = i
		}
	}
	project.LeadSingleID = songs[lead].ID

	leadStreams, err := s.StreamingOutcome(StreamingInput{
		Quality:        songs[lead].Quality,
		PlaylistTier:   state.PlaylistTier,
		Reputation:     state.Reputation,
		MarketingSpend: project.MarketingSpend,
		Popularity:     artist.Popularity,
	}, rng)
	if err != nil {
		return err
	}

	rest := make([]int, 0, len(songs)-1)
	qualitySum := 0
	for i := range songs {
		if i == lead {
			continue
		}
		rest = append(rest, i)
		qualitySum += songs[i].Quality
	}

	var mainStreams int64
	if len(rest) > 0 {
		avgQuality := qualitySum / len(rest)
		mainStreams, err = s.StreamingOutcome(StreamingInput{
			Quality:        avgQuality,
			PlaylistTier:   state.PlaylistTier,
			Reputation:     state.Reputation,
			MarketingSpend: project.MarketingSpend,
			Popularity:     artist.Popularity,
			LeadSingleHit:  true,
		}, rng)
		if err != nil {
			return err
		}
	}

	pickups, err := s.PressPickups(PressInput{
		PressTier:  state.PressTier,
		Spend:      project.MarketingSpend,
		Reputation: state.Reputation,
	}, rng)
	if err != nil {
		return err
	}

	songs[lead].Released = true
	songs[lead].ReleaseTurn = state.Turn
	songs[lead].InitialStreams = leadStreams
	songs[lead].TotalStreams = leadStreams
	perSong := int64(0)
	if len(rest) > 0 {
		perSong = mainStreams / int64(len(rest))
	}
	for _, i := range rest {
		songs[i].Released = true
		songs[i].ReleaseTurn = state.Turn
		songs[i].InitialStreams = perSong
		songs[i].TotalStreams = perSong
	}

	totalStreams := leadStreams + mainStreams
	revenue := s.StreamingRevenue(totalStreams)
	for i := range songs {
		share := int64(0)
		if totalStreams > 0 {
			share = revenue * songs[i].InitialStreams / totalStreams
		}
		songs[i].TotalRevenue += share
	}
	if err := s.store.UpdateSongs(ctx, songs); err != nil {
		return fmt.Errorf("update songs: %w", err)
	}

	state.Money += revenue
	summary.Revenue += revenue
	repGain := pickups * s.bal.Press.RepPerPickup
	before := state.Reputation
	state.Reputation = ClampStat(state.Reputation + repGain)
	summary.ReputationDelta += state.Reputation - before
	artist.Popularity = ClampStat(artist.Popularity + pickups + int(totalStreams/200_000))

	project.Stage = StageReleased
	summary.logf("%q released: %d streams, $%d, %d press pickups", project.Title, totalStreams, revenue, pickups)
	return nil
}

// projectSongs returns a project's recorded songs in creation order.
func (s *Service) projectSongs(ctx context.Context, gameID, projectID string) ([]Song, error) {
	songs, err := s.store.SongsForProject(ctx, gameID, projectID)
	if err != nil {
		return nil, fmt.Errorf("project songs: %w", err)
	}
	return songs, nil
}
