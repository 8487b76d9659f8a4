// Package memory is the reference Datastore: everything lives in process
// memory behind one mutex. Iteration order is insertion order throughout,
// which keeps turn resolution deterministic.
package memory

import (
	"context"
	"errors"
	"sync"

	"encore/internal/game"
)

var ErrNotFound = errors.New("memory: not found")

type Store struct {
	mu sync.Mutex

	states map[string]game.GameState

	artists     map[string]game.Artist
	artistOrder []string

	projects     map[string]game.Project
	projectOrder []string

	songs     map[string]game.Song
	songOrder []string
}

func New() *Store {
	return &Store{
		states:   make(map[string]game.GameState),
		artists:  make(map[string]game.Artist),
		projects: make(map[string]game.Project),
		songs:    make(map[string]game.Song),
	}
}

// PutState stores a campaign snapshot, replacing any previous one.
func (s *Store) PutState(_ context.Context, state game.GameState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[state.ID] = state
	return nil
}

// GetState returns the stored snapshot for a campaign.
func (s *Store) GetState(_ context.Context, id string) (game.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.states[id]
	if !ok {
		return game.GameState{}, ErrNotFound
	}
	return state, nil
}

func (s *Store) GetArtist(_ context.Context, id string) (game.Artist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.artists[id]
	if !ok {
		return game.Artist{}, game.ErrArtistNotFound
	}
	return a, nil
}

func (s *Store) ListArtists(_ context.Context, gameID string) ([]game.Artist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []game.Artist
	for _, id := range s.artistOrder {
		if a := s.artists[id]; a.GameID == gameID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *Store) CreateArtist(_ context.Context, a game.Artist) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.artists[a.ID]; !ok {
		s.artistOrder = append(s.artistOrder, a.ID)
	}
	s.artists[a.ID] = a
	return nil
}

func (s *Store) UpdateArtists(_ context.Context, artists []game.Artist) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range artists {
		if _, ok := s.artists[a.ID]; !ok {
			return game.ErrArtistNotFound
		}
		s.artists[a.ID] = a
	}
	return nil
}

func (s *Store) ActiveProjects(_ context.Context, gameID string) ([]game.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []game.Project
	for _, id := range s.projectOrder {
		p := s.projects[id]
		if p.GameID == gameID && p.Stage != game.StageReleased {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Store) CreateProject(_ context.Context, p game.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[p.ID]; !ok {
		s.projectOrder = append(s.projectOrder, p.ID)
	}
	s.projects[p.ID] = p
	return nil
}

func (s *Store) UpdateProject(_ context.Context, p game.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[p.ID]; !ok {
		return game.ErrProjectNotFound
	}
	s.projects[p.ID] = p
	return nil
}

func (s *Store) CreateSong(_ context.Context, song game.Song) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.songs[song.ID]; !ok {
		s.songOrder = append(s.songOrder, song.ID)
	}
	s.songs[song.ID] = song
	return nil
}

func (s *Store) UpdateSongs(_ context.Context, songs []game.Song) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, song := range songs {
		if _, ok := s.songs[song.ID]; !ok {
			return ErrNotFound
		}
		s.songs[song.ID] = song
	}
	return nil
}

func (s *Store) SongsForProject(_ context.Context, gameID, projectID string) ([]game.Song, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []game.Song
	for _, id := range s.songOrder {
		song := s.songs[id]
		if song.GameID == gameID && song.ProjectID == projectID {
			out = append(out, song)
		}
	}
	return out, nil
}

func (s *Store) ReleasedSongs(_ context.Context, gameID string) ([]game.Song, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []game.Song
	for _, id := range s.songOrder {
		song := s.songs[id]
		if song.GameID == gameID && song.Released {
			out = append(out, song)
		}
	}
	return out, nil
}
