package game

import "context"

// Datastore is the data-access capability the engine consumes. The engine
// is agnostic to how it is implemented or stored; the caller is expected to
// wrap one AdvanceTurn call's reads and writes in a single atomic
// transaction and roll the whole turn back on any error.
type Datastore interface {
	GetArtist(ctx context.Context, id string) (Artist, error)
	ListArtists(ctx context.Context, gameID string) ([]Artist, error)
	CreateArtist(ctx context.Context, a Artist) error
	UpdateArtists(ctx context.Context, artists []Artist) error

	ActiveProjects(ctx context.Context, gameID string) ([]Project, error)
	CreateProject(ctx context.Context, p Project) error
	UpdateProject(ctx context.Context, p Project) error

	CreateSong(ctx context.Context, s Song) error
	UpdateSongs(ctx context.Context, songs []Song) error
	SongsForProject(ctx context.Context, gameID, projectID string) ([]Song, error)
	ReleasedSongs(ctx context.Context, gameID string) ([]Song, error)
}
