package library

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/handiism/happeytunes/internal/github"
	"github.com/handiism/happeytunes/internal/log"
	"github.com/handiism/happeytunes/internal/model"
)

// State is a state of the render pipeline.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateError
	StateEmpty
	StateLoaded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	case StateEmpty:
		return "empty"
	case StateLoaded:
		return "loaded"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ErrorKind distinguishes the fatal root listing failures.
type ErrorKind int

const (
	// ErrorKindNone is used for results that are not errors.
	ErrorKindNone ErrorKind = iota

	// ErrorKindRepositoryNotFound means the repository root answered 404.
	ErrorKindRepositoryNotFound

	// ErrorKindListingFailed covers every other root listing failure.
	ErrorKindListingFailed
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindNone:
		return "none"
	case ErrorKindRepositoryNotFound:
		return "repository-not-found"
	case ErrorKindListingFailed:
		return "listing-failed"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// NotFoundHint tells the user how to fix ErrorKindRepositoryNotFound.
const NotFoundHint = "Check that the username and repository name are correct and that the repository is public."

// Classify maps a root listing error to its ErrorKind.
func Classify(err error) ErrorKind {
	switch {
	case err == nil:
		return ErrorKindNone
	case errors.Is(err, github.ErrRepositoryNotFound):
		return ErrorKindRepositoryNotFound
	default:
		return ErrorKindListingFailed
	}
}

// Lister returns the candidate artist folders of the repository.
type Lister interface {
	ListArtists(ctx context.Context) ([]string, error)
}

// Aggregator builds one artist. Implementations must not fail; errors are
// represented by an artist with no songs. A nil artist is treated the same
// way: the pipeline substitutes an empty artist for the folder.
type Aggregator interface {
	FetchArtist(ctx context.Context, folder string) *model.Artist
}

// Result is the terminal outcome of one pipeline run.
type Result struct {
	// Run is the token of the run that produced this result.
	Run uint64

	// State is StateError, StateEmpty or StateLoaded.
	State State

	// Kind is set when State is StateError.
	Kind ErrorKind

	// Err is the root listing error when State is StateError.
	Err error

	// Artists are in root listing order when State is StateLoaded.
	Artists []*model.Artist

	// Elapsed is the wall time of the run.
	Elapsed time.Duration
}

// Header returns the count header shown above the artist cards.
func (r *Result) Header() string {
	return fmt.Sprintf("Artists (%d)", len(r.Artists))
}

// Pipeline lists the repository and aggregates every artist concurrently.
//
// A run proceeds in two steps:
//
//  1. The Lister is called once. A failure ends the run in StateError, an
//     empty listing ends it in StateEmpty.
//  2. The Aggregator is called once per folder, all calls running
//     concurrently. Run returns only after every call has finished, so a
//     caller never sees a partial set of artists.
//
// Every run takes a new, increasing token. Presentation layers that start
// runs asynchronously claim the token with Begin when the run is requested
// and execute it later with RunToken, so a result is stale as soon as a
// newer run was requested. IsCurrent compares a result with the latest
// token.
//
// Example:
//
//	p := NewPipeline(client, client, 0, logger)
//	result := p.Run(ctx)
//	switch result.State {
//	case StateError:
//	    // result.Kind tells repository-not-found from other failures
//	case StateEmpty:
//	    // no artist folders
//	case StateLoaded:
//	    fmt.Println(result.Header())
//	}
type Pipeline struct {
	lister     Lister
	aggregator Aggregator
	limit      int
	logger     zerolog.Logger

	latest atomic.Uint64
}

// NewPipeline creates a new Pipeline.
//
// limit caps the number of concurrent aggregations; zero or a negative
// value means no limit.
func NewPipeline(lister Lister, aggregator Aggregator, limit int, logger zerolog.Logger) *Pipeline {
	return &Pipeline{
		lister:     lister,
		aggregator: aggregator,
		limit:      limit,
		logger:     logger,
	}
}

// Run claims a token and executes one pipeline run.
func (p *Pipeline) Run(ctx context.Context) *Result {
	return p.RunToken(ctx, p.Begin())
}

// Begin claims the token of a new run without starting it. Results of runs
// holding an older token are stale from this point on.
func (p *Pipeline) Begin() uint64 {
	return p.latest.Add(1)
}

// RunToken executes the run claimed by Begin and returns its terminal
// result tagged with run.
func (p *Pipeline) RunToken(ctx context.Context, run uint64) *Result {
	start := time.Now()
	logger := p.logger.With().Uint64("run", run).Logger()

	result := p.run(ctx, run, logger)
	result.Elapsed = time.Since(start)

	logger.Info().
		Stringer("state", result.State).
		Int("artists", len(result.Artists)).
		Dur("elapsed", result.Elapsed).
		Msg("Pipeline run finished")
	return result
}

func (p *Pipeline) run(ctx context.Context, run uint64, logger zerolog.Logger) *Result {
	folders, err := p.lister.ListArtists(ctx)
	if err != nil {
		kind := Classify(err)
		logger.Error().Stringer("kind", kind).Func(log.Flaw(err)).Msg("Failed to list repository")
		return &Result{Run: run, State: StateError, Kind: kind, Err: err}
	}

	if len(folders) == 0 {
		return &Result{Run: run, State: StateEmpty}
	}

	logger.Debug().Int("artists", len(folders)).Msg("Aggregating artists")
	return &Result{Run: run, State: StateLoaded, Artists: p.aggregate(ctx, folders)}
}

func (p *Pipeline) aggregate(ctx context.Context, folders []string) []*model.Artist {
	artists := make([]*model.Artist, len(folders))

	var g errgroup.Group
	if p.limit > 0 {
		g.SetLimit(p.limit)
	}

	for i, folder := range folders {
		g.Go(func() error {
			artist := p.aggregator.FetchArtist(ctx, folder)
			if artist == nil {
				artist = model.NewArtist(folder, nil, "")
			}
			artists[i] = artist
			return nil
		})
	}

	// Aggregations never return errors.
	_ = g.Wait()
	return artists
}

// Latest returns the token of the most recently started run.
func (p *Pipeline) Latest() uint64 {
	return p.latest.Load()
}

// IsCurrent reports whether r comes from the most recently started run.
func (p *Pipeline) IsCurrent(r *Result) bool {
	return r != nil && r.Run == p.latest.Load()
}
