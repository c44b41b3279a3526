// Package library runs the discovery pipeline that turns a repository into
// a list of artists ready to render.
//
// # Pipeline
//
// The Pipeline composes a Lister (repository root) with an Aggregator (one
// artist folder) as a single fan-out joined by a barrier:
//
//	client := github.NewClient(repo, httpClient, logger)
//	p := library.NewPipeline(client, client, settings.MaxConcurrentRequests, logger)
//	result := p.Run(ctx)
//
// # States
//
// A run moves from StateLoading to exactly one terminal state:
//   - StateError with ErrorKindRepositoryNotFound or ErrorKindListingFailed
//   - StateEmpty when the repository has no folders
//   - StateLoaded with one artist per folder, in listing order
//
// # Stale Results
//
// Retries start new runs while old ones may still be in flight. Each run
// carries a token. Begin claims a token as soon as a run is requested and
// RunToken executes it later; IsCurrent reports whether a result belongs to
// the latest requested run.
package library
