// Package download saves artists from the repository to the local disk.
//
// # Manager
//
// The Manager coordinates the entire save process:
//
//  1. Create the artist folder
//  2. Download the artist icon
//  3. Download songs concurrently
//  4. Tag MP3 files with ID3 metadata
//  5. Generate a playlist of the local files (optional)
//
// # Basic Usage
//
//	manager := download.NewManager(settings, httpClient, logger, func(event download.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	report, err := manager.SaveArtist(ctx, artist)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%d saved, %d failed\n", report.Saved, report.Failed)
//
// # Concurrency
//
// settings.MaxConcurrentDownloads caps how many songs of an artist are
// downloaded in parallel.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
//
// GetProgress returns byte and file counters for progress bars.
//
// # Retry Logic
//
// Failed downloads are retried with exponential backoff, configured by
// settings.DownloadMaxRetries, settings.DownloadRetryCooldown and
// settings.DownloadRetryExponent. Client errors are not retried.
package download
