package portal

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/pb40development/bim-portal-sub001/client"
	"github.com/pb40development/bim-portal-sub001/config"
	"github.com/pb40development/bim-portal-sub001/export"
	"github.com/pb40development/bim-portal-sub001/pkg/pool"
)

// FindExportableProject walks the first search hits and returns the first
// project whose PDF export yields content. Not every listed project has a
// rendered document behind it, so discovery has to probe.
func (c *Client) FindExportableProject(ctx context.Context) (*client.ProjectSummary, error) {
	summaries, err := c.SearchProjects(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to search projects: %w", err)
	}

	limit := min(len(summaries), config.MaxProjectsToProbe)
	for i := 0; i < limit; i++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		candidate := summaries[i]
		data, err := c.ExportProject(ctx, candidate.GUID, client.FormatPDF)
		if err != nil || len(data) == 0 {
			log.Debug().Str("guid", candidate.GUID.String()).Msg("Project not exportable, probing the next hit")
			continue
		}
		return &candidate, nil
	}
	return nil, fmt.Errorf("no exportable project among the first %d search hits", limit)
}

// ExportAllProjects exports every visible project in the given format and
// saves the artifacts into the configured export directory. It reports
// progress via the progressCb callback, which receives a value from 0.0 to
// 1.0, and returns the paths of the saved files. Individual export failures
// are logged and skipped, they do not abort the batch.
func (c *Client) ExportAllProjects(
	ctx context.Context,
	format client.ExportFormat,
	numWorkers int,
	progressCb func(float64),
) ([]string, error) {
	summaries, err := c.SearchProjects(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to search projects: %w", err)
	}
	if len(summaries) == 0 {
		log.Info().Msg("No projects found on the portal.")
		if progressCb != nil {
			progressCb(1.0)
		}
		return nil, nil
	}

	var processedCount atomic.Int64
	totalProjects := float64(len(summaries))

	var mu sync.Mutex
	var saved []string

	workerFunc := func(ctx context.Context, summary client.ProjectSummary) error {
		// Defer the counter increment to guarantee it runs even if an export fails.
		defer func() {
			count := processedCount.Add(1)
			if progressCb != nil {
				progressCb(float64(count) / totalProjects)
			}
		}()

		data, exportErr := c.ExportProject(ctx, summary.GUID, format)
		if exportErr != nil {
			log.Warn().Err(exportErr).Str("guid", summary.GUID.String()).Msg("Failed to export project")
			return nil // Don't treat as a fatal error for the pool
		}
		if len(data) == 0 {
			log.Warn().Str("guid", summary.GUID.String()).Msg("Project export returned no content")
			return nil
		}

		path, saveErr := export.SaveDetected(c.cfg.ExportDir, "project", summary.GUID, format, data)
		if saveErr != nil {
			log.Error().Err(saveErr).Str("guid", summary.GUID.String()).Msg("Failed to save exported project")
			return nil
		}

		mu.Lock()
		saved = append(saved, path)
		mu.Unlock()
		return nil
	}

	_ = pool.Run(ctx, summaries, numWorkers, workerFunc)

	return saved, ctx.Err()
}
