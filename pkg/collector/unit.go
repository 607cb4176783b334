package collector

import (
	"context"
	"fmt"
	"time"

	apperrors "github.com/matzehuels/servicescan/pkg/errors"
	"github.com/matzehuels/servicescan/pkg/integrations/gitlab"
	"github.com/matzehuels/servicescan/pkg/manifest"
	"github.com/matzehuels/servicescan/pkg/observability"
)

// unitReport is what one unit contributes: its own counters and, when any
// manifest matched, its ProjectResult.
type unitReport struct {
	result *ProjectResult
	stats  Stats
	err    error
}

// runUnit analyzes p under the unit deadline. A unit that panics or misses
// its deadline reports exactly one error and no result; whatever it was
// doing is discarded.
func (c *Collector) runUnit(ctx context.Context, p gitlab.Project) unitReport {
	hooks := observability.Collector()
	hooks.OnProjectStart(ctx, p.Name)
	start := time.Now()

	uctx, cancel := context.WithTimeout(ctx, c.unitTimeout)
	defer cancel()

	done := make(chan unitReport, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- unitReport{
					stats: Stats{Errors: 1},
					err:   apperrors.New(apperrors.ErrCodeUnitFault, "analyzing %s: %v", p.Name, r),
				}
			}
		}()
		done <- c.analyzeProject(uctx, p)
	}()

	var r unitReport
	select {
	case r = <-done:
	case <-uctx.Done():
	}
	// A unit that returned only because its deadline passed is discarded
	// the same way as one still running.
	if err := uctx.Err(); err != nil {
		r = unitReport{
			stats: Stats{Errors: 1},
			err:   apperrors.Wrap(apperrors.ErrCodeTimeout, err, "analyzing %s", p.Name),
		}
	}

	if r.err != nil {
		c.logger.Error("project analysis failed", "project", p.Name, "err", r.err)
	}
	manifests := 0
	if r.result != nil {
		manifests = len(r.result.Manifests)
	}
	hooks.OnProjectComplete(ctx, p.Name, manifests, time.Since(start), r.err)
	return r
}

func (c *Collector) analyzeProject(ctx context.Context, p gitlab.Project) unitReport {
	logger := c.logger.With("project", p.Name)

	entries, err := c.src.ListProjectFiles(ctx, p.ID)
	if err != nil {
		logger.Warn("no files or access error", "err", err)
		return unitReport{}
	}
	if len(entries) == 0 {
		logger.Debug("no files")
		return unitReport{}
	}

	files := candidates(entries, c.ignoreFiles)
	if len(files) == 0 {
		logger.Debug("no YAML files")
		return unitReport{}
	}
	logger.Debug("YAML files found", "count", len(files))

	ref := c.refFor(p)
	var stats Stats
	found := make(Manifests)

	for _, f := range files {
		out, services := c.readManifest(ctx, p, f, ref)
		if out.Kind != Success {
			if out.Err != nil {
				stats.Errors++
				logger.Warn("cannot fetch manifest", "file", f.Path, "err", out.Err)
			} else {
				logger.Debug("no services", "file", f.Path, "reason", out.Reason)
			}
			continue
		}

		found[manifestKey(entryName(f))] = services
		stats.TotalYAMLFiles++
		stats.TotalServices += len(services)
		logger.Info("manifest analyzed", "file", f.Path, "services", len(services))
	}

	if len(found) == 0 {
		return unitReport{stats: stats}
	}
	stats.ProjectsWithYAML = 1
	return unitReport{
		result: &ProjectResult{ProjectID: p.ID, ProjectName: p.Name, Manifests: found},
		stats:  stats,
	}
}

// readManifest fetches one candidate file and extracts its services.
func (c *Collector) readManifest(ctx context.Context, p gitlab.Project, f gitlab.TreeEntry, ref string) (Outcome, manifest.Services) {
	content, err := c.src.GetFileContent(ctx, p.ID, f.Path, ref)
	if err != nil {
		return skipped("fetch failed", err), nil
	}

	raw, mode := manifest.Extract(content)
	if len(raw) == 0 {
		return skipped(fmt.Sprintf("%s: nothing found", mode), nil), nil
	}
	return succeeded(), manifest.NormalizeServices(raw)
}

func (c *Collector) refFor(p gitlab.Project) string {
	if c.ref != "" {
		return c.ref
	}
	if p.DefaultBranch != "" {
		return p.DefaultBranch
	}
	return gitlab.DefaultRef
}
