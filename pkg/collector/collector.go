package collector

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/matzehuels/servicescan/pkg/errors"
	"github.com/matzehuels/servicescan/pkg/integrations/gitlab"
)

const (
	// DefaultConcurrency is the number of projects analyzed at once.
	DefaultConcurrency = 5
	// DefaultUnitTimeout bounds the analysis of one project.
	DefaultUnitTimeout = 60 * time.Second
	// AllProjects is the scope label of an unscoped run.
	AllProjects = "all accessible projects"
)

// Source is the platform API a Collector reads from. *gitlab.Client
// implements it.
type Source interface {
	TestConnection(ctx context.Context) bool
	ResolveGroupID(ctx context.Context, path string) (int, error)
	ListAllProjects(ctx context.Context, groupID int) ([]gitlab.Project, error)
	ListProjectFiles(ctx context.Context, projectID int) ([]gitlab.TreeEntry, error)
	GetFileContent(ctx context.Context, projectID int, path, ref string) (string, error)
}

var _ Source = (*gitlab.Client)(nil)

// Options configures a Collector.
type Options struct {
	Credentials Credentials
	// Concurrency bounds the number of concurrent units. Values <= 1 run
	// units sequentially.
	Concurrency int
	UnitTimeout time.Duration
	// IgnoreFiles lists manifest file names to skip. Nil means
	// DefaultIgnoreFiles; an empty non-nil slice skips nothing.
	IgnoreFiles []string
	// IgnoreProjects lists project name prefixes to skip.
	IgnoreProjects []string
	// Ref is the branch or tag to read manifests from. Empty means each
	// project's default branch.
	Ref    string
	Logger *log.Logger
	// Progress, if set, is called after each unit with the number of
	// finished and total units. It may be called concurrently.
	Progress func(done, total int)
}

// Collector runs collections against a Source.
type Collector struct {
	src            Source
	creds          Credentials
	concurrency    int
	unitTimeout    time.Duration
	ignoreFiles    map[string]bool
	ignoreProjects []string
	ref            string
	logger         *log.Logger
	progress       func(done, total int)
	now            func() time.Time
}

// New creates a Collector reading from src.
func New(src Source, opts Options) *Collector {
	c := &Collector{
		src:            src,
		creds:          opts.Credentials,
		concurrency:    opts.Concurrency,
		unitTimeout:    opts.UnitTimeout,
		ignoreProjects: opts.IgnoreProjects,
		ref:            opts.Ref,
		logger:         opts.Logger,
		progress:       opts.Progress,
		now:            time.Now,
	}
	if c.concurrency == 0 {
		c.concurrency = DefaultConcurrency
	}
	if c.unitTimeout <= 0 {
		c.unitTimeout = DefaultUnitTimeout
	}
	if opts.IgnoreFiles == nil {
		c.ignoreFiles = toSet(DefaultIgnoreFiles)
	} else {
		c.ignoreFiles = toSet(opts.IgnoreFiles)
	}
	if c.logger == nil {
		c.logger = log.Default()
	}
	return c
}

// Collect performs one run. It returns a coded abort error and a nil Result
// when the API is unreachable or lists no projects; otherwise it returns the
// aggregated Result, however many units failed. A cancelled ctx ends the
// run with ctx.Err().
func (c *Collector) Collect(ctx context.Context) (*Result, error) {
	if out := c.checkConnection(ctx); out.Kind == Abort {
		return nil, out.Err
	}

	groupID := c.resolveScope(ctx)

	projects, out := c.listProjects(ctx, groupID)
	if out.Kind == Abort {
		return nil, out.Err
	}

	var t tally
	t.add(Stats{TotalProjects: len(projects)})

	var units []gitlab.Project
	for _, p := range projects {
		if ignoredProject(p.Name, c.ignoreProjects) {
			c.logger.Debug("ignoring project", "project", p.Name)
			t.add(Stats{ProjectsIgnored: 1})
			continue
		}
		units = append(units, p)
	}

	c.logger.Info("analyzing projects", "count", len(units), "workers", c.workers(len(units)))
	reports := c.runUnits(ctx, units, &t)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{
		RunID:       uuid.NewString(),
		Group:       c.scopeLabel(),
		CollectedAt: c.now(),
		Projects:    make(map[string]Manifests),
	}
	for _, r := range reports {
		if r.result != nil {
			res.Projects[r.result.ProjectName] = r.result.Manifests
		}
	}
	res.Stats = t.snapshot()
	return res, nil
}

func (c *Collector) checkConnection(ctx context.Context) Outcome {
	if c.src.TestConnection(ctx) {
		return succeeded()
	}
	return aborted(apperrors.New(apperrors.ErrCodeAbortUnreachable, "cannot connect to %s", c.creds.BaseURL))
}

// resolveScope returns the group ID of the configured scope, or 0 (all
// projects) when none is set or it cannot be resolved.
func (c *Collector) resolveScope(ctx context.Context) int {
	if c.creds.Group == "" {
		return 0
	}
	id, err := c.src.ResolveGroupID(ctx, c.creds.Group)
	if err != nil {
		c.logger.Warn("group not found, listing all accessible projects", "group", c.creds.Group, "err", err)
		return 0
	}
	c.logger.Info("group found", "group", c.creds.Group, "id", id)
	return id
}

func (c *Collector) listProjects(ctx context.Context, groupID int) ([]gitlab.Project, Outcome) {
	projects, err := c.src.ListAllProjects(ctx, groupID)
	if err != nil {
		// Pages fetched before the failure are still analyzed.
		c.logger.Warn("project listing incomplete", "loaded", len(projects), "err", err)
	}
	if len(projects) == 0 {
		return nil, aborted(apperrors.Wrap(apperrors.ErrCodeAbortNoProjects, err, "no projects retrieved"))
	}
	c.logger.Info("projects listed", "total", len(projects))
	return projects, succeeded()
}

func (c *Collector) scopeLabel() string {
	if c.creds.Group == "" {
		return AllProjects
	}
	return c.creds.Group
}

func (c *Collector) workers(n int) int {
	if n <= 1 || c.concurrency <= 1 {
		return 1
	}
	return min(c.concurrency, n)
}

// runUnits analyzes units and returns one report per unit, in unit order.
func (c *Collector) runUnits(ctx context.Context, units []gitlab.Project, t *tally) []unitReport {
	reports := make([]unitReport, len(units))
	var done atomic.Int64

	finish := func(i int, r unitReport) {
		reports[i] = r
		t.add(r.stats)
		n := done.Add(1)
		if c.progress != nil {
			c.progress(int(n), len(units))
		}
	}

	if c.workers(len(units)) == 1 {
		for i, p := range units {
			if ctx.Err() != nil {
				break
			}
			finish(i, c.runUnit(ctx, p))
		}
		return reports
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers(len(units)))
	for i, p := range units {
		g.Go(func() error {
			finish(i, c.runUnit(gctx, p))
			return nil
		})
	}
	_ = g.Wait()
	return reports
}
