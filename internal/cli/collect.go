package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/servicescan/pkg/cache"
	"github.com/matzehuels/servicescan/pkg/collector"
	"github.com/matzehuels/servicescan/pkg/config"
	apperrors "github.com/matzehuels/servicescan/pkg/errors"
	"github.com/matzehuels/servicescan/pkg/integrations/gitlab"
	"github.com/matzehuels/servicescan/pkg/report"
	"github.com/matzehuels/servicescan/pkg/store"
)

// collectOptions holds the flags of the collect command.
type collectOptions struct {
	configPath  string
	url         string
	group       string
	ref         string
	maxProjects int
	workers     int
	timeout     time.Duration
	unitTimeout time.Duration
	retries     int
	rateLimit   float64
	outputDir   string
	formats     string
	cacheURL    string
	noCache     bool
	archive     string
	ignoreFiles []string
	ignoreProjs []string
	interactive bool
	quiet       bool
}

func (c *CLI) collectCommand() *cobra.Command {
	var opts collectOptions

	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Collect image tags from every accessible project",
		Long: `Collect lists the projects of a GitLab instance (or one group and its
subgroups), reads every YAML manifest in each repository and records the
image tag of each declared service.

Settings come from the environment (GITLAB_PRIVATE_TOKEN, GITLAB_URL, ...),
an optional .env file and config.json/config.toml; flags override them.`,
		Example: `  # All projects visible to the token, default outputs
  servicescan collect

  # One group, JSON only, cached responses
  servicescan collect --group platform/backend -f json --cache file`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			opts.apply(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return c.runCollect(cmd.Context(), cfg, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "config file (.json or .toml)")
	f.StringVar(&opts.url, "url", "", "GitLab base URL")
	f.StringVarP(&opts.group, "group", "g", "", "restrict to a group path and its subgroups")
	f.StringVar(&opts.ref, "ref", "", "branch to read manifests from (empty: project default branch)")
	f.IntVar(&opts.maxProjects, "max-projects", 0, "cap on listed projects (0: no cap)")
	f.IntVarP(&opts.workers, "workers", "w", 0, "projects analyzed in parallel")
	f.DurationVar(&opts.timeout, "timeout", 0, "per-request timeout")
	f.DurationVar(&opts.unitTimeout, "unit-timeout", 0, "per-project analysis timeout")
	f.IntVar(&opts.retries, "retries", 0, "attempts per request")
	f.Float64Var(&opts.rateLimit, "rate-limit", 0, "requests per second (0: unlimited)")
	f.StringVarP(&opts.outputDir, "output", "o", "", "output directory")
	f.StringVarP(&opts.formats, "format", "f", "", "output formats: json,text,csv,dot,svg or all")
	f.StringVar(&opts.cacheURL, "cache", "", `response cache: "file", "redis://..." or "none"`)
	f.BoolVar(&opts.noCache, "no-cache", false, "disable the response cache")
	f.StringVar(&opts.archive, "archive", "", `archive the run: "file", "file://DIR" or "mongodb://..."`)
	f.StringSliceVar(&opts.ignoreFiles, "ignore-file", nil, "manifest file name to skip (repeatable)")
	f.StringSliceVar(&opts.ignoreProjs, "ignore-project", nil, "project name prefix to skip (repeatable)")
	f.BoolVarP(&opts.interactive, "interactive", "i", false, "choose output formats interactively")
	f.BoolVarP(&opts.quiet, "quiet", "q", false, "do not print the service structure")

	return cmd
}

// apply overrides cfg with the flags set on cmd.
func (o *collectOptions) apply(cmd *cobra.Command, cfg *config.Config) {
	set := cmd.Flags().Changed
	if set("url") {
		cfg.GitLabURL = o.url
	}
	if set("group") {
		cfg.Group = o.group
	}
	if set("ref") {
		cfg.Ref = o.ref
	}
	if set("max-projects") {
		cfg.MaxProjects = o.maxProjects
	}
	if set("workers") {
		cfg.MaxWorkers = o.workers
	}
	if set("timeout") {
		cfg.Timeout = int(o.timeout.Round(time.Second) / time.Second)
	}
	if set("unit-timeout") {
		cfg.UnitTimeout = int(o.unitTimeout.Round(time.Second) / time.Second)
	}
	if set("retries") {
		cfg.MaxRetries = o.retries
	}
	if set("rate-limit") {
		cfg.RateLimit = o.rateLimit
	}
	if set("output") {
		cfg.OutputDir = o.outputDir
	}
	if set("cache") {
		cfg.CacheURL = o.cacheURL
	}
	if o.noCache {
		cfg.CacheURL = ""
	}
	if set("archive") {
		cfg.Archive = o.archive
	}
	if set("ignore-file") {
		cfg.IgnoreFiles = o.ignoreFiles
	}
	if set("ignore-project") {
		cfg.IgnoreProjects = o.ignoreProjs
	}
}

func (c *CLI) runCollect(ctx context.Context, cfg *config.Config, opts collectOptions) error {
	formats, err := report.ParseFormats(opts.formats)
	if err != nil {
		return err
	}

	respCache, err := cache.Open(ctx, cfg.CacheURL, "")
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer respCache.Close()

	client := gitlab.NewClient(gitlab.Config{
		BaseURL:     cfg.GitLabURL,
		Token:       cfg.Token,
		MaxProjects: cfg.MaxProjects,
		Timeout:     cfg.RequestTimeout(),
		MaxRetries:  cfg.MaxRetries,
		RateLimit:   cfg.RateLimit,
		Cache:       respCache,
		Logger:      c.Logger,
	})

	scope := cfg.Group
	if scope == "" {
		scope = collector.AllProjects
	}
	printKeyValue(c.Out, "GitLab", cfg.GitLabURL)
	printKeyValue(c.Out, "Scope", scope)
	if cfg.Ref == "" {
		printKeyValue(c.Out, "Ref", "(default branch)")
	} else {
		printKeyValue(c.Out, "Ref", cfg.Ref)
	}

	spin := c.startSpinner(ctx, "Connecting to "+cfg.GitLabURL)
	col := collector.New(client, collector.Options{
		Credentials: collector.Credentials{
			BaseURL:     cfg.GitLabURL,
			Token:       cfg.Token,
			Group:       cfg.Group,
			MaxProjects: cfg.MaxProjects,
		},
		Concurrency:    cfg.MaxWorkers,
		UnitTimeout:    cfg.UnitDeadline(),
		IgnoreFiles:    cfg.IgnoreFiles,
		IgnoreProjects: cfg.IgnoreProjects,
		Ref:            cfg.Ref,
		Logger:         c.Logger,
		Progress: func(done, total int) {
			if spin != nil {
				spin.SetMessage(fmt.Sprintf("Analyzing projects %d/%d", done, total))
			}
		},
	})

	prog := newProgress(c.Logger)
	res, err := col.Collect(ctx)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		if apperrors.IsAbort(err) {
			c.Logger.Error("run aborted, no output written", "code", apperrors.GetCode(err))
		}
		return err
	}
	prog.done(fmt.Sprintf("Collected %d projects", res.Stats.TotalProjects))

	if res.Empty() {
		printWarning(c.Out, "No data collected")
		printHeading(c.Out, "Statistics")
		fmt.Fprintln(c.Out, renderStats(res.Stats))
		return nil
	}

	if !opts.quiet {
		printHeading(c.Out, "Service structure")
		if err := report.WriteText(res, c.Out); err != nil {
			return err
		}
	}
	printHeading(c.Out, "Statistics")
	fmt.Fprintln(c.Out, renderStats(res.Stats))
	printSuccess(c.Out, "Data collected from %d projects", len(res.Projects))

	if opts.interactive && opts.formats == "" {
		formats, err = pickFormats(c.In, c.Out)
		if err != nil {
			return err
		}
	}
	if len(formats) > 0 {
		paths, err := report.WriteAll(ctx, res, cfg.OutputDir, formats, res.CollectedAt)
		if err != nil {
			return fmt.Errorf("write results: %w", err)
		}
		printInfo(c.Out, "Results written")
		for _, p := range paths {
			printFile(c.Out, p)
		}
	}

	c.archive(ctx, cfg.Archive, res)
	return nil
}

// archive saves res to the configured store. Failures are logged, since the
// report files are already written.
func (c *CLI) archive(ctx context.Context, spec string, res *collector.Result) {
	st, err := store.Open(ctx, spec)
	if err != nil {
		c.Logger.Warn("archive unavailable", "err", err)
		return
	}
	if st == nil {
		return
	}
	defer st.Close(context.WithoutCancel(ctx))

	if err := st.Save(ctx, res); err != nil {
		c.Logger.Warn("archive failed", "run", res.RunID, "err", err)
		return
	}
	printDetail(c.Out, "Archived run %s", res.RunID)
}

// startSpinner starts a spinner on the log writer unless debug logging is
// on, where it would interleave with log lines.
func (c *CLI) startSpinner(ctx context.Context, msg string) *Spinner {
	if c.Logger.GetLevel() <= LogDebug {
		return nil
	}
	s := newSpinnerWithContext(ctx, c.Err, msg)
	s.Start()
	return s
}
