package gitlab

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/servicescan/pkg/buildinfo"
	"github.com/matzehuels/servicescan/pkg/cache"
	apperrors "github.com/matzehuels/servicescan/pkg/errors"
	"github.com/matzehuels/servicescan/pkg/httputil"
	"github.com/matzehuels/servicescan/pkg/integrations"
)

const (
	// DefaultBaseURL is the public GitLab instance.
	DefaultBaseURL = "https://gitlab.com"
	// DefaultRef is used when a content request names no ref.
	DefaultRef = "main"

	projectsPerPage = 50
	treePerPage     = 100
	pageDelay       = 100 * time.Millisecond
)

// Config configures a Client.
type Config struct {
	BaseURL string
	Token   string
	// MaxProjects truncates the project listing. Zero means no cap.
	MaxProjects int

	Timeout    time.Duration
	MaxRetries int
	RateLimit  float64
	Cache      cache.Cache
	Logger     *log.Logger

	// Sleep paces retries and pagination. Tests inject a recorder.
	Sleep      httputil.Sleeper
	HTTPClient *http.Client
}

// Client provides read-only access to the GitLab REST API (v4).
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	apiURL      string
	maxProjects int
	sleep       httputil.Sleeper
	logger      *log.Logger
}

// NewClient creates a GitLab API client authenticated with a private token.
// Responses for repository trees and file contents are cached per instance
// and token when cfg.Cache is set.
func NewClient(cfg Config) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}

	headers := map[string]string{
		"Content-Type": "application/json",
		"User-Agent":   buildinfo.UserAgent(),
	}
	if cfg.Token != "" {
		headers["PRIVATE-TOKEN"] = cfg.Token
	}

	sleep := cfg.Sleep
	if sleep == nil {
		sleep = httputil.Sleep
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &Client{
		Client: integrations.NewClient(integrations.Options{
			Headers:    headers,
			Timeout:    cfg.Timeout,
			MaxRetries: cfg.MaxRetries,
			RateLimit:  cfg.RateLimit,
			Cache:      cfg.Cache,
			Keyer:      cache.NewScopedKeyer(nil, cache.InstanceScope(base, cfg.Token)),
			Sleep:      sleep,
			HTTPClient: cfg.HTTPClient,
		}),
		apiURL:      base + "/api/v4",
		maxProjects: cfg.MaxProjects,
		sleep:       sleep,
		logger:      logger,
	}
}

// Version returns the server version string.
func (c *Client) Version(ctx context.Context) (string, error) {
	var v versionResponse
	if _, err := c.GetJSON(ctx, c.apiURL+"/version", nil, &v); err != nil {
		return "", err
	}
	return v.Version, nil
}

// TestConnection reports whether the API answers with the configured token.
func (c *Client) TestConnection(ctx context.Context) bool {
	version, err := c.Version(ctx)
	if err != nil {
		c.logger.Error("cannot reach GitLab", "url", c.apiURL, "err", err)
		return false
	}
	c.logger.Info("connected to GitLab", "version", version)
	return true
}

// ResolveGroupID returns the numeric ID of the group at path
// (e.g. "team/platform").
func (c *Client) ResolveGroupID(ctx context.Context, path string) (int, error) {
	if path == "" {
		return 0, apperrors.New(apperrors.ErrCodeNotFound, "empty group path")
	}

	var g groupResponse
	u := c.apiURL + "/groups/" + url.PathEscape(path)
	if _, err := c.GetJSON(ctx, u, nil, &g); err != nil {
		return 0, fmt.Errorf("resolve group %s: %w", path, err)
	}
	return g.ID, nil
}

// ListAllProjects pages through the projects visible to the token, most
// recently active first. A non-zero groupID restricts the listing to that
// group and its subgroups.
//
// Paging stops on an empty page, when no next page is advertised, or when
// the project cap is reached (the result is truncated to it). If a page
// fails, the projects gathered so far are returned together with the error.
func (c *Client) ListAllProjects(ctx context.Context, groupID int) ([]Project, error) {
	endpoint := c.apiURL + "/projects"
	if groupID != 0 {
		endpoint = fmt.Sprintf("%s/groups/%d/projects", c.apiURL, groupID)
	}

	var all []Project
	for page := 1; ; page++ {
		params := url.Values{
			"per_page": {strconv.Itoa(projectsPerPage)},
			"page":     {strconv.Itoa(page)},
			"simple":   {"true"},
			"order_by": {"last_activity_at"},
			"sort":     {"desc"},
		}
		if groupID != 0 {
			params.Set("include_subgroups", "true")
		}

		var batch []Project
		resp, err := c.GetJSON(ctx, endpoint, params, &batch)
		if err != nil {
			return all, fmt.Errorf("list projects page %d: %w", page, err)
		}
		if len(batch) == 0 {
			break
		}

		all = append(all, batch...)
		c.logger.Debug("loaded projects", "page", page, "total", len(all))

		if c.maxProjects > 0 && len(all) >= c.maxProjects {
			c.logger.Warn("reached project limit", "limit", c.maxProjects)
			all = all[:c.maxProjects]
			break
		}
		if !hasNext(resp.Header.Get("Link")) {
			break
		}
		if err := c.sleep(ctx, pageDelay); err != nil {
			return all, err
		}
	}
	return all, nil
}

// ListProjectFiles returns the recursive repository tree of a project.
// Only the first page (up to 100 entries) is requested. On failure the
// list is empty.
func (c *Client) ListProjectFiles(ctx context.Context, projectID int) ([]TreeEntry, error) {
	u := fmt.Sprintf("%s/projects/%d/repository/tree", c.apiURL, projectID)
	params := url.Values{
		"recursive": {"true"},
		"per_page":  {strconv.Itoa(treePerPage)},
	}

	var entries []TreeEntry
	err := c.Cached(ctx, "tree", u+"?"+params.Encode(), cache.TTLTree, &entries, func() error {
		_, err := c.GetJSON(ctx, u, params, &entries)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list files of project %d: %w", projectID, err)
	}
	return entries, nil
}

// GetFileContent returns the raw content of the file at path on ref.
// An empty ref means DefaultRef.
func (c *Client) GetFileContent(ctx context.Context, projectID int, path, ref string) (string, error) {
	if ref == "" {
		ref = DefaultRef
	}
	if err := apperrors.ValidatePath(path); err != nil {
		return "", err
	}

	u := fmt.Sprintf("%s/projects/%d/repository/files/%s/raw", c.apiURL, projectID, url.PathEscape(path))
	params := url.Values{"ref": {ref}}

	var content string
	err := c.Cached(ctx, "content", u+"?"+params.Encode(), cache.TTLContent, &content, func() error {
		resp, err := c.Do(ctx, http.MethodGet, u, params)
		if err != nil {
			return err
		}
		content = string(resp.Body)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("get %s from project %d: %w", path, projectID, err)
	}
	return content, nil
}
