// Package pkg holds the servicescan libraries.
//
// # Overview
//
// servicescan inventories the container images declared in the YAML
// manifests of GitLab projects. The packages split along the data flow:
//
//	GitLab REST API
//	     ↓
//	[integrations/gitlab]  paginated, rate-limited, cached API client
//	     ↓
//	[collector]            bounded worker pool, one unit per project
//	     ↓
//	[manifest]             YAML walk (regex fallback) + name normalization
//	     ↓
//	[report]               JSON, text, CSV, DOT and SVG writers
//	[store]                optional run archive (files or MongoDB)
//
// Supporting packages:
//
//   - [config]: defaults, .env, environment and config file layering
//   - [cache]: response cache backends (file, Redis, null)
//   - [httputil]: retry policy and backoff schedules
//   - [errors]: coded errors shared by every layer
//   - [observability]: hooks for HTTP, cache and per-project events
//   - [buildinfo]: version stamped at link time
//
// # Quick Start
//
//	client := gitlab.NewClient(gitlab.Config{
//	    BaseURL: "https://gitlab.example.com",
//	    Token:   os.Getenv("GITLAB_PRIVATE_TOKEN"),
//	})
//	col := collector.New(client, collector.Options{
//	    Credentials: collector.Credentials{Group: "platform"},
//	})
//	res, err := col.Collect(ctx)
//	if err != nil {
//	    return err // coded ABORTED_* error, no partial output
//	}
//	report.WriteText(res, os.Stdout)
//
// [integrations/gitlab]: https://pkg.go.dev/github.com/matzehuels/servicescan/pkg/integrations/gitlab
// [collector]: https://pkg.go.dev/github.com/matzehuels/servicescan/pkg/collector
// [manifest]: https://pkg.go.dev/github.com/matzehuels/servicescan/pkg/manifest
// [report]: https://pkg.go.dev/github.com/matzehuels/servicescan/pkg/report
// [store]: https://pkg.go.dev/github.com/matzehuels/servicescan/pkg/store
// [config]: https://pkg.go.dev/github.com/matzehuels/servicescan/pkg/config
// [cache]: https://pkg.go.dev/github.com/matzehuels/servicescan/pkg/cache
// [httputil]: https://pkg.go.dev/github.com/matzehuels/servicescan/pkg/httputil
// [errors]: https://pkg.go.dev/github.com/matzehuels/servicescan/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/servicescan/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/servicescan/pkg/buildinfo
package pkg
