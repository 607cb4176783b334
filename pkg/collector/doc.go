// Package collector crawls a GitLab project inventory and aggregates the
// container image tags declared in each project's YAML manifests.
//
// # Run Sequence
//
//  1. Check connectivity. An unreachable API aborts the run.
//  2. Resolve the group scope. An unknown group degrades to all projects.
//  3. List projects. An empty listing aborts the run.
//  4. Analyze every project in its own unit of work, at most
//     Options.Concurrency at a time, each bounded by Options.UnitTimeout.
//  5. Fold the per-unit reports into a [Result].
//
// Aborts are returned as coded errors (see [errors.IsAbort]) with a nil
// Result. Everything else degrades: a failed file fetch, a panicking or
// timed-out unit each add one to Stats.Errors and the run continues.
//
// # Units
//
// A unit lists the project tree, keeps .yml/.yaml blobs not on the ignore
// list, fetches each one and extracts its services. Manifests are keyed by
// file name without extension and without a "services_" prefix. A project
// contributes to the Result only if at least one manifest yielded a service.
//
// [errors.IsAbort]: github.com/matzehuels/servicescan/pkg/errors.IsAbort
package collector
