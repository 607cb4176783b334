// Package gitlab provides a read-only client for the GitLab REST API (v4).
//
// # Usage
//
//	client := gitlab.NewClient(gitlab.Config{
//	    BaseURL:     "https://gitlab.example.com",
//	    Token:       os.Getenv("GITLAB_PRIVATE_TOKEN"),
//	    MaxProjects: 100,
//	})
//	if !client.TestConnection(ctx) {
//	    return errUnreachable
//	}
//	projects, err := client.ListAllProjects(ctx, 0)
//
// # Endpoints
//
//   - GET /version
//   - GET /groups/:path
//   - GET /projects and /groups/:id/projects (paginated, 50 per page)
//   - GET /projects/:id/repository/tree (recursive, first 100 entries)
//   - GET /projects/:id/repository/files/:path/raw
//
// Authentication uses the PRIVATE-TOKEN header. Retries, pacing and caching
// come from the embedded [integrations.Client].
//
// [integrations.Client]: github.com/matzehuels/servicescan/pkg/integrations.Client
package gitlab
