package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `dx-portfolio serves a read-only view of the DX project portfolio.

Data model:
- User: a portfolio owner. Credentials are never returned.
- Project: one manifest per project folder (status, priority, progress, media).
- Index: lightweight project entries plus counts per lifecycle status
  (discovery, decision, develop, pilot, complete).

Workflow:
1) Orient with get_stats and list_projects (filter by status or owner_id).
2) Load one project with get_project when you need media references.
3) Inspect pipeline runs with get_recent_activity.
4) reinitialize re-runs the pipeline. It never overwrites a non-empty curated
   store; it only rebuilds from folders when the store is missing or empty.

Docs:
- portfolio://docs/layout (on-disk layout and rebuild rules)
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "portfolio://docs/layout",
		Name:        "docs_layout",
		Title:       "Portfolio data layout",
		Description: "Where portfolio documents live under the data root and when they are rebuilt.",
		Content: `# Portfolio data layout

All paths are relative to the data root.

| Path | Content |
|------|---------|
| data/users.json | { users: [...] } |
| config.json | app name, version, status/priority/blocker taxonomies, theme |
| data/projects.json | { projects: [...] } curated manifests |
| data/projects-index.json | { projects, stats, lastUpdated } |
| users/<user>/projects/<project>/project.json | per-project manifest |
| users/<user>/projects/<project>/{images,videos,gantt}/ | media folders |

## Rebuild rules

- users.json and config.json are written once, each only when missing.
- A non-empty data/projects.json is authoritative; folders are not scanned.
- Otherwise every project folder is read. Broken manifests are skipped.
- Missing images/videos are filled from the media folders; a missing
  schedule image takes the first image in gantt/.
- A scan that finds no projects writes nothing.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
