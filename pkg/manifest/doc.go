// Package manifest extracts container image tags from YAML manifests.
//
// # Extraction
//
// [ExtractServices] parses a manifest into a [yaml.Node] tree and walks it.
// Every mapping with a string "image" field yields one service entry. The
// entry is named by its dotted path from the document root ("services.web",
// "jobs[0]"), or at the root by the first of the name, container_name and
// service fields, else "unnamed". The walk never descends into image, build,
// networks, volumes, ports or environment.
//
// Manifests that fail to parse, and multi-document streams, go through a
// regex fallback that recognizes common "image:" line shapes. Unnamed regex matches are keyed service_0,
// service_1, and so on.
//
// # Tags
//
// [ExtractImageTag] keeps only the part after the last colon and unwraps
// ${VAR} and ${{ VAR }} placeholders:
//
//	ExtractImageTag("nginx:1.21")                 // "1.21"
//	ExtractImageTag("registry:5000/app:${TAG}")   // "TAG"
//	ExtractImageTag("alpine")                     // "alpine"
//
// # Names
//
// [NormalizeName] turns walk paths into stable keys. It is idempotent.
//
// [yaml.Node]: https://pkg.go.dev/gopkg.in/yaml.v3#Node
package manifest
