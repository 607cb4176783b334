// Package report writes collection results to files.
//
// # Formats
//
//   - json: metadata (timestamp, scope, run ID, statistics) and the
//     project → manifest → service → tag mapping
//   - text: an indented outline, one block per project
//   - csv: Project,File,Service,Tag rows, written without quoting
//   - dot, svg: a project → manifest → service graph rendered with Graphviz
//
// Every writer visits projects, manifests and services in sorted order, so
// the same Result always produces the same bytes.
//
// [WriteAll] writes the selected formats into a directory under timestamped
// names:
//
//	gitlab_services_20250102_150405.json
//	services_structure_20250102_150405.txt
//	services_20250102_150405.csv
//	services_graph_20250102_150405.dot
//	services_graph_20250102_150405.svg
package report
