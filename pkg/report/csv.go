package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/matzehuels/servicescan/pkg/collector"
)

// CSVHeader is the first line of the CSV output.
const CSVHeader = "Project,File,Service,Tag"

// WriteCSV writes one row per service. Fields are written as-is, without
// quoting; a comma inside a field shifts the columns of that row.
func WriteCSV(res *collector.Result, w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, CSVHeader)
	for _, proj := range res.ProjectNames() {
		manifests := res.Projects[proj]
		for _, key := range manifests.Keys() {
			services := manifests[key]
			for _, svc := range services.Names() {
				fmt.Fprintf(bw, "%s,%s,%s,%s\n", proj, key, svc, services[svc])
			}
		}
	}
	return bw.Flush()
}
