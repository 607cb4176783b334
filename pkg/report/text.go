package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/matzehuels/servicescan/pkg/collector"
)

const (
	manifestIndent = "——— "
	serviceIndent  = "—————— "
)

// WriteText writes the project outline:
//
//	demo
//	——— infra
//	—————— web: 1.21
//
// Each manifest block is followed by a blank line.
func WriteText(res *collector.Result, w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, proj := range res.ProjectNames() {
		manifests := res.Projects[proj]
		fmt.Fprintln(bw, proj)
		for _, key := range manifests.Keys() {
			fmt.Fprintln(bw, manifestIndent+key)
			services := manifests[key]
			for _, svc := range services.Names() {
				fmt.Fprintf(bw, "%s%s: %s\n", serviceIndent, svc, services[svc])
			}
			fmt.Fprintln(bw)
		}
	}
	return bw.Flush()
}
