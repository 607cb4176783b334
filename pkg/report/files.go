package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/matzehuels/servicescan/pkg/collector"
)

// FileTimeLayout is the timestamp embedded in output file names.
const FileTimeLayout = "20060102_150405"

// Write encodes res in format f to w.
func Write(ctx context.Context, res *collector.Result, f Format, w io.Writer) error {
	switch f {
	case FormatJSON:
		return WriteJSON(res, w)
	case FormatText:
		return WriteText(res, w)
	case FormatCSV:
		return WriteCSV(res, w)
	case FormatDOT:
		return WriteDOT(res, w)
	case FormatSVG:
		return WriteSVG(ctx, res, w)
	}
	return fmt.Errorf("unknown format %q", f)
}

// WriteAll writes res in every format into dir, creating it if needed, and
// returns the written paths in format order. All files of one call share
// the timestamp at.
func WriteAll(ctx context.Context, res *collector.Result, dir string, formats []Format, at time.Time) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	ts := at.Format(FileTimeLayout)
	var paths []string
	for _, f := range formats {
		path := filepath.Join(dir, f.filename(ts))
		if err := writeFile(ctx, res, f, path); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(ctx context.Context, res *collector.Result, f Format, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(ctx, res, f, out); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return out.Close()
}
