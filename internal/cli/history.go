package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/servicescan/pkg/config"
	"github.com/matzehuels/servicescan/pkg/report"
	"github.com/matzehuels/servicescan/pkg/store"
)

var errNoArchive = errors.New(`no archive configured (set ARCHIVE_URL or MONGO_URI, or pass --archive)`)

func (c *CLI) historyCommand() *cobra.Command {
	var (
		archive    string
		configPath string
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List archived runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openArchive(cmd.Context(), configPath, archive)
			if err != nil {
				return err
			}
			defer st.Close(context.WithoutCancel(cmd.Context()))

			runs, err := st.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				printInfo(c.Out, "No archived runs")
				return nil
			}
			fmt.Fprintln(c.Out, renderRuns(runs))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&archive, "archive", "", "archive to read (overrides configuration)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (.json or .toml)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of runs to list (0: all)")

	cmd.AddCommand(c.historyShowCommand(&configPath, &archive))
	return cmd
}

func (c *CLI) historyShowCommand(configPath, archive *string) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show RUN_ID",
		Short: "Print an archived run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats, err := report.ParseFormats(format)
			if err != nil {
				return err
			}
			if len(formats) != 1 {
				return fmt.Errorf("show prints one format at a time")
			}

			ctx := cmd.Context()
			st, err := openArchive(ctx, *configPath, *archive)
			if err != nil {
				return err
			}
			defer st.Close(context.WithoutCancel(ctx))

			res, err := st.Get(ctx, args[0])
			if err != nil {
				return err
			}
			return report.Write(ctx, res, formats[0], c.Out)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(report.FormatText), "output format")
	return cmd
}

// openArchive opens the archive named by flag, or the configured one.
func openArchive(ctx context.Context, configPath, flag string) (store.Store, error) {
	spec := flag
	if spec == "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		spec = cfg.Archive
	}
	st, err := store.Open(ctx, spec)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, errNoArchive
	}
	return st, nil
}

func renderRuns(runs []store.Summary) string {
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			r.CollectedAt.Local().Format(report.TimeLayout),
			r.RunID,
			r.Group,
			strconv.Itoa(r.Stats.TotalProjects),
			strconv.Itoa(r.Stats.TotalServices),
			strconv.Itoa(r.Stats.Errors),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Collected", "Run", "Scope", "Projects", "Services", "Errors").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 1 {
				return StyleDim
			}
			return StyleValue
		}).
		Render()
}
