package cli

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Faisalali0159/besofy/internal/admin"
	"github.com/Faisalali0159/besofy/internal/domain"
	"github.com/Faisalali0159/besofy/internal/listresource"
)

func newListCommand(s *settings) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every article (admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := admin.NewManager(s.client())
			defer m.Close()

			_ = m.Load(cmd.Context())
			snap := m.Snapshot()
			out := cmd.OutOrStdout()

			switch snap.State {
			case listresource.Error:
				return fmt.Errorf("%s", snap.Err)
			case listresource.Empty:
				fmt.Fprintln(out, "No news articles found")
				return nil
			}

			items := m.Search(search)
			if len(items) == 0 {
				fmt.Fprintf(out, "No articles match %q\n", search)
				return nil
			}
			renderArticles(out, items)
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "filter by title, content or category")
	return cmd
}

func renderArticles(out io.Writer, items []domain.Article) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"ID", "Title", "Category", "Status", "Created"})
	for _, a := range items {
		status := "Draft"
		if a.Published {
			status = "Published"
		}
		t.AppendRow(table.Row{
			a.ID,
			a.Title,
			a.Category.Label(),
			status,
			humanize.Time(a.CreatedAt),
		})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d articles", len(items))})
	t.Render()
}
