package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Faisalali0159/besofy/internal/browse"
	"github.com/Faisalali0159/besofy/internal/domain"
	"github.com/Faisalali0159/besofy/internal/listresource"
)

func newBrowseCommand(s *settings) *cobra.Command {
	var (
		category string
		expand   []string
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Show published articles grouped by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b := browse.NewBrowser(s.client().ListSummaries, browse.Options{Placeholder: s.placeholder})
			defer b.Close()

			_ = b.Load(cmd.Context())
			if snap := b.Snapshot(); snap.State == listresource.Error {
				return fmt.Errorf("%s", snap.Err)
			}

			b.SelectTab(browse.ParseTab(category))
			for _, c := range expand {
				b.Toggle(domain.Category(c))
			}

			renderView(cmd.OutOrStdout(), b.View())
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", string(browse.TabAll), "tab to show: All, Crypto, Stocks, Commodities, Markets, Tech")
	cmd.Flags().StringSliceVarP(&expand, "expand", "e", nil, "categories to show in full")
	return cmd
}

func renderView(out io.Writer, v browse.View) {
	if v.Message != "" {
		fmt.Fprintln(out, v.Message)
		return
	}

	for i, sec := range v.Sections {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "== %s ==\n", sec.Label)
		for _, card := range sec.Cards {
			fmt.Fprintf(out, "* %s (%s, %s)\n", card.Title, card.Date, card.Ago)
			if card.Excerpt != "" {
				fmt.Fprintf(out, "  %s\n", card.Excerpt)
			}
			fmt.Fprintf(out, "  image: %s\n", card.Image)
		}
		if sec.Toggle != "" {
			fmt.Fprintf(out, "[%s] %d of %d shown\n", sec.Toggle, len(sec.Cards), sec.Total)
		}
	}
}
