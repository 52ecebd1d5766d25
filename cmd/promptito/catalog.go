package main

import (
	"fmt"
	"text/tabwriter"

	"promptito-be/pkg/builder/catalog"
	"promptito-be/pkg/builder/segment"

	"github.com/spf13/cobra"
)

var (
	catalogNiche   string
	catalogTarget  string
	catalogSearch  string
	catalogSuggest string
	catalogLimit   int
	catalogJSON    bool
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List catalog blocks, filtered or ranked by a fuzzy suggestion",
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, err := translator()
		if err != nil {
			return err
		}
		store, err := catalog.Default()
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}

		var blocks []catalog.Block
		if catalogSuggest != "" {
			blocks = store.Suggest(catalogSuggest, tr, catalogLimit)
		} else {
			blocks = store.Filter(catalog.Query{
				Search: catalogSearch,
				Niche:  catalogNiche,
				Target: segment.ID(catalogTarget),
			}, tr)
			if catalogLimit > 0 && len(blocks) > catalogLimit {
				blocks = blocks[:catalogLimit]
			}
		}

		if catalogJSON {
			return printJSON(cmd.OutOrStdout(), blocks)
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNICHE\tSEGMENT\tTITLE")
		for _, b := range blocks {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", b.ID, b.Niche, b.TargetColumn, tr.T(b.TitleKey))
		}
		return w.Flush()
	},
}

func init() {
	catalogCmd.Flags().StringVar(&catalogNiche, "niche", "", "Niche prefix, \"all\" for every niche")
	catalogCmd.Flags().StringVar(&catalogTarget, "segment", "", "Only blocks meant for this segment")
	catalogCmd.Flags().StringVarP(&catalogSearch, "query", "q", "", "Substring match on title and content")
	catalogCmd.Flags().StringVar(&catalogSuggest, "suggest", "", "Fuzzy rank blocks by title")
	catalogCmd.Flags().IntVar(&catalogLimit, "limit", 0, "Maximum number of blocks, 0 for all")
	catalogCmd.Flags().BoolVar(&catalogJSON, "json", false, "Print JSON instead of a table")
}
