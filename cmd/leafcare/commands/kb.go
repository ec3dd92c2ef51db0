package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"leafcare/internal/kb"
	"leafcare/internal/util/jsonutil"
)

func newKBCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "kb [label]",
		Short: "List knowledge base entries, or show which entry a label matches",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := root.setup()
			if err != nil {
				return err
			}
			cat, err := kb.Load(cfg.KB.Path)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				m := cat.Match(args[0])
				body, err := jsonutil.MarshalNoEscapeIndent(map[string]any{
					"label":        args[0],
					"id":           m.Entry.ID,
					"name":         m.Entry.Name,
					"matchedAlias": m.MatchedAlias,
					"matchScore":   m.Score,
				}, "", "  ")
				if err != nil {
					return err
				}
				_, err = out.Write(body)
				return err
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tPRIORITY\tALIASES")
			for _, e := range cat.Entries() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.ID, e.Name, e.DefaultPriority, strings.Join(e.LabelAliases, ", "))
			}
			return tw.Flush()
		},
	}
}
