package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"noweb/internal/adapter/fs"
	"noweb/internal/adapter/parser"
	"noweb/internal/usecase"
)

var (
	listRoots bool
	listJSON  bool
)

var listCmd = &cobra.Command{
	Use:   "list <file>",
	Short: "List the chunks a document defines",
	Long: `List every chunk defined in a document with its line and reference counts.
With --roots, only chunks that no other chunk references are shown; these
are the candidates for extraction.

Examples:
  noweb list prog.md
  noweb list prog.md --roots`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listRoots, "roots", false, "only show root chunks")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")
}

func runList(cmd *cobra.Command, args []string) error {
	d := GetDialect()
	listUC := usecase.NewListUseCase(fs.NewDocumentReader(cmd.InOrStdin()), parser.NewParser(d), d)

	summaries, err := listUC.List(args[0], listRoots)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if listJSON {
		data, err := json.MarshalIndent(summaries, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if listRoots {
		for _, s := range summaries {
			fmt.Fprintln(out, s.Name)
		}
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CHUNK\tLINES\tREFS\tROOT")
	for _, s := range summaries {
		root := ""
		if s.Root {
			root = "yes"
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", s.Name, s.Lines, s.References, root)
	}
	return tw.Flush()
}
