package cli

import (
	"bytes"

	"github.com/spf13/cobra"

	"noweb/internal/adapter/fs"
	"noweb/internal/adapter/output"
	"noweb/internal/adapter/parser"
	"noweb/internal/adapter/weave"
	"noweb/internal/usecase"
)

var weaveOut string

var weaveCmd = &cobra.Command{
	Use:   "weave <file>",
	Short: "Render a literate document as HTML",
	Long: `Render the document's prose and code as HTML. Every chunk definition gets
an anchor (chunk-<name>) and a label.

Examples:
  noweb weave prog.md > prog.html
  noweb weave prog.md -o prog.html`,
	Args: cobra.ExactArgs(1),
	RunE: runWeave,
}

func init() {
	rootCmd.AddCommand(weaveCmd)
	weaveCmd.Flags().StringVarP(&weaveOut, "out", "o", "", "output file (default: stdout)")
}

func runWeave(cmd *cobra.Command, args []string) error {
	d := GetDialect()
	weaveUC := usecase.NewWeaveUseCase(
		fs.NewDocumentReader(cmd.InOrStdin()),
		parser.NewParser(d),
		weave.NewHTMLWeaver(),
		d.Announces(),
	)

	if weaveOut == "" {
		return weaveUC.Weave(args[0], cmd.OutOrStdout())
	}

	var buf bytes.Buffer
	if err := weaveUC.Weave(args[0], &buf); err != nil {
		return err
	}
	return output.WriteFile(weaveOut, buf.Bytes())
}
