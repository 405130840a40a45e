package cli

import (
	"github.com/spf13/cobra"

	"noweb/internal/adapter/expander"
	"noweb/internal/adapter/fs"
	"noweb/internal/adapter/output"
	"noweb/internal/adapter/parser"
	"noweb/internal/domain"
	"noweb/internal/port"
	"noweb/internal/usecase"
)

var (
	tangleRef        string
	tangleOut        string
	tangleExecutable bool
)

var tangleCmd = &cobra.Command{
	Use:   "tangle <file>",
	Short: "Extract a chunk and everything it references",
	Long: `Extract the root chunk named by --ref from a literate document, expanding
nested chunk references with their indentation. Output goes to stdout unless
--out is given. Use "-" to read the document from stdin.

Examples:
  noweb tangle prog.md -R main
  noweb tangle prog.md -R main -o main.py -x
  noweb --dialect angle tangle prog.nw -R hello.c -o hello.c`,
	Args: cobra.ExactArgs(1),
	RunE: runTangle,
}

func init() {
	rootCmd.AddCommand(tangleCmd)
	tangleCmd.Flags().StringVarP(&tangleRef, "ref", "R", "", "the root chunk to be extracted (required)")
	tangleCmd.Flags().StringVarP(&tangleOut, "out", "o", "", "output file (default: stdout)")
	tangleCmd.Flags().BoolVarP(&tangleExecutable, "executable", "x", false, "if an output file was specified, chmod +x that file")
	tangleCmd.MarkFlagRequired("ref")
}

func runTangle(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	d := GetDialect()

	tangleUC := usecase.NewTangleUseCase(
		fs.NewDocumentReader(cmd.InOrStdin()),
		parser.NewParser(d),
		func(store *domain.ChunkStore) port.Expander {
			return expander.NewExpander(store, d)
		},
		output.NewSink(cmd.OutOrStdout()),
	)

	_, err := tangleUC.Tangle(usecase.TangleRequest{
		Document:   args[0],
		Root:       tangleRef,
		Output:     tangleOut,
		Executable: tangleExecutable || cfg.Tangle.Executable,
	})
	return err
}
