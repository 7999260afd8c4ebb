// Package cli implements the markit command-line interface.
//
// The root command converts one or more files to Markdown, writing each
// result to the current directory or to --output. Subcommands list
// supported formats and print version information. Logging goes to stderr
// through charmbracelet/log; --verbose (-v) enables debug level. Loggers
// are passed through context.Context so command helpers stay testable.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/bjaus/markit"
	"github.com/bjaus/markit/convert"
)

// rootFlags holds the command-line flags for the root command.
type rootFlags struct {
	output       string // output file or directory (current directory if empty)
	stdout       bool   // write Markdown to stdout instead of files
	noTables     bool   // disable Markdown tables
	noMetadata   bool   // skip document information sections
	noImages     bool   // drop images from HTML conversion
	escapeHTML   bool   // entity-escape &, <, > in rendered text
	sortKeys     bool   // sort mapping keys alphabetically
	tableFormat  string // github, markdown, or pipe
	listStyle    string // dash, asterisk, or plus
	headingStyle string // atx or setext
	dateFormat   string // Go time layout for rendered dates
	language     string // document language hint
	maxFileSize  int64  // input size limit in bytes
	check        bool   // validate output instead of writing it
	pdf          bool   // export PDF instead of Markdown
	configPath   string // TOML config file
}

// Execute runs the markit CLI with the given arguments. The context
// carries cancellation from signal handling in main.
func Execute(ctx context.Context, args []string) error {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "markit <file>...",
		Short:         "Convert files to Markdown",
		Long:          `markit converts text, CSV, JSON, XML, log, and HTML files to clean Markdown documents.`,
		Version:       markit.Version,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, flags, args)
		},
	}

	var verbose bool
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		level := charmlog.InfoLevel
		if verbose {
			level = charmlog.DebugLevel
		}
		cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
	}

	root.Flags().StringVarP(&flags.output, "output", "o", "", "output file or directory (default: <source>.md in the current directory)")
	root.Flags().BoolVar(&flags.stdout, "stdout", false, "write Markdown to stdout")
	root.Flags().BoolVar(&flags.noTables, "no-tables", false, "render tabular data as lists instead of tables")
	root.Flags().BoolVar(&flags.noMetadata, "no-metadata", false, "skip document information sections")
	root.Flags().BoolVar(&flags.noImages, "no-images", false, "drop images when converting HTML")
	root.Flags().BoolVar(&flags.escapeHTML, "escape-html", false, "entity-escape &, <, and > in rendered text")
	root.Flags().BoolVar(&flags.sortKeys, "sort-keys", false, "sort mapping keys alphabetically")
	root.Flags().StringVar(&flags.tableFormat, "table-format", "", "table separator style: github, markdown, or pipe")
	root.Flags().StringVar(&flags.listStyle, "list-style", "", "list marker: dash, asterisk, or plus")
	root.Flags().StringVar(&flags.headingStyle, "heading-style", "", "heading style: atx or setext")
	root.Flags().StringVar(&flags.dateFormat, "date-format", "", "Go time layout for rendered dates")
	root.Flags().StringVar(&flags.language, "language", "", "document language hint")
	root.Flags().Int64Var(&flags.maxFileSize, "max-file-size", 0, "input size limit in bytes")
	root.Flags().BoolVar(&flags.check, "check", false, "validate produced Markdown without writing files")
	root.Flags().BoolVar(&flags.pdf, "pdf", false, "export a typeset PDF instead of Markdown")
	root.Flags().StringVarP(&flags.configPath, "config", "c", "", "TOML config file")

	root.AddCommand(newFormatsCmd())
	root.AddCommand(newVersionCmd())

	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// runConvert converts every argument in order, reporting per-file failures
// without aborting the batch.
func runConvert(cmd *cobra.Command, flags *rootFlags, args []string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	fileCfg, err := loadConfig(flags.configPath)
	if err != nil {
		return err
	}
	if flags.output == "" && fileCfg.Output != "" {
		flags.output = fileCfg.Output
	}
	opts := buildOptions(fileCfg, flags)

	engine := convert.NewEngine(convert.WithLogger(logger))

	var failed int
	for res, err := range engine.ConvertAll(ctx, args, opts) {
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Error("conversion failed", "err", err)
			failed++
			continue
		}
		if err := emit(cmd, flags, res); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(args))
	}
	return nil
}

// emit writes one result according to the output flags.
func emit(cmd *cobra.Command, flags *rootFlags, res *convert.Result) error {
	logger := loggerFromContext(cmd.Context())

	if flags.check {
		if !res.Valid() {
			return fmt.Errorf("%s: produced Markdown failed validation", res.FileName)
		}
		logger.Info("valid", "file", res.FileName, "words", res.WordCount())
		return nil
	}

	if flags.pdf {
		path := outputPath(flags.output, res.FileName, ".pdf")
		if err := writePDF(path, res); err != nil {
			return fmt.Errorf("write pdf: %w", err)
		}
		logger.Info("wrote", "path", path)
		return nil
	}

	if flags.stdout || flags.output == "-" {
		fmt.Fprintln(cmd.OutOrStdout(), res.Markdown)
		return nil
	}

	path := outputPath(flags.output, res.FileName, ".md")
	if err := os.WriteFile(path, []byte(res.Markdown), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	logger.Info("wrote", "path", path, "words", res.WordCount())
	return nil
}

// outputPath picks the destination file: an explicit path when output
// names one, the source name with its extension swapped otherwise, placed
// under output when it is a directory.
func outputPath(output, fileName, ext string) string {
	base := strings.TrimSuffix(fileName, filepath.Ext(fileName)) + ext
	if output == "" {
		return base
	}
	if info, err := os.Stat(output); err == nil && info.IsDir() {
		return filepath.Join(output, base)
	}
	return output
}

// newFormatsCmd lists the MIME types the registered converters accept.
func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported input formats",
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "Supported MIME types:")
			for _, mime := range convert.NewEngine().Registry().SupportedTypes() {
				fmt.Fprintln(w, " ", mime)
			}
			fmt.Fprintln(w)
			fmt.Fprintln(w, "Common extensions: .txt .text .md .markdown .csv .json .xml .log .html .htm")
		},
	}
}

// newVersionCmd prints version details beyond cobra's --version.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			info := markit.NewEngine(markit.NewConfig()).Info()
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\nrenderers: %s\n", info.Name, info.Version, strings.Join(info.Renderers, ", "))
		},
	}
}
