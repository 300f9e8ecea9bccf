package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"w3stringsx/internal/config"
	"w3stringsx/internal/encoder"
	"w3stringsx/internal/lang"
	"w3stringsx/internal/scanner"
	"w3stringsx/internal/strtable"
	"w3stringsx/internal/textenc"
	"w3stringsx/internal/workdir"
	"w3stringsx/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type options struct {
	output    string
	language  string
	search    string
	keepCSV   bool
	force     bool
	verbosity string
}

// Execute runs the CLI application.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "w3stringsx <input>",
		Short: "Prepare and encode localization string tables for the w3strings encoder",
		Long: `Prepares localization strings for the game's string database.

The input path selects the mode of operation:
  *.w3strings  decode a compiled table into the CSV text format
  *.csv        validate, assign ids, and encode into a compiled table
  directory    scan mod sources for string keys and merge them into a CSV`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], opts)
		},
	}

	rootCmd.Flags().StringVarP(&opts.output, "output", "o", "", "output directory (default: next to the input)")
	rootCmd.Flags().StringVarP(&opts.language, "lang", "l", "", `target language, or "all" (default: deduced from the input)`)
	rootCmd.Flags().StringVarP(&opts.search, "search", "s", "", "key prefix filter for directory scanning")
	rootCmd.Flags().BoolVarP(&opts.keepCSV, "keep-csv", "k", false, "keep intermediate CSV files")
	rootCmd.Flags().BoolVarP(&opts.force, "force", "f", false, "disable the encoder's id space check")
	rootCmd.Flags().StringVarP(&opts.verbosity, "verbosity", "v", "info", "log level: debug, info, warn, error")

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Failed")
		os.Exit(1)
	}
}

func run(input string, opts *options) error {
	level, err := zerolog.ParseLevel(opts.verbosity)
	if err != nil {
		return fmt.Errorf("invalid verbosity %q: %w", opts.verbosity, err)
	}
	zerolog.SetGlobalLevel(level)

	cfg := config.Load()

	ctx, cancel := setupContext()
	defer cancel()

	info, err := os.Stat(input)
	if err != nil {
		return fmt.Errorf("stat input path: %w", err)
	}

	if info.IsDir() {
		return runScanMerge(input, opts)
	}

	switch strings.ToLower(filepath.Ext(input)) {
	case ".w3strings":
		return runDecode(ctx, cfg, input, opts)
	case ".csv":
		return runEncode(ctx, cfg, input, opts)
	default:
		return fmt.Errorf("unsupported file type: %q", filepath.Ext(input))
	}
}

// setupContext creates a cancellable context with signal handling.
func setupContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		log.Warn().Msg("Received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}

// runDecode handles *.w3strings inputs: the external tool produces
// <input>.csv, which is then moved into the requested output directory.
func runDecode(ctx context.Context, cfg *config.Config, input string, opts *options) error {
	runner := encoder.NewRunner(cfg.EncoderPath, log.Logger)
	if err := runner.Decode(ctx, input); err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	produced := input + ".csv"
	if opts.output == "" {
		log.Info().Str("output", produced).Msg("Decoded string table")
		return nil
	}

	if err := os.MkdirAll(opts.output, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	dest := filepath.Join(opts.output, filepath.Base(produced))
	if err := os.Rename(produced, dest); err != nil {
		return fmt.Errorf("move decoded file: %w", err)
	}

	log.Info().Str("output", dest).Msg("Decoded string table")
	return nil
}

// runEncode handles *.csv inputs: parse and validate the document, resolve
// ids for abbreviated entries, then encode once per target language.
func runEncode(ctx context.Context, cfg *config.Config, input string, opts *options) error {
	if opts.language != "" && opts.language != "all" && !lang.IsKnown(opts.language) {
		return fmt.Errorf("language %q is invalid; known languages are %s",
			opts.language, strings.Join(lang.All(), ", "))
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read input file: %w", err)
	}
	text, err := textenc.Decode(data)
	if err != nil {
		return fmt.Errorf("decode input file: %w", err)
	}

	doc, err := strtable.ParseInputDocument(input, strtable.SplitLines(text))
	if err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(input), err)
	}

	out := strtable.Compose(doc)

	targets := targetLanguages(opts.language, out.TargetLang, cfg.DefaultLang)

	outDir := opts.output
	if outDir == "" {
		outDir = filepath.Dir(input)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	scratch, err := workdir.New(outDir, opts.keepCSV)
	if err != nil {
		return err
	}
	defer scratch.Cleanup()

	runner := encoder.NewRunner(cfg.EncoderPath, log.Logger)

	// The encoder's id range check is skipped when forced explicitly or
	// when vanilla ids already rule out a single sub-space.
	idSpace := out.IDSpace
	if opts.force {
		idSpace = nil
	}

	pool := worker.NewPool(cfg.WorkerCount,
		func(ctx context.Context, target string) (string, error) {
			return encodeOne(ctx, runner, scratch, outDir, out, target, idSpace)
		},
	)

	failed := 0
	for _, task := range pool.Execute(ctx, targets) {
		if task.Err != nil {
			failed++
			continue
		}
		log.Info().Str("lang", task.Input).Str("output", task.Result).Msg("Encoded string table")
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d encodes failed", failed, len(targets))
	}

	log.Info().Int("languages", len(targets)).Int("records", len(out.Records)).Msg("Encoding complete")
	return nil
}

// encodeOne writes the document for one target language into the scratch
// directory, runs the encoder on it, and moves the result into place.
func encodeOne(ctx context.Context, runner *encoder.Runner, scratch *workdir.Dir,
	outDir string, out *strtable.OutputDocument, target string, idSpace *int) (string, error) {

	perLang := *out
	perLang.TargetLang = target
	if target != out.TargetLang {
		perLang.MetaTag = lang.MetaFor(target)
	}

	csvPath := scratch.File(target + ".csv")
	if err := os.WriteFile(csvPath, []byte(perLang.Serialize()), 0644); err != nil {
		return "", fmt.Errorf("write intermediate csv: %w", err)
	}

	if err := runner.Encode(ctx, csvPath, idSpace); err != nil {
		return "", err
	}

	dest := filepath.Join(outDir, target+".w3strings")
	if err := os.Rename(csvPath+".w3strings", dest); err != nil {
		return "", fmt.Errorf("move encoded file: %w", err)
	}
	return dest, nil
}

func targetLanguages(flag, deduced, fallback string) []string {
	switch {
	case flag == "all":
		return lang.All()
	case flag != "":
		return []string{flag}
	case deduced != "":
		return []string{deduced}
	default:
		return []string{fallback}
	}
}

// runScanMerge handles directory inputs: scan mod sources for string keys
// and merge them into an annotated CSV next to (or inside) the output
// directory.
func runScanMerge(root string, opts *options) error {
	w := scanner.NewWalker()
	entries, err := w.Walk(root)
	if err != nil {
		return fmt.Errorf("walk input directory: %w", err)
	}

	bySection, err := w.ScanAll(entries, opts.search)
	if err != nil {
		return err
	}

	target := mergeTargetPath(root, opts.output)
	if dir := filepath.Dir(target); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	doc, err := strtable.OpenMergingDocument(target)
	if err != nil {
		return err
	}

	inserted := 0
	for _, section := range scanner.SectionOrder {
		keys := bySection[section]
		if len(keys) == 0 {
			continue
		}
		records := make([]strtable.Abbreviated, len(keys))
		for i, key := range keys {
			records[i] = strtable.Abbreviated{Key: key.Key, Text: strtable.MissingText}
		}
		inserted += doc.InsertSection(section, records)
	}

	if inserted == 0 && !doc.IsFresh() {
		log.Info().Str("target", target).Msg("No new keys to merge")
		return nil
	}

	if err := doc.Save(); err != nil {
		return err
	}

	log.Info().
		Str("target", target).
		Int("files", len(entries)).
		Int("inserted", inserted).
		Msg("Merge complete")
	return nil
}

// mergeTargetPath picks the CSV the scanned keys are merged into: an
// explicit .csv output path wins, otherwise <output dir>/<mod name>.strings.csv.
func mergeTargetPath(root, output string) string {
	if strings.EqualFold(filepath.Ext(output), ".csv") {
		return output
	}
	name := filepath.Base(filepath.Clean(root)) + ".strings.csv"
	if output != "" {
		return filepath.Join(output, name)
	}
	return filepath.Join(filepath.Clean(root), name)
}
