package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gubarz/ssmlkit/internal/cache"
	"github.com/gubarz/ssmlkit/internal/catalog"
	"github.com/gubarz/ssmlkit/internal/config"
	"github.com/gubarz/ssmlkit/internal/dump"
	"github.com/gubarz/ssmlkit/internal/executor"
	"github.com/gubarz/ssmlkit/internal/ui"
	"github.com/gubarz/ssmlkit/pkg/ssml"
)

var version = "0.1.0"

var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "ssmlkit"})

var rootCmd = &cobra.Command{
	Use:   "ssmlkit [path]",
	Short: "Parse, check and render SSML",
	Long: `Toolkit for Speech Synthesis Markup Language documents.

Browse .ssml files and ssml code blocks in Markdown interactively,
preview them as spoken text, canonical markup or a tree, and print,
copy or speak the result.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runBrowse,
}

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Report documents that fail to parse",
	Long: `Parses every document below the given paths and prints one line
per failure:

  file:line:col: kind: message

Exits non-zero if any document is invalid.`,
	RunE: runCheck,
}

var speakCmd = &cobra.Command{
	Use:   "speak [file|-]",
	Short: "Print the speech rendering of a document",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSpeak,
}

var fmtCmd = &cobra.Command{
	Use:   "fmt [file|-]",
	Short: "Print canonical markup for a document",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFmt,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(checkCmd, speakCmd, fmtCmd)

	rootCmd.PersistentFlags().StringP("output", "o", "", "Output mode: print, copy, speak")
	rootCmd.PersistentFlags().StringP("format", "f", "", "Render format: speech, markup, tree")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.Flags().StringP("query", "q", "", "Initial search query")
	rootCmd.Flags().Bool("only-valid", false, "Hide documents that fail to parse")

	speakCmd.Flags().Bool("say", false, "Speak through the TTS command (shorthand for -o speak)")
	speakCmd.Flags().Bool("copy", false, "Copy to clipboard (shorthand for -o copy)")
	fmtCmd.Flags().Bool("tree", false, "Print the YAML tree instead of markup")

	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("only_valid", rootCmd.Flags().Lookup("only-valid"))
}

func initConfig() {
	if err := config.Init(); err != nil {
		logger.Error("loading config", "err", err)
	}
	level, err := log.ParseLevel(config.GetLogLevel())
	if err != nil {
		logger.Warn("unknown log level, using warn", "level", config.GetLogLevel())
		level = log.WarnLevel
	}
	logger.SetLevel(level)
}

func newLoader() (*catalog.Loader, error) {
	c, err := cache.New(config.GetCacheSize())
	if err != nil {
		return nil, fmt.Errorf("creating parse cache: %w", err)
	}
	return catalog.NewLoader(c, logger), nil
}

func runBrowse(cmd *cobra.Command, args []string) error {
	path := config.GetPath()
	if len(args) > 0 {
		path = args[0]
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("error resolving path: %w", err)
	}

	format, err := dump.ParseFormat(config.GetFormat())
	if err != nil {
		return err
	}

	loader, err := newLoader()
	if err != nil {
		return err
	}
	index, err := loader.Load(absPath)
	if err != nil {
		return fmt.Errorf("load error: %w", err)
	}
	if len(index.Documents) == 0 {
		return fmt.Errorf("no SSML documents found in %s", absPath)
	}

	query, _ := cmd.Flags().GetString("query")
	return ui.Run(cmd.Context(), index, executor.NewExecutor(), ui.Options{
		Query:     query,
		Format:    format,
		OnlyValid: config.GetOnlyValid(),
	})
}

func runCheck(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{config.GetPath()}
	}

	loader, err := newLoader()
	if err != nil {
		return err
	}

	// Unreadable paths are reported after the rest have been checked
	var index *catalog.Index
	var loadErrs []error
	for _, path := range args {
		idx, err := loader.Load(path)
		if err != nil {
			loadErrs = append(loadErrs, fmt.Errorf("load error: %w", err))
			continue
		}
		index = idx
	}
	if index == nil {
		return errors.Join(loadErrs...)
	}

	for _, path := range index.Skipped {
		loadErrs = append(loadErrs, fmt.Errorf("skipped unreadable %s", path))
	}

	invalid := index.Invalid()
	for _, doc := range invalid {
		fmt.Fprintln(cmd.OutOrStdout(), formatFailure(doc))
	}
	logger.Info("checked documents", "total", len(index.Documents), "invalid", len(invalid))

	if len(invalid) > 0 {
		loadErrs = append(loadErrs, fmt.Errorf("%d of %d documents invalid", len(invalid), len(index.Documents)))
	}
	return errors.Join(loadErrs...)
}

// formatFailure renders a parse failure as file:line:col: kind: message
func formatFailure(doc *catalog.Document) string {
	var perr *ssml.Error
	if errors.As(doc.Err, &perr) {
		return fmt.Sprintf("%s: %s: %s", doc.Location(), perr.Kind, perr.Message)
	}
	return fmt.Sprintf("%s: %v", doc.Location(), doc.Err)
}

func runSpeak(cmd *cobra.Command, args []string) error {
	if say, _ := cmd.Flags().GetBool("say"); say {
		config.SetOutput(string(executor.OutputSpeak))
	} else if cp, _ := cmd.Flags().GetBool("copy"); cp {
		config.SetOutput(string(executor.OutputCopy))
	}
	return renderOne(cmd, args, dump.FormatSpeech)
}

func runFmt(cmd *cobra.Command, args []string) error {
	format := dump.FormatMarkup
	if tree, _ := cmd.Flags().GetBool("tree"); tree {
		format = dump.FormatTree
	}
	return renderOne(cmd, args, format)
}

// renderOne loads a single document from a file or stdin and hands its
// rendering to the executor
func renderOne(cmd *cobra.Command, args []string, format dump.Format) error {
	loader, err := newLoader()
	if err != nil {
		return err
	}

	var doc *catalog.Document
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		doc = loader.LoadSource("<stdin>", string(b))
	} else {
		index, err := loader.Load(args[0])
		if err != nil {
			return fmt.Errorf("load error: %w", err)
		}
		if len(index.Documents) == 0 {
			return fmt.Errorf("no SSML documents found in %s", args[0])
		}
		if len(index.Documents) > 1 {
			logger.Warn("multiple documents found, using the first", "file", args[0], "count", len(index.Documents))
		}
		doc = index.Documents[0]
	}

	if !doc.Valid() {
		return fmt.Errorf("%s: %w", doc.Location(), doc.Err)
	}

	text, err := dump.Render(doc.Root, format)
	if err != nil {
		return err
	}
	return executor.NewExecutor().WithOutput(cmd.OutOrStdout()).Output(cmd.Context(), text)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd.Version = version
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error(err)
		stop()
		os.Exit(1)
	}
}
