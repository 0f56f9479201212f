// The server command runs the vocabulary trainer: an HTTP API over a local
// SQLite file, plus maintenance subcommands for exporting, importing and
// bulk-loading words.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rzaytsev/vocab-api/internal/config"
	"github.com/rzaytsev/vocab-api/internal/domain"
	"github.com/rzaytsev/vocab-api/internal/excel"
	"github.com/rzaytsev/vocab-api/internal/service"
)

var configFile string

func main() {
	rootCmd := &cobra.Command{
		Use:          "server",
		Short:        "Local-first vocabulary trainer with spaced repetition",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to config file (YAML)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	var exportPath string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write a snapshot of all word collections to a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), exportPath)
		},
	}
	exportCmd.Flags().StringVarP(&exportPath, "output", "o", "vocab-export.json", "output file")

	var importPath string
	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Merge a snapshot JSON file into the current collections",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), importPath)
		},
	}
	importCmd.Flags().StringVarP(&importPath, "input", "i", "", "snapshot file")
	_ = importCmd.MarkFlagRequired("input")

	var wordsPath, wordsLevel string
	importWordsCmd := &cobra.Command{
		Use:   "import-words",
		Short: "Bulk-add custom words from an .xlsx or .csv file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImportWords(cmd.Context(), wordsPath, wordsLevel)
		},
	}
	importWordsCmd.Flags().StringVarP(&wordsPath, "input", "i", "", "spreadsheet file")
	importWordsCmd.Flags().StringVar(&wordsLevel, "level", "A1", "level for rows without one")
	_ = importWordsCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(serveCmd, exportCmd, importCmd, importWordsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadApplication loads config and builds the dependency graph.
func loadApplication(ctx context.Context) (*application, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return newApplication(ctx, cfg)
}

func runServe(ctx context.Context) error {
	app, err := loadApplication(ctx)
	if err != nil {
		return err
	}
	return app.startHTTPServer(ctx, app.setupRouter())
}

func runExport(ctx context.Context, path string) error {
	app, err := loadApplication(ctx)
	if err != nil {
		return err
	}
	defer app.cleanup()

	data, err := json.MarshalIndent(app.learning.Export(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	fmt.Printf("exported to %s\n", path)
	return nil
}

func runImport(ctx context.Context, path string) error {
	app, err := loadApplication(ctx)
	if err != nil {
		return err
	}
	defer app.cleanup()

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snapshot service.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return fmt.Errorf("failed to parse snapshot: %w", err)
	}

	report, err := app.learning.Import(ctx, snapshot)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Printf("imported %d learning words, %d custom words\n",
		report.LearningAdded, report.CustomAdded)
	return nil
}

func runImportWords(ctx context.Context, path, levelText string) error {
	app, err := loadApplication(ctx)
	if err != nil {
		return err
	}
	defer app.cleanup()

	level, err := domain.ParseLevel(levelText)
	if err != nil {
		return fmt.Errorf("invalid level %q: %w", levelText, err)
	}

	cfg := excel.DefaultImportConfig(path)
	cfg.DefaultLevel = level

	importer := excel.NewImporter(app.learning, app.logger)
	result, err := importer.ImportWords(ctx, cfg)
	if err != nil {
		return err
	}

	fmt.Printf("processed %d rows: %d created, %d skipped, %d errors\n",
		result.TotalProcessed, result.Created, result.Skipped, len(result.Errors))
	for _, rowErr := range result.Errors {
		fmt.Println("  " + rowErr)
	}
	return nil
}
