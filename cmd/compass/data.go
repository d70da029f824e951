package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/acmcompass/compass/internal/config"
	"github.com/acmcompass/compass/internal/store"
)

var flagExportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the problem dataset with solutions inlined",
	Long: `Write the full problem dataset as a JSON list, with each
solution side-file inlined as solution_markdown. The output is the
same shape the import command and /api/import accept.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		records, err := newProblemStore(cfg).Export()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		data = append(data, '\n')

		if flagExportOut == "" {
			os.Stdout.Write(data)
			return
		}
		if err := os.WriteFile(flagExportOut, data, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", flagExportOut, err)
			os.Exit(1)
		}
		fmt.Printf("Exported %d problems to %s\n", len(records), flagExportOut)
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the problem dataset from an export file",
	Long: `Replace the entire problem dataset with the records in the
given JSON file. Records may be in any historical schema; they are
migrated on the way in, and inline solution_markdown fields become
side-files.

The previous dataset is backed up as problems.bak.json before it is
overwritten.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", args[0], err)
			os.Exit(1)
		}
		var records []map[string]any
		if err := json.Unmarshal(data, &records); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s is not a JSON list of problems: %v\n", args[0], err)
			os.Exit(1)
		}

		count, err := newProblemStore(cfg).Import(records)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Imported %d problems\n", count)
	},
}

func newProblemStore(cfg *config.Config) *store.ProblemStore {
	solutions := store.NewSolutionStore(cfg.SolutionsDir())
	return store.NewProblemStore(cfg.ProblemsFile(), solutions, nil)
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportOut, "output", "o", "", "write to file instead of stdout")
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
