package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"synm-hq/mediator/pkg/cli"
	"synm-hq/mediator/pkg/config"
	"synm-hq/mediator/pkg/store/semantic"
	"synm-hq/mediator/pkg/telemetry/logging"
)

var seedFlags struct {
	file    string
	replace bool
}

// seedEntry is one record in a seed file.
type seedEntry struct {
	Scope    string            `yaml:"scope"`
	Content  string            `yaml:"content"`
	Source   string            `yaml:"source"`
	Metadata map[string]string `yaml:"metadata"`
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load scope content into the stores",
	Long: `Load scope content from a YAML seed file into the structured store
and, when a semantic backend is configured, index it for similarity
search.

The seed file is a list of entries:

  - scope: bio.basic
    content: Grew up in Lisbon, moved to Berlin in 2015.
    source: notes/bio.md
    metadata:
      category: biography

Examples:
  mediator seed --file seed.yaml

  # Drop previously indexed content per scope before re-indexing
  mediator seed --file seed.yaml --replace`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().StringVarP(&seedFlags.file, "file", "f", "seed.yaml", "seed file path")
	seedCmd.Flags().BoolVar(&seedFlags.replace, "replace", false, "delete indexed content per scope before re-indexing")
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return cli.NewConfigError("", err.Error())
	}
	logging.Setup(cfg.Telemetry.Logging)

	data, err := os.ReadFile(seedFlags.file)
	if err != nil {
		return cli.NewCommandError("seed", err)
	}

	var entries []seedEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return cli.NewCommandError("seed", fmt.Errorf("failed to parse seed file: %w", err))
	}

	store, err := openStructuredStore(cfg)
	if err != nil {
		return cli.NewCommandError("seed", err)
	}
	defer store.Close()

	var indexer semantic.Indexer
	if cfg.Semantic.URL != "" {
		client := semantic.NewClient(semantic.ClientConfig{
			BaseURL: cfg.Semantic.URL,
			Timeout: cfg.Semantic.Timeout,
		})
		client.Connect(cmd.Context())
		if client.Connected() {
			indexer = client
		} else {
			fmt.Fprintln(os.Stderr, "semantic store unreachable, seeding structured store only")
		}
	}

	cleared := make(map[string]bool)

	stored, indexed := 0, 0
	for i, entry := range entries {
		if entry.Scope == "" || entry.Content == "" {
			return cli.NewCommandError("seed",
				fmt.Errorf("entry %d: scope and content are required", i))
		}

		if seedFlags.replace && indexer != nil && !cleared[entry.Scope] {
			if err := indexer.DeleteScope(cmd.Context(), entry.Scope); err != nil {
				return cli.NewCommandError("seed", fmt.Errorf("entry %d: %w", i, err))
			}
			cleared[entry.Scope] = true
		}

		if err := store.StoreScopeData(cmd.Context(), entry.Scope, entry.Content, entry.Metadata); err != nil {
			return cli.NewCommandError("seed", err)
		}
		stored++

		if indexer == nil {
			continue
		}
		source := entry.Source
		if source == "" {
			source = fmt.Sprintf("seed:%s", entry.Scope)
		}
		if err := indexer.Index(cmd.Context(), semantic.Document{
			Content:  entry.Content,
			Source:   source,
			Scope:    entry.Scope,
			Metadata: entry.Metadata,
		}); err != nil {
			return cli.NewCommandError("seed", fmt.Errorf("entry %d: %w", i, err))
		}
		indexed++
	}

	fmt.Printf("seeded %d scopes (%d indexed for search)\n", stored, indexed)
	return nil
}
