package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/cosmify/internal"
	"github.com/starford/cosmify/internal/convert"
	"github.com/starford/cosmify/internal/wikilink"
	pkgconfig "github.com/starford/cosmify/pkg/config"
)

func run(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	cfg := internal.NewDefaultConfig()
	if cmd.IsSet("config") {
		if err := pkgconfig.Read(configPath, cfg); err != nil {
			return fmt.Errorf("failed to parse config: %w", err)
		}
	} else if _, err := pkgconfig.ReadIfExists(configPath, cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	applyFlags(cmd, cfg)

	if err := pkgconfig.Validate(cfg); err != nil {
		return err
	}

	opts := []internal.Option{
		internal.WithConfig(cfg),
	}

	if err := internal.Run(ctx, opts...); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}

	return nil
}

// applyFlags overrides the configuration with every flag given on the
// command line or through its environment variable.
func applyFlags(cmd *cli.Command, cfg *internal.Config) {
	if cmd.IsSet("input") {
		cfg.Vault.Input = cmd.String("input")
	}
	if cmd.IsSet("output") {
		cfg.Vault.Output = cmd.String("output")
	}
	if cmd.IsSet("type") {
		cfg.Filter.Type = cmd.String("type")
	}
	if cmd.IsSet("tags") {
		cfg.Filter.Tags = cmd.StringSlice("tags")
	}
	if cmd.IsSet("typed-links") {
		cfg.Convert.TypedLinks = cmd.Bool("typed-links")
	}
	if cmd.IsSet("semantic-section") {
		cfg.Convert.SemanticSection = cmd.String("semantic-section")
	}
	if cmd.IsSet("creation-date") && cmd.Bool("creation-date") {
		cfg.Convert.IDMode = string(convert.IDModeCreationDate)
	}
	if cmd.IsSet("zettlr") && cmd.Bool("zettlr") {
		cfg.Convert.LinkStyle = string(wikilink.StyleMarkdownLink)
	}
	if cmd.IsSet("verbose") {
		cfg.Convert.Verbose = cmd.Bool("verbose")
	}
	if cmd.IsSet("reformat-properties") {
		cfg.Convert.ReformatProperties = cmd.Bool("reformat-properties")
	}
	if cmd.IsSet("folder2type") {
		cfg.Convert.FolderToType = cmd.Bool("folder2type")
	}
	if cmd.IsSet("index") {
		cfg.SQLite.Path = cmd.String("index")
	}
	if cmd.IsSet("watch") {
		cfg.Watch.Enabled = cmd.Bool("watch")
	}
}

func main() {
	cmd := &cli.Command{
		Name:   "cosmify",
		Usage:  "Convert an Obsidian vault into notes for the Cosma graph viewer",
		Action: run,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("COSMIFY_CONFIG_FILE"),
			},
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "Obsidian vault to read",
				Sources: cli.EnvVars("COSMIFY_INPUT"),
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Folder that receives the converted notes",
				Sources: cli.EnvVars("COSMIFY_OUTPUT"),
			},
			&cli.StringFlag{
				Name:    "type",
				Usage:   "Only convert notes whose header type equals this value",
				Sources: cli.EnvVars("COSMIFY_TYPE"),
			},
			&cli.StringSliceFlag{
				Name:    "tags",
				Usage:   "Only convert notes carrying all of these tags (space-separated or repeated)",
				Sources: cli.EnvVars("COSMIFY_TAGS"),
			},
			&cli.BoolFlag{
				Name:    "typed-links",
				Usage:   "Turn \"- type [[Title]]\" list items into typed links",
				Sources: cli.EnvVars("COSMIFY_TYPED_LINKS"),
			},
			&cli.StringFlag{
				Name:    "semantic-section",
				Usage:   "Only recode typed links below this heading, e.g. \"## Links\"",
				Sources: cli.EnvVars("COSMIFY_SEMANTIC_SECTION"),
			},
			&cli.BoolFlag{
				Name:    "creation-date",
				Usage:   "Derive new ids from file timestamps instead of a counter",
				Sources: cli.EnvVars("COSMIFY_CREATION_DATE"),
			},
			&cli.BoolFlag{
				Name:    "zettlr",
				Usage:   "Write references as [label]([[id]])",
				Sources: cli.EnvVars("COSMIFY_ZETTLR"),
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Log every per-note decision",
				Sources: cli.EnvVars("COSMIFY_VERBOSE"),
			},
			&cli.BoolFlag{
				Name:    "reformat-properties",
				Aliases: []string{"r"},
				Usage:   "Normalize header keys and values",
				Sources: cli.EnvVars("COSMIFY_REFORMAT_PROPERTIES"),
			},
			&cli.BoolFlag{
				Name:    "folder2type",
				Aliases: []string{"f2t"},
				Usage:   "Use each note's source folder as its type",
				Sources: cli.EnvVars("COSMIFY_FOLDER2TYPE"),
			},
			&cli.StringFlag{
				Name:    "index",
				Usage:   "Record converted notes in this SQLite database",
				Sources: cli.EnvVars("COSMIFY_INDEX"),
			},
			&cli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "Convert again whenever the vault changes",
				Sources: cli.EnvVars("COSMIFY_WATCH"),
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
