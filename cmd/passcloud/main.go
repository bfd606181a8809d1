// Copyright 2025 The PassCloud Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the passcloud command: frequency analysis of leaked or
collected password lists.

PassCloud reads a plaintext list (one password per line), builds a
deduplicated frequency table, and derives four views from it: a word cloud
list, partial-match phrases around common stems, a statistics summary, and a
length × frequency heatmap. It is an analysis tool for defenders and auditors;
it does not estimate strength or generate guesses.

# Usage

Print every view of a list:

	passcloud rockyou.txt

Only the heatmap, for a dark terminal:

	passcloud -view heatmap -dark rockyou.txt

Markdown, JSON or YAML instead of styled text:

	passcloud -format markdown -file leaked.txt
	passcloud -format json -view stats leaked.txt > stats.json

Read from stdin:

	cat list.txt | passcloud -

Save the frequency table once and reuse it later:

	passcloud -save rockyou.pcs rockyou.txt
	passcloud -load rockyou.pcs -view partial

# Interactive Mode

-c opens a prompt over the loaded list. Commands print single views
(stats, heatmap, partial, cloud), "stem on|off" switches stem mode for the
cloud, "load <path>" swaps the list, and any other input lists passwords
starting with it.

	passcloud -c rockyou.txt
	> pass
	 1. password          (count:  59,462)
	 2. password1         (count:  23,807)

# Server Mode

-serve answers msgpack requests on stdin and writes msgpack responses to
stdout. Logs stay on stderr.

	{"id": "1", "action": "load", "path": "rockyou.txt"}
	{"id": "2", "action": "heatmap"}

See package server for the full protocol.

# Configuration

Defaults are read from [UserConfigDir]/passcloud/config.toml, created on first
run. A different file can be passed with -config. Flags given on the command
line override the file:

	[analysis]
	partial_limit = 200
	max_affix_length = 8
	stems_file = ""

	[cloud]
	max_words = 150
	stem_mode = false

	[render]
	dark_mode = false
	bar_width = 30
	format = "text"

	[server]
	max_phrases = 200
	max_cloud_words = 500

	[cli]
	min_prefix = 1
	max_prefix = 32
	lookup_limit = 20

# Stems

Partial matching looks for 61 built-in stems (pass, admin, 123, love, dragon
...). -stems replaces them with a text file (one stem per line, # comments) or
a binary .bin stem dictionary.

# Command Line Flags

	-file string
	    Password list to analyze ("-" for stdin); a positional argument works too
	-load string
	    Analyze a saved .pcs snapshot instead of a text list
	-save string
	    Write the frequency table to a .pcs snapshot
	-view string
	    cloud, partial, stats, heatmap or all (default "all")
	-format string
	    text, markdown, json or yaml
	-dark
	    Use the dark palette
	-stem
	    Merge cloud words by stem
	-limit int
	    Maximum number of cloud words
	-stems string
	    Alternate stem dictionary
	-config string
	    Config file path
	-reset-config
	    Rewrite the default config file with default values
	-c  Interactive prompt
	-serve
	    msgpack IPC server on stdin/stdout
	-d  Debug logging
	-version
	    Show the version
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/passcloud/internal/cli"
	"github.com/bastiangx/passcloud/internal/logger"
	"github.com/bastiangx/passcloud/internal/utils"
	"github.com/bastiangx/passcloud/pkg/analysis"
	"github.com/bastiangx/passcloud/pkg/cloud"
	"github.com/bastiangx/passcloud/pkg/config"
	"github.com/bastiangx/passcloud/pkg/corpus"
	"github.com/bastiangx/passcloud/pkg/dictionary"
	"github.com/bastiangx/passcloud/pkg/partial"
	"github.com/bastiangx/passcloud/pkg/render"
	"github.com/bastiangx/passcloud/pkg/server"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0"
	gh      = "https://github.com/bastiangx/passcloud"
)

var views = []string{"all", "cloud", "partial", "stats", "heatmap"}

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler(cancel context.CancelFunc) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		cancel()
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires flags, config and the analyzer, then hands off to one mode.
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigHandler(cancel)

	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	configPath := flag.String("config", "", "Path to a config.toml")
	resetConfig := flag.Bool("reset-config", false, "Rewrite the default config.toml with default values")
	inputFile := flag.String("file", "", "Password list to analyze (\"-\" for stdin)")
	view := flag.String("view", "all", "View to print: cloud, partial, stats, heatmap or all")
	stemMode := flag.Bool("stem", false, "Merge cloud words by stem")
	darkMode := flag.Bool("dark", false, "Use the dark palette")
	format := flag.String("format", "", "Output format: text, markdown, json or yaml")
	stemsFile := flag.String("stems", "", "Alternate stem dictionary (.txt or .bin)")
	limit := flag.Int("limit", 0, "Maximum number of cloud words")
	savePath := flag.String("save", "", "Write the frequency table to a .pcs snapshot")
	loadPath := flag.String("load", "", "Analyze a .pcs snapshot")
	cliMode := flag.Bool("c", false, "Run the interactive prompt")
	serveMode := flag.Bool("serve", false, "Run the msgpack IPC server on stdin/stdout")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger.Setup(*debugMode)

	if *resetConfig {
		path, err := config.RebuildConfigFile()
		if err != nil {
			log.Fatalf("Failed to rebuild config: %v", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote default config to %s\n", path)
		os.Exit(0)
	}

	cfg, usedConfig, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config: %s", config.GetActiveConfigPath(usedConfig))

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["stem"] {
		cfg.Cloud.StemMode = *stemMode
	}
	if set["dark"] {
		cfg.Render.DarkMode = *darkMode
	}
	if set["limit"] {
		cfg.Cloud.MaxWords = *limit
	}
	if *format != "" {
		cfg.Render.Format = *format
	}
	if *stemsFile != "" {
		cfg.Analysis.StemsFile = *stemsFile
	}
	if !config.ValidFormat(cfg.Render.Format) {
		log.Fatalf("Unknown format %q (want one of %v)", cfg.Render.Format, config.Formats)
	}
	if !validView(*view) {
		log.Fatalf("Unknown view %q (want one of %v)", *view, views)
	}

	opts := analysis.Options{
		Stems: dictionary.Default(),
		Partial: partial.Options{
			Limit:          cfg.Analysis.PartialLimit,
			MaxAffixLength: cfg.Analysis.MaxAffixLength,
		},
	}
	if cfg.Analysis.StemsFile != "" {
		stems, err := dictionary.LoadStems(cfg.Analysis.StemsFile)
		if err != nil {
			log.Fatalf("Failed to load stems: %v", err)
		}
		log.Debugf("Loaded %d stems from %s", stems.Len(), cfg.Analysis.StemsFile)
		opts.Stems = stems
	}
	analyzer := analysis.New(opts)

	source := *inputFile
	if source == "" && flag.NArg() > 0 {
		source = flag.Arg(0)
	}
	if *loadPath != "" {
		source = *loadPath
	}

	if source != "" {
		if err := loadInput(analyzer, source); err != nil {
			log.Fatalf("Failed to load %s: %v", source, err)
		}
	}

	if *savePath != "" {
		c, err := analyzer.Corpus()
		if err != nil {
			log.Fatalf("Nothing to save: %v", err)
		}
		if err := dictionary.SaveCorpus(*savePath, c); err != nil {
			log.Fatalf("Failed to save snapshot: %v", err)
		}
		fmt.Fprintf(os.Stderr, "Saved %d entries to %s\n", c.Unique(), *savePath)
	}

	switch {
	case *serveMode:
		log.Debug("spawning IPC")
		srv := server.NewServer(analyzer, cfg.Server)
		if err := srv.Start(); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case *cliMode:
		handler := cli.NewInputHandler(analyzer, cfg, os.Stdin, os.Stdout)
		if err := handler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
	case source == "":
		fmt.Fprintln(os.Stderr, "no password list given; pass a file, '-' for stdin, or use -c / -serve")
		flag.Usage()
		os.Exit(2)
	case *savePath != "" && !set["view"]:
		// saving alone is a complete run
	default:
		if err := printReport(ctx, analyzer, cfg, *view); err != nil {
			log.Fatalf("%v", err)
		}
	}
}

// loadInput resolves a user-supplied path and loads it into the analyzer.
func loadInput(analyzer *analysis.Analyzer, source string) error {
	path := source
	if resolver, err := utils.NewPathResolver(); err == nil {
		if resolved, err := resolver.ResolveInputPath(source); err == nil {
			path = resolved
		}
	}
	info, err := analyzer.LoadFile(path)
	if err != nil {
		return err
	}
	log.Debug("Loaded list", "source", info.Source, "total", info.TotalPasswords, "unique", info.UniquePasswords)
	return nil
}

func printReport(ctx context.Context, analyzer *analysis.Analyzer, cfg *config.Config, view string) error {
	cloudOpts := cloud.Options{
		StemMode: cfg.Cloud.StemMode,
		Limit:    cfg.Cloud.MaxWords,
		Dark:     cfg.Render.DarkMode,
	}

	report, err := buildReport(ctx, analyzer, view, cloudOpts)
	if errors.Is(err, corpus.ErrNoData) {
		return errors.New("the password list is empty")
	}
	if err != nil {
		return err
	}

	theme := render.NewTheme(cfg.Render.DarkMode, cfg.Render.BarWidth)
	return render.Write(os.Stdout, cfg.Render.Format, report, theme)
}

// buildReport computes only the sections the view asks for.
func buildReport(ctx context.Context, analyzer *analysis.Analyzer, view string, cloudOpts cloud.Options) (*analysis.Report, error) {
	if view == "all" {
		return analyzer.Report(ctx, cloudOpts)
	}

	info, err := analyzer.Info()
	if err != nil {
		return nil, err
	}
	r := &analysis.Report{Info: info}
	switch view {
	case "stats":
		r.Stats, err = analyzer.Stats()
	case "heatmap":
		r.Heatmap, err = analyzer.Heatmap()
	case "partial":
		r.Partial, err = analyzer.Partial()
	case "cloud":
		r.Cloud, err = analyzer.Cloud(cloudOpts)
	}
	return r, err
}

func validView(view string) bool {
	for _, v := range views {
		if v == view {
			return true
		}
	}
	return false
}

func printVersion() {
	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})

	banner := logger.Banner(os.Stderr, styles)
	banner.Print("")
	banner.Print("[ PassCloud ] Frequency analysis for password lists")
	banner.Print("", "version", Version)
	banner.Print("")
	banner.Print("use -h or --help to see available options")
	banner.Print("Github Repo", "gh", gh)
}
