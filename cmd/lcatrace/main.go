package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"lcatrace/internal/adapters/editor"
	"lcatrace/internal/adapters/lci"
	"lcatrace/internal/adapters/scorecache"
	"lcatrace/internal/adapters/sqlite"
	"lcatrace/internal/adapters/tui"
	"lcatrace/internal/application/commands"
	"lcatrace/internal/config"
	"lcatrace/internal/domain"
)

func main() {
	cfgFlag := flag.String("config", "", "config file (default ~/"+config.DefaultConfigFile+")")
	dbFlag := flag.String("db", "", "path to the inventory database")
	flag.Parse()

	if err := run(*cfgFlag, *dbFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfgFile, dbPath string) error {
	v := config.New()
	if dbPath != "" {
		v.Set("db", dbPath)
	}
	settings, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}

	// Initialize adapters
	store := sqlite.NewStore()
	if err := store.Open(settings.DB); err != nil {
		return err
	}
	defer store.Close()

	methods, err := commands.NewListMethodsCommand(store).Execute(context.Background())
	if err != nil {
		return err
	}

	cache := scorecache.New(settings.CacheTTL)
	opts := tui.Options{
		SupplyChain: commands.SupplyChainOptions{
			Amount:   settings.SupplyChain.Amount,
			MaxLevel: settings.SupplyChain.MaxLevel,
			Cutoff:   settings.SupplyChain.Cutoff,
			Indent:   settings.Indent,
		},
		Recursive: commands.RecursiveOptions{
			Amount:     settings.Recursive.Amount,
			MaxLevel:   settings.Recursive.MaxLevel,
			Cutoff:     settings.Recursive.Cutoff,
			Indent:     settings.Indent,
			LabelWidth: settings.Recursive.LabelWidth,
		},
		Cache: cache,
	}

	// Create and run TUI app
	scorer := scorecache.NewProvider(lci.NewSolver(store), cache)
	app := tui.NewApp(store, scorer, methods, opts, editor.NewOpener())
	// A configured method opens reports in score mode
	if settings.Method != "" {
		app.Report().SetMethod(domain.Method(settings.Method))
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
