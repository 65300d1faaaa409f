// cmd/ezformula/main.go
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nhath/ezformula/internal/api"
	"github.com/nhath/ezformula/internal/config"
	"github.com/nhath/ezformula/internal/formula"
	"github.com/nhath/ezformula/internal/logger"
	"github.com/nhath/ezformula/internal/ui"
)

func main() {
	// Parse flags
	debug := flag.Bool("debug", false, "Enable debug logging to debug.log")
	module := flag.String("module", "", "Module being edited (overrides config and EZFORMULA_MODULE)")
	apiURL := flag.String("api", "", "Platform API base URL (overrides config and EZFORMULA_API_URL)")
	draft := flag.String("draft", "", "JSON file with the unsaved sections of the module being edited")
	data := flag.String("data", "", "JSON file with sample bindings for check and evaluate")
	setToken := flag.Bool("set-token", false, "Read an API token from stdin and store it in the keyring")
	clearToken := flag.Bool("clear-token", false, "Remove the stored API token from the keyring")
	flag.Parse()

	// Setup logging if debug enabled
	l := logger.Discard()
	if *debug {
		fl, closer, err := logger.OpenFile("debug.log", "ezformula")
		if err != nil {
			fmt.Printf("fatal: could not open debug log: %v", err)
			os.Exit(1)
		}
		defer closer.Close()
		l = fl
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *apiURL != "" {
		cfg.APIURL = *apiURL
	}
	if *module != "" {
		cfg.CurrentModule = *module
	}

	if *setToken {
		if err := storeToken(cfg.APIURL, os.Stdin); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to store token: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Token stored for %s\n", cfg.APIURL)
		return
	}

	if *clearToken {
		store, err := config.NewTokenStore()
		if err == nil {
			err = store.DeleteToken(cfg.APIURL)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to remove token: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Token removed for %s\n", cfg.APIURL)
		return
	}

	if cfg.Token == "" {
		if store, err := config.NewTokenStore(); err != nil {
			l.Warn("keyring unavailable", "err", err)
		} else if err := cfg.ResolveToken(store); err != nil {
			l.Debug("no stored token", "err", err)
		}
	}

	sections, err := loadSections(*draft)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read draft: %v\n", err)
		os.Exit(1)
	}
	sample, err := loadData(*data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read sample data: %v\n", err)
		os.Exit(1)
	}

	session := newSession(cfg, sections, l)

	// Initialize UI styles
	ui.InitStyles(cfg.Theme)

	model := ui.NewModel(ui.Options{
		Config:  cfg,
		Session: session,
		Formula: strings.Join(flag.Args(), " "),
		Data:    sample,
		Logger:  l,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithReportFocus())

	final, err := p.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
	if m, ok := final.(ui.Model); ok && m.Submitted() != "" {
		fmt.Println(m.Submitted())
	}
}

// newSession wires the API client, directory and fetcher from config
func newSession(cfg *config.Config, staged []api.Section, l *log.Logger) *formula.Session {
	client := api.NewClient(cfg.APIURL, cfg.Token,
		api.WithTimeout(cfg.RequestTimeout()),
		api.WithLogger(l.WithPrefix("api")),
	)

	static := make([]formula.ModuleRecord, len(cfg.StaticModules))
	for i, sm := range cfg.StaticModules {
		static[i] = formula.ModuleRecord{ID: sm.ID, Label: sm.Label, Icon: sm.Icon}
	}

	dir := formula.NewDirectory(client, formula.DirectoryOptions{
		Static:    static,
		Current:   formula.ModuleRecord{ID: cfg.CurrentModule, Label: cfg.CurrentLabel()},
		PageSize:  cfg.PageSize,
		CacheSize: cfg.FieldCacheSize,
		CacheTTL:  cfg.FieldCacheTTL(),
		Logger:    l.WithPrefix("directory"),
	})
	dir.Stage(staged)

	return formula.NewSession(formula.Options{
		Directory: dir,
		Fetcher:   formula.NewFetcher(client, cfg.SuggestionLimit, l.WithPrefix("fetcher")),
		Backend:   client,
		BlurDelay: cfg.BlurDelay(),
		Logger:    l.WithPrefix("session"),
	})
}

// storeToken reads one token line from r and saves it for apiURL
func storeToken(apiURL string, r io.Reader) error {
	token, err := readToken(r)
	if err != nil {
		return err
	}
	store, err := config.NewTokenStore()
	if err != nil {
		return err
	}
	return store.SetToken(apiURL, token)
}
