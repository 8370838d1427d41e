package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/alexanderramin/waypoint/internal/cli"
	"github.com/alexanderramin/waypoint/internal/config"
	"github.com/alexanderramin/waypoint/internal/db"
	"github.com/alexanderramin/waypoint/internal/intelligence"
	"github.com/alexanderramin/waypoint/internal/llm"
	"github.com/alexanderramin/waypoint/internal/repository"
	"github.com/alexanderramin/waypoint/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var database *sql.DB
	defer func() {
		if database != nil {
			database.Close()
		}
	}()

	app := &cli.App{}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}
	app.Setup = func(ctx context.Context, opts cli.GlobalOptions) error {
		cfg, err := config.Load(opts.ConfigPath)
		if err != nil {
			return err
		}
		if opts.DBPath != "" {
			cfg.DBPath = opts.DBPath
		}

		database, err = db.OpenDB(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		return wire(ctx, app, cfg, database)
	}

	return cli.NewRootCmd(app).ExecuteContext(context.Background())
}

// wire builds repositories and services from the resolved configuration.
func wire(ctx context.Context, app *cli.App, cfg *config.Config, database *sql.DB) error {
	plans := repository.NewSQLitePlanRepo(database)
	subgoals := repository.NewSQLiteSubgoalRepo(database)

	history, err := openQnaStore(cfg, database)
	if err != nil {
		return err
	}

	var observers []service.UseCaseObserver
	var llmObserver llm.Observer = llm.NoopObserver{}
	if cfg.LLM.LogCalls {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
		llmObserver = llm.NewLogObserver(os.Stderr)
	}

	var gateway intelligence.AnswerGateway = intelligence.UnavailableGateway{}
	if cfg.LLM.Enabled {
		client, err := llm.NewClient(ctx, cfg.LLM, llmObserver)
		if err != nil {
			return fmt.Errorf("configuring llm: %w", err)
		}
		gateway = intelligence.NewLLMAnswerGateway(client)
		app.LLMAvailable = client.Available
	}

	app.Qna = service.NewQnaService(subgoals, history, gateway, observers...)
	app.Plans = service.NewPlanService(plans, subgoals)
	app.Import = service.NewImportService(db.NewSQLiteUnitOfWork(database), observers...)
	return nil
}

func openQnaStore(cfg *config.Config, database *sql.DB) (repository.QnaRepo, error) {
	switch cfg.QnaStore {
	case config.StoreJSON:
		store, err := repository.NewJSONQnaRepo(cfg.QnaFile)
		if err != nil {
			return nil, fmt.Errorf("opening qna history file: %w", err)
		}
		return store, nil
	case config.StoreMemory:
		return repository.NewMemoryQnaRepo(), nil
	default:
		return repository.NewSQLiteQnaRepo(database), nil
	}
}
