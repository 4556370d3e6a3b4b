package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jessevdk/go-flags"
	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/mayagamaleldin/graduationproject/config"
	"github.com/mayagamaleldin/graduationproject/db"
	"github.com/mayagamaleldin/graduationproject/handlers"
	"github.com/mayagamaleldin/graduationproject/logger"
	"github.com/mayagamaleldin/graduationproject/models"
	"github.com/mayagamaleldin/graduationproject/repository"
	"github.com/mayagamaleldin/graduationproject/scheduler"
	"github.com/mayagamaleldin/graduationproject/services"
)

type globalOptions struct {
	Config   string `short:"c" long:"config" description:"Path to a YAML config file (default: ./config.yaml)"`
	LogLevel string `long:"log-level" description:"Override log.level (debug, info, warn, error)"`
	Provider string `long:"provider" description:"Override llm.provider (gemini, openai, static)"`
}

var opts globalOptions

type analyzeCommand struct {
	Input  string `short:"i" long:"input" description:"JSON file of user records (overrides input.file)"`
	Output string `short:"o" long:"output" description:"Write the profiles as JSON to this file (overrides output.file)"`
	Offset int    `long:"offset" description:"Skip this many records"`
	Limit  int    `long:"limit" description:"Analyze at most this many records (0 = all)"`
	Print  bool   `short:"p" long:"print" description:"Print a report for every profile"`
	Save   bool   `long:"save" description:"Store the profiles in the configured database"`
}

type serveCommand struct{}

type migrateCommand struct{}

func main() {
	parser := flags.NewParser(&opts, flags.Default)
	parser.LongDescription = "Builds user profiles from social posts with a generative model and keyword fallbacks."

	if _, err := parser.AddCommand("analyze", "Analyze a file of user records",
		"Runs the profile pipeline over every record of the input file.", &analyzeCommand{}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if _, err := parser.AddCommand("serve", "Start the HTTP API",
		"Serves stored profiles and on-demand analysis; runs the daily batch when the scheduler is enabled.", &serveCommand{}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if _, err := parser.AddCommand("migrate", "Apply database migrations",
		"Creates or upgrades the user_profiles table in the configured database.", &migrateCommand{}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		if !errors.As(err, &flagsErr) {
			logger.Error("command failed", "error", err)
		}
		os.Exit(1)
	}
}

// setup loads configuration, applies the global overrides and starts logging.
func setup() (*config.Config, error) {
	var cfg *config.Config
	if opts.Config != "" {
		loaded, err := config.LoadFile(opts.Config)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", opts.Config, err)
		}
		cfg = loaded
	} else {
		cfg = config.Load()
	}

	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	if opts.Provider != "" {
		cfg.LLM.Provider = opts.Provider
	}

	if err := logger.Init(cfg); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	logger.Info("Logger initialized", "level", cfg.Log.Level, "format", cfg.Log.Format, "output", cfg.Log.Output)
	return cfg, nil
}

// openStore connects to the configured database and migrates it when
// database.auto_migrate is set.
func openStore(ctx context.Context, cfg *config.Config) (*sqlx.DB, *repository.ProfileStore, error) {
	conn, err := db.OpenWithConfig(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	if cfg.DB.AutoMigrate {
		dialect, _ := db.ParseDialect(cfg.DB.Driver)
		if err := db.Migrate(ctx, conn, dialect); err != nil {
			conn.Close()
			return nil, nil, err
		}
	}
	return conn, repository.NewProfileStore(conn), nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func (c *analyzeCommand) Execute(args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}
	ctx, stop := signalContext()
	defer stop()

	input := firstNonEmpty(c.Input, cfg.Input.File)
	if input == "" {
		return errors.New("no input file (use --input or input.file)")
	}

	users, err := repository.LoadUsersFromFile(input, repository.LoadOptions{StripHTML: cfg.Input.StripHTML})
	if err != nil {
		logger.Error("failed to load users", "file", input, "error", err)
	}
	users = window(users, firstPositive(c.Offset, cfg.Batch.Offset), firstPositive(c.Limit, cfg.Batch.Limit))
	logger.Info("Users loaded", "file", input, "count", len(users))

	gen, err := services.NewGenerator(cfg)
	if err != nil {
		return err
	}
	analyzer := services.NewProfileAnalyzer(gen, services.CallTimeout(cfg))

	var store services.ProfileStore
	if c.Save || cfg.DB.Enabled {
		conn, ps, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer conn.Close()
		store = ps
	}

	svc := services.NewProfileService(analyzer, store)
	res, runErr := svc.RunBatch(ctx, users, services.BatchOptions{
		Cooldown:     time.Duration(cfg.Batch.CooldownMS) * time.Millisecond,
		SkipExisting: cfg.Batch.SkipExisting,
	})

	if c.Print || cfg.Output.Print {
		services.PrintAllProfiles(os.Stdout, res.Profiles)
	}
	if output := firstNonEmpty(c.Output, cfg.Output.File); output != "" {
		if err := services.SaveResults(output, res.Profiles); err != nil {
			return err
		}
		logger.Info("Results saved", "file", output, "profiles", len(res.Profiles))
	}
	return runErr
}

func (c *serveCommand) Execute(args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}
	ctx, stop := signalContext()
	defer stop()

	gen, err := services.NewGenerator(cfg)
	if err != nil {
		logger.Warn("model provider unavailable, serving with keyword fallbacks only", "provider", cfg.LLM.Provider, "error", err)
		gen = services.NewStaticGenerator(nil)
	}
	analyzer := services.NewProfileAnalyzer(gen, services.CallTimeout(cfg))

	var store services.ProfileStore
	if cfg.DB.Enabled {
		conn, ps, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer conn.Close()
		store = ps
	} else {
		logger.Warn("database disabled, stored-profile endpoints will answer 503")
	}
	svc := services.NewProfileService(analyzer, store)

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	handlers.RegisterRoutes(r, svc)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  seconds(cfg.Timeouts.RequestSec, 15),
		WriteTimeout: seconds(cfg.Timeouts.ResponseSec, 5*60),
		IdleTimeout:  seconds(cfg.Timeouts.IdleSec, 60),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server starting", "address", srv.Addr)
		logger.Info("Swagger UI available", "path", "/swagger/index.html")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if cfg.Scheduler.Enabled {
		sched := scheduler.NewScheduler(cfg, func(ctx context.Context) error {
			return runScheduledBatch(ctx, cfg, svc)
		})
		g.Go(func() error { return sched.Run(gctx) })
	}

	return g.Wait()
}

// runScheduledBatch re-analyzes the configured input file.
func runScheduledBatch(ctx context.Context, cfg *config.Config, svc *services.ProfileService) error {
	if cfg.Input.File == "" {
		return errors.New("scheduler enabled but input.file is empty")
	}
	users, err := repository.LoadUsersFromFile(cfg.Input.File, repository.LoadOptions{StripHTML: cfg.Input.StripHTML})
	if err != nil {
		return err
	}
	users = window(users, cfg.Batch.Offset, cfg.Batch.Limit)

	res, err := svc.RunBatch(ctx, users, services.BatchOptions{
		Cooldown:     time.Duration(cfg.Batch.CooldownMS) * time.Millisecond,
		SkipExisting: cfg.Batch.SkipExisting,
	})
	if err != nil {
		return err
	}
	if cfg.Output.File != "" {
		return services.SaveResults(cfg.Output.File, res.Profiles)
	}
	return nil
}

func (c *migrateCommand) Execute(args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}
	ctx, stop := signalContext()
	defer stop()

	dialect, err := db.ParseDialect(cfg.DB.Driver)
	if err != nil {
		return err
	}
	conn, err := db.OpenWithConfig(ctx, cfg)
	if err != nil {
		return err
	}
	defer conn.Close()
	return db.Migrate(ctx, conn, dialect)
}

// window applies offset and limit (0 = no limit) to records.
func window(records []models.RawUserRecord, offset, limit int) []models.RawUserRecord {
	end := len(records)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return lo.Slice(records, offset, end)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}

func seconds(v, def int) time.Duration {
	if v <= 0 {
		v = def
	}
	return time.Duration(v) * time.Second
}
