package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ward/ward/internal/config"
	"github.com/ward/ward/internal/domain/clinician"
	"github.com/ward/ward/internal/domain/patient"
	"github.com/ward/ward/internal/domain/seed"
	"github.com/ward/ward/internal/domain/task"
	"github.com/ward/ward/internal/platform/db"
	"github.com/ward/ward/internal/platform/logging"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "ward-server",
		Short:        "Ward task board API server",
		SilenceUsage: true,
	}
	root.AddCommand(serveCmd())
	root.AddCommand(migrateCmd())
	root.AddCommand(seedCmd())
	return root
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	// migrate up
	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, pool, err := connect(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator, err := migratorFor(cmd, pool, cfg)
			if err != nil {
				return err
			}
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	addMigrateFlags(upCmd)
	cmd.AddCommand(upCmd)

	// migrate status
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, pool, err := connect(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator, err := migratorFor(cmd, pool, cfg)
			if err != nil {
				return err
			}
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}
			printStatus(cmd, statuses)
			return nil
		},
	}
	addMigrateFlags(statusCmd)
	cmd.AddCommand(statusCmd)

	return cmd
}

func addMigrateFlags(cmd *cobra.Command) {
	cmd.Flags().String("schema", "", "Target schema (defaults to DB_SCHEMA, then public)")
	cmd.Flags().String("dir", "", "Read migrations from this directory instead of the embedded set")
}

func migratorFor(cmd *cobra.Command, pool *pgxpool.Pool, cfg *config.Config) (*db.Migrator, error) {
	schema, _ := cmd.Flags().GetString("schema")
	if schema == "" {
		schema = cfg.DBSchema
	}
	dir, _ := cmd.Flags().GetString("dir")
	return db.NewMigrator(pool, migrationsFS(dir), schema)
}

func migrationsFS(dir string) fs.FS {
	if dir == "" {
		return db.EmbeddedMigrations()
	}
	return os.DirFS(dir)
}

func printStatus(cmd *cobra.Command, statuses []db.MigrationStatus) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
	fmt.Fprintln(out, "---------- ---------------------------------------- ---------- --------------------")
	for _, s := range statuses {
		status := "pending"
		appliedAt := ""
		if s.Applied {
			status = "applied"
			if s.AppliedAt != nil {
				appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
			}
		}
		fmt.Fprintf(out, "%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the demonstration data set into an empty store",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, pool, err := connect(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			logger := logging.New(cfg)
			res, err := newApp(pool, logger).loader.Load(ctx)
			if err != nil {
				return err
			}
			if !res.Seeded {
				fmt.Fprintln(cmd.OutOrStdout(), "Store already has users; nothing written.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d user(s), %d patient(s), %d task(s).\n",
				res.Users, res.Patients, res.Tasks)
			return nil
		},
	}
}

func connect(ctx context.Context) (*config.Config, *pgxpool.Pool, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	pool, err := db.NewPool(ctx, cfg.DBConfig())
	if err != nil {
		return nil, nil, err
	}
	return cfg, pool, nil
}

// app holds the services shared by the HTTP surface and the seed command.
type app struct {
	services
	loader *seed.Loader
}

func newApp(pool *pgxpool.Pool, logger zerolog.Logger) *app {
	tx := db.NewTransactor(pool)
	svc := services{
		users:    clinician.NewService(clinician.NewUserRepoPG(pool), tx),
		patients: patient.NewService(patient.NewPatientRepoPG(pool), tx),
		tasks:    task.NewService(task.NewTaskRepoPG(pool), tx),
	}
	loader := seed.NewLoader(svc.users, svc.patients, svc.tasks, tx, db.AdvisoryLock{Key: seed.LockKey}, logger)
	return &app{services: svc, loader: loader}
}

func runServer() error {
	// Config
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Logger
	logger := logging.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Database
	pool, err := db.NewPool(ctx, cfg.DBConfig())
	if err != nil {
		logger.Error().Err(err).Msg("failed to connect to database")
		return err
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	if cfg.AutoMigrate {
		migrator, err := db.NewMigrator(pool, db.EmbeddedMigrations(), cfg.DBSchema)
		if err != nil {
			return err
		}
		count, err := migrator.Up(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("migration failed")
			return err
		}
		logger.Info().Int("applied", count).Msg("migrations up to date")
	}

	a := newApp(pool, logger)
	if cfg.SeedOnStart {
		if _, err := a.loader.Load(ctx); err != nil {
			logger.Error().Err(err).Msg("seed failed")
			return err
		}
	}

	e := newRouter(cfg, logger, a.services, db.HealthHandler(pool))

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error().Err(err).Msg("server error")
			return err
		}
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown error")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}
