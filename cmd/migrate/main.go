package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/gurkanbulca/doapi/internal/config"
	"github.com/gurkanbulca/doapi/internal/database"
	"github.com/gurkanbulca/doapi/internal/logger"
)

func main() {
	// Load .env file
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Enabled: true, Level: cfg.Log.Level, Format: "console"})

	m := &migrator{cfg: cfg, log: log}
	app := &cli.Command{
		Name:   "migrate",
		Usage:  "Provision the database and apply the schema",
		Writer: os.Stdout,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "database-url",
				Usage: "Database URL (defaults to DATABASE_URL)",
				Value: cfg.Database.URL,
			},
		},
		Commands: []*cli.Command{
			{Name: "create", Usage: "Create the database", Action: m.Create},
			{Name: "drop", Usage: "Drop the database if it exists", Action: m.Drop},
			{Name: "up", Usage: "Apply the schema", Action: m.Up},
			{Name: "reset", Usage: "Drop, create and apply the schema", Action: m.Reset},
			{Name: "status", Usage: "Report whether the database exists", Action: m.Status},
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("migrate failed")
	}
}

type migrator struct {
	cfg *config.Config
	log zerolog.Logger
}

func (m *migrator) descriptor(cmd *cli.Command) (database.Descriptor, error) {
	return database.ParseURL(cmd.String("database-url"))
}

func (m *migrator) provisioner(cmd *cli.Command) (database.Descriptor, database.Provisioner, error) {
	desc, err := m.descriptor(cmd)
	if err != nil {
		return database.Descriptor{}, nil, err
	}
	p, err := database.NewProvisioner(desc)
	if err != nil {
		return database.Descriptor{}, nil, err
	}
	return desc, p, nil
}

// Create creates the database; an existing one is left alone.
func (m *migrator) Create(ctx context.Context, cmd *cli.Command) error {
	desc, p, err := m.provisioner(cmd)
	if err != nil {
		return err
	}
	if err := p.Create(ctx); err != nil {
		if errors.Is(err, database.ErrDatabaseExists) {
			m.log.Warn().Str("database", desc.Name).Msg("database already exists")
			return nil
		}
		return err
	}
	m.log.Info().Str("database", desc.Name).Msg("database created")
	return nil
}

func (m *migrator) Drop(ctx context.Context, cmd *cli.Command) error {
	desc, p, err := m.provisioner(cmd)
	if err != nil {
		return err
	}
	if err := p.Drop(ctx); err != nil {
		return err
	}
	m.log.Info().Str("database", desc.Name).Msg("database dropped")
	return nil
}

func (m *migrator) Up(ctx context.Context, cmd *cli.Command) error {
	desc, err := m.descriptor(cmd)
	if err != nil {
		return err
	}
	db, err := database.Open(ctx, desc, m.cfg.Pool())
	if err != nil {
		return err
	}
	defer db.Close()

	m.log.Info().Str("database", desc.Redacted()).Msg("running database migrations")
	if err := database.Migrate(ctx, db, desc.Dialect); err != nil {
		return err
	}
	m.log.Info().Msg("migrations completed")
	return nil
}

func (m *migrator) Reset(ctx context.Context, cmd *cli.Command) error {
	if err := m.Drop(ctx, cmd); err != nil {
		return err
	}
	if err := m.Create(ctx, cmd); err != nil {
		return err
	}
	return m.Up(ctx, cmd)
}

func (m *migrator) Status(ctx context.Context, cmd *cli.Command) error {
	desc, p, err := m.provisioner(cmd)
	if err != nil {
		return err
	}
	exists, err := p.Exists(ctx)
	if err != nil {
		return err
	}
	state := "missing"
	if exists {
		state = "present"
	}
	_, err = fmt.Fprintf(cmd.Root().Writer, "%s: %s\n", desc.Redacted(), state)
	return err
}
