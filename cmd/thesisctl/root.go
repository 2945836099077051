package main

import (
	"context"
	"fmt"
	"io"
	"log"

	"bu-ethesis/internal/adapters/persistence/models"
	"bu-ethesis/internal/adapters/persistence/repositories"
	"bu-ethesis/internal/adapters/storage"
	"bu-ethesis/internal/config"
	"bu-ethesis/internal/pkg/logging"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var verbose bool

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "thesisctl",
		Short: "Administrative tooling for the E-Thesis portal",
		Long: `thesisctl works directly against the portal's database and attachment store.
It reads the same .env file and environment variables as the server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if !verbose {
				log.SetOutput(io.Discard)
			}
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(newSetPasswordCmd())
	root.AddCommand(newReconcileCmd())
	return root
}

// env is what every subcommand works with
type env struct {
	cfg        *config.Config
	db         *gorm.DB
	store      storage.Store
	log        logging.Logger
	userRepo   repositories.UserRepository
	thesisRepo repositories.ThesisRepository
}

func openEnv(ctx context.Context) (*env, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() { _ = config.CloseDatabase(db) }

	if err := models.AutoMigrate(db); err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}

	store, err := config.OpenAttachmentStore(ctx, cfg)
	if err != nil {
		closeDB()
		return nil, nil, err
	}

	appLog := logging.Discard()
	if verbose {
		appLog = logging.New(cfg.AppMode)
	}

	return &env{
		cfg:        cfg,
		db:         db,
		store:      store,
		log:        appLog,
		userRepo:   repositories.NewUserRepository(db),
		thesisRepo: repositories.NewThesisRepository(db),
	}, closeDB, nil
}
