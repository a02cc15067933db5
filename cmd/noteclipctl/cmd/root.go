package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	notionadapter "github.com/ericfisherdev/noteclip/internal/adapter/driven/notion"
	sqliteadapter "github.com/ericfisherdev/noteclip/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/noteclip/internal/application"
	"github.com/ericfisherdev/noteclip/internal/config"
	"github.com/ericfisherdev/noteclip/internal/domain/model"
	"github.com/ericfisherdev/noteclip/internal/domain/port/driven"
)

var (
	dbPath string

	db            *sqliteadapter.DB
	settingsStore driven.SettingsStore
	discovery     *application.DiscoveryService
	saver         *application.SaveService
)

var rootCmd = &cobra.Command{
	Use:   "noteclipctl",
	Short: "Save pages and video timestamps into a Notion database",
	Long: `noteclipctl is the terminal companion to the noteclip server.

It saves a page (title + URL) as a row in a configured Notion database,
or appends a playback timestamp to an existing row, reconciling against
the database's schema at write time.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if dbPath == "" {
			dbPath = cfg.DBPath
		}

		db, err = sqliteadapter.NewDB(dbPath)
		if err != nil {
			return err
		}
		if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
			return err
		}

		cacheStore := sqliteadapter.NewCacheRepo(db)
		settingsStore = sqliteadapter.NewSettingsRepo(db)
		credentialStore := sqliteadapter.NewCredentialRepo(db, cfg.SecretKey)

		apiKey := cfg.NotionAPIKey
		if stored, err := credentialStore.Get(cmd.Context(), "notion_api_key"); err == nil && stored != "" {
			apiKey = stored
		}

		var client driven.NotionClient
		if apiKey != "" {
			client = notionadapter.NewClient(apiKey)
		}
		provider := application.NewClientProvider(client, model.Fingerprint(apiKey))

		discovery = application.NewDiscoveryService(provider, cacheStore)
		saver = application.NewSaveService(provider, settingsStore)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if db != nil {
			return db.Close()
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to the noteclip database (default NOTECLIP_DB_PATH or noteclip.db)")
}
