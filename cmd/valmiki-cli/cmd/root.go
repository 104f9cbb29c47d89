package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"valmiki-backend/lib/configutil"
	"valmiki-backend/lib/scrapers/valmiki"
	"valmiki-backend/lib/sqliteutil"
	"valmiki-backend/lib/telemetry"
	"valmiki-backend/services/corpus"
	"valmiki-backend/services/corpus/db"

	"github.com/spf13/cobra"
)

var (
	configPath string
	dbOverride string
	workers    int
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "valmiki-cli",
	Short: "valmiki-cli builds and inspects the Valmiki Ramayana sarga cache.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.json5", "Path to the configuration file.")
	rootCmd.PersistentFlags().StringVar(&dbOverride, "db", "", "Path to the sqlite database, overrides the config.")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 8, "Parallel workers for batch commands.")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging.")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(showCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type appConfig struct {
	Database string `json:"database"`
	Language string `json:"language"`
	BaseUrl  string `json:"base_url"`
}

func setupService(ctx context.Context) (corpus.Service, func(), error) {
	cfg, err := configutil.ReadConfig[appConfig](configPath)
	if err != nil && !os.IsNotExist(err) {
		return corpus.Service{}, nil, err
	}
	if cfg.Database == "" {
		cfg.Database = "data/valmiki.db"
	}
	if cfg.Language == "" {
		cfg.Language = string(valmiki.LanguageTelugu)
	}
	if dbOverride != "" {
		cfg.Database = dbOverride
	}

	tel, telErr := telemetry.SetupFromEnv(ctx, "valmiki-cli")
	if telErr != nil && !os.IsNotExist(telErr) {
		return corpus.Service{}, nil, telErr
	}
	if telErr == nil {
		telemetry.InstrumentPerfStats(ctx)
	}

	if !strings.Contains(cfg.Database, "://") {
		err = os.MkdirAll(filepath.Dir(cfg.Database), 0755)
		if err != nil {
			return corpus.Service{}, nil, err
		}
	}
	database, err := sqliteutil.OpenDB(db.Schema, cfg.Database)
	if err != nil {
		return corpus.Service{}, nil, err
	}

	client := valmiki.NewClient(valmiki.ClientOptions{BaseUrl: cfg.BaseUrl})
	service := corpus.NewService(database, client, corpus.ServiceOptions{
		Language: valmiki.Language(cfg.Language),
	})

	cleanup := func() {
		database.Close()
		if telErr == nil {
			err := tel.Shutdown(context.Background())
			if err != nil {
				slog.Warn("failed to shut down telemetry", "err", err)
			}
		}
	}
	return service, cleanup, nil
}
