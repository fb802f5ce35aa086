// Package root contains the root command for the application
package root

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"lifequest/finance-engine/internal/config"
	"lifequest/finance-engine/internal/ledger"
	"lifequest/finance-engine/internal/monthkey"
	"lifequest/finance-engine/internal/progression"
	"lifequest/finance-engine/internal/report"
	"lifequest/finance-engine/internal/store"
)

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cfg is the loaded application configuration
	Cfg *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "lifequest-finance",
		Short: "Ledger, reconciliation and progression engine for the LifeQuest finance tracker.",
		Long: `lifequest-finance maintains a monthly ledger of transactions, reconciles
records stored under inconsistent month labels, and derives the XP/level
progression from cumulative savings.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				return err
			}
			Cfg = cfg
			Log = config.ConfigureLogging(cfg)

			// Propagate the configured logger to the engine packages
			store.SetLogger(Log)
			ledger.SetLogger(Log)
			progression.SetLogger(Log)
			report.SetLogger(Log)

			return nil
		},
	}

	// UserKey selects which user's finance document commands operate on
	UserKey string

	// Month selects the active month for ledger mutations
	Month string

	// DataDir overrides the configured store location
	DataDir string
)

// Init initializes the root command and all persistent flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&UserKey, "user", "u", "default", "User key of the finance document")
	Cmd.PersistentFlags().StringVarP(&Month, "month", "m", "", "Active month (defaults to the current calendar month)")
	Cmd.PersistentFlags().StringVarP(&DataDir, "data", "d", "", "Data directory override")
}

// OpenStore opens the configured store backend. The caller must close a
// sqlite-backed store via CloseStore.
func OpenStore() (store.Store, error) {
	switch Cfg.Store.Backend {
	case config.BackendSQLite:
		path := Cfg.Store.SQLitePath
		if DataDir != "" {
			path = DataDir + "/finance.db"
		}
		return store.NewSQLiteStore(path)
	case config.BackendYAML:
		dir := Cfg.Store.Directory
		if DataDir != "" {
			dir = DataDir
		}
		return store.NewYAMLStore(dir), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %s", Cfg.Store.Backend)
	}
}

// CloseStore releases backend resources when the backend holds any.
func CloseStore(st store.Store) {
	if closer, ok := st.(*store.SQLiteStore); ok {
		if err := closer.Close(); err != nil {
			Log.WithError(err).Warn("Failed to close store")
		}
	}
}

// NewLedger builds a ledger service for the selected user and month.
func NewLedger(st store.Store) *ledger.Service {
	opts := []ledger.Option{}
	if Month != "" {
		opts = append(opts, ledger.WithMonth(Month))
	}
	svc := ledger.NewService(st, UserKey, opts...)
	if Month != "" && !monthkey.IsCanonical(svc.Month()) {
		Log.WithField("month", svc.Month()).Warn("Selected month is not a canonical calendar month")
	}
	return svc
}
