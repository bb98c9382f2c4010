package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/devanshm/stockdash/auth"
	"github.com/devanshm/stockdash/config"
	"github.com/devanshm/stockdash/internal/logging"
	"github.com/devanshm/stockdash/journal"
	"github.com/devanshm/stockdash/market"
	"github.com/devanshm/stockdash/news"
	"github.com/devanshm/stockdash/server"
	"github.com/devanshm/stockdash/session"
	"github.com/devanshm/stockdash/yahoo"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard HTTP API",
	Long: `Start the dashboard server: charts, news sentiment, paper trading and
decision evaluation over a JSON API, plus a websocket quote stream.

Example:
  stockdash serve --config dashboard.yaml`,
	RunE: runServe,
}

var (
	serveConfigPath string
	serveUsername   string
	servePassword   string
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveConfigPath, "config", "f", "", "path to config file (YAML or JSON)")
	serveCmd.Flags().StringVar(&serveUsername, "username", "", "dashboard login username")
	serveCmd.Flags().StringVar(&servePassword, "password", "", "dashboard login password")
}

func loadConfig() (*config.Config, error) {
	if serveConfigPath == "" {
		return config.Default(), nil
	}
	return config.LoadFromFile(serveConfigPath)
}

func buildQuotes(cfg *config.Config) (*yahoo.Client, error) {
	var opts []yahoo.Option
	if cfg.Quote.BaseURL != "" {
		opts = append(opts, yahoo.WithBaseURL(cfg.Quote.BaseURL))
	}
	if timeout, err := cfg.Quote.ParseTimeout(); err != nil {
		return nil, err
	} else if timeout > 0 {
		opts = append(opts, yahoo.WithTimeout(timeout))
	}
	return yahoo.NewClient(opts...), nil
}

func buildNews(cfg *config.Config) (*news.Client, error) {
	keyEnv := cfg.News.APIKeyEnv
	if keyEnv == "" {
		keyEnv = "NEWS_API_KEY"
	}
	key := os.Getenv(keyEnv)
	if key == "" {
		return nil, fmt.Errorf("news API key not set (export %s)", keyEnv)
	}

	var opts []news.Option
	if cfg.News.BaseURL != "" {
		opts = append(opts, news.WithBaseURL(cfg.News.BaseURL))
	}
	if cfg.News.PageSize > 0 {
		opts = append(opts, news.WithPageSize(cfg.News.PageSize))
	}
	return news.NewClient(key, opts...), nil
}

func buildJournal(cfg *config.Config) (journal.Journal, error) {
	switch cfg.Journal.Type {
	case "csv":
		return journal.NewCSV(cfg.Journal.TradesFile, cfg.Journal.BalancesFile)
	case "sqlite":
		return journal.NewSQLite(cfg.Journal.DBPath)
	default:
		return journal.Nop{}, nil
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer log.Sync()

	quotes, err := buildQuotes(cfg)
	if err != nil {
		return fmt.Errorf("quote client: %w", err)
	}

	headlines, err := buildNews(cfg)
	if err != nil {
		return fmt.Errorf("news client: %w", err)
	}

	j, err := buildJournal(cfg)
	if err != nil {
		return fmt.Errorf("create journal: %w", err)
	}
	defer j.Close()

	var authn auth.Authenticator = auth.Open{}
	if len(cfg.Auth.Users) > 0 {
		authn = auth.NewStatic(cfg.Auth.Users)
	}

	defaultRange := market.Range1D
	if cfg.Dashboard.DefaultRange != "" {
		defaultRange, err = market.ParseRange(cfg.Dashboard.DefaultRange)
		if err != nil {
			return fmt.Errorf("default range: %w", err)
		}
	}

	mgr := session.NewManager(session.Params{
		Quotes:          quotes,
		News:            headlines,
		Journal:         j,
		Auth:            authn,
		Logger:          log,
		StartingBalance: cfg.Account.StartingBalance,
		DefaultRange:    defaultRange,
	})

	sess, err := mgr.Open(serveUsername, servePassword)
	if err != nil {
		return fmt.Errorf("open session: %w", err)
	}

	refresh, err := cfg.Dashboard.ParseRefreshInterval()
	if err != nil {
		return fmt.Errorf("refresh interval: %w", err)
	}

	srv := server.New(server.Params{
		Session: sess,
		Quotes:  quotes,
		News:    headlines,
		Logger:  log,
		Refresh: refresh,
	})

	log.Info("starting dashboard",
		zap.String("addr", cfg.Server.Addr),
		zap.Float64("starting_balance", cfg.Account.StartingBalance),
		zap.String("currency", cfg.Account.Currency),
	)
	return srv.Serve(cfg.Server.Addr)
}
