// Package session holds the per-user dashboard state and the event handlers
// that mutate it. Each user action maps to one handler call reading the
// current session and returning a view; there is no implicit whole-page
// recomputation.
package session

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/devanshm/stockdash/auth"
	"github.com/devanshm/stockdash/journal"
	"github.com/devanshm/stockdash/ledger"
	"github.com/devanshm/stockdash/market"
	"github.com/devanshm/stockdash/sentiment"
)

var (
	// ErrInvalidCredentials is returned by Manager.Open on a failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNoTicker is returned by handlers that need a submitted ticker.
	ErrNoTicker = errors.New("no ticker selected")
	// ErrQuoteUnavailable is returned when the quote source has no data for
	// the current symbol and range. Dependent computations are skipped;
	// session state is left intact.
	ErrQuoteUnavailable = errors.New("no quote data available")
)

// QuoteSource supplies historical close-price series.
type QuoteSource interface {
	GetChart(ctx context.Context, symbol string, rng market.Range) (market.Series, error)
	GetWindow(ctx context.Context, symbol, period, interval string) (market.Series, error)
	HasData(ctx context.Context, symbol string) (bool, error)
}

// NewsSource supplies recent headlines for a symbol.
type NewsSource interface {
	GetHeadlines(ctx context.Context, symbol string) ([]string, error)
}

// Comparison charts always use a fixed five-day hourly window, regardless
// of the range selected for the main chart.
const (
	comparePeriod   = "5d"
	compareInterval = "1h"
)

// Params configures a Manager.
type Params struct {
	Quotes          QuoteSource
	News            NewsSource
	Journal         journal.Journal
	Auth            auth.Authenticator
	Logger          *zap.Logger
	StartingBalance float64
	DefaultRange    market.Range
}

// Manager opens sessions after authentication and wires their collaborators.
type Manager struct {
	quotes       QuoteSource
	news         NewsSource
	analyzer     *sentiment.Analyzer
	journal      journal.Journal
	auth         auth.Authenticator
	log          *zap.Logger
	startBalance float64
	defaultRange market.Range
}

// NewManager creates a session manager. Nil optional collaborators fall
// back to no-ops so callers only wire what they use.
func NewManager(p Params) *Manager {
	if p.Journal == nil {
		p.Journal = journal.Nop{}
	}
	if p.Auth == nil {
		p.Auth = auth.Open{}
	}
	if p.Logger == nil {
		p.Logger = zap.NewNop()
	}
	if p.DefaultRange == "" {
		p.DefaultRange = market.Range1D
	}
	return &Manager{
		quotes:       p.Quotes,
		news:         p.News,
		analyzer:     sentiment.New(),
		journal:      p.Journal,
		auth:         p.Auth,
		log:          p.Logger,
		startBalance: p.StartingBalance,
		defaultRange: p.DefaultRange,
	}
}

// Open authenticates and creates a fresh session with the configured
// starting balance. Session state lives only in memory and is discarded
// when the session ends.
func (m *Manager) Open(username, password string) (*Session, error) {
	if !m.auth.Verify(username, password) {
		m.log.Warn("login rejected", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}

	m.log.Info("session opened",
		zap.String("username", username),
		zap.Float64("starting_balance", m.startBalance),
	)

	return &Session{
		mgr:    m,
		ledger: ledger.New(m.startBalance),
		rng:    m.defaultRange,
	}, nil
}

// Session is one user's dashboard state: the ledger, the selected symbol
// and range, and the cached headlines/sentiment for that symbol.
type Session struct {
	mgr *Manager

	mu        sync.Mutex
	symbol    string
	rng       market.Range
	lastQuote market.Quote
	haveQuote bool

	headlines []string
	results   []sentiment.Result

	ledger *ledger.Ledger
}

// Symbol returns the currently selected (resolved) ticker, or "".
func (s *Session) Symbol() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.symbol
}

// Range returns the currently selected chart range.
func (s *Session) Range() market.Range {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng
}

// Ledger exposes the session's ledger for direct reads.
func (s *Session) Ledger() *ledger.Ledger { return s.ledger }

// LastQuote returns the most recently fetched quote, if any.
func (s *Session) LastQuote() (market.Quote, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastQuote, s.haveQuote
}
