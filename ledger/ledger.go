// Package ledger owns the paper-trading cash balance and trade history.
//
// The ledger is the sole mutator of both: Buy and Sell are all-or-nothing
// and enforce the two session invariants: cash never goes negative, and
// net shares owned never go negative.
package ledger

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/devanshm/stockdash/internal/id"
)

var (
	// ErrInsufficientFunds is returned by Buy when cost exceeds cash.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrInsufficientShares is returned by Sell when quantity exceeds net shares owned.
	ErrInsufficientShares = errors.New("not enough shares to sell")
)

// Side is the direction of a trade.
type Side string

const (
	Buy  Side = "Buy"
	Sell Side = "Sell"
)

// Trade is a single executed paper trade. Immutable once recorded.
type Trade struct {
	ID       string
	Side     Side
	Quantity int64
	Price    float64
	Time     time.Time
}

// Ledger holds the cash balance and the append-only trade history for one
// session. Handlers run one at a time per reactive pass, but the HTTP server
// may drive several passes concurrently, so access is mutex-guarded.
type Ledger struct {
	mu     sync.Mutex
	cash   float64
	trades []Trade
}

// New creates a ledger with the given starting cash balance.
func New(startingCash float64) *Ledger {
	return &Ledger{cash: startingCash}
}

func validate(qty int64, price float64) error {
	if qty <= 0 {
		return fmt.Errorf("quantity must be positive, got %d", qty)
	}
	if price <= 0 {
		return fmt.Errorf("price must be positive, got %g", price)
	}
	return nil
}

// Buy debits qty*price from cash and appends a Buy record. A cost equal to
// the current balance is allowed; only cost > cash is rejected. On rejection
// no state changes.
func (l *Ledger) Buy(qty int64, price float64, ts time.Time) (Trade, error) {
	if err := validate(qty, price); err != nil {
		return Trade{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	cost := float64(qty) * price
	if cost > l.cash {
		return Trade{}, fmt.Errorf("buy %d @ %.2f costs %.2f with %.2f available: %w",
			qty, price, cost, l.cash, ErrInsufficientFunds)
	}

	t := Trade{
		ID:       id.New(),
		Side:     Buy,
		Quantity: qty,
		Price:    price,
		Time:     ts,
	}
	l.cash -= cost
	l.trades = append(l.trades, t)
	return t, nil
}

// Sell credits qty*price to cash and appends a Sell record. Selling more
// than the current net shares owned is rejected with no state change.
func (l *Ledger) Sell(qty int64, price float64, ts time.Time) (Trade, error) {
	if err := validate(qty, price); err != nil {
		return Trade{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if owned := l.netSharesLocked(); qty > owned {
		return Trade{}, fmt.Errorf("sell %d with %d owned: %w", qty, owned, ErrInsufficientShares)
	}

	t := Trade{
		ID:       id.New(),
		Side:     Sell,
		Quantity: qty,
		Price:    price,
		Time:     ts,
	}
	l.cash += float64(qty) * price
	l.trades = append(l.trades, t)
	return t, nil
}

// NetShares is cumulative Buy quantity minus cumulative Sell quantity.
func (l *Ledger) NetShares() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.netSharesLocked()
}

func (l *Ledger) netSharesLocked() int64 {
	var net int64
	for _, t := range l.trades {
		if t.Side == Buy {
			net += t.Quantity
		} else {
			net -= t.Quantity
		}
	}
	return net
}

// Cash returns the current cash balance.
func (l *Ledger) Cash() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cash
}

// Trades returns a copy of the trade history in insertion order.
func (l *Ledger) Trades() []Trade {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Trade, len(l.trades))
	copy(out, l.trades)
	return out
}

// Snapshot is a consistent point-in-time view of the ledger.
type Snapshot struct {
	Cash      float64
	NetShares int64
	Trades    []Trade
}

// Snapshot returns cash, net shares and the trade history captured under a
// single lock.
func (l *Ledger) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	trades := make([]Trade, len(l.trades))
	copy(trades, l.trades)
	return Snapshot{
		Cash:      l.cash,
		NetShares: l.netSharesLocked(),
		Trades:    trades,
	}
}
