// Package domain holds the DTOs mirrored from the exchange backend.
// They have no lifecycle on the client: list-shaped values are replaced
// wholesale on every poll cycle and never mutated in place, except that
// a cancelled order is dropped from the local view once the backend
// confirms the cancel.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Side is an order direction.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// OrderStatus mirrors the backend order lifecycle.
type OrderStatus string

const (
	OrderStatusActive    OrderStatus = "active"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is a resting order owned by a user.
type Order struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Side      Side            `json:"type"`
	Amount    decimal.Decimal `json:"amount"` // BTC
	Price     decimal.Decimal `json:"price"`  // USD per BTC
	CreatedAt time.Time       `json:"createdAt"`
	Status    OrderStatus     `json:"status"`
}

// BookSide selects which half of the order book a view shows.
type BookSide string

const (
	BookBid BookSide = "bid"
	BookAsk BookSide = "ask"
)

// BookLevel is one aggregated price level.
type BookLevel struct {
	Price  decimal.Decimal `json:"price"`
	Volume decimal.Decimal `json:"volume"`
}

// OrderBook is the aggregated book, replaced whole on every poll.
type OrderBook struct {
	Bids []BookLevel `json:"bids"`
	Asks []BookLevel `json:"asks"`
}

// Levels returns the requested side of the book.
func (b OrderBook) Levels(side BookSide) []BookLevel {
	if side == BookAsk {
		return b.Asks
	}
	return b.Bids
}

// Match is one executed trade from the user's history. The backend
// preformats price and volume for display; the raw numbers are kept for
// anything that needs to compute.
type Match struct {
	ID              string          `json:"id"`
	Price           decimal.Decimal `json:"price"`
	Volume          decimal.Decimal `json:"volume"`
	Side            Side            `json:"type"`
	Timestamp       time.Time       `json:"timestamp"`
	FormattedPrice  string          `json:"formattedPrice"`
	FormattedVolume string          `json:"formattedVolume"`
}

// GlobalMatch is one executed trade from the platform-wide feed.
type GlobalMatch struct {
	ID              string          `json:"id"`
	Price           decimal.Decimal `json:"price"`
	Volume          decimal.Decimal `json:"volume"`
	FormattedPrice  string          `json:"formattedPrice,omitempty"`
	FormattedVolume string          `json:"formattedVolume,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// Statistics is the 24h market snapshot, replaced whole on every poll.
type Statistics struct {
	LastPrice decimal.Decimal `json:"lastPrice"`
	BTCVolume decimal.Decimal `json:"btcVolume"`
	USDVolume decimal.Decimal `json:"usdVolume"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Timestamp time.Time       `json:"timestamp"`
}

// User is the authenticated user's profile. New users start with
// btcBalance=100 and usdBalance=100000 (backend auto-registration).
type User struct {
	ID         string          `json:"id"`
	Username   string          `json:"username"`
	BTCBalance decimal.Decimal `json:"btcBalance"`
	USDBalance decimal.Decimal `json:"usdBalance"`
	CreatedAt  time.Time       `json:"createdAt"`
}
