package journal

import "time"

// OrderRecord is one market order submitted from this console, as
// acknowledged by the backend.
type OrderRecord struct {
	ID          string
	Time        time.Time
	StockCode   string
	StockName   string
	Side        string
	Quantity    int
	OrderPrice  float64
	OrderAmount float64
	Status      string
}

// AutoRunRecord is one per-instrument decision from an automated trading
// run. Records from the same run share a RunID.
type AutoRunRecord struct {
	ID          string
	RunID       string
	Time        time.Time
	Stock       string
	Code        string
	ActionScore float64
	Action      string
	Reward      *float64
}

// Journal is the local audit log of what this console submitted. It is a
// convenience record, never an input to trading decisions; the backend's
// history stays authoritative.
type Journal interface {
	RecordOrder(OrderRecord) error
	RecordAutoRun([]AutoRunRecord) error
	Close() error
}
