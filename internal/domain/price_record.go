package domain

import "time"

// PriceRecord is one daily OHLC row for a symbol. The natural key is
// (Symbol, Date); rows are append-only and never updated.
type PriceRecord struct {
	Symbol       string    `json:"Symbol"`
	SecurityName *string   `json:"SecurityName"`
	Date         time.Time `json:"Date"`
	Open         float64   `json:"Open"`
	High         float64   `json:"High"`
	Low          float64   `json:"Low"`
	Close        float64   `json:"Close"`
	AdjClose     float64   `json:"AdjClose"`
	Volume       int64     `json:"Volume"`
}
