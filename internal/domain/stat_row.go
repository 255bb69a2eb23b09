package domain

// StatRow is one row of a statistics query result: the period yield of a
// symbol joined with its windowed rate aggregates. Computed per query,
// never persisted. JSON field names match the exported report format.
type StatRow struct {
	Symbol       string  `json:"Symbol"`
	SecurityName *string `json:"Security_Name"`
	StartClose   float64 `json:"Close_start_price"`
	EndClose     float64 `json:"Close_end_price"`
	MaxRate      float64 `json:"Max_rate"`
	MinRate      float64 `json:"Min_rate"`
	AvgRate      float64 `json:"AVG_Rate"`
	Yield        float64 `json:"Yield"`
}

// Aggregate holds the windowed max/min/avg rates for one symbol.
type Aggregate struct {
	SecurityName *string
	MaxRate      float64
	MinRate      float64
	AvgRate      float64
}
