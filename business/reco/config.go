package reco

// Config carries the scoring knobs for the recommendation engine.
type Config struct {
	// total accumulated watch seconds above which an item counts as already
	// consumed and is excluded from personalized candidates; strictly
	// greater-than, so exactly at the threshold stays eligible
	ExcludeThresholdSeconds float64

	// list-size caps for the query operations
	MaxK        int
	HistoryMaxK int
}

func DefaultConfig() Config {
	return Config{
		ExcludeThresholdSeconds: 600,
		MaxK:                    100,
		HistoryMaxK:             200,
	}
}
