package models

import "time"

// Sentiment labels as reported by the allocator service.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// TickerSentiment is the aggregated news sentiment for one ticker.
// positive_ratio + negative_ratio + neutral_ratio is expected to sum to ~1.0.
type TickerSentiment struct {
	Ticker            string  `json:"ticker"`
	SentimentScore    float64 `json:"sentiment_score"`
	DominantSentiment string  `json:"dominant_sentiment"`
	ConfidenceAvg     float64 `json:"confidence_avg"`
	ArticlesAnalyzed  int     `json:"articles_analyzed"`
	PositiveRatio     float64 `json:"positive_ratio"`
	NegativeRatio     float64 `json:"negative_ratio"`
	NeutralRatio      float64 `json:"neutral_ratio"`
}

// SentimentResponse is the payload of POST /sentiment/analyze.
type SentimentResponse struct {
	AnalysisTimestamp    time.Time                  `json:"analysis_timestamp"`
	TickersAnalyzed      []string                   `json:"tickers_analyzed"`
	Results              map[string]TickerSentiment `json:"results"`
	MarketSentimentIndex float64                    `json:"market_sentiment_index"`
	ModelUsed            string                     `json:"model_used"`
}
