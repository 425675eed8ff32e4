package models

// AssetStatistics are per-ticker figures for the basket preview card.
type AssetStatistics struct {
	Ticker               string   `json:"ticker"`
	AnnualizedReturn     float64  `json:"annualized_return"`
	AnnualizedVolatility float64  `json:"annualized_volatility"`
	SharpeRatio          float64  `json:"sharpe_ratio"`
	MaxDrawdown          float64  `json:"max_drawdown"`
	LastPrice            float64  `json:"last_price"`
	PriceChange1Y        *float64 `json:"price_change_1y,omitempty"`
}

// MarketOverviewRequest fetches basket statistics before a run is started.
type MarketOverviewRequest struct {
	Tickers   []string `json:"tickers" validate:"required,min=1,max=30,unique"`
	Timeframe string   `json:"timeframe" default:"3y" validate:"oneof=1y 3y 5y"`
}

// MarketOverviewResponse is the payload of POST /market/data.
type MarketOverviewResponse struct {
	Tickers       []string                   `json:"tickers"`
	Statistics    map[string]AssetStatistics `json:"statistics"`
	DataStartDate string                     `json:"data_start_date"`
	DataEndDate   string                     `json:"data_end_date"`
	TradingDays   int                        `json:"trading_days"`
}
