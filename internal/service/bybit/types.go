package bybit

import "encoding/json"

const (
	CategoryLinear  = "linear"
	CategoryInverse = "inverse"
	CategorySpot    = "spot"
)

const (
	pathInstruments  = "/v5/market/instruments-info"
	pathTickers      = "/v5/market/tickers"
	pathKline        = "/v5/market/kline"
	pathOpenInterest = "/v5/market/open-interest"

	openInterestInterval = "1h"
)

// response is the v5 envelope shared by every endpoint.
type response struct {
	RetCode int             `json:"retCode"`
	RetMsg  string          `json:"retMsg"`
	Result  json.RawMessage `json:"result"`
	Time    int64           `json:"time"`
}

type instrumentsResult struct {
	Category       string           `json:"category"`
	List           []instrumentInfo `json:"list"`
	NextPageCursor string           `json:"nextPageCursor"`
}

type instrumentInfo struct {
	Symbol       string `json:"symbol"`
	ContractType string `json:"contractType"`
	Status       string `json:"status"`
	BaseCoin     string `json:"baseCoin"`
	QuoteCoin    string `json:"quoteCoin"`
	SettleCoin   string `json:"settleCoin"`
}

type tickersResult struct {
	Category string       `json:"category"`
	List     []tickerInfo `json:"list"`
}

type tickerInfo struct {
	Symbol       string `json:"symbol"`
	LastPrice    string `json:"lastPrice"`
	HighPrice24h string `json:"highPrice24h"`
	LowPrice24h  string `json:"lowPrice24h"`
	// spot tickers on some categories only carry these
	HighPrice string `json:"highPrice"`
	LowPrice  string `json:"lowPrice"`
}

// klineResult rows are [startTime, open, high, low, close, volume, turnover], newest first.
type klineResult struct {
	Symbol   string     `json:"symbol"`
	Category string     `json:"category"`
	List     [][]string `json:"list"`
}

type openInterestResult struct {
	Symbol string `json:"symbol"`
	List   []struct {
		OpenInterest string `json:"openInterest"`
		Timestamp    string `json:"timestamp"`
	} `json:"list"`
	NextPageCursor string `json:"nextPageCursor"`
}
