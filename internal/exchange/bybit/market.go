package bybit

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	bybit_api "github.com/bybit-exchange/bybit.go.api"

	"github.com/ducminhle1904/fx-scalper-bot/internal/instrument"
	"github.com/ducminhle1904/fx-scalper-bot/pkg/types"
)

// Supported kline intervals, Bybit notation.
const (
	Interval1m  = "1"
	Interval5m  = "5"
	Interval15m = "15"
	Interval1h  = "60"
	Interval4h  = "240"
	Interval1d  = "D"
)

// GetKlines fetches a bar window for a symbol. Bars are returned oldest
// first (most-recent-last), ready for the analysis pipeline.
func (c *Client) GetKlines(ctx context.Context, symbol, timeframe string, limit int) ([]types.OHLCV, error) {
	if limit <= 0 {
		limit = 200
	}
	if limit > 1000 {
		limit = 1000
	}

	reqParams := map[string]interface{}{
		"category": c.category,
		"symbol":   symbol,
		"interval": timeframe,
		"limit":    limit,
	}

	result, err := c.httpClient.NewUtaBybitServiceWithParams(reqParams).GetMarketKline(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get klines for %s: %w", symbol, err)
	}

	bars, err := parseKlineResponse(result)
	if err != nil {
		return nil, fmt.Errorf("failed to parse kline response for %s: %w", symbol, err)
	}

	// Bybit returns newest first
	sort.Slice(bars, func(i, j int) bool {
		return bars[i].Timestamp.Before(bars[j].Timestamp)
	})
	return bars, nil
}

// GetTicker gets the latest traded price and 24h volume for a symbol.
func (c *Client) GetTicker(ctx context.Context, symbol string) (types.Ticker, error) {
	params := map[string]interface{}{
		"category": c.category,
		"symbol":   symbol,
	}

	result, err := c.httpClient.NewUtaBybitServiceWithParams(params).GetMarketTickers(ctx)
	if err != nil {
		return types.Ticker{}, fmt.Errorf("failed to get ticker for %s: %w", symbol, err)
	}

	return parseTickerResponse(result)
}

// Profile fetches instrument volume bounds from the exchange. Tick value is
// not exposed by the kline API, so sizing against exchange symbols degrades
// to minimum volume unless the profile is enriched from configuration.
func (c *Client) Profile(ctx context.Context, symbol string) (instrument.Profile, error) {
	params := map[string]interface{}{
		"category": c.category,
		"symbol":   symbol,
	}

	result, err := c.httpClient.NewUtaBybitServiceWithParams(params).GetInstrumentInfo(ctx)
	if err != nil {
		return instrument.Profile{}, fmt.Errorf("failed to get instrument info for %s: %w", symbol, err)
	}

	serverResp := result
	if serverResp.RetCode != 0 {
		return instrument.Profile{}, fmt.Errorf("API error: %s (code: %d)", serverResp.RetMsg, serverResp.RetCode)
	}

	resultBytes, err := json.Marshal(serverResp.Result)
	if err != nil {
		return instrument.Profile{}, fmt.Errorf("failed to marshal result: %w", err)
	}

	var infoResult struct {
		List []struct {
			Symbol        string `json:"symbol"`
			LotSizeFilter struct {
				MinOrderQty string `json:"minOrderQty"`
				MaxOrderQty string `json:"maxOrderQty"`
				QtyStep     string `json:"qtyStep"`
			} `json:"lotSizeFilter"`
		} `json:"list"`
	}
	if err := json.Unmarshal(resultBytes, &infoResult); err != nil {
		return instrument.Profile{}, fmt.Errorf("failed to unmarshal instrument info: %w", err)
	}
	if len(infoResult.List) == 0 {
		return instrument.Profile{}, fmt.Errorf("no instrument info for %s", symbol)
	}

	info := infoResult.List[0]
	profile := instrument.DefaultProfile(symbol)
	if v := parseFloat64(info.LotSizeFilter.MinOrderQty); v > 0 {
		profile.VolumeMin = v
	}
	if v := parseFloat64(info.LotSizeFilter.MaxOrderQty); v > 0 {
		profile.VolumeMax = v
	}
	if v := parseFloat64(info.LotSizeFilter.QtyStep); v > 0 {
		profile.VolumeStep = v
	}
	return profile, nil
}

func parseKlineResponse(response interface{}) ([]types.OHLCV, error) {
	serverResp, ok := response.(*bybit_api.ServerResponse)
	if !ok {
		return nil, fmt.Errorf("invalid response type")
	}
	if serverResp.RetCode != 0 {
		return nil, fmt.Errorf("API error: %s (code: %d)", serverResp.RetMsg, serverResp.RetCode)
	}

	resultBytes, err := json.Marshal(serverResp.Result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	var klineResult struct {
		Symbol   string     `json:"symbol"`
		Category string     `json:"category"`
		List     [][]string `json:"list"`
	}
	if err := json.Unmarshal(resultBytes, &klineResult); err != nil {
		return nil, fmt.Errorf("failed to unmarshal kline result: %w", err)
	}

	bars := make([]types.OHLCV, 0, len(klineResult.List))
	for _, item := range klineResult.List {
		if len(item) < 6 {
			continue
		}

		// Bybit kline format: [startTime, open, high, low, close, volume, turnover]
		bars = append(bars, types.OHLCV{
			Timestamp: millisToTime(parseInt64(item[0])),
			Open:      parseFloat64(item[1]),
			High:      parseFloat64(item[2]),
			Low:       parseFloat64(item[3]),
			Close:     parseFloat64(item[4]),
			Volume:    parseFloat64(item[5]),
		})
	}
	return bars, nil
}

func parseTickerResponse(response interface{}) (types.Ticker, error) {
	serverResp, ok := response.(*bybit_api.ServerResponse)
	if !ok {
		return types.Ticker{}, fmt.Errorf("invalid response type")
	}
	if serverResp.RetCode != 0 {
		return types.Ticker{}, fmt.Errorf("API error: %s (code: %d)", serverResp.RetMsg, serverResp.RetCode)
	}

	resultBytes, err := json.Marshal(serverResp.Result)
	if err != nil {
		return types.Ticker{}, fmt.Errorf("failed to marshal result: %w", err)
	}

	var tickerResult struct {
		List []struct {
			Symbol    string `json:"symbol"`
			LastPrice string `json:"lastPrice"`
			Volume24h string `json:"volume24h"`
		} `json:"list"`
	}
	if err := json.Unmarshal(resultBytes, &tickerResult); err != nil {
		return types.Ticker{}, fmt.Errorf("failed to unmarshal ticker result: %w", err)
	}
	if len(tickerResult.List) == 0 {
		return types.Ticker{}, fmt.Errorf("empty ticker response")
	}

	entry := tickerResult.List[0]
	price := parseFloat64(entry.LastPrice)
	if price <= 0 {
		return types.Ticker{}, fmt.Errorf("invalid last price %q", entry.LastPrice)
	}
	return types.Ticker{
		Symbol:    entry.Symbol,
		Price:     price,
		Volume:    parseFloat64(entry.Volume24h),
		Timestamp: millisToTime(serverResp.Time),
	}, nil
}

func millisToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func parseFloat64(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func parseInt64(s string) int64 {
	v, _ := strconv.ParseInt(s, 10, 64)
	return v
}
