package server

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/cryptonav/cryptonav/internal/models"
)

// pricePoint is one plottable (date, price) pair.
type pricePoint struct {
	Date  time.Time
	Price float64
}

// chartPoints extracts plottable points from price history entries, preferring
// the close price and falling back to open. Entries with neither are skipped.
func chartPoints(entries []*models.PriceHistoryEntry) []pricePoint {
	points := make([]pricePoint, 0, len(entries))
	for _, e := range entries {
		price := e.ClosePrice
		if price == nil {
			price = e.OpenPrice
		}
		if price == nil {
			continue
		}
		points = append(points, pricePoint{Date: e.Date, Price: price.InexactFloat64()})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points
}

// RenderPriceChart renders a PNG line chart of close prices over time.
// Returns raw PNG bytes.
func RenderPriceChart(symbol string, entries []*models.PriceHistoryEntry) ([]byte, error) {
	points := chartPoints(entries)
	if len(points) < 2 {
		return nil, fmt.Errorf("need at least 2 data points, got %d", len(points))
	}

	xValues := make([]time.Time, len(points))
	yValues := make([]float64, len(points))
	for i, p := range points {
		xValues[i] = p.Date
		yValues[i] = p.Price
	}

	series := chart.TimeSeries{
		Name: symbol,
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("2563eb"), // blue-600
			StrokeWidth: 2.5,
		},
		XValues: xValues,
		YValues: yValues,
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("%s Close Price", symbol),
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("Jan 02")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("$%.2f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{series},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}

func (s *Server) handlePriceChart(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	assetID, err := strconv.Atoi(r.URL.Query().Get("asset_id"))
	if err != nil || assetID <= 0 {
		http.Error(w, "asset_id is required", http.StatusBadRequest)
		return
	}

	token := s.base(r, "").Session.Token

	symbol := fmt.Sprintf("Asset %d", assetID)
	if asset, err := s.app.APIClient.GetAsset(r.Context(), token, assetID); err == nil {
		symbol = asset.Symbol
	}

	entries, err := s.app.APIClient.ListAssetPriceHistory(r.Context(), token, assetID, time.Time{}, time.Time{})
	if err != nil {
		s.logger.Warn().Err(err).Int("asset_id", assetID).Msg("Failed to load price history for chart")
		http.Error(w, "Unable to load price history", http.StatusBadGateway)
		return
	}

	png, err := RenderPriceChart(symbol, entries)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}
