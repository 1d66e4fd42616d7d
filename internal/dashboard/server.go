// Package dashboard serves the fitted demand models over HTTP: a chart of
// the daily series, the per-category coefficients, and a point-prediction
// endpoint. Predictions are inflated by a fixed safety margin before
// display so the kitchen errs toward cooking enough.
package dashboard

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/gorilla/mux"

	"github.com/pitcast/pitcast/internal/models"
	"github.com/pitcast/pitcast/internal/regress"
)

type Server struct {
	series models.Series
	models map[models.Category]*regress.Model
	window int
	margin float64
	router *mux.Router
}

func NewServer(series models.Series, fitted map[models.Category]*regress.Model, window int, margin float64) *Server {
	s := &Server{
		series: series,
		models: fitted,
		window: window,
		margin: margin,
		router: mux.NewRouter(),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.HandleFunc("/", s.handleChart).Methods("GET")
	s.router.HandleFunc("/models", s.handleModels).Methods("GET")
	// expects ?category={name}&high={daily high, optional}
	s.router.HandleFunc("/predict", s.handlePredict).Methods("GET")
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.router)
}

// handleChart renders the daily series as a line chart, one series per
// weight category plus the count categories.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Daily demand by category",
			Width:     "1100px",
			Height:    "550px",
		}),
		charts.WithTitleOpts(opts.Title{Title: "Daily demand"}),
	)

	dates := make([]string, len(s.series))
	for i, d := range s.series {
		dates[i] = d.Date.Format("2006-01-02")
	}
	line.SetXAxis(dates)

	cats := append(append([]models.Category{}, models.WeightCategories...), models.CountCategories...)
	for _, c := range cats {
		points := make([]opts.LineData, len(s.series))
		for i, d := range s.series {
			points[i] = opts.LineData{Value: d.Value(c)}
		}
		line.AddSeries(string(c), points)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := line.Render(w); err != nil {
		http.Error(w, fmt.Sprintf("failed to render chart: %v", err), http.StatusInternalServerError)
	}
}

type modelSummary struct {
	Target       string             `json:"target"`
	Intercept    float64            `json:"intercept"`
	Coefficients map[string]float64 `json:"coefficients"`
	R2           float64            `json:"r2"`
	NObs         int                `json:"n_obs"`
}

func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	out := make(map[string]modelSummary, len(s.models))
	for cat, m := range s.models {
		out[string(cat)] = modelSummary{
			Target:       m.Target,
			Intercept:    m.Intercept,
			Coefficients: m.Coefficients,
			R2:           m.R2,
			NObs:         m.NObs,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

type prediction struct {
	Category  string  `json:"category"`
	Predicted float64 `json:"predicted"`
	Displayed float64 `json:"displayed"`
	Margin    float64 `json:"margin"`
	UsedHigh  bool    `json:"used_high"`
}

// handlePredict evaluates one category's model at the most recent lag
// values, optionally with a caller-supplied daily high, and applies the
// safety margin.
func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	cat := models.Category(r.URL.Query().Get("category"))
	m, ok := s.models[cat]
	if !ok {
		http.Error(w, fmt.Sprintf("no model for category %q", cat), http.StatusNotFound)
		return
	}

	values, err := s.latestLags(cat)
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	usedHigh := false
	if rawHigh := r.URL.Query().Get("high"); rawHigh != "" {
		high, err := strconv.ParseFloat(rawHigh, 64)
		if err != nil {
			http.Error(w, fmt.Sprintf("bad high %q", rawHigh), http.StatusBadRequest)
			return
		}
		values[models.LagColumn(models.CategoryHigh, 1)] = high
		usedHigh = true
	}

	predicted := m.Predict(values)
	writeJSON(w, http.StatusOK, prediction{
		Category:  string(cat),
		Predicted: predicted,
		Displayed: predicted * s.margin,
		Margin:    s.margin,
		UsedHigh:  usedHigh,
	})
}

// latestLags maps the most recent series rows onto the model's lag
// predictors: lag2 reads the newest row, lag3 the one before, and so on.
func (s *Server) latestLags(cat models.Category) (map[string]float64, error) {
	if len(s.series) < s.window-1 {
		return nil, fmt.Errorf("series has %d days, need %d for prediction", len(s.series), s.window-1)
	}
	values := make(map[string]float64, s.window-1)
	for k := 2; k <= s.window; k++ {
		row := s.series[len(s.series)-(k-1)]
		values[models.LagColumn(cat, k)] = row.Value(cat)
	}
	return values, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
