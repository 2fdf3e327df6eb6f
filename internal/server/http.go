package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"catalystChart/internal/chart"
	"catalystChart/internal/market"
	"catalystChart/internal/render"
	"catalystChart/internal/storage"
)

// Server wires the engine, the data provider and the rendering hosts behind
// an HTTP surface. All chart math happens in the engine; handlers only
// gather inputs and hand scenes to a renderer.
type Server struct {
	engine   *chart.Engine
	provider *market.Provider
	store    *storage.Store
	cache    *render.Cache

	eventsPath string
}

func New(engine *chart.Engine, provider *market.Provider, store *storage.Store, cache *render.Cache, eventsPath string) *Server {
	return &Server{
		engine:     engine,
		provider:   provider,
		store:      store,
		cache:      cache,
		eventsPath: eventsPath,
	}
}

func (s *Server) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/chart", s.handleChart)
	mux.HandleFunc("/chart.png", s.handlePreview)
	mux.HandleFunc("/portfolio", s.handlePortfolio)
	mux.HandleFunc("/usage.png", s.handleUsage)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(200) })
	return mux
}

func ListenAndServe(addr string, mux *http.ServeMux) error {
	return http.ListenAndServe(addr, mux)
}

// viewportFromQuery reads w/h/split with chart-page defaults. Invalid
// values are passed straight through: the engine rejects them instead of
// guessing, so a typo never yields a plausible-looking wrong chart.
func viewportFromQuery(r *http.Request) chart.Viewport {
	vp := chart.Viewport{Width: 800, Height: 360, SplitRatio: 0.72}
	if v := r.URL.Query().Get("w"); v != "" {
		vp.Width, _ = strconv.ParseFloat(v, 64)
	}
	if v := r.URL.Query().Get("h"); v != "" {
		vp.Height, _ = strconv.ParseFloat(v, 64)
	}
	if v := r.URL.Query().Get("split"); v != "" {
		vp.SplitRatio, _ = strconv.ParseFloat(v, 64)
	}
	return vp
}

// loadEvents reads the catalog for one symbol. A missing catalog is a
// normal deployment state and yields no markers.
func (s *Server) loadEvents(symbol string, now time.Time) ([]chart.FutureEvent, error) {
	events, err := market.LoadEvents(s.eventsPath, symbol, now, s.engine.Config().FutureWindow)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return events, err
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("symbol")))
	if symbol == "" {
		http.Error(w, "symbol required", http.StatusBadRequest)
		return
	}
	rng, err := chart.ParseTimeRange(r.URL.Query().Get("range"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	vp := viewportFromQuery(r)
	now := time.Now()

	cacheKey := fmt.Sprintf("scene|%s|%s|%.0fx%.0f|%.3f", symbol, rng, vp.Width, vp.Height, vp.SplitRatio)
	if img, ok := s.cache.Get(cacheKey); ok {
		writeSVG(w, img)
		return
	}

	samples, err := s.provider.FetchSamples(symbol, rng)
	if err != nil {
		log.Printf("chart: fetch %s: %v", symbol, err)
		http.Error(w, "failed to fetch series", http.StatusBadGateway)
		return
	}
	events, err := s.loadEvents(symbol, now)
	if err != nil {
		log.Printf("chart: events: %v", err)
		http.Error(w, "bad event catalog", http.StatusInternalServerError)
		return
	}

	scene, err := s.engine.BuildScene(samples, events, vp, rng, now)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	img := render.SceneSVG(scene, s.engine.CurrentSession(now), symbol)
	s.cache.Set(cacheKey, img)
	s.logRender(symbol, rng.String(), "scene", now)
	writeSVG(w, img)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("symbol")))
	if symbol == "" {
		http.Error(w, "symbol required", http.StatusBadRequest)
		return
	}
	rng, err := chart.ParseTimeRange(r.URL.Query().Get("range"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cacheKey := "preview|" + symbol + "|" + rng.String()
	if img, ok := s.cache.Get(cacheKey); ok {
		writePNG(w, img)
		return
	}

	samples, err := s.provider.FetchSamples(symbol, rng)
	if err != nil {
		log.Printf("preview: fetch %s: %v", symbol, err)
		http.Error(w, "failed to fetch series", http.StatusBadGateway)
		return
	}
	img, err := render.PreviewPNG(samples, rng, symbol)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	s.cache.Set(cacheKey, img)
	s.logRender(symbol, rng.String(), "preview", time.Now())
	writePNG(w, img)
}

func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	symbols := splitList(r.URL.Query().Get("symbols"))
	if len(symbols) == 0 {
		http.Error(w, "symbols required", http.StatusBadRequest)
		return
	}
	rng, err := chart.ParseTimeRange(r.URL.Query().Get("range"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	weights, err := parseWeights(r.URL.Query().Get("weights"), len(symbols))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	vp := viewportFromQuery(r)
	now := time.Now()

	assets := make([][]chart.PriceSample, 0, len(symbols))
	for _, sym := range symbols {
		samples, err := s.provider.FetchSamples(sym, rng)
		if err != nil {
			log.Printf("portfolio: fetch %s: %v", sym, err)
			http.Error(w, fmt.Sprintf("failed to fetch %s", sym), http.StatusBadGateway)
			return
		}
		assets = append(assets, samples)
		time.Sleep(120 * time.Millisecond)
	}
	aggregate, err := market.Aggregate(assets, weights, 100.0)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	scene, err := s.engine.BuildScene(aggregate, nil, vp, rng, now)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	title := "Portfolio (" + strings.Join(symbols, ", ") + ")"
	img := render.SceneSVG(scene, s.engine.CurrentSession(now), title)
	s.logRender(strings.Join(symbols, ","), rng.String(), "portfolio", now)
	writeSVG(w, img)
}

func (s *Server) handleUsage(w http.ResponseWriter, r *http.Request) {
	days := 7
	if v := r.URL.Query().Get("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			days = n
		}
	}
	since := time.Now().AddDate(0, 0, -days).Unix()
	counts, err := s.store.UsageByKind(since)
	if err != nil {
		log.Printf("usage: query: %v", err)
		http.Error(w, "failed to query usage", http.StatusInternalServerError)
		return
	}
	img, err := render.UsagePNG(counts, days)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	writePNG(w, img)
}

func (s *Server) logRender(symbol, rng, kind string, now time.Time) {
	if err := s.store.SaveRender(symbol, rng, kind, now.Unix()); err != nil {
		log.Printf("storage: save render: %v", err)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.ToUpper(strings.TrimSpace(part)); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseWeights parses a comma list of fractions; empty means equal weights.
func parseWeights(s string, n int) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("weights (%d) don't match symbols (%d)", len(parts), n)
	}
	out := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("bad weight %q", p)
		}
		out[i] = v
	}
	return out, nil
}

func writeSVG(w http.ResponseWriter, img []byte) {
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(img)
}

func writePNG(w http.ResponseWriter, img []byte) {
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(img)
}
