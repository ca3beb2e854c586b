package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/joho/godotenv"

	"pricepeek/commontypes"
	"pricepeek/modules/annotate"
	"pricepeek/modules/currency"
	"pricepeek/modules/rates"
	"pricepeek/modules/settings"
)

const (
	defaultPort    = "8080"
	requestTimeout = 10 * time.Second
	maxAnnotateLen = 4 << 20 // 4 MiB of HTML is plenty for one page
)

type server struct {
	rates        *rates.Provider
	settingsPath string
	mathEnv      map[string]interface{}
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	provider := rates.NewProvider(os.Getenv("RATES_URL"), ttlFromEnv())

	// Blocking initial fetch so conversions are servable immediately.
	log.Println("Performing initial fetch of exchange rates...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := provider.InitialFetch(ctx); err != nil {
		cancel()
		log.Fatalf("Failed to fetch initial exchange rates: %v", err)
	}
	cancel()
	log.Println("Initial rates fetch complete.")

	provider.StartBackgroundRefresh(context.Background())

	s := &server{
		rates:        provider,
		settingsPath: os.Getenv("SETTINGS_PATH"),
		mathEnv: map[string]interface{}{
			"abs":   func(x float64) float64 { return math.Abs(x) },
			"round": func(x float64) float64 { return math.Round(x) },
			"floor": func(x float64) float64 { return math.Floor(x) },
			"ceil":  func(x float64) float64 { return math.Ceil(x) },
			"min":   func(x, y float64) float64 { return math.Min(x, y) },
			"max":   func(x, y float64) float64 { return math.Max(x, y) },
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/classify", s.handleClassify)
	mux.HandleFunc("/convert", s.handleConvert)
	mux.HandleFunc("/annotate", s.handleAnnotate)
	mux.HandleFunc("/currencies", s.handleCurrencies)

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  requestTimeout,
		WriteTimeout: requestTimeout,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("pricepeek listening on :%s", port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Could not listen on :%s: %v", port, err)
	}
}

func ttlFromEnv() time.Duration {
	v := os.Getenv("RATES_TTL_MINUTES")
	if v == "" {
		return rates.DefaultTTL
	}
	mins, err := strconv.Atoi(v)
	if err != nil || mins <= 0 {
		log.Printf("Ignoring invalid RATES_TTL_MINUTES=%q", v)
		return rates.DefaultTTL
	}
	return time.Duration(mins) * time.Minute
}

func (s *server) handleClassify(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	m := currency.Classify(q)
	if m == nil {
		writeJSON(w, http.StatusOK, commontypes.ClassifyResponse{Matched: false})
		return
	}

	price := commontypes.DetectedPrice{
		Amount:   m.Amount,
		Currency: m.CurrencyCode,
		Text:     m.OriginalText,
		Display:  s.homeDisplay(r.Context(), m.Amount, m.CurrencyCode),
	}
	writeJSON(w, http.StatusOK, commontypes.ClassifyResponse{Matched: true, Price: &price})
}

func (s *server) handleConvert(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	amount, err := s.evalAmount(query.Get("amount"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid amount: %v", err))
		return
	}
	from := strings.ToUpper(strings.TrimSpace(query.Get("from")))
	if !currency.IsSupported(from) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported currency %q", from))
		return
	}
	to := strings.ToUpper(strings.TrimSpace(query.Get("to")))
	if to == "" {
		to = settings.Load(s.settingsPath).HomeCurrency
	}
	if !currency.IsSupported(to) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported currency %q", to))
		return
	}

	table, err := s.rates.Rates(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "exchange rates unavailable")
		return
	}
	result, err := currency.Convert(amount, from, to, table)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, commontypes.ConvertResponse{
		Amount:  amount,
		From:    from,
		To:      to,
		Result:  result,
		Display: currency.Format(result, to),
	})
}

func (s *server) handleAnnotate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST an HTML document")
		return
	}
	if !settings.Load(s.settingsPath).Enabled {
		writeError(w, http.StatusConflict, "price detection is disabled")
		return
	}

	out, matches, err := annotate.AnnotateHTML(http.MaxBytesReader(w, r.Body, maxAnnotateLen))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("parsing document: %v", err))
		return
	}

	resp := commontypes.AnnotateResponse{HTML: out, Matches: make([]commontypes.DetectedPrice, 0, len(matches))}
	for _, m := range matches {
		resp.Matches = append(resp.Matches, commontypes.DetectedPrice{
			Amount:   m.Amount,
			Currency: m.CurrencyCode,
			Text:     m.OriginalText,
			Display:  s.homeDisplay(r.Context(), m.Amount, m.CurrencyCode),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) handleCurrencies(w http.ResponseWriter, r *http.Request) {
	defs := currency.ListCurrencies()
	out := make([]commontypes.CurrencyInfo, 0, len(defs))
	for _, def := range defs {
		out = append(out, commontypes.CurrencyInfo{
			Code:        def.Code,
			Symbol:      def.Symbol,
			DisplayName: def.DisplayName,
			Locale:      def.FormattingLocale,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// homeDisplay renders an amount in the user's home currency, or ""
// when rates are unavailable or detection is disabled. Display is a
// convenience on top of the marker triple, so failures degrade to an
// empty string instead of failing the request.
func (s *server) homeDisplay(ctx context.Context, amount float64, code string) string {
	cfg := settings.Load(s.settingsPath)
	if !cfg.Enabled {
		return ""
	}
	table, err := s.rates.Rates(ctx)
	if err != nil {
		log.Printf("display conversion skipped: %v", err)
		return ""
	}
	converted, err := currency.Convert(amount, code, cfg.HomeCurrency, table)
	if err != nil {
		log.Printf("display conversion skipped: %v", err)
		return ""
	}
	return currency.Format(converted, cfg.HomeCurrency)
}

// evalAmount accepts either a plain number or a small arithmetic
// expression ("120*4", "round(99.5)+1").
func (s *server) evalAmount(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("amount is required")
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return checkAmount(v)
	}

	program, err := expr.Compile(raw, expr.Env(s.mathEnv))
	if err != nil {
		return 0, fmt.Errorf("compiling %q: %w", raw, err)
	}
	result, err := expr.Run(program, s.mathEnv)
	if err != nil {
		return 0, fmt.Errorf("evaluating %q: %w", raw, err)
	}

	switch v := result.(type) {
	case int:
		return checkAmount(float64(v))
	case float64:
		return checkAmount(v)
	default:
		return 0, fmt.Errorf("expression %q is not numeric", raw)
	}
}

func checkAmount(v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, fmt.Errorf("amount must be a non-negative finite number")
	}
	return v, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, commontypes.ErrorResponse{Error: msg})
}
