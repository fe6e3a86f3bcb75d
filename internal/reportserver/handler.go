package reportserver

import (
	"errors"
	"io"
	"net/http"

	"cotbench/internal/report"
	"cotbench/internal/runner"
)

// NewHandler serves the HTML report at "/", the Markdown table at
// "/results.md" and the raw artifact at "/results.json". The results file is
// re-read on every request.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.ResultsPath == "" {
		return nil, errors.New("reportserver: results path is required")
	}

	mux := http.NewServeMux()
	mux.Handle("/", getOnly(serveIndex(cfg.ResultsPath)))
	mux.Handle("/results.md", getOnly(serveMarkdown(cfg.ResultsPath)))
	mux.Handle("/results.json", getOnly(serveResults(cfg.ResultsPath)))
	return mux, nil
}

func serveIndex(resultsPath string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		results, err := runner.ReadResults(resultsPath)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := report.Page(results, report.Summarize(results)).Render(r.Context(), w); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

func serveMarkdown(resultsPath string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		results, err := runner.ReadResults(resultsPath)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		_, _ = io.WriteString(w, report.Markdown(results))
	})
}

func serveResults(resultsPath string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		http.ServeFile(w, r, resultsPath)
	})
}

func getOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		next.ServeHTTP(w, r)
	})
}
