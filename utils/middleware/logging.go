package middleware

import (
	"bytes"
	"html"
	"net/http"
	"text/template"
	"time"

	"github.com/metrico/kpiql/utils/logger"
)

// LoggingMiddleware logs one line per request rendered from tpl. Available
// fields: method, url, proto, status, length, referer, user_agent, host, path, latency.
func LoggingMiddleware(tpl string) func(next http.Handler) http.Handler {
	t, err := template.New("http-logging").Parse(tpl)
	if err != nil {
		logger.Error("invalid request logging template: ", err)
		t = template.Must(template.New("http-logging").Parse("[{{.status}}] {{.method}} {{.url}}"))
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_w := &responseWriterWithCode{ResponseWriter: w, statusCode: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(_w, r)
			duration := time.Since(start)
			b := bytes.NewBuffer(nil)
			err := t.Execute(b, map[string]any{
				"method":     html.EscapeString(r.Method),
				"url":        html.EscapeString(r.URL.String()),
				"proto":      html.EscapeString(r.Proto),
				"status":     _w.statusCode,
				"length":     _w.length,
				"referer":    html.EscapeString(r.Referer()),
				"user_agent": html.EscapeString(r.UserAgent()),
				"host":       html.EscapeString(r.Host),
				"path":       html.EscapeString(r.URL.Path),
				"latency":    duration.String(),
			})
			if err != nil {
				logger.Error("unable to log request: ", err)
				return
			}
			logger.Info(b.String())
		})
	}
}

type responseWriterWithCode struct {
	http.ResponseWriter
	statusCode int
	length     int
}

func (w *responseWriterWithCode) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseWriterWithCode) Write(b []byte) (int, error) {
	w.length += len(b)
	return w.ResponseWriter.Write(b)
}
