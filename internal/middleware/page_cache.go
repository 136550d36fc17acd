package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/avdeyev/postline/internal/cache"
	"github.com/labstack/echo/v4"
)

// cachedResponse is the stored form of a rendered page
type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// bodyCaptureWriter tees the response body so a successful render can be stored
type bodyCaptureWriter struct {
	http.ResponseWriter
	buf *bytes.Buffer
}

func (w *bodyCaptureWriter) Write(b []byte) (int, error) {
	if n, err := w.buf.Write(b); err != nil {
		return n, err
	}
	return w.ResponseWriter.Write(b)
}

// PageCache serves GET responses from the store for ttl before recomputing
// them. The key is path plus raw query, so each page number caches separately.
// Writes do not invalidate entries; within the TTL window readers may see stale
// content, which is the intended trade on the highest-traffic route.
func PageCache(store cache.PageCache, ttl time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Method != http.MethodGet {
				return next(c)
			}

			key := req.URL.Path
			if req.URL.RawQuery != "" {
				key += "?" + req.URL.RawQuery
			}

			if raw, ok, err := store.Get(req.Context(), key); err == nil && ok {
				var cached cachedResponse
				if err := json.Unmarshal(raw, &cached); err == nil {
					return c.Blob(cached.Status, cached.ContentType, cached.Body)
				}
			}

			res := c.Response()
			capture := &bodyCaptureWriter{ResponseWriter: res.Writer, buf: new(bytes.Buffer)}
			res.Writer = capture

			if err := next(c); err != nil {
				return err
			}

			if res.Status != http.StatusOK {
				return nil
			}

			raw, err := json.Marshal(cachedResponse{
				Status:      res.Status,
				ContentType: res.Header().Get(echo.HeaderContentType),
				Body:        capture.buf.Bytes(),
			})
			if err != nil {
				return nil
			}
			// cache failures only cost us the next recompute
			_ = store.Set(req.Context(), key, raw, ttl)
			return nil
		}
	}
}
