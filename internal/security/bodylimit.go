package security

import (
	"bytes"
	"errors"
	"io"
	"net/http"
)

// BodyLimit caps request payload sizes. Catalog imports carry the whole
// snapshot in one request, so the limit has to leave room for those.
type BodyLimit struct {
	Max int64
}

// Middleware answers 413 for oversize payloads. The declared Content-Length
// is checked first; chunked bodies are read up to the cap. Accepted bodies
// are re-buffered so downstream decoders see a plain reader.
func (b BodyLimit) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if b.Max <= 0 || r.Body == nil {
			next.ServeHTTP(w, r)
			return
		}
		if r.ContentLength != -1 && r.ContentLength > b.Max {
			http.Error(w, "request entity too large", http.StatusRequestEntityTooLarge)
			return
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, b.Max+1))
		_ = r.Body.Close()
		switch {
		case err != nil && !errors.Is(err, io.EOF):
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		case int64(len(body)) > b.Max:
			http.Error(w, "request entity too large", http.StatusRequestEntityTooLarge)
			return
		}

		r.Body = io.NopCloser(bytes.NewReader(body))
		r.ContentLength = int64(len(body))
		next.ServeHTTP(w, r)
	})
}
