package middleware

import (
	"io"
	"net/http"
)

// MaxDrainBytes bounds how much of an unread body is consumed after the handler.
// Handlers that reject an EMT/ECG upload early leave most of it unread; past this
// limit the connection is not worth keeping alive and the body is just closed.
const MaxDrainBytes = 256 << 10

// DrainAndCloseRequest drains what is left of the request body (up to MaxDrainBytes)
// and closes it, so the keep-alive connection can be reused.
func DrainAndCloseRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			if r.Body == nil || r.Body == http.NoBody {
				return
			}
			_, _ = io.CopyN(io.Discard, r.Body, MaxDrainBytes)
			_ = r.Body.Close()
		})
	}
}
