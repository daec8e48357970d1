package devserver

import (
	"net/http"

	"github.com/konega2/portfolio-sub001/internal/logging"
)

// Middleware applies the normalizer in front of next. Redirects use 307 so
// the method and body are preserved.
func (n *Normalizer) Middleware(log logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d, err := n.Normalize(r.Context(), r.URL.Path, r.URL.RawQuery)
		if err != nil {
			log.Warn(r.Context(), "existence check failed, passing through", "path", r.URL.Path, "error", err)
		}
		if d.Redirect {
			log.Debug(r.Context(), "folder case redirect", "from", r.URL.Path, "to", d.Location)
			http.Redirect(w, r, d.Location, http.StatusTemporaryRedirect)
			return
		}
		next.ServeHTTP(w, r)
	})
}
