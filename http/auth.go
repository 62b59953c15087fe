package http

import (
	"context"
	"net/http"

	"minitweet/auth"
	"minitweet/domain"
	"minitweet/errs"
)

// APIKeyHeader is the fixed header name carrying the raw API key.
const APIKeyHeader = "api-key"

// The checkUser middleware resolves the api-key header to a user and stores
// it in the request context. A request without the header passes through
// unauthenticated (requireAuth decides per route whether that is allowed);
// a request with an unknown key is rejected right here, before any handler.
func (s *Server) checkUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(APIKeyHeader)
		if key == "" {
			next.ServeHTTP(w, r)
			return
		}
		user, err := s.us.ByAPIKey(key)
		if err != nil {
			errs.ReturnError(w, r, err)
			return
		}
		r = r.WithContext(auth.SetUser(r.Context(), user))
		next.ServeHTTP(w, r)
	})
}

// requireAuth wraps a handler that must only run for authenticated requests.
// It assumes the checkUser middleware has already run.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.getUserFromContext(r.Context()) == nil {
			errs.ReturnError(w, r, errs.Errorf(errs.EUNAUTHORIZED, "A valid api-key header is required."))
			return
		}
		next(w, r)
	}
}

// getUserFromContext returns the authenticated user of the request, or nil.
func (s *Server) getUserFromContext(ctx context.Context) *domain.User {
	return auth.GetUser(ctx)
}
