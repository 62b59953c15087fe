package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"minitweet/domain"
	"minitweet/errs"
)

// registerUserRoutes is a helper for registering all User routes.
func (s *Server) registerUserRoutes(r *mux.Router) {
	// Get the authed user's own profile.
	r.HandleFunc("/users/me", s.requireAuth(s.handleGetSelf)).Methods("GET")

	// Get the profile of a specific user. This is the one route that
	// works without authentication.
	r.HandleFunc("/users/{id:[0-9]+}", s.handleGetProfile).Methods("GET")
}

// handleGetSelf handles the route "GET /api/users/me".
// It is the profile lookup with the authed user's own id, and always
// succeeds for a caller that made it past authentication.
func (s *Server) handleGetSelf(w http.ResponseWriter, r *http.Request) {
	user := s.getUserFromContext(r.Context())
	s.writeProfile(w, r, user.ID)
}

// handleGetProfile handles the route "GET /api/users/{id}".
// It returns the user's profile with fully loaded followers and following
// lists, or a structured 404 body if no such user exists.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid Id format."))
		return
	}
	s.writeProfile(w, r, id)
}

// writeProfile loads and returns the profile of the given user id.
func (s *Server) writeProfile(w http.ResponseWriter, r *http.Request, id int) {
	profile, err := s.us.ByID(id)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	response := struct {
		Result bool            `json:"result"`
		User   *domain.Profile `json:"user"`
	}{
		Result: true,
		User:   profile,
	}
	if err := json.NewEncoder(w).Encode(&response); err != nil {
		errs.LogError(r, err)
	}
}
