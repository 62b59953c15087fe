package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"minitweet/domain"
	"minitweet/errs"
)

// registerLikeRoutes is a helper for registering all Like routes.
func (s *Server) registerLikeRoutes(r *mux.Router) {
	// Like a tweet.
	r.HandleFunc("/tweets/{id:[0-9]+}/likes", s.requireAuth(s.handleCreateLike)).Methods("POST")

	// Unlike a previously liked tweet.
	r.HandleFunc("/tweets/{id:[0-9]+}/likes", s.requireAuth(s.handleDeleteLike)).Methods("DELETE")
}

// handleCreateLike handles the route "POST /api/tweets/{id}/likes".
// Liking the same tweet twice is a conflict, not a server error.
func (s *Server) handleCreateLike(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid Id format."))
		return
	}

	user := s.getUserFromContext(r.Context())
	like := domain.Like{
		UserID:  user.ID,
		TweetID: id,
	}
	if err := s.ls.Create(&like); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	response := struct {
		Result bool `json:"result"`
	}{
		Result: true,
	}
	if err := json.NewEncoder(w).Encode(&response); err != nil {
		errs.LogError(r, err)
	}
}

// handleDeleteLike handles the route "DELETE /api/tweets/{id}/likes".
// Unliking a tweet with no existing like is a no-op success.
func (s *Server) handleDeleteLike(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid Id format."))
		return
	}

	user := s.getUserFromContext(r.Context())
	like := domain.Like{
		UserID:  user.ID,
		TweetID: id,
	}
	if err := s.ls.Delete(&like); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	writeResult(w, r)
}
