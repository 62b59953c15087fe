package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"minitweet/domain"
	"minitweet/errs"
)

// registerFollowRoutes is a helper for registering all Follow routes.
func (s *Server) registerFollowRoutes(r *mux.Router) {
	// Follow another user.
	r.HandleFunc("/users/{id:[0-9]+}/follow", s.requireAuth(s.handleCreateFollow)).Methods("POST")

	// Unfollow a previously followed user.
	r.HandleFunc("/users/{id:[0-9]+}/follow", s.requireAuth(s.handleDeleteFollow)).Methods("DELETE")
}

// handleCreateFollow handles the route "POST /api/users/{id}/follow".
// Following yourself and following the same user twice are both client
// errors.
func (s *Server) handleCreateFollow(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid Id format."))
		return
	}

	follower := s.getUserFromContext(r.Context())
	follow := domain.Follow{
		FollowerID:  follower.ID,
		FollowingID: id,
	}
	if err := s.fs.Create(&follow); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	writeResult(w, r)
}

// handleDeleteFollow handles the route "DELETE /api/users/{id}/follow".
// Unfollowing a user that was never followed is a no-op success.
func (s *Server) handleDeleteFollow(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid Id format."))
		return
	}

	follower := s.getUserFromContext(r.Context())
	follow := domain.Follow{
		FollowerID:  follower.ID,
		FollowingID: id,
	}
	if err := s.fs.Delete(&follow); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	writeResult(w, r)
}
