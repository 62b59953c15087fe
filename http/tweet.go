package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"minitweet/domain"
	"minitweet/errs"
)

// registerTweetRoutes is a helper for registering all Tweet routes.
func (s *Server) registerTweetRoutes(r *mux.Router) {
	// Create a new tweet, optionally referencing previously uploaded media.
	r.HandleFunc("/tweets", s.requireAuth(s.handleCreateTweet)).Methods("POST")

	// Fetch the authed user's feed.
	r.HandleFunc("/tweets", s.requireAuth(s.handleFeed)).Methods("GET")

	// Delete one of the authed user's own tweets.
	r.HandleFunc("/tweets/{id:[0-9]+}", s.requireAuth(s.handleDeleteTweet)).Methods("DELETE")
}

// createTweetRequest is the json body of a tweet creation request.
type createTweetRequest struct {
	TweetData     string `json:"tweet_data" validate:"required"`
	TweetMediaIDs []int  `json:"tweet_media_ids" validate:"omitempty,dive,gt=0"`
}

// handleCreateTweet handles the route "POST /api/tweets".
// It creates a tweet owned by the authed user and attaches any resolvable
// media ids from the body. On success it returns the new tweet's id.
func (s *Server) handleCreateTweet(w http.ResponseWriter, r *http.Request) {
	var req createTweetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid json body."))
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "tweet_data is required."))
		return
	}

	user := s.getUserFromContext(r.Context())
	tweet := domain.Tweet{
		UserID:  user.ID,
		Content: req.TweetData,
	}
	if err := s.ts.Create(&tweet, req.TweetMediaIDs); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	response := struct {
		Result  bool `json:"result"`
		TweetID int  `json:"tweet_id"`
	}{
		Result:  true,
		TweetID: tweet.ID,
	}
	if err := json.NewEncoder(w).Encode(&response); err != nil {
		errs.LogError(r, err)
	}
}

// handleDeleteTweet handles the route "DELETE /api/tweets/{id}".
// Only the tweet's owner may delete it; likes and attachment associations
// go with it, the media files stay.
func (s *Server) handleDeleteTweet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid Id format."))
		return
	}

	user := s.getUserFromContext(r.Context())
	tweet := domain.Tweet{
		ID:     id,
		UserID: user.ID,
	}
	if err := s.ts.Delete(&tweet); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	writeResult(w, r)
}

// handleFeed handles the route "GET /api/tweets".
// Unlike every other endpoint, a failure here is reported in-band: any
// database error becomes a 200-status body with result=false and
// error_type "database_error". Clients of the original API depend on
// this asymmetry.
func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	user := s.getUserFromContext(r.Context())

	feed, err := s.ts.Feed(user.ID)
	if err != nil {
		s.logger.Error("feed computation failed", zap.Int("user_id", user.ID), zap.Error(err))
		response := struct {
			Result       bool   `json:"result"`
			ErrorType    string `json:"error_type"`
			ErrorMessage string `json:"error_message"`
		}{
			Result:       false,
			ErrorType:    "database_error",
			ErrorMessage: err.Error(),
		}
		if err := json.NewEncoder(w).Encode(&response); err != nil {
			errs.LogError(r, err)
		}
		return
	}

	response := struct {
		Result bool               `json:"result"`
		Tweets []domain.FeedTweet `json:"tweets"`
	}{
		Result: true,
		Tweets: feed,
	}
	if err := json.NewEncoder(w).Encode(&response); err != nil {
		errs.LogError(r, err)
	}
}

// writeResult writes the plain success envelope shared by the delete and
// follow style endpoints.
func writeResult(w http.ResponseWriter, r *http.Request) {
	response := struct {
		Result bool `json:"result"`
	}{
		Result: true,
	}
	if err := json.NewEncoder(w).Encode(&response); err != nil {
		errs.LogError(r, err)
	}
}
