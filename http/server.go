package http

import (
	"net/http"
	"strconv"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"minitweet/crud"
	"minitweet/domain"
)

// Server provides the http functionality of this app: routing, request
// handling, and middleware. It authenticates requests via the api-key
// header before handing things over to one of the crud services.
type Server struct {
	router   *mux.Router
	logger   *zap.Logger
	validate *validator.Validate
	us       domain.UserService
	ts       domain.TweetService
	fs       domain.FollowService
	ls       domain.LikeService
	ms       domain.MediaService
}

// NewServer returns a new instance of the server, registers all routes and
// gives their handlers access to the passed in services. mediaDir is the
// directory uploaded files are re-served from under /media/. When
// withSentry is set, the sentry recovery middleware wraps every request.
func NewServer(logger *zap.Logger, mediaDir string, withSentry bool, services *crud.Services) *Server {
	s := &Server{
		router:   mux.NewRouter(),
		logger:   logger,
		validate: validator.New(),
		us:       services.User,
		ts:       services.Tweet,
		fs:       services.Follow,
		ls:       services.Like,
		ms:       services.Media,
	}

	if withSentry {
		sentryMw := sentryhttp.New(sentryhttp.Options{Repanic: true})
		s.router.Use(sentryMw.Handle)
	}

	// All API routes share the content-type and api-key middleware. Routes
	// that must not be reached unauthenticated are additionally wrapped in
	// requireAuth at registration time.
	api := s.router.PathPrefix("/api").Subrouter()
	s.registerUserRoutes(api)
	s.registerMediaRoutes(api)
	s.registerTweetRoutes(api)
	s.registerLikeRoutes(api)
	s.registerFollowRoutes(api)
	api.Use(setContentTypeJSON, s.checkUser)

	// Uploaded media is re-served statically.
	s.router.PathPrefix(domain.MediaURLPrefix).Handler(
		http.StripPrefix(domain.MediaURLPrefix, http.FileServer(http.Dir(mediaDir))))

	return s
}

// Handler exposes the router, mainly so tests can drive the server through
// httptest without a listening socket.
func (s *Server) Handler() http.Handler {
	return s.router
}

// The setContentTypeJSON middleware sets the content type to "application/json".
func setContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// Run starts to listen and serve on the specified port.
func (s *Server) Run(port int) error {
	return http.ListenAndServe(":"+strconv.Itoa(port), s.router)
}
