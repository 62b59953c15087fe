package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"minitweet/domain"
	"minitweet/errs"
	"minitweet/storage"
)

// registerMediaRoutes is a helper for registering all Media routes.
func (s *Server) registerMediaRoutes(r *mux.Router) {
	// Upload a media file. The returned id can be referenced by a
	// subsequent tweet creation.
	r.HandleFunc("/medias", s.requireAuth(s.handleUploadMedia)).Methods("POST")
}

// handleUploadMedia handles the route "POST /api/medias".
// It stores the uploaded file under a generated name in the upload
// directory and registers a Media row for it. The served file appears
// under /media/<generated-filename>.
func (s *Server) handleUploadMedia(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(storage.MaxUploadSize); err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid multipart body."))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "A file field is required."))
		return
	}
	defer file.Close()

	upload := domain.Upload{
		File:     file,
		Filename: header.Filename,
	}
	media, err := s.ms.Create(&upload)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	response := struct {
		Result  bool `json:"result"`
		MediaID int  `json:"media_id"`
	}{
		Result:  true,
		MediaID: media.ID,
	}
	if err := json.NewEncoder(w).Encode(&response); err != nil {
		errs.LogError(r, err)
	}
}
