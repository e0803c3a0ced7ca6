package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/Anishpras/personal-blog-api/internal/apperror"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// respondError maps a service error to its status code and writes the
// human message plus the stable error kind. Internal details are logged,
// never sent to the client.
func respondError(w http.ResponseWriter, err error) {
	kind := apperror.KindOf(err)
	if kind == apperror.KindInternal {
		log.Printf("internal error: %v", err)
	}
	respondJSON(w, apperror.HTTPStatus(kind), errorBody{
		Error: err.Error(),
		Code:  string(kind),
	})
}

func respondValidation(w http.ResponseWriter, message string) {
	respondError(w, apperror.New(apperror.KindValidation, message))
}
