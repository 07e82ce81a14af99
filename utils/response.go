package utils

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"successspace/errs"
)

func RespondWithError(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, map[string]string{"error": msg})
}

// Sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// RespondError maps a typed application error to its status code.
func RespondError(w http.ResponseWriter, err error) {
	var (
		vErr *errs.ValidationError
		aErr *errs.AuthError
		cErr *errs.ConfigurationError
		pErr *errs.PaymentError
		nErr *errs.NotFoundError
		sErr *errs.StorageError
	)
	switch {
	case errors.As(err, &vErr):
		RespondWithError(w, http.StatusBadRequest, vErr.Msg)
	case errors.As(err, &aErr):
		RespondWithError(w, http.StatusUnauthorized, aErr.Msg)
	case errors.As(err, &cErr):
		RespondWithError(w, http.StatusBadRequest, cErr.Msg)
	case errors.As(err, &pErr):
		RespondWithError(w, http.StatusPaymentRequired, pErr.Msg)
	case errors.As(err, &nErr):
		RespondWithError(w, http.StatusNotFound, nErr.Msg)
	case errors.As(err, &sErr):
		log.Printf("storage error: %v", err)
		RespondWithError(w, http.StatusInternalServerError, "Server error")
	default:
		log.Printf("unhandled error: %v", err)
		RespondWithError(w, http.StatusInternalServerError, "Server error")
	}
}

type M map[string]interface{}
