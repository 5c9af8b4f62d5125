package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go-shop/checkout"
	"go-shop/logging"
	"go-shop/middleware"
	"go-shop/store"
	"go-shop/utils"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const requestTimeout = 5 * time.Second

const msgForbidden = "You do not have permission to perform this action."

// respondWithErr maps err onto a status code. notFound is the message sent
// for store.ErrNotFound.
func respondWithErr(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case checkout.IsValidation(err):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound):
		utils.RespondWithError(w, http.StatusNotFound, notFound)
	case errors.Is(err, store.ErrDuplicate):
		utils.RespondWithError(w, http.StatusBadRequest, "A record with these values already exists")
	default:
		msg := "Internal server error"
		for _, sentinel := range []error{checkout.ErrStorageNotReady, checkout.ErrOrderCreate, checkout.ErrOrderItemCreate} {
			if errors.Is(err, sentinel) {
				msg = sentinel.Error()
				break
			}
		}
		fields := logging.Fields{Method: r.Method, Path: r.URL.Path, Code: http.StatusInternalServerError}
		if p, ok := middleware.PrincipalFromContext(r.Context()); ok {
			fields.UserID = p.UserID.Hex()
		}
		logging.Error(fields, err)
		utils.RespondWithError(w, http.StatusInternalServerError, msg)
	}
}

// pathID parses the {id} route variable
func pathID(r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	return id, err == nil
}

func requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), requestTimeout)
}
