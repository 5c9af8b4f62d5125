package mongostore

import (
	"errors"
	"fmt"

	"go-shop/store"

	"go.mongodb.org/mongo-driver/mongo"
)

// Server error codes that mean the collections were not provisioned the way
// this build expects.
const (
	codeNamespaceNotFound         = 26
	codeNamespaceExists           = 48
	codeDocumentValidationFailure = 121
)

// translate maps driver errors onto the store sentinels
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	}
	var se mongo.ServerError
	if errors.As(err, &se) && (se.HasErrorCode(codeDocumentValidationFailure) || se.HasErrorCode(codeNamespaceNotFound)) {
		return fmt.Errorf("%w: %v", store.ErrSchema, err)
	}
	return err
}
