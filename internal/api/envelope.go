package api

import (
	"errors"
	"net/http"

	"github.com/hyperifyio/gopages/internal/aggregate"
	"github.com/hyperifyio/gopages/internal/pipeline"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusFailed  = "failed"

	genericFailureMessage = "Something went wrong"
)

// PageEnvelope is the 200 response body.
type PageEnvelope struct {
	Status string           `json:"status"`
	Pages  []aggregate.Page `json:"pages"`
}

// ErrorEnvelope is the 4xx/5xx response body. Message never carries
// internal error detail.
type ErrorEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Success wraps pages in the success envelope. A nil slice is encoded as [].
func Success(pages []aggregate.Page) (int, PageEnvelope) {
	if pages == nil {
		pages = []aggregate.Page{}
	}
	return http.StatusOK, PageEnvelope{Status: StatusSuccess, Pages: pages}
}

// Failure maps err to a status code and envelope: a missing query is a 400,
// everything else a generic 500.
func Failure(err error) (int, ErrorEnvelope) {
	if errors.Is(err, pipeline.ErrQueryRequired) {
		return http.StatusBadRequest, ErrorEnvelope{Status: StatusError, Message: pipeline.ErrQueryRequired.Error()}
	}
	return http.StatusInternalServerError, ErrorEnvelope{Status: StatusFailed, Message: genericFailureMessage}
}
