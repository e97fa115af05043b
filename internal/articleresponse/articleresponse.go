// Package articleresponse builds the envelope returned for every
// invocation, whichever route served it.
package articleresponse

import (
	"encoding/json"
	"net/http"
)

// InternalErrorMessage is the only failure text a caller ever sees.
const InternalErrorMessage = "Internal server error"

// Envelope is the uniform response shape handed back to the gateway.
type Envelope struct {
	StatusCode      int               `json:"statusCode"`
	Headers         map[string]string `json:"headers"`
	IsBase64Encoded bool              `json:"isBase64Encoded"`
	Body            string            `json:"body"`
}

// Headers returns a fresh copy of the fixed response headers.
func Headers() map[string]string {
	return map[string]string{
		"Content-Type":                 "application/json",
		"Access-Control-Allow-Headers": "Authorization,Content-Type,X-Api-Key",
		"Access-Control-Allow-Origin":  "*",
	}
}

type errorBody struct {
	Message string `json:"message"`
}

// OK wraps payload in a 200 envelope. It fails only when payload cannot
// be marshalled.
func OK(payload interface{}) (Envelope, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}

	return newEnvelope(http.StatusOK, body), nil
}

// InternalError is the generic 500 envelope.
func InternalError() Envelope {
	// nolint
	body, _ := json.Marshal(errorBody{Message: InternalErrorMessage})

	return newEnvelope(http.StatusInternalServerError, body)
}

func newEnvelope(status int, body []byte) Envelope {
	return Envelope{
		StatusCode:      status,
		Headers:         Headers(),
		IsBase64Encoded: false,
		Body:            string(body),
	}
}
