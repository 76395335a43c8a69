// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

//go:generate mockgen -source=transport.go -destination=mocks/transport_mock.go -package=mocks Transport

import (
	"context"
	"net/url"
)

const (
	// APIVersion is the version of the search API this client speaks.
	APIVersion = "5.0.0"
	// UserAgent identifies the client to the API.
	UserAgent = "piplapis/go/" + APIVersion
)

// TransportRequest is one API call: a form POST to URL.
type TransportRequest struct {
	URL    string
	Method string
	Form   url.Values
	Header map[string]string
}

// TransportResponse is what came back. Header keys are lower case.
type TransportResponse struct {
	StatusCode int
	Body       []byte
	Header     map[string]string
}

// Transport performs the network call. Implementations own retries,
// timeouts and rate limiting; Request.Send makes exactly one call.
type Transport interface {
	Send(ctx context.Context, req *TransportRequest) (*TransportResponse, error)
}
