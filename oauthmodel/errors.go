package oauthmodel

import "errors"

var (
	ErrMissingClientID = errors.New("client id is not configured")
	ErrMissingScope    = errors.New("scope is not configured")
	ErrMissingAuthURL  = errors.New("authorization endpoint is not configured")
)
