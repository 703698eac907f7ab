package mongo

import "errors"

var (
	ErrMissingURL             = errors.New("mongodb connection url is not set")
	ErrFailedToConnectToMongo = errors.New("failed to connect to mongodb")
	ErrHealthcheckFailed      = errors.New("mongodb healthcheck failed")
)
