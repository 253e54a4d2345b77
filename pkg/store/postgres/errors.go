package postgres

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrTokenExpired      = errors.New("the access token has expired")
	ErrConnectionFailed  = errors.New("connecting to the database failed, is VPN on?")
	ErrWriteNotSupported = errors.New("writing to the database is not supported")
)

var tokenMessages = []string{
	"token has expired",
	"is expired",
	"token has invalid",
	"new token and retry",
	"validating the access token",
}

var lookupMessages = []string{
	"no such host",
	"getaddrinfo failed",
	"server misbehaving",
}

// classify maps connection errors onto ErrTokenExpired or ErrConnectionFailed.
// Other errors are returned unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	for _, m := range tokenMessages {
		if strings.Contains(msg, m) {
			return fmt.Errorf("%w: %v", ErrTokenExpired, err)
		}
	}
	for _, m := range lookupMessages {
		if strings.Contains(msg, m) {
			return fmt.Errorf("%w: %v", ErrConnectionFailed, err)
		}
	}
	return err
}
