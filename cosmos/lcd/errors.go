package lcd

import "errors"

var (
	ErrUnexpectedStatus     = errors.New("received non-OK HTTP status")
	ErrMalformedResponse    = errors.New("malformed LCD response")
	ErrNoChainID            = errors.New("node info did not include a chain id")
	ErrInvalidBroadcastMode = errors.New("invalid broadcast mode, must be one of sync, async or block")
	ErrInvalidURL           = errors.New("invalid LCD url")
)
