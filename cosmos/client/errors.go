package client

import "errors"

var (
	ErrUnknownSender  = errors.New("sender is not an account of the signer")
	ErrInvalidAddress = errors.New("invalid bech32 address")
	ErrEmptyAmount    = errors.New("amount must be positive")
	ErrNoChainID      = errors.New("unable to determine chain id")
)
