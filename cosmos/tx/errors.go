package tx

import "errors"

var (
	ErrMissingFee      = errors.New("fee must be provided, it is never defaulted by the signer")
	ErrInvalidFee      = errors.New("fee gas limit must be positive")
	ErrNoMessages      = errors.New("at least one message is required")
	ErrMissingChainID  = errors.New("chain id must be provided")
	ErrAccountNotFound = errors.New("account does not exist on chain, send some tokens there before trying to query sequence")

	ErrMalformedTxHash      = errors.New("received ill-formatted txhash, must be non-empty upper-case hex")
	ErrMalformedLogs        = errors.New("unable to parse logs in broadcast response")
	ErrMalformedData        = errors.New("unable to decode data in broadcast response")
	ErrUnknownResponseShape = errors.New("unrecognized broadcast response shape")

	ErrInvalidGasPrice = errors.New("invalid gas price")
	ErrUnknownMsgKind  = errors.New("no gas limit configured for message kind")
)
