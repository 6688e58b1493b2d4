package chains

import "errors"

var ErrUnknownChain = errors.New("no preset found for chain")
