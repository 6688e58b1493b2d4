package tx

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cosmos/cosmos-sdk/x/auth/migrations/legacytx"
)

// aminoJSON renders a message's sign bytes. Amino encoders panic on bad input, which is converted
// into an error here.
func aminoJSON(msg legacytx.LegacyMsg) (rendered json.RawMessage, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unable to render message %T: %w", msg, interfaceToError(r))
		}
	}()

	return json.RawMessage(msg.GetSignBytes()), nil
}

func interfaceToError(errorInterface interface{}) error {
	// Attempt to coerce into error
	err, ok := errorInterface.(error)
	if ok {
		return err
	}

	// Otherwise attempt to coerce into string
	stringifiedErr, ok := errorInterface.(string)
	if ok {
		return errors.New(stringifiedErr)
	}

	// Otherwise, just ditch with a generic error.
	return fmt.Errorf("recovered from a panic that was neither a string nor an error")
}
