package coding

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// FlexUint64 decodes from either a JSON number or a decimal string. REST APIs render 64 bit
// integers both ways depending on version. Empty strings and null decode to zero.
type FlexUint64 uint64

func (f *FlexUint64) UnmarshalJSON(data []byte) error {
	raw := string(data)
	if raw == "null" {
		*f = 0
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		if raw == "" {
			*f = 0
			return nil
		}
	}

	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("expected an unsigned integer, got %s", string(data))
	}

	*f = FlexUint64(parsed)
	return nil
}

func (f FlexUint64) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatUint(uint64(f), 10))
}
