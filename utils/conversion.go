package utils

import (
	"encoding/json"
	"fmt"
	"strconv"

	"itdocsapi/pkg/apperr"
)

// RedactedValue replaces secrets in redacted responses.
const RedactedValue = "********"

// ParseID parses a path or query identifier. Zero and negative values are rejected.
func ParseID(field, raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Validation(field, "%q is not a valid identifier", raw)
	}
	return uint(id), nil
}

// Redact renders v as a JSON object with the given fields masked. Empty
// values stay empty so callers can still tell a secret is unset.
func Redact(v interface{}, fields []string) (map[string]interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode value for redaction: %w", err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode value for redaction: %w", err)
	}
	for _, f := range fields {
		if val, ok := out[f]; ok && val != "" && val != nil {
			out[f] = RedactedValue
		}
	}
	return out, nil
}
