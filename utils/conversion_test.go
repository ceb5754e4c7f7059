package utils

import (
	"errors"
	"testing"

	"itdocsapi/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	id, err := ParseID("id", "42")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	for _, raw := range []string{"0", "-1", "abc", ""} {
		_, err := ParseID("site_id", raw)
		var verr *apperr.ValidationError
		require.True(t, errors.As(err, &verr), raw)
		assert.Equal(t, "site_id", verr.Field)
	}
}

func TestRedact(t *testing.T) {
	in := struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Key      string `json:"key"`
	}{Username: "admin", Password: "s3cret"}

	out, err := Redact(in, []string{"password", "key", "missing"})
	require.NoError(t, err)

	assert.Equal(t, "admin", out["username"])
	assert.Equal(t, RedactedValue, out["password"])
	assert.Equal(t, "", out["key"])
	assert.NotContains(t, out, "missing")
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)
	assert.True(t, CheckPassword(hash, "correct horse"))
	assert.False(t, CheckPassword(hash, "battery staple"))
}
