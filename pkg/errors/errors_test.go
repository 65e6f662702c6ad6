package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRejectedCarriesServerMessage(t *testing.T) {
	err := Rejected(http.StatusConflict, "username taken")

	assert.True(t, IsRejected(err))
	assert.False(t, IsUnauthorized(err))
	assert.Equal(t, "username taken", ServerMessage(err))
	assert.Equal(t, "username taken", GetMessage(err))
	assert.Equal(t, CodeRejected, GetCode(err))
}

func TestRejectedUnauthorized(t *testing.T) {
	err := fmt.Errorf("sign in: %w", Rejected(http.StatusUnauthorized, ""))

	assert.True(t, IsRejected(err))
	assert.True(t, IsUnauthorized(err))
	assert.Empty(t, ServerMessage(err))
}

func TestTransportHasNoServerMessage(t *testing.T) {
	err := Transport(fmt.Errorf("dial tcp: connection refused"))

	assert.True(t, IsRequestFailed(err))
	assert.False(t, IsRejected(err))
	assert.Empty(t, ServerMessage(err))
	assert.Contains(t, GetMessage(err), "connection refused")
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, "nothing"))
	assert.NoError(t, WrapWithCode(nil, "x", "nothing"))
}
