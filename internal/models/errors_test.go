package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKind(t *testing.T) {
	assert.Equal(t, "", ErrorKind(nil))
	assert.Equal(t, "missing_credential", ErrorKind(ErrMissingCredential))
	assert.Equal(t, "invalid_reference", ErrorKind(fmt.Errorf("%w: %q", ErrInvalidReference, "x")))
	assert.Equal(t, "not_found", ErrorKind(fmt.Errorf("resolve: %w", ErrResolutionNotFound)))
	assert.Equal(t, "upstream", ErrorKind(fmt.Errorf("%w: search: %w", ErrUpstream, errors.New("boom"))))
	assert.Equal(t, "internal", ErrorKind(errors.New("boom")))
}

func TestReferenceKindString(t *testing.T) {
	assert.Equal(t, "channel_id", ReferenceCanonicalID.String())
	assert.Equal(t, "custom_name", ReferenceCustomName.String())
	assert.Equal(t, "handle", ReferenceHandle.String())
	assert.Equal(t, "invalid", ReferenceInvalid.String())
}
