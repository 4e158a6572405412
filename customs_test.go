package customs_test

import (
	"errors"
	"testing"

	"github.com/customs-bot/customs"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := customs.Errorf(customs.EINVALID, "price %d out of range", -5)

	assert.Equal(t, customs.EINVALID, customs.ErrorCode(err))
	assert.Equal(t, "price -5 out of range", customs.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, customs.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, customs.EINTERNAL, customs.ErrorCode(errors.New("boom")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, customs.ErrorMessage(nil))
}
