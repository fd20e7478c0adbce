package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"mideck/domain/core"
)

func TestFromDomain(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"page not found", core.NewPageNotFoundError("9_X"), CodePageNotFound, http.StatusNotFound},
		{"content not found", fmt.Errorf("%w: content", core.ErrNotFound), CodeNotFound, http.StatusNotFound},
		{"invalid input", fmt.Errorf("%w: sample_size", core.ErrInvalidInput), CodeInvalidInput, http.StatusBadRequest},
		{"invalid setting", core.ErrInvalidSetting, CodeInvalidInput, http.StatusBadRequest},
		{"anything else", stderrors.New("boom"), CodeInternalError, http.StatusInternalServerError},
		{"already classified", ConfigInvalid("bad port"), CodeConfigInvalid, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := FromDomain(tt.err)
			assert.Equal(t, tt.code, appErr.Code)
			assert.Equal(t, tt.status, HTTPStatus(appErr.Code))
			assert.ErrorIs(t, appErr, tt.err)
		})
	}

	assert.Nil(t, FromDomain(nil))
}

func TestFromDomainHidesInternalMessages(t *testing.T) {
	appErr := FromDomain(stderrors.New("secret path /etc/x"))
	assert.Equal(t, "internal error", appErr.Message)
}

func TestWrapKeepsCode(t *testing.T) {
	err := Wrap(InvalidInput("bad"), "simulate")
	assert.Equal(t, CodeInvalidInput, GetCode(err))
	assert.Equal(t, "simulate: bad: invalid input", err.Error())
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	err = Wrap(stderrors.New("io"), "read")
	assert.Equal(t, CodeInternalError, GetCode(err))

	assert.Nil(t, Wrap(nil, "noop"))
	assert.Equal(t, "UNKNOWN", GetCode(stderrors.New("plain")))
}
