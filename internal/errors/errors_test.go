package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"statbook/domain/core"
)

func TestWrap_KeepsDomainClassification(t *testing.T) {
	err := Wrap(core.NewColumnNotFoundError("price"), "frequency table")
	assert.Equal(t, CodeNotFound, GetCode(err))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))
	assert.True(t, stderrors.Is(err, core.ErrColumnNotFound))
	assert.Contains(t, err.Error(), "frequency table")

	err = Wrapf(core.NewSampleCountError("friedman", ">= 3", 2), "running %s", "friedman")
	assert.Equal(t, CodeInvalidInput, GetCode(err))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestWrap_Nil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "nothing"))
	assert.Nil(t, Wrapf(nil, "nothing %d", 1))
	assert.Nil(t, WithCode(CodeNotFound, nil))
}

func TestGetCode_Defaults(t *testing.T) {
	assert.Equal(t, CodeInternalError, GetCode(fmt.Errorf("boom")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(fmt.Errorf("boom")))
	assert.Equal(t, CodeConfigInvalid, GetCode(ConfigInvalid("bad alpha")))
}

func TestWithCode(t *testing.T) {
	err := WithCode(CodeDatabaseError, fmt.Errorf("connection refused"))
	assert.True(t, IsAppError(err))
	assert.Equal(t, CodeDatabaseError, GetCode(err))
	assert.ErrorContains(t, err, "connection refused")
}
