package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindStatus(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, KindUnauthorized.Status())
	assert.Equal(t, http.StatusForbidden, KindForbidden.Status())
	assert.Equal(t, http.StatusUnprocessableEntity, KindValidation.Status())
	assert.Equal(t, http.StatusNotFound, KindNotFound.Status())
	assert.Equal(t, http.StatusInternalServerError, KindInternal.Status())
}

func TestDefaults(t *testing.T) {
	assert.Equal(t, MsgNotFound, NotFound("").Message)
	assert.Equal(t, MsgNoStore, Forbidden("").Message)
	assert.Equal(t, MsgUnauthorized, Unauthorized("").Message)
	assert.Equal(t, "Tarefa não encontrada", NotFound("Tarefa não encontrada").Message)
}

func TestFromAndIs(t *testing.T) {
	cause := errors.New("connection reset")
	wrapped := fmt.Errorf("load: %w", NotFound(""))

	assert.True(t, Is(wrapped, KindNotFound))
	assert.Equal(t, KindNotFound, From(wrapped).Kind)

	internal := From(cause)
	assert.Equal(t, KindInternal, internal.Kind)
	assert.Equal(t, MsgInternal, internal.Message)
	assert.ErrorIs(t, internal, cause)
}

func TestValidation(t *testing.T) {
	fields := FieldErrors{}
	fields.Add("titulo", "O campo titulo é obrigatório.")
	fields.Add("titulo", "outra")

	err := Validation(fields)
	assert.Equal(t, KindValidation, err.Kind)
	assert.Len(t, err.Fields["titulo"], 2)
	assert.Contains(t, err.Error(), MsgValidation)
}
