package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/dtroode/microblog-server/internal/model"
)

func runHandleError(err error) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	handleError(c, err)
	return w
}

func TestHandleError_Validation(t *testing.T) {
	ve := model.NewValidationError()
	ve.Add("name", "Name can't be blank")
	ve.Add("email", "Email is invalid")

	w := runHandleError(ve)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Name can't be blank")
	assert.Contains(t, w.Body.String(), "Email is invalid")
}

func TestHandleError_NotFound(t *testing.T) {
	w := runHandleError(model.ErrNotFound)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleError_Forbidden(t *testing.T) {
	w := runHandleError(model.ErrForbidden)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHandleError_TokenErrors(t *testing.T) {
	for _, err := range []error{model.ErrTokenRevoked, model.ErrTokenExpired, model.ErrTokenMismatch} {
		w := runHandleError(err)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}
}

func TestHandleError_Internal(t *testing.T) {
	w := runHandleError(errors.New("connection reset"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection reset")
}
