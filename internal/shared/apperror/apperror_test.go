package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/pathakpriyanka774/hrms-lite/internal/shared/apperror"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

func TestToHTTP(t *testing.T) {
	t.Run("app error keeps its shape", func(t *testing.T) {
		got := apperror.ToHTTP(apperror.ErrTooManyRequests)
		assert.Equal(t, http.StatusTooManyRequests, got.Status)
		assert.Equal(t, apperror.CodeRateLimited, got.Code)
		assert.Equal(t, "Too many requests", got.Message)
	})

	t.Run("wrapped app error is found in the chain", func(t *testing.T) {
		err := fmt.Errorf("mark: %w", apperror.New(apperror.CodeConflict, "taken", http.StatusConflict))
		got := apperror.ToHTTP(err)
		assert.Equal(t, http.StatusConflict, got.Status)
		assert.Equal(t, "taken", got.Message)
	})

	t.Run("plain error is hidden", func(t *testing.T) {
		got := apperror.ToHTTP(errors.New("pq: connection refused"))
		assert.Equal(t, http.StatusInternalServerError, got.Status)
		assert.Equal(t, apperror.CodeInternalError, got.Code)
		assert.Equal(t, "Internal server error", got.Message)
	})
}

func TestWrap(t *testing.T) {
	assert.Nil(t, apperror.Wrap(nil, apperror.CodeInternalError, "x", http.StatusInternalServerError))

	cause := errors.New("disk full")
	err := apperror.Wrap(cause, apperror.CodeInternalError, "save failed", http.StatusInternalServerError)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "save failed: disk full", err.Error())
}

func TestHasCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", apperror.ErrNotFound)
	assert.True(t, apperror.HasCode(err, apperror.CodeNotFound))
	assert.False(t, apperror.HasCode(err, apperror.CodeConflict))
	assert.False(t, apperror.HasCode(errors.New("x"), apperror.CodeNotFound))
}

type signup struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	Email      string `json:"email,omitempty" binding:"required,email"`
	Department string `binding:"required"`
}

func TestMapValidationError(t *testing.T) {
	apperror.Init()

	t.Run("required field uses json name", func(t *testing.T) {
		err := apperror.MapValidationError(binding.Validator.ValidateStruct(signup{Email: "a@b.co", Department: "Ops"}))
		got := apperror.ToHTTP(err)
		assert.Equal(t, http.StatusBadRequest, got.Status)
		assert.Equal(t, "Employee Id is required", got.Message)
	})

	t.Run("other tags are reported as invalid", func(t *testing.T) {
		err := apperror.MapValidationError(binding.Validator.ValidateStruct(signup{EmployeeID: "E1", Email: "nope", Department: "Ops"}))
		assert.Equal(t, "Email is invalid", apperror.ToHTTP(err).Message)
	})

	t.Run("untagged field keeps its go name", func(t *testing.T) {
		err := apperror.MapValidationError(binding.Validator.ValidateStruct(signup{EmployeeID: "E1", Email: "a@b.co"}))
		assert.Equal(t, "Department is required", apperror.ToHTTP(err).Message)
	})

	t.Run("decode errors become a generic bad request", func(t *testing.T) {
		err := apperror.MapValidationError(errors.New("unexpected EOF"))
		got := apperror.ToHTTP(err)
		assert.Equal(t, apperror.CodeInvalidInput, got.Code)
		assert.Equal(t, "Invalid request body", got.Message)
	})
}
