package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"promptito-be/pkg/builder/compose"
	"promptito-be/pkg/builder/segment"
	"promptito-be/pkg/schema"

	"github.com/stretchr/testify/assert"
)

func TestCode(t *testing.T) {
	sentinel := errors.New("db down")
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"plain", sentinel, http.StatusInternalServerError},
		{"coded", WithCode(sentinel, http.StatusServiceUnavailable), http.StatusServiceUnavailable},
		{"wrapped sentinel", fmt.Errorf("load prompt: %w", ErrNotFound), http.StatusNotFound},
		{"blocked", fmt.Errorf("publish: %w", &compose.BlockedError{Missing: []segment.ID{segment.Goal}}), http.StatusUnprocessableEntity},
		{"schema", &schema.ValidationError{Prefix: "x", Issues: []string{"y"}}, http.StatusBadRequest},
		{"bad request", BadRequest("reason is required"), http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Code(tt.err))
		})
	}
}

func TestWithCodeKeepsChain(t *testing.T) {
	sentinel := errors.New("boom")
	err := WithCode(sentinel, http.StatusTeapot)
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, "boom", err.Error())
	assert.Nil(t, WithCode(nil, http.StatusTeapot))
}

func TestBlocked(t *testing.T) {
	b, ok := Blocked(fmt.Errorf("x: %w", &compose.BlockedError{Missing: []segment.ID{segment.Role}}))
	assert.True(t, ok)
	assert.Equal(t, []segment.ID{segment.Role}, b.Missing)

	_, ok = Blocked(ErrNotFound)
	assert.False(t, ok)
}
