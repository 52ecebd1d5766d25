package slug

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Hello World", "hello-world"},
		{"  Guía de Campaña!  ", "guia-de-campana"},
		{"Go & gRPC -- 2025", "go-grpc-2025"},
		{"already-slugged", "already-slugged"},
		{"日本語", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Make(tt.in))
		})
	}
}

func TestMakeOr(t *testing.T) {
	assert.Equal(t, "prompt", MakeOr("???", "prompt"))
	assert.Equal(t, "mine", MakeOr("Mine", "prompt"))
}

func TestWithSuffix(t *testing.T) {
	got := WithSuffix("my-prompt")
	assert.Regexp(t, regexp.MustCompile(`^my-prompt-[0-9a-z]{5}$`), got)
	assert.Len(t, Suffix(8), 8)
}
