package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHumanizeParam(t *testing.T) {
	tests := []struct {
		param string
		want  string
	}{
		{"id", "ID"},
		{"commentId", "comment ID"},
		{"username", "username"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, humanizeParam(tt.param))
	}
}
