package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRepositoryID(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"alpha", true},
		{"Beta-2", true},
		{"under_score", true},
		{"", false},
		{"with.dot", false},
		{"with space", false},
		{"semi;colon", false},
		{"$(whoami)", false},
		{"a:b", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateRepositoryID(tt.input)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidRepositoryID)
			}
		})
	}
}
