package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleInput struct {
	Name  string   `json:"name" validate:"required,max=5"`
	Mood  string   `json:"mood" validate:"omitempty,oneof=happy sad"`
	Score *int     `json:"score" validate:"omitempty,gte=0,lte=10"`
	Tags  []string `json:"tags" validate:"max=2"`
}

func TestValidate_Messages(t *testing.T) {
	require.NoError(t, Validate(&sampleInput{Name: "萌萌"}))

	err := Validate(&sampleInput{})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "name is required")

	err = Validate(&sampleInput{Name: "toolong"})
	assert.Contains(t, err.Error(), "name must be at most 5 characters")

	err = Validate(&sampleInput{Name: "ok", Mood: "angry"})
	assert.Contains(t, err.Error(), "mood must be one of: happy, sad")

	bad := 11
	err = Validate(&sampleInput{Name: "ok", Score: &bad})
	assert.Contains(t, err.Error(), "score must be less than or equal to 10")

	err = Validate(&sampleInput{Name: "ok", Tags: []string{"a", "b", "c"}})
	assert.Contains(t, err.Error(), "tags must have at most 2 items")
}
