package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEventType(t *testing.T) {
	got, err := ParseEventType(" hackathon ")
	assert.NoError(t, err)
	assert.Equal(t, TypeHackathon, got)

	_, err = ParseEventType("party")
	assert.ErrorIs(t, err, ErrInvalidEventType)
}

func TestKindAndCode_SurviveWrapping(t *testing.T) {
	err := fmt.Errorf("approve proposal 3: %w", ErrVenueUnavailable)

	assert.Equal(t, KindConflict, KindOf(err))
	assert.Equal(t, "venue_unavailable", Code(err))
	assert.True(t, errors.Is(err, ErrVenueUnavailable))

	plain := errors.New("boom")
	assert.Equal(t, KindInternal, KindOf(plain))
	assert.Empty(t, Code(plain))
}

func TestTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.False(t, StatusPublished.Terminal())
}
