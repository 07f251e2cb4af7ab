package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesByCode(t *testing.T) {
	clone := Clone(ErrClassSlotTaken, "class 5-A is busy")
	assert.True(t, errors.Is(clone, ErrClassSlotTaken))
	assert.False(t, errors.Is(clone, ErrTeacherSlotTaken))
	assert.Equal(t, "class already has a lesson in this slot", ErrClassSlotTaken.Message)

	wrapped := fmt.Errorf("toggle: %w", Wrap(errors.New("boom"), ErrInvalidPeriod.Code, ErrInvalidPeriod.Status, "bad period"))
	assert.True(t, errors.Is(wrapped, ErrInvalidPeriod))
}

func TestFromError(t *testing.T) {
	assert.Nil(t, FromError(nil))

	appErr := FromError(fmt.Errorf("outer: %w", ErrSessionVersionStale))
	assert.Equal(t, "SESSION_VERSION_CONFLICT", appErr.Code)
	assert.Equal(t, http.StatusConflict, appErr.Status)

	internal := FromError(errors.New("disk full"))
	assert.Equal(t, ErrInternal.Code, internal.Code)
	assert.Equal(t, "internal server error: disk full", internal.Error())
}

func TestCloneKeepsMessageWhenEmpty(t *testing.T) {
	assert.Nil(t, Clone(nil, "x"))
	assert.Equal(t, ErrNotFound.Message, Clone(ErrNotFound, "").Message)
}
