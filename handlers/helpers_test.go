package handlers

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageWindow(t *testing.T) {
	limit, offset := pageWindow("1", "25", 25)
	assert.Equal(t, 25, limit)
	assert.Equal(t, 0, offset)

	// Later pages advance the offset instead of shrinking the result.
	limit, offset = pageWindow("2", "20", 20)
	assert.Equal(t, 20, limit)
	assert.Equal(t, 20, offset)

	limit, offset = pageWindow("3", "50", 50)
	assert.Equal(t, 50, limit)
	assert.Equal(t, 100, offset)
}

func TestPageWindowFallsBackOnJunk(t *testing.T) {
	for _, page := range []string{"", "abc", "0", "-1"} {
		_, offset := pageWindow(page, "25", 25)
		assert.Equal(t, 0, offset, "page=%q", page)
	}
	for _, size := range []string{"", "xyz", "0", "-10"} {
		limit, _ := pageWindow("1", size, 25)
		assert.Equal(t, 25, limit, "size=%q", size)
	}
}

func TestProgramEnrollBillingModes(t *testing.T) {
	base := ProgramEnrollRequest{
		StudentID: uuid.New().String(),
	}

	for _, billing := range []string{"none", "monthly", "installments"} {
		req := base
		req.Billing = billing
		require.NoError(t, validate.Struct(req), "billing=%s", billing)
	}

	for _, billing := range []string{"", "single", "yearly"} {
		req := base
		req.Billing = billing
		require.Error(t, validate.Struct(req), "billing=%s", billing)
	}
}
