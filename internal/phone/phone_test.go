package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatTenDigits(t *testing.T) {
	assert.Equal(t, "+1 720-123-4567", Format("7201234567"))
}

func TestFormatStripsCountryCode(t *testing.T) {
	assert.Equal(t, "+1 720-123-4567", Format("17201234567"))
	assert.Equal(t, "+1 720-123-4567", Format("1 (720) 123-4567"))
}

func TestFormatIdempotent(t *testing.T) {
	canonical := "+1 720-123-4567"
	assert.Equal(t, canonical, Format(canonical))
	assert.Equal(t, canonical, Format(Format(canonical)))
}

func TestFormatPartialInput(t *testing.T) {
	assert.Equal(t, "+1 ", Format(""))
	assert.Equal(t, "+1 72", Format("72"))
	assert.Equal(t, "+1 720", Format("720"))
	assert.Equal(t, "+1 720-1", Format("7201"))
	assert.Equal(t, "+1 720-123", Format("720123"))
	assert.Equal(t, "+1 720-123-4", Format("7201234"))
}

func TestFormatTruncatesExcessDigits(t *testing.T) {
	assert.Equal(t, "+1 720-123-4567", Format("7201234567999"))
}

func TestValid(t *testing.T) {
	assert.True(t, Valid(Format("7201234567")))
	assert.True(t, Valid(Format("17201234567")))
	assert.False(t, Valid(Format("123")))
	assert.False(t, Valid(Format("")))
	assert.False(t, Valid("+1 720-123-456"))
}
