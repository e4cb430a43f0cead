package transfer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testLimits() Limits {
	return Limits{ChunkSize: 4, MaxFileSize: 10, MaxParts: 3}
}

func TestValidatePart_ShouldRejectNonPositiveNumbers(t *testing.T) {
	// given
	limits := testLimits()

	// when / then
	err := limits.ValidatePart(0, 2, 4, 0)
	assert.True(t, IsKind(err, KindInvalidArgument))

	err = limits.ValidatePart(1, 0, 4, 0)
	assert.True(t, IsKind(err, KindInvalidArgument))
}

func TestValidatePart_ShouldRejectPartNumberBeyondTotal(t *testing.T) {
	// given
	limits := testLimits()

	// when
	err := limits.ValidatePart(3, 2, 4, 0)

	// then
	assert.True(t, IsKind(err, KindInvalidArgument))
}

func TestValidatePart_ShouldRejectTooManyParts(t *testing.T) {
	// given
	limits := testLimits()

	// when
	err := limits.ValidatePart(1, 4, 4, 0)

	// then
	assert.True(t, IsKind(err, KindCountLimit))
}

func TestValidatePart_ShouldRejectOversizedPartRegardlessOfPosition(t *testing.T) {
	// given
	limits := testLimits()

	// when / then
	err := limits.ValidatePart(1, 2, 5, 0)
	assert.True(t, IsKind(err, KindPartTooLarge))

	// The final part is size-capped too.
	err = limits.ValidatePart(2, 2, 5, 4)
	assert.True(t, IsKind(err, KindPartTooLarge))
}

func TestValidatePart_ShouldRejectShortNonFinalPart(t *testing.T) {
	// given
	limits := testLimits()

	// when
	err := limits.ValidatePart(1, 2, 3, 0)

	// then
	assert.True(t, IsKind(err, KindMalformedPart))
}

func TestValidatePart_ShouldAllowShortFinalPart(t *testing.T) {
	// given
	limits := testLimits()

	// when
	err := limits.ValidatePart(2, 2, 2, 4)

	// then
	assert.NoError(t, err)
}

func TestValidatePart_ShouldRejectPartCrossingQuotaNotBefore(t *testing.T) {
	// given
	limits := testLimits()

	// when: 8 bytes on disk, 2 more stay within the 10-byte quota
	err := limits.ValidatePart(3, 3, 2, 8)

	// then
	assert.NoError(t, err)

	// when: 8 bytes on disk, 3 more would cross it
	err = limits.ValidatePart(3, 3, 3, 8)

	// then
	assert.True(t, IsKind(err, KindQuotaExceeded))
}

func TestValidateName_ShouldRejectTraversalAttempts(t *testing.T) {
	for _, name := range []string{"", "..", ".", "a/b", `a\b`, "../etc/passwd"} {
		err := ValidateName(name)
		assert.True(t, IsKind(err, KindInvalidArgument), "name %q should be rejected", name)
	}
}

func TestValidateName_ShouldAcceptPlainFileNames(t *testing.T) {
	for _, name := range []string{"report.pdf", "Q1_Report.pdf", "archive.tar.gz", "noext"} {
		assert.NoError(t, ValidateName(name), "name %q should be accepted", name)
	}
}
