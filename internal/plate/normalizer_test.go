package plate

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		want       string
		wantFormat Format
		wantErr    error
	}{
		{
			name:       "standard plate",
			raw:        "MH12AB1234",
			want:       "MH12AB1234",
			wantFormat: FormatStandard,
		},
		{
			name:       "standard plate with single series letter",
			raw:        "KA05M9876",
			want:       "KA05M9876",
			wantFormat: FormatStandard,
		},
		{
			name:       "lowercase with separators",
			raw:        "mh 12-ab 1234",
			want:       "MH12AB1234",
			wantFormat: FormatStandard,
		},
		{
			name:       "bharat series lowercase",
			raw:        "26bh1234aa",
			want:       "26BH1234AA",
			wantFormat: FormatBharatSeries,
		},
		{
			name:       "bharat series single letter",
			raw:        "22 BH 9999 A",
			want:       "22BH9999A",
			wantFormat: FormatBharatSeries,
		},
		{
			name:       "delhi single digit rto",
			raw:        "DL1CAB1234",
			want:       "DL1CAB1234",
			wantFormat: FormatDelhiSpecial,
		},
		{
			name:       "delhi two digit rto prefers standard",
			raw:        "DL12CA1234",
			want:       "DL12CA1234",
			wantFormat: FormatStandard,
		},
		{
			name:       "standard plate with incidental BH series",
			raw:        "MH12BH1234",
			want:       "MH12BH1234",
			wantFormat: FormatStandard,
		},
		{
			name:    "too short after stripping",
			raw:     "MH-12",
			wantErr: ErrTooShort,
		},
		{
			name:    "too long",
			raw:     "MH12AB1234567",
			wantErr: ErrTooLong,
		},
		{
			name:    "length ok but unclassifiable",
			raw:     "1234ABCD",
			wantErr: ErrUnrecognizedFormat,
		},
		{
			name:    "empty input",
			raw:     "",
			wantErr: ErrTooShort,
		},
		{
			name:    "punctuation only",
			raw:     "--- ///",
			wantErr: ErrTooShort,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Number)
			assert.Equal(t, tt.wantFormat, got.Format)
		})
	}
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("MH12AB1234"))
	assert.False(t, IsValid("not a plate"))
}

// Re-normalizing any accepted plate must be a no-op with the same
// classification.
func TestNormalizeIdempotent(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("normalize is idempotent on accepted input", prop.ForAll(
		func(state string, rto int, series string, number int) bool {
			raw := state + pad2(rto) + series + pad4(number)
			first, err := Normalize(raw)
			if err != nil {
				return true // not accepted, nothing to check
			}
			second, err := Normalize(first.Number)
			return err == nil && second == first
		},
		gen.RegexMatch(`[A-Z]{2}`),
		gen.IntRange(0, 99),
		gen.RegexMatch(`[A-Z]{1,2}`),
		gen.IntRange(0, 9999),
	))

	properties.Property("standard plates never classify as bharat series", prop.ForAll(
		func(state string, rto int, number int) bool {
			// Force the series to the literal BH to attack the precedence rule.
			p, err := Normalize(state + pad2(rto) + "BH" + pad4(number))
			return err == nil && p.Format == FormatStandard
		},
		gen.RegexMatch(`[A-Z]{2}`),
		gen.IntRange(0, 99),
		gen.IntRange(0, 9999),
	))

	properties.TestingRun(t)
}

func pad2(n int) string {
	return string([]byte{'0' + byte(n/10%10), '0' + byte(n%10)})
}

func pad4(n int) string {
	return pad2(n/100) + pad2(n)
}
