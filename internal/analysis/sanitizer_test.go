package analysis_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hia/internal/analysis"
	"hia/internal/config"
	"hia/internal/domain"
)

func newTestSanitizer() *analysis.Sanitizer {
	return analysis.NewSanitizer(config.SanitizerConfig{MinLength: 50, MaxLength: 5000})
}

func TestSanitizer_GreetingStrippedBulletSurvives(t *testing.T) {
	s := newTestSanitizer()

	raw := "Hello! I've reviewed your results.\n" +
		"📊 **Blood Sugar**\n" +
		"• **Fasting Blood Sugar**: 88 mg/dL - NORMAL\n" +
		"• **HbA1c**: 5.4 % - NORMAL"

	outcome := s.Process(raw)

	assert.True(t, outcome.Succeeded)
	assert.Empty(t, outcome.Warnings)
	assert.NotContains(t, outcome.Text, "Hello")
	assert.NotContains(t, outcome.Text, "reviewed")
	assert.Contains(t, outcome.Text, "• **Fasting Blood Sugar**: 88 mg/dL - NORMAL")

	require.Len(t, outcome.Parameters, 2)
	assert.Equal(t, "Blood Sugar", outcome.Parameters[0].Section)
	assert.Equal(t, "Fasting Blood Sugar", outcome.Parameters[0].Name)
	assert.Equal(t, "88 mg/dL", outcome.Parameters[0].Value)
	assert.Equal(t, domain.ClassificationNormal, outcome.Parameters[0].Classification)
}

func TestSanitizer_ProseOnlyReplyFailsValidation(t *testing.T) {
	s := newTestSanitizer()

	// Sentence-form commentary with no bullets at all; the structural filter
	// drops every line regardless of length.
	raw := strings.Repeat("Your results look broadly reasonable and nothing stands out. ", 50)

	outcome := s.Process(raw)

	assert.False(t, outcome.Succeeded)
	assert.NotEmpty(t, outcome.Warnings)
	assert.Contains(t, strings.Join(outcome.Warnings, "; "), "no classification token")
	assert.Contains(t, strings.Join(outcome.Warnings, "; "), "no bullet lines")
	assert.Empty(t, outcome.Parameters)
}

func TestSanitizer_DiagnosticCommentaryRemoved(t *testing.T) {
	s := newTestSanitizer()

	raw := "📊 **Metabolic Panel**\n" +
		"• **Glucose**: 118 mg/dL - HIGH\n" +
		"This might indicate prediabetes. It's essential to discuss with your doctor.\n" +
		"• **Creatinine**: 0.9 mg/dL - NORMAL\n" +
		"Remember, consult your healthcare provider for personalized advice."

	outcome := s.Process(raw)

	assert.True(t, outcome.Succeeded)
	assert.NotContains(t, outcome.Text, "prediabetes")
	assert.NotContains(t, outcome.Text, "doctor")
	assert.NotContains(t, outcome.Text, "personalized advice")
	require.Len(t, outcome.Parameters, 2)
	assert.Equal(t, domain.ClassificationHigh, outcome.Parameters[0].Classification)
}

func TestSanitizer_ClassificationPassthrough(t *testing.T) {
	s := newTestSanitizer()

	// The classification token is taken verbatim from the model even when it
	// contradicts the value; the backend never recomputes it.
	raw := "📊 **Blood Sugar**\n" +
		"• **Fasting Blood Sugar**: 500 mg/dL - NORMAL\n" +
		"• **Random Glucose**: 90 mg/dL - BORDERLINE"

	outcome := s.Process(raw)

	assert.True(t, outcome.Succeeded)
	require.Len(t, outcome.Parameters, 2)
	assert.Equal(t, domain.ClassificationNormal, outcome.Parameters[0].Classification)
	assert.Equal(t, domain.ClassificationBorderline, outcome.Parameters[1].Classification)
}

func TestSanitizer_SectionGroupingAndReemission(t *testing.T) {
	s := newTestSanitizer()

	raw := "🧬 **Lipid Profile**\n" +
		"• **Total Cholesterol**: 210 mg/dL - HIGH\n" +
		"❤️ **Cardiac Markers**\n" +
		"• **Troponin I**: 0.01 ng/mL - NORMAL\n" +
		"• **CK-MB**: 3.2 ng/mL - NORMAL"

	outcome := s.Process(raw)

	assert.True(t, outcome.Succeeded)
	require.Len(t, outcome.Parameters, 3)
	assert.Equal(t, "Lipid Profile", outcome.Parameters[0].Section)
	assert.Equal(t, "Cardiac Markers", outcome.Parameters[1].Section)

	// Re-emission uses the canonical header prefix and keeps first-encounter
	// section order.
	lipidIdx := strings.Index(outcome.Text, "📊 **Lipid Profile**")
	cardiacIdx := strings.Index(outcome.Text, "📊 **Cardiac Markers**")
	require.GreaterOrEqual(t, lipidIdx, 0)
	require.Greater(t, cardiacIdx, lipidIdx)
}

func TestSanitizer_DuplicateParameterNamesPreserved(t *testing.T) {
	s := newTestSanitizer()

	raw := "📊 **Blood Sugar**\n" +
		"• **Glucose**: 95 mg/dL - NORMAL\n" +
		"• **Glucose**: 140 mg/dL - HIGH"

	outcome := s.Process(raw)

	assert.True(t, outcome.Succeeded)
	require.Len(t, outcome.Parameters, 2)
	assert.Equal(t, "95 mg/dL", outcome.Parameters[0].Value)
	assert.Equal(t, "140 mg/dL", outcome.Parameters[1].Value)
}

func TestSanitizer_Idempotent(t *testing.T) {
	s := newTestSanitizer()

	raw := "🧠 **Thyroid Function**\n" +
		"• **TSH**: 2.1 mIU/L - NORMAL\n" +
		"• **Free T4**: 1.1 ng/dL - NORMAL\n" +
		"• **Free T3**: 3.0 pg/mL - BORDERLINE"

	first := s.Process(raw)
	require.True(t, first.Succeeded)

	second := s.Process(first.Text)
	assert.True(t, second.Succeeded)
	assert.Equal(t, first.Text, second.Text)
	assert.Equal(t, first.Parameters, second.Parameters)
}

func TestSanitizer_TooLongOutputFailsValidation(t *testing.T) {
	s := analysis.NewSanitizer(config.SanitizerConfig{MinLength: 50, MaxLength: 200})

	var b strings.Builder
	for i := 0; i < 20; i++ {
		b.WriteString("• **Parameter Name Long Enough**: 100 mg/dL - NORMAL\n")
	}

	outcome := s.Process(b.String())

	assert.False(t, outcome.Succeeded)
	assert.Contains(t, strings.Join(outcome.Warnings, "; "), "longer than 200")
}

func TestSanitizer_NoParametersFallsBackToCleanedText(t *testing.T) {
	s := newTestSanitizer()

	// Bullets with classification tokens but not in the parameter grammar:
	// validation passes, extraction finds nothing, cleaned text is returned.
	raw := "• Fasting Blood Sugar measured at 88 mg/dL which is NORMAL today\n" +
		"• HbA1c measured at 5.4 percent which is NORMAL as well"

	outcome := s.Process(raw)

	assert.True(t, outcome.Succeeded)
	assert.Empty(t, outcome.Parameters)
	assert.Contains(t, outcome.Text, "Fasting Blood Sugar")
}

func TestSanitizer_LengthCountsRunesNotBytes(t *testing.T) {
	// Bullet and emoji glyphs are multi-byte, so byte length overstates the
	// visible text; a reply can exceed the maximum in bytes while staying
	// within it in characters.
	raw := "📊 **Крвна Слика**\n• **Хемоглобин**: 138 g/L - NORMAL"
	maxLen := 60
	require.Greater(t, len(raw), maxLen)
	require.LessOrEqual(t, utf8.RuneCountInString(raw), maxLen)

	s := analysis.NewSanitizer(config.SanitizerConfig{MinLength: 10, MaxLength: maxLen})
	outcome := s.Process(raw)

	assert.True(t, outcome.Succeeded)
	assert.Empty(t, outcome.Warnings)
}
