package analysis

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"hia/internal/config"
	"hia/internal/domain"
)

// disallowedPatterns is the declarative denylist applied before structural
// filtering. The denylist alone is defeatable by paraphrase and the
// structural filter alone could keep a disallowed sentence that happens to
// start with a bullet; layering both reduces leakage without a semantic
// classifier. Extend the list here, not in the pipeline.
var disallowedPatterns = []string{
	`(?i)\bhello\b[!,.]?\s*`,
	`(?i)\bhi\b\s+\w+[!,.]?\s*`,
	`(?i)\bdear\b\s+\w+,?`,
	`(?i)i've reviewed your`,
	`(?i)overall,?\s+they look good`,
	`(?i)here are some observations:`,
	`(?i)this suggests that`,
	`(?i)this might indicate`,
	`(?i)it's essential to`,
	`(?i)discuss with your doctor`,
	`(?i)some potential areas to discuss`,
	`(?i)do you have any`,
	`(?i)questions about`,
	`(?i)concerns you'd like`,
	`(?i)overall, your test results`,
	`(?i)suggest that you're`,
	`(?i)however,`,
	`(?i)as they can provide`,
	`(?i)personalized advice`,
	`(?i)maintaining a healthy`,
	`(?i)monitoring your`,
	`(?i)consult.{0,40}healthcare provider`,
	`(?i)see\s+(?:a|your)\s+doctor`,
	`(?i)talk to.{0,40}physician`,
	`(?i)medical professional`,
	`(?i)at risk for`,
	`(?i)may indicate`,
	`(?i)could suggest`,
	`(?i)diabetes`,
	`(?i)prediabetes`,
	`(?i)hypertension`,
	`(?i)anemia`,
	`(?i)disease`,
	`(?i)condition`,
	`(?i)insulin resistance`,
	`(?i)impaired.{0,20}glucose`,
	`(?i)lifestyle change`,
	`(?i)diet.{0,20}exercise`,
	`(?i)next steps`,
	`(?i)early intervention`,
	`(?i)opportunity to`,
	`(?i)positive changes`,
	`(?i)your body.{0,30}processing`,
	`(?i)efficiently`,
	`(?i)interpretation`,
	`(?i)diagnosis`,
	`(?i)what.{0,30}indicates:`,
	`(?i)what.{0,30}means:`,
	`(?i)important.{0,20}notes:`,
	`(?i)remember,?`,
}

// sectionEmojis are the recognized section header prefixes.
var sectionEmojis = []string{"📊", "🧬", "🧠", "❤️", "💉", "🩺"}

var (
	sectionRe        = regexp.MustCompile(`^(?:📊|🧬|🧠|❤️|💉|🩺)\s*\*\*(.+?)\*\*`)
	boldHeaderRe     = regexp.MustCompile(`^\*\*[^*]+\*\*`)
	parameterRe      = regexp.MustCompile(`(?i)^[•\-*]\s*\*\*(.+?)\*\*:\s*(.+?)\s*-\s*(NORMAL|HIGH|LOW|BORDERLINE)`)
	classificationRe = regexp.MustCompile(`(?i)NORMAL|HIGH|LOW|BORDERLINE`)
	bulletLineRe     = regexp.MustCompile(`(?m)^[•\-*]`)
	blankRunsRe      = regexp.MustCompile(`\n{3,}`)
)

// Outcome is the result of cleaning and validating one model reply.
type Outcome struct {
	Succeeded  bool
	Text       string
	Parameters []domain.Parameter
	Warnings   []string
}

// Sanitizer cleans, validates and re-serializes strict-policy model output.
// It is stateless and safe for concurrent use; processing already-canonical
// text is a fixed point.
type Sanitizer struct {
	minLength int
	maxLength int
	denylist  []*regexp.Regexp
}

// NewSanitizer compiles the denylist and captures the validation thresholds.
// The bounds are tuned empirically against one model's behavior; swapping the
// underlying LLM will likely require retuning them.
func NewSanitizer(cfg config.SanitizerConfig) *Sanitizer {
	minLen := cfg.MinLength
	if minLen <= 0 {
		minLen = 50
	}
	maxLen := cfg.MaxLength
	if maxLen <= 0 {
		maxLen = 5000
	}
	denylist := make([]*regexp.Regexp, 0, len(disallowedPatterns))
	for _, p := range disallowedPatterns {
		denylist = append(denylist, regexp.MustCompile(p))
	}
	return &Sanitizer{minLength: minLen, maxLength: maxLen, denylist: denylist}
}

// Process runs the full pipeline: phrase stripping, structural line filter,
// whitespace normalization, validation, structured extraction and canonical
// re-serialization. A validation failure yields Succeeded=false but the
// caller still receives the best-effort cleaned text, never the raw reply.
func (s *Sanitizer) Process(raw string) Outcome {
	cleaned := s.clean(raw)

	warnings := s.validate(cleaned)
	if len(warnings) > 0 {
		return Outcome{Succeeded: false, Text: cleaned, Warnings: warnings}
	}

	params := extractParameters(cleaned)
	formatted := formatParameters(params)
	if formatted == "" {
		// Zero parameters despite passing validation: fall back to the
		// cleaned-but-unstructured blob rather than an empty string.
		formatted = cleaned
	}

	return Outcome{Succeeded: true, Text: formatted, Parameters: params}
}

func (s *Sanitizer) clean(raw string) string {
	cleaned := raw
	for _, re := range s.denylist {
		cleaned = re.ReplaceAllString(cleaned, "")
	}

	// Structural line filter: keep blanks, section headers and bullets; drop
	// every other line. This discards sentence-form commentary regardless of
	// content and is the primary enforcement mechanism.
	lines := strings.Split(cleaned, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if keepLine(strings.TrimSpace(line)) {
			kept = append(kept, line)
		}
	}
	cleaned = strings.Join(kept, "\n")

	cleaned = blankRunsRe.ReplaceAllString(cleaned, "\n\n")
	return strings.TrimSpace(cleaned)
}

func keepLine(trimmed string) bool {
	if trimmed == "" {
		return true // spacing
	}
	for _, emoji := range sectionEmojis {
		if strings.HasPrefix(trimmed, emoji) {
			return true
		}
	}
	if boldHeaderRe.MatchString(trimmed) {
		return true
	}
	switch trimmed[0] {
	case '-', '*':
		return true
	}
	return strings.HasPrefix(trimmed, "•")
}

func (s *Sanitizer) validate(cleaned string) []string {
	var warnings []string
	if !classificationRe.MatchString(cleaned) {
		warnings = append(warnings, "no classification token found in cleaned output")
	}
	if !bulletLineRe.MatchString(cleaned) {
		warnings = append(warnings, "no bullet lines found in cleaned output")
	}
	// Rune count, not byte count: the canonical grammar is bullet- and
	// emoji-heavy, so byte length overstates the visible text.
	length := utf8.RuneCountInString(cleaned)
	if length < s.minLength {
		warnings = append(warnings, fmt.Sprintf("cleaned output shorter than %d characters", s.minLength))
	}
	if length > s.maxLength {
		warnings = append(warnings, fmt.Sprintf("cleaned output longer than %d characters", s.maxLength))
	}
	return warnings
}

// extractParameters parses bullet lines into Parameter records in source
// order, tracking the most recent section header. Parameters preceding any
// header have an empty section; duplicate names are preserved because the
// source text is the ground truth, not a keyed map.
func extractParameters(text string) []domain.Parameter {
	var params []domain.Parameter
	currentSection := ""

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)

		if m := sectionRe.FindStringSubmatch(trimmed); m != nil {
			currentSection = strings.TrimSpace(m[1])
			continue
		}

		if m := parameterRe.FindStringSubmatch(trimmed); m != nil {
			params = append(params, domain.Parameter{
				Section:        currentSection,
				Name:           strings.TrimSpace(m[1]),
				Value:          strings.TrimSpace(m[2]),
				Classification: domain.Classification(strings.ToUpper(m[3])),
			})
		}
	}
	return params
}

// formatParameters regroups parameters by section in first-encounter order
// and re-emits the fixed bullet grammar.
func formatParameters(params []domain.Parameter) string {
	if len(params) == 0 {
		return ""
	}

	var sectionOrder []string
	grouped := make(map[string][]domain.Parameter)
	for _, p := range params {
		if _, seen := grouped[p.Section]; !seen {
			sectionOrder = append(sectionOrder, p.Section)
		}
		grouped[p.Section] = append(grouped[p.Section], p)
	}

	var b strings.Builder
	for _, section := range sectionOrder {
		if section != "" {
			fmt.Fprintf(&b, "📊 **%s**\n", section)
		}
		for _, p := range grouped[section] {
			fmt.Fprintf(&b, "• **%s**: %s - %s\n", p.Name, p.Value, p.Classification)
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}
