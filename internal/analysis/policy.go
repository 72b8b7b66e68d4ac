package analysis

import "hia/internal/domain"

// PromptPolicy pairs a system instruction with the post-processing rule for
// the roles it governs. Policy selection is a table lookup so role handling
// stays out of the pipeline stages; adding a role means adding a row here,
// not touching the sanitizer.
type PromptPolicy struct {
	Name              string
	SystemInstruction string
	// Sanitize controls whether the reply runs through the output sanitizer.
	// Privileged output bypasses it by design: filtering would destroy the
	// clinical content those roles are entitled to see.
	Sanitize bool
}

var (
	strictPolicy = PromptPolicy{
		Name:              "strict",
		SystemInstruction: strictSystemPrompt,
		Sanitize:          true,
	}
	clinicalPolicy = PromptPolicy{
		Name:              "clinical",
		SystemInstruction: clinicalSystemPrompt,
		Sanitize:          false,
	}
)

var policyByRole = map[domain.Role]PromptPolicy{
	domain.RoleUser:  strictPolicy,
	domain.RoleHC:    clinicalPolicy,
	domain.RoleAdmin: clinicalPolicy,
}

// SelectPolicy returns the prompt policy for a caller role. Total over the
// role enum; unknown roles fall back to the strict policy, the safe default.
func SelectPolicy(role domain.Role) PromptPolicy {
	if p, ok := policyByRole[role]; ok {
		return p
	}
	return strictPolicy
}
