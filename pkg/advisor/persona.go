package advisor

import "strings"

const (
	PersonaCoach    = "coach"
	PersonaFrugal   = "frugal"
	PersonaFriendly = "friendly"
)

var personaInstructions = map[string]string{
	PersonaCoach: "You are a pragmatic financial coach. Point out the single most important " +
		"thing the user should change this month and say how.",
	PersonaFrugal: "You are a strict, frugal advisor. Focus on spending that could be cut and " +
		"be direct about waste.",
	PersonaFriendly: "You are a warm and encouraging friend who is good with money. Celebrate " +
		"progress and suggest one gentle improvement.",
}

// Instruction maps a persona name to its instruction. Unknown names are used verbatim as the
// instruction and an empty name falls back to the coach.
func Instruction(persona string) string {
	persona = strings.TrimSpace(persona)
	if persona == "" {
		return personaInstructions[PersonaCoach]
	}
	if instruction, ok := personaInstructions[strings.ToLower(persona)]; ok {
		return instruction
	}
	return persona
}
