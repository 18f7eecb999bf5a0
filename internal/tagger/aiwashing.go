package tagger

import (
	"regexp"

	"github.com/trhprace/intelligence/internal/domain"
)

// AI buzzword patterns. "ai" gets word boundaries so "maintenance" and
// "air" stay quiet; the longer phrases match as substrings.
var aiBuzzwords = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}])ai(?:$|[^\p{L}\p{N}])`),
	regexp.MustCompile(`(?i)umělá inteligence|umela inteligence`),
	regexp.MustCompile(`(?i)machine learning|strojové učení|strojove uceni`),
	regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}])llm(?:$|[^\p{L}\p{N}])`),
	regexp.MustCompile(`(?i)chatgpt|chat gpt`),
	regexp.MustCompile(`(?i)deep learning|neural network|neuronov`),
	regexp.MustCompile(`(?i)generativní|generative ai`),
}

// AIWashing flags a non-tech role dressed up with AI buzzwords. Tech roles
// mentioning AI are presumed to mean it.
func AIWashing(description string, role domain.RoleType) bool {
	if domain.TechRoles[role] {
		return false
	}
	for _, re := range aiBuzzwords {
		if re.MatchString(description) {
			return true
		}
	}
	return false
}
