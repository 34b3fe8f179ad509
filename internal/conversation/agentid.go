package conversation

import (
	"regexp"
	"strings"
)

// agentIDPrefix is the canonical prefix for sub-agent identifiers.
const agentIDPrefix = "agent-"

// Patterns for best-effort sub-agent id recovery from tool-result text.
// Older logs never emitted a structured agentId field, so the id only
// appears inside free text. Tried in order; first match wins.
var agentIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bagent-([A-Za-z0-9]+)\b`),
	regexp.MustCompile(`(?i)\bAgent\s*ID\s*[:=]\s*([A-Za-z0-9-]+)`),
	regexp.MustCompile(`"agentId"\s*:\s*"([^"]+)"`),
}

// RecoverAgentID scans stringified tool-result content for a sub-agent
// identifier. The result is normalized to carry the canonical "agent-"
// prefix. Returns "" when nothing matches. This is a fallback strategy for
// logs without structured ids; callers should prefer the structured field.
func RecoverAgentID(text string) string {
	if text == "" {
		return ""
	}
	for _, pat := range agentIDPatterns {
		m := pat.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		id := strings.TrimSuffix(m[1], "-")
		if id == "" {
			continue
		}
		if !strings.HasPrefix(id, agentIDPrefix) {
			id = agentIDPrefix + id
		}
		return id
	}
	return ""
}
