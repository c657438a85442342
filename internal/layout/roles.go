package layout

import "strings"

// roleProfile is the visual identity derived from an agent's role string.
type roleProfile struct {
	Icon        string
	Color       string
	Personality string
}

// roleRules maps role keywords to a profile. Rules are checked in order
// and the first keyword contained in the lowercased role wins.
var roleRules = []struct {
	keywords []string
	profile  roleProfile
}{
	{
		keywords: []string{"research", "analy", "data", "insight"},
		profile:  roleProfile{Icon: "🔍", Color: "#6366f1", Personality: "methodical"},
	},
	{
		keywords: []string{"engineer", "develop", "code", "devops"},
		profile:  roleProfile{Icon: "🛠️", Color: "#0ea5e9", Personality: "pragmatic"},
	},
	{
		keywords: []string{"market", "growth", "seo"},
		profile:  roleProfile{Icon: "📣", Color: "#f59e0b", Personality: "creative"},
	},
	{
		keywords: []string{"sales", "lead", "outreach"},
		profile:  roleProfile{Icon: "🤝", Color: "#10b981", Personality: "persuasive"},
	},
	{
		keywords: []string{"support", "customer", "help"},
		profile:  roleProfile{Icon: "🎧", Color: "#8b5cf6", Personality: "empathetic"},
	},
	{
		keywords: []string{"finance", "account", "invoice", "budget"},
		profile:  roleProfile{Icon: "📊", Color: "#14b8a6", Personality: "precise"},
	},
	{
		keywords: []string{"writ", "content", "copy", "blog"},
		profile:  roleProfile{Icon: "✍️", Color: "#ec4899", Personality: "expressive"},
	},
}

var defaultProfile = roleProfile{Icon: "🤖", Color: "#64748b", Personality: "balanced"}

// profileForRole resolves an agent role to its visual profile.
func profileForRole(role string) roleProfile {
	lower := strings.ToLower(role)
	for _, rule := range roleRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.profile
			}
		}
	}
	return defaultProfile
}
