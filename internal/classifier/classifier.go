package classifier

import "strings"

// DefaultKeywords is the built-in game detection list. Matching is
// case-insensitive substring containment, not word-boundary aware:
// "wow" matches inside "wowzers". That imprecision is intentional.
var DefaultKeywords = []string{
	"steam", "hl2", "csgo", "dota", "fortnite",
	"overwatch", "valorant", "league", "minecraft",
	"battle.net", "origin", "ubisoft", "riot", "ea",
	"wow", "diablo", "elden", "gta", "rockstar",
	"warframe", "destiny", "apex", "fallout", "skyrim",
}

// Classifier decides whether a window title belongs to a game.
type Classifier struct {
	keywords []string
}

// New creates a classifier over the default keyword set plus any extras.
// Extras are lower-cased; empty entries are dropped.
func New(extra ...string) *Classifier {
	keywords := make([]string, 0, len(DefaultKeywords)+len(extra))
	keywords = append(keywords, DefaultKeywords...)
	for _, kw := range extra {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return &Classifier{keywords: keywords}
}

// IsGame reports whether the title matches any known game keyword.
// An empty title (window unreadable, no focus) is never a game.
func (c *Classifier) IsGame(title string) bool {
	if title == "" {
		return false
	}
	lower := strings.ToLower(title)
	for _, kw := range c.keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Keywords returns the active keyword list.
func (c *Classifier) Keywords() []string {
	out := make([]string, len(c.keywords))
	copy(out, c.keywords)
	return out
}
