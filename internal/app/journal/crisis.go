package journal

import "strings"

// crisisKeywords is matched as case-insensitive substrings. This is a coarse
// net: "die" also matches "diet" and paraphrases are missed.
var crisisKeywords = []string{"suicide", "self-harm", "hurt myself", "die", "depressed", "kill"}

// DetectCrisis reports whether content contains any crisis keyword.
func DetectCrisis(content string) bool {
	lower := strings.ToLower(content)
	for _, k := range crisisKeywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// alertMessage quotes the first 100 characters of the entry.
func alertMessage(content string) string {
	r := []rune(content)
	if len(r) > 100 {
		r = r[:100]
	}
	return "Crisis keywords detected in journal entry: " + string(r) + "..."
}
