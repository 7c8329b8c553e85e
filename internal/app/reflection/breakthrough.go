package reflection

import "strings"

// Breakthrough is the structured view of a breakthrough analysis.
type Breakthrough struct {
	Insight   string `json:"breakthrough,omitempty"`
	Milestone string `json:"milestone,omitempty"`
	Raw       string `json:"raw"`
}

// ParseBreakthrough extracts the BREAKTHROUGH: and MILESTONE: lines from raw
// model output. Labels are matched case-insensitively and may be wrapped in
// markdown bold. Missing labels leave the field empty; Raw is always kept.
func ParseBreakthrough(raw string) Breakthrough {
	out := Breakthrough{Raw: raw}
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(strings.ReplaceAll(line, "**", ""))
		upper := strings.ToUpper(line)
		switch {
		case strings.HasPrefix(upper, "BREAKTHROUGH:") && out.Insight == "":
			out.Insight = strings.TrimSpace(line[len("BREAKTHROUGH:"):])
		case strings.HasPrefix(upper, "MILESTONE:") && out.Milestone == "":
			out.Milestone = strings.TrimSpace(line[len("MILESTONE:"):])
		}
	}
	return out
}
