package plan

import (
	"regexp"
	"strings"
)

// headingRule maps a heading pattern to the section type it opens.
// Rules are evaluated in order; the first match wins, so more specific
// patterns (acceptance criteria, technical) precede the general
// requirements pattern.
type headingRule struct {
	pattern *regexp.Regexp
	section SectionType
}

var headingRules = []headingRule{
	{regexp.MustCompile(`(?i)^(?:#{1,6}\s*)?acceptance\s+criteria\b`), SectionAcceptanceCriteria},
	{regexp.MustCompile(`(?i)^(?:#{1,6}\s*)?(?:user\s+stor(?:y|ies)|stories)\b`), SectionUserStories},
	{regexp.MustCompile(`(?i)^(?:#{1,6}\s*)?(?:technical|architecture|tech\s+stack|non-functional)\b`), SectionTechnical},
	{regexp.MustCompile(`(?i)^(?:#{1,6}\s*)?(?:timeline|schedule|milestones?|phases)\b`), SectionTimeline},
	{regexp.MustCompile(`(?i)^(?:#{1,6}\s*)?(?:functional\s+)?requirements?\b`), SectionRequirements},
	{regexp.MustCompile(`(?i)^(?:#{1,6}\s*)?(?:overview|summary|introduction|background|goals?)\b`), SectionOverview},
}

// headingMarkup strips leading markdown heading markers and trailing colons.
var headingMarkup = regexp.MustCompile(`^#{1,6}\s*|:\s*$`)

// maxHeadingLen bounds how long a line can be and still count as a heading.
// Prose paragraphs that merely start with a keyword are not headings.
const maxHeadingLen = 80

// SegmentPRD splits raw PRD text into typed sections using ordered
// heading-pattern matching.
//
// Lines before the first recognized heading accumulate into an implicit
// Overview section. A document with no recognized headings yields a single
// Overview section containing the whole text, so unstructured input still
// flows through the rest of the pipeline.
func SegmentPRD(text string) []Section {
	var sections []Section

	current := Section{Type: SectionOverview, Title: "Overview"}
	var body []string
	started := false

	flush := func() {
		content := strings.TrimSpace(strings.Join(body, "\n"))
		// The implicit leading Overview is only kept when it has content.
		if started || content != "" {
			current.Content = content
			sections = append(sections, current)
		}
		body = body[:0]
	}

	for _, line := range strings.Split(text, "\n") {
		if section, ok := matchHeading(line); ok {
			flush()
			started = true
			current = Section{
				Type:  section,
				Title: strings.TrimSpace(headingMarkup.ReplaceAllString(strings.TrimSpace(line), "")),
			}
			continue
		}
		body = append(body, line)
	}
	flush()

	if len(sections) == 0 {
		sections = append(sections, Section{
			Type:    SectionOverview,
			Title:   "Overview",
			Content: strings.TrimSpace(text),
		})
	}
	return sections
}

// matchHeading tests a line against the heading rules.
func matchHeading(line string) (SectionType, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || len(trimmed) > maxHeadingLen {
		return "", false
	}
	// A heading is either explicitly marked up or a short standalone line;
	// sentences ending with a period are prose.
	if !strings.HasPrefix(trimmed, "#") && strings.HasSuffix(trimmed, ".") {
		return "", false
	}
	for _, rule := range headingRules {
		if rule.pattern.MatchString(trimmed) {
			return rule.section, true
		}
	}
	return "", false
}

// listMarker matches bullet (-, *, •) and numbered (1. / 1)) list items,
// capturing the item text.
var listMarker = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s+(.*)$`)

// ExtractListItems pulls bullet and numbered list items out of a section
// body. Non-blank lines that do not start a new item continue the current
// one and are space-joined. Text with no list markup yields no items.
func ExtractListItems(body string) []string {
	var items []string
	open := false

	for _, line := range strings.Split(body, "\n") {
		if m := listMarker.FindStringSubmatch(line); m != nil {
			items = append(items, strings.TrimSpace(m[1]))
			open = true
			continue
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || !open {
			continue
		}
		items[len(items)-1] = items[len(items)-1] + " " + trimmed
	}
	return items
}

// isBlank reports whether s is empty or whitespace-only.
func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
