package extract

import (
	"net/url"
	"strings"
)

// SelectorRule binds a CSS selector to its acceptance threshold and the bonus
// awarded per signal phrase found in the matched element's text. The cascade
// is data, not logic: adding support for a new job board means appending a
// rule, not touching the scoring code.
type SelectorRule struct {
	Selector    string
	MinLength   int
	SignalBonus int
}

// signalPhrases are substrings that indicate job-description content.
var signalPhrases = []string{
	"responsibilit",
	"requirement",
	"qualification",
	"what you will",
	"what you'll",
	"about the role",
	"skills",
}

// fallbackSignals is the looser signal set used by the generic block search.
var fallbackSignals = []string{
	"responsibilit",
	"requirement",
	"qualification",
	"experience",
	"skills",
}

// noiseMarkers mark elements that are navigation or boilerplate rather than
// content; any id/class/role/aria-label containing one is skipped by the
// generic block search.
var noiseMarkers = []string{"footer", "header", "nav", "sidebar", "cookie", "consent"}

// DefaultSelectorRules returns the ordered selector cascade covering common
// job boards and applicant tracking systems, most specific first.
func DefaultSelectorRules() []SelectorRule {
	selectors := []string{
		`[data-test="job-description"]`,
		`#jobDescriptionText`,
		`.jobsearch-JobComponent-description`,
		`.jobs-description__content`,
		`.jobs-box__html-content`,
		`.jobs-unified-description__content`,
		`.jobs-description`,
		`.job-description`,
		`#jobDescription`,
		`#description`,
		`section[aria-label*="description" i]`,
		`div[aria-label*="description" i]`,
		`article[aria-label*="description" i]`,
		`section[id*="description" i]`,
		`div[id*="description" i]`,
		`article[id*="description" i]`,
		`section[class*="description" i]`,
		`div[class*="description" i]`,
		`article[class*="description" i]`,
		`.posting-description`,
		`.section-wrapper .description`,
		`.content .job-description`,
		`.content .description`,
		`.jd-description`,
		`.description__text`,
		`.ats-description`,
	}

	rules := make([]SelectorRule, 0, len(selectors))
	for _, sel := range selectors {
		rules = append(rules, SelectorRule{Selector: sel, MinLength: 200, SignalBonus: 200})
	}
	return rules
}

// Platform identifies a known job board or applicant tracking system.
type Platform string

// Known platforms detected from the posting URL.
const (
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformWorkday    Platform = "workday"
	PlatformUnknown    Platform = "unknown"
)

// DetectPlatform identifies the job board platform from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}
	host := strings.ToLower(parsed.Host)

	switch {
	case strings.Contains(host, "greenhouse.io"):
		return PlatformGreenhouse
	case strings.Contains(host, "lever.co"):
		return PlatformLever
	case strings.Contains(host, "workday.com"), strings.Contains(host, "myworkdayjobs.com"):
		return PlatformWorkday
	default:
		return PlatformUnknown
	}
}

// PlatformSelectorRules returns extra rules tried before the default cascade
// when the posting URL reveals a known platform.
func PlatformSelectorRules(platform Platform) []SelectorRule {
	var selectors []string
	switch platform {
	case PlatformGreenhouse:
		selectors = []string{`.job__description.body`, `.job__description`, `.job-post-container`}
	case PlatformLever:
		selectors = []string{`.posting-page`, `.section-wrapper.page-full-width`}
	case PlatformWorkday:
		selectors = []string{`[data-automation-id="jobDescription"]`, `.gwt-HTML`}
	default:
		return nil
	}

	rules := make([]SelectorRule, 0, len(selectors))
	for _, sel := range selectors {
		rules = append(rules, SelectorRule{Selector: sel, MinLength: 200, SignalBonus: 200})
	}
	return rules
}
