package audit

import "UXTester/internal/domain"

// Static finding catalogs. Each scan samples three of four entries from each;
// the catalogs themselves are never mutated at runtime.

var strengthCatalog = []domain.StrengthFinding{
	{
		Category:    "Performance",
		Title:       "Excellent Logical Paint",
		Description: "The Largest Contentful Paint (LCP) is under 1.2s, ensuring an immediate visual response for users.",
	},
	{
		Category:    "Design",
		Title:       "Clear Visual Hierarchy",
		Description: "Heading structures (H1-H3) are correctly implemented, facilitating easy scanning of content.",
	},
	{
		Category:    "Security",
		Title:       "HTTPS Enforced",
		Description: "All traffic is securely encrypted using modern TLS 1.3 protocols.",
	},
	{
		Category:    "Mobile",
		Title:       "Responsive Viewport",
		Description: "The layout adapts fluidly to mobile viewports without horizontal scrolling.",
	},
}

var weaknessCatalog = []domain.WeaknessFinding{
	{
		Severity:       domain.SeverityHigh,
		Title:          "Insufficient Color Contrast",
		Description:    "Primary text elements fall below the WCAG AA standard ratio of 4.5:1, impacting readability for low-vision users.",
		Recommendation: "Darken the text color to #334155 (Slate-700) or higher.",
	},
	{
		Severity:       domain.SeverityMedium,
		Title:          "Missing Non-Text Alternatives",
		Description:    "Several key navigation images lack 'alt' attributes, rendering them invisible to screen readers.",
		Recommendation: "Audit all <img> tags and apply descriptive alt text.",
	},
	{
		Severity:       domain.SeverityMedium,
		Title:          "Unoptimized JavaScript Chunks",
		Description:    "Large JS bundles are blocking the main thread for over 250ms, causing input delay.",
		Recommendation: "Implement code-splitting and defer non-critical scripts.",
	},
	{
		Severity:       domain.SeverityLow,
		Title:          "Tap Targets Too Small",
		Description:    "Mobile menu links have a hit area smaller than 48x48px, leading to potential 'fat finger' errors.",
		Recommendation: "Increase padding on .nav-link elements.",
	},
}
