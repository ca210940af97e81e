package textproc

import (
	"regexp"
	"strings"
)

// pageBreakRe matches the page separators PDF extractors commonly emit:
// form feeds, literal "Page N" tokens, or a bare number on its own line.
var pageBreakRe = regexp.MustCompile(`\f|Page \d+|\n\s*\d+\s*\n`)

// Generic heading heuristics, applied in priority order for the general
// type. A line matches at most one of them.
var (
	allCapsHeadingRe  = regexp.MustCompile(`^[A-Z][A-Z\s]{3,}$`)
	numberedHeadingRe = regexp.MustCompile(`^\d+\.\s+[A-Z]`)
	subNumberedRe     = regexp.MustCompile(`^\d+\.\d+\.?\s+[A-Z]`)
	colonHeadingRe    = regexp.MustCompile(`^[A-Z][a-zA-Z\s]+:\s*$`)
)

// sectionKeywords lists the fixed section names recognized for a
// document type, at two heading levels.
type sectionKeywords struct {
	level1 *regexp.Regexp
	level2 *regexp.Regexp
}

var typeSections = map[DocumentType]sectionKeywords{
	TypeMedical: {
		level1: regexp.MustCompile(`(?i)^\s*(?:Patient History|Diagnosis|Treatment Plan|Medications|Allergies|Vital Signs)\s*$`),
		level2: regexp.MustCompile(`(?i)^\s*(?:Chief Complaint|History of Present Illness|Review of Systems)\s*$`),
	},
	TypeBusiness: {
		level1: regexp.MustCompile(`(?i)^\s*(?:Executive Summary|Market Analysis|Financial Projections|Conclusion)\s*$`),
		level2: regexp.MustCompile(`(?i)^\s*(?:Introduction|Methodology|Results|Discussion)\s*$`),
	},
	TypeTechnical: {
		level1: regexp.MustCompile(`(?i)^\s*(?:Architecture|Implementation|API Reference|Configuration)\s*$`),
		level2: regexp.MustCompile(`(?i)^\s*(?:Setup|Installation|Usage|Examples)\s*$`),
	},
	TypeLegal: {
		level1: regexp.MustCompile(`(?i)^\s*(?:Contract Terms|Liability|Warranty|Indemnification)\s*$`),
		level2: regexp.MustCompile(`(?i)^\s*(?:WHEREAS|THEREFORE|NOW, THEREFORE|IN WITNESS WHEREOF)\s*$`),
	},
	TypeAcademic: {
		level1: regexp.MustCompile(`(?i)^\s*(?:Abstract|Introduction|Literature Review|Methodology|Results|Discussion|Conclusion|References)\s*$`),
		level2: regexp.MustCompile(`(?i)^\s*(?:Hypothesis|Research Questions|Data Analysis|Limitations)\s*$`),
	},
	TypeFinancial: {
		level1: regexp.MustCompile(`(?i)^\s*(?:Balance Sheet|Income Statement|Cash Flow|Equity|Notes)\s*$`),
		level2: regexp.MustCompile(`(?i)^\s*(?:Assets|Liabilities|Revenue|Expenses|Ratios)\s*$`),
	},
	TypeScientific: {
		level1: regexp.MustCompile(`(?i)^\s*(?:Materials and Methods|Results|Discussion|Conclusion|Acknowledgments)\s*$`),
		level2: regexp.MustCompile(`(?i)^\s*(?:Experimental Setup|Data Collection|Statistical Analysis)\s*$`),
	},
	TypeEngineering: {
		level1: regexp.MustCompile(`(?i)^\s*(?:Specifications|Design Requirements|Testing|Validation|Deployment)\s*$`),
		level2: regexp.MustCompile(`(?i)^\s*(?:System Overview|Component Details|Interface Definitions)\s*$`),
	},
}

// ExtractStructure splits text into pages and detects section headers.
// Types with a fixed section vocabulary match against their keyword
// lists; everything else falls back to the generic heading heuristics.
// Lines are scanned 0-indexed and each line contributes at most one
// section entry (first matching heuristic wins).
func ExtractStructure(text string, docType DocumentType) DocumentStructure {
	var pages []string
	for _, p := range pageBreakRe.Split(text, -1) {
		if p = strings.TrimSpace(p); p != "" {
			pages = append(pages, p)
		}
	}

	var sections []Section
	kw, hasKeywords := typeSections[docType]

	for i, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if hasKeywords {
			switch {
			case kw.level1.MatchString(trimmed):
				sections = append(sections, Section{Title: trimmed, Level: 1, Start: i})
			case kw.level2.MatchString(trimmed):
				sections = append(sections, Section{Title: trimmed, Level: 2, Start: i})
			}
			continue
		}

		switch {
		case allCapsHeadingRe.MatchString(trimmed) && len(trimmed) > 3:
			sections = append(sections, Section{Title: trimmed, Level: 1, Start: i})
		case subNumberedRe.MatchString(trimmed):
			sections = append(sections, Section{Title: trimmed, Level: 3, Start: i})
		case numberedHeadingRe.MatchString(trimmed):
			sections = append(sections, Section{Title: trimmed, Level: 2, Start: i})
		case colonHeadingRe.MatchString(trimmed) && len(trimmed) > 5:
			sections = append(sections, Section{Title: trimmed, Level: 4, Start: i})
		}
	}

	return DocumentStructure{Pages: pages, Sections: sections}
}
