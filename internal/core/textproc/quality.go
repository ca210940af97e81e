package textproc

import (
	"regexp"
	"strings"
)

// TextQuality is the result of corruption/readability scoring for raw
// extracted text. IsValid mirrors score >= 70.
type TextQuality struct {
	IsValid bool
	Score   int
	Issues  []string
}

var (
	whitespaceRe    = regexp.MustCompile(`\s`)
	longWordRe      = regexp.MustCompile(`\b\w{25,}\b`)
	nonMeaningfulRe = regexp.MustCompile(`[^\w\s]`)
)

// hasRepeatedRun reports whether text contains a run of n or more
// identical characters. Done by hand since RE2 has no backreferences.
func hasRepeatedRun(text string, n int) bool {
	run := 0
	var prev rune = -1
	for _, r := range text {
		if r == prev {
			run++
			if run >= n {
				return true
			}
		} else {
			prev = r
			run = 1
		}
	}
	return false
}

// ValidateTextQuality scores text for extraction-corruption signals.
// Starts at 100 and applies independent penalties; floors at 0.
func ValidateTextQuality(text string) TextQuality {
	var issues []string
	score := 100

	if len(text) > 0 {
		whitespace := len(whitespaceRe.FindAllStringIndex(text, -1))
		if float64(whitespace)/float64(len(text)) > 0.3 {
			issues = append(issues, "Excessive whitespace detected")
			score -= 20
		}
	}

	if hasRepeatedRun(text, 5) {
		issues = append(issues, "Repeated characters detected (possible OCR artifacts)")
		score -= 15
	}

	if len(longWordRe.FindAllStringIndex(text, -1)) > 5 {
		issues = append(issues, "Many very long words detected (possible text corruption)")
		score -= 25
	}

	meaningful := len(nonMeaningfulRe.ReplaceAllString(text, ""))
	if meaningful < len(text)/2 {
		issues = append(issues, "Low ratio of meaningful characters")
		score -= 30
	}

	if len(text) > 500 && countSentences(text, 10) < 3 {
		issues = append(issues, "Poor sentence structure detected")
		score -= 10
	}

	if score < 0 {
		score = 0
	}
	return TextQuality{IsValid: score >= 70, Score: score, Issues: issues}
}

// countSentences counts sentence fragments longer than minLen.
func countSentences(text string, minLen int) int {
	n := 0
	for _, s := range sentenceSplitRe.Split(text, -1) {
		if len(strings.TrimSpace(s)) > minLen {
			n++
		}
	}
	return n
}

// languagePatterns vote for a coarse language tag using stop words.
// Declaration order breaks ties.
var languagePatterns = []struct {
	tag     string
	pattern *regexp.Regexp
}{
	{"english", regexp.MustCompile(`(?i)\b(?:the|and|or|but|in|on|at|to|for|of|with|by|from|up|about|into|through|during|before|after|above|below|between|among|under|over|within|without|against|toward|towards|upon)\b`)},
	{"spanish", regexp.MustCompile(`(?i)\b(?:el|la|de|que|y|a|en|un|es|se|no|te|lo|le|da|su|por|son|con|para|como|esta|pero|más|sus|ya|os|yo|hay|vez|sin|les|nos|me|eso|muy|cada|ese|esa|esos|esas)\b`)},
	{"french", regexp.MustCompile(`(?i)\b(?:le|de|et|à|un|il|être|en|avoir|que|pour|dans|ce|son|une|sur|avec|ne|se|pas|plus|pouvoir|par|je|mais|tout|faire|mettre|autre|nous|vous|ils|elles|on)\b`)},
	{"german", regexp.MustCompile(`(?i)\b(?:der|die|und|in|den|von|zu|das|mit|sich|des|auf|für|ist|im|dem|nicht|ein|eine|auch|als|an|es|er|nach|bei|einer|wer|was|wann|wo|warum|wie|welche|welcher|welches|welchen|welchem)\b`)},
}

// DetectLanguage returns the best-scoring language tag, or "unknown"
// when no stop words match at all.
func DetectLanguage(text string) string {
	best := "unknown"
	bestScore := 0
	for _, lp := range languagePatterns {
		if score := len(lp.pattern.FindAllStringIndex(text, -1)); score > bestScore {
			bestScore = score
			best = lp.tag
		}
	}
	return best
}

// confidenceIndicators boost document confidence when type-specific
// vocabulary is present.
var confidenceIndicators = map[DocumentType]*regexp.Regexp{
	TypeMedical:     regexp.MustCompile(`(?i)\b(?:patient|diagnosis|treatment|medication|prescription|clinical)\b`),
	TypeBusiness:    regexp.MustCompile(`(?i)\b(?:revenue|profit|market|strategy|business|company)\b`),
	TypeTechnical:   regexp.MustCompile(`(?i)\b(?:function|method|variable|class|interface|API)\b`),
	TypeLegal:       regexp.MustCompile(`(?i)\b(?:contract|agreement|liability|warranty|provision)\b`),
	TypeAcademic:    regexp.MustCompile(`(?i)\b(?:research|study|hypothesis|methodology|findings)\b`),
	TypeFinancial:   regexp.MustCompile(`(?i)\b(?:asset|liability|equity|revenue|expense|cash)\b`),
	TypeScientific:  regexp.MustCompile(`(?i)\b(?:experiment|hypothesis|theory|measurement|analysis)\b`),
	TypeEngineering: regexp.MustCompile(`(?i)\b(?:design|specification|system|component|manufacturing)\b`),
}

// DocumentConfidence estimates (0-100) how confidently the text matches
// its assigned type, from type vocabulary plus sentence and paragraph
// structure. Clamped after all adjustments.
func DocumentConfidence(text string, docType DocumentType) int {
	confidence := 50

	if indicator, ok := confidenceIndicators[docType]; ok {
		matches := len(indicator.FindAllStringIndex(text, -1))
		boost := matches * 5
		if boost > 30 {
			boost = 30
		}
		confidence += boost
	}

	if countSentences(text, 10) > 10 {
		confidence += 10
	}

	paragraphs := 0
	for _, p := range strings.Split(text, "\n\n") {
		if len(strings.TrimSpace(p)) > 50 {
			paragraphs++
		}
	}
	if paragraphs > 3 {
		confidence += 10
	}

	return clampScore(confidence)
}

// ChunkConfidence scores one chunk (0-100) from its word content and a
// fraction of the document-level confidence. The clamp is applied after
// the blend, never before.
func ChunkConfidence(chunkText string, docType DocumentType) int {
	confidence := 70.0

	var words []string
	for _, w := range strings.Fields(chunkText) {
		if len(w) > 2 {
			words = append(words, w)
		}
	}
	if len(words) < 10 {
		confidence -= 20
	}

	freq := make(map[string]int)
	maxFreq := 0
	for _, w := range words {
		lower := strings.ToLower(w)
		freq[lower]++
		if freq[lower] > maxFreq {
			maxFreq = freq[lower]
		}
	}
	if len(words) > 0 && float64(maxFreq) > float64(len(words))*0.3 {
		confidence -= 15
	}

	docConfidence := DocumentConfidence(chunkText, docType)
	confidence += float64(docConfidence-50) * 0.3

	return clampScore(int(confidence))
}

// formIndicators count the fill-in markers used by DetectForms.
var formIndicators = []*regexp.Regexp{
	regexp.MustCompile(`\[\s*\]`),
	regexp.MustCompile(`(?i)\[x\]`),
	regexp.MustCompile(`_{3,}`),
	regexp.MustCompile(`(?i)\b(?:Name|Date|Signature|Address|Phone|Email)\s*[:_]`),
	regexp.MustCompile(`(?i)\b(?:Yes|No|Maybe)\s*[:_]`),
}

// DetectForms reports whether the text looks like a fillable form:
// more than three checkbox/underline/label indicators in total.
func DetectForms(text string) bool {
	total := 0
	for _, p := range formIndicators {
		total += len(p.FindAllStringIndex(text, -1))
	}
	return total > 3
}

// CalculateDocumentQuality blends text quality, chunk-set structure
// sanity and classification confidence into one 0-100 score with an
// itemized issue list.
func CalculateDocumentQuality(text string, chunks []TextChunk, metadata DocumentMetadata) QualityScore {
	var issues []QualityIssue

	textQuality := ValidateTextQuality(text)
	severity := "high"
	if textQuality.Score > 70 {
		severity = "low"
	} else if textQuality.Score > 40 {
		severity = "medium"
	}
	for _, desc := range textQuality.Issues {
		issues = append(issues, QualityIssue{
			Type:        IssueTextCorruption,
			Severity:    severity,
			Description: desc,
		})
	}

	structureScore := 80
	if len(chunks) == 0 {
		structureScore -= 50
		issues = append(issues, QualityIssue{
			Type:        IssueStructureError,
			Severity:    "high",
			Description: "No valid chunks generated",
		})
	}
	for _, c := range chunks {
		if len(c.Text) < 50 {
			structureScore -= 20
			issues = append(issues, QualityIssue{
				Type:        IssueStructureError,
				Severity:    "medium",
				Description: "Some chunks are too short",
			})
			break
		}
	}

	overall := int(float64(textQuality.Score)*0.4 +
		float64(structureScore)*0.3 +
		float64(metadata.Confidence)*0.3 + 0.5)

	return QualityScore{
		Overall:          clampScore(overall),
		TextQuality:      textQuality.Score,
		StructureQuality: structureScore,
		Issues:           issues,
	}
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
