package textproc

import (
	"regexp"
	"sort"
	"strings"
)

// topicStopWords are excluded from frequency-based topic extraction.
var topicStopWords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(
		"the and or but in on at to for of with by from up about into through during " +
			"before after above below between among under over within without against " +
			"toward towards upon beneath beside besides except including regarding " +
			"concerning considering despite following here there when where why how all " +
			"any both each few more most other some such no nor not only own same so " +
			"than too very can will just don should now this that they were been have " +
			"their said which would could first well many time these about what your " +
			"had was one our out day get has him his man new old see two way who also") {
		topicStopWords[w] = struct{}{}
	}
}

// typeSeedTopics are prepended to frequency-derived topics per type.
var typeSeedTopics = map[DocumentType][]string{
	TypeMedical:        {"patient", "treatment", "diagnosis", "symptom", "medication"},
	TypeBusiness:       {"revenue", "market", "strategy", "customer", "product"},
	TypeTechnical:      {"system", "data", "algorithm", "function", "interface"},
	TypeLegal:          {"contract", "agreement", "liability", "provision", "compliance"},
	TypeAcademic:       {"research", "study", "hypothesis", "methodology", "findings"},
	TypeFinancial:      {"asset", "liability", "equity", "revenue", "expense"},
	TypeScientific:     {"experiment", "hypothesis", "theory", "measurement", "analysis"},
	TypeEngineering:    {"design", "system", "component", "specification", "testing"},
	TypeConversation:   {"said", "asked", "replied", "mentioned", "discussed"},
	TypeSocialMedia:    {"post", "comment", "share", "like", "follow"},
	TypeContentCreator: {"content", "video", "audience", "engagement", "creation"},
	TypeTranscript:     {"speaker", "transcript", "audio", "recording", "dialogue"},
	TypeEmail:          {"sender", "recipient", "subject", "attachment", "message"},
	TypeReport:         {"findings", "recommendations", "summary", "analysis", "conclusion"},
	TypePresentation:   {"slide", "presentation", "audience", "speaker", "topic"},
	TypeForm:           {"field", "required", "optional", "input", "validation"},
	TypeMixedContent:   {"content", "document", "information", "text", "data"},
}

var lowerWordRe = regexp.MustCompile(`^[a-z]+$`)

// BasicTopics extracts up to ten topics: the type's seed topics merged
// with the most frequent non-stop-words of the text.
func BasicTopics(text string, docType DocumentType) []string {
	freq := make(map[string]int)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		if len(w) <= 3 || !lowerWordRe.MatchString(w) {
			continue
		}
		if _, stop := topicStopWords[w]; stop {
			continue
		}
		freq[w]++
	}

	ranked := make([]string, 0, len(freq))
	for w := range freq {
		ranked = append(ranked, w)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if freq[ranked[i]] != freq[ranked[j]] {
			return freq[ranked[i]] > freq[ranked[j]]
		}
		return ranked[i] < ranked[j]
	})
	if len(ranked) > 15 {
		ranked = ranked[:15]
	}

	seen := make(map[string]struct{})
	var topics []string
	for _, w := range append(append([]string{}, typeSeedTopics[docType]...), ranked...) {
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		topics = append(topics, w)
		if len(topics) == 10 {
			break
		}
	}
	return topics
}

// Entity is a lightweight named-entity guess from regex scanning.
type Entity struct {
	Text       string  `json:"text"`
	Type       string  `json:"type"`
	Confidence float64 `json:"confidence"`
}

var entityPatterns = []struct {
	entType string
	pattern *regexp.Regexp
}{
	{"PERSON", regexp.MustCompile(`\b[A-Z][a-z]+ [A-Z][a-z]+\b`)},
	{"ORG", regexp.MustCompile(`(?i)\b(?:Inc\.|LLC|Corp\.|Company|Organization|University|Hospital)\b`)},
	{"LOCATION", regexp.MustCompile(`\b(?:USA|UK|Canada|Australia|Germany|France|Japan|China|India|Brazil)\b`)},
	{"DATE", regexp.MustCompile(`\b(?:January|February|March|April|May|June|July|August|September|October|November|December) \d{1,2}, \d{4}\b`)},
}

// BasicEntities does regex-only entity extraction, capped at 20 results.
func BasicEntities(text string) []Entity {
	seen := make(map[string]struct{})
	var entities []Entity
	for _, ep := range entityPatterns {
		for _, m := range ep.pattern.FindAllString(text, -1) {
			if _, dup := seen[m]; dup {
				continue
			}
			seen[m] = struct{}{}
			entities = append(entities, Entity{Text: m, Type: ep.entType, Confidence: 0.7})
			if len(entities) == 20 {
				return entities
			}
		}
	}
	return entities
}

// Readability is a Flesch-style reading ease estimate.
type Readability struct {
	Score      int    `json:"score"`
	Grade      string `json:"grade"`
	Complexity string `json:"complexity"` // "simple", "moderate" or "complex"
}

var vowelGroupRe = regexp.MustCompile(`[aeiouy]+`)

// CalculateReadability approximates Flesch Reading Ease and maps the
// score to a grade band.
func CalculateReadability(text string) Readability {
	sentences := countSentences(text, 10)
	words := strings.Fields(text)
	if sentences == 0 || len(words) == 0 {
		return Readability{Score: 0, Grade: "unknown", Complexity: "moderate"}
	}

	syllables := 0
	for _, w := range words {
		count := len(vowelGroupRe.FindAllString(strings.ToLower(w), -1))
		if count < 1 {
			count = 1
		}
		syllables += count
	}

	avgSentenceLen := float64(len(words)) / float64(sentences)
	avgSyllables := float64(syllables) / float64(len(words))
	score := 206.835 - 1.015*avgSentenceLen - 84.6*avgSyllables
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	r := Readability{Score: int(score + 0.5)}
	switch {
	case score >= 80:
		r.Grade, r.Complexity = "6th grade", "simple"
	case score >= 60:
		r.Grade, r.Complexity = "8th-9th grade", "moderate"
	case score >= 40:
		r.Grade, r.Complexity = "10th-12th grade", "moderate"
	default:
		r.Grade, r.Complexity = "College level", "complex"
	}
	return r
}

// FallbackAnalysis produces the local stand-in used whenever the AI
// analyzer is disabled or fails: pattern classification, a first-sentence
// summary, frequency topics and stop-word language detection.
func FallbackAnalysis(text string) *Analysis {
	docType := DetectDocumentType(text)

	summary := "Unable to generate summary"
	if first := sentenceSplitRe.Split(text, 2); len(first) > 0 && strings.TrimSpace(first[0]) != "" {
		s := first[0]
		if len(s) > 200 {
			s = s[:200]
		}
		summary = s + "..."
	}

	return &Analysis{
		DocumentType:         docType,
		Summary:              summary,
		KeyTopics:            BasicTopics(text, docType),
		ContentQuality:       70,
		Language:             DetectLanguage(text),
		IntendedAudience:     "General audience",
		ExtractionConfidence: 60,
	}
}
