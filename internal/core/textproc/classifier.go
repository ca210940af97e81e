package textproc

import "regexp"

// typeIndicators maps a document type to the regex indicators that vote
// for it. Declaration order matters: when two types tie on match count,
// the earlier entry wins. Do not reorder.
type typeIndicators struct {
	docType  DocumentType
	patterns []*regexp.Regexp
}

var indicatorTable = []typeIndicators{
	{TypeConversation, []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:said|replied|responded|asked|answered|mentioned|noted|agreed|disagreed)\s+[:\-]`),
		regexp.MustCompile(`\[\d{1,2}:\d{2}(:\d{2})?\]`), // timestamps like [14:30] or [14:30:45]
		regexp.MustCompile(`(?i)\b(?:User|Person|Participant|Speaker)\s*\d*[:\-]`),
		regexp.MustCompile(`(?i)\b(?:Teams|Slack|Discord|Zoom|Meet|Chat)\s+(?:message|conversation|transcript)`),
		regexp.MustCompile(`(?m)(?:^|\n)\s*[A-Z][a-z]+\s+[A-Z][a-z]+[:\-]`), // "Name:" or "Name-" speaker labels
	}},
	{TypeSocialMedia, []*regexp.Regexp{
		regexp.MustCompile(`[@#]\w+`), // mentions and hashtags
		regexp.MustCompile(`(?i)\b(?:like|comment|share|follow|subscribe|retweet|reply)\b`),
		regexp.MustCompile(`(?i)\b(?:Instagram|Twitter|X|TikTok|YouTube|LinkedIn|Facebook|Threads)\s+(?:post|story|video|reel)`),
		regexp.MustCompile(`(?i)(?:^|\s)(?:https?://)(?:www\.)?(?:instagram|twitter|x|tiktok|youtube|linkedin|facebook)\.com`),
		regexp.MustCompile(`(?i)\b(?:views|likes|comments|shares|followers|subscribers)\s*[:\-]?\s*\d+`),
	}},
	{TypeContentCreator, []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:content creator|influencer|YouTuber|streamer|blogger|vlogger|podcaster)\b`),
		regexp.MustCompile(`(?i)\b(?:video|stream|episode|blog|post|content|creation|upload|publish)\b`),
		regexp.MustCompile(`(?i)\b(?:monetization|sponsorship|affiliate|brand deal|collaboration)\b`),
		regexp.MustCompile(`(?i)\b(?:SEO|engagement|analytics|metrics|algorithm|trending)\b`),
		regexp.MustCompile(`(?i)(?:Intro|Outro|Like and subscribe|Comment below|Follow me|Check out my)\b`),
	}},
	{TypeTranscript, []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:transcript|subtitles|captions|closed.?caption|CC)\b`),
		regexp.MustCompile(`\[\d{1,2}:\d{2}(:\d{2})?\]`),
		regexp.MustCompile(`(?i)\[\s*(?:music|applause|laughter|silence|inaudible)\s*\]`),
		regexp.MustCompile(`(?i)\b(?:Speaker|Voice|Narrator|Host|Guest|Interviewer|Interviewee)\s*\d*[:\-]`),
		regexp.MustCompile(`(?m)(?:^|\n)\s*(?:>>|-->|<-->)`),
	}},
	{TypeEmail, []*regexp.Regexp{
		regexp.MustCompile(`(?im)^(?:From|To|Cc|Bcc|Subject|Date|Reply-To):`),
		regexp.MustCompile(`(?i)\b(?:Dear|Hello|Hi|Greetings|Best regards|Sincerely|Cheers|Thanks)\s+`),
		regexp.MustCompile(`(?:@\w+\.\w+|\w+@\w+\.\w+)`),
		regexp.MustCompile(`(?i)\b(?:attachment|attached|forward|reply|sender|recipient|inbox|outbox)\b`),
		regexp.MustCompile(`(?m)^(?:>\s*)+`), // reply quoting markers
	}},
	{TypeReport, []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:report|executive summary|findings|recommendations|conclusion|appendix)\b`),
		regexp.MustCompile(`(?i)\b(?:quarterly|annual|monthly|weekly|daily)\s+(?:report|update|summary)\b`),
		regexp.MustCompile(`(?i)\b(?:status|progress|update|overview|analysis|insights)\b`),
		regexp.MustCompile(`(?i)Report (?:ID|Number|#)?:?\s*\w+`),
		regexp.MustCompile(`(?i)Prepared (?:by|for):`),
	}},
	{TypePresentation, []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:slide|presentation|deck|pitch|demo|webinar|conference|workshop)\b`),
		regexp.MustCompile(`(?i)\b(?:Slide \d+|Page \d+|Screen \d+)`),
		regexp.MustCompile(`(?i)\[CLICK\]|\[NEXT\]|\[PREVIOUS\]|\[TRANSITION\]`),
		regexp.MustCompile(`(?i)\b(?:bullet point|agenda|outline|summary|key takeaways)\b`),
		regexp.MustCompile(`(?i)(?:Thank you for your attention|Questions\?|Q&A session)`),
	}},
	{TypeForm, []*regexp.Regexp{
		regexp.MustCompile(`\[\s*\]|\[x\]|\[X\]`), // checkboxes
		regexp.MustCompile(`_{5,}`),               // fill-in fields
		regexp.MustCompile(`(?i)\b(?:Name|Date|Signature|Address|Phone|Email|SSN|ID)\s*[:_]`),
		regexp.MustCompile(`(?i)\b(?:Required|Optional|Mandatory|Field|Form|Application)\b`),
		regexp.MustCompile(`(?i)\b(?:Yes|No|Maybe|N/A|Not\s+applicable)\s*[:\-]`),
	}},
	{TypeMedical, []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:patient|diagnosis|treatment|symptom|medication|prescription|clinical|medical|healthcare|hospital|doctor|physician)\b`),
		regexp.MustCompile(`(?i)\b(?:ICD-10|CPT|HCPCS|DRG|EMR|EHR|HIPAA)\b`),
		regexp.MustCompile(`(?i)\b\d+\s*(?:mg|ml|mcg|units)\b`), // drug dosage amounts
	}},
	{TypeBusiness, []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:revenue|profit|loss|market|strategy|business|company|corporation|LLC|Inc)\b`),
		regexp.MustCompile(`(?i)\b(?:ROI|KPI|SWOT|B2B|B2C|stakeholder|synergy)\b`),
		regexp.MustCompile(`(?i)\b(?:quarterly|annual|financial|budget|forecast)\b`),
	}},
	{TypeTechnical, []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:algorithm|function|method|variable|parameter|return|class|interface|API)\b`),
		regexp.MustCompile(`(?i)\b(?:JavaScript|Python|Java|C\+\+|React|Node|database|server|client)\b`),
		regexp.MustCompile(`(?i)\b(?:Git|GitHub|Docker|Kubernetes|AWS|Azure)\b`),
	}},
	{TypeLegal, []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:contract|agreement|clause|provision|liability|warranty|indemnification)\b`),
		regexp.MustCompile(`(?i)\b(?:plaintiff|defendant|court|judge|attorney|litigation|arbitration)\b`),
		regexp.MustCompile(`(?i)\b(?:herein|whereas|forthwith|hereinafter|aforementioned)\b`),
	}},
	{TypeAcademic, []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:research|study|hypothesis|methodology|findings|conclusion|abstract|citation)\b`),
		regexp.MustCompile(`(?i)\b(?:peer-reviewed|journal|publication|conference|symposium)\b`),
		regexp.MustCompile(`(?i)\b(?:methodology|literature|review|analysis|discussion)\b`),
	}},
	{TypeFinancial, []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:revenue|expense|asset|liability|equity|cash.?flow|balance.?sheet|income.?statement)\b`),
		regexp.MustCompile(`(?i)\b(?:GAAP|IFRS|SEC|audit|compliance|regulatory)\b`),
		regexp.MustCompile(`(?i)\b(?:USD|EUR|GBP|\$|€|£)\s*\d+(?:,\d{3})*(?:\.\d{2})?`),
	}},
	{TypeScientific, []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:experiment|hypothesis|theory|law|principle|constant|variable|measurement)\b`),
		regexp.MustCompile(`(?i)\b(?:laboratory|specimen|sample|analysis|data|results)\b`),
		regexp.MustCompile(`(?i)\b(?:temperature|pressure|volume|mass|density|concentration)\s*[:=]\s*\d+`),
	}},
	{TypeEngineering, []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:design|specification|drawing|blueprint|schematic|diagram)\b`),
		regexp.MustCompile(`(?i)\b(?:CAD|CAM|manufacturing|production|assembly|quality.?control)\b`),
		regexp.MustCompile(`(?i)\b(?:tolerance|dimension|material|component|system)\b`),
	}},
}

// DetectDocumentType scores the text against every indicator group and
// returns the best match, or TypeGeneral when nothing matches. The score
// for a type is the total number of regex matches across its patterns.
// Pure function; safe for concurrent use.
func DetectDocumentType(text string) DocumentType {
	best := TypeGeneral
	bestScore := 0
	for _, ind := range indicatorTable {
		score := 0
		for _, p := range ind.patterns {
			score += len(p.FindAllStringIndex(text, -1))
		}
		if score > bestScore {
			bestScore = score
			best = ind.docType
		}
	}
	return best
}
