package textproc

import (
	"regexp"
	"strings"
)

const (
	defaultChunkSize = 2000
	defaultOverlap   = 200

	// maxBoundaryWindow caps how far the boundary search may look past
	// (or before) the target cut point.
	maxBoundaryWindow = 200
)

var (
	sentenceBoundaryRe = regexp.MustCompile(`\.\s+[A-Z]`)
	numberedItemRe     = regexp.MustCompile(`\n\d+\.\s+`)
)

// boundaryMarkers configures the cut points one chunking pass prefers.
// The full set is used by structure-aware chunking; the legacy set keeps
// the reduced behavior of the original plain splitter (no sentence or
// heading-level detection).
type boundaryMarkers struct {
	literals  []string         // searched forward with strings.Index
	patterns  []*regexp.Regexp // searched forward with FindStringIndex
	backPunct bool             // search backward for ". " and ", " too
}

var (
	fullMarkers = boundaryMarkers{
		literals:  []string{"\n\n", "\n- ", "\n# ", "\n## ", "\n### "},
		patterns:  []*regexp.Regexp{sentenceBoundaryRe, numberedItemRe},
		backPunct: true,
	}
	legacyMarkers = boundaryMarkers{
		literals: []string{"\n\n", "\n- ", "\n### "},
	}
)

// chunkSpan is a half-open [start, end) byte range in the source text.
type chunkSpan struct {
	start, end int
}

// chunkSpans runs the boundary-aware sliding window over text and
// returns the covering spans. Invariants: spans are non-empty, start
// strictly increases, adjacent spans overlap by at most overlap bytes,
// and the union of spans is exactly [0, len(text)).
//
// Parameters are normalized rather than rejected: size is floored at 1
// and overlap clamped to [0, size-1], so the walk always terminates.
func chunkSpans(text string, size, overlap int, markers boundaryMarkers, preferForward bool) []chunkSpan {
	length := len(text)
	if size < 1 {
		size = 1
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap > size-1 {
		overlap = size - 1
	}
	window := size / 2
	if window > maxBoundaryWindow {
		window = maxBoundaryWindow
	}

	var spans []chunkSpan
	start := 0
	for start < length {
		targetEnd := start + size
		if targetEnd > length {
			targetEnd = length
		}
		end := targetEnd

		forwardEnd := targetEnd + window
		if forwardEnd > length {
			forwardEnd = length
		}
		forward := text[targetEnd:forwardEnd]

		backStart := targetEnd - window
		if backStart < start {
			backStart = start
		}
		backward := text[backStart:targetEnd]

		if off := forwardBreak(forward, markers, preferForward); off >= 0 {
			end = targetEnd + off
		} else if off := backwardBreak(backward, markers); off >= 0 {
			end = backStart + off
		}

		if end <= start {
			end = targetEnd
		}
		spans = append(spans, chunkSpan{start: start, end: end})

		if end == length {
			break
		}
		// Advance with overlap. The backward search can land close to
		// start, so force strict progress to keep the walk finite.
		next := end - overlap
		if next <= start {
			next = start + 1
		}
		start = next
	}
	return spans
}

// forwardBreak returns the earliest marker offset in the forward slice,
// or -1 when none is present (or forward search is disabled).
func forwardBreak(slice string, markers boundaryMarkers, enabled bool) int {
	if !enabled {
		return -1
	}
	best := -1
	for _, lit := range markers.literals {
		if i := strings.Index(slice, lit); i >= 0 && (best < 0 || i < best) {
			best = i
		}
	}
	for _, p := range markers.patterns {
		if loc := p.FindStringIndex(slice); loc != nil && (best < 0 || loc[0] < best) {
			best = loc[0]
		}
	}
	return best
}

// backwardBreak returns the offset of the latest clean break in the
// backward slice: the last line break, else the last ". ", else a
// trailing ", " within the final 50 bytes. -1 when nothing qualifies.
func backwardBreak(slice string, markers boundaryMarkers) int {
	if i := strings.LastIndex(slice, "\n"); i >= 0 {
		return i
	}
	if !markers.backPunct {
		return -1
	}
	if i := strings.LastIndex(slice, ". "); i >= 0 {
		return i
	}
	if i := strings.LastIndex(slice, ", "); i >= 0 && i > len(slice)-50 {
		return i
	}
	return -1
}

// SmartChunk splits text into overlapping, boundary-aware chunks with
// paragraph metadata. Pass Size/Overlap of 0 to use the defaults.
func SmartChunk(text string, opts ChunkOptions) []TextChunk {
	processed := text
	if opts.CleanText == nil || *opts.CleanText {
		processed = cleanArtifacts(text)
	}

	size := opts.Size
	if size == 0 {
		size = defaultChunkSize
	}
	overlap := opts.Overlap
	if overlap == 0 {
		overlap = defaultOverlap
	}
	preserve := opts.PreserveStructure == nil || *opts.PreserveStructure

	spans := chunkSpans(processed, size, overlap, fullMarkers, preserve)

	chunks := make([]TextChunk, 0, len(spans))
	paragraphCount := 0
	for _, s := range spans {
		body := processed[s.start:s.end]
		chunks = append(chunks, TextChunk{
			Text:       body,
			StartIndex: s.start,
			EndIndex:   s.end,
			Metadata:   ChunkMetadata{Paragraph: paragraphCount},
		})
		paragraphCount += strings.Count(body, "\n\n")
	}
	return chunks
}

// ChunkText is the plain splitter used by upload routes: same sliding
// window and coverage guarantees as SmartChunk but with the reduced
// marker set and no metadata.
func ChunkText(text string, size, overlap int) []string {
	spans := chunkSpans(text, size, overlap, legacyMarkers, true)
	out := make([]string, 0, len(spans))
	for _, s := range spans {
		out = append(out, text[s.start:s.end])
	}
	return out
}

var (
	technicalHintRe = regexp.MustCompile(`(?i)\b(?:algorithm|function|method|variable|parameter|return)\b`)
	narrativeHintRe = regexp.MustCompile(`(?i)\b(?:story|narrative|character|plot|scene)\b`)
	sentenceSplitRe = regexp.MustCompile(`[.!?]+`)
)

// OptimizeChunkSize suggests a chunk size for the text based on its
// average sentence length and whether it reads as technical or
// narrative prose. The result is bounded to [500, 3000].
func OptimizeChunkSize(text string, target int) int {
	if target <= 0 {
		target = defaultChunkSize
	}

	var total, count int
	for _, s := range sentenceSplitRe.Split(text, -1) {
		if s = strings.TrimSpace(s); s != "" {
			total += len(s)
			count++
		}
	}
	avgSentence := 0
	if count > 0 {
		avgSentence = total / count
	}

	optimal := target
	isTechnical := technicalHintRe.MatchString(text)
	isNarrative := narrativeHintRe.MatchString(text)
	switch {
	case isTechnical && !isNarrative:
		if byLength := avgSentence * 15; byLength > 1000 {
			optimal = min(target, byLength)
		} else {
			optimal = min(target, 1000)
		}
	case isNarrative && avgSentence < 100:
		optimal = min(target*12/10, 2500)
	}

	return max(500, min(3000, optimal))
}
