package scans

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// Extractor turns raw vision model text into a Partial analysis record. It
// runs an ordered list of strategies: a fenced or balanced JSON span first,
// then field-by-field regex probes, then the healthy override. Every
// strategy is total; a field that nothing matched stays absent.
type Extractor struct {
	// HealthyOverride replaces the whole result with the healthy record
	// whenever the raw text mentions "healthy" anywhere. On by default to
	// match the upstream prompt contract; disable it to let a mildly worded
	// diagnosis through.
	HealthyOverride bool
}

// NewExtractor returns an Extractor with the default override behavior.
func NewExtractor() *Extractor {
	return &Extractor{HealthyOverride: true}
}

var jsonFence = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")

// Case-insensitive field probes, tried in order; first match wins.
var (
	diseaseProbes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)disease:?\s*([^,.\n]*)`),
		regexp.MustCompile(`(?i)disease name:?\s*([^,.\n]*)`),
		regexp.MustCompile(`(?i)problem:?\s*([^,.\n]*)`),
	}
	confidenceProbes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)confidence:?\s*(\d+)`),
		regexp.MustCompile(`(?i)(\d+)%\s*confidence`),
		regexp.MustCompile(`(?i)(\d+)%\s*sure`),
	}
	areaProbes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)affected area:?\s*(\d+)%`),
		regexp.MustCompile(`(?i)(\d+)%\s*of the plant`),
		regexp.MustCompile(`(?i)about\s*(\d+)%`),
	}
	treatmentProbe  = regexp.MustCompile(`(?i)treatment:?\s*([^.]*\.)`)
	preventionProbe = regexp.MustCompile(`(?i)prevention:?\s*([^.]*\.)`)
)

// Extract parses rawText into a Partial record.
func (e *Extractor) Extract(rawText string) Partial {
	partial, ok := extractJSON(rawText)
	if !ok {
		partial = extractPatterns(rawText)
	}

	if e.HealthyOverride && strings.Contains(strings.ToLower(rawText), "healthy") {
		healthy := HealthyResult()
		partial = Partial{
			Disease:      &healthy.Disease,
			Confidence:   &healthy.Confidence,
			AffectedArea: &healthy.AffectedArea,
			Treatment:    &healthy.Treatment,
			Prevention:   &healthy.Prevention,
		}
	}
	return partial
}

// extractJSON tries the structured path: a ```json fenced block, or else the
// first balanced {...} span. ok is false when no span exists or it does not
// parse, so the caller falls through to pattern probes.
func extractJSON(rawText string) (Partial, bool) {
	span := ""
	if m := jsonFence.FindStringSubmatch(rawText); m != nil {
		span = m[1]
	} else {
		span = balancedSpan(rawText)
	}
	if span == "" {
		return Partial{}, false
	}

	var record struct {
		Disease      *string `json:"disease"`
		Confidence   any     `json:"confidence"`
		AffectedArea *string `json:"affectedArea"`
		Treatment    *string `json:"treatment"`
		Prevention   *string `json:"prevention"`
	}
	if err := json.Unmarshal([]byte(span), &record); err != nil {
		return Partial{}, false
	}

	return Partial{
		Disease:      trimmed(record.Disease),
		Confidence:   coerceConfidence(record.Confidence),
		AffectedArea: trimmed(record.AffectedArea),
		Treatment:    trimmed(record.Treatment),
		Prevention:   trimmed(record.Prevention),
	}, true
}

// balancedSpan returns the first brace-balanced object literal in text,
// skipping braces inside JSON strings.
func balancedSpan(text string) string {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}

// extractPatterns runs the regex probes. Misses leave fields nil so the
// Service's defaulting applies the same way as on the structured path.
func extractPatterns(rawText string) Partial {
	var p Partial

	for _, probe := range diseaseProbes {
		if m := probe.FindStringSubmatch(rawText); m != nil {
			if v := strings.TrimSpace(m[1]); v != "" {
				p.Disease = &v
			}
			break
		}
	}

	for _, probe := range confidenceProbes {
		if m := probe.FindStringSubmatch(rawText); m != nil {
			if v, err := strconv.Atoi(m[1]); err == nil {
				p.Confidence = &v
			}
			break
		}
	}

	for _, probe := range areaProbes {
		if m := probe.FindStringSubmatch(rawText); m != nil {
			v := m[1] + "%"
			p.AffectedArea = &v
			break
		}
	}

	if m := treatmentProbe.FindStringSubmatch(rawText); m != nil {
		if v := strings.TrimSpace(m[1]); v != "" {
			p.Treatment = &v
		}
	}
	if m := preventionProbe.FindStringSubmatch(rawText); m != nil {
		if v := strings.TrimSpace(m[1]); v != "" {
			p.Prevention = &v
		}
	}
	return p
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// coerceConfidence accepts the number formats models actually emit: a JSON
// number, or a string like "92" or "92%". Unparseable or non-positive values
// count as absent.
func coerceConfidence(raw any) *int {
	switch v := raw.(type) {
	case float64:
		if v <= 0 {
			return nil
		}
		n := int(v)
		return &n
	case string:
		s := strings.TrimSuffix(strings.TrimSpace(v), "%")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || f <= 0 {
			return nil
		}
		n := int(f)
		return &n
	default:
		return nil
	}
}
