// Package citations extracts legal citations from Brazilian legal text:
// articles, laws, súmulas, and code references.
package citations

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	// "Art. 74, § 1º, CF/88", "Artigo 121 do CP"
	reArticleSource = regexp.MustCompile(`(?i)art(?:igo)?\.?\s+(\d+)(?:,?\s*§\s*(\d+º?))?(?:,?\s*(?:da|do|de)?\s*)?(CF(?:/88)?|CRFB(?:/88)?|CP|CC|CLT|CDC|CPC|CPP|ECA|CTN)\b`)

	// "Art. 6º, inciso XXII, da Lei nº 14.133/21"
	reArticleLaw = regexp.MustCompile(`(?i)art(?:igo)?\.?\s+(\d+º?)(?:,?\s*(?:inciso|alínea)\s+([IVXivx]+|[a-z]))?(?:,?\s*§\s*(\d+º?))?(?:,?\s*(?:da|do|de)\s+)?Lei\s+(?:nº\s*|n\.?\s*)?(\d+(?:\.\d+)?)(?:/|,?\s*de\s+)(\d{2,4})`)

	// "Lei 8.112/90", "Lei nº 9.784 de 1999"
	reLawAlone = regexp.MustCompile(`(?i)Lei\s+(?:nº\s*|n\.?\s*)?(\d+(?:\.\d+)?)(?:/|,?\s*de\s+)(\d{2,4})`)

	// "Súmula 473 STF", "Súmula Vinculante 13"
	reSumula = regexp.MustCompile(`(?i)Súmula\s+(?:(Vinculante)\s+)?(?:nº\s*|n\.?\s*)?(\d+)(?:\s+(?:do\s+)?(STF|STJ))?`)

	// "Art. 121 do Código Penal", "Art. 5º da Constituição Federal"
	reArticleCode = regexp.MustCompile(`(?i)art(?:igo)?\.?\s+(\d+º?)(?:,?\s*§\s*(\d+º?))?\s+d[oa]\s+(Código\s+(?:Civil|Penal|de\s+Processo\s+(?:Civil|Penal))|Constituição(?:\s+Federal)?)`)
)

// Extract returns the normalized, deduplicated, sorted legal citations found
// in text
func Extract(text string) []string {
	if text == "" {
		return nil
	}

	seen := make(map[string]struct{})

	for _, m := range reArticleSource.FindAllStringSubmatch(text, -1) {
		article, paragraph := m[1], m[2]
		source := strings.ToUpper(m[3])
		switch source {
		case "CF", "CF/88", "CRFB", "CRFB/88":
			source = "CF/88"
		}
		if paragraph != "" {
			seen[fmt.Sprintf("Art. %s, § %s, %s", article, paragraph, source)] = struct{}{}
		} else {
			seen[fmt.Sprintf("Art. %s, %s", article, source)] = struct{}{}
		}
	}

	// Article+law matches claim their spans so the standalone-law pass below
	// does not double-report the embedded law reference.
	claimed := reArticleLaw.FindAllStringIndex(text, -1)
	for _, m := range reArticleLaw.FindAllStringSubmatch(text, -1) {
		article, inciso, paragraph, law, year := m[1], m[2], m[3], m[4], m[5]

		parts := []string{fmt.Sprintf("Art. %s", article)}
		if inciso != "" {
			parts = append(parts, fmt.Sprintf("inciso %s", strings.ToUpper(inciso)))
		}
		if paragraph != "" {
			parts = append(parts, fmt.Sprintf("§ %s", paragraph))
		}
		parts = append(parts, fmt.Sprintf("Lei %s/%s", law, normalizeYear(year)))
		seen[strings.Join(parts, ", ")] = struct{}{}
	}

	for _, idx := range reLawAlone.FindAllStringSubmatchIndex(text, -1) {
		if overlapsAny(idx[0], idx[1], claimed) {
			continue
		}
		law := text[idx[2]:idx[3]]
		year := text[idx[4]:idx[5]]
		seen[fmt.Sprintf("Lei %s/%s", law, normalizeYear(year))] = struct{}{}
	}

	for _, m := range reSumula.FindAllStringSubmatch(text, -1) {
		vinculante, number, court := m[1], m[2], m[3]
		switch {
		case vinculante != "":
			seen[fmt.Sprintf("Súmula Vinculante %s", number)] = struct{}{}
		case court != "":
			seen[fmt.Sprintf("Súmula %s %s", number, strings.ToUpper(court))] = struct{}{}
		default:
			seen[fmt.Sprintf("Súmula %s", number)] = struct{}{}
		}
	}

	for _, m := range reArticleCode.FindAllStringSubmatch(text, -1) {
		article, paragraph := m[1], m[2]
		source := abbreviateCode(m[3])
		if source == "" {
			continue
		}
		if paragraph != "" {
			seen[fmt.Sprintf("Art. %s, § %s, %s", article, paragraph, source)] = struct{}{}
		} else {
			seen[fmt.Sprintf("Art. %s, %s", article, source)] = struct{}{}
		}
	}

	if len(seen) == 0 {
		return nil
	}
	result := make([]string, 0, len(seen))
	for c := range seen {
		result = append(result, c)
	}
	sort.Strings(result)
	return result
}

// normalizeYear expands two-digit years: 21 -> 2021, 90 -> 1990
func normalizeYear(year string) string {
	if len(year) != 2 {
		return year
	}
	n, err := strconv.Atoi(year)
	if err != nil {
		return year
	}
	if n <= 50 {
		return "20" + year
	}
	return "19" + year
}

func overlapsAny(start, end int, spans [][]int) bool {
	for _, span := range spans {
		if end > span[0] && start < span[1] {
			return true
		}
	}
	return false
}

func abbreviateCode(code string) string {
	lower := strings.ToLower(code)
	switch {
	case strings.Contains(lower, "processo civil"):
		return "CPC"
	case strings.Contains(lower, "processo penal"):
		return "CPP"
	case strings.Contains(lower, "civil"):
		return "CC"
	case strings.Contains(lower, "penal"):
		return "CP"
	case strings.Contains(lower, "constituição"):
		return "CF/88"
	}
	return ""
}
