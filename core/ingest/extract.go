// ABOUTME: Classification-code extraction from inconsistently shaped dataset rows
// ABOUTME: Typed recursive walk first, text-pattern scan of the raw JSON as fallback

package ingest

import (
	"regexp"
	"strconv"
	"strings"

	"ao-radar-api/core/rules"
)

// cpvKeys are the field names that carry classification codes across the
// dataset shapes seen in practice.
var cpvKeys = map[string]bool{
	"cpv":       true,
	"cpvs":      true,
	"code_cpv":  true,
	"codecpv":   true,
	"cpv_code":  true,
	"cpv_codes": true,
	"cpv_liste": true,
}

// cpvScanPattern recovers codes embedded as substrings inside the serialized
// row, including nested list/value pairs where the list name and its code
// are separated by intervening JSON structure.
var cpvScanPattern = regexp.MustCompile(`(?i)cpv[^0-9]{0,80}?(\d{8})`)

// ExtractCodes collects classification codes from a dataset row. The typed
// walk over the parsed structure handles direct array/scalar fields under
// known key names; the text scan over the raw JSON catches shapes the typed
// model did not anticipate. Discovered codes are normalized to their leading
// eight digits and deduplicated, preserving discovery order.
func ExtractCodes(row map[string]interface{}, raw []byte) []string {
	var codes []string
	seen := make(map[string]bool)

	add := func(value string) {
		normalized := rules.NormalizeCPV(value)
		if normalized == "" || seen[normalized] {
			return
		}
		seen[normalized] = true
		codes = append(codes, normalized)
	}

	walkCodes(row, false, add)

	for _, match := range cpvScanPattern.FindAllStringSubmatch(string(raw), -1) {
		add(match[1])
	}

	return codes
}

// walkCodes recurses through the parsed structure. Values reached under a
// CPV-named key (at any depth below it) are collected; everything else is
// only traversed.
func walkCodes(value interface{}, underCPVKey bool, add func(string)) {
	switch v := value.(type) {
	case map[string]interface{}:
		for key, child := range v {
			walkCodes(child, underCPVKey || cpvKeys[strings.ToLower(key)], add)
		}
	case []interface{}:
		for _, child := range v {
			walkCodes(child, underCPVKey, add)
		}
	case string:
		if underCPVKey {
			add(v)
		}
	case float64:
		if underCPVKey {
			add(strconv.FormatFloat(v, 'f', -1, 64))
		}
	}
}
