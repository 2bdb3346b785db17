// Package docctx extracts best-effort document context: party names,
// incorporation states, governing law and venue. Everything here is
// regex-based heuristics over normalized text; empty results are normal
// and never an error.
package docctx

import (
	"regexp"
	"strings"

	"github.com/ZaBrisket/ndareview/internal/core/domain"
)

// preambleWindow bounds the capitalized-run fallback scan for party names.
const preambleWindow = 1200

var (
	// betweenPattern captures the two party names from a
	// "between X ..., and Y ..." preamble.
	betweenPattern = regexp.MustCompile(`(?s)\bbetween\s+([A-Z][^,(\n]{1,80}?)\s*[,(].{0,200}?\band\s+([A-Z][^,(\n]{1,80}?)\s*[,(]`)

	// capitalizedRun matches 2-5 consecutive capitalized words, the
	// fallback source for party names.
	capitalizedRun = regexp.MustCompile(`\b[A-Z][A-Za-z&.]+(?:\s+[A-Z][A-Za-z&.]+){1,4}\b`)

	// lawsOfState matches "laws of the State of X" phrasing.
	lawsOfState = regexp.MustCompile(`(?i)\blaws?\s+of\s+the\s+State\s+of\s+([A-Za-z]+(?:\s+[A-Za-z]+)?)`)

	// stateEntity matches "a Delaware corporation" style incorporation.
	stateEntity = regexp.MustCompile(`\ba(?:n)?\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)\s+(?:corporation|limited\s+liability\s+company|company|partnership)`)

	// governingLaw matches "governed by ... laws of [the State of] X".
	governingLaw = regexp.MustCompile(`(?is)\b(?:governed\s+by|governing\s+law)\b.{0,120}?\blaws?\s+of\s+(?:the\s+State\s+of\s+)?([A-Za-z]+(?:\s+[A-Za-z]+)?)`)

	// venuePattern matches "exclusive jurisdiction/venue in/of/for CITY, STATE".
	venuePattern = regexp.MustCompile(`(?is)\bexclusive\s+(?:jurisdiction|venue)\b.{0,80}?\b(?:in|of|for)\s+([A-Z][A-Za-z .]+?),\s*([A-Za-z]+(?:\s+[A-Za-z]+)?)`)
)

// fallbackStopwords excludes boilerplate capitalized runs from party-name
// fallback scanning.
var fallbackStopwords = []string{
	"agreement", "confidential", "disclosure", "effective date",
	"this ", "the ", "whereas", "recitals", "mutual",
}

// Extract pulls party, incorporation, governing-law and venue context out
// of normalized document text. All fields are best-effort.
func Extract(text string) domain.DocumentContext {
	var ctx domain.DocumentContext

	ctx.Parties = extractParties(text)
	ctx.PartyStates = extractPartyStates(text)
	ctx.GoverningLaw = extractGoverningLaw(text)
	ctx.Venue = extractVenue(text)

	return ctx
}

// extractParties tries the "between X ... and Y ..." preamble pattern first,
// then falls back to scanning capitalized runs near the top of the document.
func extractParties(text string) []string {
	if m := betweenPattern.FindStringSubmatch(text); m != nil {
		return []string{cleanParty(m[1]), cleanParty(m[2])}
	}

	window := text
	if len(window) > preambleWindow {
		window = window[:preambleWindow]
	}

	var parties []string
	for _, run := range capitalizedRun.FindAllString(window, -1) {
		if isStopRun(run) || NormalizeState(run) != "" {
			continue
		}
		if !containsString(parties, run) {
			parties = append(parties, run)
		}
		if len(parties) == 2 {
			break
		}
	}
	return parties
}

func cleanParty(name string) string {
	return strings.TrimSpace(strings.Trim(name, " .,"))
}

func isStopRun(run string) bool {
	lower := strings.ToLower(run) + " "
	for _, stop := range fallbackStopwords {
		if strings.Contains(lower, stop) {
			return true
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// resolveState normalizes a raw capture that may carry trailing words
// ("Delaware without regard"): the full capture is tried first, then its
// two-word and one-word prefixes.
func resolveState(raw string) string {
	if state := NormalizeState(raw); state != "" {
		return state
	}
	words := strings.Fields(raw)
	if len(words) >= 2 {
		if state := NormalizeState(words[0] + " " + words[1]); state != "" {
			return state
		}
	}
	if len(words) >= 1 {
		return NormalizeState(words[0])
	}
	return ""
}

// extractPartyStates collects incorporation states from "laws of the State
// of X" and "a [STATE] corporation" phrasing, deduplicated in order.
func extractPartyStates(text string) []string {
	var states []string
	add := func(raw string) {
		if state := resolveState(raw); state != "" && !containsString(states, state) {
			states = append(states, state)
		}
	}

	for _, m := range stateEntity.FindAllStringSubmatch(text, -1) {
		add(m[1])
	}
	for _, m := range lawsOfState.FindAllStringSubmatch(text, -1) {
		add(m[1])
	}
	return states
}

func extractGoverningLaw(text string) string {
	m := governingLaw.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return resolveState(m[1])
}

func extractVenue(text string) *domain.Venue {
	m := venuePattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	state := resolveState(m[2])
	if state == "" {
		return nil
	}
	return &domain.Venue{
		City:  strings.TrimSpace(m[1]),
		State: state,
	}
}
