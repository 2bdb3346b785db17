// Package lemma maps surface word forms to canonical base forms.
//
// Lemmatization tries a verb reading first, then a noun reading, then an
// adjective reading, and falls back to the input unchanged. The function is
// pure and total: the same token always yields the same lemma and there are
// no error cases.
package lemma

import "strings"

// irregularVerbs maps inflected verb forms to their base form.
var irregularVerbs = map[string]string{
	"am": "be", "is": "be", "are": "be", "was": "be", "were": "be", "been": "be", "being": "be",
	"has": "have", "had": "have", "having": "have",
	"does": "do", "did": "do", "done": "do", "doing": "do",
	"went": "go", "gone": "go",
	"made": "make", "making": "make",
	"gave": "give", "given": "give", "giving": "give",
	"took": "take", "taken": "take", "taking": "take",
	"held": "hold", "holding": "hold",
	"kept": "keep", "keeping": "keep",
	"sold": "sell", "selling": "sell",
	"paid": "pay", "paying": "pay",
	"bound": "bind", "binding": "bind",
	"brought": "bring", "bringing": "bring",
	"sought": "seek", "seeking": "seek",
	"shall": "shall", "will": "will", "may": "may", "must": "must",
}

// irregularNouns maps irregular plurals to their singular.
var irregularNouns = map[string]string{
	"parties": "party", "copies": "copy", "remedies": "remedy",
	"entities": "entity", "damages": "damage", "premises": "premise",
	"children": "child", "people": "person",
	"analyses": "analysis", "bases": "basis",
}

// vowels used by the doubled-consonant rule.
const vowels = "aeiou"

// Word returns the canonical lemma for a lowercased token, trying the verb
// form, then the noun form, then the adjective form, falling back to the
// token unchanged.
func Word(token string) string {
	if token == "" {
		return token
	}
	if v, ok := verb(token); ok {
		return v
	}
	if n, ok := noun(token); ok {
		return n
	}
	if a, ok := adjective(token); ok {
		return a
	}
	return token
}

// Sequence lemmatizes every token in order.
func Sequence(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = Word(t)
	}
	return out
}

// verb reduces verbal inflections: irregulars, -ing, -ed, third-person -s.
func verb(token string) (string, bool) {
	if base, ok := irregularVerbs[token]; ok {
		return base, true
	}

	switch {
	case strings.HasSuffix(token, "ying") && len(token) > 5:
		// certifying -> certify
		return token[:len(token)-4] + "y", true
	case strings.HasSuffix(token, "ing") && len(token) > 5:
		return undouble(restoreE(token[:len(token)-3])), true
	case strings.HasSuffix(token, "ied") && len(token) > 4:
		// notified -> notify
		return token[:len(token)-3] + "y", true
	case strings.HasSuffix(token, "ed") && len(token) > 4:
		return undouble(restoreE(token[:len(token)-2])), true
	case strings.HasSuffix(token, "ies") && len(token) > 4:
		// carries -> carry
		return token[:len(token)-3] + "y", true
	case strings.HasSuffix(token, "sses") || strings.HasSuffix(token, "xes") ||
		strings.HasSuffix(token, "ches") || strings.HasSuffix(token, "shes"):
		return token[:len(token)-2], true
	}
	return "", false
}

// noun reduces plural nouns to singular.
func noun(token string) (string, bool) {
	if base, ok := irregularNouns[token]; ok {
		return base, true
	}

	switch {
	case strings.HasSuffix(token, "ies") && len(token) > 4:
		return token[:len(token)-3] + "y", true
	case strings.HasSuffix(token, "ses") || strings.HasSuffix(token, "xes") ||
		strings.HasSuffix(token, "zes") || strings.HasSuffix(token, "ches") ||
		strings.HasSuffix(token, "shes"):
		return token[:len(token)-2], true
	case strings.HasSuffix(token, "s") && !strings.HasSuffix(token, "ss") &&
		!strings.HasSuffix(token, "us") && !strings.HasSuffix(token, "is") &&
		len(token) > 3:
		return token[:len(token)-1], true
	}
	return "", false
}

// adjective strips comparative and superlative suffixes.
func adjective(token string) (string, bool) {
	switch {
	case strings.HasSuffix(token, "iest") && len(token) > 5:
		return token[:len(token)-4] + "y", true
	case strings.HasSuffix(token, "ier") && len(token) > 4:
		return token[:len(token)-3] + "y", true
	case strings.HasSuffix(token, "est") && len(token) > 5:
		return token[:len(token)-3], true
	}
	return "", false
}

// restoreE adds back a trailing "e" dropped before -ing/-ed when the stem
// ends in a pattern that requires it (delet -> delete, declin -> decline).
func restoreE(stem string) string {
	if len(stem) < 3 {
		return stem
	}
	last := stem[len(stem)-1]
	prev := stem[len(stem)-2]
	// consonant + consonant stems like "disclos", "terminat", "delet"
	// generally restore the e; doubled consonants do not (stopp -> stop).
	if !isVowel(last) && isVowel(prev) && last != 'w' && last != 'x' && last != 'y' {
		switch last {
		case 't', 's', 'd', 'n', 'r', 'v', 'z', 'c', 'g', 'u':
			return stem + "e"
		}
	}
	return stem
}

// undouble collapses a doubled final consonant left by -ing/-ed stripping
// (stopp -> stop, referr -> refer).
func undouble(stem string) string {
	n := len(stem)
	if n >= 2 && stem[n-1] == stem[n-2] && !isVowel(stem[n-1]) &&
		stem[n-1] != 'l' && stem[n-1] != 's' && stem[n-1] != 'e' {
		return stem[:n-1]
	}
	return stem
}

func isVowel(b byte) bool {
	return strings.IndexByte(vowels, b) >= 0
}
