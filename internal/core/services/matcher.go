package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ZaBrisket/ndareview/internal/cache"
)

// matcherCacheSize bounds the compiled-pattern cache. Eviction only costs
// recompilation.
const matcherCacheSize = 256

// Matcher is an immutable compiled clause pattern with case-insensitive,
// global-search semantics. Produced by a pure compile step and shared via
// the bounded matcher cache.
type Matcher struct {
	re *regexp.Regexp
}

// compileMatcher builds a Matcher from a checklist phrase. A phrase wrapped
// in slashes ("/term|duration/") is compiled as a regular expression;
// anything else matches as a literal substring. Regex phrases can fail to
// compile, in which case the clause degrades to its remaining checks.
func compileMatcher(phrase string) (*Matcher, error) {
	var expr string
	if len(phrase) > 2 && strings.HasPrefix(phrase, "/") && strings.HasSuffix(phrase, "/") {
		expr = "(?is)" + phrase[1:len(phrase)-1]
	} else {
		expr = "(?is)" + regexp.QuoteMeta(phrase)
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compiling pattern %q: %w", phrase, err)
	}
	return &Matcher{re: re}, nil
}

// Matches reports whether the pattern occurs anywhere in text.
func (m *Matcher) Matches(text string) bool {
	return m.re.MatchString(text)
}

// matcherCache shares compiled matchers across evaluations.
type matcherCache struct {
	lru *cache.LRU[string, *Matcher]
}

func newMatcherCache() *matcherCache {
	return &matcherCache{lru: cache.New[string, *Matcher](matcherCacheSize)}
}

// get returns the compiled matcher for a phrase, compiling on a miss.
// Compile failures are not cached; each evaluation reports them afresh.
func (c *matcherCache) get(phrase string) (*Matcher, error) {
	if m, ok := c.lru.Get(phrase); ok {
		return m, nil
	}
	m, err := compileMatcher(phrase)
	if err != nil {
		return nil, err
	}
	c.lru.Put(phrase, m)
	return m, nil
}
