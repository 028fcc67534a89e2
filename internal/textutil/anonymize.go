// Package textutil holds pure text helpers: on-device anonymization for
// AI prompts and journal statistics. Everything here is heuristic and
// best-effort; nothing is part of the security model.
package textutil

import (
	"fmt"
	"regexp"
	"strings"
)

// commonWords are capitalized-looking words that are never proper nouns.
var commonWords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`
		i the a an and or but so yet for nor
		my me we our you your he she it they
		this that these those is am are was were
		be been being have has had do does did
		will would could should may might can shall
		to of in on at by with from as into
		about after before between through during without
		not no all each every both few more most
		other some such than too very just also
		now then here there when where why how
		if because although while since until unless
		really actually never always sometimes often
		today tomorrow yesterday already still again
		monday tuesday wednesday thursday friday saturday sunday
		january february march april may june july
		august september october november december
		new good great first last long little own
		old right big high different small large next
		early young important public bad same able
		much many well back even what which who
		going got went made felt think know want
		said like thing things way time day days
		life world something nothing everything everyone
		someone anyone anything`) {
		commonWords[w] = struct{}{}
	}
}

var personPlaceholders = []string{"someone", "a friend", "a colleague", "a person"}

var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	urlRe   = regexp.MustCompile(`https?://\S+`)
	phoneRe = regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?\(?\d{2,4}\)?[-.\s]?\d{3,4}[-.\s]?\d{3,4}`)
	yearRe  = regexp.MustCompile(`^\d{4}$`)

	monthNames = `Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|Jun(?:e)?|Jul(?:y)?|Aug(?:ust)?|Sep(?:tember)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?`

	dateMonthFirstRe = regexp.MustCompile(`(?i)\b(?:` + monthNames + `)\.?\s+\d{1,2},?\s+\d{4}\b`)
	dateDayFirstRe   = regexp.MustCompile(`(?i)\b\d{1,2}\s+(?:` + monthNames + `)\.?\s+\d{4}\b`)
	dateNumericRe    = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{4}\b`)

	// RE2 has no lookbehind, so the preceding token is captured and kept.
	properNounRe = regexp.MustCompile(`([,;]\s+|\b(?:and|with|to|from|at|in)\s+)([A-Z][a-z]{2,})`)
)

// Replacement records one substitution so the AI output can be
// re-personalized afterwards. The key encodes the replacement index
// because the same placeholder may appear more than once.
type Replacement struct {
	Key         string
	Placeholder string
	Original    string
}

// Result is the anonymized text plus the ordered replacement list.
type Result struct {
	Cleaned      string
	Replacements []Replacement
}

// Anonymize strips likely PII from text before it leaves the device:
// emails, URLs, phone numbers, dates and (heuristically) proper nouns are
// replaced with generic placeholders.
func Anonymize(text string) *Result {
	r := &Result{Cleaned: text}
	personIndex := 0

	record := func(placeholder, original string) string {
		r.Replacements = append(r.Replacements, Replacement{
			Key:         fmt.Sprintf("%s_%d", placeholder, len(r.Replacements)),
			Placeholder: placeholder,
			Original:    original,
		})
		return placeholder
	}

	r.Cleaned = emailRe.ReplaceAllStringFunc(r.Cleaned, func(m string) string {
		return record("[email]", m)
	})
	r.Cleaned = urlRe.ReplaceAllStringFunc(r.Cleaned, func(m string) string {
		return record("[link]", m)
	})
	r.Cleaned = phoneRe.ReplaceAllStringFunc(r.Cleaned, func(m string) string {
		// leave bare years alone
		if yearRe.MatchString(strings.TrimSpace(m)) {
			return m
		}
		return record("[phone]", m)
	})
	for _, re := range []*regexp.Regexp{dateMonthFirstRe, dateDayFirstRe, dateNumericRe} {
		r.Cleaned = re.ReplaceAllStringFunc(r.Cleaned, func(m string) string {
			return record("[date]", m)
		})
	}
	r.Cleaned = properNounRe.ReplaceAllStringFunc(r.Cleaned, func(m string) string {
		parts := properNounRe.FindStringSubmatch(m)
		prefix, word := parts[1], parts[2]
		if _, ok := commonWords[strings.ToLower(word)]; ok {
			return m
		}
		placeholder := personPlaceholders[personIndex%len(personPlaceholders)]
		personIndex++
		return prefix + record(placeholder, word)
	})

	return r
}

// Repersonalize puts the originals back into AI output, replacing the
// first remaining occurrence of each placeholder in recorded order.
func Repersonalize(text string, replacements []Replacement) string {
	for _, r := range replacements {
		text = strings.Replace(text, r.Placeholder, r.Original, 1)
	}
	return text
}
