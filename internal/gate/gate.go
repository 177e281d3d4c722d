// Package gate decides, per rendered FAQ entry, whether a hot answer is
// served in full or split into a visible prefix and a withheld remainder,
// based on what the browser has already told us about the reader.
package gate

import (
	"strings"

	"github.com/glancery/glancery/internal/domain"
	"github.com/glancery/glancery/internal/helper"
)

// PrefixWords is how much of a gated answer stays readable.
const PrefixWords = 10

// Inputs are the reader-side signals, in precedence order. UnlockIndex is a
// 0-based index into the filtered FAQ list carried by an emailed unlock link;
// -1 means none. KnownEmail is true when the browser holds a reader email
// cookie. Following is true when the current publication appears in the
// followed-publishers cookie.
type Inputs struct {
	UnlockIndex int
	KnownEmail  bool
	Following   bool
}

// FilterVisible drops FAQ entries whose question is empty or whitespace.
// All gating and unlock indices are relative to the returned slice, not the
// original three-slot array.
func FilterVisible(faqs []domain.FAQ) []domain.FAQ {
	out := make([]domain.FAQ, 0, len(faqs))
	for _, f := range faqs {
		if strings.TrimSpace(f.Text) == "" {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Unlocked reports whether the answer at index idx is served in full.
// Non-hot answers always are. A known email or a followed publication
// unlocks everything; an explicit unlock indicator unlocks only its own
// question.
func Unlocked(in Inputs, faq domain.FAQ, idx int) bool {
	if !faq.IsHot {
		return true
	}
	if in.UnlockIndex >= 0 && in.UnlockIndex == idx {
		return true
	}
	return in.KnownEmail || in.Following
}

// SplitAnswer divides an answer into the visible prefix (first PrefixWords
// words) and the gated remainder. An answer at or under the limit has no
// remainder.
func SplitAnswer(answer string) (prefix, rest string) {
	words := strings.Fields(answer)
	if len(words) <= PrefixWords {
		return answer, ""
	}
	return strings.Join(words[:PrefixWords], " "), strings.Join(words[PrefixWords:], " ")
}

// IsFollowing matches the publication name against the followed list using
// trimmed, lower-cased comparison on both sides.
func IsFollowing(publication string, followed []string) bool {
	want := helper.NormalizeName(publication)
	if want == "" {
		return false
	}
	for _, f := range followed {
		if helper.NormalizeName(f) == want {
			return true
		}
	}
	return false
}

// DefaultOpen picks the accordion entry opened on first render. An explicit
// valid index wins. Otherwise wide viewports open the first hot entry, or
// entry 0 when none is hot; narrow viewports open nothing. Returns -1 for
// "keep everything collapsed". Evaluated per request, so a viewport change
// simply yields a fresh answer on the next load.
func DefaultOpen(explicit int, wide bool, faqs []domain.FAQ) int {
	if explicit >= 0 && explicit < len(faqs) {
		return explicit
	}
	if !wide || len(faqs) == 0 {
		return -1
	}
	for i, f := range faqs {
		if f.IsHot {
			return i
		}
	}
	return 0
}
