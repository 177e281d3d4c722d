package gate_test

import (
	"strings"
	"testing"

	"github.com/glancery/glancery/internal/domain"
	"github.com/glancery/glancery/internal/gate"
)

func TestFilterVisibleDropsEmptyQuestions(t *testing.T) {
	faqs := []domain.FAQ{
		{Text: "What is this?", A: "a product"},
		{Text: "   ", A: "orphan answer"},
		{Text: "", A: "another orphan"},
		{Text: "Why?", A: "because", IsHot: true},
	}
	got := gate.FilterVisible(faqs)
	if len(got) != 2 {
		t.Fatalf("visible = %d, want 2", len(got))
	}
	if got[0].Text != "What is this?" || got[1].Text != "Why?" {
		t.Fatalf("unexpected order: %+v", got)
	}
	// indices are relative to the filtered list
	if !got[1].IsHot {
		t.Fatal("hot entry must be at filtered index 1")
	}
}

func TestUnlockedPrecedence(t *testing.T) {
	hot := domain.FAQ{Text: "q", A: "a", IsHot: true}
	cold := domain.FAQ{Text: "q", A: "a"}

	cases := []struct {
		name string
		in   gate.Inputs
		faq  domain.FAQ
		idx  int
		want bool
	}{
		{"cold always open", gate.Inputs{UnlockIndex: -1}, cold, 0, true},
		{"hot locked by default", gate.Inputs{UnlockIndex: -1}, hot, 0, false},
		{"explicit unlock matches index", gate.Inputs{UnlockIndex: 1}, hot, 1, true},
		{"explicit unlock only its own question", gate.Inputs{UnlockIndex: 1}, hot, 0, false},
		{"known email unlocks all", gate.Inputs{UnlockIndex: -1, KnownEmail: true}, hot, 2, true},
		{"followed publication unlocks all", gate.Inputs{UnlockIndex: -1, Following: true}, hot, 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := gate.Unlocked(tc.in, tc.faq, tc.idx); got != tc.want {
				t.Fatalf("Unlocked = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSplitAnswer(t *testing.T) {
	long := "one two three four five six seven eight nine ten eleven twelve"
	prefix, rest := gate.SplitAnswer(long)
	if prefix != "one two three four five six seven eight nine ten" {
		t.Fatalf("prefix = %q", prefix)
	}
	if rest != "eleven twelve" {
		t.Fatalf("rest = %q", rest)
	}
	if len(strings.Fields(prefix)) != gate.PrefixWords {
		t.Fatalf("prefix has %d words", len(strings.Fields(prefix)))
	}

	short := "only five words in here"
	prefix, rest = gate.SplitAnswer(short)
	if prefix != short || rest != "" {
		t.Fatalf("short answer must not be split: %q / %q", prefix, rest)
	}
}

func TestIsFollowing(t *testing.T) {
	followed := []string{"  Daily Brew ", "tech-notes"}
	if !gate.IsFollowing("daily brew", followed) {
		t.Fatal("normalized match expected")
	}
	if !gate.IsFollowing(" TECH-NOTES ", followed) {
		t.Fatal("case-insensitive match expected")
	}
	if gate.IsFollowing("other pub", followed) {
		t.Fatal("no match expected")
	}
	if gate.IsFollowing("", followed) {
		t.Fatal("empty publication never matches")
	}
}

func TestDefaultOpen(t *testing.T) {
	faqs := []domain.FAQ{
		{Text: "a", A: "x"},
		{Text: "b", A: "y", IsHot: true},
		{Text: "c", A: "z"},
	}

	if got := gate.DefaultOpen(2, false, faqs); got != 2 {
		t.Fatalf("explicit index wins, got %d", got)
	}
	if got := gate.DefaultOpen(5, true, faqs); got != 1 {
		t.Fatalf("out-of-range explicit falls back to first hot, got %d", got)
	}
	if got := gate.DefaultOpen(-1, true, faqs); got != 1 {
		t.Fatalf("wide opens first hot, got %d", got)
	}
	if got := gate.DefaultOpen(-1, false, faqs); got != -1 {
		t.Fatalf("narrow opens nothing, got %d", got)
	}
	cold := []domain.FAQ{{Text: "a", A: "x"}, {Text: "b", A: "y"}}
	if got := gate.DefaultOpen(-1, true, cold); got != 0 {
		t.Fatalf("wide with no hot opens item 0, got %d", got)
	}
	if got := gate.DefaultOpen(-1, true, nil); got != -1 {
		t.Fatalf("no faqs opens nothing, got %d", got)
	}
}
