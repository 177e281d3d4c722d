package http_test

import (
	"context"
	"net/http"
	"strings"
	"testing"
)

const longAnswer = "one two three four five six seven eight nine ten eleven twelve thirteen"

func Test_CreateListDelete_Glance(t *testing.T) {
	env := newTestEnv(t)
	icode := env.signIn("creator@example.com")

	gcode := env.createGlance(icode, map[string]string{
		"cta":  "Read more",
		"link": "https://example.com/post",
		"q1":   `{"text":"How long?","a":"About a week","ishot":false}`,
	})

	w, out := env.postJSON("/api/v1/glance/list", `{"icode":"`+icode+`"}`)
	if w.Code != 200 {
		t.Fatalf("list: %d %s", w.Code, w.Body.String())
	}
	glances := out["glances"].([]any)
	if len(glances) != 1 {
		t.Fatalf("expected 1 glance, got %d", len(glances))
	}

	w, _ = env.postJSON("/api/v1/glance/delete", `{"icode":"`+icode+`","gcode":"`+gcode+`"}`)
	if w.Code != 200 {
		t.Fatalf("delete: %d %s", w.Code, w.Body.String())
	}

	// deleted glances are gone for readers too
	w, _ = env.postJSON("/api/v1/glance/get", `{"gcode":"`+gcode+`"}`)
	if w.Code != 404 {
		t.Fatalf("get after delete: expected 404, got %d", w.Code)
	}
	// and deleting twice is a 404
	w, _ = env.postJSON("/api/v1/glance/delete", `{"icode":"`+icode+`","gcode":"`+gcode+`"}`)
	if w.Code != 404 {
		t.Fatalf("double delete: expected 404, got %d", w.Code)
	}
}

func Test_DeleteGlance_OtherOwner(t *testing.T) {
	env := newTestEnv(t)
	owner := env.signIn("owner@example.com")
	intruder := env.signIn("intruder@example.com")

	gcode := env.createGlance(owner, nil)
	w, _ := env.postJSON("/api/v1/glance/delete", `{"icode":"`+intruder+`","gcode":"`+gcode+`"}`)
	if w.Code != 404 {
		t.Fatalf("cross-owner delete: expected 404, got %d", w.Code)
	}
}

func Test_UpdateGlance(t *testing.T) {
	env := newTestEnv(t)
	icode := env.signIn("editor@example.com")
	gcode := env.createGlance(icode, nil)

	w, _ := env.postForm("/api/v1/glance/update", map[string]string{
		"icode":    icode,
		"gcode":    gcode,
		"headline": "Revised headline",
		"snippet":  "Revised snippet",
		"q1":       `{"question":"Alt spelling?","answer":"Still parses","isHot":true}`,
	})
	if w.Code != 200 {
		t.Fatalf("update: %d %s", w.Code, w.Body.String())
	}

	g, err := env.Store.FindGlanceByCode(context.Background(), gcode)
	if err != nil {
		t.Fatal(err)
	}
	if g.Headline != "Revised headline" {
		t.Errorf("headline not updated: %q", g.Headline)
	}
	if g.Q1 == nil || g.Q1.Text != "Alt spelling?" || g.Q1.A != "Still parses" || !g.Q1.IsHot {
		t.Errorf("alternate FAQ spelling not accepted: %+v", g.Q1)
	}
}

func Test_GetGlance_OneViewPerLoad(t *testing.T) {
	env := newTestEnv(t)
	icode := env.signIn("views@example.com")
	gcode := env.createGlance(icode, nil)

	for i := 0; i < 3; i++ {
		w, _ := env.postJSON("/api/v1/glance/get", `{"gcode":"`+gcode+`"}`)
		if w.Code != 200 {
			t.Fatalf("get #%d: %d %s", i, w.Code, w.Body.String())
		}
	}
	env.Stats.Flush()

	g, err := env.Store.FindGlanceByCode(context.Background(), gcode)
	if err != nil {
		t.Fatal(err)
	}
	if g.Views != 3 {
		t.Errorf("expected 3 views after 3 loads, got %d", g.Views)
	}

	// a failed load records nothing
	w, _ := env.postJSON("/api/v1/glance/get", `{"gcode":"missing"}`)
	if w.Code != 404 {
		t.Fatalf("missing glance: expected 404, got %d", w.Code)
	}
}

func Test_GetGlance_HotAnswerGated(t *testing.T) {
	env := newTestEnv(t)
	icode := env.signIn("gated@example.com")
	gcode := env.createGlance(icode, map[string]string{
		"q1": `{"text":"Cold one","a":"short answer","ishot":false}`,
		"q2": `{"text":"Hot one","a":"` + longAnswer + `","ishot":true}`,
		"q3": `{"text":"   ","a":"invisible","ishot":true}`,
	})

	w, out := env.postJSON("/api/v1/glance/get", `{"gcode":"`+gcode+`","wide":true}`)
	if w.Code != 200 {
		t.Fatalf("get: %d %s", w.Code, w.Body.String())
	}
	glance := out["glance"].(map[string]any)
	faqs := glance["faqs"].([]any)
	if len(faqs) != 2 {
		t.Fatalf("blank question must be filtered, got %d entries", len(faqs))
	}

	cold := faqs[0].(map[string]any)
	if cold["locked"] != false || cold["a"] != "short answer" {
		t.Errorf("cold answer must be served whole: %v", cold)
	}

	hot := faqs[1].(map[string]any)
	if hot["locked"] != true {
		t.Fatalf("hot answer must be locked for anonymous readers: %v", hot)
	}
	served := hot["a"].(string)
	if len(strings.Fields(served)) != 10 {
		t.Errorf("expected a 10-word prefix, got %q", served)
	}
	if strings.Contains(served, "eleven") {
		t.Errorf("withheld remainder leaked: %q", served)
	}

	// wide viewport opens the first hot entry (index 1 after filtering)
	gateOut := out["gate"].(map[string]any)
	if gateOut["defaultOpen"] != float64(1) {
		t.Errorf("defaultOpen: want 1, got %v", gateOut["defaultOpen"])
	}

	// narrow viewport keeps everything collapsed
	_, out = env.postJSON("/api/v1/glance/get", `{"gcode":"`+gcode+`"}`)
	if out["gate"].(map[string]any)["defaultOpen"] != float64(-1) {
		t.Errorf("narrow viewport should not auto-open")
	}
}

func Test_GetGlance_EmailCookieUnlocks(t *testing.T) {
	env := newTestEnv(t)
	icode := env.signIn("cookie@example.com")
	gcode := env.createGlance(icode, map[string]string{
		"q1": `{"text":"Hot one","a":"` + longAnswer + `","ishot":true}`,
	})

	w, out := env.postJSON("/api/v1/glance/get", `{"gcode":"`+gcode+`"}`,
		"glancery.email=reader%40example.com")
	if w.Code != 200 {
		t.Fatalf("get: %d %s", w.Code, w.Body.String())
	}
	hot := out["glance"].(map[string]any)["faqs"].([]any)[0].(map[string]any)
	if hot["locked"] != false || hot["a"] != longAnswer {
		t.Errorf("known email must see the full answer: %v", hot)
	}
	if out["gate"].(map[string]any)["unlockedNotice"] != true {
		t.Error("first unlocked load owes the notice")
	}

	// the notice cookie suppresses repeats
	_, out = env.postJSON("/api/v1/glance/get", `{"gcode":"`+gcode+`"}`,
		"glancery.email=reader%40example.com", "glancery.unlockedShown=1")
	if out["gate"].(map[string]any)["unlockedNotice"] != false {
		t.Error("notice must be shown at most once")
	}
}

func Test_GetGlance_FollowedPublisherUnlocks(t *testing.T) {
	env := newTestEnv(t)
	icode := env.signIn("pub@example.com")
	env.postJSON("/api/v1/user/publication", `{"icode":"`+icode+`","name":"Daily Brew"}`)
	gcode := env.createGlance(icode, map[string]string{
		"q1": `{"text":"Hot one","a":"` + longAnswer + `","ishot":true}`,
	})

	// cookie value is the url-encoded JSON array, matched case-insensitively
	cookie := `glancery.publishers=%5B%22daily+brew%22%5D`
	_, out := env.postJSON("/api/v1/glance/get", `{"gcode":"`+gcode+`"}`, cookie)
	hot := out["glance"].(map[string]any)["faqs"].([]any)[0].(map[string]any)
	if hot["locked"] != false {
		t.Errorf("followed publication must unlock: %v", hot)
	}

	// a different publisher list does not
	other := `glancery.publishers=%5B%22other+letter%22%5D`
	_, out = env.postJSON("/api/v1/glance/get", `{"gcode":"`+gcode+`"}`, other)
	hot = out["glance"].(map[string]any)["faqs"].([]any)[0].(map[string]any)
	if hot["locked"] != true {
		t.Errorf("unrelated publisher must stay locked: %v", hot)
	}
}

func Test_GetGlance_UnlockLinkArrival(t *testing.T) {
	env := newTestEnv(t)
	icode := env.signIn("arrive@example.com")
	gcode := env.createGlance(icode, map[string]string{
		"q1": `{"text":"Hot one","a":"` + longAnswer + `","ishot":true}`,
	})

	w, out := env.postJSON("/api/v1/glance/get",
		`{"gcode":"`+gcode+`","emailid":"reader@example.com","qkey":1}`)
	if w.Code != 200 {
		t.Fatalf("get: %d %s", w.Code, w.Body.String())
	}
	hot := out["glance"].(map[string]any)["faqs"].([]any)[0].(map[string]any)
	if hot["locked"] != false {
		t.Errorf("link arrival must unlock the linked question: %v", hot)
	}
	// the reader email is persisted for future visits
	cookies := w.Header().Values("Set-Cookie")
	found := false
	for _, c := range cookies {
		if strings.HasPrefix(c, "glancery.email=") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected glancery.email cookie, got %v", cookies)
	}
}

func Test_Stats_BestEffort(t *testing.T) {
	env := newTestEnv(t)
	icode := env.signIn("stats@example.com")
	gcode := env.createGlance(icode, nil)

	w, out := env.postJSON("/api/v1/glance/stats",
		`{"gcode":"`+gcode+`","clicks":1,"shares":2,"emailid":"fan@example.com"}`)
	if w.Code != 200 || out["success"] != true {
		t.Fatalf("stats: %d %s", w.Code, w.Body.String())
	}
	env.Stats.Flush()

	g, err := env.Store.FindGlanceByCode(context.Background(), gcode)
	if err != nil {
		t.Fatal(err)
	}
	if g.Clicks != 1 || g.Shares != 2 {
		t.Errorf("counters: clicks=%d shares=%d", g.Clicks, g.Shares)
	}

	// emailid registered the subscriber synchronously
	_, out = env.postJSON("/api/v1/user/followers", `{"icode":"`+icode+`"}`)
	if n := len(out["followers"].([]any)); n != 1 {
		t.Errorf("expected 1 follower via stats, got %d", n)
	}

	w, _ = env.postJSON("/api/v1/glance/stats", `{"gcode":"missing","clicks":1}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown gcode: expected 404, got %d", w.Code)
	}
}

func Test_Subscribe_IdempotentAndCookies(t *testing.T) {
	env := newTestEnv(t)
	icode := env.signIn("sub@example.com")
	env.postJSON("/api/v1/user/publication", `{"icode":"`+icode+`","name":"Daily Brew"}`)
	gcode := env.createGlance(icode, nil)

	body := `{"gcode":"` + gcode + `","emailid":"fan@example.com"}`
	w, _ := env.postJSON("/api/v1/glance/subscribe", body)
	if w.Code != 200 {
		t.Fatalf("subscribe: %d %s", w.Code, w.Body.String())
	}
	var sawPublishers bool
	for _, c := range w.Header().Values("Set-Cookie") {
		if strings.HasPrefix(c, "glancery.publishers=") {
			sawPublishers = true
		}
	}
	if !sawPublishers {
		t.Error("subscribe should record the publication cookie")
	}

	// same email again stays a single follower
	env.postJSON("/api/v1/glance/subscribe", body)
	_, out := env.postJSON("/api/v1/user/followers", `{"icode":"`+icode+`"}`)
	if n := len(out["followers"].([]any)); n != 1 {
		t.Errorf("duplicate subscribe must not add a follower, got %d", n)
	}

	w, _ = env.postJSON("/api/v1/glance/subscribe", `{"gcode":"`+gcode+`","emailid":"foo@bar"}`)
	if w.Code != 400 {
		t.Errorf("invalid email: expected 400, got %d", w.Code)
	}
}

func Test_Unlock_DoesNotUnlockLocally(t *testing.T) {
	env := newTestEnv(t)
	icode := env.signIn("locksmith@example.com")
	gcode := env.createGlance(icode, map[string]string{
		"q1": `{"text":"Hot one","a":"` + longAnswer + `","ishot":true}`,
	})

	w, out := env.postJSON("/api/v1/glance/unlock",
		`{"emailid":"reader@example.com","gcode":"`+gcode+`","qkey":1,"qtext":"Hot one"}`)
	if w.Code != 200 || out["success"] != true {
		t.Fatalf("unlock: %d %s", w.Code, w.Body.String())
	}

	// the answer stays gated until the emailed link is followed
	_, out = env.postJSON("/api/v1/glance/get", `{"gcode":"`+gcode+`"}`)
	hot := out["glance"].(map[string]any)["faqs"].([]any)[0].(map[string]any)
	if hot["locked"] != true {
		t.Error("unlock submission alone must not unlock content")
	}

	w, _ = env.postJSON("/api/v1/glance/unlock", `{"emailid":"foo@bar","gcode":"`+gcode+`","qkey":1}`)
	if w.Code != 400 {
		t.Errorf("invalid email: expected 400, got %d", w.Code)
	}
}
