package http_test

import (
	"context"
	"testing"
)

func (e *testEnv) createDraft(icode string, extra map[string]string) string {
	e.T.Helper()
	fields := map[string]string{
		"icode":    icode,
		"headline": "Unfinished thought",
		"snippet":  "still cooking",
	}
	for k, v := range extra {
		fields[k] = v
	}
	w, out := e.postForm("/api/v1/draft/create", fields)
	if w.Code != 200 {
		e.T.Fatalf("create draft: %d %s", w.Code, w.Body.String())
	}
	d, _ := out["draft"].(map[string]any)
	dcode, _ := d["dcode"].(string)
	if dcode == "" {
		e.T.Fatal("no dcode in create response")
	}
	return dcode
}

func Test_Draft_CreateListGetDelete(t *testing.T) {
	env := newTestEnv(t)
	icode := env.signIn("drafter@example.com")

	dcode := env.createDraft(icode, map[string]string{
		"q1": `{"text":"Pending?","a":"yes","ishot":true}`,
	})

	w, out := env.postJSON("/api/v1/draft/list", `{"icode":"`+icode+`"}`)
	if w.Code != 200 {
		t.Fatalf("list: %d %s", w.Code, w.Body.String())
	}
	if n := len(out["drafts"].([]any)); n != 1 {
		t.Fatalf("expected 1 draft, got %d", n)
	}

	w, out = env.postJSON("/api/v1/draft/get", `{"icode":"`+icode+`","dcode":"`+dcode+`"}`)
	if w.Code != 200 {
		t.Fatalf("get: %d %s", w.Code, w.Body.String())
	}
	d := out["draft"].(map[string]any)
	if d["headline"] != "Unfinished thought" {
		t.Errorf("draft payload: %v", d)
	}

	w, _ = env.postJSON("/api/v1/draft/delete", `{"icode":"`+icode+`","dcode":"`+dcode+`"}`)
	if w.Code != 200 {
		t.Fatalf("delete: %d %s", w.Code, w.Body.String())
	}
	w, _ = env.postJSON("/api/v1/draft/get", `{"icode":"`+icode+`","dcode":"`+dcode+`"}`)
	if w.Code != 404 {
		t.Fatalf("get after delete: expected 404, got %d", w.Code)
	}
}

func Test_Draft_OwnerScoped(t *testing.T) {
	env := newTestEnv(t)
	owner := env.signIn("owner@example.com")
	other := env.signIn("other@example.com")

	dcode := env.createDraft(owner, nil)
	w, _ := env.postJSON("/api/v1/draft/get", `{"icode":"`+other+`","dcode":"`+dcode+`"}`)
	if w.Code != 404 {
		t.Fatalf("cross-owner draft get: expected 404, got %d", w.Code)
	}
}

func Test_Draft_Publish(t *testing.T) {
	env := newTestEnv(t)
	icode := env.signIn("publisher@example.com")
	dcode := env.createDraft(icode, map[string]string{
		"q1": `{"text":"Kept?","a":"from the draft","ishot":false}`,
	})

	// publish with a last-minute headline edit
	w, out := env.postForm("/api/v1/draft/publish", map[string]string{
		"icode":    icode,
		"dcode":    dcode,
		"headline": "Final headline",
	})
	if w.Code != 200 {
		t.Fatalf("publish: %d %s", w.Code, w.Body.String())
	}
	g := out["glance"].(map[string]any)
	gcode, _ := g["gcode"].(string)
	if gcode == "" {
		t.Fatal("published glance needs a gcode")
	}

	got, err := env.Store.FindGlanceByCode(context.Background(), gcode)
	if err != nil {
		t.Fatal(err)
	}
	if got.Headline != "Final headline" {
		t.Errorf("publish-screen edit lost: %q", got.Headline)
	}
	if got.Snippet != "still cooking" {
		t.Errorf("draft content lost: %q", got.Snippet)
	}

	// the draft is gone afterwards
	w, _ = env.postJSON("/api/v1/draft/get", `{"icode":"`+icode+`","dcode":"`+dcode+`"}`)
	if w.Code != 404 {
		t.Fatalf("draft should be deleted after publish, got %d", w.Code)
	}

	w, _ = env.postForm("/api/v1/draft/publish", map[string]string{
		"icode": icode,
		"dcode": "missing",
	})
	if w.Code != 404 {
		t.Fatalf("publish missing draft: expected 404, got %d", w.Code)
	}
}
