package router

import "testing"

func TestRouter_RecordPushesAndReplaces(t *testing.T) {
	r := New()

	if _, ok := r.Current(); ok {
		t.Fatal("empty router should have no current route")
	}

	r.Record("./a.json", "A")
	r.Record("./a.json", "B")
	if r.Len() != 1 {
		t.Fatalf("Len = %d, want 1 after same-path record", r.Len())
	}
	if cur, _ := r.Current(); cur.ElementID != "B" {
		t.Errorf("Current = %+v, want element B", cur)
	}

	r.Record("./b.json", "x")
	if r.Len() != 2 {
		t.Fatalf("Len = %d, want 2", r.Len())
	}
	if cur, _ := r.Current(); cur.String() != "./b.json#x" {
		t.Errorf("Current = %q, want ./b.json#x", cur.String())
	}
}

func TestRouter_Back(t *testing.T) {
	r := New()
	r.Record("./a.json", "A")
	r.Record("./b.json", "")

	prev, ok := r.Back()
	if !ok {
		t.Fatal("Back returned false")
	}
	if prev.Path != "./a.json" || prev.ElementID != "A" {
		t.Errorf("Back = %+v, want ./a.json#A", prev)
	}
	if _, ok := r.Back(); ok {
		t.Error("Back should keep the first route")
	}
	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1", r.Len())
	}
}

func TestRouter_Roots(t *testing.T) {
	r := New(WithRoots("/graphs/", "./data/"))

	tests := []struct {
		in, resolved, displayed string
	}{
		{"/graphs/city.json", "./data/city.json", "/graphs/city.json"},
		{"/elsewhere/x.json", "/elsewhere/x.json", "/elsewhere/x.json"},
		{"https://example.com/g.json", "https://example.com/g.json", "https://example.com/g.json"},
	}
	for _, tt := range tests {
		got := r.Resolve(tt.in)
		if got != tt.resolved {
			t.Errorf("Resolve(%q) = %q, want %q", tt.in, got, tt.resolved)
		}
		if back := r.Display(got); back != tt.displayed {
			t.Errorf("Display(%q) = %q, want %q", got, back, tt.displayed)
		}
	}

	plain := New()
	if got := plain.Resolve("/graphs/city.json"); got != "/graphs/city.json" {
		t.Errorf("Resolve without roots = %q", got)
	}
}
