package creds_test

import (
	"strings"
	"testing"

	"github.com/0x6d61/adlab/pkg/creds"
)

func TestParseLine(t *testing.T) {
	c, ok := creds.ParseLine("admin:S3cret!")
	if !ok {
		t.Fatal("expected a credential")
	}
	if c.Username != "admin" || c.Password != "S3cret!" {
		t.Errorf("unexpected credential: %+v", c)
	}

	// only the first colon separates user from password
	c, ok = creds.ParseLine("svc:pass:with:colons")
	if !ok || c.Password != "pass:with:colons" {
		t.Errorf("unexpected credential: %+v", c)
	}

	if _, ok := creds.ParseLine("no separator here"); ok {
		t.Error("a line without a colon must not parse")
	}

	c, ok = creds.ParseLine("  admin:spaced\n")
	if !ok || c.Username != "admin" {
		t.Errorf("unexpected credential: %+v", c)
	}
}

func TestCountUsers(t *testing.T) {
	dump := strings.Join([]string{
		"admin:one",
		"guest:x",
		"admin:two",
		"not a credential line",
		"svc_backup:y",
		"admin:three",
		"guest:z",
	}, "\n")

	counts, order, err := creds.CountUsers(strings.NewReader(dump))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counts["admin"] != 3 || counts["guest"] != 2 || counts["svc_backup"] != 1 {
		t.Errorf("unexpected counts: %v", counts)
	}
	if len(order) != 3 || order[0] != "admin" || order[1] != "guest" || order[2] != "svc_backup" {
		t.Errorf("unexpected order: %v", order)
	}
}

func TestFrequentUsers(t *testing.T) {
	counts := map[string]int{"admin": 4, "guest": 3, "svc": 1}
	order := []string{"guest", "admin", "svc"}

	out := creds.FrequentUsers(counts, order, 3)
	if len(out) != 1 {
		t.Fatalf("%d users, expected: 1", len(out))
	}
	if out[0].Username != "admin" || out[0].Count != 4 {
		t.Errorf("unexpected result: %+v", out[0])
	}

	if out := creds.FrequentUsers(counts, order, 0); len(out) != 3 {
		t.Errorf("%d users, expected: 3", len(out))
	}

	if out := creds.FrequentUsers(counts, order, 10); out != nil {
		t.Errorf("expected no users, got %v", out)
	}
}
