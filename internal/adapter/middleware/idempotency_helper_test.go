package middleware

import (
	"strconv"
	"testing"
	"time"
)

func TestValidReqID(t *testing.T) {
	cases := []struct {
		id string
		ok bool
	}{
		{"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", true},
		{"6fa459ea-ee8a-3ca4-894e-db77e160355e", true},
		{"not-an-id", false},
		{"", false},
		{"AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", true}, // lowercased before matching
	}
	for _, c := range cases {
		if got := validReqID(c.id); got != c.ok {
			t.Fatalf("validReqID(%q) = %v, want %v", c.id, got, c.ok)
		}
	}
}

func TestParseAxRequestAt(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)

	got, err := parseAxRequestAt(strconv.FormatInt(now.Unix(), 10))
	if err != nil || !got.Equal(now) {
		t.Fatalf("epoch seconds: %v, %v", got, err)
	}

	got, err = parseAxRequestAt(strconv.FormatInt(now.UnixMilli(), 10))
	if err != nil || !got.Equal(now) {
		t.Fatalf("epoch millis: %v, %v", got, err)
	}

	if _, err := parseAxRequestAt(now.Format(time.RFC3339)); err != nil {
		t.Fatalf("rfc3339: %v", err)
	}

	// Naive local timestamp without timezone must be rejected.
	if _, err := parseAxRequestAt("2025-09-05T10:00:00"); err == nil {
		t.Fatal("naive timestamp accepted")
	}
	if _, err := parseAxRequestAt(""); err == nil {
		t.Fatal("empty accepted")
	}
}

func TestBuildKey(t *testing.T) {
	k := buildKey("POST", "/api/loans", "user-42", "req-1")
	want := "idemp:ax:post:/api/loans:user-42:req-1"
	if k != want {
		t.Fatalf("key = %q, want %q", k, want)
	}
}
