package envutil

import (
	"testing"
	"time"
)

func TestEnvHelpers(t *testing.T) {
	t.Setenv("CH_STR", " value ")
	t.Setenv("CH_INT", "42")
	t.Setenv("CH_BAD_INT", "x")
	t.Setenv("CH_BOOL", "on")
	t.Setenv("CH_SECS", "90")
	t.Setenv("CH_LIST", "a, ,b")
	t.Setenv("CH_RATIO", "0.25")

	if got := String("CH_STR", "d"); got != "value" {
		t.Fatalf("String: got=%q", got)
	}
	if got := String("CH_MISSING", "d"); got != "d" {
		t.Fatalf("String default: got=%q", got)
	}
	if got := Int("CH_INT", 1); got != 42 {
		t.Fatalf("Int: got=%d", got)
	}
	if got := Int("CH_BAD_INT", 7); got != 7 {
		t.Fatalf("Int fallback: got=%d", got)
	}
	if !Bool("CH_BOOL", false) {
		t.Fatalf("Bool: expected true")
	}
	if got := Seconds("CH_SECS", time.Second); got != 90*time.Second {
		t.Fatalf("Seconds: got=%s", got)
	}
	if got := Float("CH_RATIO", 1); got != 0.25 {
		t.Fatalf("Float: got=%v", got)
	}
	got := List("CH_LIST", nil)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("List: got=%v", got)
	}
}
