package env

import "testing"

func TestGetFallsBackWhenUnset(t *testing.T) {
	t.Setenv("DAYPASS_ENV_PROBE", "")
	if got := Get("DAYPASS_ENV_PROBE", "json"); got != "json" {
		t.Fatalf("expected fallback, got %q", got)
	}
	t.Setenv("DAYPASS_ENV_PROBE", "console")
	if got := Get("DAYPASS_ENV_PROBE", "json"); got != "console" {
		t.Fatalf("expected console, got %q", got)
	}
}
