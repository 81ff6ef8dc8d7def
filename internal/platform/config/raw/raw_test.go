package raw

import "testing"

func TestRaw(t *testing.T) {
	c := New().Prefix("LOG_")
	t.Setenv("LOG_FORMAT", " console ")
	t.Setenv("LOG_CALLER", "On")
	t.Setenv("LOG_COLOR", "maybe")
	t.Setenv("LOG_SAMPLE_EVERY", "10")
	t.Setenv("LOG_NEG", "-3")

	if got := c.Get("FORMAT", "json"); got != "console" {
		t.Errorf("Get = %q", got)
	}
	if c.Get("LEVEL", "info") != "info" {
		t.Error("Get default")
	}
	if !c.GetBool("CALLER", false) || c.GetBool("COLOR", true) || !c.GetBool("UNSET", true) {
		t.Error("GetBool")
	}
	if c.GetInt("SAMPLE_EVERY", 0) != 10 || c.GetInt("NEG", 1) != 1 || c.GetInt("UNSET", 2) != 2 {
		t.Error("GetInt")
	}
}
