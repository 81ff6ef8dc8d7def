package version

import "testing"

func TestInfo(t *testing.T) {
	if got := Info(); got.Service != "codemix-api" || got.Version != "dev" {
		t.Fatalf("Info() = %+v", got)
	}
	b := Info("codemix")
	if b.Service != "codemix" {
		t.Fatalf("service = %s", b.Service)
	}
	if s := b.String(); s != "codemix dev (none, unknown)" {
		t.Fatalf("String() = %q", s)
	}
}
