package store

import (
	"context"
	"testing"

	"codemix/internal/platform/store/ch"
)

func TestCHAdapter_RejectsUnknownShape(t *testing.T) {
	t.Parallel()

	a := newCHAdapter(&ch.CH{})
	if err := a.Insert(context.Background(), "codemix_decisions", []string{"x"}); err == nil {
		t.Fatalf("expected shape error")
	}
}

func TestCHAdapter_NilPing(t *testing.T) {
	t.Parallel()

	var a *clickhouseAdapter
	if err := a.Ping(context.Background()); err == nil {
		t.Fatalf("nil adapter should not ping")
	}
}
