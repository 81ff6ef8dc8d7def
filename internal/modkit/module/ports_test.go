package module

import (
	"strings"
	"testing"

	phttp "codemix/internal/platform/net/http"
)

type analyzer interface{ Analyze(string) string }
type stats interface{ Total() int }

type engine struct{}

func (engine) Analyze(s string) string { return s }

type counter struct{}

func (counter) Total() int { return 3 }

type bundle struct {
	Analyzer analyzer
	Stats    stats
	hidden   stats
}

type fake struct{ ports any }

func (fake) MountRoutes(phttp.Router) {}
func (f fake) Ports() any             { return f.ports }
func (fake) Name() string             { return "analyze" }

func TestPortsOf(t *testing.T) {
	if _, ok := PortsOf[analyzer](fake{}); ok {
		t.Fatal("nil ports should miss")
	}
	if a, ok := PortsOf[analyzer](fake{ports: engine{}}); !ok || a.Analyze("x") != "x" {
		t.Fatal("direct value should match")
	}

	b := bundle{Analyzer: engine{}, Stats: counter{}}
	if s, ok := PortsOf[stats](fake{ports: b}); !ok || s.Total() != 3 {
		t.Fatal("struct field should match")
	}
	if s, ok := PortsOf[stats](fake{ports: &b}); !ok || s.Total() != 3 {
		t.Fatal("pointer to struct should match")
	}
	if _, ok := PortsOf[stats](fake{ports: bundle{hidden: counter{}}}); ok {
		t.Fatal("unexported fields must not match")
	}
	if _, ok := PortsOf[stats](fake{ports: (*bundle)(nil)}); ok {
		t.Fatal("nil pointer should miss")
	}
}

func TestMustPortsOfPanicsWithType(t *testing.T) {
	defer func() {
		msg, _ := recover().(string)
		if !strings.Contains(msg, "analyze") || !strings.Contains(msg, "module.stats") {
			t.Fatalf("panic = %q", msg)
		}
	}()
	MustPortsOf[stats](fake{ports: bundle{Analyzer: engine{}}})
}
