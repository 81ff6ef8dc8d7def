package ch

import (
	"context"
	"errors"
	"testing"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

func TestOpen_EmptyURL(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), Config{}); err == nil {
		t.Fatalf("expected error for empty url")
	}
}

func TestOpen_BadDSN(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), Config{URL: "clickhouse://%zz"}); err == nil {
		t.Fatalf("expected dsn parse error")
	}
}

func TestOpen_DialError(t *testing.T) {
	orig := openConn
	defer func() { openConn = orig }()
	openConn = func(*clickhouse.Options) (driver.Conn, error) { return nil, errors.New("dial refused") }

	if _, err := Open(context.Background(), Config{URL: "clickhouse://127.0.0.1:9000/default"}); err == nil {
		t.Fatalf("expected dial error")
	}
}

func TestBuildClientInfo(t *testing.T) {
	t.Parallel()

	info := BuildClientInfo(" api ", "")
	if len(info.Products) != 5 {
		t.Fatalf("products = %v", info.Products)
	}
	if info.Products[0].Name != "codemix" || info.Products[0].Version != "dev" {
		t.Fatalf("product[0] = %+v", info.Products[0])
	}
	if info.Products[1].Version != "api" {
		t.Fatalf("role not trimmed: %q", info.Products[1].Version)
	}
}

func TestClose_Nil(t *testing.T) {
	t.Parallel()

	var c *CH
	if err := c.Close(); err != nil {
		t.Fatalf("nil Close = %v", err)
	}
}
