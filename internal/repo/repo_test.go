package repo

import (
	"context"
	"testing"
	"time"
)

func TestMemoryLogins(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	tick := 0
	m.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	if _, ok, _ := m.LastLogin(ctx, "ravi"); ok {
		t.Fatal("expected no login yet")
	}

	m.RecordLogin(ctx, "ravi")
	m.RecordLogin(ctx, "anil")
	m.RecordLogin(ctx, "ravi")

	if len(m.lastLogin) != 2 {
		t.Fatalf("expected one entry per login, got %d", len(m.lastLogin))
	}
	latest, _, _ := m.LastLogin(ctx, "ravi")
	if want := base.Add(3 * time.Minute); !latest.Equal(want) {
		t.Fatalf("expected latest ravi login %v, got %v", want, latest)
	}
	at, ok, err := m.LastLogin(ctx, "anil")
	if err != nil || !ok {
		t.Fatalf("expected anil login, got ok=%v err=%v", ok, err)
	}
	if want := base.Add(2 * time.Minute); !at.Equal(want) {
		t.Fatalf("expected %v, got %v", want, at)
	}
}

func TestMemoryReports(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	for _, name := range []string{"a", "b", "c"} {
		if _, err := m.SaveReport(ctx, Report{Login: "ravi", Name: name, Mode: "ROUND"}); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	m.SaveReport(ctx, Report{Login: "anil", Name: "x"})

	got, err := m.ListReports(ctx, "ravi", 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].Name != "c" || got[1].Name != "b" {
		t.Fatalf("unexpected reports %#v", got)
	}
	if got[0].ID != 3 || got[0].CreatedAt.IsZero() {
		t.Fatalf("expected id and timestamp to be assigned, got %#v", got[0])
	}

	none, _ := m.ListReports(ctx, "nobody", 10)
	if none == nil || len(none) != 0 {
		t.Fatalf("expected empty slice, got %#v", none)
	}
}

func TestWithSSLMode(t *testing.T) {
	cases := map[string]string{
		"postgres://u:p@h/db":                   "postgres://u:p@h/db?sslmode=require",
		"postgres://u:p@h/db?connect_timeout=5": "postgres://u:p@h/db?connect_timeout=5&sslmode=require",
		"user=postgres dbname=postgres":         "user=postgres dbname=postgres sslmode=require",
		"postgres://h/db?sslmode=disable":       "postgres://h/db?sslmode=disable",
	}
	for in, want := range cases {
		if got := withSSLMode(in); got != want {
			t.Fatalf("withSSLMode(%q) = %q, want %q", in, got, want)
		}
	}
}
