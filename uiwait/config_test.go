package uiwait_test

import (
	"testing"
	"time"

	"gitlab.com/uiwait/uiwait"
)

func TestResolveFallsBackToDefaults(t *testing.T) {
	cfg := uiwait.Config{}.Resolve()
	if cfg.Timeout != uiwait.DefaultTimeout {
		t.Fatalf("expected default timeout, got %s\n", cfg.Timeout)
	}
	if cfg.Interval != uiwait.DefaultInterval {
		t.Fatalf("expected default interval, got %s\n", cfg.Interval)
	}
	if cfg.WarnAfter != uiwait.DefaultWarnAfter {
		t.Fatalf("expected default warn threshold, got %s\n", cfg.WarnAfter)
	}
}

func TestResolveKeepsInstanceOverrides(t *testing.T) {
	cfg := uiwait.Config{Timeout: 3 * time.Second, AbsenceFloor: time.Second}.Resolve()
	if cfg.Timeout != 3*time.Second {
		t.Fatalf("instance timeout lost: %s\n", cfg.Timeout)
	}
	if cfg.AbsenceFloor != time.Second {
		t.Fatalf("instance floor lost: %s\n", cfg.AbsenceFloor)
	}
	if cfg.Interval != uiwait.DefaultInterval {
		t.Fatalf("interval should fall back: %s\n", cfg.Interval)
	}
}

func TestSetDefaults(t *testing.T) {
	defer uiwait.SetDefaults(uiwait.Config{})

	uiwait.SetDefaults(uiwait.Config{Timeout: time.Minute})
	if uiwait.Defaults().Timeout != time.Minute {
		t.Fatalf("process default not applied: %s\n", uiwait.Defaults().Timeout)
	}
	// untouched fields keep built-ins
	if uiwait.Defaults().Interval != uiwait.DefaultInterval {
		t.Fatalf("interval default clobbered: %s\n", uiwait.Defaults().Interval)
	}

	cfg := uiwait.Config{}.Resolve()
	if cfg.Timeout != time.Minute {
		t.Fatalf("resolve ignored process default: %s\n", cfg.Timeout)
	}
}
