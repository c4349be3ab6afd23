package db

import (
	"context"
	"strings"
	"testing"
)

func TestPoolConfigSizing(t *testing.T) {
	tests := []struct {
		name    string
		pc      PoolConfig
		wantMax int32
		wantMin int32
	}{
		{"defaults", PoolConfig{}, defaultMaxConns, defaultMinConns},
		{"explicit", PoolConfig{MaxConns: 20, MinConns: 5}, 20, 5},
		{"max only", PoolConfig{MaxConns: 4}, 4, 2},
		{"min clamped to max", PoolConfig{MaxConns: 3, MinConns: 8}, 3, 3},
		{"negative treated as unset", PoolConfig{MaxConns: -1, MinConns: -1}, defaultMaxConns, defaultMinConns},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotMax, gotMin := tt.pc.sizing()
			if gotMax != tt.wantMax || gotMin != tt.wantMin {
				t.Errorf("sizing() = (%d, %d), want (%d, %d)", gotMax, gotMin, tt.wantMax, tt.wantMin)
			}
		})
	}
}

func TestNewPoolRejectsBadURL(t *testing.T) {
	_, err := NewPool(context.Background(), PoolConfig{URL: "not a url"})
	if err == nil {
		t.Fatal("expected error for malformed database url")
	}
	if !strings.Contains(err.Error(), "parse database url") {
		t.Errorf("error = %q, want parse failure", err)
	}
}
