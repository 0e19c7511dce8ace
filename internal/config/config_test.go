package config

import (
	"testing"

	"github.com/runelang/rune-core/internal/interp"
)

func TestEffectiveBudget(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want uint64
	}{
		{"default", Default(), DefaultBudget},
		{"zero budget falls back to default", Options{Budget: 0}, DefaultBudget},
		{"explicit budget wins", Options{Budget: 42}, 42},
		{"unrestricted overrides an explicit budget", Options{Budget: 42, Unrestricted: true}, interp.UnboundedBudget},
		{"unrestricted alone", Options{Unrestricted: true}, interp.UnboundedBudget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.opts.EffectiveBudget(); got != tt.want {
				t.Fatalf("got %d, want %d", got, tt.want)
			}
		})
	}
}
