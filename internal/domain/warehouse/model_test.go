package warehouse

import (
	"testing"
	"time"

	"retailhub/internal/core/types"
)

func TestSignedQuantity(t *testing.T) {
	tests := []struct {
		name string
		typ  TxType
		qty  float64
		want float64
	}{
		{"in is positive", TypeIn, 5, 5},
		{"out is negative", TypeOut, 5, -5},
		{"out magnitude ignores stored sign", TypeOut, -5, -5},
		{"positive adjustment", TypeAdjustment, 3, 3},
		{"negative adjustment", TypeAdjustment, -3, -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := &Transaction{Type: tt.typ, Quantity: types.NewQuantityFromFloat64(tt.qty)}
			if got := tr.SignedQuantity().Float64(); got != tt.want {
				t.Errorf("SignedQuantity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInPeriod(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)

	tests := []struct {
		name string
		ts   time.Time
		want bool
	}{
		{"inside", time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC), true},
		{"at from boundary", from, true},
		{"at to boundary", to, true},
		{"before", time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC), false},
		{"after", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), false},
		{"zero timestamp never in period", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := &Transaction{Timestamp: tt.ts}
			if got := tr.InPeriod(from, to); got != tt.want {
				t.Errorf("InPeriod() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFromLegacyMap_Timestamps(t *testing.T) {
	tests := []struct {
		name      string
		in        any
		wantValid bool
	}{
		{"iso datetime", "2024-01-15T10:30:00Z", true},
		{"slash date", "2024/01/15", true},
		{"epoch millis", int64(1705312200000), true},
		{"garbage keeps raw and zero time", "yesterday-ish", false},
		{"missing", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := FromLegacyMap(map[string]any{
				"timestamp": tt.in,
				"type":      "in",
				"quantity":  1,
			})
			if tr.HasValidTimestamp() != tt.wantValid {
				t.Errorf("HasValidTimestamp() = %v, want %v (raw=%q)",
					tr.HasValidTimestamp(), tt.wantValid, tr.RawTimestamp)
			}
			if tt.in != nil && tr.RawTimestamp == "" {
				t.Error("RawTimestamp must preserve the original value")
			}
		})
	}
}

func TestFromLegacyMap_DerivesTotalValue(t *testing.T) {
	tr := FromLegacyMap(map[string]any{
		"type":      "in",
		"quantity":  3,
		"unitPrice": 2000,
	})
	if tr.TotalValue != 6000 {
		t.Errorf("TotalValue = %d, want 6000", tr.TotalValue)
	}
}
