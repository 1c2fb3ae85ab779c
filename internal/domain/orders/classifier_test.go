package orders

import (
	"testing"

	"retailhub/internal/core/apperror"
)

func TestClassifyStrict(t *testing.T) {
	tests := []struct {
		name string
		rec  RawRecord
		want Channel
	}{
		{
			name: "wholesale wins regardless of other fields",
			rec: RawRecord{
				OrderType: "wholesale",
				Source:    "tmdt_sales",
				Platform:  "shopee",
				Code:      "RETAIL-001",
			},
			want: ChannelWholesale,
		},
		{
			name: "retail from orderType",
			rec:  RawRecord{OrderType: "retail"},
			want: ChannelRetail,
		},
		{
			name: "explicit ecommerce",
			rec:  RawRecord{OrderType: "ecommerce"},
			want: ChannelEcommerce,
		},
		{
			name: "absent orderType falls back to type",
			rec:  RawRecord{Type: "wholesale"},
			want: ChannelWholesale,
		},
		{
			name: "orderType takes priority over type",
			rec:  RawRecord{OrderType: "retail", Type: "wholesale"},
			want: ChannelRetail,
		},
		{
			name: "absent everything defaults to ecommerce",
			rec:  RawRecord{},
			want: ChannelEcommerce,
		},
		{
			name: "unknown vocabulary collapses to ecommerce",
			rec:  RawRecord{OrderType: "b2b-special"},
			want: ChannelEcommerce,
		},
		{
			name: "case and whitespace insensitive",
			rec:  RawRecord{OrderType: "  Wholesale "},
			want: ChannelWholesale,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyStrict(tt.rec); got != tt.want {
				t.Errorf("ClassifyStrict() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassifyHeuristic(t *testing.T) {
	tests := []struct {
		name string
		rec  RawRecord
		want Channel
	}{
		{
			name: "wholesale source tag",
			rec:  RawRecord{Source: "wholesale_sales"},
			want: ChannelWholesale,
		},
		{
			name: "customer name implies wholesale",
			rec:  RawRecord{CustomerName: "Cong ty TNHH ABC"},
			want: ChannelWholesale,
		},
		{
			name: "wholesale code substring",
			rec:  RawRecord{Code: "wholesale-2024-00042"},
			want: ChannelWholesale,
		},
		{
			name: "retail source tag",
			rec:  RawRecord{Source: "retail_sales"},
			want: ChannelRetail,
		},
		{
			name: "retail code substring",
			rec:  RawRecord{Code: "RETAIL-0007"},
			want: ChannelRetail,
		},
		{
			name: "platform implies ecommerce",
			rec:  RawRecord{Platform: "shopee"},
			want: ChannelEcommerce,
		},
		{
			name: "tmdt source tag",
			rec:  RawRecord{Source: "tmdt_sales"},
			want: ChannelEcommerce,
		},
		{
			name: "customer beats retail code",
			rec:  RawRecord{CustomerName: "Dai ly X", Code: "RETAIL-0009"},
			want: ChannelWholesale,
		},
		{
			name: "empty record defaults to ecommerce",
			rec:  RawRecord{},
			want: ChannelEcommerce,
		},
		{
			name: "whitespace-only customer does not count",
			rec:  RawRecord{CustomerName: "   "},
			want: ChannelEcommerce,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyHeuristic(tt.rec); got != tt.want {
				t.Errorf("ClassifyHeuristic() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassify_UnknownStrategy(t *testing.T) {
	_, err := Classify(Strategy("fuzzy"), RawRecord{})
	if err == nil {
		t.Fatal("expected error for unknown strategy")
	}
	if !apperror.IsAppError(err) {
		t.Errorf("expected AppError, got %T", err)
	}
}

func TestDiagnose(t *testing.T) {
	// strict says ecommerce (no orderType), heuristic says wholesale
	// (customer present): must surface the disagreement.
	rec := RawRecord{CustomerName: "Dai ly Y"}

	ch, err := Diagnose("ORD-1", rec)
	if ch != ChannelEcommerce {
		t.Errorf("Diagnose channel = %v, want %v", ch, ChannelEcommerce)
	}
	if err == nil {
		t.Fatal("expected ambiguity error")
	}

	appErr, ok := apperror.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != apperror.CodeAmbiguousChannel {
		t.Errorf("code = %s, want %s", appErr.Code, apperror.CodeAmbiguousChannel)
	}
}

func TestDiagnose_Agreement(t *testing.T) {
	rec := RawRecord{OrderType: "wholesale", Source: "wholesale_sales"}

	ch, err := Diagnose("ORD-2", rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ch != ChannelWholesale {
		t.Errorf("Diagnose channel = %v, want %v", ch, ChannelWholesale)
	}
}
