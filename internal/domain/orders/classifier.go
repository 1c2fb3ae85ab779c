package orders

import (
	"strings"

	"retailhub/internal/core/apperror"
)

// Channel is the sales pathway an order belongs to. It is a closed enum
// produced only by the classifier; raw legacy type strings never leak past
// this boundary.
type Channel string

const (
	ChannelEcommerce Channel = "ecommerce"
	ChannelRetail    Channel = "retail"
	ChannelWholesale Channel = "wholesale"
)

// Valid reports whether c is one of the three known channels.
func (c Channel) Valid() bool {
	switch c {
	case ChannelEcommerce, ChannelRetail, ChannelWholesale:
		return true
	}
	return false
}

// Strategy selects which classification heuristic a report uses.
//
// The two strategies are NOT equivalent: legacy screens used the strict
// orderType priority while cross-channel profit reports used the looser
// source/customer heuristic, so the same order can land in different
// channels depending on the viewer. Call sites must pick one explicitly
// so historical report numbers do not silently change.
type Strategy string

const (
	StrategyStrict    Strategy = "strict"
	StrategyHeuristic Strategy = "heuristic"
)

// Valid reports whether s names a known strategy.
func (s Strategy) Valid() bool {
	return s == StrategyStrict || s == StrategyHeuristic
}

// RawRecord carries the loosely-typed legacy fields that drive channel
// classification. Values are already coerced to strings at the ingestion
// boundary.
type RawRecord struct {
	OrderType    string // legacy "orderType" field
	Type         string // legacy "type" field (older vocabulary)
	Source       string // ingestion source tag, e.g. "wholesale_sales"
	Code         string // human order code, e.g. "WHOLESALE-2024-00042"
	CustomerName string // wholesale orders carry a named customer
	Platform     string // e-commerce marketplace name
}

// ClassifyStrict tags an order using the priority-ordered orderType rules.
// First match wins:
//  1. orderType/type == "wholesale" -> wholesale
//  2. orderType/type == "retail"    -> retail
//  3. orderType/type in {"ecommerce","tmdt","online"} or absent -> ecommerce
//
// Absence defaulting to ecommerce is a deliberate legacy-compatibility rule.
// Unknown vocabulary also collapses to ecommerce, matching rule 3's
// catch-all behavior in historical reports.
func ClassifyStrict(r RawRecord) Channel {
	t := r.OrderType
	if t == "" {
		t = r.Type
	}

	switch strings.ToLower(strings.TrimSpace(t)) {
	case "wholesale":
		return ChannelWholesale
	case "retail":
		return ChannelRetail
	default:
		return ChannelEcommerce
	}
}

// ClassifyHeuristic tags an order using the looser cross-channel rules
// applied by profit reports: source tags, customer presence, platform
// presence and order-code substrings. First match wins.
func ClassifyHeuristic(r RawRecord) Channel {
	code := strings.ToUpper(r.Code)

	switch {
	case r.Source == "wholesale_sales",
		strings.TrimSpace(r.CustomerName) != "",
		strings.Contains(code, "WHOLESALE"):
		return ChannelWholesale

	case r.Source == "retail_sales",
		strings.Contains(code, "RETAIL"):
		return ChannelRetail

	case r.Source == "tmdt_sales",
		strings.TrimSpace(r.Platform) != "",
		strings.Contains(code, "TMDT"):
		return ChannelEcommerce

	default:
		return ChannelEcommerce
	}
}

// Classify applies the named strategy.
func Classify(strategy Strategy, r RawRecord) (Channel, error) {
	switch strategy {
	case StrategyStrict:
		return ClassifyStrict(r), nil
	case StrategyHeuristic:
		return ClassifyHeuristic(r), nil
	default:
		return "", apperror.NewValidation("unknown classification strategy").
			WithDetail("strategy", string(strategy))
	}
}

// Diagnose returns the strict classification and an AMBIGUOUS_CHANNEL error
// when the heuristic strategy disagrees. Used by data-quality tooling;
// normal report generation never calls this.
func Diagnose(orderID string, r RawRecord) (Channel, error) {
	strict := ClassifyStrict(r)
	heuristic := ClassifyHeuristic(r)
	if strict != heuristic {
		return strict, apperror.NewAmbiguousChannel(orderID, string(strict), string(heuristic))
	}
	return strict, nil
}
