package entities

import "fmt"

// RecommendationCategory classifies a result for the advice shown to the user
type RecommendationCategory int

const (
	Healthy RecommendationCategory = iota
	Loss
	LowMargin
	LowROAS
	Excellent
)

// String method for RecommendationCategory enum
func (c RecommendationCategory) String() string {
	switch c {
	case Loss:
		return "LOSS"
	case LowMargin:
		return "LOW_MARGIN"
	case LowROAS:
		return "LOW_ROAS"
	case Excellent:
		return "EXCELLENT"
	case Healthy:
		return "HEALTHY"
	default:
		return "UNKNOWN"
	}
}

// ParseRecommendationCategory is the inverse of String
func ParseRecommendationCategory(s string) (RecommendationCategory, error) {
	switch s {
	case "LOSS":
		return Loss, nil
	case "LOW_MARGIN":
		return LowMargin, nil
	case "LOW_ROAS":
		return LowROAS, nil
	case "EXCELLENT":
		return Excellent, nil
	case "HEALTHY":
		return Healthy, nil
	default:
		return Healthy, fmt.Errorf("unknown recommendation category: %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (c RecommendationCategory) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *RecommendationCategory) UnmarshalText(text []byte) error {
	parsed, err := ParseRecommendationCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
