// Package rating resolves the single rating displayed for an entity from its
// independent sources: the external compatibility score, locally submitted
// reviews and a static neutral fallback.
package rating

import "fmt"

// Status of the external compatibility score for one entity.
type Status int

const (
	// StatusNone - no fetch was ever issued for this entity.
	StatusNone Status = iota
	// StatusPending - a fetch is in flight.
	StatusPending
	// StatusAvailable - the service returned a usable value. Final.
	StatusAvailable
	// StatusFailed - the fetch errored out. Final; no automatic retry.
	StatusFailed
)

func (s Status) Final() bool { return s == StatusAvailable || s == StatusFailed }

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusAvailable:
		return "available"
	case StatusFailed:
		return "failed"
	default:
		return "none"
	}
}

// Score is the validated, tagged form of an external score response.
// It is built at the service boundary; nothing downstream ever sees the raw
// response shape.
type Score struct {
	Status       Status  `json:"status"`
	Value        float64 `json:"value"`
	Personalized bool    `json:"personalized"` // a resume was on file when fetched
	Details      string  `json:"details,omitempty"`
}

// Resolved is the rating an entity card displays.
// When Loading is set the caller must show a loading affordance; Value and
// Label are meaningless.
type Resolved struct {
	Loading bool    `json:"loading"`
	Value   float64 `json:"value"`
	Label   string  `json:"label"`
}

// NeutralDefault is the static fallback rating used when the external service
// is known to be down.
const NeutralDefault = 3.5

// Source labels, as displayed.
const (
	LabelPersonalized = "AI-Powered Match Score"
	LabelExternal     = "External Rating"
	LabelOffline      = "Default Rating (API offline)"
)

// Clamp forces v into the displayable [0, 5] range.
// Out-of-range external values are clamped, never rejected.
func Clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 5 {
		return 5
	}
	return v
}

// Resolve picks the displayed rating for one entity.
//
// Precedence, highest first:
//  1. available external score, clamped;
//  2. pending fetch - a distinguished loading state, not a number;
//  3. failed fetch - the static neutral default;
//  4. no fetch ever issued - the mean of local review ratings.
//
// With zero local reviews and no fetch attempt the resolved value is 0 with
// a "0 reviews" label; an entity nobody rated shows as unrated rather than
// pretending to a neutral score.
func Resolve(score Score, localRatings []int) Resolved {
	switch score.Status {
	case StatusAvailable:
		label := LabelExternal
		if score.Personalized {
			label = LabelPersonalized
		}
		return Resolved{Value: Clamp(score.Value), Label: label}
	case StatusPending:
		return Resolved{Loading: true}
	case StatusFailed:
		return Resolved{Value: NeutralDefault, Label: LabelOffline}
	}

	n := len(localRatings)
	if n == 0 {
		return Resolved{Value: 0, Label: "0 reviews"}
	}
	var sum int
	for _, r := range localRatings {
		sum += r
	}
	label := fmt.Sprintf("%d reviews", n)
	if n == 1 {
		label = "1 review"
	}
	return Resolved{Value: Clamp(float64(sum) / float64(n)), Label: label}
}
