// Package route implements the routing decision engine: a strict,
// non-overlapping priority cascade over validation and classification
// results. Exactly one branch fires per claim.
package route

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dkosarev/claimtriage/internal/model"
)

// Router applies the priority cascade and produces a routing decision with a
// human-readable justification. It never errors: when the inputs leave no
// safe automated choice, the decision is Manual Review.
type Router struct {
	threshold float64
}

// NewRouter creates a router with the given fast-track damage threshold
func NewRouter(threshold float64) *Router {
	return &Router{threshold: threshold}
}

// Route evaluates the cascade top to bottom and stops at the first match:
//
//  1. Missing mandatory fields  -> Manual Review (overrides everything)
//  2. Fraud indicators          -> Investigation Queue
//  3. Injury                    -> Specialist Queue
//  4. Damage below threshold    -> Fast-Track
//     Damage at/over threshold  -> Standard Processing
//     Damage missing            -> Manual Review
//
// The threshold boundary is inclusive on the Standard Processing side.
func (r *Router) Route(missing []string, cls model.ClassificationResult, damage *float64) model.RoutingDecision {
	if len(missing) > 0 {
		return model.RoutingDecision{
			Route:     model.RouteManualReview,
			Reasoning: "Missing mandatory fields: " + strings.Join(missing, ", "),
		}
	}

	if cls.FraudFlag {
		return model.RoutingDecision{
			Route:     model.RouteInvestigationQueue,
			Reasoning: "Description contains potential fraud indicators",
		}
	}

	if cls.InjuryFlag {
		return model.RoutingDecision{
			Route:     model.RouteSpecialistQueue,
			Reasoning: "Claim involves injury and requires specialist review",
		}
	}

	if damage == nil {
		return model.RoutingDecision{
			Route:     model.RouteManualReview,
			Reasoning: "Estimated damage amount is missing or invalid",
		}
	}

	if *damage < r.threshold {
		return model.RoutingDecision{
			Route: model.RouteFastTrack,
			Reasoning: fmt.Sprintf("Estimated damage (%s) is below fast-track threshold (%s)",
				formatUSD(*damage, 2), formatUSD(r.threshold, 0)),
		}
	}

	return model.RoutingDecision{
		Route: model.RouteStandardProcessing,
		Reasoning: fmt.Sprintf("Estimated damage (%s) meets or exceeds fast-track threshold (%s)",
			formatUSD(*damage, 2), formatUSD(r.threshold, 0)),
	}
}

// formatUSD formats an amount as US currency with comma grouping,
// e.g. formatUSD(4500, 2) == "$4,500.00"
func formatUSD(amount float64, decimals int) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	s := strconv.FormatFloat(amount, 'f', decimals, 64)

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i:]
	}

	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	out := "$" + strings.Join(groups, ",") + fracPart
	if negative {
		out = "-" + out
	}
	return out
}
