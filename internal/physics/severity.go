package physics

import (
	"fmt"

	"github.com/couchcryptid/asteroid-impact-service/internal/domain"
)

var severityLevels = []struct {
	maxMegatons float64
	class       domain.SeverityClass
}{
	{1, domain.SeverityClass{Level: "Minimal", Description: "Limited local damage", Color: "#4CAF50"}},
	{100, domain.SeverityClass{Level: "Moderate", Description: "Regional destruction", Color: "#FFC107"}},
	{10000, domain.SeverityClass{Level: "Severe", Description: "Continental catastrophe", Color: "#FF5722"}},
}

var extinctionLevel = domain.SeverityClass{Level: "Extinction", Description: "Global extinction event", Color: "#9C27B0"}

// ClassifySeverity maps a TNT yield to its severity class.
func ClassifySeverity(megatons float64) domain.SeverityClass {
	for _, l := range severityLevels {
		if megatons < l.maxMegatons {
			return l.class
		}
	}
	return extinctionLevel
}

// Recommend turns a deflection result into a verdict.
func Recommend(result domain.DeflectionResult) domain.DeflectionRecommendation {
	if result.Success {
		return domain.DeflectionRecommendation{
			Verdict: "SUCCESS",
			Message: fmt.Sprintf("A deflection of %.2f km is enough to avoid the impact.", result.DeflectionKm),
			Color:   "#4CAF50",
		}
	}
	return domain.DeflectionRecommendation{
		Verdict: "INSUFFICIENT",
		Message: fmt.Sprintf("A deflection of %.2f km is NOT enough. More lead time or a heavier impactor is required.", result.DeflectionKm),
		Color:   "#FF5722",
	}
}
