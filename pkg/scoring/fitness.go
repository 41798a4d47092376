package scoring

import (
	"time"

	"github.com/kochimetro/induct-scheduler/pkg/model"
)

// fitnessParseFallback is the conservative mid-value contributed by a
// certificate domain whose dates could not be parsed.
const fitnessParseFallback = 5.0

// fitnessScore sums, over the three certificate domains, the headroom
// tier point value. A missing domain record contributes 0, matching an
// invalid certificate; a domain that failed to parse contributes the
// conservative mid-value instead of aborting.
func fitnessScore(certs map[model.CertDomain]*model.FitnessCertificate, snapshot time.Time) float64 {
	total := 0.0
	for _, domain := range model.AllCertDomains {
		cert, ok := certs[domain]
		if !ok || cert == nil {
			continue
		}
		if cert.ParseFailed() {
			total += fitnessParseFallback
			continue
		}
		if !cert.IsValid(snapshot) {
			continue
		}
		headroom := cert.HeadroomDays(snapshot)
		switch {
		case headroom > 60:
			total += 8.33
		case headroom >= 30:
			total += 6.67
		default:
			total += 4.17
		}
	}
	return total
}
