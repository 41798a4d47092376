package fixture

import (
	"fmt"

	"github.com/kochimetro/induct-scheduler/pkg/model"
)

// Generate builds a deterministic synthetic fleet of n trainsets over
// two depots and bayCount bays per depot, varying wear and mileage by
// index so the scoring dimensions spread out realistically. It takes no
// seed: the same n and bayCount always produce the same fleet, which is
// what the CLI's built-in fixture (no --snapshot) and tests both want.
func Generate(n, bayCount int) *Source {
	b := NewBuilder()
	depots := []model.Depot{model.DepotA, model.DepotB}
	vendors := []model.Vendor{model.VendorA, model.VendorB, model.VendorC}

	for i := 0; i < n; i++ {
		depot := depots[i%len(depots)]
		vendor := vendors[i%len(vendors)]
		yearBuilt := 2015 + (i % 10)
		totalKM := float64(20000 + (i*7919)%220000)
		number := fmt.Sprintf("TS%03d", i+1)

		t := b.AddTrainset(number, vendor, depot, yearBuilt, totalKM)
		t.BogieWear = float64(40 + (i*13)%60)
		t.BrakeWear = float64((i * 17) % 90)
		t.HVACHours = float64(50 + (i*29)%500)
		b.mileage[t.ID].BogieCondition = t.BogieWear
		b.mileage[t.ID].BrakeWear = t.BrakeWear
		b.mileage[t.ID].HVACHours = t.HVACHours

		switch i % 11 {
		case 0:
			b.SetStatus(t, model.StatusMaintenance)
		case 1:
			b.SetStatus(t, model.StatusStandby)
		}

		if i%7 == 0 {
			b.AddJobCard(t, model.PriorityEmergency)
		} else if i%5 == 0 {
			b.AddJobCard(t, model.PriorityHigh)
		}

		if i%4 == 0 {
			priority := model.BrandingNormal
			if i%12 == 0 {
				priority = model.BrandingCritical
			}
			b.SetBranding(t, priority, float64(10+i%40), 100, "2026-01-01", "2026-12-31")
		}

		if i%3 == 0 {
			b.AddCleaningSlot(t, model.CleaningDeep, "2026-07-30")
		}
	}

	for _, depot := range depots {
		for p := 0; p < bayCount; p++ {
			b.AddBay(depot, fmt.Sprintf("line-%d", p%3+1), p+1)
		}
	}

	return NewSource(b)
}
