package modelbuilder

import "github.com/kochimetro/induct-scheduler/pkg/model"

// BayBonus computes the small objective increment rewarding an
// accessible, same-depot bay assignment: round(10 * accessibility *
// compatibility), where accessibility falls off linearly with
// position_order and compatibility halves for a cross-depot pairing.
func BayBonus(t *model.Trainset, b *model.StablingBay, maxPositionOrder int) int {
	if maxPositionOrder <= 0 {
		maxPositionOrder = 1
	}
	accessibility := float64(maxPositionOrder-b.PositionOrder+1) / float64(maxPositionOrder)
	compatibility := 0.5
	if b.Depot == t.HomeDepot {
		compatibility = 1.0
	}
	return int(10*accessibility*compatibility + 0.5)
}

// buildObjective maximizes Σ 100·score(t)·x[t] + Σ bay_bonus(t,b)·y[t,b].
func buildObjective(facts []TrainsetFacts, bays []*model.StablingBay, opt Options) Objective {
	maxPos := opt.MaxPositionOrder
	if maxPos == 0 {
		for _, b := range bays {
			if b.PositionOrder > maxPos {
				maxPos = b.PositionOrder
			}
		}
	}

	var terms []Term
	for _, f := range facts {
		terms = append(terms, Term{
			Var:   VarKey{Trainset: f.Trainset.ID},
			Coeff: f.Score.ObjectiveUnits(),
		})
		for _, b := range bays {
			terms = append(terms, Term{
				Var:   VarKey{Trainset: f.Trainset.ID, Bay: b.BayID},
				Coeff: BayBonus(f.Trainset, b, maxPos),
			})
		}
	}
	return Objective{Terms: terms}
}
