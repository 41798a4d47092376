package scoring

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/kochimetro/induct-scheduler/pkg/model"
)

func validCerts(id model.TrainsetID, snapshot time.Time) map[model.CertDomain]*model.FitnessCertificate {
	validTo := model.DateOnlyOf(snapshot.AddDate(0, 6, 0))
	out := map[model.CertDomain]*model.FitnessCertificate{}
	for _, d := range model.AllCertDomains {
		out[d] = &model.FitnessCertificate{TrainsetID: id, Domain: d, ValidTo: validTo, Status: model.CertStatusValid}
	}
	return out
}

func TestScoreFullyHealthyTrainsetScoresHigh(t *testing.T) {
	snapshot := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	id := uuid.New()
	in := Input{
		Trainset:     &model.Trainset{BaseModel: model.BaseModel{ID: id}, TotalKM: 100000},
		Certificates: validCerts(id, snapshot),
		Mileage:      &model.MileageRecord{TotalKM: 100000, BogieCondition: 95},
		HomeBayFree:  true,
	}
	s := Score(in, snapshot, DefaultConfig())
	if s.Total < 70 {
		t.Fatalf("expected a high score for a healthy trainset, got %.1f", s.Total)
	}
	if s.Breakdown.StablingAccess != 5 {
		t.Fatalf("expected full stabling access score, got %.1f", s.Breakdown.StablingAccess)
	}
}

func TestScoreEmergencyJobCardSubtractsTenFromJobCardLoad(t *testing.T) {
	snapshot := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	id := uuid.New()
	in := Input{
		Trainset:     &model.Trainset{BaseModel: model.BaseModel{ID: id}},
		Certificates: validCerts(id, snapshot),
		JobCards:     []*model.JobCard{{TrainsetID: id, Priority: model.PriorityEmergency, Status: model.JobOpen}},
	}
	s := Score(in, snapshot, DefaultConfig())
	if s.Breakdown.JobCardLoad != 10 {
		t.Fatalf("expected emergency job card to subtract 10, got %.1f", s.Breakdown.JobCardLoad)
	}
}

func TestScoreParseFailedCertificateFallsBackConservatively(t *testing.T) {
	snapshot := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	id := uuid.New()
	cert := &model.FitnessCertificate{TrainsetID: id, Domain: model.DomainRollingStock, Status: model.CertStatusValid}
	cert.MarkParseFailed()
	certs := map[model.CertDomain]*model.FitnessCertificate{model.DomainRollingStock: cert}
	in := Input{
		Trainset:     &model.Trainset{BaseModel: model.BaseModel{ID: id}},
		Certificates: certs,
	}
	s := Score(in, snapshot, DefaultConfig())
	if s.Breakdown.Fitness != fitnessParseFallback {
		t.Fatalf("expected conservative fitness fallback %.2f, got %.2f", fitnessParseFallback, s.Breakdown.Fitness)
	}
}

func TestScoreAllPreservesInputOrder(t *testing.T) {
	snapshot := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var inputs []Input
	ids := make([]model.TrainsetID, 20)
	for i := 0; i < 20; i++ {
		id := uuid.New()
		ids[i] = id
		inputs = append(inputs, Input{
			Trainset:     &model.Trainset{BaseModel: model.BaseModel{ID: id}, TotalKM: float64(i * 1000)},
			Certificates: validCerts(id, snapshot),
			Mileage:      &model.MileageRecord{TotalKM: float64(i * 1000)},
		})
	}
	scores, err := ScoreAll(context.Background(), inputs, snapshot, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scores) != len(ids) {
		t.Fatalf("expected %d scores, got %d", len(ids), len(scores))
	}
	for i, s := range scores {
		if s.TrainsetID != ids[i] {
			t.Fatalf("index %d: expected trainset %s, got %s", i, ids[i], s.TrainsetID)
		}
	}
}

func TestLessTieBreakOrdering(t *testing.T) {
	a := model.Score{TrainsetID: uuid.MustParse("00000000-0000-0000-0000-000000000001"), Total: 80, Breakdown: model.ScoreBreakdown{Fitness: 20}}
	b := model.Score{TrainsetID: uuid.MustParse("00000000-0000-0000-0000-000000000002"), Total: 80, Breakdown: model.ScoreBreakdown{Fitness: 25}}
	totalKM := map[model.TrainsetID]float64{a.TrainsetID: 1000, b.TrainsetID: 1000}
	if !Less(b, a, totalKM) {
		t.Fatalf("expected higher fitness sub-score to win a tie on total")
	}

	c := model.Score{TrainsetID: uuid.MustParse("00000000-0000-0000-0000-000000000003"), Total: 80, Breakdown: model.ScoreBreakdown{Fitness: 20}}
	d := model.Score{TrainsetID: uuid.MustParse("00000000-0000-0000-0000-000000000004"), Total: 80, Breakdown: model.ScoreBreakdown{Fitness: 20}}
	km := map[model.TrainsetID]float64{c.TrainsetID: 5000, d.TrainsetID: 1000}
	if !Less(d, c, km) {
		t.Fatalf("expected lower total_km to win a tie on total and fitness")
	}
}
