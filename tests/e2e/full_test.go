// Package e2e exercises the full load -> score -> gate -> build -> solve
// -> extract -> report pipeline through its on-disk entry point.
package e2e

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kochimetro/induct-scheduler/internal/fixture"
	"github.com/kochimetro/induct-scheduler/internal/snapshot"
	"github.com/kochimetro/induct-scheduler/pkg/model"
	"github.com/kochimetro/induct-scheduler/pkg/scheduler"
)

// TestFullWorkflowFromJSONSnapshot builds a fleet, round-trips it through
// a JSON snapshot file the way the CLI's --snapshot flag does, and runs
// one full optimisation over the reloaded data source.
func TestFullWorkflowFromJSONSnapshot(t *testing.T) {
	src := fixture.Generate(60, 18)
	ctx := context.Background()

	trainsets, err := src.Trainsets(ctx)
	if err != nil {
		t.Fatalf("unexpected error loading trainsets: %v", err)
	}
	ids := make([]model.TrainsetID, len(trainsets))
	for i, ts := range trainsets {
		ids[i] = ts.ID
	}
	certs, _ := src.FitnessCertificates(ctx, ids)
	jobs, _ := src.JobCards(ctx, ids)
	branding, _ := src.BrandingCommitments(ctx, ids)
	mileage, _ := src.MileageRecords(ctx, ids)
	cleaning, _ := src.CleaningSlots(ctx, ids)
	bays, _ := src.Bays(ctx)

	doc := snapshot.Snapshot{StablingBays: bays}
	for _, ts := range trainsets {
		doc.Records = append(doc.Records, snapshot.Record{
			Trainset:     ts,
			Certificates: certs[ts.ID],
			JobCards:     jobs[ts.ID],
			Branding:     branding[ts.ID],
			Mileage:      mileage[ts.ID],
			Cleaning:     cleaning[ts.ID],
		})
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("unexpected marshal error: %v", err)
	}
	path := filepath.Join(t.TempDir(), "snapshot.json")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("unexpected write error: %v", err)
	}

	loaded, err := snapshot.LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}

	sched := scheduler.New(loaded)
	req := scheduler.Request{
		SnapshotTime:        time.Date(2026, 8, 3, 6, 0, 0, 0, time.UTC),
		RosterSize:          24,
		SolverBudgetSeconds: 2,
		EnableRelaxation:    true,
		Seed:                11,
	}
	res, err := sched.Optimise(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Selected) != req.RosterSize {
		t.Fatalf("expected %d selected trainsets, got %d", req.RosterSize, len(res.Selected))
	}
	if len(res.Selected)+len(res.Rejected) != len(trainsets) {
		t.Fatalf("expected every trainset to land in exactly one of selected or rejected")
	}

	seenBay := map[model.BayID]bool{}
	for _, s := range res.Selected {
		if s.Bay == nil {
			t.Fatalf("expected every selected entry to carry a bay assignment")
		}
		if seenBay[s.Bay.BayID] {
			t.Fatalf("bay %s assigned to more than one trainset", s.Bay.BayID)
		}
		seenBay[s.Bay.BayID] = true
		if s.Score < 0 || s.Score > 100 {
			t.Fatalf("expected score in [0,100], got %v", s.Score)
		}
	}
}
