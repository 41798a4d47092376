// Package scheduler is the entry point: it loads data, orchestrates
// scoring, gating, model assembly, solving, extraction and reporting,
// and returns a single result record per invocation.
package scheduler

import (
	"context"

	"github.com/kochimetro/induct-scheduler/pkg/model"
)

// FleetDataSource is the sole external collaborator the core consumes.
// Implementations may be backed by a database, a file system, or a
// test fixture; the core treats every value they return as immutable
// for the duration of one Optimise call.
type FleetDataSource interface {
	Trainsets(ctx context.Context) ([]*model.Trainset, error)
	FitnessCertificates(ctx context.Context, ids []model.TrainsetID) (map[model.TrainsetID]map[model.CertDomain]*model.FitnessCertificate, error)
	JobCards(ctx context.Context, ids []model.TrainsetID) (map[model.TrainsetID][]*model.JobCard, error)
	BrandingCommitments(ctx context.Context, ids []model.TrainsetID) (map[model.TrainsetID]*model.BrandingCommitment, error)
	MileageRecords(ctx context.Context, ids []model.TrainsetID) (map[model.TrainsetID]*model.MileageRecord, error)
	CleaningSlots(ctx context.Context, ids []model.TrainsetID) (map[model.TrainsetID][]*model.CleaningSlot, error)
	Bays(ctx context.Context) ([]*model.StablingBay, error)
}
