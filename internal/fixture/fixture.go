// Package fixture provides an in-memory FleetDataSource for tests and
// for the CLI when no --snapshot is given: a deterministic generator in the same
// spirit as a scenario-test factory, lifted out of _test.go files so
// both tests and non-test code can build one.
package fixture

import (
	"context"

	"github.com/google/uuid"

	"github.com/kochimetro/induct-scheduler/pkg/model"
)

// Source is an in-memory FleetDataSource over a fixed snapshot.
type Source struct {
	trainsets []*model.Trainset
	certs     map[model.TrainsetID]map[model.CertDomain]*model.FitnessCertificate
	jobs      map[model.TrainsetID][]*model.JobCard
	branding  map[model.TrainsetID]*model.BrandingCommitment
	mileage   map[model.TrainsetID]*model.MileageRecord
	cleaning  map[model.TrainsetID][]*model.CleaningSlot
	bays      []*model.StablingBay
}

// NewSource builds a Source from a Builder's accumulated state.
func NewSource(b *Builder) *Source {
	return &Source{
		trainsets: b.trainsets,
		certs:     b.certs,
		jobs:      b.jobs,
		branding:  b.branding,
		mileage:   b.mileage,
		cleaning:  b.cleaning,
		bays:      b.bays,
	}
}

func (s *Source) Trainsets(ctx context.Context) ([]*model.Trainset, error) {
	return s.trainsets, nil
}

func (s *Source) FitnessCertificates(ctx context.Context, ids []model.TrainsetID) (map[model.TrainsetID]map[model.CertDomain]*model.FitnessCertificate, error) {
	return s.certs, nil
}

func (s *Source) JobCards(ctx context.Context, ids []model.TrainsetID) (map[model.TrainsetID][]*model.JobCard, error) {
	return s.jobs, nil
}

func (s *Source) BrandingCommitments(ctx context.Context, ids []model.TrainsetID) (map[model.TrainsetID]*model.BrandingCommitment, error) {
	return s.branding, nil
}

func (s *Source) MileageRecords(ctx context.Context, ids []model.TrainsetID) (map[model.TrainsetID]*model.MileageRecord, error) {
	return s.mileage, nil
}

func (s *Source) CleaningSlots(ctx context.Context, ids []model.TrainsetID) (map[model.TrainsetID][]*model.CleaningSlot, error) {
	return s.cleaning, nil
}

func (s *Source) Bays(ctx context.Context) ([]*model.StablingBay, error) {
	return s.bays, nil
}

// Builder accumulates fixture state before NewSource freezes it into a
// FleetDataSource.
type Builder struct {
	trainsets []*model.Trainset
	certs     map[model.TrainsetID]map[model.CertDomain]*model.FitnessCertificate
	jobs      map[model.TrainsetID][]*model.JobCard
	branding  map[model.TrainsetID]*model.BrandingCommitment
	mileage   map[model.TrainsetID]*model.MileageRecord
	cleaning  map[model.TrainsetID][]*model.CleaningSlot
	bays      []*model.StablingBay
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		certs:    map[model.TrainsetID]map[model.CertDomain]*model.FitnessCertificate{},
		jobs:     map[model.TrainsetID][]*model.JobCard{},
		branding: map[model.TrainsetID]*model.BrandingCommitment{},
		mileage:  map[model.TrainsetID]*model.MileageRecord{},
		cleaning: map[model.TrainsetID][]*model.CleaningSlot{},
	}
}

// AddTrainset creates and registers one trainset with fully-valid
// certificates and a clean default mileage record, returning it so the
// caller can layer job cards, branding, or cleaning slots on top.
func (b *Builder) AddTrainset(number string, vendor model.Vendor, depot model.Depot, yearBuilt int, totalKM float64) *model.Trainset {
	t := &model.Trainset{
		BaseModel: model.NewBaseModel(),
		Number:    number,
		Vendor:    vendor,
		YearBuilt: yearBuilt,
		HomeDepot: depot,
		Status:    model.StatusInService,
		TotalKM:   totalKM,
		BogieWear: 90,
		BrakeWear: 10,
		HVACHours: 100,
	}
	b.trainsets = append(b.trainsets, t)
	b.certs[t.ID] = defaultValidCerts(t.ID)
	b.mileage[t.ID] = &model.MileageRecord{
		TrainsetID:     t.ID,
		TotalKM:        totalKM,
		BogieCondition: 90,
		BrakeWear:      10,
		HVACHours:      100,
	}
	return t
}

// SetStatus overrides a trainset's operational status.
func (b *Builder) SetStatus(t *model.Trainset, status model.OperationalStatus) {
	t.Status = status
}

// DegradeCertificate sets a trainset's certificate in the given domain
// to invalid, so tests can exercise Tier R/F admission and the
// "invalid fitness certificates" exclusion reason.
func (b *Builder) DegradeCertificate(t *model.Trainset, domain model.CertDomain) {
	b.certs[t.ID][domain] = &model.FitnessCertificate{
		TrainsetID: t.ID,
		Domain:     domain,
		Status:     model.CertStatusInvalid,
	}
}

// AddJobCard attaches an open job card of the given priority.
func (b *Builder) AddJobCard(t *model.Trainset, priority model.JobPriority) {
	b.jobs[t.ID] = append(b.jobs[t.ID], &model.JobCard{
		TrainsetID: t.ID,
		Priority:   priority,
		Status:     model.JobOpen,
	})
}

// SetBranding attaches an active branding commitment.
func (b *Builder) SetBranding(t *model.Trainset, priority model.BrandingPriority, achieved, target float64, start, end model.DateOnly) {
	b.branding[t.ID] = &model.BrandingCommitment{
		TrainsetID:            t.ID,
		Priority:              priority,
		TargetExposureHours:   target,
		AchievedExposureHours: achieved,
		CampaignStart:         start,
		CampaignEnd:           end,
	}
}

// AddCleaningSlot attaches a completed cleaning slot on the given
// slot date.
func (b *Builder) AddCleaningSlot(t *model.Trainset, kind model.CleaningKind, slotTime model.DateOnly) {
	b.cleaning[t.ID] = append(b.cleaning[t.ID], &model.CleaningSlot{
		TrainsetID: t.ID,
		Kind:       kind,
		Status:     model.CleaningCompleted,
		SlotTime:   slotTime,
	})
}

// AddBay registers one stabling bay.
func (b *Builder) AddBay(depot model.Depot, line string, positionOrder int) *model.StablingBay {
	bay := &model.StablingBay{
		BayID:         uuid.New(),
		Depot:         depot,
		Line:          line,
		PositionOrder: positionOrder,
	}
	b.bays = append(b.bays, bay)
	return bay
}

func defaultValidCerts(id model.TrainsetID) map[model.CertDomain]*model.FitnessCertificate {
	out := map[model.CertDomain]*model.FitnessCertificate{}
	for _, d := range model.AllCertDomains {
		out[d] = &model.FitnessCertificate{
			TrainsetID: id,
			Domain:     d,
			ValidFrom:  "2020-01-01",
			ValidTo:    "2030-01-01",
			Status:     model.CertStatusValid,
		}
	}
	return out
}
