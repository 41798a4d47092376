// Package snapshot loads a point-in-time fleet snapshot from a JSON file
// and exposes it as a scheduler.FleetDataSource. It is the CLI's only
// ingestion path; no database or message-queue adapter exists, by design.
package snapshot

import (
	"context"
	"encoding/json"
	"os"

	"github.com/kochimetro/induct-scheduler/pkg/model"
)

// Record bundles one trainset with everything the scoring and gating
// stages need about it.
type Record struct {
	Trainset     *model.Trainset                                  `json:"trainset"`
	Certificates map[model.CertDomain]*model.FitnessCertificate    `json:"certificates"`
	JobCards     []*model.JobCard                                 `json:"job_cards"`
	Branding     *model.BrandingCommitment                        `json:"branding,omitempty"`
	Mileage      *model.MileageRecord                              `json:"mileage"`
	Cleaning     []*model.CleaningSlot                             `json:"cleaning"`
}

// Snapshot is a full fleet-state document: one record per trainset plus
// the depot's stabling bays.
type Snapshot struct {
	Records []Record              `json:"records"`
	StablingBays []*model.StablingBay `json:"bays"`
}

// LoadFile reads and decodes a snapshot document from disk.
func LoadFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	for _, r := range s.Records {
		if r.Trainset != nil {
			r.Trainset.Status = model.NormalizeOperationalStatus(string(r.Trainset.Status))
		}
		for _, c := range r.Certificates {
			if c != nil && c.ValidTo != "" && c.ValidTo.Parse().IsZero() {
				c.MarkParseFailed()
			}
		}
	}
	return &s, nil
}

func (s *Snapshot) Trainsets(ctx context.Context) ([]*model.Trainset, error) {
	out := make([]*model.Trainset, 0, len(s.Records))
	for _, r := range s.Records {
		out = append(out, r.Trainset)
	}
	return out, nil
}

func (s *Snapshot) FitnessCertificates(ctx context.Context, ids []model.TrainsetID) (map[model.TrainsetID]map[model.CertDomain]*model.FitnessCertificate, error) {
	out := make(map[model.TrainsetID]map[model.CertDomain]*model.FitnessCertificate, len(s.Records))
	for _, r := range s.Records {
		out[r.Trainset.ID] = r.Certificates
	}
	return out, nil
}

func (s *Snapshot) JobCards(ctx context.Context, ids []model.TrainsetID) (map[model.TrainsetID][]*model.JobCard, error) {
	out := make(map[model.TrainsetID][]*model.JobCard, len(s.Records))
	for _, r := range s.Records {
		out[r.Trainset.ID] = r.JobCards
	}
	return out, nil
}

func (s *Snapshot) BrandingCommitments(ctx context.Context, ids []model.TrainsetID) (map[model.TrainsetID]*model.BrandingCommitment, error) {
	out := make(map[model.TrainsetID]*model.BrandingCommitment, len(s.Records))
	for _, r := range s.Records {
		if r.Branding != nil {
			out[r.Trainset.ID] = r.Branding
		}
	}
	return out, nil
}

func (s *Snapshot) MileageRecords(ctx context.Context, ids []model.TrainsetID) (map[model.TrainsetID]*model.MileageRecord, error) {
	out := make(map[model.TrainsetID]*model.MileageRecord, len(s.Records))
	for _, r := range s.Records {
		out[r.Trainset.ID] = r.Mileage
	}
	return out, nil
}

func (s *Snapshot) CleaningSlots(ctx context.Context, ids []model.TrainsetID) (map[model.TrainsetID][]*model.CleaningSlot, error) {
	out := make(map[model.TrainsetID][]*model.CleaningSlot, len(s.Records))
	for _, r := range s.Records {
		out[r.Trainset.ID] = r.Cleaning
	}
	return out, nil
}

func (s *Snapshot) Bays(ctx context.Context) ([]*model.StablingBay, error) {
	return s.StablingBays, nil
}
