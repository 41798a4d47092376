package scheduler

import (
	"context"
	"time"

	"github.com/kochimetro/induct-scheduler/pkg/compliance"
	schedErrors "github.com/kochimetro/induct-scheduler/pkg/errors"
	"github.com/kochimetro/induct-scheduler/pkg/eligibility"
	"github.com/kochimetro/induct-scheduler/pkg/extractor"
	"github.com/kochimetro/induct-scheduler/pkg/logger"
	"github.com/kochimetro/induct-scheduler/pkg/model"
	"github.com/kochimetro/induct-scheduler/pkg/modelbuilder"
	"github.com/kochimetro/induct-scheduler/pkg/scoring"
	"github.com/kochimetro/induct-scheduler/pkg/solver"
)

// Status is the terminal state of one Optimise invocation.
type Status string

const (
	StatusOptimal      Status = "optimal"
	StatusFeasible     Status = "feasible"
	StatusFallbackUsed Status = "fallback_used"
	StatusInfeasible   Status = "infeasible"
)

// Request is the Scheduler Façade's input contract.
type Request struct {
	SnapshotTime        time.Time
	RosterSize          int           // default 24
	SolverBudgetSeconds float64       // default 10
	EnableRelaxation    bool
	DepotBalanceLo      int
	DepotBalanceHi      int
	AgeNewYearsMax      int
	CriticalBrandingMin int
	MileageBandLo       float64
	MileageBandHi       float64
	HomeBayMin          int
	Seed                int64
}

// WithDefaults fills in every zero-valued size, budget and threshold
// field with the documented default, matching §6 of the
// external-interfaces contract. EnableRelaxation and Seed are taken as
// given.
func (r Request) WithDefaults() Request {
	if r.RosterSize == 0 {
		r.RosterSize = 24
	}
	if r.SolverBudgetSeconds == 0 {
		r.SolverBudgetSeconds = 10
	}
	if r.DepotBalanceLo == 0 {
		r.DepotBalanceLo = 9
	}
	if r.DepotBalanceHi == 0 {
		r.DepotBalanceHi = 15
	}
	if r.AgeNewYearsMax == 0 {
		r.AgeNewYearsMax = 5
	}
	if r.CriticalBrandingMin == 0 {
		r.CriticalBrandingMin = 6
	}
	if r.MileageBandLo == 0 {
		r.MileageBandLo = 50000
	}
	if r.MileageBandHi == 0 {
		r.MileageBandHi = 150000
	}
	if r.HomeBayMin == 0 {
		r.HomeBayMin = 18
	}
	return r
}

// Result is the Scheduler Façade's output contract.
type Result struct {
	Status         Status
	Selected       []model.SelectedEntry
	Rejected       []model.RejectedEntry
	ObjectiveValue int
	Compliance     compliance.Report
	ExecutionMS    int64
	Violations     []string
}

// Scheduler is the Scheduler Façade. It carries no mutable state
// between calls: every Optimise invocation builds its own model and
// extractor, so concurrent invocations never interfere.
type Scheduler struct {
	DataSource FleetDataSource
	Solver     solver.Solver // nil selects LocalSearchSolver with Request.Seed
	log        *logger.InductionLogger
}

// New constructs a Scheduler over the given data source.
func New(ds FleetDataSource) *Scheduler {
	return &Scheduler{DataSource: ds, log: logger.NewInductionLogger()}
}

// Optimise runs load -> score -> gate -> build -> solve -> extract ->
// report and returns a single result record. It is a pure function of
// its inputs given a deterministic solver seed: no package-level
// mutable state is read or written.
func (s *Scheduler) Optimise(ctx context.Context, req Request) (Result, error) {
	req = req.WithDefaults()
	start := time.Now()

	if req.RosterSize < 0 {
		return Result{}, schedErrors.InvalidInput("roster_size", "must be non-negative")
	}

	trainsets, err := s.DataSource.Trainsets(ctx)
	if err != nil {
		return Result{}, err
	}
	bays, err := s.DataSource.Bays(ctx)
	if err != nil {
		return Result{}, err
	}

	s.log.StartOptimise(req.SnapshotTime, len(trainsets), req.RosterSize)

	ids := make([]model.TrainsetID, len(trainsets))
	for i, t := range trainsets {
		ids[i] = t.ID
	}
	certs, err := s.DataSource.FitnessCertificates(ctx, ids)
	if err != nil {
		return Result{}, err
	}
	jobs, err := s.DataSource.JobCards(ctx, ids)
	if err != nil {
		return Result{}, err
	}
	branding, err := s.DataSource.BrandingCommitments(ctx, ids)
	if err != nil {
		return Result{}, err
	}
	mileage, err := s.DataSource.MileageRecords(ctx, ids)
	if err != nil {
		return Result{}, err
	}
	cleaning, err := s.DataSource.CleaningSlots(ctx, ids)
	if err != nil {
		return Result{}, err
	}

	homeBayFree := homeBayAvailability(trainsets, bays)

	inputs := make([]scoring.Input, len(trainsets))
	for i, t := range trainsets {
		inputs[i] = scoring.Input{
			Trainset:     t,
			Certificates: certs[t.ID],
			JobCards:     jobs[t.ID],
			Branding:     branding[t.ID],
			Mileage:      mileage[t.ID],
			Cleaning:     cleaning[t.ID],
			HomeBayFree:  homeBayFree[t.ID],
		}
	}

	scoreCfg := scoring.Config{
		MileageBandLo:     req.MileageBandLo,
		MileageBandHi:     req.MileageBandHi,
		MileageAdjacentLo: req.MileageBandLo - 20000,
		MileageAdjacentHi: req.MileageBandHi + 50000,
	}
	scores, err := scoring.ScoreAll(ctx, inputs, req.SnapshotTime, scoreCfg)
	if err != nil {
		if ctx.Err() != nil {
			return s.cancelledResult(start), nil
		}
		return Result{}, err
	}
	scoreByID := make(map[model.TrainsetID]model.Score, len(scores))
	for _, sc := range scores {
		scoreByID[sc.TrainsetID] = sc
	}

	candidates := make([]eligibility.Candidate, len(trainsets))
	for i, t := range trainsets {
		candidates[i] = eligibility.Candidate{
			Trainset:         t,
			ValidCertCount:   validCertCount(certs[t.ID], req.SnapshotTime),
			HasOpenEmergency: hasOpenEmergency(jobs[t.ID]),
		}
	}

	pool, gateErr := eligibility.Run(candidates, req.RosterSize, req.EnableRelaxation)
	if gateErr != nil {
		return Result{Status: StatusInfeasible}, schedErrors.InsufficientFleet(len(pool.Admitted), req.RosterSize)
	}

	facts := buildFacts(pool, scoreByID, certs, jobs, branding, homeBayFree, req.SnapshotTime)

	opt := modelbuilder.Options{
		RosterSize:          req.RosterSize,
		DepotBalanceLo:      req.DepotBalanceLo,
		DepotBalanceHi:      req.DepotBalanceHi,
		AgeNewYearsMax:      req.AgeNewYearsMax,
		CriticalBrandingMin: req.CriticalBrandingMin,
		MileageBandLo:       req.MileageBandLo,
		MileageBandHi:       req.MileageBandHi,
		HomeBayMin:          req.HomeBayMin,
		SnapshotYear:        req.SnapshotTime.Year(),
	}
	m := modelbuilder.Build(facts, bays, opt)

	activeSolver := s.Solver
	if activeSolver == nil {
		activeSolver = solver.LocalSearchSolver{Config: solver.DefaultLocalSearchConfig(req.Seed)}
	}
	budget := time.Duration(req.SolverBudgetSeconds * float64(time.Second))
	solveRes := activeSolver.Solve(ctx, m, budget)

	if ctx.Err() != nil {
		return s.cancelledResult(start), nil
	}

	gateExcluded := make([]extractor.GateExcluded, 0, len(pool.Excluded))
	for _, c := range pool.Excluded {
		gateExcluded = append(gateExcluded, extractor.GateExcluded{
			Trainset: c.Trainset,
			Score:    scoreByID[c.Trainset.ID],
			Reason:   gateExclusionReason(c),
		})
	}

	outcome := extractor.Extract(extractor.Input{
		Facts:        facts,
		Bays:         bays,
		GateExcluded: gateExcluded,
		Snapshot:     req.SnapshotTime,
	}, m, solveRes, budget)

	if outcome.FallbackUsed {
		s.log.SolverFallback(activeSolver.Name(), "infeasible_or_error")
	}

	complianceOpt := compliance.Options{
		DepotBalanceLo:      req.DepotBalanceLo,
		DepotBalanceHi:      req.DepotBalanceHi,
		AgeNewYearsMax:      req.AgeNewYearsMax,
		CriticalBrandingMin: req.CriticalBrandingMin,
		MileageBandLo:       req.MileageBandLo,
		MileageBandHi:       req.MileageBandHi,
		HomeBayMin:          req.HomeBayMin,
		SnapshotYear:        req.SnapshotTime.Year(),
		CriticalPoolSize:    countActiveCritical(facts),
		MileageBandPoolSize: countInMileageBand(facts, req.MileageBandLo, req.MileageBandHi),
		HomeBayPoolSize:     countHomeBayAvailable(facts),
	}
	report := compliance.Build(outcome.Roster.Selected, m.OmittedSoft, complianceOpt)

	violations := append(outcome.Violations, report.Violations...)

	status := StatusOptimal
	switch {
	case outcome.FallbackUsed:
		status = StatusFallbackUsed
	case solveRes.Status == solver.StatusFeasible:
		status = StatusFeasible
	case solveRes.Status == solver.StatusTimeout:
		status = StatusFeasible
	}

	result := Result{
		Status:         status,
		Selected:       outcome.Roster.Selected,
		Rejected:       outcome.Roster.Rejected,
		ObjectiveValue: solveRes.Objective,
		Compliance:     report,
		ExecutionMS:    time.Since(start).Milliseconds(),
		Violations:     violations,
	}
	s.log.OptimiseComplete(string(status), time.Since(start), result.ObjectiveValue)
	return result, nil
}

func (s *Scheduler) cancelledResult(start time.Time) Result {
	return Result{
		Status:      StatusInfeasible,
		Violations:  []string{"cancelled"},
		ExecutionMS: time.Since(start).Milliseconds(),
	}
}
