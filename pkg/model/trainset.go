package model

// Vendor identifies the rolling-stock manufacturer of a trainset.
type Vendor string

const (
	VendorA Vendor = "A"
	VendorB Vendor = "B"
	VendorC Vendor = "C"
)

// Depot identifies a trainset's home stabling depot.
type Depot string

const (
	DepotA Depot = "DepotA"
	DepotB Depot = "DepotB"
)

// OperationalStatus is the trainset's status at snapshot time.
type OperationalStatus string

const (
	StatusInService  OperationalStatus = "in_service"
	StatusStandby    OperationalStatus = "standby"
	StatusMaintenance OperationalStatus = "maintenance"
	StatusUnknown    OperationalStatus = "unknown"
)

// NormalizeOperationalStatus folds the several raw status strings seen
// across upstream feeds into the three canonical values. Applied once at
// the data-source boundary, never inside scoring or gating.
func NormalizeOperationalStatus(raw string) OperationalStatus {
	switch raw {
	case "ready", "in_service":
		return StatusInService
	case "standby":
		return StatusStandby
	case "maintenance", "IBL_maintenance":
		return StatusMaintenance
	default:
		return StatusUnknown
	}
}

// Trainset is the central entity of the induction scheduling core.
type Trainset struct {
	BaseModel
	Number    string            `json:"number" db:"number"`
	Vendor    Vendor            `json:"vendor" db:"vendor"`
	YearBuilt int               `json:"year_built" db:"year_built"`
	HomeDepot Depot             `json:"home_depot" db:"home_depot"`
	Status    OperationalStatus `json:"status" db:"status"`

	TotalKM   float64 `json:"total_km" db:"total_km"`
	BogieWear float64 `json:"bogie_condition" db:"bogie_condition"` // 0-100, higher is better
	BrakeWear float64 `json:"brake_wear" db:"brake_wear"`           // 0-100, higher means more worn
	HVACHours float64 `json:"hvac_hours" db:"hvac_hours"`

	// Notes is carried through from ingestion but never interpreted.
	Notes string `json:"notes,omitempty" db:"notes"`
}

// IsMaintenance reports whether the trainset is currently under maintenance.
func (t *Trainset) IsMaintenance() bool {
	return t.Status == StatusMaintenance
}

// AgeYears returns the trainset's age in whole years at the given snapshot year.
func (t *Trainset) AgeYears(snapshotYear int) int {
	age := snapshotYear - t.YearBuilt
	if age < 0 {
		return 0
	}
	return age
}
