package model

import "time"

// MileageRecord captures a trainset's usage and wear at snapshot time.
type MileageRecord struct {
	TrainsetID           TrainsetID `json:"trainset_id"`
	TotalKM              float64    `json:"total_km"`
	KMSincePOH           float64    `json:"km_since_poh"`
	KMSinceIOH           float64    `json:"km_since_ioh"`
	KMSinceTripMaint     float64    `json:"km_since_trip_maintenance"`
	BogieCondition       float64    `json:"bogie_condition"`
	BrakeWear            float64    `json:"brake_wear"`
	HVACHours            float64    `json:"hvac_hours"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// InMileageBand reports whether total_km falls within [lo, hi] inclusive.
func (m *MileageRecord) InMileageBand(lo, hi float64) bool {
	return m.TotalKM >= lo && m.TotalKM <= hi
}
