package domain

import "time"

type VehicleAtStationStatus string

const (
	VehicleStatusAvailable VehicleAtStationStatus = "AVAILABLE"
	VehicleStatusPending   VehicleAtStationStatus = "PENDING"
	VehicleStatusBooked    VehicleAtStationStatus = "BOOKED"
	VehicleStatusMaintain  VehicleAtStationStatus = "MAINTAIN"
)

// VehicleAtStation binds a physical vehicle to a station for a period and
// carries its live odometer/battery snapshot. At most one non-cancelled
// booking may hold it in PENDING or BOOKED at a time.
type VehicleAtStation struct {
	ID             int32                  `json:"id"`
	VehicleID      int32                  `json:"vehicle_id"`
	StationID      int32                  `json:"station_id"`
	AvailableFrom  *time.Time             `json:"available_from,omitempty"`
	AvailableTo    *time.Time             `json:"available_to,omitempty"`
	OdometerKm     int32                  `json:"odometer_km"`
	BatteryPercent int32                  `json:"battery_percent"`
	Status         VehicleAtStationStatus `json:"status"`
	CreatedOn      time.Time              `json:"created_on"`
	UpdatedOn      time.Time              `json:"updated_on"`
}
