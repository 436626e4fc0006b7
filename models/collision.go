package models

import "time"

// Collision is one reported motor-vehicle collision. Records are read-only
// once loaded; the same struct is scanned from the Postgres source.
type Collision struct {
	OccurredAt         time.Time `gorm:"column:occurred_at" json:"occurred_at"`
	Latitude           float64   `gorm:"column:latitude" json:"latitude"`
	Longitude          float64   `gorm:"column:longitude" json:"longitude"`
	Borough            string    `gorm:"column:borough" json:"borough"`
	OnStreetName       string    `gorm:"column:on_street_name" json:"on_street_name"`
	InjuredPersons     int       `gorm:"column:injured_persons" json:"injured_persons"`
	KilledPersons      int       `gorm:"column:killed_persons" json:"killed_persons"`
	InjuredPedestrians int       `gorm:"column:injured_pedestrians" json:"injured_pedestrians"`
	KilledPedestrians  int       `gorm:"column:killed_pedestrians" json:"killed_pedestrians"`
	InjuredCyclists    int       `gorm:"column:injured_cyclists" json:"injured_cyclists"`
	KilledCyclists     int       `gorm:"column:killed_cyclists" json:"killed_cyclists"`
	InjuredMotorists   int       `gorm:"column:injured_motorists" json:"injured_motorists"`
	KilledMotorists    int       `gorm:"column:killed_motorists" json:"killed_motorists"`
	ContributingFactor string    `gorm:"column:contributing_factor" json:"contributing_factor"`
	VehicleType        string    `gorm:"column:vehicle_type" json:"vehicle_type"`
}

func (Collision) TableName() string { return "collisions" }

// Affected is the total number of people injured or killed in the collision.
func (c Collision) Affected() int {
	return c.InjuredPersons + c.KilledPersons
}

func (c Collision) HasInjury() bool {
	return c.InjuredPersons > 0
}

func (c Collision) HasFatality() bool {
	return c.KilledPersons > 0
}
