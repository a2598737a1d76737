package domain

import "time"

type DeviceType struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

type Brand struct {
	ID           string    `json:"id"`
	DeviceTypeID string    `json:"deviceTypeId"`
	Name         string    `json:"name"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Model struct {
	ID        string    `json:"id"`
	BrandID   string    `json:"brandId"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// Part is a replacement part tied to a device model. UnitServiceFee is the
// labor fee charged once per order line that uses the part, independent of
// quantity.
type Part struct {
	ID             string    `json:"id"`
	ModelID        string    `json:"modelId"`
	Name           string    `json:"name"`
	UnitPrice      int64     `json:"unitPrice"`
	UnitServiceFee int64     `json:"unitServiceFee"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
}
