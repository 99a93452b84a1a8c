package entity

import "time"

// Warehouse representa una bodega donde se almacena inventario (multi-bodega).
type Warehouse struct {
	ID        string
	CompanyID string
	BranchID  string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
