package domain

// Medication is an inventory item. Stock is set directly by the
// inventory-update operation and never goes negative.
type Medication struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Stock        int    `json:"stock"`
	MinThreshold int    `json:"minThreshold"`
	Type         string `json:"type"`
}

// LowStock reports whether the medication is below its reorder threshold
func (m Medication) LowStock() bool {
	return m.Stock < m.MinThreshold
}
