package model

// Snapshot is the backup file format: one JSON document holding every
// collection. All three keys are required on import; a file exported
// by one build must stay importable by later builds.
type Snapshot struct {
	Users     []User          `json:"users"`
	Invoices  []Invoice       `json:"invoices"`
	Inventory []InventoryItem `json:"inventory"`
}
