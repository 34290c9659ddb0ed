package model

// InvoiceItem is a single billed line within an invoice. The id is
// unique within its invoice only.
type InvoiceItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Qty         int     `json:"qty"`
	Rate        float64 `json:"rate"`
}

// Amount returns the derived line amount. It is never stored.
func (it InvoiceItem) Amount() float64 {
	return float64(it.Qty) * it.Rate
}

// Invoice is a finalized sales invoice. Invoices are immutable after
// creation; Total is computed once from the line items and frozen.
type Invoice struct {
	ID            string        `json:"id"`
	InvoiceNumber string        `json:"invoiceNumber"`
	Date          string        `json:"date"`
	CustomerName  string        `json:"customerName"`
	Vehicle       string        `json:"vehicle"`
	VehicleNo     string        `json:"vehicleNo"`
	MobileNo      string        `json:"mobileNo"`
	KM            string        `json:"km"`
	Items         []InvoiceItem `json:"items"`
	Total         float64       `json:"total"`
}
