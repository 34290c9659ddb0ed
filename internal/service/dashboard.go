package service

// DaySummary aggregates the shop's activity for one calendar date,
// consumed read-only by the dashboard.
type DaySummary struct {
	Date          string  `json:"date"`
	InvoiceCount  int     `json:"invoiceCount"`
	Sales         float64 `json:"sales"`
	TotalInvoices int     `json:"totalInvoices"`
	LowStockCount int     `json:"lowStockCount"`
}

// DailySummary returns invoice count and sales total for the given
// date plus overall counters.
func (s *Store) DailySummary(date string) DaySummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sum := DaySummary{Date: date, TotalInvoices: len(s.invoices)}
	for _, inv := range s.invoices {
		if inv.Date != date {
			continue
		}
		sum.InvoiceCount++
		sum.Sales += inv.Total
	}
	for i := range s.inventory {
		if s.inventory[i].LowStock() {
			sum.LowStockCount++
		}
	}
	return sum
}
