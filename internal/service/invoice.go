package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"garagebook-api/internal/model"
	"garagebook-api/internal/storage"
)

// InvoiceDraft holds everything the operator supplies when creating an
// invoice. Id, number and total are assigned by the store.
type InvoiceDraft struct {
	Date         string              `json:"date"`
	CustomerName string              `json:"customerName"`
	Vehicle      string              `json:"vehicle"`
	VehicleNo    string              `json:"vehicleNo"`
	MobileNo     string              `json:"mobileNo"`
	KM           string              `json:"km"`
	Items        []model.InvoiceItem `json:"items"`
}

// NextInvoiceNumber returns the number the next created invoice would
// receive. Pure query: calling it does not allocate anything, the
// presentation layer uses it for previews.
func (s *Store) NextInvoiceNumber() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.formatNumber(s.nextSeq())
}

// nextSeq returns the next invoice sequence. The scan over existing
// invoices is combined with the process high-water mark so numbers
// stay strictly increasing no matter what was deleted. Callers hold
// the lock.
func (s *Store) nextSeq() int {
	max := s.lastSeq
	if n := s.scanMaxSeq(); n > max {
		max = n
	}
	return max + 1
}

// scanMaxSeq returns the highest numeric suffix among stored invoice
// numbers under the configured prefix. Callers hold the lock.
func (s *Store) scanMaxSeq() int {
	max := 0
	for _, inv := range s.invoices {
		if !strings.HasPrefix(inv.InvoiceNumber, s.numberPrefix) {
			continue
		}
		n, err := strconv.Atoi(inv.InvoiceNumber[len(s.numberPrefix):])
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return max
}

func (s *Store) formatNumber(seq int) string {
	return fmt.Sprintf("%s%0*d", s.numberPrefix, s.numberWidth, seq)
}

// AddInvoice finalizes a draft: lines with an empty description or a
// non-positive quantity are discarded, the total is computed and
// frozen, and an id and the next invoice number are assigned. For
// every line whose description exactly matches an inventory item's
// name, that item's numeric stock is decremented by the line quantity.
// Unlimited items are left alone, and stock is allowed to go negative.
func (s *Store) AddInvoice(ctx context.Context, draft InvoiceDraft) (*model.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var items []model.InvoiceItem
	for _, it := range draft.Items {
		if it.Description == "" || it.Qty <= 0 {
			continue
		}
		if it.ID == "" {
			it.ID = s.idGen()
		}
		items = append(items, it)
	}
	if len(items) == 0 {
		return nil, ErrEmptyInvoice
	}

	total := 0.0
	for _, it := range items {
		total += it.Amount()
	}

	date := draft.Date
	if date == "" {
		date = s.now().Format("2006-01-02")
	}

	seq := s.nextSeq()
	inv := model.Invoice{
		ID:            s.idGen(),
		InvoiceNumber: s.formatNumber(seq),
		Date:          date,
		CustomerName:  draft.CustomerName,
		Vehicle:       draft.Vehicle,
		VehicleNo:     draft.VehicleNo,
		MobileNo:      draft.MobileNo,
		KM:            draft.KM,
		Items:         items,
		Total:         total,
	}
	s.invoices = append(s.invoices, inv)
	s.lastSeq = seq

	touched := false
	for _, it := range items {
		for i := range s.inventory {
			stock := &s.inventory[i]
			if stock.Name != it.Description || stock.Quantity.Unlimited {
				continue
			}
			stock.Quantity.Count -= it.Qty
			touched = true
		}
	}

	s.persist(ctx, storage.KeyInvoices, s.invoices)
	if touched {
		s.persist(ctx, storage.KeyInventory, s.inventory)
	}

	out := inv
	return &out, nil
}

// DeleteInvoice removes the invoice with the given id, or does nothing
// if it does not exist. Stock decremented at creation time is not
// restored.
func (s *Store) DeleteInvoice(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, inv := range s.invoices {
		if inv.ID != id {
			continue
		}
		s.invoices = append(s.invoices[:i], s.invoices[i+1:]...)
		s.persist(ctx, storage.KeyInvoices, s.invoices)
		return
	}
}

// GetInvoiceByID returns the invoice with the given id, or ErrNotFound.
func (s *Store) GetInvoiceByID(id string) (*model.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, inv := range s.invoices {
		if inv.ID == id {
			out := inv
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

// SearchInvoices returns invoices whose customer name or invoice
// number contains the term (case-insensitive), newest date first. An
// empty term matches everything.
func (s *Store) SearchInvoices(term string) []model.Invoice {
	s.mu.RLock()
	defer s.mu.RUnlock()

	term = strings.ToLower(term)
	out := make([]model.Invoice, 0, len(s.invoices))
	for _, inv := range s.invoices {
		if term == "" ||
			strings.Contains(strings.ToLower(inv.CustomerName), term) ||
			strings.Contains(strings.ToLower(inv.InvoiceNumber), term) {
			out = append(out, inv)
		}
	}

	// Dates are YYYY-MM-DD, so a string compare sorts chronologically.
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].InvoiceNumber > out[j].InvoiceNumber
	})
	return out
}
