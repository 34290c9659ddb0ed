package service

import (
	"context"
	"testing"

	"garagebook-api/internal/model"
)

func draftWith(items ...model.InvoiceItem) InvoiceDraft {
	return InvoiceDraft{
		Date:         "2024-06-01",
		CustomerName: "Ravi",
		Items:        items,
	}
}

func mustAdd(t *testing.T, s *Store, draft InvoiceDraft) *model.Invoice {
	t.Helper()
	inv, err := s.AddInvoice(context.Background(), draft)
	if err != nil {
		t.Fatalf("AddInvoice: %v", err)
	}
	return inv
}

func TestInvoiceNumberSequence(t *testing.T) {
	s := newTestStore(t, newMemStorage(), nil)
	line := model.InvoiceItem{Description: "Service", Qty: 1, Rate: 100}

	want := []string{"SJIV000001", "SJIV000002", "SJIV000003"}
	var ids []string
	for i, w := range want {
		inv := mustAdd(t, s, draftWith(line))
		if inv.InvoiceNumber != w {
			t.Fatalf("invoice %d: got number %q, want %q", i+1, inv.InvoiceNumber, w)
		}
		ids = append(ids, inv.ID)
	}

	// Deleting the second invoice does not disturb the sequence.
	s.DeleteInvoice(context.Background(), ids[1])
	if inv := mustAdd(t, s, draftWith(line)); inv.InvoiceNumber != "SJIV000004" {
		t.Fatalf("got %q, want SJIV000004", inv.InvoiceNumber)
	}
}

func TestInvoiceNumberNotReusedAfterDeletingNewest(t *testing.T) {
	s := newTestStore(t, newMemStorage(), nil)
	line := model.InvoiceItem{Description: "Service", Qty: 1, Rate: 100}

	mustAdd(t, s, draftWith(line))
	second := mustAdd(t, s, draftWith(line))

	s.DeleteInvoice(context.Background(), second.ID)
	if inv := mustAdd(t, s, draftWith(line)); inv.InvoiceNumber != "SJIV000003" {
		t.Fatalf("got %q, want SJIV000003 (numbers are never reused)", inv.InvoiceNumber)
	}
}

func TestNextInvoiceNumberIsPureQuery(t *testing.T) {
	s := newTestStore(t, newMemStorage(), nil)

	if got := s.NextInvoiceNumber(); got != "SJIV000001" {
		t.Fatalf("got %q, want SJIV000001", got)
	}
	// Preview allocates nothing, repeated calls agree.
	if got := s.NextInvoiceNumber(); got != "SJIV000001" {
		t.Fatalf("got %q on second preview, want SJIV000001", got)
	}

	mustAdd(t, s, draftWith(model.InvoiceItem{Description: "Service", Qty: 1, Rate: 100}))
	if got := s.NextInvoiceNumber(); got != "SJIV000002" {
		t.Fatalf("got %q after one invoice, want SJIV000002", got)
	}
}

func TestNumberingSurvivesRestart(t *testing.T) {
	st := newMemStorage()
	line := model.InvoiceItem{Description: "Service", Qty: 1, Rate: 100}

	s := newTestStore(t, st, nil)
	mustAdd(t, s, draftWith(line))

	restarted := newTestStore(t, st, nil)
	if inv := mustAdd(t, restarted, draftWith(line)); inv.InvoiceNumber != "SJIV000002" {
		t.Fatalf("got %q after restart, want SJIV000002", inv.InvoiceNumber)
	}
}

func TestAddInvoiceTotalAndLineFiltering(t *testing.T) {
	s := newTestStore(t, newMemStorage(), nil)

	inv := mustAdd(t, s, draftWith(
		model.InvoiceItem{Description: "Alignment", Qty: 2, Rate: 250},
		model.InvoiceItem{Description: "", Qty: 3, Rate: 100},        // dropped: no description
		model.InvoiceItem{Description: "Balancing", Qty: 0, Rate: 150}, // dropped: zero qty
		model.InvoiceItem{Description: "Valve", Qty: 4, Rate: 50},
	))

	if len(inv.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(inv.Items))
	}
	if inv.Total != 2*250+4*50 {
		t.Fatalf("got total %v, want %v", inv.Total, 2*250+4*50)
	}
	for _, it := range inv.Items {
		if it.ID == "" {
			t.Fatalf("line %q missing id", it.Description)
		}
	}
}

func TestAddInvoiceRejectsEmptyDraft(t *testing.T) {
	s := newTestStore(t, newMemStorage(), nil)

	_, err := s.AddInvoice(context.Background(), draftWith(
		model.InvoiceItem{Description: "", Qty: 1, Rate: 10},
		model.InvoiceItem{Description: "x", Qty: -1, Rate: 10},
	))
	if err != ErrEmptyInvoice {
		t.Fatalf("expected ErrEmptyInvoice, got %v", err)
	}
}

func TestAddInvoiceDecrementsMatchingStock(t *testing.T) {
	seed := []model.InventoryItem{
		{ID: "1", Name: "Alignment", Quantity: model.Count(10), Price: 250},
		{ID: "2", Name: "Balancing", Quantity: model.Unlimited(), Price: 150},
	}
	s := newTestStore(t, newMemStorage(), seed)

	mustAdd(t, s, draftWith(
		model.InvoiceItem{Description: "Alignment", Qty: 2, Rate: 250},
		model.InvoiceItem{Description: "Balancing", Qty: 5, Rate: 150},
		model.InvoiceItem{Description: "alignment", Qty: 1, Rate: 250}, // no match: names are case-sensitive
	))

	inv := s.ListInventory()
	if q := inv[0].Quantity; q.Unlimited || q.Count != 8 {
		t.Fatalf("Alignment stock = %v, want 8", q)
	}
	if q := inv[1].Quantity; !q.Unlimited {
		t.Fatalf("Balancing stock = %v, want unlimited (unchanged)", q)
	}
}

func TestStockMayGoNegative(t *testing.T) {
	seed := []model.InventoryItem{
		{ID: "1", Name: "Tyre", Quantity: model.Count(1), Price: 100, MinStock: 2},
	}
	s := newTestStore(t, newMemStorage(), seed)

	mustAdd(t, s, draftWith(model.InvoiceItem{Description: "Tyre", Qty: 5, Rate: 100}))

	if q := s.ListInventory()[0].Quantity; q.Count != -4 {
		t.Fatalf("got quantity %v, want -4 (sales below stock are not blocked)", q)
	}
	if low := s.LowStockItems(); len(low) != 1 {
		t.Fatalf("expected negative stock to be flagged low, got %+v", low)
	}
}

func TestDeleteInvoiceDoesNotRestock(t *testing.T) {
	seed := []model.InventoryItem{
		{ID: "1", Name: "Tyre", Quantity: model.Count(10), Price: 100},
	}
	s := newTestStore(t, newMemStorage(), seed)

	inv := mustAdd(t, s, draftWith(model.InvoiceItem{Description: "Tyre", Qty: 4, Rate: 100}))
	s.DeleteInvoice(context.Background(), inv.ID)

	if _, err := s.GetInvoiceByID(inv.ID); err != ErrNotFound {
		t.Fatalf("expected invoice gone, got %v", err)
	}
	if q := s.ListInventory()[0].Quantity; q.Count != 6 {
		t.Fatalf("got quantity %v, want 6 (deletion never restores stock)", q)
	}
}

func TestDeleteInvoiceUnknownIDIsNoop(t *testing.T) {
	s := newTestStore(t, newMemStorage(), nil)
	mustAdd(t, s, draftWith(model.InvoiceItem{Description: "Service", Qty: 1, Rate: 100}))

	s.DeleteInvoice(context.Background(), "no-such-id")
	if got := len(s.SearchInvoices("")); got != 1 {
		t.Fatalf("got %d invoices, want 1", got)
	}
}

func TestGetInvoiceByID(t *testing.T) {
	s := newTestStore(t, newMemStorage(), nil)
	inv := mustAdd(t, s, draftWith(model.InvoiceItem{Description: "Service", Qty: 1, Rate: 100}))

	got, err := s.GetInvoiceByID(inv.ID)
	if err != nil {
		t.Fatalf("GetInvoiceByID: %v", err)
	}
	if got.InvoiceNumber != inv.InvoiceNumber {
		t.Fatalf("got %q, want %q", got.InvoiceNumber, inv.InvoiceNumber)
	}

	if _, err := s.GetInvoiceByID("missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSearchInvoices(t *testing.T) {
	s := newTestStore(t, newMemStorage(), nil)
	line := model.InvoiceItem{Description: "Service", Qty: 1, Rate: 100}

	older := draftWith(line)
	older.Date = "2024-05-01"
	older.CustomerName = "Meena Traders"
	mustAdd(t, s, older)

	newer := draftWith(line)
	newer.Date = "2024-06-15"
	newer.CustomerName = "Ravi Kumar"
	mustAdd(t, s, newer)

	all := s.SearchInvoices("")
	if len(all) != 2 || all[0].Date != "2024-06-15" {
		t.Fatalf("expected newest first, got %+v", all)
	}

	byName := s.SearchInvoices("meena")
	if len(byName) != 1 || byName[0].CustomerName != "Meena Traders" {
		t.Fatalf("search by customer failed: %+v", byName)
	}

	byNumber := s.SearchInvoices("sjiv000002")
	if len(byNumber) != 1 || byNumber[0].InvoiceNumber != "SJIV000002" {
		t.Fatalf("search by number failed: %+v", byNumber)
	}

	if got := s.SearchInvoices("zzz"); len(got) != 0 {
		t.Fatalf("expected no matches, got %+v", got)
	}
}
