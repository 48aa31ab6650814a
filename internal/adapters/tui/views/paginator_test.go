package views

import "testing"

func TestPaginator_Pages(t *testing.T) {
	p := NewPaginator(3)
	p.SetTotal(7)

	if got := p.TotalPages(); got != 3 {
		t.Errorf("TotalPages() = %d, expected 3", got)
	}

	for i := 0; i < 4; i++ {
		p.CursorDown()
	}
	if p.Cursor() != 4 || p.CurrentPage() != 2 {
		t.Errorf("cursor %d page %d, expected cursor 4 on page 2", p.Cursor(), p.CurrentPage())
	}

	start, end := p.VisibleRange()
	if start != 3 || end != 6 {
		t.Errorf("VisibleRange() = %d, %d, expected 3, 6", start, end)
	}

	if !p.NextPage() || p.Cursor() != 6 {
		t.Errorf("NextPage() should move the cursor to 6, got %d", p.Cursor())
	}
	if p.NextPage() {
		t.Error("NextPage() on the last page should fail")
	}
	start, end = p.VisibleRange()
	if start != 6 || end != 7 {
		t.Errorf("VisibleRange() = %d, %d, expected 6, 7", start, end)
	}
}

func TestPaginator_ShrinkingTotalClampsCursor(t *testing.T) {
	p := NewPaginator(10)
	p.SetTotal(5)
	p.SetCursor(4)

	// Collapsing a subtree removes rows below the cursor
	p.SetTotal(2)
	if p.Cursor() != 1 {
		t.Errorf("Cursor() = %d, expected 1", p.Cursor())
	}
}

func TestPaginator_SetPageSizeKeepsCursorVisible(t *testing.T) {
	p := NewPaginator(10)
	p.SetTotal(30)
	p.SetCursor(25)

	p.SetPageSize(4)
	start, end := p.VisibleRange()
	if p.Cursor() < start || p.Cursor() >= end {
		t.Errorf("cursor %d outside visible range %d-%d", p.Cursor(), start, end)
	}

	p.SetPageSize(0)
	if got := p.TotalPages(); got != 3 {
		t.Errorf("TotalPages() = %d, expected 3 with the default page size", got)
	}
}

func TestPaginator_DefaultPageSize(t *testing.T) {
	p := NewPaginator(0)
	p.SetTotal(25)

	if got := p.TotalPages(); got != 3 {
		t.Errorf("TotalPages() = %d, expected 3 with the default page size", got)
	}
}
