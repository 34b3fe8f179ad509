package conversation

import (
	"fmt"
	"testing"

	"ccview/internal/model"
)

func makeMessages(n int) []model.Message {
	msgs := make([]model.Message, n)
	for i := range msgs {
		msgs[i] = model.Message{UUID: fmt.Sprintf("m%03d", i)}
	}
	return msgs
}

func TestPaginate_PageSizes(t *testing.T) {
	msgs := makeMessages(47)

	wantSizes := []int{20, 20, 7}
	for page := 1; page <= 3; page++ {
		got := Paginate(msgs, page, 20)
		if got.TotalPages != 3 {
			t.Fatalf("page %d: TotalPages = %d, want 3", page, got.TotalPages)
		}
		if len(got.Messages) != wantSizes[page-1] {
			t.Errorf("page %d has %d messages, want %d", page, len(got.Messages), wantSizes[page-1])
		}
		if got.CurrentPage != page {
			t.Errorf("CurrentPage = %d, want %d", got.CurrentPage, page)
		}
		if got.TotalMessages != 47 {
			t.Errorf("TotalMessages = %d, want 47", got.TotalMessages)
		}
	}
}

func TestPaginate_NewestFirst(t *testing.T) {
	msgs := makeMessages(47)

	page1 := Paginate(msgs, 1, 20)
	if page1.Messages[0].UUID != "m046" {
		t.Errorf("page 1 starts with %s, want m046 (newest)", page1.Messages[0].UUID)
	}
	if page1.Messages[19].UUID != "m027" {
		t.Errorf("page 1 ends with %s, want m027", page1.Messages[19].UUID)
	}

	page3 := Paginate(msgs, 3, 20)
	if page3.Messages[0].UUID != "m006" {
		t.Errorf("page 3 starts with %s, want m006", page3.Messages[0].UUID)
	}
	if page3.Messages[6].UUID != "m000" {
		t.Errorf("page 3 ends with %s, want m000 (oldest)", page3.Messages[6].UUID)
	}
}

func TestPaginate_ClampsPageRequest(t *testing.T) {
	msgs := makeMessages(47)

	tests := []struct {
		name     string
		page     int
		wantPage int
	}{
		{"zero", 0, 1},
		{"negative", -5, 1},
		{"past the end", 99, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(msgs, tt.page, 20)
			if got.CurrentPage != tt.wantPage {
				t.Errorf("CurrentPage = %d, want %d", got.CurrentPage, tt.wantPage)
			}
			if len(got.Messages) == 0 {
				t.Error("clamped page is empty, want messages")
			}
		})
	}
}

func TestPaginate_EmptyList(t *testing.T) {
	got := Paginate(nil, 1, 20)
	if got.TotalPages != 1 {
		t.Errorf("TotalPages = %d, want 1", got.TotalPages)
	}
	if got.CurrentPage != 1 {
		t.Errorf("CurrentPage = %d, want 1", got.CurrentPage)
	}
	if len(got.Messages) != 0 {
		t.Errorf("got %d messages, want 0", len(got.Messages))
	}
	if got.HasMore {
		t.Error("HasMore = true for empty list")
	}
}

func TestPaginate_HasMore(t *testing.T) {
	msgs := makeMessages(47)

	if got := Paginate(msgs, 1, 20); !got.HasMore {
		t.Error("page 1 HasMore = false, want true")
	}
	if got := Paginate(msgs, 3, 20); got.HasMore {
		t.Error("last page HasMore = true, want false")
	}
}

func TestPaginate_DefaultPageSize(t *testing.T) {
	msgs := makeMessages(25)

	got := Paginate(msgs, 1, 0)
	if len(got.Messages) != DefaultPageSize {
		t.Errorf("page size fell back to %d, want %d", len(got.Messages), DefaultPageSize)
	}
	if got.TotalPages != 2 {
		t.Errorf("TotalPages = %d, want 2", got.TotalPages)
	}
}

func TestPaginate_ExactMultiple(t *testing.T) {
	msgs := makeMessages(40)

	got := Paginate(msgs, 2, 20)
	if got.TotalPages != 2 {
		t.Errorf("TotalPages = %d, want 2 (no phantom empty page)", got.TotalPages)
	}
	if len(got.Messages) != 20 {
		t.Errorf("page 2 has %d messages, want 20", len(got.Messages))
	}
}
