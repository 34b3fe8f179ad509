package conversation

import "ccview/internal/model"

// Paginate reorders the chronological message sequence newest-first and
// slices the requested fixed-size page. The requested page is clamped to
// [1, totalPages]; an empty list still reports one (empty) page. Pure, no
// failure mode beyond clamping.
func Paginate(messages []model.Message, page, pageSize int) model.PaginatedMessages {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	total := len(messages)
	totalPages := pageCount(total, pageSize)

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	// Newest first.
	reversed := make([]model.Message, total)
	for i, m := range messages {
		reversed[total-1-i] = m
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return model.PaginatedMessages{
		Messages:      reversed[start:end],
		TotalPages:    totalPages,
		CurrentPage:   page,
		TotalMessages: total,
		HasMore:       page < totalPages,
	}
}

// pageCount returns ceil(n/pageSize) with a minimum of one page.
func pageCount(n, pageSize int) int {
	if n <= 0 {
		return 1
	}
	return (n + pageSize - 1) / pageSize
}
