package activity

import (
	"context"
	"strings"

	"github.com/llehouerou/tunedeck/internal/recordlog"
)

// DefaultSearchLimit bounds the search history when no limit is configured.
const DefaultSearchLimit = 20

// SearchHistory keeps the most recent searches, newest first, one entry per
// keyword.
type SearchHistory struct {
	log   *recordlog.Log[Search]
	limit int
}

// NewSearchHistory wraps the search record log. A limit <= 0 uses
// DefaultSearchLimit.
func NewSearchHistory(log *recordlog.Log[Search], limit int) *SearchHistory {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	return &SearchHistory{log: log, limit: limit}
}

// Limit returns the maximum number of retained entries.
func (h *SearchHistory) Limit() int {
	return h.limit
}

// Record moves entry to the front, dropping any older entry with the same
// keyword and trimming the oldest entries beyond the limit.
// Blank keywords are ignored.
func (h *SearchHistory) Record(ctx context.Context, entry Search) error {
	entry.Keyword = strings.TrimSpace(entry.Keyword)
	if entry.Keyword == "" {
		return nil
	}

	return h.log.Update(ctx, func(entries []Search) []Search {
		out := make([]Search, 0, len(entries)+1)
		out = append(out, entry)
		for _, e := range entries {
			if e.Keyword != entry.Keyword {
				out = append(out, e)
			}
		}
		if len(out) > h.limit {
			out = out[:h.limit]
		}
		return out
	})
}

// Entries returns the history, newest first.
func (h *SearchHistory) Entries(ctx context.Context) []Search {
	return h.log.LoadAll(ctx)
}

// Keywords returns just the keywords, newest first.
func (h *SearchHistory) Keywords(ctx context.Context) []string {
	entries := h.Entries(ctx)
	keywords := make([]string, len(entries))
	for i, e := range entries {
		keywords[i] = e.Keyword
	}
	return keywords
}

func (h *SearchHistory) Clear(ctx context.Context) error {
	return h.log.Clear(ctx)
}
