package app

import (
	"context"
	"strings"

	"github.com/llehouerou/tunedeck/internal/activity"
	"github.com/llehouerou/tunedeck/internal/catalog"
	"github.com/llehouerou/tunedeck/internal/idgen"
)

// Search looks keyword up in the catalog and records it in the search
// history. A blank keyword returns nothing and records nothing.
// If the history cannot be saved, the results are still returned along with
// the error.
func (a *App) Search(ctx context.Context, keyword string) ([]catalog.Song, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, nil
	}

	results := a.catalog.Search(keyword)
	err := a.history.Record(ctx, activity.Search{
		SearchID:    a.ids.Next(idgen.KindSearch),
		Keyword:     keyword,
		SearchTime:  a.nowMillis(),
		ResultCount: len(results),
		IsSuccess:   true,
	})
	return results, err
}

// SearchHistory returns recent searches, newest first.
func (a *App) SearchHistory(ctx context.Context) []activity.Search {
	return a.history.Entries(ctx)
}

func (a *App) ClearSearchHistory(ctx context.Context) error {
	return a.history.Clear(ctx)
}
