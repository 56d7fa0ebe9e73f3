package service

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	"taxifleet/pkg/models"
)

var ErrInvalidPage = errors.New("invalid page")

// LastPage selects the final page of a listing.
const LastPage = "last"

// Page describes one page of a listing. Number is 1-based.
type Page struct {
	Number   int
	NumPages int
	PerPage  int
	Count    int
}

func (p Page) HasPrevious() bool { return p.Number > 1 }
func (p Page) HasNext() bool     { return p.Number < p.NumPages }
func (p Page) IsPaginated() bool { return p.NumPages > 1 }

func (p Page) PreviousPageNumber() int { return p.Number - 1 }
func (p Page) NextPageNumber() int     { return p.Number + 1 }

// StartIndex is the 1-based position of the page's first row, 0 when empty.
func (p Page) StartIndex() int {
	if p.Count == 0 {
		return 0
	}
	return (p.Number-1)*p.PerPage + 1
}

func (p Page) EndIndex() int {
	if p.Number == p.NumPages {
		return p.Count
	}
	return p.Number * p.PerPage
}

func numPages(count, perPage int) int {
	if count == 0 {
		return 1
	}
	return (count + perPage - 1) / perPage
}

type fetchFunc[T any] func(ctx context.Context, req models.ListRequest) ([]T, int, error)

// paginate resolves raw ("", a positive number, or "last") against the
// filtered row count and fetches that page. An empty first page is allowed;
// any other page past the end is ErrInvalidPage.
func paginate[T any](ctx context.Context, search, raw string, perPage int, fetch fetchFunc[T]) ([]T, Page, error) {
	number, last := 1, false
	switch raw = strings.TrimSpace(raw); raw {
	case "":
	case LastPage:
		last = true
	default:
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return nil, Page{}, ErrInvalidPage
		}
		number = n
	}

	if perPage <= 0 {
		if number != 1 {
			return nil, Page{}, ErrInvalidPage
		}
		items, count, err := fetch(ctx, models.ListRequest{Search: search})
		if err != nil {
			return nil, Page{}, err
		}
		return items, Page{Number: 1, NumPages: 1, PerPage: count, Count: count}, nil
	}

	if number > math.MaxInt/perPage {
		return nil, Page{}, ErrInvalidPage
	}

	req := models.ListRequest{Search: search, Limit: perPage, Offset: (number - 1) * perPage}
	items, count, err := fetch(ctx, req)
	if err != nil {
		return nil, Page{}, err
	}
	pages := numPages(count, perPage)

	if last && pages > 1 {
		number = pages
		req.Offset = (number - 1) * perPage
		if items, count, err = fetch(ctx, req); err != nil {
			return nil, Page{}, err
		}
		pages = numPages(count, perPage)
	}
	if number > pages {
		return nil, Page{}, ErrInvalidPage
	}
	return items, Page{Number: number, NumPages: pages, PerPage: perPage, Count: count}, nil
}
