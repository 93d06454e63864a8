package slug

import (
	"context"
	"strconv"
	"strings"

	"github.com/goliatone/go-contentkit/pkg/content"
)

// PageSegment separates a listing slug from its page number: /blog/page/2/.
const PageSegment = "page"

// Paginate implements content.PaginationFunc. The current page is read from
// the request path, then the "page" query parameter, then the item data.
func Paginate(_ context.Context, args content.PaginationArgs) (content.PaginationResult, error) {
	total := max(args.Pagination.Total, 1)
	current := args.Pagination.Current
	if args.Serverless != nil {
		if n, ok := pageFromPath(args.Serverless.Path, args.Slug); ok {
			current = n
		} else if values := args.Serverless.Query[PageSegment]; len(values) > 0 {
			if n, ok := pageNumber(values[0]); ok {
				current = n
			}
		}
	}
	current = min(max(current, 1), total)

	base := strings.TrimSuffix(args.Permalink, args.Slug)
	link := func(n int) string {
		return base + PagePath(args.Slug, n)
	}

	result := content.PaginationResult{Current: current, Canonical: link(current)}
	if current > 1 {
		result.Prev = link(current - 1)
	}
	if current < total {
		result.Next = link(current + 1)
	}
	return result, nil
}

// PagePath returns the path of page n of the listing at slug. Page 1 is the
// listing itself.
func PagePath(slug string, n int) string {
	slug = Normalize(slug)
	if n <= 1 {
		return slug
	}
	return slug + PageSegment + "/" + strconv.Itoa(n) + "/"
}

func pageFromPath(path, slug string) (int, bool) {
	rest, ok := strings.CutPrefix(Normalize(path), Normalize(slug)+PageSegment+"/")
	if !ok {
		return 0, false
	}
	return pageNumber(strings.TrimSuffix(rest, "/"))
}

func pageNumber(raw string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
