// Package pagination computes which page numbers a pager shows.
package pagination

import "strconv"

// Side tells on which side of the current page an ellipsis sits.
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

// Kind distinguishes page tokens from ellipsis tokens.
type Kind int

const (
	KindPage Kind = iota
	KindEllipsis
)

// Token is one element of a page window: either a zero-based page index or
// an ellipsis standing in for a collapsed range of pages.
type Token struct {
	Kind  Kind
	Index int  // valid when Kind == KindPage
	Side  Side // valid when Kind == KindEllipsis
}

// Page returns a page token for the zero-based index i.
func Page(i int) Token { return Token{Kind: KindPage, Index: i} }

// Ellipsis returns an ellipsis token on the given side.
func Ellipsis(s Side) Token { return Token{Kind: KindEllipsis, Side: s} }

// IsPage reports whether t is a page token.
func (t Token) IsPage() bool { return t.Kind == KindPage }

// IsEllipsis reports whether t is an ellipsis token.
func (t Token) IsEllipsis() bool { return t.Kind == KindEllipsis }

// String returns the one-based label of a page token, or "…".
func (t Token) String() string {
	if t.IsEllipsis() {
		return "…"
	}
	return strconv.Itoa(t.Index + 1)
}

// smallWindow is the largest page count shown without ellipses.
const smallWindow = 4

// Window returns the tokens a pager renders for pageCount pages while
// currentPage is displayed. It never panics: pageCount <= 0 yields an empty
// window, a negative currentPage is treated as near the start and one past
// the end as near the end.
func Window(pageCount, currentPage int) []Token {
	if pageCount <= 0 {
		return []Token{}
	}
	if pageCount <= smallWindow {
		pages := make([]Token, 0, pageCount)
		for i := 0; i < pageCount; i++ {
			pages = append(pages, Page(i))
		}
		return pages
	}

	last := pageCount - 1
	switch {
	case currentPage < 3:
		return []Token{Page(0), Page(1), Page(2), Ellipsis(Right), Page(last)}
	case currentPage < pageCount-3:
		return []Token{
			Page(0),
			Ellipsis(Left),
			Page(currentPage - 1), Page(currentPage), Page(currentPage + 1),
			Ellipsis(Right),
			Page(last),
		}
	default:
		return []Token{Page(0), Ellipsis(Left), Page(pageCount - 3), Page(pageCount - 2), Page(last)}
	}
}

// PageCount returns how many pages of pageSize rows are needed for rows.
// A non-positive pageSize yields zero pages.
func PageCount(rows, pageSize int) int {
	if rows <= 0 || pageSize <= 0 {
		return 0
	}
	return (rows + pageSize - 1) / pageSize
}
