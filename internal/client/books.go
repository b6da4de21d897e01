package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/SamuelSnowball/Bookstore/internal/domain"
)

// BookClient reads the public catalog from the entity service.
type BookClient struct {
	rest *Client
}

func NewBookClient(rest *Client) *BookClient {
	return &BookClient{rest: rest}
}

// ListBooks pages the catalog by keyset: pass the last book id of the
// previous page, or 0 for the first page. No token; the catalog is public.
func (c *BookClient) ListBooks(ctx context.Context, prevPageLastBookID int) ([]domain.Book, error) {
	query := url.Values{"prevPageLastBookId": {strconv.Itoa(prevPageLastBookID)}}
	var books []domain.Book
	if err := c.rest.do(ctx, http.MethodGet, "/book", "", query, nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}
