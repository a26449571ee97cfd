package api

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/bookerang/bookerang/internal/books"
	"github.com/jellydator/ttlcache/v3"
)

// defaultBorrowMessage is sent when the caller provides no message.
const defaultBorrowMessage = "I would like to borrow this book"

// NearbyBooks lists books offered within radius meters, normalized. Results
// are cached per radius until the TTL expires or a new listing is created.
func (c *Client) NearbyBooks(ctx context.Context, radius int) ([]books.Book, error) {
	return c.listBooks(ctx, "/books/nearby", radius, true)
}

// Books lists books from the plain listing endpoint.
func (c *Client) Books(ctx context.Context, radius int) ([]books.Book, error) {
	return c.listBooks(ctx, "/books", radius, true)
}

// UserBooks lists the signed-in user's own books. Never cached; the my-books
// view must reflect a just-added listing immediately.
func (c *Client) UserBooks(ctx context.Context) ([]books.Book, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/books", nil)
	if err != nil {
		return nil, err
	}
	body, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user books: %w", err)
	}
	return books.DecodeList(body), nil
}

// SearchBooks runs a server-side search. Bypasses the cache.
func (c *Client) SearchBooks(ctx context.Context, query string, availableOnly bool) ([]books.Book, error) {
	params := url.Values{}
	if query != "" {
		params.Set("query", query)
	}
	if availableOnly {
		params.Set("available", "true")
	}

	path := "/books/search"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	body, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	return books.DecodeList(body), nil
}

func (c *Client) listBooks(ctx context.Context, path string, radius int, cached bool) ([]books.Book, error) {
	key := fmt.Sprintf("%s?radius=%d", path, radius)
	if cached {
		if item := c.cache.Get(key); item != nil {
			slog.Debug("Serving book list from cache", "key", key)
			return item.Value(), nil
		}
	}

	req, err := c.newRequest(ctx, http.MethodGet, key, nil)
	if err != nil {
		return nil, err
	}
	body, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch books: %w", err)
	}

	list := books.DecodeList(body)
	if cached {
		c.cache.Set(key, list, ttlcache.DefaultTTL)
	}
	return list, nil
}

// AddBook creates a listing via multipart form. photo may be nil; when
// present it is attached as the newBook file field. The created book is
// returned already normalized, and cached listings are invalidated.
func (c *Client) AddBook(ctx context.Context, title, author string, photo []byte, photoName string) (books.Book, error) {
	if title == "" {
		return books.Book{}, fmt.Errorf("title is required")
	}
	if author == "" {
		return books.Book{}, fmt.Errorf("author is required")
	}

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	if err := form.WriteField("title", title); err != nil {
		return books.Book{}, fmt.Errorf("failed to build form: %w", err)
	}
	if err := form.WriteField("author", author); err != nil {
		return books.Book{}, fmt.Errorf("failed to build form: %w", err)
	}
	if photo != nil {
		if photoName == "" {
			photoName = "book-photo.jpg"
		}
		part, err := form.CreateFormFile("newBook", photoName)
		if err != nil {
			return books.Book{}, fmt.Errorf("failed to build form: %w", err)
		}
		if _, err := part.Write(photo); err != nil {
			return books.Book{}, fmt.Errorf("failed to attach photo: %w", err)
		}
	}
	if err := form.Close(); err != nil {
		return books.Book{}, fmt.Errorf("failed to finish form: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/books/add", &buf)
	if err != nil {
		return books.Book{}, err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	var out struct {
		ID       int    `json:"id"`
		CoverURL string `json:"coverUrl"`
	}
	if err := c.doJSON(req, &out); err != nil {
		return books.Book{}, fmt.Errorf("failed to add book: %w", err)
	}

	c.cache.DeleteAll()

	cover := out.CoverURL
	if cover == "" {
		cover = books.PlaceholderCover
	}
	return books.Book{
		ID:          out.ID,
		Title:       title,
		Author:      author,
		Cover:       cover,
		IsAvailable: true,
		OwnerName:   "You",
		Distance:    "Your book",
	}, nil
}

// Borrow sends a borrow request for the book.
func (c *Client) Borrow(ctx context.Context, bookID int, message string) error {
	if message == "" {
		message = defaultBorrowMessage
	}
	payload := map[string]any{"bookId": bookID, "message": message}
	if err := c.postJSON(ctx, "/books/"+strconv.Itoa(bookID)+"/borrow", payload, nil); err != nil {
		return fmt.Errorf("borrow request failed: %w", err)
	}
	return nil
}

// Approve accepts a pending borrow request on one of the caller's books.
func (c *Client) Approve(ctx context.Context, bookID int) error {
	return c.respond(ctx, bookID, "approve")
}

// Reject declines a pending borrow request on one of the caller's books.
func (c *Client) Reject(ctx context.Context, bookID int) error {
	return c.respond(ctx, bookID, "reject")
}

func (c *Client) respond(ctx context.Context, bookID int, action string) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/books/"+strconv.Itoa(bookID)+"/"+action, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if _, err := c.do(req); err != nil {
		return fmt.Errorf("failed to %s request: %w", action, err)
	}
	return nil
}

// DownloadCover fetches a cover image. Tiny responses are treated as
// placeholders rather than real covers.
func (c *Client) DownloadCover(ctx context.Context, coverURL string) ([]byte, error) {
	// Servers return both absolute URLs and paths relative to themselves.
	if strings.HasPrefix(coverURL, "/") {
		coverURL = c.baseURL + coverURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, coverURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	body, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download cover: %w", err)
	}
	if len(body) < 1000 {
		return nil, fmt.Errorf("cover image too small (likely placeholder)")
	}
	return body, nil
}
