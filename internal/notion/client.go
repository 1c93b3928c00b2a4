// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package notion implements the hosted workspace client the synchronizer
// drives: page creation, child listing, content upload, and URL lookup.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/pdiddy/notion-tree/internal/httputil"
	"github.com/pdiddy/notion-tree/pkg/types"
)

// apiBase is the workspace REST endpoint. Declared as a var so tests can
// substitute an httptest server.
var apiBase = "https://api.notion.com/v1"

// apiVersion pins the API revision this client speaks.
const apiVersion = "2022-06-28"

// appendChunkSize is the API limit on blocks per append call.
const appendChunkSize = 100

// listPageSize is the page size used when listing children.
const listPageSize = 100

// APIError is a non-2xx response from the workspace API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("workspace API: HTTP %d %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("workspace API: HTTP %d", e.StatusCode)
}

// ChildPage is one page reference under a parent.
type ChildPage struct {
	ID    string
	Title string
}

// Client is a minimal workspace API client. It caches page URLs observed in
// responses so link resolution rarely needs an extra round trip. Methods
// are not safe for concurrent use; the synchronizer is sequential.
type Client struct {
	http       *http.Client
	token      string
	userAgent  string
	maxRetries int
	log        *zap.Logger
	urls       map[string]string
}

// NewClient builds a client around httpClient. A nil logger disables
// debug logging.
func NewClient(httpClient *http.Client, token string, cfg types.HTTPConfig, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		http:       httpClient,
		token:      token,
		userAgent:  cfg.UserAgent,
		maxRetries: cfg.MaxRetries,
		log:        log,
		urls:       make(map[string]string),
	}
}

// do performs one API call. A non-nil body is marshalled as JSON; a non-nil
// out receives the decoded response.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiBase+path, reader)
	if err != nil {
		return fmt.Errorf("creating %s %s request: %w", method, path, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", apiVersion)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, c.http, req, c.maxRetries)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var detail struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if json.NewDecoder(resp.Body).Decode(&detail) == nil {
			apiErr.Code = detail.Code
			apiErr.Message = detail.Message
		}
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("parsing %s %s response: %w", method, path, err)
		}
	} else {
		io.Copy(io.Discard, resp.Body)
	}
	return nil
}

// pageObject captures the fields we need from a page response.
type pageObject struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// pageParent addresses the parent a new page is created under.
type pageParent struct {
	Type   string `json:"type"`
	PageID string `json:"page_id"`
}

// titleValue is the title property payload on page creation.
type titleValue struct {
	Title []RichText `json:"title"`
}

// createPageRequest is the POST /pages payload.
type createPageRequest struct {
	Parent     pageParent            `json:"parent"`
	Properties map[string]titleValue `json:"properties"`
}

// CreatePage creates an empty page titled title under parentID and returns
// its reference. Content is uploaded separately by SetPageContent.
func (c *Client) CreatePage(ctx context.Context, parentID, title string) (ChildPage, error) {
	reqBody := createPageRequest{
		Parent:     pageParent{Type: "page_id", PageID: parentID},
		Properties: map[string]titleValue{"title": {Title: []RichText{Text(title)}}},
	}
	var page pageObject
	if err := c.do(ctx, http.MethodPost, "/pages", reqBody, &page); err != nil {
		return ChildPage{}, fmt.Errorf("creating page %q: %w", title, err)
	}
	c.urls[page.ID] = page.URL
	c.log.Debug("created page", zap.String("title", title), zap.String("page_id", page.ID))
	return ChildPage{ID: page.ID, Title: title}, nil
}

// blockObject captures the fields we need from a block in a listing.
type blockObject struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	ChildPage *struct {
		Title string `json:"title"`
	} `json:"child_page,omitempty"`
}

// blockList is the paginated GET /blocks/{id}/children response.
type blockList struct {
	Results    []blockObject `json:"results"`
	HasMore    bool          `json:"has_more"`
	NextCursor string        `json:"next_cursor"`
}

// listBlocks fetches every block directly under pageID, following cursors.
func (c *Client) listBlocks(ctx context.Context, pageID string) ([]blockObject, error) {
	var blocks []blockObject
	cursor := ""
	for {
		query := url.Values{}
		query.Set("page_size", fmt.Sprint(listPageSize))
		if cursor != "" {
			query.Set("start_cursor", cursor)
		}
		var page blockList
		path := "/blocks/" + pageID + "/children?" + query.Encode()
		if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
			return nil, err
		}
		blocks = append(blocks, page.Results...)
		if !page.HasMore || page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor
	}
	return blocks, nil
}

// ListChildren returns the child pages directly under pageID, in workspace
// order. Non-page blocks are ignored.
func (c *Client) ListChildren(ctx context.Context, pageID string) ([]ChildPage, error) {
	blocks, err := c.listBlocks(ctx, pageID)
	if err != nil {
		return nil, fmt.Errorf("listing children of %s: %w", pageID, err)
	}
	var children []ChildPage
	for _, b := range blocks {
		if b.Type != TypeChildPage || b.ChildPage == nil {
			continue
		}
		children = append(children, ChildPage{ID: b.ID, Title: b.ChildPage.Title})
	}
	return children, nil
}

// appendRequest is the PATCH /blocks/{id}/children payload.
type appendRequest struct {
	Children []Block `json:"children"`
}

// SetPageContent replaces the body of pageID with blocks. Existing content
// blocks are removed first; child pages (and child databases) under the
// page are preserved so re-syncs never orphan the subtree.
func (c *Client) SetPageContent(ctx context.Context, pageID string, blocks []Block) error {
	existing, err := c.listBlocks(ctx, pageID)
	if err != nil {
		return fmt.Errorf("listing content of %s: %w", pageID, err)
	}
	removed := 0
	for _, b := range existing {
		if b.Type == TypeChildPage || b.Type == "child_database" {
			continue
		}
		if err := c.do(ctx, http.MethodDelete, "/blocks/"+b.ID, nil, nil); err != nil {
			return fmt.Errorf("removing stale block %s: %w", b.ID, err)
		}
		removed++
	}

	for start := 0; start < len(blocks); start += appendChunkSize {
		end := start + appendChunkSize
		if end > len(blocks) {
			end = len(blocks)
		}
		payload := appendRequest{Children: blocks[start:end]}
		if err := c.do(ctx, http.MethodPatch, "/blocks/"+pageID+"/children", payload, nil); err != nil {
			return fmt.Errorf("appending blocks %d-%d to %s: %w", start, end, pageID, err)
		}
	}
	c.log.Debug("set page content",
		zap.String("page_id", pageID),
		zap.Int("blocks", len(blocks)),
		zap.Int("removed", removed))
	return nil
}

// PageURL returns the browseable URL for pageID. URLs observed in earlier
// responses are cached, so the common case is free.
func (c *Client) PageURL(ctx context.Context, pageID string) (string, error) {
	if u, ok := c.urls[pageID]; ok {
		return u, nil
	}
	var page pageObject
	if err := c.do(ctx, http.MethodGet, "/pages/"+pageID, nil, &page); err != nil {
		return "", fmt.Errorf("fetching URL of %s: %w", pageID, err)
	}
	c.urls[pageID] = page.URL
	return page.URL, nil
}
