// Package parser fetches and normalises RSS, Atom and JSON feeds.
package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

const (
	defaultUserAgent = "BargainHunter/1.0"
	maxFeedBytes     = 5 * 1024 * 1024
)

// FeedParser parses RSS, Atom, and JSON feeds
type FeedParser struct {
	parser     *gofeed.Parser
	httpClient *http.Client
	userAgent  string
}

// Feed is a parsed feed
type Feed struct {
	Title    string
	Link     string
	FeedType string
	Items    []FeedItem
}

// FeedItem is a single entry of a feed
type FeedItem struct {
	GUID        string
	Title       string
	Link        string
	Description string
	Categories  []string
	PubDate     time.Time
}

// NewFeedParser creates a feed parser with a 10 second fetch timeout
func NewFeedParser() *FeedParser {
	return NewFeedParserWithClient(&http.Client{Timeout: 10 * time.Second})
}

// NewFeedParserWithClient creates a parser with a custom HTTP client
func NewFeedParserWithClient(client *http.Client) *FeedParser {
	return &FeedParser{
		parser:     gofeed.NewParser(),
		httpClient: client,
		userAgent:  defaultUserAgent,
	}
}

// Parse parses feed data from bytes
func (p *FeedParser) Parse(data []byte) (*Feed, error) {
	gf, err := p.parser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	feed := &Feed{
		Title:    gf.Title,
		Link:     gf.Link,
		FeedType: gf.FeedType,
		Items:    make([]FeedItem, 0, len(gf.Items)),
	}
	for _, item := range gf.Items {
		feed.Items = append(feed.Items, convertItem(item))
	}
	return feed, nil
}

// ParseURL fetches and parses a feed from a URL
func (p *FeedParser) ParseURL(ctx context.Context, url string) (*Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml, application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read feed body: %w", err)
	}

	return p.Parse(data)
}

func convertItem(item *gofeed.Item) FeedItem {
	fi := FeedItem{
		GUID:        item.GUID,
		Title:       strings.TrimSpace(item.Title),
		Link:        strings.TrimSpace(item.Link),
		Description: item.Description,
		Categories:  item.Categories,
	}
	if fi.GUID == "" {
		fi.GUID = fi.Link
	}
	if item.Content != "" {
		fi.Description = item.Content
	}

	switch {
	case item.PublishedParsed != nil:
		fi.PubDate = item.PublishedParsed.UTC()
	case item.UpdatedParsed != nil:
		fi.PubDate = item.UpdatedParsed.UTC()
	}

	if fi.Categories == nil {
		fi.Categories = []string{}
	}
	return fi
}

// Mentions reports whether the title, description or categories contain any keyword, ignoring case
func (fi *FeedItem) Mentions(keywords ...string) bool {
	haystack := strings.ToLower(fi.Title + " " + fi.Description + " " + strings.Join(fi.Categories, " "))
	for _, k := range keywords {
		if strings.Contains(haystack, strings.ToLower(k)) {
			return true
		}
	}
	return false
}
