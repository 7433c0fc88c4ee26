package parser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRSS = `<?xml version="1.0"?>
<rss version="2.0"><channel>
<title>Deals</title><link>https://deals.example</link>
<item>
  <title> 10% off Apple Gift Cards </title>
  <link>https://deals.example/1</link>
  <description><![CDATA[<p>At <b>Woolworths</b> &amp; online</p>]]></description>
  <category>Gift Cards</category>
  <pubDate>Mon, 04 Mar 2024 09:00:00 +1100</pubDate>
</item>
<item>
  <title>Cheap flights</title>
  <guid>flight-1</guid>
  <link>https://deals.example/2</link>
</item>
</channel></rss>`

func TestParse(t *testing.T) {
	feed, err := NewFeedParser().Parse([]byte(sampleRSS))
	require.NoError(t, err)
	assert.Equal(t, "rss", feed.FeedType)
	require.Len(t, feed.Items, 2)

	first := feed.Items[0]
	assert.Equal(t, "10% off Apple Gift Cards", first.Title)
	assert.Equal(t, "https://deals.example/1", first.GUID)
	assert.Equal(t, 2024, first.PubDate.Year())
	assert.True(t, first.Mentions("gift card"))

	second := feed.Items[1]
	assert.Equal(t, "flight-1", second.GUID)
	assert.NotNil(t, second.Categories)
	assert.False(t, second.Mentions("gift card", "giftcard"))
}

func TestParseURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/feed" {
			http.NotFound(w, r)
			return
		}
		assert.Equal(t, defaultUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(sampleRSS))
	}))
	defer srv.Close()

	p := NewFeedParser()
	feed, err := p.ParseURL(context.Background(), srv.URL+"/feed")
	require.NoError(t, err)
	assert.Len(t, feed.Items, 2)

	_, err = p.ParseURL(context.Background(), srv.URL+"/missing")
	assert.Error(t, err)
}

func TestParseInvalid(t *testing.T) {
	_, err := NewFeedParser().Parse([]byte("not a feed"))
	assert.Error(t, err)
}

func TestCleaner(t *testing.T) {
	c := NewCleaner()
	assert.Equal(t, "At Woolworths & online", c.Clean("<![CDATA[<p>At <b>Woolworths</b> &amp;amp; online</p>]]>"))
	assert.Equal(t, "", c.Clean(""))

	assert.Equal(t, "short", c.Truncate("short", 10))
	assert.Equal(t, "twenty percent...", c.Truncate("twenty percent off everything", 20))
}
