package feed

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestParseFromURL(t *testing.T) {
	// Shape matches YouTube's channel feed: an Atom feed whose entries link
	// to watch URLs.
	feedXML := `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
	<title>Test Channel</title>
	<entry>
		<title>Video One</title>
		<link rel="alternate" href="https://www.youtube.com/watch?v=dQw4w9WgXcQ"/>
	</entry>
	<entry>
		<title>Video Two</title>
		<link rel="alternate" href="https://www.youtube.com/watch?v=jNQXAC9IVRw"/>
	</entry>
</feed>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/atom+xml")
		w.Write([]byte(feedXML))
	}))
	defer server.Close()

	entries, err := NewParser().ParseFromURL(server.URL)
	if err != nil {
		t.Fatalf("ParseFromURL returned error: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].URL != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
		t.Errorf("entry 0 URL = %q", entries[0].URL)
	}
	if entries[0].Title != "Video One" {
		t.Errorf("entry 0 title = %q", entries[0].Title)
	}
}

func TestParseFromURLEmptyFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/atom+xml")
		w.Write([]byte(`<?xml version="1.0"?><feed xmlns="http://www.w3.org/2005/Atom"><title>Empty</title></feed>`))
	}))
	defer server.Close()

	if _, err := NewParser().ParseFromURL(server.URL); err == nil {
		t.Fatal("ParseFromURL on empty feed returned nil error")
	}
}

func TestChannelFeedURL(t *testing.T) {
	got := ChannelFeedURL("UCabc123")
	want := "https://www.youtube.com/feeds/videos.xml?channel_id=UCabc123"
	if got != want {
		t.Fatalf("ChannelFeedURL = %q, want %q", got, want)
	}
}
