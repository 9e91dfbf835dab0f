package prober

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/samvad-hq/placeholder-client/pkg/placeholder"
)

const maxSnippetLen = 512

// Diagnose describes bodies that did not decode as JSON. HTML pages (proxy
// and CDN error pages, mostly) are reduced to their title or first heading.
func Diagnose(out placeholder.Outcome) string {
	if out.Failed() || out.Data != nil {
		return ""
	}
	body := bytes.TrimSpace(out.Body)
	if len(body) == 0 {
		return ""
	}

	if isHTML(out, body) {
		if title := htmlTitle(body); title != "" {
			return "html: " + title
		}
	}
	return "body: " + responseSnippet(body)
}

func isHTML(out placeholder.Outcome, body []byte) bool {
	if strings.Contains(strings.ToLower(out.Headers.Get("Content-Type")), "text/html") {
		return true
	}
	return bytes.HasPrefix(bytes.ToLower(body), []byte("<!doctype html")) ||
		bytes.HasPrefix(bytes.ToLower(body), []byte("<html"))
}

func htmlTitle(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	return strings.TrimSpace(doc.Find("h1").First().Text())
}

func responseSnippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxSnippetLen {
		return s[:maxSnippetLen] + "..."
	}
	return s
}
