package linkcheck

import (
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// Link represents an extracted link from HTML content.
type Link struct {
	URL       string // The URL or path
	Text      string // Link text or image alt
	Tag       string // a or img
	Attribute string // href or src
}

// ExtractLinks parses HTML from r and returns every a[href] and img[src] in
// document order.
func ExtractLinks(r io.Reader) ([]Link, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var links []Link
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "a":
				if href := getAttr(n, "href"); href != "" {
					links = append(links, Link{URL: href, Text: extractText(n), Tag: "a", Attribute: "href"})
				}
			case "img":
				if src := getAttr(n, "src"); src != "" {
					links = append(links, Link{URL: src, Text: getAttr(n, "alt"), Tag: "img", Attribute: "src"})
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(doc)
	return links, nil
}

// IsLocal reports whether link points into the site itself: no scheme, no
// host, and not a bare fragment.
func IsLocal(link string) bool {
	if link == "" || strings.HasPrefix(link, "#") || strings.HasPrefix(link, "//") {
		return false
	}
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == "" && u.Path != ""
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func extractText(n *html.Node) string {
	if n.Type == html.TextNode {
		return strings.TrimSpace(n.Data)
	}

	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		text.WriteString(extractText(c))
	}
	return strings.TrimSpace(text.String())
}
