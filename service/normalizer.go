package service

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/hshubham24beit-oss/news-website/domain"
	"github.com/hshubham24beit-oss/news-website/utils/html_parser"
)

// Providers disagree on field names, so each logical field is an ordered
// candidate list; the first present, non-empty value wins.
var (
	titleKeys     = []string{"title", "headline", "name"}
	urlKeys       = []string{"url", "link", "web_url", "href"}
	imageKeys     = []string{"image", "image_url", "urlToImage", "thumbnail", "media"}
	publishedKeys = []string{"published_at", "publishedAt", "publish_date", "pubDate", "date", "published"}
	sourceKeys    = []string{"source_name", "source", "author"}
	textKeys      = []string{"_extracted_text", "content", "description", "summary", "excerpt", "body", "text"}
)

// listKeys are the flat-list key names tried, in priority order, when the
// payload is not the known cluster shape.
var listKeys = []string{"articles", "results", "news", "data", "items"}

// shapeMatcher attempts to find the first article object in one known
// payload shape.
type shapeMatcher func(payload any) (map[string]any, bool)

var shapeMatchers = []shapeMatcher{
	matchTopNewsClusters,
	matchNamedLists,
	matchAnyObjectList,
	matchBareList,
}

// FirstArticle searches a decoded provider payload for the first article
// object. The shape matchers run in a fixed order and the first hit is
// accepted without scoring.
func FirstArticle(payload any) (map[string]any, bool) {
	for _, match := range shapeMatchers {
		if article, ok := match(payload); ok {
			return article, true
		}
	}
	return nil, false
}

// matchTopNewsClusters handles the nested "clusters of articles" shape:
// {"top_news": [{"news": [{...}]}]}.
func matchTopNewsClusters(payload any) (map[string]any, bool) {
	obj, ok := payload.(map[string]any)
	if !ok {
		return nil, false
	}
	clusters, ok := obj["top_news"].([]any)
	if !ok {
		return nil, false
	}
	for _, c := range clusters {
		cluster, ok := c.(map[string]any)
		if !ok {
			continue
		}
		if article, ok := firstObject(cluster["news"]); ok {
			return article, true
		}
	}
	return nil, false
}

func matchNamedLists(payload any) (map[string]any, bool) {
	obj, ok := payload.(map[string]any)
	if !ok {
		return nil, false
	}
	for _, key := range listKeys {
		if article, ok := firstObject(obj[key]); ok {
			return article, true
		}
	}
	return nil, false
}

// matchAnyObjectList walks the payload depth-first (map keys in sorted
// order, so the search is deterministic) for the first list of objects.
func matchAnyObjectList(payload any) (map[string]any, bool) {
	switch v := payload.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if article, ok := firstObject(v[k]); ok {
				return article, true
			}
		}
		for _, k := range keys {
			if article, ok := matchAnyObjectList(v[k]); ok {
				return article, true
			}
		}
	case []any:
		for _, item := range v {
			if article, ok := matchAnyObjectList(item); ok {
				return article, true
			}
		}
	}
	return nil, false
}

func matchBareList(payload any) (map[string]any, bool) {
	return firstObject(payload)
}

func firstObject(v any) (map[string]any, bool) {
	list, ok := v.([]any)
	if !ok {
		return nil, false
	}
	for _, item := range list {
		if obj, ok := item.(map[string]any); ok {
			return obj, true
		}
	}
	return nil, false
}

// firstString returns the first present, non-empty string among the
// candidate keys. Object values with a "name" key (provider source objects)
// contribute that name.
func firstString(obj map[string]any, keys []string) string {
	for _, key := range keys {
		switch v := obj[key].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case map[string]any:
			if name, ok := v["name"].(string); ok && strings.TrimSpace(name) != "" {
				return strings.TrimSpace(name)
			}
		}
	}
	return ""
}

// NormalizeArticle maps one provider article object into the canonical
// external article shape.
func NormalizeArticle(obj map[string]any) *domain.ExternalArticle {
	raw, _ := json.Marshal(obj)
	return &domain.ExternalArticle{
		Title:       firstString(obj, titleKeys),
		URL:         firstString(obj, urlKeys),
		ImageURL:    firstString(obj, imageKeys),
		PublishedAt: firstString(obj, publishedKeys),
		SourceName:  firstString(obj, sourceKeys),
		Content:     firstString(obj, textKeys),
		Raw:         raw,
	}
}

// ArticleFromFeedItem maps an RSS item into the canonical external article
// shape. The image is taken from the enclosure, then a media-namespace
// thumbnail, then a media-namespace content element, in that order.
func ArticleFromFeedItem(item *gofeed.Item, sourceName string) *domain.ExternalArticle {
	raw, _ := json.Marshal(item)
	return &domain.ExternalArticle{
		Title:       item.Title,
		URL:         item.Link,
		ImageURL:    feedItemImage(item),
		PublishedAt: item.Published,
		SourceName:  sourceName,
		Content:     html_parser.StripTags(item.Description),
		Raw:         raw,
	}
}

func feedItemImage(item *gofeed.Item) string {
	for _, enc := range item.Enclosures {
		if enc != nil && enc.URL != "" {
			return enc.URL
		}
	}
	if media, ok := item.Extensions["media"]; ok {
		for _, element := range []string{"thumbnail", "content"} {
			for _, ext := range media[element] {
				if url := ext.Attrs["url"]; url != "" {
					return url
				}
			}
		}
	}
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}
	return ""
}

// TextFromRaw converts a raw provider payload (an article mapping, or an
// RSS item serialized as markup) into best-effort plain text.
func TextFromRaw(raw any) string {
	switch v := raw.(type) {
	case map[string]any:
		if text := firstString(v, textKeys); text != "" {
			return html_parser.StripTags(text)
		}
		if nested, ok := v["article"].(map[string]any); ok {
			if text := firstString(nested, []string{"content", "description", "summary"}); text != "" {
				return html_parser.StripTags(text)
			}
		}
		return ""
	case string:
		return textFromMarkup(v)
	case nil:
		return ""
	default:
		return html_parser.StripTags(fmt.Sprintf("%v", v))
	}
}

// textFromMarkup pulls readable text out of an RSS item fragment:
// <description> first, then a content-module encoded element, then the
// concatenated <p> elements. Anything unparseable is tag-stripped.
func textFromMarkup(markup string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return html_parser.StripTags(markup)
	}

	if text := html_parser.StripTags(doc.Find("description").Text()); text != "" {
		return text
	}
	if text := html_parser.StripTags(elementByName(doc, "content:encoded")); text != "" {
		return text
	}

	var paragraphs []string
	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		if t := strings.TrimSpace(p.Text()); t != "" {
			paragraphs = append(paragraphs, t)
		}
	})
	if len(paragraphs) > 0 {
		return strings.Join(paragraphs, "\n\n")
	}

	return html_parser.StripTags(markup)
}

// elementByName finds the first element with the given (possibly
// namespaced) tag name; goquery's CSS selectors cannot address the colon.
func elementByName(doc *goquery.Document, name string) string {
	var text string
	doc.Find("*").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if len(s.Nodes) > 0 && s.Nodes[0].Data == name {
			text = s.Text()
			return false
		}
		return true
	})
	return text
}
