package service

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"github.com/hshubham24beit-oss/news-website/domain"
	"github.com/hshubham24beit-oss/news-website/utils/html_parser"
)

// firstItemFallback scans a feed document token by token for the first
// <item> element and pulls the hero fields out of it. It tolerates feeds
// with no <channel> wrapper and stray markup that trips full parsers.
func firstItemFallback(feed []byte) *domain.ExternalArticle {
	decoder := xml.NewDecoder(bytes.NewReader(feed))
	decoder.Strict = false

	for {
		tok, err := decoder.Token()
		if err != nil {
			return nil
		}
		start, ok := tok.(xml.StartElement)
		if !ok || !strings.EqualFold(start.Name.Local, "item") {
			continue
		}
		if article := decodeRawItem(decoder); article != nil {
			return article
		}
		return nil
	}
}

func decodeRawItem(decoder *xml.Decoder) *domain.ExternalArticle {
	article := &domain.ExternalArticle{SourceName: "RSS"}
	depth := 1
	var field string

	for depth > 0 {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			field = strings.ToLower(t.Name.Local)
			switch field {
			case "enclosure", "thumbnail", "content":
				if article.ImageURL == "" {
					for _, attr := range t.Attr {
						if strings.EqualFold(attr.Name.Local, "url") && attr.Value != "" {
							article.ImageURL = attr.Value
						}
					}
				}
			}
		case xml.EndElement:
			depth--
			field = ""
		case xml.CharData:
			text := strings.TrimSpace(string(t))
			if text == "" {
				continue
			}
			switch field {
			case "title":
				if article.Title == "" {
					article.Title = text
				}
			case "link":
				if article.URL == "" {
					article.URL = text
				}
			case "pubdate":
				if article.PublishedAt == "" {
					article.PublishedAt = text
				}
			case "description":
				if article.Content == "" {
					article.Content = html_parser.StripTags(text)
				}
			}
		}
	}

	if article.Title == "" && article.URL == "" {
		return nil
	}
	return article
}
