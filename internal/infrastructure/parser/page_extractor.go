package parser

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"ArticlesBench/internal/domain"
	"ArticlesBench/internal/ports"
)

// bannerPhrase is injected by the library site into article fields.
const bannerPhrase = "Не можете найти то, что вам нужно? Попробуйте сервис подбора литературы."

const (
	titleSelector      = "[itemprop=headline]"
	authorSelector     = "ul.author-list li[itemprop=author] span"
	bodySelector       = "[itemprop=articleBody]"
	annotationSelector = "p[itemprop=description]"
)

// PageExtractor fetches an article page and reads its microdata fields.
type PageExtractor struct {
	client *http.Client
}

var _ ports.PageExtractor = (*PageExtractor)(nil)

// NewPageExtractor wires an HTTP client; nil means a client with a 20s timeout.
func NewPageExtractor(client *http.Client) *PageExtractor {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &PageExtractor{client: client}
}

// Extract downloads pageURL and returns the article with Flag left at zero.
func (p *PageExtractor) Extract(ctx context.Context, pageURL string) (domain.Article, error) {
	doc, err := p.fetchDocument(ctx, pageURL)
	if err != nil {
		return domain.Article{}, err
	}

	article, err := ParseArticle(doc)
	if err != nil {
		return domain.Article{}, fmt.Errorf("page %s: %w", pageURL, err)
	}
	article.SourceURL = pageURL
	return article, nil
}

func (p *PageExtractor) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "ArticlesBench/1.0")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("page returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	return doc, nil
}

// ParseArticle reads title, authors, annotation and body from doc.
// Every field is required.
func ParseArticle(doc *goquery.Document) (domain.Article, error) {
	title := firstText(doc, titleSelector)
	if title == "" {
		return domain.Article{}, &domain.MissingFieldError{Field: "title"}
	}

	var authors []string
	doc.Find(authorSelector).Each(func(_ int, s *goquery.Selection) {
		if name := cleanText(s.Text()); name != "" {
			authors = append(authors, name)
		}
	})
	if len(authors) == 0 {
		return domain.Article{}, &domain.MissingFieldError{Field: "authors"}
	}

	annotation := firstText(doc, annotationSelector)
	if annotation == "" {
		return domain.Article{}, &domain.MissingFieldError{Field: "annotation"}
	}

	body := firstText(doc, bodySelector)
	if body == "" {
		return domain.Article{}, &domain.MissingFieldError{Field: "articleText"}
	}

	return domain.Article{
		Title:       title,
		Authors:     strings.Join(authors, ", "),
		Annotation:  annotation,
		ArticleText: body,
	}, nil
}

func firstText(doc *goquery.Document, selector string) string {
	return cleanText(doc.Find(selector).First().Text())
}

func cleanText(text string) string {
	return strings.TrimSpace(strings.Replace(text, bannerPhrase, "", 1))
}
