package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"ArticlesBench/internal/domain"
)

var requiredFields = []string{"title", "authors", "annotation", "articleText", "sourceUrl", "flag"}

// authorsField accepts a single string or a list of names.
type authorsField string

func (a *authorsField) UnmarshalJSON(raw []byte) error {
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		*a = authorsField(single)
		return nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return fmt.Errorf("authors must be a string or a list of strings")
	}
	*a = authorsField(strings.Join(list, ", "))
	return nil
}

// flagField accepts a boolean (true is 1, false is 0) or an integer category code.
type flagField int

func (f *flagField) UnmarshalJSON(raw []byte) error {
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		if b {
			*f = 1
		} else {
			*f = 0
		}
		return nil
	}
	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		return fmt.Errorf("flag must be a boolean or an integer")
	}
	*f = flagField(n)
	return nil
}

type articlePayload struct {
	Title       string       `json:"title"`
	Authors     authorsField `json:"authors"`
	Annotation  string       `json:"annotation"`
	ArticleText string       `json:"articleText"`
	SourceURL   string       `json:"sourceUrl"`
	Flag        flagField    `json:"flag"`
}

type pagePayload struct {
	URL  string     `json:"url"`
	Flag *flagField `json:"flag"`
}

// decodeArticle checks field presence before decoding so that explicit zero values stay valid.
func decodeArticle(body []byte) (domain.Article, error) {
	var present map[string]json.RawMessage
	if err := json.Unmarshal(body, &present); err != nil {
		return domain.Article{}, fmt.Errorf("decode body: %w", err)
	}
	if len(present) == 0 {
		return domain.Article{}, &domain.MissingFieldError{Field: "body"}
	}
	for _, field := range requiredFields {
		if _, ok := present[field]; !ok {
			return domain.Article{}, &domain.MissingFieldError{Field: field}
		}
	}

	var payload articlePayload
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&payload); err != nil {
		return domain.Article{}, fmt.Errorf("decode body: %w", err)
	}

	return domain.Article{
		Title:       payload.Title,
		Authors:     string(payload.Authors),
		Annotation:  payload.Annotation,
		ArticleText: payload.ArticleText,
		SourceURL:   payload.SourceURL,
		Flag:        int(payload.Flag),
	}, nil
}
