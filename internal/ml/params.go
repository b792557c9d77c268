package ml

import (
	"fmt"
	"slices"
	"strings"

	"ArticlesBench/internal/domain"
)

// paramReader pulls typed values out of an assignment and remembers the first error.
type paramReader struct {
	model domain.Assignment
	used  map[string]bool
	err   error
}

func newParamReader(model domain.Assignment) *paramReader {
	return &paramReader{model: model, used: map[string]bool{}}
}

func (p *paramReader) fail(name, format string, args ...any) {
	if p.err == nil {
		p.err = &domain.ConfigurationError{Family: p.model.Family, Param: name, Reason: fmt.Sprintf(format, args...)}
	}
}

func (p *paramReader) lookup(name string) (any, bool) {
	p.used[name] = true
	return p.model.Lookup(name)
}

func (p *paramReader) intValue(name string, def int) int {
	v, ok := p.lookup(name)
	if !ok {
		return def
	}
	switch x := v.(type) {
	case int:
		return x
	case int64:
		return int(x)
	case float64:
		if x == float64(int(x)) {
			return int(x)
		}
	}
	p.fail(name, "expected integer, got %s", domain.FormatValue(v))
	return def
}

func (p *paramReader) floatValue(name string, def float64) float64 {
	v, ok := p.lookup(name)
	if !ok {
		return def
	}
	switch x := v.(type) {
	case float64:
		return x
	case int:
		return float64(x)
	case int64:
		return float64(x)
	}
	p.fail(name, "expected number, got %s", domain.FormatValue(v))
	return def
}

func (p *paramReader) boolValue(name string, def bool) bool {
	v, ok := p.lookup(name)
	if !ok {
		return def
	}
	if b, ok := v.(bool); ok {
		return b
	}
	p.fail(name, "expected boolean, got %s", domain.FormatValue(v))
	return def
}

func (p *paramReader) choice(name, def string, allowed ...string) string {
	v, ok := p.lookup(name)
	if !ok {
		return def
	}
	s, isString := v.(string)
	if !isString || !slices.Contains(allowed, s) {
		p.fail(name, "must be one of %s, got %s", strings.Join(allowed, ", "), domain.FormatValue(v))
		return def
	}
	return s
}

// skip marks a parameter as accepted without reading it.
func (p *paramReader) skip(name string) {
	p.used[name] = true
}

func (p *paramReader) done() error {
	if p.err != nil {
		return p.err
	}
	for _, param := range p.model.Params {
		if !p.used[param.Name] {
			return &domain.ConfigurationError{Family: p.model.Family, Param: param.Name, Reason: "unknown parameter"}
		}
	}
	return nil
}
