package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Param is a single named hyperparameter value. Value holds int, float64, bool or string.
type Param struct {
	Name  string
	Value any
}

// Assignment is an ordered set of hyperparameters for one algorithm family.
type Assignment struct {
	Family string
	Params []Param
}

// Lookup returns the value for name.
func (a Assignment) Lookup(name string) (any, bool) {
	for _, p := range a.Params {
		if p.Name == name {
			return p.Value, true
		}
	}
	return nil, false
}

// ParamsString renders params as a dict literal, e.g. {'C': 0.1, 'solver': 'lbfgs'}.
func (a Assignment) ParamsString() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, p := range a.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(quote(p.Name))
		b.WriteString(": ")
		b.WriteString(FormatValue(p.Value))
	}
	b.WriteByte('}')
	return b.String()
}

// String returns "<family> (<params>)".
func (a Assignment) String() string {
	return fmt.Sprintf("%s (%s)", a.Family, a.ParamsString())
}

// FormatValue renders a scalar hyperparameter value.
func FormatValue(v any) string {
	switch x := v.(type) {
	case string:
		return quote(x)
	case bool:
		if x {
			return "True"
		}
		return "False"
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		s := strconv.FormatFloat(x, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eIN") {
			s += ".0"
		}
		return s
	case nil:
		return "None"
	default:
		return fmt.Sprint(x)
	}
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}
