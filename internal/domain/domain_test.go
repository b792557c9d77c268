package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestParamsStringMatchesDictLiteral(t *testing.T) {
	t.Parallel()

	a := Assignment{
		Family: "LogisticRegression",
		Params: []Param{
			{Name: "C", Value: 1.0},
			{Name: "solver", Value: "lbfgs"},
			{Name: "max_iter", Value: 100},
			{Name: "fit_prior", Value: false},
		},
	}

	want := "LogisticRegression ({'C': 1.0, 'solver': 'lbfgs', 'max_iter': 100, 'fit_prior': False})"
	if got := a.String(); got != want {
		t.Fatalf("unexpected descriptor:\n got %s\nwant %s", got, want)
	}
}

func TestFormatValueFloats(t *testing.T) {
	t.Parallel()

	cases := map[float64]string{0.1: "0.1", 1: "1.0", 0.00001: "1e-05", 500: "500.0"}
	for in, want := range cases {
		if got := FormatValue(in); got != want {
			t.Fatalf("FormatValue(%v) = %s, want %s", in, got, want)
		}
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	enc := EncodedDataset{Classes: []int{1, 10, 20}}
	for _, c := range enc.Classes {
		code, ok := enc.Encode(c)
		if !ok {
			t.Fatalf("category %d not encoded", c)
		}
		back, ok := enc.Decode(code)
		if !ok || back != c {
			t.Fatalf("decode(encode(%d)) = %d", c, back)
		}
	}
	if _, ok := enc.Decode(3); ok {
		t.Fatal("expected out-of-range code to fail")
	}
}

func TestErrorsMatchWithAs(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("load: %w", &DataUnavailableError{Op: "query", Err: errors.New("boom")})
	var dataErr *DataUnavailableError
	if !errors.As(err, &dataErr) {
		t.Fatal("expected DataUnavailableError")
	}
	if dataErr.Op != "query" {
		t.Fatalf("unexpected op %s", dataErr.Op)
	}

	cfgErr := &ConfigurationError{Family: "MultinomialNB", Param: "alpha", Reason: "must be >= 0"}
	if cfgErr.Error() != "configuration: MultinomialNB: parameter alpha: must be >= 0" {
		t.Fatalf("unexpected message: %s", cfgErr.Error())
	}
}
