package wordgen_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/0x6d61/adlab/pkg/wordgen"
)

func collect(t *testing.T, text string, suffixes bool) []string {
	t.Helper()
	var out []string
	err := wordgen.Generate(text, suffixes, func(v string) error {
		out = append(out, v)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return out
}

func TestOptions(t *testing.T) {
	res := wordgen.Options('a')
	exp := []string{"a", "A", "@", "4"}
	if slices.Compare(res, exp) != 0 {
		t.Errorf("%v, expected: %v", res, exp)
	}

	res = wordgen.Options('x')
	exp = []string{"x", "X"}
	if slices.Compare(res, exp) != 0 {
		t.Errorf("%v, expected: %v", res, exp)
	}

	res = wordgen.Options('X')
	if slices.Compare(res, exp) != 0 {
		t.Errorf("%v, expected: %v", res, exp)
	}

	res = wordgen.Options('-')
	exp = []string{"-"}
	if slices.Compare(res, exp) != 0 {
		t.Errorf("%v, expected: %v", res, exp)
	}
}

func TestGenerateOrder(t *testing.T) {
	out := collect(t, "ox", false)
	exp := []string{"ox", "oX", "Ox", "OX", "0x", "0X"}
	if slices.Compare(out, exp) != 0 {
		t.Errorf("%v, expected: %v", out, exp)
	}
}

func TestGenerateEmptyText(t *testing.T) {
	out := collect(t, "", false)
	if len(out) != 1 || out[0] != "" {
		t.Errorf("%v, expected a single empty variant", out)
	}
}

func TestGenerateSuffixes(t *testing.T) {
	out := collect(t, "-", true)
	if len(out) != 11110 {
		t.Fatalf("%d variants, expected: 11110", len(out))
	}
	if out[0] != "-0" {
		t.Errorf("%v, expected: -0", out[0])
	}
	if out[9] != "-9" {
		t.Errorf("%v, expected: -9", out[9])
	}
	if out[10] != "-00" {
		t.Errorf("%v, expected: -00", out[10])
	}
	if out[len(out)-1] != "-9999" {
		t.Errorf("%v, expected: -9999", out[len(out)-1])
	}
}

func TestCountMatchesGenerate(t *testing.T) {
	for _, text := range []string{"", "a", "ox", "p-1"} {
		n := wordgen.Count(text, false)
		if got := uint64(len(collect(t, text, false))); got != n {
			t.Errorf("%q: generated %d, Count said %d", text, got, n)
		}
	}
	if n := wordgen.Count("x", true); n != 2*11110 {
		t.Errorf("%d, expected: %d", n, 2*11110)
	}
}

func TestGenerateStop(t *testing.T) {
	var out []string
	err := wordgen.Generate("password", true, func(v string) error {
		out = append(out, v)
		if len(out) == 5 {
			return wordgen.ErrStop
		}
		return nil
	})
	if !errors.Is(err, wordgen.ErrStop) {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 5 {
		t.Errorf("%d variants, expected: 5", len(out))
	}
}

func TestGenerateCallbackError(t *testing.T) {
	boom := errors.New("boom")
	err := wordgen.Generate("ab", false, func(string) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("unexpected error: %v", err)
	}
}
