package utils

import (
	"net/url"
	"testing"
)

func TestQueryInt(t *testing.T) {
	q := url.Values{"a": {"3"}, "b": {"x"}, "c": {" 7 "}}
	if got := QueryInt(q, "a", 1); got != 3 {
		t.Fatalf("a = %d", got)
	}
	if got := QueryInt(q, "b", 1); got != 1 {
		t.Fatalf("b = %d", got)
	}
	if got := QueryInt(q, "c", 1); got != 7 {
		t.Fatalf("c = %d", got)
	}
	if got := QueryInt(q, "missing", 9); got != 9 {
		t.Fatalf("missing = %d", got)
	}
}

func TestQueryBool(t *testing.T) {
	q := url.Values{"yes": {"true"}}
	if !QueryBool(q, "yes") {
		t.Fatalf("yes should be true")
	}
	for _, v := range []string{"false", "1", "t", "TRUE", "True", " true", "maybe", ""} {
		if QueryBool(url.Values{"k": {v}}, "k") {
			t.Fatalf("%q should not count as true", v)
		}
	}
	if QueryBool(q, "missing") {
		t.Fatalf("missing should be false")
	}
}
