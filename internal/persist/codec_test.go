package persist

import (
	"errors"
	"testing"

	"todo/internal/task"
)

func TestEncode_Empty(t *testing.T) {
	got, err := Encode(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "[]" {
		t.Errorf("expected %q, got %q", "[]", got)
	}
}

func TestDecode_Null(t *testing.T) {
	got, err := Decode("null")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no tasks, got %v", got)
	}
}

func TestDecode_KeepsOrder(t *testing.T) {
	got, err := Decode(`[
		{"id": 4, "title": "later", "completed": true},
		{"id": 1, "title": "earlier", "completed": false}
	]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0] != task.New(4, "later", true) || got[1] != task.New(1, "earlier", false) {
		t.Errorf("unexpected tasks %v", got)
	}
}

func TestDecode_Malformed(t *testing.T) {
	for _, raw := range []string{
		"not json",
		"[1,2,3]",
		`"string"`,
		"[null]",
		`[{"title":"a","completed":false}]`,
		`[{"id":0,"completed":false}]`,
		`[{"id":0,"title":"a"}]`,
		`[{"id":0,"title":"a","completed":"yes"}]`,
		`[{"id":0.5,"title":"a","completed":false}]`,
		`[{"id":0,"title":"a","completed":false,"due":"today"}]`,
		`[] []`,
	} {
		if _, err := Decode(raw); !errors.Is(err, ErrMalformed) {
			t.Errorf("%q: expected ErrMalformed, got %v", raw, err)
		}
	}
}

func TestDecode_InvalidTask(t *testing.T) {
	for _, raw := range []string{
		`[{"id":-1,"title":"a","completed":false}]`,
		`[{"id":0,"title":"  ","completed":false}]`,
		`[{"id":0,"title":"a","completed":false},{"id":0,"title":"b","completed":true}]`,
	} {
		if _, err := Decode(raw); !errors.Is(err, ErrInvalidTask) {
			t.Errorf("%q: expected ErrInvalidTask, got %v", raw, err)
		}
	}
}

func TestIsBlank(t *testing.T) {
	if !isBlank(" \n\t") {
		t.Error("expected whitespace to be blank")
	}
	if isBlank("[]") {
		t.Error("expected [] not to be blank")
	}
}
