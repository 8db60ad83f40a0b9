package router

import (
	"testing"
)

func TestParamsDecodeString(t *testing.T) {
	var p struct {
		Name string `param:"name"`
	}

	if err := (Params{"name": "test"}).Decode(&p); err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if p.Name != "test" {
		t.Errorf("Name = %q, want %q", p.Name, "test")
	}
}

func TestParamsDecodeInt(t *testing.T) {
	var p struct {
		ID int `param:"id"`
	}

	if err := (Params{"id": "123"}).Decode(&p); err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if p.ID != 123 {
		t.Errorf("ID = %d, want %d", p.ID, 123)
	}
}

func TestParamsDecodeInvalidInt(t *testing.T) {
	var p struct {
		ID int `param:"id"`
	}

	if err := (Params{"id": "abc"}).Decode(&p); err == nil {
		t.Error("expected error for non-numeric id")
	}
}

func TestParamsDecodeMissingLeavesZero(t *testing.T) {
	var p struct {
		ID int `param:"id"`
	}

	if err := (Params{}).Decode(&p); err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if p.ID != 0 {
		t.Errorf("ID = %d, want 0", p.ID)
	}
}

func TestParamsDecodeNilTarget(t *testing.T) {
	if err := (Params{"id": "1"}).Decode(nil); err != nil {
		t.Errorf("Decode(nil) error: %v", err)
	}
}

func TestParamsEqual(t *testing.T) {
	tests := []struct {
		a, b Params
		want bool
	}{
		{nil, nil, true},
		{nil, Params{}, true},
		{Params{"id": "7"}, Params{"id": "7"}, true},
		{Params{"id": "7"}, Params{"id": "8"}, false},
		{Params{"id": "7"}, Params{"slug": "7"}, false},
		{Params{"id": "7"}, nil, false},
	}

	for _, tt := range tests {
		if got := tt.a.Equal(tt.b); got != tt.want {
			t.Errorf("%v.Equal(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestParamsCloneIsIndependent(t *testing.T) {
	orig := Params{"id": "7"}
	clone := orig.Clone()
	clone["id"] = "8"

	if orig["id"] != "7" {
		t.Errorf("original mutated: %v", orig)
	}

	var nilParams Params
	if nilParams.Clone() == nil {
		t.Error("Clone of nil should be non-nil")
	}
}

func TestParamsString(t *testing.T) {
	if got := (Params{"b": "2", "a": "1"}).String(); got != "a=1,b=2" {
		t.Errorf("String() = %q, want %q", got, "a=1,b=2")
	}
	if got := (Params{}).String(); got != "" {
		t.Errorf("String() = %q, want empty", got)
	}
}
