package core

import "testing"

func TestCanonicalJSONKeyOrderIndependence(t *testing.T) {
	a := map[string]interface{}{"b": 1, "a": 2, "c": 3}
	b := map[string]interface{}{"c": 3, "a": 2, "b": 1}

	encA, err := CanonicalJSON(a)
	if err != nil {
		t.Fatalf("canonical json a: %v", err)
	}
	encB, err := CanonicalJSON(b)
	if err != nil {
		t.Fatalf("canonical json b: %v", err)
	}
	if string(encA) != string(encB) {
		t.Fatalf("expected identical bytes, got %q vs %q", encA, encB)
	}
	want := `{"a":2,"b":1,"c":3}`
	if string(encA) != want {
		t.Fatalf("expected %q, got %q", want, encA)
	}
}

func TestCanonicalJSONNestedAndArrays(t *testing.T) {
	v := map[string]interface{}{
		"z": []interface{}{1, 2, 3},
		"a": map[string]interface{}{"y": "x", "b": nil},
	}
	enc, err := CanonicalJSON(v)
	if err != nil {
		t.Fatalf("canonical json: %v", err)
	}
	want := `{"a":{"b":null,"y":"x"},"z":[1,2,3]}`
	if string(enc) != want {
		t.Fatalf("expected %q, got %q", want, enc)
	}
}

func TestCanonicalJSONStringEscaping(t *testing.T) {
	enc, err := CanonicalJSON("line\nbreak\t\"quote\"")
	if err != nil {
		t.Fatalf("canonical json: %v", err)
	}
	want := `"line\nbreak\t\"quote\""`
	if string(enc) != want {
		t.Fatalf("expected %q, got %q", want, enc)
	}
}

func TestCanonicalJSONStringSlice(t *testing.T) {
	enc, err := CanonicalJSON(map[string]interface{}{
		"@context": []string{"https://example.com/a", "https://example.com/b"},
	})
	if err != nil {
		t.Fatalf("canonical json: %v", err)
	}
	want := `{"@context":["https://example.com/a","https://example.com/b"]}`
	if string(enc) != want {
		t.Fatalf("expected %q, got %q", want, enc)
	}
}

func TestCanonicalJSONUnsupportedType(t *testing.T) {
	_, err := CanonicalJSON(struct{ X int }{X: 1})
	if err == nil {
		t.Fatal("expected error for unsupported type")
	}
}

func TestOmitEmptyFields(t *testing.T) {
	in := map[string]interface{}{
		"present": "value",
		"empty":   "",
		"zero":    0,
		"nilv":    nil,
		"emptym":  map[string]interface{}{},
		"emptya":  []interface{}{},
	}
	out := omitEmptyFields(in)
	if len(out) != 1 {
		t.Fatalf("expected 1 surviving field, got %d: %v", len(out), out)
	}
	if out["present"] != "value" {
		t.Fatalf("expected present field to survive, got %v", out)
	}
}
