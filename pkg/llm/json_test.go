package llm

import (
	"testing"
)

func TestExtractJSON_PlainArray(t *testing.T) {
	input := `[[0.5, null, -0.2], [0.9, 0.8, 0.7]]`
	result, err := ExtractJSON(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != input {
		t.Errorf("expected %q, got %q", input, result)
	}
}

func TestExtractJSON_PlainObject(t *testing.T) {
	input := `{"name": "test", "value": 123}`
	result, err := ExtractJSON(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != input {
		t.Errorf("expected %q, got %q", input, result)
	}
}

func TestExtractJSON_MarkdownCodeBlock(t *testing.T) {
	input := "```json\n[[0.9, -0.3], [0.95, 0.7]]\n```"
	expected := `[[0.9, -0.3], [0.95, 0.7]]`
	result, err := ExtractJSON(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != expected {
		t.Errorf("expected %q, got %q", expected, result)
	}
}

func TestExtractJSON_SurroundingProse(t *testing.T) {
	input := `Here are the labels: [[0.5], [0.9]] as requested.`
	expected := `[[0.5], [0.9]]`
	result, err := ExtractJSON(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != expected {
		t.Errorf("expected %q, got %q", expected, result)
	}
}

func TestExtractJSON_StringWithBrackets(t *testing.T) {
	input := `{"note": "scores [1] and [2]"}`
	result, err := ExtractJSON(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != input {
		t.Errorf("expected %q, got %q", input, result)
	}
}

func TestExtractJSON_Unbalanced(t *testing.T) {
	input := `[[0.5, null`
	_, err := ExtractJSON(input)
	if err == nil {
		t.Fatal("expected error for unbalanced JSON")
	}
}

func TestExtractJSON_NoJSON(t *testing.T) {
	input := `the model refused to answer`
	_, err := ExtractJSON(input)
	if err == nil {
		t.Fatal("expected error when no JSON is present")
	}
}
