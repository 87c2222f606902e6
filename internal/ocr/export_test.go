package ocr

import (
	"errors"
	"testing"
)

func TestDecodeExport_Valid(t *testing.T) {
	data := []byte(`{
		"page_data": [
			{"page": 3, "words": [
				{"text": "Hello", "xmin": 10, "ymin": 20, "xmax": 50, "ymax": 35}
			]},
			{"words": [
				{"text": "World", "xmin": 10, "ymin": 20}
			]}
		]
	}`)

	export, err := DecodeExport(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(export.Pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(export.Pages))
	}
	if export.Pages[0].Number != 3 {
		t.Errorf("expected page number 3, got %d", export.Pages[0].Number)
	}
	// Missing "page" key falls back to the entry index.
	if export.Pages[1].Number != 1 {
		t.Errorf("expected fallback page number 1, got %d", export.Pages[1].Number)
	}
	w := export.Pages[0].Words[0]
	if w.Text != "Hello" || w.XMin != 10 || w.YMin != 20 || w.XMax != 50 || w.YMax != 35 {
		t.Errorf("unexpected word: %+v", w)
	}
}

func TestDecodeExport_MissingPageData(t *testing.T) {
	_, err := DecodeExport([]byte(`{"pages": []}`))
	var malformed *MalformedInputError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedInputError, got %v", err)
	}
	if malformed.Field != "page_data" {
		t.Errorf("expected field %q, got %q", "page_data", malformed.Field)
	}
	if malformed.Page != -1 {
		t.Errorf("expected page -1 for top-level error, got %d", malformed.Page)
	}
}

func TestDecodeExport_MissingWordFields(t *testing.T) {
	tests := []struct {
		name  string
		json  string
		field string
	}{
		{
			name:  "missing text",
			json:  `{"page_data": [{"page": 1, "words": [{"xmin": 5, "ymin": 5}]}]}`,
			field: "text",
		},
		{
			name:  "missing ymin",
			json:  `{"page_data": [{"page": 1, "words": [{"text": "a", "xmin": 5}]}]}`,
			field: "ymin",
		},
		{
			name:  "missing xmin",
			json:  `{"page_data": [{"page": 1, "words": [{"text": "a", "ymin": 5}]}]}`,
			field: "xmin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeExport([]byte(tt.json))
			var malformed *MalformedInputError
			if !errors.As(err, &malformed) {
				t.Fatalf("expected MalformedInputError, got %v", err)
			}
			if malformed.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, malformed.Field)
			}
			if malformed.Page != 1 || malformed.Word != 0 {
				t.Errorf("expected page 1 word 0, got page %d word %d", malformed.Page, malformed.Word)
			}
		})
	}
}

func TestDecodeExport_InvalidJSON(t *testing.T) {
	if _, err := DecodeExport([]byte(`{not json`)); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestDecodeExport_EmptyPageData(t *testing.T) {
	export, err := DecodeExport([]byte(`{"page_data": []}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(export.Pages) != 0 {
		t.Errorf("expected 0 pages, got %d", len(export.Pages))
	}
}
