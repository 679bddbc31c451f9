package feeds

import (
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

func TestDecodeCSVHeaderMapping(t *testing.T) {
	t.Parallel()

	body := "product_slug,merchant,price\nbosch-gsr-12,toolshop,4500\nmakita-df333,drillmart,5200\n"
	rows, err := DecodeCSV(strings.NewReader(body), "")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0]["merchant"] != "toolshop" || rows[1]["price"] != "5200" {
		t.Fatalf("unexpected rows: %v", rows)
	}
}

func TestDecodeCSVShortRowReadsEmpty(t *testing.T) {
	t.Parallel()

	body := "product_slug,merchant,price\nbosch-gsr-12,toolshop\n"
	rows, err := DecodeCSV(strings.NewReader(body), "")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if got := rows[0]["price"]; got != "" {
		t.Fatalf("missing field should read empty, got %q", got)
	}
}

func TestDecodeCSVTolerantOfRaggedQuotes(t *testing.T) {
	t.Parallel()

	body := "product_slug,merchant\nbosch-gsr-12,tool\"shop\n"
	rows, err := DecodeCSV(strings.NewReader(body), "")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected the ragged row to survive, got %d rows", len(rows))
	}
}

func TestDecodeCSVEmptyInput(t *testing.T) {
	t.Parallel()

	rows, err := DecodeCSV(strings.NewReader(""), "")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
}

func TestDecodeCSVWindows1251(t *testing.T) {
	t.Parallel()

	utf8Body := "merchant,availability\ntoolshop,в наличии\n"
	encoded, err := charmap.Windows1251.NewEncoder().String(utf8Body)
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}

	rows, err := DecodeCSV(strings.NewReader(encoded), "windows-1251")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if got := rows[0]["availability"]; got != "в наличии" {
		t.Fatalf("expected decoded cyrillic, got %q", got)
	}
}
