package csv

import (
	"context"
	"reflect"
	"strings"
	"testing"
)

func TestReadRowsBasic(t *testing.T) {
	t.Parallel()

	in := "order_id,status\nA1,delivered\nA2,shipped\n"
	rows, err := ReadRows(context.Background(), strings.NewReader(in), Options{TrimSpace: true}, nil)
	if err != nil {
		t.Fatalf("ReadRows: %v", err)
	}
	want := []Row{
		{Line: 2, Fields: map[string]string{"order_id": "A1", "status": "delivered"}},
		{Line: 3, Fields: map[string]string{"order_id": "A2", "status": "shipped"}},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("got %#v want %#v", rows, want)
	}
}

func TestReadRowsStripsBOM(t *testing.T) {
	t.Parallel()

	in := "\uFEFForder_id,status\nA1,delivered\n"
	rows, err := ReadRows(context.Background(), strings.NewReader(in), Options{}, nil)
	if err != nil {
		t.Fatalf("ReadRows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if got := rows[0].Fields["order_id"]; got != "A1" {
		t.Fatalf("order_id = %q, want A1 (BOM not stripped from header)", got)
	}
}

func TestReadRowsHeaderMap(t *testing.T) {
	t.Parallel()

	in := "ID Pedido;Estado\nA1;SP\n"
	opt := Options{
		Comma:     ';',
		HeaderMap: map[string]string{"ID Pedido": "order_id", "Estado": "state"},
	}
	rows, err := ReadRows(context.Background(), strings.NewReader(in), opt, nil)
	if err != nil {
		t.Fatalf("ReadRows: %v", err)
	}
	want := map[string]string{"order_id": "A1", "state": "SP"}
	if !reflect.DeepEqual(rows[0].Fields, want) {
		t.Fatalf("fields = %#v, want %#v", rows[0].Fields, want)
	}
}

func TestReadRowsShortRecord(t *testing.T) {
	t.Parallel()

	// A record narrower than the header keeps the cells it has; the missing
	// trailing field is simply absent from the map.
	in := "a,b,c\n1,2\n"
	rows, err := ReadRows(context.Background(), strings.NewReader(in), Options{}, nil)
	if err != nil {
		t.Fatalf("ReadRows: %v", err)
	}
	if _, ok := rows[0].Fields["c"]; ok {
		t.Fatalf("field c should be absent, got %#v", rows[0].Fields)
	}
}

func TestReadRowsBadLineIsDropped(t *testing.T) {
	t.Parallel()

	in := "a,b\nok,1\n\"broken,2\nok2,3\n"
	var badLines []int
	rows, err := ReadRows(context.Background(), strings.NewReader(in), Options{}, func(line int, err error) {
		badLines = append(badLines, line)
	})
	if err != nil {
		t.Fatalf("ReadRows: %v", err)
	}
	// The unterminated quote swallows the rest of the input, so only the
	// first data row survives; the point is that ReadRows does not abort.
	if len(rows) == 0 {
		t.Fatalf("expected at least the first row to survive")
	}
	if rows[0].Fields["a"] != "ok" {
		t.Fatalf("first row = %#v", rows[0].Fields)
	}
	if len(badLines) == 0 {
		t.Fatalf("expected onErr to be called for the broken line")
	}
}
