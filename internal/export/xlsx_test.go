package export

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestWriteXLSX(t *testing.T) {
	rows := []Row{
		{
			Question:        "Which river is the longest?",
			Answers:         [4]string{"Amazon", "Nile", "Yangtze", "Danube"},
			TimeSeconds:     DefaultTimeSeconds,
			CorrectPosition: 2,
		},
		{
			Question:        "2 + 2?",
			Answers:         [4]string{"3", "4", "5", "6"},
			TimeSeconds:     DefaultTimeSeconds,
			CorrectPosition: 2,
		},
	}

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, rows); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer f.Close()

	got, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(got))
	}

	for i, want := range header {
		if got[0][i] != want {
			t.Errorf("header col %d = %q, want %q", i+1, got[0][i], want)
		}
	}

	if got[1][0] != "Which river is the longest?" {
		t.Errorf("question cell = %q", got[1][0])
	}
	if got[1][2] != "Nile" {
		t.Errorf("answer 2 cell = %q", got[1][2])
	}
	if got[1][5] != strconv.Itoa(DefaultTimeSeconds) {
		t.Errorf("time cell = %q", got[1][5])
	}
	if got[1][6] != "2" {
		t.Errorf("correct cell = %q", got[1][6])
	}
}

func TestWriteXLSX_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, nil); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer f.Close()

	got, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("empty set should still write the header row, got %d rows", len(got))
	}
}
