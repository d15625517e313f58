package merge

import (
	"errors"
	"testing"

	"github.com/vovakirdan/merge2048/internal/core"
)

func TestDefaultBlockTypes(t *testing.T) {
	table, err := NewBlockTable(DefaultBlockTypes())
	if err != nil {
		t.Fatalf("NewBlockTable(DefaultBlockTypes()) failed: %v", err)
	}

	if table.MaxValue() != 131072 {
		t.Errorf("MaxValue() = %d, want 131072", table.MaxValue())
	}

	for v := 2; v <= 131072; v *= 2 {
		if _, err := table.Lookup(v); err != nil {
			t.Errorf("Lookup(%d) failed: %v", v, err)
		}
	}
}

func TestBlockTableLookupUnknown(t *testing.T) {
	table, _ := NewBlockTable(DefaultBlockTypes()[:4])

	_, err := table.Lookup(32)
	if !errors.Is(err, ErrUnknownBlockValue) {
		t.Errorf("Lookup(32) error = %v, want ErrUnknownBlockValue", err)
	}
}

func TestNewBlockTableInvalid(t *testing.T) {
	tests := []struct {
		name  string
		types []BlockType
	}{
		{"empty", nil},
		{"missing 4", []BlockType{{Value: 2}, {Value: 8}}},
		{"not power of two", []BlockType{{Value: 2}, {Value: 4}, {Value: 6}}},
		{"duplicate", []BlockType{{Value: 2}, {Value: 4}, {Value: 4}}},
		{"gap", []BlockType{{Value: 2}, {Value: 4}, {Value: 16}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBlockTable(tt.types)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("NewBlockTable() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestBlockTableKeepsColors(t *testing.T) {
	table, err := NewBlockTable([]BlockType{
		{Value: 4, Color: core.ColorRed},
		{Value: 2, Color: core.ColorBlue},
	})
	if err != nil {
		t.Fatalf("NewBlockTable() failed: %v", err)
	}

	bt, _ := table.Lookup(4)
	if bt.Color != core.ColorRed {
		t.Errorf("Lookup(4).Color = %v, want red", bt.Color)
	}

	types := table.Types()
	if types[0].Value != 2 || types[1].Value != 4 {
		t.Errorf("Types() not ascending: %v", types)
	}
}
