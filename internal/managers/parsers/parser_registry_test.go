package parsers

import (
	"testing"

	"github.com/deploymenttheory/go-acpiview/internal/types"
)

func TestGetParser(t *testing.T) {
	registry := NewStaticParserRegistry()

	tests := []struct {
		name      string
		input     types.Signature
		wantFound bool
		wantName  string
	}{
		{"XSDT", types.XsdtSignature, true, "Extended System Description Table"},
		{"FADT", types.FadtSignature, true, "Fixed ACPI Description Table"},
		{"lower case token", types.ParseSignature("apic"), true, "Multiple APIC Description Table"},
		{"RSDP", types.RsdpSignature, true, "Root System Description Pointer"},
		{"unregistered PPTT", types.PpttSignature, false, ""},
		{"zero signature", 0, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser, ok := registry.GetParser(tt.input)
			if ok != tt.wantFound {
				t.Fatalf("GetParser(%q): found = %v, want %v", tt.input, ok, tt.wantFound)
			}
			if !ok {
				return
			}
			if parser.Name() != tt.wantName {
				t.Errorf("GetParser(%q): name = %q, want %q", tt.input, parser.Name(), tt.wantName)
			}
			if parser.Signature() != tt.input {
				t.Errorf("GetParser(%q): parser handles %q", tt.input, parser.Signature())
			}
		})
	}
}

func TestListTables(t *testing.T) {
	registry := NewStaticParserRegistry()
	all := registry.ListTables()

	if len(all) != 13 {
		t.Fatalf("ListTables() returned %d tables, want 13", len(all))
	}

	seen := map[types.Signature]bool{}
	for i, info := range all {
		if seen[info.Signature] {
			t.Errorf("Duplicate signature in ListTables: %s", info.Signature)
		}
		seen[info.Signature] = true

		if info.Description == "" {
			t.Errorf("%s has no description", info.Signature)
		}
		if i > 0 && all[i-1].Signature.String() > info.Signature.String() {
			t.Errorf("ListTables not sorted: %s before %s", all[i-1].Signature, info.Signature)
		}
	}
}

func TestNewParserRegistryLaterEntryWins(t *testing.T) {
	base := NewStaticParserRegistry().ListTables()[0]
	override := base
	override.Name = "Override"

	registry := NewParserRegistry(base, override)

	list := registry.ListTables()
	if len(list) != 1 || list[0].Name != "Override" {
		t.Fatalf("expected a single overriding entry, got %+v", list)
	}
}
