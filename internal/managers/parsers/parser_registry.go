package parsers

import (
	"sort"

	"github.com/deploymenttheory/go-acpiview/internal/interfaces"
	"github.com/deploymenttheory/go-acpiview/internal/parsers/tables"
	"github.com/deploymenttheory/go-acpiview/internal/types"
)

// StaticParserRegistry maps table signatures to their parsers. It is populated once and
// never modified afterwards, so it is safe for concurrent lookups.
type StaticParserRegistry struct {
	registry map[types.Signature]interfaces.TableInfo
}

var _ interfaces.ParserRegistry = (*StaticParserRegistry)(nil)

// NewStaticParserRegistry initializes the registry with every built-in table parser
func NewStaticParserRegistry() *StaticParserRegistry {
	return NewParserRegistry(
		describe(tables.NewRsdpParser(), "Anchor of the table graph, located through the EFI configuration table"),
		describe(tables.NewXsdtParser(), "Array of 64-bit pointers to the other description tables"),
		describe(tables.NewFadtParser(), "Fixed hardware register blocks and the FACS and DSDT pointers"),
		describe(tables.NewFacsParser(), "Firmware control structure shared with the OS (no checksum)"),
		describe(tables.NewDsdtParser(), "Primary AML definition block"),
		describe(tables.NewSsdtParser(), "Secondary AML definition block"),
		describe(tables.NewMadtParser(), "Interrupt controller structures (APIC and GIC)"),
		describe(tables.NewMcfgParser(), "PCI Express enhanced configuration space allocations"),
		describe(tables.NewGtdtParser(), "Arm generic timer and platform timer description"),
		describe(tables.NewSpcrParser(), "Serial console redirection settings"),
		describe(tables.NewDbg2Parser(), "Debug port device descriptions"),
		describe(tables.NewHpetParser(), "High precision event timer block"),
		describe(tables.NewBgrtParser(), "Boot logo image location"),
	)
}

// NewParserRegistry builds a registry from an explicit set of tables. A later entry with
// the same signature replaces an earlier one.
func NewParserRegistry(infos ...interfaces.TableInfo) *StaticParserRegistry {
	r := &StaticParserRegistry{registry: make(map[types.Signature]interfaces.TableInfo, len(infos))}
	for _, info := range infos {
		r.registry[info.Signature] = info
	}
	return r
}

func describe(p interfaces.TableParser, description string) interfaces.TableInfo {
	return interfaces.TableInfo{
		Signature:   p.Signature(),
		Name:        p.Name(),
		Description: description,
		Parser:      p,
	}
}

// GetParser returns the parser registered for sig
func (r *StaticParserRegistry) GetParser(sig types.Signature) (interfaces.TableParser, bool) {
	info, ok := r.registry[sig]
	if !ok || info.Parser == nil {
		return nil, false
	}
	return info.Parser, true
}

// ListTables returns every registered table ordered by signature text
func (r *StaticParserRegistry) ListTables() []interfaces.TableInfo {
	list := make([]interfaces.TableInfo, 0, len(r.registry))
	for _, info := range r.registry {
		list = append(list, info)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Signature.String() < list[j].Signature.String()
	})
	return list
}
