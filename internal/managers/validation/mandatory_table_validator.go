// Package validation audits the set of discovered tables against the mandatory table lists
// of platform specifications.
package validation

import (
	"fmt"
	"io"
	"sync"

	"github.com/deploymenttheory/go-acpiview/internal/interfaces"
	"github.com/deploymenttheory/go-acpiview/internal/types"
)

// Profile lists the tables a specification requires
type Profile struct {
	ID         uint64
	Name       string
	Signatures []types.Signature
}

// NewProfile creates a profile from signature tokens
func NewProfile(id uint64, name string, signatures ...string) Profile {
	p := Profile{ID: id, Name: name, Signatures: make([]types.Signature, 0, len(signatures))}
	for _, s := range signatures {
		p.Signatures = append(p.Signatures, types.ParseSignature(s))
	}
	return p
}

// Arm Server Base Boot Requirements, section 4.2 (mandatory ACPI tables)
var (
	sbbr10Tables = []string{"DSDT", "FACP", "APIC", "GTDT", "DBG2", "SPCR"}
	sbbr11Tables = []string{"DSDT", "FACP", "APIC", "GTDT", "DBG2", "SPCR", "PPTT"}
)

// BuiltinProfiles returns the specification profiles known without configuration
func BuiltinProfiles() []Profile {
	return []Profile{
		NewProfile(types.SpecArmSbbr10, "Arm SBBR 1.0", sbbr10Tables...),
		NewProfile(types.SpecArmSbbr11, "Arm SBBR 1.1", sbbr11Tables...),
		NewProfile(types.SpecArmSbbr12, "Arm SBBR 1.2", sbbr11Tables...),
	}
}

// MandatoryTableValidator tallies discovered tables during a traversal and checks them
// against a profile afterwards.
type MandatoryTableValidator struct {
	profiles map[uint64]Profile

	mu       sync.Mutex
	observed map[types.Signature]int
}

var _ interfaces.MandatoryTableValidator = (*MandatoryTableValidator)(nil)

// NewMandatoryTableValidator creates a validator knowing the built-in profiles plus extra.
// An extra profile with a built-in ID replaces it.
func NewMandatoryTableValidator(extra ...Profile) *MandatoryTableValidator {
	v := &MandatoryTableValidator{
		profiles: make(map[uint64]Profile),
		observed: make(map[types.Signature]int),
	}
	for _, p := range BuiltinProfiles() {
		v.profiles[p.ID] = p
	}
	for _, p := range extra {
		v.profiles[p.ID] = p
	}
	return v
}

// Profile returns the profile registered under id
func (v *MandatoryTableValidator) profile(id uint64) (Profile, bool) {
	p, ok := v.profiles[id]
	return p, ok
}

// Reset clears the observed-signature tally
func (v *MandatoryTableValidator) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.observed = make(map[types.Signature]int)
}

// Observe records one discovered table
func (v *MandatoryTableValidator) Observe(sig types.Signature) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.observed[sig]++
}

// Count returns how many times sig was observed since the last reset
func (v *MandatoryTableValidator) count(sig types.Signature) int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.observed[sig]
}

// Validate checks the tally against the profile identified by specID. Every missing table
// and an unknown specID count one error each.
func (v *MandatoryTableValidator) Validate(specID uint64, counter interfaces.ErrorCounter, w io.Writer) interfaces.MandatoryTableReport {
	report := interfaces.MandatoryTableReport{SpecID: specID, Missing: []string{}}

	profile, ok := v.profiles[specID]
	if !ok {
		counter.IncrementErrorCount()
		fmt.Fprintf(w, "\nERROR: Unknown mandatory table specification 0x%X\n", specID)
		return report
	}

	report.Known = true
	report.SpecName = profile.Name
	report.Required = make([]string, 0, len(profile.Signatures))

	fmt.Fprintf(w, "\nMandatory table validation against %s (0x%X):\n", profile.Name, specID)

	v.mu.Lock()
	defer v.mu.Unlock()

	for _, sig := range profile.Signatures {
		report.Required = append(report.Required, sig.String())
		if v.observed[sig] > 0 {
			fmt.Fprintf(w, "\t%s : present\n", sig)
			continue
		}
		counter.IncrementErrorCount()
		report.Missing = append(report.Missing, sig.String())
		fmt.Fprintf(w, "\nERROR: %s: Mandatory %s table is missing\n", profile.Name, sig)
	}

	return report
}
