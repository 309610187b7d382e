package view

import (
	"testing"

	"github.com/deploymenttheory/go-acpiview/internal/device"
	"github.com/deploymenttheory/go-acpiview/pkg/app"
)

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		request Request
		wantErr bool
	}{
		{"defaults", Request{}, false},
		{"requirements", Request{Requirements: "0x10001"}, false},
		{"requirements without prefix", Request{Requirements: "10002"}, false},
		{"bad requirements", Request{Requirements: "0xZZ"}, true},
		{"select and list", Request{Selection: app.TableSelection{Name: "DSDT", List: true}}, true},
		{"image without manifest", Request{Source: device.SourceOptions{Source: device.SourceImage}}, true},
		{"unknown source", Request{Source: device.SourceOptions{Source: "acpi-tables"}}, true},
		{"negative depth", Request{MaxDepth: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRequestSpecID(t *testing.T) {
	r := Request{Requirements: "0x10000"}
	if id, ok := r.SpecID(); !ok || id != 0x10000 {
		t.Errorf("SpecID() = 0x%X, %v", id, ok)
	}

	r = Request{}
	if _, ok := r.SpecID(); ok {
		t.Error("SpecID() enabled without requirements")
	}
}
