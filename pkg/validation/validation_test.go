package validation

import (
	"testing"
)

func TestValidateWorkerCount(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		wantErr bool
	}{
		{"valid minimum", 1, false},
		{"valid middle", 10, false},
		{"valid maximum", 20, false},
		{"too low", 0, true},
		{"negative", -1, true},
		{"too high", 21, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWorkerCount(tt.workers)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateWorkerCount(%d) error = %v, wantErr %v", tt.workers, err, tt.wantErr)
			}
		})
	}
}

func TestParseGUID(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"canonical lowercase", "4559818c-faea-4bb7-bbdd-e6470df8261b", false},
		{"canonical uppercase", "80730A51-A953-4A80-9EAA-DEBFAB31F6E9", false},
		{"without hyphens", "4559818cfaea4bb7bbdde6470df8261b", false},
		{"empty", "", true},
		{"too short", "4559818c-faea", true},
		{"not hex", "zzzz818c-faea-4bb7-bbdd-e6470df8261b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParseGUID(tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseGUID(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if !tt.wantErr && id.String() == "00000000-0000-0000-0000-000000000000" {
				t.Errorf("ParseGUID(%q) returned the zero GUID", tt.value)
			}
		})
	}
}

func TestValidateNonEmptyString(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		value     string
		wantErr   bool
	}{
		{"valid string", "username", "john", false},
		{"empty string", "username", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNonEmptyString(tt.fieldName, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNonEmptyString(%q, %q) error = %v, wantErr %v", tt.fieldName, tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestValidateResourceKind(t *testing.T) {
	tests := []struct {
		name    string
		kind    string
		wantErr bool
	}{
		{"project", "project", false},
		{"loin", "loin", false},
		{"domain model", "domain_model", false},
		{"context", "context", false},
		{"template", "template", false},
		{"invalid", "property", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateResourceKind(tt.kind)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateResourceKind(%q) error = %v, wantErr %v", tt.kind, err, tt.wantErr)
			}
		})
	}
}
