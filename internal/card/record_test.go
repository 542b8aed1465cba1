package card

import (
	"errors"
	"testing"
)

func TestAdoptAssignsIdentifiersExactlyOnce(t *testing.T) {
	rec := NewGenerationRecord("#1700FE", "Test Card")

	if err := rec.Adopt(42, "000000042 FE F"); err != nil {
		t.Fatalf("first adopt: %v", err)
	}
	if rec.RemoteID != 42 || rec.ExtendedID != "000000042 FE F" {
		t.Fatalf("identifiers not applied: %+v", rec)
	}

	err := rec.Adopt(43, "000000043 FE F")
	if !errors.Is(err, ErrAlreadyAdopted) {
		t.Fatalf("second adopt = %v, want ErrAlreadyAdopted", err)
	}
	if rec.RemoteID != 42 {
		t.Error("a rejected adopt must not overwrite identifiers")
	}
}

func TestAdoptRejectsIncompleteIdentifiers(t *testing.T) {
	tests := []struct {
		name       string
		remoteID   int64
		extendedID string
	}{
		{"missing remote id", 0, "000000042 FE F"},
		{"missing extended id", 42, ""},
		{"both missing", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := NewGenerationRecord("#1700FE", "")
			if err := rec.Adopt(tt.remoteID, tt.extendedID); err == nil {
				t.Error("expected an error for incomplete identifiers")
			}
			if rec.RemoteID != 0 || rec.ExtendedID != "" {
				t.Error("rejected adopt must leave the record untouched")
			}
		})
	}
}

func TestStatusNamesRoundTrip(t *testing.T) {
	for _, status := range []Status{StatusPending, StatusInitiated, StatusFinalized, StatusAnnotated, StatusFailed} {
		parsed, err := ParseStatus(status.String())
		if err != nil {
			t.Fatalf("parse %q: %v", status.String(), err)
		}
		if parsed != status {
			t.Errorf("round trip %v -> %q -> %v", status, status.String(), parsed)
		}
	}
	if _, err := ParseStatus("printing"); err == nil {
		t.Error("unknown status name must not parse")
	}
}
