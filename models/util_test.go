package models

import (
	"strings"
	"testing"
)

func TestGenerateID_Prefix(t *testing.T) {
	id := GenerateID("scenario")
	if !strings.HasPrefix(id, "scenario:") {
		t.Errorf("Expected scenario: prefix, got '%s'", id)
	}
	if id == GenerateID("scenario") {
		t.Error("Expected generated IDs to be unique")
	}
}

func TestIsUUID(t *testing.T) {
	if !IsUUID("1966b864-93e9-32d5-d0bd-53144621be32") {
		t.Error("Expected canonical UUID to validate")
	}
	if IsUUID("ot-segmentation-lab") {
		t.Error("Expected a project name not to validate as UUID")
	}
	if IsUUID("") {
		t.Error("Expected empty string not to validate as UUID")
	}
}
