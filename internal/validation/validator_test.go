// Moodscape - Mood-Aware Music Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodscape

package validation

import (
	"strings"
	"testing"
)

type sampleRequest struct {
	Text            string  `validate:"required"`
	TypingSpeed     float64 `validate:"gte=0"`
	PlaylistMinutes int     `validate:"gte=0,lte=480"`
}

func TestValidateStruct_Passes(t *testing.T) {
	req := sampleRequest{Text: "feeling great", TypingSpeed: 3.2, PlaylistMinutes: 30}
	if verr := ValidateStruct(&req); verr != nil {
		t.Fatalf("expected valid struct, got %v", verr)
	}
}

func TestValidateStruct_RequiredField(t *testing.T) {
	req := sampleRequest{TypingSpeed: 1.0}
	verr := ValidateStruct(&req)
	if verr == nil {
		t.Fatal("expected validation error for missing Text")
	}
	if len(verr.Fields()) != 1 {
		t.Fatalf("expected 1 field error, got %d", len(verr.Fields()))
	}
	if verr.Fields()[0].Field != "Text" {
		t.Errorf("expected failure on Text, got %s", verr.Fields()[0].Field)
	}
	if !strings.Contains(verr.Error(), "Text is required") {
		t.Errorf("unexpected message: %s", verr.Error())
	}
}

func TestValidateStruct_MultipleFailures(t *testing.T) {
	req := sampleRequest{TypingSpeed: -1, PlaylistMinutes: 1000}
	verr := ValidateStruct(&req)
	if verr == nil {
		t.Fatal("expected validation errors")
	}
	if len(verr.Fields()) != 3 {
		t.Fatalf("expected 3 field errors, got %d", len(verr.Fields()))
	}

	apiErr := verr.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("expected VALIDATION_ERROR code, got %s", apiErr.Code)
	}
	if _, ok := apiErr.Details["fields"]; !ok {
		t.Error("expected fields detail for multiple failures")
	}
}

func TestToAPIError_SingleFailure(t *testing.T) {
	req := sampleRequest{Text: "x", TypingSpeed: -0.5, PlaylistMinutes: 10}
	verr := ValidateStruct(&req)
	if verr == nil {
		t.Fatal("expected validation error")
	}

	apiErr := verr.ToAPIError()
	if apiErr.Details["field"] != "TypingSpeed" {
		t.Errorf("expected TypingSpeed detail, got %v", apiErr.Details["field"])
	}
	if !strings.Contains(apiErr.Message, "greater than or equal to 0") {
		t.Errorf("unexpected message: %s", apiErr.Message)
	}
}
