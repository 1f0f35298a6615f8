package http

import (
	"testing"
)

type dec2Probe struct {
	Amount float64 `validate:"dec2"`
}

type hex32Probe struct {
	ID string `validate:"hex32"`
}

func TestValidator_Dec2(t *testing.T) {
	cv := NewValidator()

	for _, ok := range []float64{0, 10, 10.5, 10.55, 1234567.89} {
		if err := cv.Validate(&dec2Probe{Amount: ok}); err != nil {
			t.Fatalf("%v rejected: %v", ok, err)
		}
	}
	for _, bad := range []float64{10.555, 0.001, 99.999} {
		if err := cv.Validate(&dec2Probe{Amount: bad}); err == nil {
			t.Fatalf("%v accepted, want rejection", bad)
		}
	}
}

func TestValidator_Hex32(t *testing.T) {
	cv := NewValidator()

	if err := cv.Validate(&hex32Probe{ID: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"}); err != nil {
		t.Fatalf("valid id rejected: %v", err)
	}
	for _, bad := range []string{
		"",
		"AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", // uppercase
		"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",  // 31 chars
		"zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz", // not hex
	} {
		if err := cv.Validate(&hex32Probe{ID: bad}); err == nil {
			t.Fatalf("%q accepted, want rejection", bad)
		}
	}
}

func TestToFieldErrors_ReadableMessages(t *testing.T) {
	cv := NewValidator()

	type form struct {
		Name  string  `validate:"required"`
		Email string  `validate:"required,email"`
		Rate  float64 `validate:"gte=0"`
	}
	err := cv.Validate(&form{Email: "nope", Rate: -1})
	if err == nil {
		t.Fatalf("expected validation errors")
	}

	fes := ToFieldErrors(err)
	if !containsFieldMsg(fes, "Name", "required") {
		t.Fatalf("missing Name error: %+v", fes)
	}
	if !containsFieldMsg(fes, "Email", "valid email") {
		t.Fatalf("missing Email error: %+v", fes)
	}
	if !containsFieldMsg(fes, "Rate", "greater than or equal") {
		t.Fatalf("missing Rate error: %+v", fes)
	}
}
