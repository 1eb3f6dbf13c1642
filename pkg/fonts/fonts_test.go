package fonts

import (
	"encoding/base64"
	"testing"

	"golang.org/x/image/font"
)

func TestNewFace(t *testing.T) {
	regular, err := NewFace(14, false)
	if err != nil {
		t.Fatalf("NewFace(regular) error: %v", err)
	}
	boldFace, err := NewFace(14, true)
	if err != nil {
		t.Fatalf("NewFace(bold) error: %v", err)
	}

	r := font.MeasureString(regular, "Mind map")
	b := font.MeasureString(boldFace, "Mind map")
	if r <= 0 {
		t.Fatalf("regular width = %v, want > 0", r)
	}
	if b < r {
		t.Errorf("bold width %v should not be narrower than regular %v", b, r)
	}

	big, err := NewFace(28, false)
	if err != nil {
		t.Fatalf("NewFace(28) error: %v", err)
	}
	if font.MeasureString(big, "Mind map") <= r {
		t.Error("larger size should measure wider")
	}
}

func TestFacesAreIndependent(t *testing.T) {
	a, _ := NewFace(14, false)
	b, _ := NewFace(14, false)
	if a == b {
		t.Error("NewFace should return a fresh face per call")
	}
}

func TestBase64(t *testing.T) {
	r1, b1 := Base64()
	r2, b2 := Base64()
	if r1 != r2 || b1 != b2 {
		t.Error("Base64 should be deterministic")
	}

	data, err := base64.StdEncoding.DecodeString(r1)
	if err != nil {
		t.Fatalf("decode regular: %v", err)
	}
	if len(data) != len(RegularTTF()) {
		t.Errorf("decoded length = %d, want %d", len(data), len(RegularTTF()))
	}
	if len(BoldTTF()) == 0 {
		t.Error("BoldTTF should not be empty")
	}
}
