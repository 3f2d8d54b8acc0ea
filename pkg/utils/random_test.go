package utils

import (
	"strings"
	"testing"
)

func TestGenerateID(t *testing.T) {
	a := GenerateID("client_")
	b := GenerateID("client_")

	if !strings.HasPrefix(a, "client_") {
		t.Errorf("missing prefix: %q", a)
	}
	if len(a) != len("client_")+8 {
		t.Errorf("unexpected length: %q", a)
	}
	if a == b {
		t.Errorf("two calls returned the same id %q", a)
	}
}
