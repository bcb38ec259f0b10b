package logger

import "testing"

func TestL_DefaultsToNop(t *testing.T) {
	if L() == nil {
		t.Fatal("expected non-nil logger before Init")
	}
}

func TestInit_Production(t *testing.T) {
	if err := Init(false); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if L() == nil {
		t.Fatal("expected logger after Init")
	}
	Sync()
}
