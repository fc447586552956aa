package keymap

import (
	"testing"

	"github.com/sayanarijit/xplr-sub000/internal/keys"
	"github.com/sayanarijit/xplr-sub000/internal/msgin"
)

func TestResolve_KnownBinding(t *testing.T) {
	tbl := Default()
	got := tbl.Resolve(ModeDefault, keys.Char('j'))
	if len(got) != 1 || got[0].Kind != msgin.FocusNext {
		t.Fatalf("Resolve(j) = %+v, want [FocusNext]", got)
	}
}

func TestResolve_UnboundAlphanumericBuffersInput(t *testing.T) {
	tbl := Default()
	got := tbl.Resolve(ModeFilter, keys.Char('x'))
	if len(got) != 1 || got[0].Kind != msgin.BufferInput || got[0].Input != "x" {
		t.Fatalf("Resolve(x) = %+v, want BufferInput(x)", got)
	}
}

func TestResolve_UnboundNonCharacterReturnsNil(t *testing.T) {
	tbl := Default()
	if got := tbl.Resolve(ModeDefault, keys.Function(5)); got != nil {
		t.Fatalf("Resolve(F5) = %+v, want nil", got)
	}
}
