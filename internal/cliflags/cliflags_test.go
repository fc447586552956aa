package cliflags

import "testing"

func TestRender_SubstitutesPlaceholders(t *testing.T) {
	f := FormatArgs{Format: "FocusPath: %q\n", Args: []string{"/tmp/a b"}}
	got, err := f.Render()
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	want := "FocusPath: \"/tmp/a b\"\n"
	if got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
}

func TestRender_LiteralPercent(t *testing.T) {
	f := FormatArgs{Format: "100%%"}
	got, err := f.Render()
	if err != nil || got != "100%" {
		t.Fatalf("Render() = %q, %v, want \"100%%\", nil", got, err)
	}
}

func TestRender_TooFewArgumentsErrors(t *testing.T) {
	f := FormatArgs{Format: "FocusPath: %s"}
	if _, err := f.Render(); err == nil {
		t.Fatal("expected an arity-mismatch error")
	}
}

func TestRender_TooManyArgumentsErrors(t *testing.T) {
	f := FormatArgs{Format: "Quit", Args: []string{"unused"}}
	if _, err := f.Render(); err == nil {
		t.Fatal("expected an arity-mismatch error for an unused argument")
	}
}

func TestRender_UnknownPlaceholderErrors(t *testing.T) {
	f := FormatArgs{Format: "%z"}
	if _, err := f.Render(); err == nil {
		t.Fatal("expected an error for an unknown placeholder")
	}
}

func TestFlags_Delimiter(t *testing.T) {
	if (Flags{}).Delimiter() != '\n' {
		t.Fatal("default delimiter should be newline")
	}
	if (Flags{Null: true}).Delimiter() != 0 {
		t.Fatal("-0/--null should select the NUL delimiter")
	}
	if (Flags{Read0: true}).Delimiter() != 0 {
		t.Fatal("--read0 should select the NUL delimiter")
	}
}
