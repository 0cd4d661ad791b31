package target

import (
	"errors"
	"testing"
)

func TestParseTemplate(t *testing.T) {
	tests := []struct {
		name    string
		tmpl    string
		wantErr bool
	}{
		{
			name: "one slot in path",
			tmpl: "https://api.example.com/stations/{}/availability",
		},
		{
			name: "one slot in query",
			tmpl: "https://api.example.com/chargers?id={}",
		},
		{
			name: "bare slot",
			tmpl: "{}",
		},
		{
			name:    "no slot",
			tmpl:    "https://api.example.com/stations",
			wantErr: true,
		},
		{
			name:    "two slots",
			tmpl:    "https://api.example.com/{}/{}",
			wantErr: true,
		},
		{
			name:    "empty string",
			tmpl:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTemplate(tt.tmpl)
			if tt.wantErr && err == nil {
				t.Errorf("ParseTemplate(%q) expected error, got none", tt.tmpl)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ParseTemplate(%q) unexpected error: %v", tt.tmpl, err)
			}
		})
	}
}

func TestParseTemplate_ErrorType(t *testing.T) {
	_, err := ParseTemplate("https://api.example.com/stations")
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *ConfigError, got %T: %v", err, err)
	}
	if ce.Template != "https://api.example.com/stations" {
		t.Errorf("ConfigError.Template = %q", ce.Template)
	}
}

func TestTemplate_Build(t *testing.T) {
	tmpl, err := ParseTemplate("https://api.example.com/stations/{}/availability")
	if err != nil {
		t.Fatalf("ParseTemplate failed: %v", err)
	}

	got := tmpl.Build("NL-FAST-1013")
	want := "https://api.example.com/stations/NL-FAST-1013/availability"
	if got != want {
		t.Errorf("Build = %q, want %q", got, want)
	}
}

func TestBuilder_RoundTrip(t *testing.T) {
	tmpl, err := ParseTemplate("https://api.example.com/stations/{}/availability")
	if err != nil {
		t.Fatalf("ParseTemplate failed: %v", err)
	}

	identifiers := []string{"st-1", "st-2", "st-3"}
	b := NewBuilder(tmpl, identifiers)

	for _, id := range identifiers {
		url, ok := b.URL(id)
		if !ok {
			t.Fatalf("URL(%q) missing", id)
		}

		// Repeated lookups return the identical cached string.
		again, _ := b.URL(id)
		if again != url {
			t.Errorf("URL(%q) unstable: %q then %q", id, url, again)
		}

		back, ok := b.Identifier(url)
		if !ok {
			t.Fatalf("Identifier(%q) missing", url)
		}
		if back != id {
			t.Errorf("Identifier(URL(%q)) = %q, want %q", id, back, id)
		}
	}
}

func TestBuilder_UnknownLookups(t *testing.T) {
	tmpl, err := ParseTemplate("https://api.example.com/{}")
	if err != nil {
		t.Fatalf("ParseTemplate failed: %v", err)
	}
	b := NewBuilder(tmpl, []string{"known"})

	if _, ok := b.URL("unknown"); ok {
		t.Error("URL for unknown identifier should report missing")
	}
	if _, ok := b.Identifier("https://api.example.com/unknown"); ok {
		t.Error("Identifier for unknown URL should report missing")
	}
}
