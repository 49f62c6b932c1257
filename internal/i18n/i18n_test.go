package i18n

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestPrinterDefaultsToSwedish(t *testing.T) {
	c := MustLoad()

	tests := []struct {
		name   string
		locale string
		want   string
	}{
		{name: "empty", locale: "", want: "Du är offline. Kontrollera din internetanslutning."},
		{name: "swedish", locale: "sv-SE", want: "Du är offline. Kontrollera din internetanslutning."},
		{name: "english", locale: "en", want: "You are offline. Check your internet connection."},
		{name: "accept language", locale: "en-GB,en;q=0.8", want: "You are offline. Check your internet connection."},
		{name: "unknown falls back", locale: "de-DE", want: "Du är offline. Kontrollera din internetanslutning."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Printer(tt.locale).Sprintf("error.offline"); got != tt.want {
				t.Fatalf("Printer(%q) = %q, want %q", tt.locale, got, tt.want)
			}
		})
	}
}

func TestNotificationMessageFormatsArguments(t *testing.T) {
	p := MustLoad().Printer(DefaultLocale)
	got := p.Sprintf("notify.message", "Anna", "anna@example.se", "30")
	want := "Ny Beta Användare!\n\nNamn: Anna\nE-post: anna@example.se\nÅlder: 30"
	if got != want {
		t.Fatalf("notify.message = %q, want %q", got, want)
	}
}

func TestEveryLocaleDefinesEveryKey(t *testing.T) {
	c := MustLoad()
	sv := c.Printer("sv-SE")
	en := c.Printer("en")
	for _, key := range c.Keys() {
		if key == "header.title" {
			continue
		}
		if strings.Contains(key, "%") {
			t.Fatalf("key %q must not contain format verbs", key)
		}
		if sv.Sprintf(key, 14, 50) == en.Sprintf(key, 14, 50) {
			t.Fatalf("key %q is not translated for en", key)
		}
	}
}

func TestLoadFSRejectsMismatchedLocale(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/sv-SE.yaml": {Data: []byte("locale: en\nmessages:\n  a: b\n")},
	}
	if _, err := LoadFS(fsys); err == nil {
		t.Fatalf("expected mismatched locale to fail")
	}
}

func TestLoadFSRequiresDefaultLocale(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/en.yaml": {Data: []byte("locale: en\nmessages:\n  a: b\n")},
	}
	if _, err := LoadFS(fsys); err == nil || !strings.Contains(err.Error(), DefaultLocale) {
		t.Fatalf("expected missing default locale error, got %v", err)
	}
}

func TestLoadFSRejectsUnknownKeys(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/sv-SE.yaml": {Data: []byte("locale: sv-SE\nmessages:\n  a: b\n")},
		"locales/en.yaml":    {Data: []byte("locale: en\nmessages:\n  a: b\n  extra: c\n")},
	}
	if _, err := LoadFS(fsys); err == nil || !strings.Contains(err.Error(), "extra") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestSupported(t *testing.T) {
	c := MustLoad()
	if !c.Supported("sv-SE") || !c.Supported("en") {
		t.Fatalf("expected sv-SE and en to be supported")
	}
	if c.Supported("ja") {
		t.Fatalf("expected ja to be unsupported")
	}
	if c.Supported("not a tag!") {
		t.Fatalf("expected malformed tag to be unsupported")
	}
}
