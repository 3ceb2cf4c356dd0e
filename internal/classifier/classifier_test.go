package classifier

import (
	"strings"
	"testing"
)

func TestIsGame(t *testing.T) {
	c := New()

	tests := []struct {
		name  string
		title string
		want  bool
	}{
		{name: "Empty title", title: "", want: false},
		{name: "Steam window", title: "Steam - CS:GO", want: true},
		{name: "Dota", title: "Dota 2", want: true},
		{name: "Valorant", title: "VALORANT", want: true},
		{name: "Launcher", title: "Battle.net Login", want: true},
		{name: "Editor", title: "main.go - Visual Studio Code", want: false},
		{name: "Terminal", title: "bash - konsole", want: false},
		{name: "Substring match inside word", title: "wowzers.txt - gedit", want: true},
		{name: "Keyword mid-title", title: "My Minecraft Let's Play Notes", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.IsGame(tt.title); got != tt.want {
				t.Errorf("IsGame(%q) = %v, want %v", tt.title, got, tt.want)
			}
		})
	}
}

func TestIsGameCaseInsensitive(t *testing.T) {
	c := New()

	titles := []string{
		"Steam - Counter-Strike",
		"STEAM BIG PICTURE",
		"Elden Ring",
		"fortnite",
		"Mozilla Firefox",
		"Document1 - Word",
		"",
	}

	for _, title := range titles {
		base := c.IsGame(title)
		if got := c.IsGame(strings.ToLower(title)); got != base {
			t.Errorf("IsGame(lower(%q)) = %v, want %v", title, got, base)
		}
		if got := c.IsGame(strings.ToUpper(title)); got != base {
			t.Errorf("IsGame(upper(%q)) = %v, want %v", title, got, base)
		}
	}
}

func TestExtraKeywords(t *testing.T) {
	c := New("factorio", " Rimworld ", "")

	if !c.IsGame("Factorio 1.1") {
		t.Error("extra keyword not matched")
	}
	if !c.IsGame("RIMWORLD by Ludeon Studios") {
		t.Error("extra keyword should be matched case-insensitively")
	}
	if c.IsGame("Some Other Window") {
		t.Error("unrelated title matched")
	}
}

func TestDefaultKeywordsCovered(t *testing.T) {
	c := New()
	for _, kw := range DefaultKeywords {
		if !c.IsGame("prefix " + kw + " suffix") {
			t.Errorf("default keyword %q not matched", kw)
		}
	}
}
