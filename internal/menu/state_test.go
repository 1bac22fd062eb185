package menu

import "testing"

func TestTokenRoundTrip(t *testing.T) {
	tests := []struct {
		tok  Token
		want string
	}{
		{Token{Action: ActionTop}, "help|top"},
		{Token{Action: ActionPick}, "help|pick"},
		{Token{Action: ActionPage, Module: "gameplay", Page: 0}, "help|page|gameplay|0"},
		{Token{Action: ActionPage, Module: "moderation", Page: 7}, "help|page|moderation|7"},
		{Token{Action: ActionPage, Module: "fun", Page: -1}, "help|page|fun|-1"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			encoded := tt.tok.Encode()
			if encoded != tt.want {
				t.Fatalf("Encode() = %q, want %q", encoded, tt.want)
			}
			decoded, err := DecodeToken(encoded)
			if err != nil {
				t.Fatalf("DecodeToken: %v", err)
			}
			if decoded != tt.tok {
				t.Errorf("round trip = %+v, want %+v", decoded, tt.tok)
			}
		})
	}
}

func TestDecodeTokenMalformed(t *testing.T) {
	bad := []string{
		"",
		"help",
		"nothelp|top",
		"help|bogus",
		"help|page",
		"help|page|gameplay",
		"help|page|gameplay|first",
		"help|page|gameplay|2|extra",
	}
	for _, id := range bad {
		if _, err := DecodeToken(id); err == nil {
			t.Errorf("DecodeToken(%q) = nil error, want failure", id)
		}
	}
}

func TestIsMenuCustomID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"help|top", true},
		{"help|page|core|2", true},
		{"helper|top", false},
		{"media_next|3", false},
		{"help", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsMenuCustomID(tt.id); got != tt.want {
			t.Errorf("IsMenuCustomID(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}
