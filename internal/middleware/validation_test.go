package middleware

import "testing"

func TestValidateContentID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantID  int64
		wantErr bool
	}{
		{"valid id", "42", 42, false},
		{"valid id with spaces", "  7 ", 7, false},
		{"zero", "0", 0, true},
		{"negative", "-3", 0, true},
		{"non-numeric", "abc", 0, true},
		{"mixed", "12abc", 0, true},
		{"empty", "", 0, true},
		{"float", "1.5", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, msg := ValidateContentID(tt.input)
			if tt.wantErr && msg == "" {
				t.Errorf("ValidateContentID(%q) accepted, want rejection", tt.input)
			}
			if !tt.wantErr {
				if msg != "" {
					t.Errorf("ValidateContentID(%q) rejected: %s", tt.input, msg)
				}
				if id != tt.wantID {
					t.Errorf("ValidateContentID(%q) = %d, want %d", tt.input, id, tt.wantID)
				}
			}
		})
	}
}

func TestValidateDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid date", "2024-01-05", false},
		{"valid leap day", "2024-02-29", false},
		{"wrong format slashes", "2024/01/05", true},
		{"missing leading zeros", "2024-1-5", true},
		{"not a calendar date", "2024-13-45", true},
		{"non-leap february 29", "2023-02-29", true},
		{"empty", "", true},
		{"garbage", "yesterday", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, msg := ValidateDate(tt.input)
			if tt.wantErr && msg == "" {
				t.Errorf("ValidateDate(%q) accepted, want rejection", tt.input)
			}
			if !tt.wantErr && msg != "" {
				t.Errorf("ValidateDate(%q) rejected: %s", tt.input, msg)
			}
		})
	}
}

func TestValidateCategory(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"simple", "math", "math", false},
		{"uppercase normalized", "Physics", "physics", false},
		{"with dash", "gluten-free", "gluten-free", false},
		{"empty allowed", "", "", false},
		{"all sentinel", "all", "all", false},
		{"spaces inside", "no spaces", "", true},
		{"special chars", "math;drop", "", true},
		{"too long", "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, msg := ValidateCategory(tt.input)
			if tt.wantErr && msg == "" {
				t.Errorf("ValidateCategory(%q) accepted, want rejection", tt.input)
			}
			if !tt.wantErr {
				if msg != "" {
					t.Errorf("ValidateCategory(%q) rejected: %s", tt.input, msg)
				}
				if got != tt.want {
					t.Errorf("ValidateCategory(%q) = %q, want %q", tt.input, got, tt.want)
				}
			}
		})
	}
}

func TestValidateKind(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"fact", "fact", false},
		{"facts", "fact", false},
		{"Joke", "joke", false},
		{"recipes", "recipe", false},
		{"video", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		kind, msg := ValidateKind(tt.input)
		if tt.wantErr && msg == "" {
			t.Errorf("ValidateKind(%q) accepted, want rejection", tt.input)
		}
		if !tt.wantErr {
			if msg != "" {
				t.Errorf("ValidateKind(%q) rejected: %s", tt.input, msg)
			}
			if string(kind) != tt.want {
				t.Errorf("ValidateKind(%q) = %q, want %q", tt.input, kind, tt.want)
			}
		}
	}
}
