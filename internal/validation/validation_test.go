package validation

import (
	"strings"
	"testing"
)

func TestHabitTitle(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		wantErr bool
	}{
		{"valid", "Drink water", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"exactly 30 chars", strings.Repeat("a", 30), false},
		{"31 chars", strings.Repeat("a", 31), true},
		{"30 emoji counted as runes", strings.Repeat("🔥", 30), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := HabitTitle(tt.title)
			if (err != nil) != tt.wantErr {
				t.Errorf("HabitTitle(%q) error = %v, wantErr %v", tt.title, err, tt.wantErr)
			}
		})
	}
}

func TestHabitEmoji(t *testing.T) {
	if err := HabitEmoji("🔥"); err != nil {
		t.Errorf("HabitEmoji(🔥) error = %v", err)
	}
	if err := HabitEmoji(""); err == nil {
		t.Error("HabitEmoji(\"\") should fail")
	}
}

func TestHabitLimit(t *testing.T) {
	tests := []struct {
		count   int
		wantErr bool
	}{
		{0, false},
		{3, false},
		{4, true},
		{5, true},
	}
	for _, tt := range tests {
		err := HabitLimit(tt.count)
		if (err != nil) != tt.wantErr {
			t.Errorf("HabitLimit(%d) error = %v, wantErr %v", tt.count, err, tt.wantErr)
		}
	}
}

func TestEmail(t *testing.T) {
	tests := []struct {
		email   string
		wantErr bool
	}{
		{"a@b.com", false},
		{"user+tag@example.org", false},
		{"", true},
		{"no-at-sign", true},
		{"@leading.at", true},
		{"trailing@", true},
		{"has space@b.com", true},
	}
	for _, tt := range tests {
		err := Email(tt.email)
		if (err != nil) != tt.wantErr {
			t.Errorf("Email(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
		}
	}
}

func TestPassword(t *testing.T) {
	if err := Password("12345"); err == nil {
		t.Error("5-char password should fail")
	}
	if err := Password("123456"); err != nil {
		t.Errorf("6-char password error = %v", err)
	}
}

func TestPasswordConfirmation(t *testing.T) {
	if err := PasswordConfirmation("abc123", "abc123"); err != nil {
		t.Errorf("matching confirmation error = %v", err)
	}
	if err := PasswordConfirmation("abc123", "abc124"); err == nil {
		t.Error("mismatched confirmation should fail")
	}
}

func TestReminderTime(t *testing.T) {
	tests := []struct {
		name    string
		hour    int
		minute  int
		wantErr bool
	}{
		{"midnight", 0, 0, false},
		{"default evening", 20, 0, false},
		{"end of day", 23, 59, false},
		{"odd minute", 9, 37, false},
		{"hour too high", 24, 0, true},
		{"negative hour", -1, 0, true},
		{"minute too high", 12, 60, true},
		{"negative minute", 12, -5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ReminderTime(tt.hour, tt.minute)
			if (err != nil) != tt.wantErr {
				t.Errorf("ReminderTime(%d, %d) error = %v, wantErr %v", tt.hour, tt.minute, err, tt.wantErr)
			}
		})
	}
}
