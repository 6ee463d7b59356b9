package models

import (
	"errors"
	"testing"
	"time"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		input   string
		want    Color
		wantErr bool
	}{
		{input: "Brown", want: ColorBrown},
		{input: "light", want: ColorLight},
		{input: " GREEN ", want: ColorGreen},
		{input: "purple", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseColor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestColorHex(t *testing.T) {
	if ColorBrown.Hex() != "#5D4037" {
		t.Errorf("ColorBrown.Hex() = %q", ColorBrown.Hex())
	}
	if Color("Blue").Valid() {
		t.Error("Color(Blue).Valid() = true")
	}
}

func TestBristol(t *testing.T) {
	if got := Bristol(4); got.Label != "Perfect Snake" {
		t.Errorf("Bristol(4).Label = %q, want Perfect Snake", got.Label)
	}
	if got := Bristol(9); got.Emoji != "💩" || got.Label != "" {
		t.Errorf("Bristol(9) = %+v, want fallback", got)
	}
	if len(BristolScale()) != MaxTexture {
		t.Errorf("BristolScale() len = %d, want %d", len(BristolScale()), MaxTexture)
	}
}

func TestDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "00:00"},
		{59, "00:59"},
		{61, "01:01"},
		{3725, "62:05"},
		{-4, "00:00"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.seconds); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{input: "", want: 0},
		{input: "02:30", want: 150},
		{input: "95", want: 95},
		{input: "1:75", wantErr: true},
		{input: "-3", wantErr: true},
		{input: "abc", wantErr: true},
		{input: "5abc", wantErr: true},
		{input: "1:2:3", wantErr: true},
		{input: "1:05xyz", wantErr: true},
		{input: "3.7", wantErr: true},
		{input: "1e3", wantErr: true},
		{input: ":30", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDuration(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDuration() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseDuration() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLog_Validate(t *testing.T) {
	valid := Log{
		ID:           "l1",
		UserID:       "u1",
		Date:         time.Now(),
		Score:        88,
		TextureClass: 4,
		Effort:       2,
		Color:        ColorBrown,
	}

	tests := []struct {
		name    string
		mutate  func(l *Log)
		wantErr bool
	}{
		{name: "valid", mutate: func(l *Log) {}},
		{name: "missing user", mutate: func(l *Log) { l.UserID = "" }, wantErr: true},
		{name: "texture too high", mutate: func(l *Log) { l.TextureClass = 8 }, wantErr: true},
		{name: "effort zero", mutate: func(l *Log) { l.Effort = 0 }, wantErr: true},
		{name: "bad color", mutate: func(l *Log) { l.Color = "Blue" }, wantErr: true},
		{name: "score over 100", mutate: func(l *Log) { l.Score = 101 }, wantErr: true},
		{name: "negative duration", mutate: func(l *Log) { l.DurationSeconds = -1 }, wantErr: true},
		{name: "zero date", mutate: func(l *Log) { l.Date = time.Time{} }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := valid
			tt.mutate(&l)
			if err := l.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNotification_Transition(t *testing.T) {
	tests := []struct {
		name    string
		from    NotificationStatus
		to      NotificationStatus
		wantErr bool
	}{
		{name: "pending to accepted", from: StatusPending, to: StatusAccepted},
		{name: "pending to declined", from: StatusPending, to: StatusDeclined},
		{name: "accepted to declined", from: StatusAccepted, to: StatusDeclined, wantErr: true},
		{name: "declined to accepted", from: StatusDeclined, to: StatusAccepted, wantErr: true},
		{name: "pending to pending", from: StatusPending, to: StatusPending, wantErr: true},
		{name: "accepted to pending", from: StatusAccepted, to: StatusPending, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := Notification{ID: "n1", Status: tt.from}
			err := n.Transition(tt.to)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Transition() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTransition) {
					t.Errorf("Transition() error = %v, want ErrInvalidTransition", err)
				}
				if n.Status != tt.from {
					t.Errorf("status changed to %s on failed transition", n.Status)
				}
				return
			}
			if n.Status != tt.to {
				t.Errorf("Status = %s, want %s", n.Status, tt.to)
			}
		})
	}
}

func TestUser_AddFriend(t *testing.T) {
	u := User{ID: "me"}

	if !u.AddFriend("f1") {
		t.Error("AddFriend(f1) = false, want true")
	}
	if u.AddFriend("f1") {
		t.Error("AddFriend(f1) twice = true, want false")
	}
	if u.AddFriend("me") {
		t.Error("AddFriend(self) = true, want false")
	}
	if u.AddFriend("") {
		t.Error("AddFriend(empty) = true, want false")
	}
	if len(u.Friends) != 1 || !u.IsFriend("f1") {
		t.Errorf("Friends = %v, want [f1]", u.Friends)
	}
}
