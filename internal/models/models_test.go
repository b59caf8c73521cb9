package models

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"
)

func strPtr(s string) *string {
	return &s
}

func TestValidateBirthdayInput(t *testing.T) {
	tests := []struct {
		name  string
		input *BirthdayInput
		want  []string
	}{
		{
			name: "valid payload",
			input: &BirthdayInput{
				Name:     strPtr("Ada"),
				Birthday: strPtr("1990-01-01"),
				Idea:     strPtr("Book"),
			},
			want: nil,
		},
		{
			name:  "empty payload reports every required field",
			input: &BirthdayInput{},
			want:  []string{"Missing name", "Missing birthday", "Missing 'idea'"},
		},
		{
			name: "whitespace only counts as missing",
			input: &BirthdayInput{
				Name:     strPtr("   "),
				Birthday: strPtr("1990-01-01"),
				Idea:     strPtr("\t"),
			},
			want: []string{"Missing name", "Missing 'idea'"},
		},
		{
			name: "bad date format",
			input: &BirthdayInput{
				Name:     strPtr("Ada"),
				Birthday: strPtr("01/01/1990"),
				Idea:     strPtr("Book"),
			},
			want: []string{"Invalid birthday, expected YYYY-MM-DD"},
		},
		{
			name: "impossible date",
			input: &BirthdayInput{
				Name:     strPtr("Ada"),
				Birthday: strPtr("1990-02-30"),
				Idea:     strPtr("Book"),
			},
			want: []string{"Invalid birthday, expected YYYY-MM-DD"},
		},
		{
			name: "length limits",
			input: &BirthdayInput{
				Name:     strPtr(strings.Repeat("n", 201)),
				Birthday: strPtr("1990-01-01"),
				Idea:     strPtr(strings.Repeat("i", 201)),
				Link:     strPtr(strings.Repeat("l", 401)),
			},
			want: []string{"Name too long", "Idea too long", "link too long"},
		},
		{
			name: "link checked even when other fields fail",
			input: &BirthdayInput{
				Link: strPtr(strings.Repeat("l", 401)),
			},
			want: []string{"Missing name", "Missing birthday", "Missing 'idea'", "link too long"},
		},
		{
			name: "link length counts surrounding spaces",
			input: &BirthdayInput{
				Name:     strPtr("Ada"),
				Birthday: strPtr("1990-01-01"),
				Idea:     strPtr("Book"),
				Link:     strPtr(" " + strings.Repeat("l", 400)),
			},
			want: []string{"link too long"},
		},
		{
			name: "exact limits pass",
			input: &BirthdayInput{
				Name:     strPtr(strings.Repeat("n", 200)),
				Birthday: strPtr("2024-02-29"),
				Idea:     strPtr(strings.Repeat("i", 200)),
				Link:     strPtr(strings.Repeat("l", 400)),
			},
			want: nil,
		},
		{
			name: "limits count characters not bytes",
			input: &BirthdayInput{
				Name:     strPtr(strings.Repeat("é", 200)),
				Birthday: strPtr("1990-01-01"),
				Idea:     strPtr("Book"),
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateBirthdayInput(tt.input)
			if !reflect.DeepEqual(result.Errors, tt.want) {
				t.Errorf("Errors = %v, want %v", result.Errors, tt.want)
			}
			if result.Valid() != (len(tt.want) == 0) {
				t.Errorf("Valid() = %v, want %v", result.Valid(), len(tt.want) == 0)
			}
		})
	}
}

func TestValidateBirthdayInput_ParsedDate(t *testing.T) {
	result := ValidateBirthdayInput(&BirthdayInput{Birthday: strPtr(" 1990-01-02 ")})
	if result.Valid() {
		t.Fatal("expected errors for missing name and idea")
	}
	if result.Birthday == nil {
		t.Fatal("expected parsed birthday even when other fields fail")
	}
	if got := result.Birthday.String(); got != "1990-01-02" {
		t.Errorf("Birthday = %s, want 1990-01-02", got)
	}

	var ve *ValidationError
	if err := result.Err(); err == nil || !IsValidationError(err) {
		t.Errorf("Err() = %v, want *ValidationError", err)
	} else {
		ve = err.(*ValidationError)
		if len(ve.Messages) != 2 {
			t.Errorf("Messages = %v, want 2 entries", ve.Messages)
		}
	}
}

func TestValidationResult_RecordTrimsFields(t *testing.T) {
	result := ValidateBirthdayInput(&BirthdayInput{
		Name:     strPtr("  Ada  "),
		Birthday: strPtr("1990-01-01"),
		Idea:     strPtr(" Book "),
	})
	record := result.Record()
	if record == nil {
		t.Fatalf("Record() = nil, errors: %v", result.Errors)
	}
	if record.Name != "Ada" || record.Idea != "Book" || record.Link != "" {
		t.Errorf("Record() = %+v, want trimmed fields and empty link", record)
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	b := Birthday{ID: 7, Name: "Ada", Birthday: NewDate(1990, time.January, 1), Idea: "Book"}
	data, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(data), `"birthday":"1990-01-01"`) {
		t.Errorf("Marshal = %s, want birthday rendered as YYYY-MM-DD", data)
	}
	if !strings.Contains(string(data), `"link":""`) {
		t.Errorf("Marshal = %s, want empty link present", data)
	}
}

func TestDate_Scan(t *testing.T) {
	tests := []struct {
		name string
		src  interface{}
		want string
	}{
		{"time value", time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), "1990-01-01"},
		{"bytes", []byte("1991-02-03"), "1991-02-03"},
		{"datetime string", "1992-03-04 00:00:00", "1992-03-04"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			if err := d.Scan(tt.src); err != nil {
				t.Fatalf("Scan() failed: %v", err)
			}
			if d.String() != tt.want {
				t.Errorf("Scan() = %s, want %s", d, tt.want)
			}
		})
	}

	var d Date
	if err := d.Scan(42); err == nil {
		t.Error("Scan(int) should fail")
	}
}

func TestSeedBirthday(t *testing.T) {
	seed := SeedBirthday()
	result := ValidateBirthdayInput(&BirthdayInput{
		Name:     &seed.Name,
		Birthday: strPtr(seed.Birthday.String()),
		Idea:     &seed.Idea,
		Link:     &seed.Link,
	})
	if !result.Valid() {
		t.Errorf("seed record should pass validation: %v", result.Errors)
	}
}

func TestValidationResult_RecordKeepsLinkAsSent(t *testing.T) {
	result := ValidateBirthdayInput(&BirthdayInput{
		Name:     strPtr("Ada"),
		Birthday: strPtr("1990-01-01"),
		Idea:     strPtr("Book"),
		Link:     strPtr("  https://example.com/book  "),
	})
	record := result.Record()
	if record == nil {
		t.Fatalf("Record() = nil, errors: %v", result.Errors)
	}
	if record.Link != "  https://example.com/book  " {
		t.Errorf("Link = %q, want it stored unmodified", record.Link)
	}
}
