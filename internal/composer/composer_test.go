package composer

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/BerylCAtieno/exam-helper-api/internal/models"
)

func TestComposeRejectsEmptyInput(t *testing.T) {
	for _, question := range []string{"", "   ", "\n\t "} {
		if _, err := Compose(question, nil); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Compose(%q, nil) error = %v, want ErrInvalidInput", question, err)
		}
	}
}

func TestComposeQuestionOnly(t *testing.T) {
	prompt, err := Compose("  What is 2+2?  \n", nil)
	if err != nil {
		t.Fatalf("Compose returned error: %v", err)
	}

	if want := "QUESTION/TASK:\nWhat is 2+2?\n"; prompt != want {
		t.Errorf("prompt = %q, want %q", prompt, want)
	}
}

func TestComposeFilesOnly(t *testing.T) {
	files := []models.FileExcerpt{{Name: "a.csv", MimeType: "text/csv", Content: "x,y"}}

	prompt, err := Compose("", files)
	if err != nil {
		t.Fatalf("Compose returned error: %v", err)
	}

	want := "QUESTION/TASK:\n\n\n\nFile: a.csv\nType: text/csv\nContent:\nx,y"
	if prompt != want {
		t.Errorf("prompt = %q, want %q", prompt, want)
	}
}

func TestComposePreservesFileOrder(t *testing.T) {
	files := []models.FileExcerpt{
		{Name: "A.txt", MimeType: "text/plain", Content: "alpha"},
		{Name: "B.txt", MimeType: "text/plain", Content: "beta"},
	}

	prompt, err := Compose("sum these", files)
	if err != nil {
		t.Fatalf("Compose returned error: %v", err)
	}

	want := "QUESTION/TASK:\nsum these\n" +
		"\n\nFile: A.txt\nType: text/plain\nContent:\nalpha" +
		"\n" +
		"\n\nFile: B.txt\nType: text/plain\nContent:\nbeta"
	if prompt != want {
		t.Fatalf("prompt = %q, want %q", prompt, want)
	}

	a := strings.Index(prompt, "File: A.txt")
	b := strings.Index(prompt, "File: B.txt")
	if a < 0 || b < 0 || a >= b {
		t.Errorf("expected A block before B block, got indexes %d and %d", a, b)
	}
}

func TestNewExcerptTruncatesText(t *testing.T) {
	long := strings.Repeat("é", MaxExcerptChars+500)

	excerpt := NewExcerpt("big.txt", "text/plain", []byte(long))

	if n := utf8.RuneCountInString(excerpt.Content); n != MaxExcerptChars {
		t.Errorf("excerpt has %d characters, want %d", n, MaxExcerptChars)
	}
	if !strings.HasPrefix(long, excerpt.Content) {
		t.Error("excerpt is not a prefix of the decoded content")
	}
	if again := NewExcerpt("big.txt", "text/plain", []byte(long)); again != excerpt {
		t.Error("excerpt differs between identical submissions")
	}
}

func TestNewExcerptKeepsShortText(t *testing.T) {
	excerpt := NewExcerpt("data.json", "application/json", []byte(`{"a":1}`))

	if excerpt.Content != `{"a":1}` {
		t.Errorf("Content = %q", excerpt.Content)
	}
	if excerpt.Name != "data.json" || excerpt.MimeType != "application/json" {
		t.Errorf("unexpected name/type: %q %q", excerpt.Name, excerpt.MimeType)
	}
}

func TestNewExcerptPlaceholderForBinary(t *testing.T) {
	want := "[File photo.png (image/png), base64 omitted]"

	for _, data := range [][]byte{nil, []byte("actually text"), bytes.Repeat([]byte{0x89, 0x50}, 1000)} {
		if got := NewExcerpt("photo.png", "image/png", data).Content; got != want {
			t.Errorf("Content = %q, want %q", got, want)
		}
	}

	if got := NewExcerpt("blob", "", []byte("x")).Content; got != "[File blob (), base64 omitted]" {
		t.Errorf("untyped file Content = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello", 2, "he"},
		{"日本語", 2, "日本"},
		{"", 3, ""},
		{"abc", 0, ""},
	}

	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
