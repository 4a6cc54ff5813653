// Package composer turns a question and a set of uploaded files into the
// single prompt string sent to the completion proxy.
package composer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BerylCAtieno/exam-helper-api/internal/extractor"
	"github.com/BerylCAtieno/exam-helper-api/internal/models"
)

// MaxExcerptChars bounds how much of a text file is inlined into the prompt.
const MaxExcerptChars = 100000

// ErrInvalidInput is returned when there is neither a question nor a file.
var ErrInvalidInput = errors.New("Please enter a question and/or upload files.")

// NewExcerpt builds the excerpt for one file. Text-like files contribute the
// first MaxExcerptChars characters of their decoded content; everything else
// is replaced by a placeholder naming the file.
func NewExcerpt(name, mimeType string, data []byte) models.FileExcerpt {
	excerpt := models.FileExcerpt{Name: name, MimeType: mimeType}

	if extractor.IsText(mimeType) {
		excerpt.Content = truncate(extractor.DecodeText(data), MaxExcerptChars)
	} else {
		excerpt.Content = fmt.Sprintf("[File %s (%s), base64 omitted]", name, mimeType)
	}

	return excerpt
}

// Compose assembles the prompt. Files appear in the order given.
func Compose(question string, files []models.FileExcerpt) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" && len(files) == 0 {
		return "", ErrInvalidInput
	}

	blocks := make([]string, 0, len(files))
	for _, f := range files {
		blocks = append(blocks, fmt.Sprintf("\n\nFile: %s\nType: %s\nContent:\n%s", f.Name, f.MimeType, f.Content))
	}

	var b strings.Builder
	b.WriteString("QUESTION/TASK:\n")
	b.WriteString(question)
	b.WriteString("\n")
	b.WriteString(strings.Join(blocks, "\n"))

	return b.String(), nil
}

// truncate keeps the first n characters of s.
func truncate(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
