package utils

import (
	"strings"
	"testing"
)

func TestSplitText(t *testing.T) {
	t.Run("short text is a single chunk", func(t *testing.T) {
		chunks := SplitText("hello world", 100, 10)
		if len(chunks) != 1 || chunks[0] != "hello world" {
			t.Errorf("chunks = %v", chunks)
		}
	})

	t.Run("long text overlaps at boundaries", func(t *testing.T) {
		text := strings.Repeat("abcdefghij", 10)
		chunks := SplitText(text, 40, 10)

		if len(chunks) < 2 {
			t.Fatalf("expected multiple chunks, got %d", len(chunks))
		}
		for i, chunk := range chunks[:len(chunks)-1] {
			if len(chunk) != 40 {
				t.Errorf("chunk %d length = %d, want 40", i, len(chunk))
			}
		}
		// The tail of each chunk reappears at the head of the next.
		for i := 0; i < len(chunks)-1; i++ {
			tail := chunks[i][len(chunks[i])-10:]
			if !strings.HasPrefix(chunks[i+1], tail) {
				t.Errorf("chunk %d does not overlap into chunk %d", i, i+1)
			}
		}
	})

	t.Run("no content is lost", func(t *testing.T) {
		text := strings.Repeat("0123456789", 25)
		chunks := SplitText(text, 60, 15)

		var rebuilt strings.Builder
		step := 60 - 15
		for i, chunk := range chunks {
			if i == len(chunks)-1 {
				rebuilt.WriteString(chunk)
				break
			}
			rebuilt.WriteString(chunk[:step])
		}
		if rebuilt.String() != text {
			t.Error("rebuilding from chunks does not reproduce the input")
		}
	})

	t.Run("overlap larger than chunk size falls back", func(t *testing.T) {
		text := strings.Repeat("x", 50)
		chunks := SplitText(text, 10, 20)
		if len(chunks) != 5 {
			t.Errorf("chunk count = %d, want 5", len(chunks))
		}
	})

	t.Run("multibyte runes are not split", func(t *testing.T) {
		text := strings.Repeat("áéíóú", 20)
		chunks := SplitText(text, 30, 5)
		for i, chunk := range chunks {
			if !strings.HasPrefix("áéíóú", string([]rune(chunk)[:1])) && !strings.Contains("áéíóú", string([]rune(chunk)[:1])) {
				t.Errorf("chunk %d starts mid-rune: %q", i, chunk)
			}
		}
	})
}
