package extractor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ArthurLoboLobo/projeto-estudos/pkg/llm"
)

const pageExtractionPrompt = `You are extracting content from an academic document page.

Extract ALL text from this page exactly as shown, preserving the original language.

For any mathematical formulas, equations, chemical formulas, or scientific notation:
- Represent them in LaTeX format using $...$ for inline math and $$...$$ for block equations
- Preserve the exact meaning and structure of the formulas

For tables:
- Format them clearly with proper alignment

For bullet points and numbered lists:
- Preserve the structure

IMPORTANT: Keep the text in its original language (Portuguese, English, Spanish, etc.). Do not translate.

Output the extracted content in plain text with LaTeX formulas embedded where appropriate.
Do not add any commentary or explanations - just extract the content as-is.`

// ProcessedDocument is the result of extracting a PDF.
type ProcessedDocument struct {
	ExtractedText string
	PageCount     int
}

// PdfExtractor renders PDF pages with poppler's pdftoppm and transcribes
// each page through a vision model.
type PdfExtractor struct {
	vision    llm.VisionProvider
	renderDPI int
}

func NewPdfExtractor(vision llm.VisionProvider, renderDPI int) *PdfExtractor {
	if renderDPI <= 0 {
		renderDPI = 150
	}
	return &PdfExtractor{
		vision:    vision,
		renderDPI: renderDPI,
	}
}

// Process writes the PDF bytes to a temp dir, renders every page to PNG
// and runs vision extraction page by page.
func (e *PdfExtractor) Process(ctx context.Context, pdfData []byte) (*ProcessedDocument, error) {
	tempDir, err := os.MkdirTemp("", "pdf-extract-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	pdfPath := filepath.Join(tempDir, "input.pdf")
	if err := os.WriteFile(pdfPath, pdfData, 0o600); err != nil {
		return nil, fmt.Errorf("write temp pdf: %w", err)
	}

	outputPrefix := filepath.Join(tempDir, "page")
	cmd := exec.CommandContext(ctx, "pdftoppm",
		"-png",
		"-r", fmt.Sprintf("%d", e.renderDPI),
		pdfPath,
		outputPrefix,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("pdftoppm failed: %w: %s", err, string(out))
	}

	pageFiles, err := filepath.Glob(filepath.Join(tempDir, "page*.png"))
	if err != nil {
		return nil, fmt.Errorf("list rendered pages: %w", err)
	}
	// pdftoppm zero-pads page numbers, so lexical order is page order
	sort.Strings(pageFiles)

	if len(pageFiles) == 0 {
		return nil, fmt.Errorf("no pages extracted from PDF")
	}

	allText := make([]string, 0, len(pageFiles))
	for i, pagePath := range pageFiles {
		imageData, err := os.ReadFile(pagePath)
		if err != nil {
			return nil, fmt.Errorf("read page image %d: %w", i+1, err)
		}

		pageText, err := e.vision.ExtractImage(ctx, imageData, "image/png", pageExtractionPrompt, llm.WithMaxTokens(4096))
		if err != nil {
			return nil, fmt.Errorf("extract page %d: %w", i+1, err)
		}

		allText = append(allText, fmt.Sprintf("--- Page %d ---\n%s", i+1, pageText))
	}

	return &ProcessedDocument{
		ExtractedText: strings.Join(allText, "\n\n"),
		PageCount:     len(pageFiles),
	}, nil
}
