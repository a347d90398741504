package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"groomify-backend/utils"
)

// LookbookService renders a user's saved outfits as a printable
// lookbook. HTML rendering and PDF printing are separate steps: the
// PDF path drives headless Chrome at the HTML render endpoint.
type LookbookService struct {
	suggestions *SuggestionService
	baseURL     string
}

func NewLookbookService(suggestions *SuggestionService, baseURL string) *LookbookService {
	return &LookbookService{
		suggestions: suggestions,
		baseURL:     baseURL,
	}
}

// detectChromePath detects the path to Chrome/Chromium executable
// Checks CHROME_PATH env var first, then common installation paths
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

type lookbookDetail struct {
	Label string
	Value string
}

type lookbookOutfit struct {
	Number  int
	Details []lookbookDetail
}

// RenderHTML renders the lookbook HTML for a user's saved suggestions.
func (s *LookbookService) RenderHTML(ctx context.Context, userID string) (string, error) {
	saved, err := s.suggestions.LoadSaved(ctx, userID)
	if err != nil {
		return "", err
	}

	outfits := make([]lookbookOutfit, 0, len(saved))
	for i, suggestion := range saved {
		visible := VisibleAttributes(suggestion.Attributes)
		keys := make([]string, 0, len(visible))
		for k := range visible {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		details := make([]lookbookDetail, 0, len(keys))
		for _, k := range keys {
			details = append(details, lookbookDetail{
				Label: utils.PrettifyKey(k),
				Value: visible[k],
			})
		}
		outfits = append(outfits, lookbookOutfit{Number: i + 1, Details: details})
	}

	templateData := struct {
		Count       int
		GeneratedAt string
		Outfits     []lookbookOutfit
	}{
		Count:       len(outfits),
		GeneratedAt: time.Now().Format("January 2, 2006"),
		Outfits:     outfits,
	}

	templatePath := filepath.Join("templates", "lookbook.html")
	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return "", fmt.Errorf("failed to parse lookbook template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, templateData); err != nil {
		return "", fmt.Errorf("failed to execute lookbook template: %w", err)
	}
	return buf.String(), nil
}

// GeneratePDF prints the lookbook render page to PDF using chromedp.
func (s *LookbookService) GeneratePDF(ctx context.Context, userID string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	chromePath := detectChromePath()
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
	)
	if chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	renderURL := fmt.Sprintf("%s/suggestions/lookbook/render?user_id=%s", s.baseURL, url.QueryEscape(userID))

	var pdfBuf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate lookbook PDF: %w", err)
	}
	return pdfBuf, nil
}
