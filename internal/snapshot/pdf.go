package snapshot

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Options controls the headless browser used for printing
type Options struct {
	Timeout time.Duration // whole print, default 60s
	Settle  time.Duration // wait for chart animations, default 2s
	Visible bool          // show the browser window (for debugging)
}

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = 60 * time.Second
	}
	if o.Settle <= 0 {
		o.Settle = 2 * time.Second
	}
	return o
}

// PrintPDF loads a rendered dashboard in headless Chrome and writes it as a PDF
func PrintPDF(ctx context.Context, htmlPath, pdfPath string, o Options) error {
	o = o.withDefaults()

	target, err := FileURL(htmlPath)
	if err != nil {
		return err
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", !o.Visible),
		chromedp.Flag("disable-gpu", true),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, o.Timeout)
	defer cancel()

	var pdf []byte
	if err := chromedp.Run(browserCtx,
		chromedp.Navigate(target),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(o.Settle),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithLandscape(true).
				Do(ctx)
			return err
		}),
	); err != nil {
		return fmt.Errorf("printing %s: %w", htmlPath, err)
	}

	if err := os.WriteFile(pdfPath, pdf, 0644); err != nil {
		return fmt.Errorf("writing PDF: %w", err)
	}

	return nil
}

// FileURL turns a local path into a file:// URL the browser can open
func FileURL(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String(), nil
}
