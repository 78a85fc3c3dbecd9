package render

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/playwright-community/playwright-go"

	"clubsync/internal/domain/certificate"
)

// settleDelay gives fonts and layout a moment to stabilise after the page
// reports network idle.
const settleDelay = 150 * time.Millisecond

// ChromiumRenderer rasterises certificates in a headless Chromium instance
// driven by Playwright. One browser is shared; each Render gets a fresh
// isolated page.
type ChromiumRenderer struct {
	pw      *playwright.Playwright
	browser playwright.Browser
}

// NewChromiumRenderer starts Playwright and launches headless Chromium.
// POST: Returns a renderer whose Close must be called on shutdown
func NewChromiumRenderer() (*ChromiumRenderer, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("launch chromium: %w", err)
	}
	return &ChromiumRenderer{pw: pw, browser: browser}, nil
}

// Render rasterises one certificate.
// PRE: format/quality satisfy certificate.ValidateFormat; req is validated
// POST: Returns a non-empty Artifact or certificate.ErrRender; the page is
// torn down on every path
func (r *ChromiumRenderer) Render(ctx context.Context, req certificate.Request, format string, quality float64) (certificate.Artifact, error) {
	if err := certificate.ValidateFormat(format, quality); err != nil {
		return certificate.Artifact{}, err
	}

	html, err := RenderHTML(req)
	if err != nil {
		return certificate.Artifact{}, fmt.Errorf("%w: %v", certificate.ErrRender, err)
	}

	page, err := r.browser.NewPage(playwright.BrowserNewPageOptions{
		Viewport:          &playwright.Size{Width: layoutWidth, Height: layoutHeight},
		DeviceScaleFactor: playwright.Float(2),
	})
	if err != nil {
		return certificate.Artifact{}, fmt.Errorf("%w: new page: %v", certificate.ErrRender, err)
	}
	defer page.Close()

	if err := page.SetContent(html, playwright.PageSetContentOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
	}); err != nil {
		return certificate.Artifact{}, fmt.Errorf("%w: set content: %v", certificate.ErrRender, err)
	}

	// Fonts load asynchronously even after network idle.
	if _, err := page.Evaluate("() => document.fonts.ready"); err != nil {
		slog.Warn("certificate_fonts_wait_failed", "error", err)
	}
	select {
	case <-ctx.Done():
		return certificate.Artifact{}, ctx.Err()
	case <-time.After(settleDelay):
	}

	var data []byte
	switch format {
	case certificate.FormatPDF:
		data, err = page.PDF(playwright.PagePdfOptions{
			Landscape:       playwright.Bool(true),
			PrintBackground: playwright.Bool(true),
			Width:           playwright.String(fmt.Sprintf("%dpx", layoutWidth)),
			Height:          playwright.String(fmt.Sprintf("%dpx", layoutHeight)),
			PageRanges:      playwright.String("1"),
		})
	case certificate.FormatJPEG:
		data, err = page.Screenshot(playwright.PageScreenshotOptions{
			Type:    playwright.ScreenshotTypeJpeg,
			Quality: playwright.Int(int(quality * 100)),
		})
	default:
		data, err = page.Screenshot(playwright.PageScreenshotOptions{
			Type: playwright.ScreenshotTypePng,
		})
	}
	if err != nil {
		return certificate.Artifact{}, fmt.Errorf("%w: %v", certificate.ErrRender, err)
	}
	if len(data) == 0 {
		return certificate.Artifact{}, certificate.ErrRender
	}

	slog.Info("certificate_rendered", "certificate_id", req.CertificateID, "format", format, "bytes", len(data))
	return certificate.Artifact{
		ContentType: certificate.ContentTypeFor(format),
		Data:        data,
	}, nil
}

// Close shuts down the browser and Playwright driver.
func (r *ChromiumRenderer) Close() error {
	if r.browser != nil {
		if err := r.browser.Close(); err != nil {
			slog.Warn("chromium_close_failed", "error", err)
		}
	}
	if r.pw != nil {
		return r.pw.Stop()
	}
	return nil
}
