package service

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"tienda-admin/models"
	"tienda-admin/repository"
	"tienda-admin/utils"
)

//go:embed templates/receipt.html
var templateFS embed.FS

var receiptTemplate = template.Must(
	template.New("receipt.html").
		Funcs(template.FuncMap{"money": utils.FormatMoney}).
		ParseFS(templateFS, "templates/receipt.html"),
)

// ReceiptService renders order receipts as HTML and prints them to PDF
type ReceiptService struct {
	orders     repository.OrderRepositoryInterface
	baseURL    string // Base URL the headless browser loads the receipt from (e.g., "http://localhost:8080")
	chromePath string
}

// NewReceiptService creates a new ReceiptService
func NewReceiptService(orders repository.OrderRepositoryInterface, baseURL, chromePath string) *ReceiptService {
	return &ReceiptService{orders: orders, baseURL: baseURL, chromePath: chromePath}
}

// RenderHTML renders the receipt of a stored order
func (s *ReceiptService) RenderHTML(ctx context.Context, orderID string) (string, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return "", err
	}
	return RenderReceipt(order)
}

// RenderReceipt executes the receipt template for order
func RenderReceipt(order *models.Order) (string, error) {
	shortID := order.ID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}
	data := struct {
		Order     *models.Order
		ShortID   string
		CreatedAt string
	}{
		Order:     order,
		ShortID:   shortID,
		CreatedAt: order.CreatedAt.Format("02/01/2006 15:04"),
	}

	var buf bytes.Buffer
	if err := receiptTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// detectChromePath returns the configured Chrome path if it exists, else the first
// common installation path found
func detectChromePath(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
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

// GeneratePDF prints the receipt render endpoint with headless Chrome
func (s *ReceiptService) GeneratePDF(ctx context.Context, orderID string) ([]byte, error) {
	// Fail fast with a not-found before starting a browser.
	if _, err := s.orders.GetByID(ctx, orderID); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
	)
	if chromePath := detectChromePath(s.chromePath); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	renderURL := fmt.Sprintf("%s/admin/orders/%s/receipt/render", s.baseURL, orderID)
	zap.L().Info("🖨️ GeneratePDF: printing receipt", zap.String("url", renderURL))

	var pdfBuf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		chromedp.Evaluate(`document.fonts.ready.then(() => true)`, nil, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithAwaitPromise(true)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// 80mm receipt roll, height grows with content
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				WithPaperWidth(3.15).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		zap.L().Error("❌ GeneratePDF: chrome failed", zap.String("orderId", orderID), zap.Error(err))
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	zap.L().Info("✅ GeneratePDF: receipt printed", zap.String("orderId", orderID), zap.Int("bytes", len(pdfBuf)))
	return pdfBuf, nil
}
