package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	config "github.com/dcabrera/music_academy/configs"
	"github.com/dcabrera/music_academy/database"
	"github.com/dcabrera/music_academy/ledger"
	"github.com/dcabrera/music_academy/models"
	"github.com/google/uuid"
)

const receiptTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><style>
body { font-family: Georgia, serif; margin: 48px; color: #222; }
h1 { border-bottom: 2px solid #444; padding-bottom: 8px; }
table { width: 100%; border-collapse: collapse; margin-top: 24px; }
td, th { padding: 8px 12px; border-bottom: 1px solid #ddd; text-align: left; }
.total { font-size: 1.2em; font-weight: bold; }
.footer { margin-top: 48px; font-size: 0.85em; color: #777; }
</style></head>
<body>
<h1>{{.AcademyName}}</h1>
<p>Payment receipt <b>{{.ReceiptNumber}}</b> — {{.IssuedOn}}</p>
<table>
<tr><th>Student</th><td>{{.StudentName}}</td></tr>
<tr><th>Concept</th><td>{{.Concept}}</td></tr>
<tr><th>Method</th><td>{{.Method}}</td></tr>
<tr class="total"><th>Amount paid</th><td>{{.Amount}}</td></tr>
</table>
<p class="footer">This receipt certifies that the amount above was received by the academy.</p>
</body>
</html>`

// GenerateReceipt renders and stores a PDF receipt for a completed
// payment, then attaches the URL to the payment row. Called after the
// ledger transaction committed; every failure here is log-only.
func GenerateReceipt(paymentID uuid.UUID) {
	var payment models.Payment
	if err := database.DB.Preload("Student").First(&payment, "id = ?", paymentID).Error; err != nil {
		log.Printf("🔥 Receipt generation: payment %s not found: %v", paymentID, err)
		return
	}
	if payment.Status != models.PaymentCompleted {
		return
	}

	method := "—"
	if payment.PaymentMethod != nil {
		method = *payment.PaymentMethod
	}
	reference := payment.ID.String()
	if payment.ReferenceNumber != nil {
		reference = *payment.ReferenceNumber
	}

	htmlData, err := renderReceiptHTML(payment.Student.FullName, payment.Concept, method, reference,
		ledger.FormatAmount(payment.PaidAmount, payment.Currency))
	if err != nil {
		log.Printf("🔥 Failed to render receipt HTML: %v", err)
		return
	}

	pdfBytes, err := generatePDFFromHTML(htmlData)
	if err != nil {
		log.Printf("🔥 Failed to generate receipt PDF: %v", err)
		return
	}

	uploadURL, err := uploadToCloudinary(pdfBytes, payment.StudentID.String())
	if err != nil {
		log.Printf("🔥 Failed to upload receipt to Cloudinary: %v", err)
		return
	}

	if err := database.DB.Model(&models.Payment{}).Where("id = ?", payment.ID).Update("receipt_url", uploadURL).Error; err != nil {
		log.Printf("🔥 Failed to attach receipt URL to payment %s: %v", payment.ID, err)
		return
	}
	log.Printf("✅ Generated receipt for payment %s.", payment.ID)
}

func renderReceiptHTML(studentName, concept, method, receiptNumber, amount string) (string, error) {
	tmpl, err := template.New("receipt").Parse(receiptTemplate)
	if err != nil {
		return "", err
	}

	data := struct {
		AcademyName   string
		ReceiptNumber string
		IssuedOn      string
		StudentName   string
		Concept       string
		Method        string
		Amount        string
	}{
		AcademyName:   config.Config("ACADEMY_NAME"),
		ReceiptNumber: receiptNumber,
		IssuedOn:      time.Now().Format("January 2, 2006"),
		StudentName:   studentName,
		Concept:       concept,
		Method:        method,
		Amount:        amount,
	}

	var renderedHTML bytes.Buffer
	if err := tmpl.Execute(&renderedHTML, data); err != nil {
		return "", err
	}
	return renderedHTML.String(), nil
}

func generatePDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadToCloudinary(fileBytes []byte, studentID string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("receipts/%s_%s", studentID, uuid.New().String()),
		Folder:       "music_academy_receipts",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
