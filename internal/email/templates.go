package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

const ctaOrderLabel = "Открыть заказ"

type baseEmailData struct {
	Title      string
	Heading    string
	Subheading string
	CTALabel   string
	CTAURL     string
}

type orderLineData struct {
	ProductName string
	Quantity    int
	Price       string
	Subtotal    string
}

type orderPlacedEmailData struct {
	baseEmailData
	OrderID int64
	Items   []orderLineData
	Total   string
}

type orderStatusEmailData struct {
	baseEmailData
	OrderID       int64
	StatusDisplay string
}

func renderEmailTemplate(name string, data any) (string, error) {
	templates := []string{"templates/base.html", "templates/" + name}
	tmpl, err := template.New("base.html").ParseFS(templateFS, templates...)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "email", data); err != nil {
		return "", fmt.Errorf("execute email template %s: %w", name, err)
	}
	return buf.String(), nil
}

func renderOrderPlaced(msg OrderPlacedMessage) (string, error) {
	lines := make([]orderLineData, 0, len(msg.Items))
	for _, item := range msg.Items {
		lines = append(lines, orderLineData{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       formatRubles(item.Price),
			Subtotal:    formatRubles(item.Price * float64(item.Quantity)),
		})
	}
	return renderEmailTemplate("order_placed.html", orderPlacedEmailData{
		baseEmailData: baseEmailData{
			Title:      fmt.Sprintf(subjectOrderPlacedFmt, msg.OrderID),
			Heading:    "Спасибо за заказ!",
			Subheading: "Мы получили ваш заказ и скоро начнём его собирать.",
			CTALabel:   ctaOrderLabel,
			CTAURL:     msg.OrderURL,
		},
		OrderID: msg.OrderID,
		Items:   lines,
		Total:   formatRubles(msg.TotalAmount),
	})
}

func renderOrderStatus(msg OrderStatusMessage) (string, error) {
	return renderEmailTemplate("order_status.html", orderStatusEmailData{
		baseEmailData: baseEmailData{
			Title:   fmt.Sprintf(subjectOrderStatusFmt, msg.OrderID, msg.StatusDisplay),
			Heading:  "Статус заказа изменён",
			CTALabel: ctaOrderLabel,
			CTAURL:   msg.OrderURL,
		},
		OrderID:       msg.OrderID,
		StatusDisplay: msg.StatusDisplay,
	})
}

// formatRubles renders an amount with a comma decimal separator, e.g. "150,00 руб.".
func formatRubles(amount float64) string {
	return strings.Replace(fmt.Sprintf("%.2f", amount), ".", ",", 1) + " руб."
}
