package mailer

import (
	"fmt"
	"net/smtp"
	"os"
	"strings"

	"medimart/models"
)

func SendMail(toEmail, subject, body string) error {
	from := os.Getenv("SMTP_FROM")
	pass := os.Getenv("SMTP_PASSWORD")
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	if smtpHost == "" {
		smtpHost = "smtp.gmail.com"
	}
	if smtpPort == "" {
		smtpPort = "587"
	}

	msg := []byte("Subject: " + subject + "\n\n" + body)

	auth := smtp.PlainAuth("", from, pass, smtpHost)
	return smtp.SendMail(smtpHost+":"+smtpPort, auth, from, []string{toEmail}, msg)
}

// PayOrderEmailBody builds the confirmation mail sent after an order is
// marked paid.
func PayOrderEmailBody(order *models.Order, userName string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Hi %s,\n\n", userName)
	fmt.Fprintf(&sb, "We have received payment for your order %s.\n\n", order.OrderID)
	for _, item := range order.Items {
		fmt.Fprintf(&sb, "  %s x%d - %.2f\n", item.Name, item.Quantity, item.Price*float64(item.Quantity))
	}
	fmt.Fprintf(&sb, "\nItems: %.2f\nShipping: %.2f\nDiscount: -%.2f\nTotal: %.2f\n",
		order.ItemsPrice, order.ShippingPrice, order.DiscountPrice, order.TotalPrice)
	sb.WriteString("\nYour order is being prepared for dispatch.\n")
	return sb.String()
}
