package orders

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"medimart/db"
	"medimart/models"
	"medimart/pricing"
	"medimart/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

// invoiceLines renders the textual body of the invoice. Totals come from the
// same pricing policy that priced the order at creation, so the printed
// figures always match the stored breakdown.
func invoiceLines(order *models.Order, owner *models.User) []string {
	lines := []string{
		fmt.Sprintf("Order ID: %s", order.OrderID),
		fmt.Sprintf("Date: %s", order.CreatedAt.Format("02 Jan 2006")),
		fmt.Sprintf("Customer: %s", owner.Name),
		fmt.Sprintf("Email: %s", owner.Email),
		"",
		"Shipping Address:",
		"  " + order.ShippingAddress.FullName,
		"  " + order.ShippingAddress.Address,
		"  " + order.ShippingAddress.City,
		"  " + order.ShippingAddress.PostalCode,
		"  " + order.ShippingAddress.Country,
		"",
		"Ordered Items:",
	}

	for i, item := range order.Items {
		subtotal := pricing.Round2(item.Price * float64(item.Quantity))
		lines = append(lines, fmt.Sprintf("%d. %s - %d x Rs. %.2f = Rs. %.2f",
			i+1, item.Name, item.Quantity, item.Price, subtotal))
	}

	b := pricing.Compute(order.Items)
	lines = append(lines,
		"",
		fmt.Sprintf("Subtotal: Rs. %.2f", b.ItemsPrice),
		fmt.Sprintf("Discount (10%%): -Rs. %.2f", b.DiscountPrice),
		fmt.Sprintf("Delivery: Rs. %.2f", b.ShippingPrice),
		fmt.Sprintf("Final Total: Rs. %.2f", b.TotalPrice),
	)

	if order.IsPaid {
		lines = append(lines, "", fmt.Sprintf("Paid on %s", order.PaidAt.Format("02 Jan 2006 15:04")))
	}

	return lines
}

// PrintInvoice streams the PDF invoice for an order to its owner or an
// admin.
func PrintInvoice(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orderID := ps.ByName("id")

	var order models.Order
	if err := db.OrderCollection.FindOne(context.TODO(), bson.M{"orderid": orderID}).Decode(&order); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order Not Found")
		return
	}

	if order.UserID != utils.GetUserIDFromRequest(r) && !utils.IsAdminRequest(r) {
		utils.RespondWithError(w, http.StatusForbidden, "Not allowed to view this order")
		return
	}

	var owner models.User
	if err := db.UserCollection.FindOne(context.TODO(), bson.M{"userid": order.UserID}).Decode(&owner); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order owner not found")
		return
	}

	// QR payload lets the dispatch desk pull the order up by scanning the
	// printed invoice.
	qrData := fmt.Sprintf("order=%s&ts=%d", order.OrderID, time.Now().Unix())
	qrPNG, err := qrcode.Encode(qrData, qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Order Report")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	for _, line := range invoiceLines(&order, &owner) {
		pdf.Cell(0, 8, line)
		pdf.Ln(8)
	}

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 160, 20, 35, 35, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=OrderReport_"+order.OrderID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
