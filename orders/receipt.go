package orders

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"time"

	"greencart/db"
	"greencart/models"
	"greencart/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

func receiptSecret() []byte {
	if s := os.Getenv("RECEIPT_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("receipt-secret")
}

// receiptPayload returns a signed payload string: orderID|userID|timestamp|signature
func receiptPayload(orderID, userID string) string {
	data := fmt.Sprintf("%s|%s|%d", orderID, userID, time.Now().Unix())

	h := hmac.New(sha256.New, receiptSecret())
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))

	return fmt.Sprintf("%s|%s", data, sig)
}

// DownloadReceipt renders a PDF receipt for one of the requesting user's
// orders, with a signed QR code for delivery verification.
func DownloadReceipt(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	orderID := r.URL.Query().Get("orderId")
	if orderID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Order ID is required")
		return
	}

	var order models.Order
	if err := db.OrderCollection.FindOne(ctx, bson.M{"orderid": orderID}).Decode(&order); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}
	if order.UserID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "You can only download receipts for your own orders")
		return
	}

	var addr models.Address
	_ = db.AddressCollection.FindOne(ctx, bson.M{"addressid": order.Address}).Decode(&addr)

	qrPNG, err := qrcode.Encode(receiptPayload(order.OrderID, order.UserID), qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Order Receipt")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Order ID: %s", order.OrderID))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Placed: %s", order.CreatedAt.Format("2006-01-02 15:04")))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Status: %s", order.Status))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Payment: %s", order.PaymentType))
	pdf.Ln(8)
	if addr.AddressID != "" {
		pdf.Cell(0, 10, fmt.Sprintf("Deliver to: %s %s, %s, %s %s, %s",
			addr.FirstName, addr.LastName, addr.Street, addr.City, addr.Zipcode, addr.Country))
		pdf.Ln(8)
	}
	pdf.Ln(4)

	for _, item := range order.Items {
		var product models.Product
		name := item.Product
		if err := db.ProductCollection.FindOne(ctx, bson.M{"productid": item.Product}).Decode(&product); err == nil {
			name = product.Name
		}
		pdf.Cell(0, 8, fmt.Sprintf("%d x %s", item.Quantity, name))
		pdf.Ln(6)
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Total (incl. 2%% charge): %.0f", order.Amount))

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=receipt-"+order.OrderID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
