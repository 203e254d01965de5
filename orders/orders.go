package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"greencart/db"
	"greencart/models"
	"greencart/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// codOrPaid matches the orders visible in listings: cash-on-delivery orders
// plus anything already paid.
var codOrPaid = bson.M{"$or": bson.A{
	bson.M{"paymentType": "COD"},
	bson.M{"isPaid": true},
}}

// PlaceOrderCOD creates a cash-on-delivery order. The amount is computed
// from live product prices; any client-submitted amount is ignored.
func PlaceOrderCOD(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var input struct {
		Items   []models.OrderItem `json:"items"`
		Address string             `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Address == "" || len(input.Items) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid data")
		return
	}
	for _, item := range input.Items {
		if item.Product == "" || item.Quantity < 1 {
			utils.RespondWithError(w, http.StatusBadRequest, "invalid data")
			return
		}
	}

	// The delivery address must belong to the ordering user.
	count, err := db.AddressCollection.CountDocuments(ctx, bson.M{
		"addressid": input.Address,
		"userid":    userID,
	})
	if err != nil {
		log.Println("PlaceOrderCOD address lookup error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to place order")
		return
	}
	if count == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Address not found")
		return
	}

	var subtotal float64
	for _, item := range input.Items {
		var product models.Product
		err := db.ProductCollection.FindOne(ctx, bson.M{"productid": item.Product}).Decode(&product)
		if err != nil {
			utils.RespondWithError(w, http.StatusNotFound, fmt.Sprintf("Product not found: %s", item.Product))
			return
		}
		subtotal += product.UnitPrice() * float64(item.Quantity)
	}

	now := time.Now()
	order := models.Order{
		OrderID:     "ord" + utils.GenerateID(12),
		UserID:      userID,
		Items:       input.Items,
		Amount:      AmountWithSurcharge(subtotal),
		Address:     input.Address,
		Status:      models.StatusPlaced,
		PaymentType: "COD",
		IsPaid:      false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := db.OrderCollection.InsertOne(ctx, order); err != nil {
		log.Println("PlaceOrderCOD InsertOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to place order")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"success": true,
		"message": "order placed successfully",
		"order":   order,
	})
}

// GetUserOrders lists the requesting user's orders, newest first.
func GetUserOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	filter := bson.M{"userid": userID}
	for k, v := range codOrPaid {
		filter[k] = v
	}

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := db.OrderCollection.Find(ctx, filter, opts)
	if err != nil {
		log.Println("GetUserOrders Find error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch user orders")
		return
	}
	defer cursor.Close(ctx)

	var list []models.Order
	if err := cursor.All(ctx, &list); err != nil {
		log.Println("GetUserOrders cursor.All error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch user orders")
		return
	}
	if len(list) == 0 {
		list = []models.Order{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "orders": list})
}

// GetSellerOrders lists orders for the seller dashboard, newest first,
// restricted to COD or paid orders.
func GetSellerOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := db.OrderCollection.Find(ctx, codOrPaid, opts)
	if err != nil {
		log.Println("GetSellerOrders Find error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	defer cursor.Close(ctx)

	var list []models.Order
	if err := cursor.All(ctx, &list); err != nil {
		log.Println("GetSellerOrders cursor.All error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	if len(list) == 0 {
		list = []models.Order{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "orders": list})
}

// UpdateOrderStatus advances an order one step along the seller lifecycle.
func UpdateOrderStatus(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		OrderID string `json:"orderId"`
		Status  string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.OrderID == "" || input.Status == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Order ID and status are required")
		return
	}
	if !ValidStatus(input.Status) {
		utils.RespondWithError(w, http.StatusBadRequest,
			"Invalid status. Must be one of: order placed, processing, delivered, cancelled")
		return
	}

	var order models.Order
	if err := db.OrderCollection.FindOne(ctx, bson.M{"orderid": input.OrderID}).Decode(&order); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	if !CanAdvance(order.Status, input.Status) {
		utils.RespondWithError(w, http.StatusBadRequest,
			fmt.Sprintf("Cannot move order from %q to %q", order.Status, input.Status))
		return
	}

	update := bson.M{"$set": bson.M{"status": input.Status, "updatedAt": time.Now()}}
	if _, err := db.OrderCollection.UpdateOne(ctx, bson.M{"orderid": input.OrderID}, update); err != nil {
		log.Println("UpdateOrderStatus UpdateOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update order status")
		return
	}

	order.Status = input.Status
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"message": "Order status updated successfully",
		"order":   order,
	})
}

// CancelOrder lets a user cancel their own order while it is still in a
// non-terminal state.
func CancelOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var input struct {
		OrderID string `json:"orderId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.OrderID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Order ID is required")
		return
	}

	var order models.Order
	if err := db.OrderCollection.FindOne(ctx, bson.M{"orderid": input.OrderID}).Decode(&order); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	if code, msg := CancelCheck(order, userID); code != 0 {
		utils.RespondWithError(w, code, msg)
		return
	}

	update := bson.M{"$set": bson.M{"status": models.StatusCancelled, "updatedAt": time.Now()}}
	if _, err := db.OrderCollection.UpdateOne(ctx, bson.M{"orderid": input.OrderID}, update); err != nil {
		log.Println("CancelOrder UpdateOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to cancel order")
		return
	}

	order.Status = models.StatusCancelled
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"message": "Order cancelled successfully",
		"order":   order,
	})
}

// GetOrderStats returns per-status order counts for the seller dashboard.
func GetOrderStats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	stats := models.OrderStats{}
	counts := []struct {
		filter bson.M
		dst    *int64
	}{
		{bson.M{}, &stats.Total},
		{bson.M{"status": models.StatusPlaced}, &stats.Pending},
		{bson.M{"status": models.StatusProcessing}, &stats.Processing},
		{bson.M{"status": models.StatusDelivered}, &stats.Delivered},
		{bson.M{"status": models.StatusCancelled}, &stats.Cancelled},
	}
	for _, c := range counts {
		n, err := db.OrderCollection.CountDocuments(ctx, c.filter)
		if err != nil {
			log.Println("GetOrderStats CountDocuments error:", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get order statistics")
			return
		}
		*c.dst = n
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "stats": stats})
}
