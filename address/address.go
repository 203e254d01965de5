package address

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"greencart/db"
	"greencart/models"
	"greencart/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// AddAddress stores a shipping address owned by the requesting user.
func AddAddress(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var payload struct {
		Address models.Address `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	addr := payload.Address
	if addr.Street == "" || addr.City == "" || addr.Country == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Address is required")
		return
	}

	addr.AddressID = "a" + utils.GenerateID(12)
	addr.UserID = userID

	if _, err := db.AddressCollection.InsertOne(ctx, addr); err != nil {
		log.Println("AddAddress InsertOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add address")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"success": true,
		"message": "Address added successfully",
		"address": addr,
	})
}

// GetAddresses lists the requesting user's addresses.
func GetAddresses(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	cursor, err := db.AddressCollection.Find(ctx, bson.M{"userid": userID})
	if err != nil {
		log.Println("GetAddresses Find error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch addresses")
		return
	}
	defer cursor.Close(ctx)

	var addresses []models.Address
	if err := cursor.All(ctx, &addresses); err != nil {
		log.Println("GetAddresses cursor.All error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch addresses")
		return
	}
	if len(addresses) == 0 {
		addresses = []models.Address{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "addresses": addresses})
}

// DeleteAddress removes an address, but only when the requesting user owns
// it. A mismatch reads the same as a missing document.
func DeleteAddress(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var input struct {
		AddressID string `json:"addressId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.AddressID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Address ID is required")
		return
	}

	result, err := db.AddressCollection.DeleteOne(ctx, bson.M{
		"addressid": input.AddressID,
		"userid":    userID,
	})
	if err != nil {
		log.Println("DeleteAddress DeleteOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete address")
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Address not found or you don't have permission to delete it")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": "Address deleted successfully"})
}
