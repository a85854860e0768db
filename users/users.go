package users

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"medimart/auth"
	"medimart/db"
	"medimart/models"
	"medimart/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

// GetUsers returns every account for the admin UI.
func GetUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	cursor, err := db.UserCollection.Find(context.TODO(), bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch users")
		return
	}
	defer cursor.Close(context.TODO())

	var users []models.User
	if err := cursor.All(context.TODO(), &users); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error processing users")
		return
	}
	if len(users) == 0 {
		users = []models.User{}
	}

	utils.RespondWithJSON(w, http.StatusOK, users)
}

// GetProfile returns the caller's own account.
func GetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var user models.User
	err := db.UserCollection.FindOne(context.TODO(), bson.M{"userid": userID}).Decode(&user)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User Not Found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, user)
}

func GetUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var user models.User
	err := db.UserCollection.FindOne(context.TODO(), bson.M{"userid": ps.ByName("id")}).Decode(&user)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User Not Found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, user)
}

// UpdateProfile lets the caller change their own name, email or password.
// A fresh token is returned since the claims embed the display name.
func UpdateProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	var user models.User
	if err := db.UserCollection.FindOne(context.TODO(), bson.M{"userid": userID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	update := bson.M{"updated_at": time.Now()}
	if input.Name != "" {
		update["name"] = input.Name
		user.Name = input.Name
	}
	if input.Email != "" {
		update["email"] = input.Email
		user.Email = input.Email
	}
	if input.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			http.Error(w, "Failed to hash password", http.StatusInternalServerError)
			return
		}
		update["password"] = string(hashed)
	}

	_, err := db.UserCollection.UpdateOne(context.TODO(), bson.M{"userid": userID}, bson.M{"$set": update})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	token, err := auth.GenerateAccessToken(&user)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	utils.SendResponse(w, http.StatusOK, map[string]any{
		"userid": user.UserID,
		"name":   user.Name,
		"email":  user.Email,
		"role":   user.Role,
		"token":  token,
	}, "Profile updated", nil)
}
