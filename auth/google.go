package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/sheharaF/Eventia-backend/db"
	"github.com/sheharaF/Eventia-backend/models"
	"github.com/sheharaF/Eventia-backend/rdx"
	"github.com/sheharaF/Eventia-backend/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"google.golang.org/api/idtoken"
)

// idTokenValidator is swappable so the Google verification round trip can be
// stubbed in tests.
var idTokenValidator = idtoken.Validate

// GoogleAuth exchanges a Google ID token for a session JWT. The token is
// verified against GOOGLE_CLIENT_ID; a first sign-in creates a password-less
// customer account keyed by email.
func GoogleAuth(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Token == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Token is missing.")
		return
	}

	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	if clientID == "" {
		utils.RespondWithError(w, http.StatusServiceUnavailable, "Google sign-in is not configured")
		return
	}

	payload, err := idTokenValidator(ctx, input.Token, clientID)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid Google token.")
		return
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Email is required.")
		return
	}
	name, _ := payload.Claims["name"].(string)

	var user models.User
	err = db.UserCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		now := time.Now()
		user = models.User{
			UserID:     "u" + utils.GenerateName(10),
			Name:       name,
			Email:      email,
			GoogleID:   payload.Subject,
			Role:       models.RoleUser,
			IsApproved: true,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if _, err := db.UserCollection.InsertOne(ctx, user); err != nil {
			slog.Error("google signup failed", "err", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to register user")
			return
		}
	} else if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	if user.Role == models.RoleVendor && !user.IsApproved {
		utils.RespondWithError(w, http.StatusForbidden, "Vendor approval pending")
		return
	}

	token, err := GenerateToken(user)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	if err := rdx.RdxHset(sessionHash, user.UserID, token); err != nil {
		slog.Warn("session cache failed", "err", err)
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"message": "Google Authentication Successful",
		"token":   token,
		"user":    user.Safe(),
	})
}
