package contacts

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sheharaF/Eventia-backend/db"
	"github.com/sheharaF/Eventia-backend/models"
	"github.com/sheharaF/Eventia-backend/utils"

	"github.com/julienschmidt/httprouter"
)

// Create accepts a contact-form submission from anyone.
func Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Subject string `json:"subject"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Subject = strings.TrimSpace(input.Subject)
	input.Message = strings.TrimSpace(input.Message)
	switch {
	case input.Name == "" || input.Email == "" || input.Subject == "" || input.Message == "":
		utils.RespondWithError(w, http.StatusBadRequest, "name, email, subject, and message are required")
		return
	case !utils.ValidEmail(input.Email):
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid email address")
		return
	case len(input.Message) > 1000:
		utils.RespondWithError(w, http.StatusBadRequest, "message must be 1000 characters or less")
		return
	}

	now := time.Now()
	contact := models.Contact{
		ContactID: "c" + utils.GenerateName(10),
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Subject:   input.Subject,
		Message:   input.Message,
		Status:    models.ContactNew,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := db.ContactCollection.InsertOne(ctx, contact); err != nil {
		slog.Error("contact insert failed", "err", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to submit message")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{
		"message":   "Message sent successfully. We will get back to you soon.",
		"contactId": contact.ContactID,
	})
}
