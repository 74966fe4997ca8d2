package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"

	"campusforms/internal/apperrors"
	"campusforms/internal/models"
	"campusforms/internal/store"
)

// ContactUpdateRequest carries the fields a client wants to change; nil
// fields are left untouched.
type ContactUpdateRequest struct {
	Name          *string        `json:"name"`
	Email         *string        `json:"email"`
	Phone         *string        `json:"phone"`
	Address       *string        `json:"address"`
	Category      *string        `json:"category"`
	Product       *string        `json:"product"`
	Quantity      *models.Number `json:"quantity"`
	PaymentMethod *string        `json:"paymentMethod"`
}

func (r ContactUpdateRequest) fields() bson.M {
	set := bson.M{}
	for key, value := range map[string]*string{
		"name":          r.Name,
		"email":         r.Email,
		"phone":         r.Phone,
		"address":       r.Address,
		"category":      r.Category,
		"product":       r.Product,
		"paymentMethod": r.PaymentMethod,
	} {
		if value != nil {
			set[key] = *value
		}
	}
	if r.Quantity != nil {
		set["quantity"] = *r.Quantity
	}
	return set
}

/*
POST /submit-form
*/
func SubmitForm(contacts ContactStore) gin.HandlerFunc {
	const route = "SUBMIT_FORM"
	return func(c *gin.Context) {
		var entry models.ContactEntry
		if err := bindJSON(c, &entry); err != nil {
			respondWithError(c, route, err)
			return
		}

		if err := contacts.Create(c.Request.Context(), &entry); err != nil {
			respondWithError(c, route, apperrors.Internal("Failed to save data", err))
			return
		}

		log.Info().Str("route", route).Str("id", entry.ID.Hex()).Msg("contact entry saved")
		c.JSON(http.StatusCreated, gin.H{"message": "Data saved successfully!", "data": entry})
	}
}

/*
GET /get-data
*/
func ListFormData(contacts ContactStore) gin.HandlerFunc {
	const route = "GET_DATA"
	return func(c *gin.Context) {
		entries, err := contacts.List(c.Request.Context())
		if err != nil {
			respondWithError(c, route, apperrors.Internal("Failed to fetch data", err))
			return
		}
		c.JSON(http.StatusOK, entries)
	}
}

/*
GET /get-data/:id
*/
func GetFormData(contacts ContactStore) gin.HandlerFunc {
	const route = "GET_DATA_BY_ID"
	return func(c *gin.Context) {
		id, err := parseObjectID(c)
		if err != nil {
			respondWithError(c, route, err)
			return
		}

		entry, err := contacts.Get(c.Request.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(c, route, apperrors.NotFound("Data not found"))
			return
		}
		if err != nil {
			respondWithError(c, route, apperrors.Internal("Failed to fetch data", err))
			return
		}
		c.JSON(http.StatusOK, entry)
	}
}

/*
PUT /update-form-data/:id
*/
func UpdateFormData(contacts ContactStore) gin.HandlerFunc {
	const route = "UPDATE_FORM_DATA"
	return func(c *gin.Context) {
		id, err := parseObjectID(c)
		if err != nil {
			respondWithError(c, route, err)
			return
		}

		var req ContactUpdateRequest
		if err := bindJSON(c, &req); err != nil {
			respondWithError(c, route, err)
			return
		}
		set := req.fields()
		if len(set) == 0 {
			respondWithError(c, route, apperrors.Validation("no fields to update"))
			return
		}

		updated, err := contacts.Update(c.Request.Context(), id, set)
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(c, route, apperrors.NotFound("Data not found"))
			return
		}
		if err != nil {
			respondWithError(c, route, apperrors.Internal("Failed to update data", err))
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

/*
DELETE /delete-form-data/:id
- Succeeds for ids that are already gone
*/
func DeleteFormData(contacts ContactStore) gin.HandlerFunc {
	const route = "DELETE_FORM_DATA"
	return func(c *gin.Context) {
		id, err := parseObjectID(c)
		if err != nil {
			respondWithError(c, route, err)
			return
		}

		if err := contacts.Delete(c.Request.Context(), id); err != nil {
			respondWithError(c, route, apperrors.Internal("Failed to delete data", err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Deleted Successfully"})
	}
}
