package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/anujv/portfolio/internal/validation"
	"github.com/anujv/portfolio/pkg/models"
	"github.com/anujv/portfolio/pkg/repository"
)

type ContactsHandler struct {
	contactRepo repository.ContactRepo
}

func NewContactsHandler(cr repository.ContactRepo) *ContactsHandler {
	return &ContactsHandler{contactRepo: cr}
}

type contactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Submit is the only public write endpoint: the contact form on the site.
func (h *ContactsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validation.Validate(r.Context(), validation.ContactSubmit, body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var input contactInput
	if err := json.Unmarshal(body, &input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	contact := models.Contact{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(input.Email),
		Subject: strings.TrimSpace(input.Subject),
		Message: strings.TrimSpace(input.Message),
	}
	if contact.Name == "" || contact.Email == "" || contact.Message == "" {
		writeError(w, http.StatusBadRequest, "Name, email and message are required")
		return
	}

	id, err := h.contactRepo.CreateContact(r.Context(), &contact)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to store message")
		return
	}

	created, err := h.contactRepo.GetContact(r.Context(), id)
	if err != nil || created == nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch stored message")
		return
	}

	writeDataMessage(w, http.StatusCreated, created, "Message sent successfully!")
}

func (h *ContactsHandler) List(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.contactRepo.ListContacts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list messages")
		return
	}
	if contacts == nil {
		contacts = []models.Contact{}
	}

	writeData(w, http.StatusOK, contacts)
}

func (h *ContactsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Message not found")
		return
	}

	contact, err := h.contactRepo.GetContact(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch message")
		return
	}
	if contact == nil {
		writeError(w, http.StatusNotFound, "Message not found")
		return
	}

	writeData(w, http.StatusOK, contact)
}

// MarkRead transitions a message to read. The transition is one-way and
// idempotent: marking an already-read message succeeds unchanged.
func (h *ContactsHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Message not found")
		return
	}

	contact, err := h.contactRepo.MarkContactRead(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update message")
		return
	}
	if contact == nil {
		writeError(w, http.StatusNotFound, "Message not found")
		return
	}

	writeData(w, http.StatusOK, contact)
}

func (h *ContactsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Message not found")
		return
	}

	contact, err := h.contactRepo.GetContact(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch message")
		return
	}
	if contact == nil {
		writeError(w, http.StatusNotFound, "Message not found")
		return
	}

	if err := h.contactRepo.DeleteContact(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete message")
		return
	}

	writeMessage(w, http.StatusOK, "Message deleted successfully")
}
