package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/anujv/portfolio/internal/validation"
	"github.com/anujv/portfolio/pkg/models"
	"github.com/anujv/portfolio/pkg/repository"
	"github.com/gorilla/mux"
	"github.com/qri-io/jsonschema"
)

type SkillsHandler struct {
	skillRepo repository.SkillRepo
}

func NewSkillsHandler(sr repository.SkillRepo) *SkillsHandler {
	return &SkillsHandler{skillRepo: sr}
}

type skillInput struct {
	Name        *string `json:"name"`
	Category    *string `json:"category"`
	Icon        *string `json:"icon"`
	Proficiency *int    `json:"proficiency"`
	Order       *int    `json:"order"`
}

func (h *SkillsHandler) List(w http.ResponseWriter, r *http.Request) {
	skills, err := h.skillRepo.ListSkills(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list skills")
		return
	}
	if skills == nil {
		skills = []models.Skill{}
	}

	noCache(w)
	writeData(w, http.StatusOK, skills)
}

func (h *SkillsHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	category, err := models.ParseSkillCategory(mux.Vars(r)["category"])
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	skills, err := h.skillRepo.ListSkillsByCategory(r.Context(), category)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list skills")
		return
	}
	if skills == nil {
		skills = []models.Skill{}
	}

	noCache(w)
	writeData(w, http.StatusOK, skills)
}

func (h *SkillsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Skill not found")
		return
	}

	skill, err := h.skillRepo.GetSkill(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch skill")
		return
	}
	if skill == nil {
		writeError(w, http.StatusNotFound, "Skill not found")
		return
	}

	writeData(w, http.StatusOK, skill)
}

func (h *SkillsHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, err := decodeSkillInput(r, validation.SkillCreate)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		writeError(w, http.StatusBadRequest, "Skill name is required")
		return
	}

	skill := models.Skill{
		Name:        strings.TrimSpace(*input.Name),
		Category:    models.CategoryOther,
		Proficiency: 50,
	}
	if input.Category != nil {
		category, err := models.ParseSkillCategory(*input.Category)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		skill.Category = category
	}
	if input.Icon != nil {
		skill.Icon = *input.Icon
	}
	// out-of-range proficiency was already rejected by the schema; the
	// default applies only when the field is omitted
	if input.Proficiency != nil {
		skill.Proficiency = *input.Proficiency
	}
	if input.Order != nil {
		skill.Order = *input.Order
	}

	id, err := h.skillRepo.CreateSkill(r.Context(), &skill)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create skill")
		return
	}

	created, err := h.skillRepo.GetSkill(r.Context(), id)
	if err != nil || created == nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch created skill")
		return
	}

	writeData(w, http.StatusCreated, created)
}

func (h *SkillsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Skill not found")
		return
	}

	skill, err := h.skillRepo.GetSkill(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch skill")
		return
	}
	if skill == nil {
		writeError(w, http.StatusNotFound, "Skill not found")
		return
	}

	input, err := decodeSkillInput(r, validation.SkillUpdate)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if input.Name != nil {
		skill.Name = strings.TrimSpace(*input.Name)
	}
	if input.Category != nil {
		category, err := models.ParseSkillCategory(*input.Category)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		skill.Category = category
	}
	if input.Icon != nil {
		skill.Icon = *input.Icon
	}
	if input.Proficiency != nil {
		skill.Proficiency = *input.Proficiency
	}
	if input.Order != nil {
		skill.Order = *input.Order
	}
	if skill.Name == "" {
		writeError(w, http.StatusBadRequest, "Skill name is required")
		return
	}

	if err := h.skillRepo.UpdateSkill(r.Context(), skill); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update skill")
		return
	}

	updated, err := h.skillRepo.GetSkill(r.Context(), id)
	if err != nil || updated == nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch updated skill")
		return
	}

	writeData(w, http.StatusOK, updated)
}

func (h *SkillsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Skill not found")
		return
	}

	skill, err := h.skillRepo.GetSkill(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch skill")
		return
	}
	if skill == nil {
		writeError(w, http.StatusNotFound, "Skill not found")
		return
	}

	if err := h.skillRepo.DeleteSkill(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete skill")
		return
	}

	writeMessage(w, http.StatusOK, "Skill deleted successfully")
}

// decodeSkillInput validates the raw body against the given schema before
// decoding, so range and enum violations surface with the constraint
// message instead of a generic decode error.
func decodeSkillInput(r *http.Request, schema *jsonschema.Schema) (*skillInput, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("invalid request body")
	}
	if err := validation.Validate(r.Context(), schema, body); err != nil {
		return nil, err
	}

	var input skillInput
	if err := json.Unmarshal(body, &input); err != nil {
		return nil, fmt.Errorf("invalid request body")
	}
	return &input, nil
}
