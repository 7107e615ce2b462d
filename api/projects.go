package api

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/anujv/portfolio/internal/assets"
	"github.com/anujv/portfolio/pkg/models"
	"github.com/anujv/portfolio/pkg/repository"
	"github.com/gorilla/mux"
)

// uploads larger than this are rejected at parse time
const maxUploadSize = 10 << 20

type ProjectsHandler struct {
	projectRepo repository.ProjectRepo
	assetStore  *assets.Store
}

func NewProjectsHandler(pr repository.ProjectRepo, as *assets.Store) *ProjectsHandler {
	return &ProjectsHandler{projectRepo: pr, assetStore: as}
}

// projectInput carries the decoded fields of a create/update request.
// Pointers distinguish "omitted" from zero values: partial updates keep
// previous values for omitted fields, including the technologies list.
type projectInput struct {
	Title        *string          `json:"title"`
	Description  *string          `json:"description"`
	Technologies *models.TechList `json:"technologies"`
	GithubURL    *string          `json:"githubUrl"`
	LiveURL      *string          `json:"liveUrl"`
	Featured     *bool            `json:"featured"`
	Order        *int             `json:"order"`
}

// List responds with all projects ordered for display.
func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projectRepo.ListProjects(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list projects")
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}

	noCache(w)
	writeData(w, http.StatusOK, projects)
}

func (h *ProjectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Project not found")
		return
	}

	project, err := h.projectRepo.GetProject(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch project")
		return
	}
	if project == nil {
		writeError(w, http.StatusNotFound, "Project not found")
		return
	}

	writeData(w, http.StatusOK, project)
}

func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, file, header, err := h.decodeProjectRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if file != nil {
		defer file.Close()
	}

	if input.Title == nil || strings.TrimSpace(*input.Title) == "" ||
		input.Description == nil || strings.TrimSpace(*input.Description) == "" {
		writeError(w, http.StatusBadRequest, "Title and description are required")
		return
	}

	project := models.Project{
		Title:        strings.TrimSpace(*input.Title),
		Description:  strings.TrimSpace(*input.Description),
		Technologies: models.TechList{},
	}
	if input.Technologies != nil {
		project.Technologies = *input.Technologies
	}
	if input.GithubURL != nil {
		project.GithubURL = strings.TrimSpace(*input.GithubURL)
	}
	if input.LiveURL != nil {
		project.LiveURL = strings.TrimSpace(*input.LiveURL)
	}
	if input.Featured != nil {
		project.Featured = *input.Featured
	}
	if input.Order != nil {
		project.Order = *input.Order
	}

	if file != nil {
		ref, err := h.assetStore.Save(header.Filename, file)
		if err != nil {
			if err == assets.ErrUnsupportedType {
				writeError(w, http.StatusBadRequest, "Unsupported image type")
				return
			}
			writeError(w, http.StatusInternalServerError, "Failed to store image")
			return
		}
		project.Image = ref
	}

	id, err := h.projectRepo.CreateProject(r.Context(), &project)
	if err != nil {
		// creation failed after the file was written; don't leak it
		h.assetStore.RemoveLogged(project.Image)
		writeError(w, http.StatusInternalServerError, "Failed to create project")
		return
	}

	created, err := h.projectRepo.GetProject(r.Context(), id)
	if err != nil || created == nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch created project")
		return
	}

	writeData(w, http.StatusCreated, created)
}

func (h *ProjectsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Project not found")
		return
	}

	project, err := h.projectRepo.GetProject(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch project")
		return
	}
	if project == nil {
		writeError(w, http.StatusNotFound, "Project not found")
		return
	}

	input, file, header, err := h.decodeProjectRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if file != nil {
		defer file.Close()
	}

	// partial update: omitted fields keep their stored values
	if input.Title != nil {
		project.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		project.Description = strings.TrimSpace(*input.Description)
	}
	if input.Technologies != nil {
		project.Technologies = *input.Technologies
	}
	if input.GithubURL != nil {
		project.GithubURL = strings.TrimSpace(*input.GithubURL)
	}
	if input.LiveURL != nil {
		project.LiveURL = strings.TrimSpace(*input.LiveURL)
	}
	if input.Featured != nil {
		project.Featured = *input.Featured
	}
	if input.Order != nil {
		project.Order = *input.Order
	}
	if project.Title == "" || project.Description == "" {
		writeError(w, http.StatusBadRequest, "Title and description are required")
		return
	}

	// two-phase image swap: write the new file, commit the record, then
	// best-effort removal of the old file. The record never points at a
	// missing file; a failed cleanup can only leak an orphan.
	oldImage := ""
	if file != nil {
		ref, err := h.assetStore.Save(header.Filename, file)
		if err != nil {
			if err == assets.ErrUnsupportedType {
				writeError(w, http.StatusBadRequest, "Unsupported image type")
				return
			}
			writeError(w, http.StatusInternalServerError, "Failed to store image")
			return
		}
		oldImage = project.Image
		project.Image = ref
	}

	if err := h.projectRepo.UpdateProject(r.Context(), project); err != nil {
		if file != nil {
			h.assetStore.RemoveLogged(project.Image)
		}
		writeError(w, http.StatusInternalServerError, "Failed to update project")
		return
	}

	if oldImage != "" && oldImage != project.Image {
		h.assetStore.RemoveLogged(oldImage)
	}

	updated, err := h.projectRepo.GetProject(r.Context(), id)
	if err != nil || updated == nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch updated project")
		return
	}

	writeData(w, http.StatusOK, updated)
}

func (h *ProjectsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Project not found")
		return
	}

	project, err := h.projectRepo.GetProject(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch project")
		return
	}
	if project == nil {
		writeError(w, http.StatusNotFound, "Project not found")
		return
	}

	if err := h.projectRepo.DeleteProject(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete project")
		return
	}

	// record is gone; file cleanup is best-effort
	h.assetStore.RemoveLogged(project.Image)

	writeMessage(w, http.StatusOK, "Project deleted successfully")
}

// decodeProjectRequest reads either a multipart form (with an optional
// `image` file part) or a JSON body into a projectInput.
func (h *ProjectsHandler) decodeProjectRequest(r *http.Request) (*projectInput, multipart.File, *multipart.FileHeader, error) {
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "multipart/form-data") {
		var input projectInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			return nil, nil, nil, fmt.Errorf("invalid request body")
		}
		return &input, nil, nil, nil
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid multipart form")
	}

	input := &projectInput{}
	form := r.MultipartForm.Value

	if v, ok := formValue(form, "title"); ok {
		input.Title = &v
	}
	if v, ok := formValue(form, "description"); ok {
		input.Description = &v
	}
	if vs, ok := form["technologies"]; ok {
		techs := models.TechList{}
		for _, v := range vs {
			techs = append(techs, models.ParseTechList(v)...)
		}
		input.Technologies = &techs
	}
	if v, ok := formValue(form, "githubUrl"); ok {
		input.GithubURL = &v
	}
	if v, ok := formValue(form, "liveUrl"); ok {
		input.LiveURL = &v
	}
	if v, ok := formValue(form, "featured"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("featured must be a boolean")
		}
		input.Featured = &b
	}
	if v, ok := formValue(form, "order"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("order must be an integer")
		}
		input.Order = &n
	}

	file, header, err := r.FormFile("image")
	if err == http.ErrMissingFile {
		return input, nil, nil, nil
	}
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid image upload")
	}

	return input, file, header, nil
}

func formValue(form map[string][]string, key string) (string, bool) {
	vs, ok := form[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

// pathID parses the {id} route variable; unparseable ids behave like
// unknown ones.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
