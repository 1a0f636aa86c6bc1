package category

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/moneta-app/moneta/internal/rest"
	log "github.com/sirupsen/logrus"
)

type CustomCategoryDTO struct {
	Id    int    `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

type CatalogDTO struct {
	Predefined []string            `json:"predefined"`
	Custom     []CustomCategoryDTO `json:"custom"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// List godoc
// @Summary List categories
// @Description Predefined categories followed by the user's custom ones
// @Tags Category
// @Produce json
// @Success 200 {object} CatalogDTO
// @Router /api/categories [get]
// @Security XUserId
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing categories")
	catalog, err := h.service.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dto := CatalogDTO{
		Predefined: make([]string, 0, len(catalog.Predefined)),
		Custom:     make([]CustomCategoryDTO, 0, len(catalog.Custom)),
	}
	for _, p := range catalog.Predefined {
		dto.Predefined = append(dto.Predefined, string(p))
	}
	for _, c := range catalog.Custom {
		dto.Custom = append(dto.Custom, toDTO(c))
	}
	rest.WriteJSON(w, http.StatusOK, dto)
}

// Create godoc
// @Summary Create a custom category
// @Tags Category
// @Accept json
// @Produce json
// @Param category body CustomCategoryDTO true "Category"
// @Success 201 {object} CustomCategoryDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Failure 409 {object} rest.ErrorResponse "Category exists"
// @Router /api/categories [post]
// @Security XUserId
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating custom category")
	var dto CustomCategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return
	}

	created, err := h.service.Create(r.Context(), fromDTO(dto))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, toDTO(created))
}

// Update godoc
// @Summary Update a custom category
// @Description Changes icon and color; the name is immutable
// @Tags Category
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param category body CustomCategoryDTO true "Category"
// @Success 200 {object} CustomCategoryDTO
// @Router /api/categories/{id} [put]
// @Security XUserId
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	log.Debugf("Updating custom category %d", id)
	var dto CustomCategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return
	}
	dto.Id = id

	updated, err := h.service.Update(r.Context(), fromDTO(dto))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, toDTO(updated))
}

// Delete godoc
// @Summary Delete a custom category
// @Description Transactions and recurring expenses using it are moved to "other"
// @Tags Category
// @Param id path int true "Category ID"
// @Success 204 "No Content"
// @Router /api/categories/{id} [delete]
// @Security XUserId
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	log.Debugf("Deleting custom category %d", id)
	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrCategoryNotFound):
		rest.WriteError(w, http.StatusNotFound, "Category not found", "")
	case errors.Is(err, ErrCategoryExists):
		rest.WriteError(w, http.StatusConflict, "Category already exists", "")
	case errors.Is(err, ErrCategoryShadowsPredefined), errors.Is(err, ErrInvalidCategory):
		rest.WriteError(w, http.StatusBadRequest, "Invalid category", err.Error())
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func toDTO(c CustomCategory) CustomCategoryDTO {
	return CustomCategoryDTO{Id: c.Id, Name: c.Name, Icon: c.Icon, Color: c.Color}
}

func fromDTO(dto CustomCategoryDTO) CustomCategory {
	return CustomCategory{Id: dto.Id, Name: dto.Name, Icon: dto.Icon, Color: dto.Color}
}
