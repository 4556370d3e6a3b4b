package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/mayagamaleldin/graduationproject/docs" // registers the swagger spec
	"github.com/mayagamaleldin/graduationproject/logger"
	"github.com/mayagamaleldin/graduationproject/models"
	"github.com/mayagamaleldin/graduationproject/repository"
	"github.com/mayagamaleldin/graduationproject/services"
	"github.com/mayagamaleldin/graduationproject/utils"
)

const maxAnalyzeBody = 1 << 20

// ProfileHandler serves the profile API.
type ProfileHandler struct {
	svc *services.ProfileService
}

func NewProfileHandler(svc *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

// ListProfiles godoc
// @Summary List stored profiles
// @Description Returns stored profiles, newest first
// @Tags profiles
// @Produce json
// @Param limit query int false "page size" default(50)
// @Param offset query int false "rows to skip" default(0)
// @Success 200 {object} models.ProfileListResponse
// @Failure 400 {object} models.APIResponse "invalid parameters"
// @Failure 503 {object} models.APIResponse "store disabled"
// @Router /api/profiles [get]
func (h *ProfileHandler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	limit, ok := utils.QueryInt(r, "limit", 50)
	if !ok {
		utils.WriteErrorResponse(w, http.StatusBadRequest, models.CodeInvalidParams, map[string]interface{}{"param": "limit"})
		return
	}
	offset, ok := utils.QueryInt(r, "offset", 0)
	if !ok {
		utils.WriteErrorResponse(w, http.StatusBadRequest, models.CodeInvalidParams, map[string]interface{}{"param": "offset"})
		return
	}

	recs, err := h.svc.ListProfiles(r.Context(), limit, offset)
	if err != nil {
		h.storeError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, recs)
}

// GetProfile godoc
// @Summary Get one stored profile
// @Tags profiles
// @Produce json
// @Param id path int true "profile id"
// @Success 200 {object} models.ProfileResponse
// @Failure 400 {object} models.APIResponse "invalid id"
// @Failure 404 {object} models.APIResponse "not found"
// @Failure 503 {object} models.APIResponse "store disabled"
// @Router /api/profiles/{id} [get]
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		utils.WriteErrorResponse(w, http.StatusBadRequest, models.CodeInvalidParams, map[string]interface{}{"param": "id"})
		return
	}

	rec, err := h.svc.GetProfile(r.Context(), id)
	if err != nil {
		h.storeError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, rec)
}

// AnalyzeProfile godoc
// @Summary Analyze one user record
// @Description Builds a profile from the posted record. The profile is stored only with save=true.
// @Tags profiles
// @Accept json
// @Produce json
// @Param save query bool false "store the profile"
// @Param record body models.RawUserRecord true "raw user record"
// @Success 200 {object} models.AnalyzeResponse
// @Failure 400 {object} models.APIResponse "invalid body"
// @Failure 500 {object} models.APIResponse "analysis or store failure"
// @Router /api/profiles/analyze [post]
func (h *ProfileHandler) AnalyzeProfile(w http.ResponseWriter, r *http.Request) {
	var rec models.RawUserRecord
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAnalyzeBody))
	if err := dec.Decode(&rec); err != nil {
		utils.WriteCustomErrorResponse(w, http.StatusBadRequest, models.CodeInvalidParams, "invalid record: "+err.Error(), map[string]interface{}{})
		return
	}
	if rec.Posts == nil {
		rec.Posts = []string{}
	}

	save, _ := strconv.ParseBool(r.URL.Query().Get("save"))
	profile, id, err := h.svc.AnalyzeOne(r.Context(), rec, save)
	if err != nil {
		if errors.Is(err, services.ErrStoreDisabled) {
			h.storeError(w, err)
			return
		}
		logger.Error("analyze request failed", "user", rec.DisplayName(), "error", err)
		utils.WriteCustomErrorResponse(w, http.StatusInternalServerError, models.CodeProfileGenError, err.Error(), map[string]interface{}{})
		return
	}

	if save {
		w.Header().Set("X-Profile-ID", strconv.FormatInt(id, 10))
	}
	utils.WriteSuccessResponse(w, profile)
}

// Health godoc
// @Summary Liveness probe
// @Tags system
// @Produce json
// @Success 200 {object} models.APIResponse
// @Router /healthz [get]
func (h *ProfileHandler) Health(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccessResponse(w, map[string]interface{}{
		"status":        "ok",
		"store_enabled": h.svc.StoreEnabled(),
	})
}

func (h *ProfileHandler) storeError(w http.ResponseWriter, err error) {
	if errors.Is(err, services.ErrStoreDisabled) {
		utils.WriteErrorResponse(w, http.StatusServiceUnavailable, models.CodeStoreDisabled, map[string]interface{}{})
		return
	}
	if !errors.Is(err, repository.ErrProfileNotFound) {
		logger.Error("profile store error", "error", err)
	}
	utils.HandleServiceError(w, err, func(err error) bool {
		return errors.Is(err, repository.ErrProfileNotFound) || utils.IsSQLNoRowsError(err)
	}, models.CodeProfileNotFound)
}

// RegisterRoutes mounts the API and the Swagger UI on r.
func RegisterRoutes(r chi.Router, svc *services.ProfileService) {
	h := NewProfileHandler(svc)

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Get("/healthz", h.Health)

	r.Route("/api/profiles", func(r chi.Router) {
		r.Get("/", h.ListProfiles)
		r.Post("/analyze", h.AnalyzeProfile)
		r.Get("/{id}", h.GetProfile)
	})
}
