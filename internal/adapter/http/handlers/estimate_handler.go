package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	request "github.com/michaelsjacques/dreamcraft-estimator/internal/adapter/http/dto/request"
	response "github.com/michaelsjacques/dreamcraft-estimator/internal/adapter/http/dto/response"
	"github.com/michaelsjacques/dreamcraft-estimator/internal/domain/entities"
	"github.com/michaelsjacques/dreamcraft-estimator/internal/extraction"
	"github.com/michaelsjacques/dreamcraft-estimator/internal/imaging"
	"github.com/michaelsjacques/dreamcraft-estimator/internal/infrastructure/generator"
	"github.com/michaelsjacques/dreamcraft-estimator/internal/pricing"
	"github.com/michaelsjacques/dreamcraft-estimator/internal/usecase"
	"github.com/michaelsjacques/dreamcraft-estimator/pkg"
)

var (
	errInvalidEstimatePayload = pkg.NewDomainErrorSimple("INVALID_ESTIMATE_INPUT", "Invalid estimate payload", http.StatusBadRequest)
	errInvalidLineItemIndex   = pkg.NewDomainErrorSimple("INVALID_ITEM_INDEX", "Line item index must be a non-negative integer", http.StatusBadRequest)
)

// EstimateHandler handles HTTP requests for fabrication estimates: the
// generation pipeline plus every per-document operation the dashboard uses.

type EstimateHandler struct {
	usecase usecase.IEstimateUseCase
}

func NewEstimateHandler(uc usecase.IEstimateUseCase) *EstimateHandler {
	return &EstimateHandler{usecase: uc}
}

// CreateEstimate accepts a multipart form with booth context and up to ten
// render files under "images", runs the generation pipeline and returns the
// stored document. Individual render failures are reported alongside a 201;
// the request fails only when generation or extraction fails.
func (h *EstimateHandler) CreateEstimate(c *gin.Context) {
	var form request.CreateEstimateForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}

	images, err := readImageFiles(c)
	if err != nil {
		appErr := pkg.NewDomainError("INVALID_IMAGE_UPLOAD", "Could not read uploaded images", err, http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	doc, fileErrors, err := h.usecase.CreateEstimate(c.Request.Context(), usecase.CreateEstimateParams{
		Location:      entities.LocationType(form.Location),
		BoothSizeKey:  form.BoothSize,
		SquareFootage: form.SquareFootage,
		Images:        images,
		ClientName:    form.ClientName,
		ProjectName:   form.ProjectName,
	})
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromCreateResult(doc, fileErrors))
}

func readImageFiles(c *gin.Context) ([]imaging.RawImage, error) {
	mpForm, err := c.MultipartForm()
	if err != nil {
		// Form-only requests without any file part are fine.
		return nil, nil
	}

	files := mpForm.File["images"]
	images := make([]imaging.RawImage, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		images = append(images, imaging.RawImage{
			Data:         data,
			DeclaredType: fh.Header.Get("Content-Type"),
			Name:         fh.Filename,
		})
	}
	return images, nil
}

func (h *EstimateHandler) ListEstimates(c *gin.Context) {
	docs, err := h.usecase.List(c.Request.Context())
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromEstimateList(docs))
}

func (h *EstimateHandler) GetEstimate(c *gin.Context) {
	doc, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *EstimateHandler) DeleteEstimate(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.Status(http.StatusNoContent)
}

// RefineEstimate re-runs generation with the answered clarifying questions.
// On any failure the stored document is untouched.
func (h *EstimateHandler) RefineEstimate(c *gin.Context) {
	var payload request.RefineRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}

	doc, err := h.usecase.Refine(c.Request.Context(), c.Param("id"), payload.Answers)
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *EstimateHandler) AddLineItem(c *gin.Context) {
	var payload request.LineItemRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}

	doc, err := h.usecase.AddLineItem(c.Request.Context(), c.Param("id"), entities.TierKey(c.Param("tier")), payload.ToEntity())
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *EstimateHandler) UpdateLineItem(c *gin.Context) {
	index, ok := parseIndex(c)
	if !ok {
		return
	}

	var payload request.LineItemRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}

	doc, err := h.usecase.UpdateLineItem(c.Request.Context(), c.Param("id"), entities.TierKey(c.Param("tier")), index, payload.ToEntity())
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *EstimateHandler) DeleteLineItem(c *gin.Context) {
	index, ok := parseIndex(c)
	if !ok {
		return
	}

	doc, err := h.usecase.DeleteLineItem(c.Request.Context(), c.Param("id"), entities.TierKey(c.Param("tier")), index)
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *EstimateHandler) UpdateLogistics(c *gin.Context) {
	var payload request.LogisticsRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}

	doc, err := h.usecase.UpdateLogistics(
		c.Request.Context(),
		c.Param("id"),
		entities.TierKey(c.Param("tier")),
		entities.LogisticsCategory(c.Param("category")),
		payload.Amount,
	)
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *EstimateHandler) UpdateStatus(c *gin.Context) {
	var payload request.StatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}

	doc, err := h.usecase.UpdateStatus(c.Request.Context(), c.Param("id"), entities.EstimateStatus(payload.Status))
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *EstimateHandler) UpdateDetails(c *gin.Context) {
	var payload request.DetailsRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}

	details := usecase.EstimateDetails{
		ClientName:  payload.ClientName,
		ProjectName: payload.ProjectName,
		QuoteNumber: payload.QuoteNumber,
	}
	if payload.SelectedTier != nil {
		tier := entities.TierKey(*payload.SelectedTier)
		details.SelectedTier = &tier
	}

	doc, err := h.usecase.UpdateDetails(c.Request.Context(), c.Param("id"), details)
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, doc)
}

// ExportEstimate renders the client-facing quote for one tier. The tier
// query parameter defaults to the document's selected tier.
func (h *EstimateHandler) ExportEstimate(c *gin.Context) {
	doc, key, err := h.usecase.ExportTier(c.Request.Context(), c.Param("id"), c.Query("tier"))
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromExport(doc, key, time.Now().UTC()))
}

func parseIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		c.JSON(errInvalidLineItemIndex.HTTPStatus, errInvalidLineItemIndex.ToHTTPError())
		return 0, false
	}
	return index, true
}

func mapEstimateError(err error) *pkg.AppError {
	var malformed *extraction.MalformedJSONError

	switch {
	case errors.Is(err, usecase.ErrInvalidEstimateID),
		errors.Is(err, usecase.ErrInvalidLocation),
		errors.Is(err, usecase.ErrInvalidBoothSize),
		errors.Is(err, usecase.ErrInvalidStatus),
		errors.Is(err, usecase.ErrInvalidTier),
		errors.Is(err, usecase.ErrNoQuestions),
		errors.Is(err, pricing.ErrUnknownTier),
		errors.Is(err, pricing.ErrUnknownLogisticsKey),
		errors.Is(err, pricing.ErrItemIndexOutOfRange):
		return pkg.NewDomainError("INVALID_REQUEST", err.Error(), err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrEstimateNotFound):
		return pkg.NewDomainErrorSimple("ESTIMATE_NOT_FOUND", "Estimate not found", http.StatusNotFound)
	case errors.Is(err, extraction.ErrTruncated):
		return pkg.NewDomainError("RESPONSE_TRUNCATED", err.Error(), err, http.StatusUnprocessableEntity)
	case errors.Is(err, extraction.ErrNoJSON), errors.As(err, &malformed):
		return pkg.NewDomainError("RESPONSE_UNPARSEABLE", "Generator response could not be parsed", err, http.StatusUnprocessableEntity)
	case errors.Is(err, pricing.ErrSchema):
		return pkg.NewDomainError("RESPONSE_SCHEMA_INVALID", err.Error(), err, http.StatusUnprocessableEntity)
	case errors.Is(err, generator.ErrGeneratorTransport), errors.Is(err, usecase.ErrEmptyResponse):
		return pkg.NewDomainError("GENERATOR_UNAVAILABLE", "Estimate generator is unavailable", err, http.StatusBadGateway)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
