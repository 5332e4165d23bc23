package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/domain"
	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/service"
	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/util"
	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/wizard"
)

type PackageHandler struct {
	packages *service.PackageService
}

// packageDraftRequest carries the full wizard draft plus the optional id of
// the row it overwrites. An absent id creates a new package.
type packageDraftRequest struct {
	ID    *string      `json:"id,omitempty"`
	Draft wizard.Draft `json:"draft"`
}

func (r packageDraftRequest) packageID() (uuid.UUID, error) {
	if r.ID == nil || *r.ID == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(*r.ID)
}

func RegisterPackages(e *echo.Echo, auth *service.AuthService, packages *service.PackageService) {
	handler := &PackageHandler{packages: packages}

	group := e.Group("/api/v1/packages", RequireAuth(auth))
	group.GET("", handler.list)
	group.GET("/:id", handler.get)
	group.GET("/slug/:slug", handler.getBySlug)
	group.GET("/:id/draft", handler.loadDraft)
	group.POST("/draft", handler.saveDraft)
	group.POST("/publish", handler.publish)
	group.POST("/media", handler.uploadMedia)

	admin := e.Group("/api/v1/packages", RequireAuth(auth), RequireAdmin(auth))
	admin.POST("/:id/archive", handler.archive)
}

func (h *PackageHandler) saveDraft(c echo.Context) error {
	var req packageDraftRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	id, err := req.packageID()
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("id must be a valid UUID"))
	}

	savedID, err := h.packages.SaveDraft(c.Request().Context(), id, req.Draft)
	if err != nil {
		return h.draftError(c, err)
	}
	status := http.StatusOK
	if id == uuid.Nil {
		status = http.StatusCreated
	}
	return c.JSON(status, util.Envelope{"id": savedID})
}

func (h *PackageHandler) publish(c echo.Context) error {
	var req packageDraftRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	id, err := req.packageID()
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("id must be a valid UUID"))
	}

	publishedID, err := h.packages.Publish(c.Request().Context(), id, req.Draft)
	if err != nil {
		return h.draftError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{"id": publishedID})
}

func (h *PackageHandler) draftError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrTitleRequired):
		return c.JSON(http.StatusUnprocessableEntity, util.Error("package title is required"))
	case errors.Is(err, service.ErrSlugTaken):
		return c.JSON(http.StatusConflict, util.Error("slug already in use"))
	case errors.Is(err, service.ErrPackageNotFound):
		return c.JSON(http.StatusNotFound, util.Error("package not found"))
	case errors.Is(err, service.ErrImageTooLarge):
		return c.JSON(http.StatusRequestEntityTooLarge, util.Error("image exceeds the upload size limit"))
	default:
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
}

func (h *PackageHandler) uploadMedia(c echo.Context) error {
	pkgID := uuid.Nil
	if raw := c.FormValue("package_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, util.Error("package_id must be a valid UUID"))
		}
		pkgID = parsed
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("file is required"))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("unable to read file"))
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("unable to read file"))
	}

	url, err := h.packages.UploadMedia(c.Request().Context(), pkgID, data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, service.ErrImageTooLarge) {
			return c.JSON(http.StatusRequestEntityTooLarge, util.Error("image exceeds the upload size limit"))
		}
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	return c.JSON(http.StatusCreated, util.Envelope{"url": url})
}

func (h *PackageHandler) loadDraft(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("id must be a valid UUID"))
	}

	draft, err := h.packages.LoadDraft(c.Request().Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPackageNotFound):
			return c.JSON(http.StatusNotFound, util.Error("package not found"))
		case errors.Is(err, service.ErrPackageNotDraft):
			return c.JSON(http.StatusConflict, util.Error("package is not a draft"))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("could not load draft"))
		}
	}
	return c.JSON(http.StatusOK, util.Envelope{"draft": draft})
}

func (h *PackageHandler) get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("id must be a valid UUID"))
	}

	pkg, err := h.packages.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPackageNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("package not found"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("could not load package"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"package": pkg})
}

func (h *PackageHandler) getBySlug(c echo.Context) error {
	pkg, err := h.packages.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrPackageNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("package not found"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("could not load package"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"package": pkg})
}

func (h *PackageHandler) list(c echo.Context) error {
	filter := domain.PackageFilter{}
	filter.Limit, _ = strconv.Atoi(c.QueryParam("limit"))
	filter.Offset, _ = strconv.Atoi(c.QueryParam("offset"))

	if raw := c.QueryParam("status"); raw != "" {
		status := domain.PackageStatus(raw)
		filter.Status = &status
	}
	if raw := c.QueryParam("destination_id"); raw != "" {
		destinationID, err := uuid.Parse(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, util.Error("destination_id must be a valid UUID"))
		}
		filter.DestinationID = &destinationID
	}
	if raw := c.QueryParam("q"); raw != "" {
		filter.Query = &raw
	}

	packages, err := h.packages.List(c.Request().Context(), filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("could not list packages"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"packages": packages})
}

func (h *PackageHandler) archive(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("id must be a valid UUID"))
	}
	actor, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	if err := h.packages.Archive(c.Request().Context(), id, actor.ID); err != nil {
		if errors.Is(err, service.ErrPackageNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("package not found"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("could not archive package"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"success": true})
}
