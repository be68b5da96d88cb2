package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cryptotrack/portfolio-api/internal/core/domain"
	"github.com/cryptotrack/portfolio-api/internal/core/ports"
)

// AssetHandler handles the owner-scoped watchlist CRUD endpoints.
type AssetHandler struct {
	service ports.AssetService
}

func NewAssetHandler(service ports.AssetService) *AssetHandler {
	return &AssetHandler{service: service}
}

// Create adds an asset to the caller's watchlist.
//
// @Summary      Create an asset
// @Tags         assets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createAssetRequest  true  "Asset details"
// @Success      201   {object}  assetResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /assets [post]
func (h *AssetHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createAssetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	asset, err := h.service.Create(c.Request().Context(), identity, ports.CreateAssetInput{
		Ticker:      req.Ticker,
		Name:        req.Name,
		TargetPrice: *req.TargetPrice,
		Quantity:    *req.Quantity,
		BuyPrice:    *req.BuyPrice,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, assetResponse{Asset: asset})
}

// List returns assets scoped by role: admins get every asset with the owner
// expanded, regular users only their own.
//
// @Summary      List assets
// @Tags         assets
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  assetsResponse
// @Failure      401  {object}  errorResponse
// @Router       /assets [get]
func (h *AssetHandler) List(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	list, err := h.service.List(c.Request().Context(), identity)
	if err != nil {
		return err
	}

	if identity.Role == domain.RoleAdmin {
		assets := list.All
		if assets == nil {
			assets = []*domain.AdminAsset{}
		}
		return c.JSON(http.StatusOK, assetsResponse{Assets: assets})
	}

	assets := list.Owned
	if assets == nil {
		assets = []*domain.Asset{}
	}
	return c.JSON(http.StatusOK, assetsResponse{Assets: assets})
}

// Update replaces all mutable fields of an owned asset.
//
// @Summary      Update an asset
// @Tags         assets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Asset id"
// @Param        body  body      updateAssetRequest  true  "Replacement fields"
// @Success      200   {object}  assetResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /assets/{id} [put]
func (h *AssetHandler) Update(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateAssetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	// No c.Validate here: the service checks the body only after the asset
	// is found and owned by the caller.
	asset, err := h.service.Update(c.Request().Context(), identity, c.Param("id"), ports.UpdateAssetInput{
		Ticker:      req.Ticker,
		Name:        req.Name,
		TargetPrice: req.TargetPrice,
		Quantity:    req.Quantity,
		BuyPrice:    req.BuyPrice,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, assetResponse{Asset: asset})
}

// Delete removes an owned asset.
//
// @Summary      Delete an asset
// @Tags         assets
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Asset id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /assets/{id} [delete]
func (h *AssetHandler) Delete(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), identity, c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Asset deleted"})
}
