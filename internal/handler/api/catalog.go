package api

import (
	"net/http"

	"parking-booking-gateway/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	q queries.CatalogQueries
}

func NewCatalogHandler(q queries.CatalogQueries) *CatalogHandler {
	return &CatalogHandler{q: q}
}

// @Summary List parking locations
// @Tags catalog
// @Produce json
// @Success 200 {array} readmodel.LocationRM
// @Failure 401 {object} httperr.Response
// @Router /parking-locations [get]
func (h *CatalogHandler) Locations(c *gin.Context) {
	ns, ok := namespace(c)
	if !ok {
		return
	}
	list, err := h.q.Locations(c.Request.Context(), ns)
	if err != nil {
		writeError(c, err, "Failed to load parking locations.")
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Get parking location
// @Tags catalog
// @Produce json
// @Param id path string true "Parking location ID"
// @Success 200 {object} readmodel.LocationRM
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /parking-locations/{id} [get]
func (h *CatalogHandler) Location(c *gin.Context) {
	ns, ok := namespace(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	loc, err := h.q.Location(c.Request.Context(), ns, id)
	if err != nil {
		writeError(c, err, "Failed to load parking location.")
		return
	}
	c.JSON(http.StatusOK, loc)
}

// @Summary List vehicles
// @Tags catalog
// @Produce json
// @Success 200 {array} readmodel.VehicleRM
// @Failure 401 {object} httperr.Response
// @Router /vehicles [get]
func (h *CatalogHandler) Vehicles(c *gin.Context) {
	ns, ok := namespace(c)
	if !ok {
		return
	}
	list, err := h.q.Vehicles(c.Request.Context(), ns)
	if err != nil {
		writeError(c, err, "Failed to load vehicles.")
		return
	}
	c.JSON(http.StatusOK, list)
}
