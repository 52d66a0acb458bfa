package api

import (
	"net/http"
	"strings"

	"parking-booking-gateway/internal/domain/booking"
	"parking-booking-gateway/internal/handler/httperr"
	"parking-booking-gateway/internal/usecase/commands"
	"parking-booking-gateway/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	q    queries.BookingQueries
	cmds commands.BookingCommands
}

func NewBookingHandler(q queries.BookingQueries, cmds commands.BookingCommands) *BookingHandler {
	return &BookingHandler{q: q, cmds: cmds}
}

// @Summary List bookings
// @Description Fetch the bookings of the session from the upstream; the cache stands in when it is unreachable
// @Tags bookings
// @Produce json
// @Param tab query string false "Only one tab" Enums(active, upcoming, completed)
// @Success 200 {object} queries.BookingList
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	ns, ok := namespace(c)
	if !ok {
		return
	}
	tab, ok := tabOf(c)
	if !ok {
		return
	}
	list, err := h.q.Refresh(c.Request.Context(), ns)
	if err != nil {
		writeError(c, err, queries.MsgBookingsLoadFailed)
		return
	}
	c.JSON(http.StatusOK, inTab(list, tab))
}

// @Summary Cached bookings
// @Description Render the last fetched bookings without calling the upstream
// @Tags bookings
// @Produce json
// @Param tab query string false "Only one tab" Enums(active, upcoming, completed)
// @Success 200 {object} queries.BookingList
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /bookings/cached [get]
func (h *BookingHandler) Cached(c *gin.Context) {
	ns, ok := namespace(c)
	if !ok {
		return
	}
	tab, ok := tabOf(c)
	if !ok {
		return
	}
	list, err := h.q.Cached(c.Request.Context(), ns)
	if err != nil {
		writeError(c, err, queries.MsgBookingsLoadFailed)
		return
	}
	c.JSON(http.StatusOK, inTab(list, tab))
}

// @Summary Get booking
// @Description Get one booking; falls back to the cached row
// @Tags bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} queries.BookingDetail
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	ns, ok := namespace(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	detail, err := h.q.Details(c.Request.Context(), ns, id)
	if err != nil {
		writeError(c, err, queries.MsgBookingLoadFailed)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// @Summary Cancel booking
// @Tags bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} commands.CancelResult
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	ns, ok := namespace(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	res, err := h.cmds.Cancel(c.Request.Context(), ns, id)
	if err != nil {
		writeError(c, err, commands.MsgCancelFailed)
		return
	}
	c.JSON(http.StatusOK, res)
}

// tabOf reads the optional ?tab= filter; an absent tab means every booking.
func tabOf(c *gin.Context) (booking.Bucket, bool) {
	raw := c.Query("tab")
	if raw == "" {
		return booking.BucketNone, true
	}
	tab, ok := booking.ParseBucket(raw)
	if !ok {
		httperr.AbortWithError(c, http.StatusBadRequest, errInvalidTab, "Invalid tab", nil)
		return booking.BucketNone, false
	}
	return tab, true
}

func inTab(list *queries.BookingList, tab booking.Bucket) *queries.BookingList {
	if tab == booking.BucketNone {
		return list
	}
	return list.InTab(tab)
}

func pathID(c *gin.Context) (string, bool) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" || strings.ContainsAny(id, "/?#") {
		httperr.AbortWithError(c, http.StatusBadRequest, errInvalidID, "Invalid id", nil)
		return "", false
	}
	return id, true
}
