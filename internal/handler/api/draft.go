package api

import (
	"errors"
	"net/http"

	reqdto "parking-booking-gateway/internal/handler/dto/request"
	"parking-booking-gateway/internal/handler/httperr"
	"parking-booking-gateway/internal/pkg/errs"
	"parking-booking-gateway/internal/usecase/commands"
	"parking-booking-gateway/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

type DraftHandler struct {
	drafts   commands.DraftCommands
	bookings commands.BookingCommands
}

func NewDraftHandler(drafts commands.DraftCommands, bookings commands.BookingCommands) *DraftHandler {
	return &DraftHandler{drafts: drafts, bookings: bookings}
}

// @Summary Search available slots
// @Description Validate the booking window, fetch the slots and store them on the session draft
// @Tags booking-draft
// @Accept json
// @Produce json
// @Param request body reqdto.SearchSlotsRequest true "Search request"
// @Success 200 {object} commands.Draft
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 422 {object} httperr.Response "detail holds the draft"
// @Router /booking-draft/search [post]
func (h *DraftHandler) Search(c *gin.Context) {
	ns, ok := namespace(c)
	if !ok {
		return
	}
	var req reqdto.SearchSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, msgInvalidRequest, nil)
		return
	}

	draft, err := h.drafts.Search(c.Request.Context(), ns, req.ToCommand())
	if err != nil {
		writeDraftError(c, err, draft, commands.MsgSlotsLoadFailed)
		return
	}
	c.JSON(http.StatusOK, draft)
}

// @Summary Toggle slot selection
// @Description Select a free slot, or clear the selection when it is already selected
// @Tags booking-draft
// @Accept json
// @Produce json
// @Param request body reqdto.ToggleSlotRequest true "Toggle request"
// @Success 200 {object} commands.Draft
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /booking-draft/toggle-slot [post]
func (h *DraftHandler) ToggleSlot(c *gin.Context) {
	ns, ok := namespace(c)
	if !ok {
		return
	}
	var req reqdto.ToggleSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, msgInvalidRequest, nil)
		return
	}

	draft, err := h.drafts.Toggle(c.Request.Context(), ns, string(req.SlotID))
	if err != nil {
		writeError(c, err, msgInternal)
		return
	}
	c.JSON(http.StatusOK, draft)
}

// @Summary Get booking draft
// @Tags booking-draft
// @Produce json
// @Success 200 {object} commands.Draft
// @Failure 404 {object} httperr.Response
// @Router /booking-draft [get]
func (h *DraftHandler) Get(c *gin.Context) {
	ns, ok := namespace(c)
	if !ok {
		return
	}
	draft, err := h.drafts.Get(c.Request.Context(), ns)
	if err != nil {
		writeError(c, err, msgInternal)
		return
	}
	c.JSON(http.StatusOK, draft)
}

// @Summary Submit booking
// @Description Re-check the selected slot and create the booking
// @Tags booking-draft
// @Accept json
// @Produce json
// @Param request body reqdto.SubmitBookingRequest false "Submit request"
// @Success 201 {object} commands.SubmitResult
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /booking-draft/submit [post]
func (h *DraftHandler) Submit(c *gin.Context) {
	ns, ok := namespace(c)
	if !ok {
		return
	}
	var req reqdto.SubmitBookingRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, msgInvalidRequest, nil)
			return
		}
	}

	res, err := h.bookings.Submit(c.Request.Context(), ns, req.ToCommand())
	if err != nil {
		writeError(c, err, commands.MsgBookingFailed)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// writeDraftError returns the failed draft beside the error so the form can
// render its message and hide the slot grid.
func writeDraftError(c *gin.Context, err error, draft *commands.Draft, fallback string) {
	if draft == nil || errors.Is(err, errs.ErrUnauthenticated) {
		writeError(c, err, fallback)
		return
	}
	httperr.AbortWithError(c, statusOf(err), err, shared.MessageOf(err, fallback), gin.H{"draft": draft})
}
