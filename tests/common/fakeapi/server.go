//go:build unit || e2e

// Package fakeapi serves the subset of the parking REST API the gateway
// calls, backed by in-memory state.
package fakeapi

import (
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	ContactNumber = "9876543210"
	Password      = "secret123"
	UserID        = 42
	LocationID    = 5
	VehicleID     = 12

	signingKey = "fake-upstream-key"
)

type slotState struct {
	ID          int    `json:"id"`
	SlotNumber  string `json:"slot_number"`
	VehicleType string `json:"vehicle_type"`
	taken       bool
}

type Server struct {
	*httptest.Server

	mu       sync.Mutex
	tokens   map[string]bool
	slots    []*slotState
	bookings map[int]map[string]any
	nextID   int
}

// New starts a server with one location holding two four-wheeler slots.
// Close it when done.
func New() *Server {
	s := &Server{}
	s.Reset()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", s.login)
	mux.HandleFunc("POST /api/auth/logout", s.authed(s.logout))
	mux.HandleFunc("GET /api/auth/user", s.authed(s.user))
	mux.HandleFunc("GET /api/bookings", s.authed(s.listBookings))
	mux.HandleFunc("GET /api/bookings/{id}", s.authed(s.getBooking))
	mux.HandleFunc("POST /api/bookings/advance", s.authed(s.createAdvance))
	mux.HandleFunc("POST /api/bookings/{id}/cancel", s.authed(s.setStatus("cancelled")))
	mux.HandleFunc("POST /api/bookings/{id}/complete", s.authed(s.setStatus("completed")))
	mux.HandleFunc("GET /api/parking-locations", s.authed(s.listLocations))
	mux.HandleFunc("GET /api/parking-locations/{id}", s.authed(s.getLocation))
	mux.HandleFunc("GET /api/parking-locations/{id}/available-slots", s.authed(s.availableSlots))
	mux.HandleFunc("GET /api/vehicles", s.authed(s.listVehicles))

	s.Server = httptest.NewServer(mux)
	return s
}

// BaseURL is the value for the gateway's upstream base URL.
func (s *Server) BaseURL() string {
	return s.URL + "/api"
}

// Reset drops bookings and issued tokens and frees every slot.
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = make(map[string]bool)
	s.slots = []*slotState{
		{ID: 1, SlotNumber: "A-1", VehicleType: "4-wheeler"},
		{ID: 2, SlotNumber: "A-2", VehicleType: "4-wheeler"},
	}
	s.bookings = make(map[int]map[string]any)
	s.nextID = 100
}

// TakeSlot marks a slot as booked by someone else.
func (s *Server) TakeSlot(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sl := range s.slots {
		if sl.ID == id {
			sl.taken = true
		}
	}
}

// RevokeTokens makes every issued token fail with 401.
func (s *Server) RevokeTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for tok := range s.tokens {
		s.tokens[tok] = false
	}
}

func (s *Server) BookingStatus(id int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.bookings[id]; ok {
		status, _ := b["status"].(string)
		return status
	}
	return ""
}

func (s *Server) authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tok := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		s.mu.Lock()
		valid := s.tokens[tok]
		s.mu.Unlock()
		if !valid {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Unauthenticated."})
			return
		}
		next(w, r)
	}
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ContactNumber string `json:"contact_number"`
		Password      string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "Malformed body."})
		return
	}
	if body.ContactNumber != ContactNumber || body.Password != Password {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Invalid credentials."})
		return
	}

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": fmt.Sprint(UserID),
		"exp":     time.Now().Add(time.Hour).Unix(),
		"jti":     fmt.Sprint(time.Now().UnixNano()),
	}).SignedString([]byte(signingKey))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"message": err.Error()})
		return
	}

	s.mu.Lock()
	s.tokens[tok] = true
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"token": tok, "user": userJSON()})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	tok := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	s.mu.Lock()
	delete(s.tokens, tok)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"message": "Logged out."})
}

func (s *Server) user(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"user": userJSON()})
}

func (s *Server) listBookings(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	list := make([]map[string]any, 0, len(s.bookings))
	for _, b := range s.bookings {
		list = append(list, maps.Clone(b))
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"bookings": list})
}

func (s *Server) getBooking(w http.ResponseWriter, r *http.Request) {
	b, ok := s.lookup(r.PathValue("id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "Booking not found."})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"booking": b})
}

func (s *Server) createAdvance(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ParkingLocationID string `json:"parking_location_id"`
		VehicleID         string `json:"vehicle_id"`
		ParkingSlotID     string `json:"parking_slot_id"`
		Date              string `json:"date"`
		StartTime         string `json:"start_time"`
		EndTime           string `json:"end_time"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "Malformed body."})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var picked *slotState
	for _, sl := range s.slots {
		if fmt.Sprint(sl.ID) == body.ParkingSlotID {
			picked = sl
		}
	}
	if picked == nil || picked.taken {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"message": "The given data was invalid.",
			"errors":  map[string][]string{"parking_slot_id": {"The selected slot is not available."}},
		})
		return
	}
	picked.taken = true

	s.nextID++
	b := map[string]any{
		"id":                    s.nextID,
		"status":                "booked",
		"start_time":            body.Date + " " + body.StartTime + ":00",
		"end_time":              body.Date + " " + body.EndTime + ":00",
		"vehicle_id":            body.VehicleID,
		"parking_location_id":   body.ParkingLocationID,
		"parking_slot_id":       body.ParkingSlotID,
		"parking_location_name": "Central Plaza",
		"slot_number":           picked.SlotNumber,
		"amount":                "40.00",
	}
	s.bookings[s.nextID] = b
	writeJSON(w, http.StatusCreated, map[string]any{"booking": b})
}

func (s *Server) setStatus(status string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		for id, b := range s.bookings {
			if fmt.Sprint(id) == r.PathValue("id") {
				b["status"] = status
				writeJSON(w, http.StatusOK, map[string]any{"booking": maps.Clone(b)})
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "Booking not found."})
	}
}

func (s *Server) listLocations(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"parking_locations": []any{locationJSON()}})
}

func (s *Server) getLocation(w http.ResponseWriter, r *http.Request) {
	if r.PathValue("id") != fmt.Sprint(LocationID) {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "Location not found."})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"parking_location": locationJSON()})
}

func (s *Server) availableSlots(w http.ResponseWriter, r *http.Request) {
	if r.PathValue("id") != fmt.Sprint(LocationID) {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "Location not found."})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	slots := make([]map[string]any, 0, len(s.slots))
	free := 0
	for _, sl := range s.slots {
		if !sl.taken {
			free++
		}
		status := "available"
		if sl.taken {
			status = "booked"
		}
		slots = append(slots, map[string]any{
			"id":                          sl.ID,
			"slot_number":                 sl.SlotNumber,
			"vehicle_type":                sl.VehicleType,
			"is_active":                   true,
			"is_occupied":                 false,
			"has_upcoming_booking":        sl.taken,
			"is_available_for_time_range": !sl.taken,
			"status":                      status,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"slots": slots,
		"slot_availabilities": []any{map[string]any{
			"vehicle_type":    "4-wheeler",
			"available_slots": free,
			"total_slots":     len(s.slots),
		}},
	})
}

func (s *Server) listVehicles(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"vehicles": []any{map[string]any{
		"id":           VehicleID,
		"type":         "4-wheeler",
		"number_plate": "KA01AB1234",
		"brand":        "Maruti",
		"model":        "Swift",
	}}})
}

func (s *Server) lookup(id string) (map[string]any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, b := range s.bookings {
		if fmt.Sprint(k) == id {
			return maps.Clone(b), true
		}
	}
	return nil, false
}

func userJSON() map[string]any {
	return map[string]any{
		"id":             UserID,
		"name":           "Asha Rao",
		"contact_number": ContactNumber,
		"role":           "user",
	}
}

func locationJSON() map[string]any {
	return map[string]any{
		"id":                 LocationID,
		"name":               "Central Plaza",
		"address":            "MG Road",
		"four_wheeler_price": "20.00",
		"is_active":          true,
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
