package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/gorilla/mux"

	"mastermind/pkg/fakedata"
	"mastermind/pkg/generate"
	"mastermind/pkg/logger"
	"mastermind/pkg/models"
	"mastermind/pkg/schedule"
	"mastermind/pkg/store"
	"mastermind/pkg/telemetry"
	"mastermind/pkg/utils"
	"mastermind/pkg/validate"
)

const maxBodyBytes = 1 << 20

var gen *generate.Generator

// RegisterCalendars registers all calendar HTTP routes to the provided
// router. The generator is kept package-wide, mirroring how the store
// keeps its handle.
func RegisterCalendars(r *mux.Router, g *generate.Generator) {
	gen = g

	r.HandleFunc("/calendars", createCalendar).Methods(http.MethodPost)
	r.HandleFunc("/calendars", listCalendars).Methods(http.MethodGet)
	r.HandleFunc("/calendars/next", createNextCalendar).Methods(http.MethodPost)
	r.HandleFunc("/calendars/validate", validateCalendar).Methods(http.MethodPost)
	r.HandleFunc("/calendars/{week}", getCalendar).Methods(http.MethodGet)
	r.HandleFunc("/sample-data", sampleData).Methods(http.MethodGet)
}

// createCalendar handles POST /calendars. It generates, validates and
// stores a calendar for the requested (or next) week.
func createCalendar(w http.ResponseWriter, r *http.Request) {
	var req models.CalendarRequest
	if err := utils.DecodeJSON(r, &req, maxBodyBytes); err != nil {
		utils.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondGenerated(w, r, func() (models.CalendarResponse, error) {
		return gen.GenerateCalendar(r.Context(), req)
	})
}

// createNextCalendar handles POST /calendars/next. The body carries the
// request plus the current week start; the calendar is generated for the
// following week.
func createNextCalendar(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Request          models.CalendarRequest `json:"request"`
		CurrentWeekStart time.Time              `json:"current_week_start"`
	}
	if err := utils.DecodeJSON(r, &body, maxBodyBytes); err != nil {
		utils.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if body.CurrentWeekStart.IsZero() {
		utils.JSONError(w, http.StatusBadRequest, "current_week_start is required")
		return
	}
	respondGenerated(w, r, func() (models.CalendarResponse, error) {
		return gen.GenerateNextWeek(r.Context(), body.Request, body.CurrentWeekStart)
	})
}

func respondGenerated(w http.ResponseWriter, r *http.Request, run func() (models.CalendarResponse, error)) {
	start := time.Now()
	resp, err := run()
	if err != nil {
		var cfgErr *schedule.ConfigError
		var slotErr *schedule.InsufficientSlotsError
		switch {
		case errors.As(err, &cfgErr), errors.As(err, &slotErr):
			utils.JSONError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			logger.Error("calendar_generation_failed", "error", err)
			utils.JSONError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	telemetry.ObserveGeneration(time.Since(start), resp.QualityScore)
	if err := store.SaveCalendar(&resp); err != nil {
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	_ = utils.JSONWrite(w, http.StatusOK, resp)
}

// listCalendars handles GET /calendars and returns the stored week starts.
func listCalendars(w http.ResponseWriter, r *http.Request) {
	weeks, err := store.ListCalendarWeeks()
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]string, 0, len(weeks))
	for _, wk := range weeks {
		out = append(out, wk.Format(time.RFC3339))
	}
	_ = utils.JSONWrite(w, http.StatusOK, map[string][]string{"weeks": out})
}

// getCalendar handles GET /calendars/{week} where week is the RFC3339
// week start the calendar was stored under.
func getCalendar(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["week"]
	week, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "week must be an RFC3339 timestamp")
		return
	}
	resp, err := store.GetCalendar(week)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			utils.JSONError(w, http.StatusNotFound, "no calendar for week "+raw)
			return
		}
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	_ = utils.JSONWrite(w, http.StatusOK, resp)
}

// validateCalendar handles POST /calendars/validate. It scores a calendar
// without generating or storing anything.
func validateCalendar(w http.ResponseWriter, r *http.Request) {
	var cal models.Calendar
	if err := utils.DecodeJSON(r, &cal, maxBodyBytes); err != nil {
		utils.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	var v validate.Validator
	score, warnings := v.Validate(cal)
	if warnings == nil {
		warnings = []string{}
	}
	_ = utils.JSONWrite(w, http.StatusOK, map[string]interface{}{
		"quality_score": score,
		"warnings":      warnings,
	})
}

// sampleData handles GET /sample-data and returns a ready-to-use request.
func sampleData(w http.ResponseWriter, r *http.Request) {
	_ = utils.JSONWrite(w, http.StatusOK, fakedata.SampleRequest(1))
}
