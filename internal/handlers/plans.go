package handlers

import (
	"errors"
	"net/http"

	"futarinavi/internal/config"
	"futarinavi/internal/models"
	sentryutil "futarinavi/internal/sentry"
	"futarinavi/internal/store"
	"futarinavi/internal/timeline"
)

type planRequest struct {
	MarriageDate string          `json:"marriage_date"`
	Options      timelineOptions `json:"options"`
	CompletedIDs []string        `json:"completed_ids"`
}

type completeRequest struct {
	TaskID    string `json:"task_id"`
	Completed *bool  `json:"completed"`
}

type planResponse struct {
	Plan     models.Plan      `json:"plan"`
	Timeline timelineResponse `json:"timeline"`
}

func (req planRequest) validate() (string, bool) {
	if _, msg, ok := parseDate("marriage_date", req.MarriageDate); !ok {
		return msg, false
	}
	return validateCompleted(req.CompletedIDs)
}

func planOptions(o timelineOptions) models.PlanOptions {
	opts := timeline.OptionsFrom(o.IncludeMoving, o.NameChanged)
	return models.PlanOptions{IncludeMoving: opts.IncludeMoving, NameChanged: opts.NameChanged}
}

// respondPlan regenerates the timeline for p as of today.
func respondPlan(w http.ResponseWriter, status int, p models.Plan) {
	md, _, ok := parseDate("marriage_date", p.MarriageDate)
	if !ok {
		writeError(w, http.StatusUnprocessableEntity, "stored plan has an invalid marriage date")
		return
	}
	rt := resolvedTimeline{
		marriageDate: md,
		today:        config.Now(),
		opts:         timeline.Options{IncludeMoving: p.Options.IncludeMoving, NameChanged: p.Options.NameChanged},
		completed:    timeline.NewCompletedSet(p.CompletedIDs...),
	}
	writeJSONStatus(w, status, planResponse{Plan: p, Timeline: buildTimeline(rt)})
}

func storeFailure(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "plan not found")
		return
	}
	sentryutil.CaptureError(err, map[string]string{"handler": "plans", "op": op})
	InternalErrorHandler(w, r)
}

// PlansHandler creates a stored plan (POST /api/plans).
func PlansHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req planRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg, ok := req.validate(); !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	now := config.Now()
	p := models.Plan{
		ID:           store.NewID(),
		MarriageDate: req.MarriageDate,
		Options:      planOptions(req.Options),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, id := range req.CompletedIDs {
		p.SetCompleted(id, true)
	}
	if err := plans.Save(r.Context(), p); err != nil {
		storeFailure(w, r, "create", err)
		return
	}
	meter.PlanSaves.Inc()
	respondPlan(w, http.StatusCreated, p)
}

// PlanHandler serves GET, PUT and DELETE on /api/plans/{id}.
func PlanHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !store.ValidID(id) {
		writeError(w, http.StatusNotFound, "plan not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		p, err := plans.Load(r.Context(), id)
		if err != nil {
			storeFailure(w, r, "load", err)
			return
		}
		respondPlan(w, http.StatusOK, p)

	case http.MethodPut:
		var req planRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if msg, ok := req.validate(); !ok {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
		p, err := plans.Update(r.Context(), id, func(p *models.Plan) error {
			p.MarriageDate = req.MarriageDate
			p.Options = planOptions(req.Options)
			if req.CompletedIDs != nil {
				p.CompletedIDs = nil
				for _, tid := range req.CompletedIDs {
					p.SetCompleted(tid, true)
				}
			}
			p.UpdatedAt = config.Now()
			return nil
		})
		if err != nil {
			storeFailure(w, r, "update", err)
			return
		}
		meter.PlanSaves.Inc()
		respondPlan(w, http.StatusOK, p)

	case http.MethodDelete:
		if err := plans.Delete(r.Context(), id); err != nil {
			storeFailure(w, r, "delete", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// PlanCompleteHandler toggles one task (POST /api/plans/{id}/complete).
func PlanCompleteHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := r.PathValue("id")
	if !store.ValidID(id) {
		writeError(w, http.StatusNotFound, "plan not found")
		return
	}
	var req completeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !timeline.KnownID(req.TaskID) {
		writeError(w, http.StatusBadRequest, "unknown task_id")
		return
	}
	done := true
	if req.Completed != nil {
		done = *req.Completed
	}

	p, err := plans.Update(r.Context(), id, func(p *models.Plan) error {
		p.SetCompleted(req.TaskID, done)
		p.UpdatedAt = config.Now()
		return nil
	})
	if err != nil {
		storeFailure(w, r, "complete", err)
		return
	}
	meter.PlanSaves.Inc()
	respondPlan(w, http.StatusOK, p)
}
