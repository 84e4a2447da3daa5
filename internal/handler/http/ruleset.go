package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chronohr/timesheet-backend-go/internal/domain/ruleset"
	"github.com/chronohr/timesheet-backend-go/internal/handler/http/response"
)

type RuleSetHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type rulesetHandlerImpl struct {
	rulesetService ruleset.RuleSetService
}

func NewRuleSetHandler(rulesetService ruleset.RuleSetService) RuleSetHandler {
	return &rulesetHandlerImpl{
		rulesetService: rulesetService,
	}
}

// Create implements RuleSetHandler.
func (h *rulesetHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req ruleset.CreateRuleSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.rulesetService.AddRuleSet(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Rule set created successfully", result)
}

// Get implements RuleSetHandler.
func (h *rulesetHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.rulesetService.GetRuleSet(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements RuleSetHandler.
func (h *rulesetHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.rulesetService.ListRuleSets(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements RuleSetHandler.
func (h *rulesetHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req ruleset.UpdateRuleSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := h.rulesetService.UpdateRuleSet(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Rule set updated successfully", nil)
}

// Delete implements RuleSetHandler.
func (h *rulesetHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.rulesetService.DeleteRuleSet(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Rule set deleted successfully", nil)
}
