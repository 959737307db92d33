package orgs

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/authzkit/pkg/authz"
	"github.com/dmitrymomot/authzkit/pkg/permissions"
	"github.com/dmitrymomot/authzkit/pkg/plans"
	"github.com/dmitrymomot/authzkit/pkg/roles"
)

type memberResponse struct {
	ActorID uuid.UUID                `json:"actor_id"`
	Role    roles.Role               `json:"role"`
	Status  authz.MembershipStatus   `json:"status"`
	Grants  []permissions.Permission `json:"grants,omitempty"`
	Revokes []permissions.Permission `json:"revokes,omitempty"`
}

func toMemberResponse(m *authz.Membership) memberResponse {
	return memberResponse{
		ActorID: m.ActorID,
		Role:    m.Role,
		Status:  m.Status,
		Grants:  m.Grants,
		Revokes: m.Revokes,
	}
}

func (s *Service) listMembers(w http.ResponseWriter, r *http.Request) {
	orgID, _ := authz.OrgFromContext(r.Context())

	members, err := s.storage.ListMemberships(r.Context(), orgID)
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	resp := make([]memberResponse, 0, len(members))
	for _, m := range members {
		resp = append(resp, toMemberResponse(m))
	}
	slices.SortFunc(resp, func(a, b memberResponse) int {
		return strings.Compare(a.ActorID.String(), b.ActorID.String())
	})

	writeJSON(w, http.StatusOK, map[string]any{"members": resp})
}

type inviteRequest struct {
	ActorID uuid.UUID  `json:"actor_id"`
	Role    roles.Role `json:"role"`
}

func (s *Service) inviteMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	callerID, _ := authz.ActorFromContext(ctx)
	orgID, _ := authz.OrgFromContext(ctx)

	var req inviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ActorID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "actor_id and role are required", nil)
		return
	}

	// Seat pre-check before any mutation, so the invite that would exceed
	// the plan's seat limit is rejected with upgrade context.
	seats, err := s.usage.UsageCount(ctx, orgID, plans.ResourceSeats)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	result, err := s.limiter.CheckLimit(s.checker.EffectiveTier(ctx, orgID), plans.ResourceSeats, seats)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	if !result.Allowed {
		writeError(w, http.StatusForbidden, "seat_limit_reached", "the plan's seat limit is reached", map[string]any{
			"limit":     result.Limit,
			"remaining": result.Remaining,
		})
		return
	}

	membership, err := s.manager.Invite(ctx, callerID, orgID, req.ActorID, req.Role)
	if err != nil {
		s.memberError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toMemberResponse(membership))
}

type updateRoleRequest struct {
	Role roles.Role `json:"role"`
}

func (s *Service) updateRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	callerID, _ := authz.ActorFromContext(ctx)
	orgID, _ := authz.OrgFromContext(ctx)

	targetID, err := uuid.Parse(chi.URLParam(r, "actorID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "malformed actor id", nil)
		return
	}

	var req updateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "role is required", nil)
		return
	}

	if err := s.manager.UpdateRole(ctx, callerID, orgID, targetID, req.Role); err != nil {
		s.memberError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type updatePermissionsRequest struct {
	Grants  []permissions.Permission `json:"grants"`
	Revokes []permissions.Permission `json:"revokes"`
}

func (s *Service) updatePermissions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	callerID, _ := authz.ActorFromContext(ctx)
	orgID, _ := authz.OrgFromContext(ctx)

	targetID, err := uuid.Parse(chi.URLParam(r, "actorID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "malformed actor id", nil)
		return
	}

	var req updatePermissionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "grants and revokes are required", nil)
		return
	}

	// Unknown identifiers are a client error at this boundary, validated
	// before reaching the manager where they would be a programmer error.
	if err := permissions.Validate(append(slices.Clone(req.Grants), req.Revokes...)...); err != nil {
		writeError(w, http.StatusBadRequest, "unknown_permission", err.Error(), nil)
		return
	}

	if err := s.manager.UpdateCustomPermissions(ctx, callerID, orgID, targetID, req.Grants, req.Revokes); err != nil {
		s.memberError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) archiveMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	callerID, _ := authz.ActorFromContext(ctx)
	orgID, _ := authz.OrgFromContext(ctx)

	targetID, err := uuid.Parse(chi.URLParam(r, "actorID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "malformed actor id", nil)
		return
	}

	if err := s.manager.Archive(ctx, callerID, orgID, targetID); err != nil {
		s.memberError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// memberError maps manager errors to HTTP responses.
func (s *Service) memberError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, authz.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden", "missing permission to manage members", nil)
	case errors.Is(err, authz.ErrOwnerImmutable):
		writeError(w, http.StatusForbidden, "owner_immutable", "the owner membership cannot be modified", nil)
	case errors.Is(err, authz.ErrOwnerRoleAssignment):
		writeError(w, http.StatusUnprocessableEntity, "owner_not_assignable", "the owner role cannot be assigned", nil)
	case errors.Is(err, authz.ErrMembershipNotFound):
		writeError(w, http.StatusNotFound, "member_not_found", "no active membership for this actor", nil)
	case errors.Is(err, authz.ErrMembershipExists):
		writeError(w, http.StatusConflict, "member_exists", "actor is already a member", nil)
	case errors.Is(err, roles.ErrUnknownRole):
		writeError(w, http.StatusBadRequest, "unknown_role", err.Error(), nil)
	default:
		s.internalError(w, r, err)
	}
}

func (s *Service) internalError(w http.ResponseWriter, r *http.Request, err error) {
	if s.logger != nil {
		s.logger.ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}
	writeError(w, http.StatusInternalServerError, "internal_error", "something went wrong", nil)
}
