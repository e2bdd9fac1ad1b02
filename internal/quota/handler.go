package quota

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/loftdrive/service/internal/identity"
	"github.com/loftdrive/service/internal/profile"
	"github.com/loftdrive/service/internal/response"
)

// Handler holds HTTP handlers for quota and tier endpoints. Every
// operation authenticates from the `token` query parameter; both
// authentication and accounting failures collapse to the same 403 so
// internals never leak to unauthenticated callers.
type Handler struct {
	issuer      *Issuer
	resolver    *Resolver
	coordinator *Coordinator
	verifier    identity.Verifier
	tiers       TierStore
	policy      Policy
}

// NewHandler creates a new quota Handler.
func NewHandler(issuer *Issuer, resolver *Resolver, coordinator *Coordinator, verifier identity.Verifier, tiers TierStore, policy Policy) *Handler {
	return &Handler{
		issuer:      issuer,
		resolver:    resolver,
		coordinator: coordinator,
		verifier:    verifier,
		tiers:       tiers,
		policy:      policy,
	}
}

type uploadTokenData struct {
	Token string `json:"token" example:"eyJhbGci..."`
}

type remainingQuotaData struct {
	StorageLeftInBytes int64 `json:"storageLeftInBytes" example:"60000"`
}

type tierData struct {
	Tier         string `json:"tier" example:"free"`
	CeilingBytes int64  `json:"ceilingBytes" example:"100000"`
}

type updateTierRequest struct {
	Tier string `json:"tier" example:"premium"`
}

// IssueUploadToken godoc
//
//	@Summary		Issue an upload token
//	@Description	Verifies the credential, computes the caller's remaining quota, and returns a short-lived signed token embedding callerId, storageLeftInBytes, and path.
//	@Tags			quota
//	@Produce		json
//	@Param			token	query		string	true	"Bearer credential"
//	@Param			path	query		string	true	"Intended upload path"
//	@Success		200		{object}	response.Envelope{data=uploadTokenData}
//	@Failure		400		{object}	response.Envelope
//	@Failure		403		{object}	response.Envelope
//	@Router			/quota/upload-token [get]
func (h *Handler) IssueUploadToken(w http.ResponseWriter, r *http.Request) {
	credential := r.URL.Query().Get("token")
	path := r.URL.Query().Get("path")
	if path == "" {
		response.BadRequest(w, "path is required")
		return
	}

	artifact, err := h.issuer.Issue(r.Context(), credential, path)
	if err != nil {
		logDenied(r, err)
		response.AccessDenied(w)
		return
	}

	response.OK(w, uploadTokenData{Token: artifact})
}

// RemainingQuota godoc
//
//	@Summary		Read remaining quota
//	@Description	Returns the caller's remaining storage in bytes. Negative values mean the caller is over quota.
//	@Tags			quota
//	@Produce		json
//	@Param			token	query		string	true	"Bearer credential"
//	@Success		200		{object}	response.Envelope{data=remainingQuotaData}
//	@Failure		403		{object}	response.Envelope
//	@Router			/quota/remaining [get]
func (h *Handler) RemainingQuota(w http.ResponseWriter, r *http.Request) {
	callerID, err := h.verifier.Verify(r.URL.Query().Get("token"))
	if err != nil {
		logDenied(r, err)
		response.AccessDenied(w)
		return
	}

	left, err := h.resolver.StorageLeft(r.Context(), callerID)
	if err != nil {
		logDenied(r, err)
		response.AccessDenied(w)
		return
	}

	response.OK(w, remainingQuotaData{StorageLeftInBytes: left})
}

// DeleteAllObjects godoc
//
//	@Summary		Delete all objects
//	@Description	Deletes every object under the caller's namespace to reclaim quota. On partial failure the call reports failure and can be retried safely; already-deleted objects stay deleted.
//	@Tags			quota
//	@Produce		json
//	@Param			token	query		string	true	"Bearer credential"
//	@Success		200		{object}	response.Envelope
//	@Failure		403		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/quota/objects [delete]
func (h *Handler) DeleteAllObjects(w http.ResponseWriter, r *http.Request) {
	callerID, err := h.verifier.Verify(r.URL.Query().Get("token"))
	if err != nil {
		logDenied(r, err)
		response.AccessDenied(w)
		return
	}

	result, err := h.coordinator.DeleteAll(r.Context(), callerID)
	if err != nil {
		logDenied(r, err)
		if errors.Is(err, ErrPartialDeletion) {
			log.Printf("delete-all for %q: %d objects left undeleted", callerID, len(result.Failed))
			response.InternalError(w)
			return
		}
		response.AccessDenied(w)
		return
	}

	response.OK(w, nil)
}

// GetTier godoc
//
//	@Summary		Read subscription tier
//	@Description	Returns the caller's tier and its byte ceiling.
//	@Tags			profile
//	@Produce		json
//	@Param			token	query		string	true	"Bearer credential"
//	@Success		200		{object}	response.Envelope{data=tierData}
//	@Failure		403		{object}	response.Envelope
//	@Router			/profile/tier [get]
func (h *Handler) GetTier(w http.ResponseWriter, r *http.Request) {
	callerID, err := h.verifier.Verify(r.URL.Query().Get("token"))
	if err != nil {
		logDenied(r, err)
		response.AccessDenied(w)
		return
	}

	tier, err := h.tiers.TierOf(r.Context(), callerID)
	if err != nil {
		logDenied(r, err)
		response.AccessDenied(w)
		return
	}

	response.OK(w, tierData{Tier: string(tier), CeilingBytes: h.policy.CeilingFor(tier)})
}

// UpdateTier godoc
//
//	@Summary		Update subscription tier
//	@Description	Sets the caller's tier to one of the known tiers.
//	@Tags			profile
//	@Accept			json
//	@Produce		json
//	@Param			token	query		string				true	"Bearer credential"
//	@Param			request	body		updateTierRequest	true	"New tier"
//	@Success		200		{object}	response.Envelope{data=tierData}
//	@Failure		400		{object}	response.Envelope
//	@Failure		403		{object}	response.Envelope
//	@Router			/profile/tier [put]
func (h *Handler) UpdateTier(w http.ResponseWriter, r *http.Request) {
	callerID, err := h.verifier.Verify(r.URL.Query().Get("token"))
	if err != nil {
		logDenied(r, err)
		response.AccessDenied(w)
		return
	}

	var req updateTierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	tier, ok := profile.ParseTier(req.Tier)
	if !ok {
		response.BadRequest(w, "unknown tier")
		return
	}

	if err := h.tiers.SetTier(r.Context(), callerID, tier); err != nil {
		logDenied(r, err)
		response.AccessDenied(w)
		return
	}

	response.OK(w, tierData{Tier: string(tier), CeilingBytes: h.policy.CeilingFor(tier)})
}

// logDenied records the internal reason for an access-denied response.
// The response body never carries it.
func logDenied(r *http.Request, err error) {
	log.Printf("%s %s denied: %v", r.Method, r.URL.Path, err)
}
