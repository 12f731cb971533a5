package http

import (
	"log/slog"
	"net/http"

	"github.com/kotoed/denizen/internal/denizen/domain"
	"github.com/kotoed/denizen/internal/denizen/service"
	"github.com/kotoed/denizen/pkg/httpx"
	"github.com/kotoed/denizen/pkg/idx"
	"github.com/kotoed/denizen/pkg/profilesdk"
	"github.com/kotoed/denizen/pkg/slogx"
)

type DenizenHandler struct {
	DenizenService *service.DenizenService
}

// pathID returns the {id} path value, writing a 400 when it is not a ULID.
func pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	if !idx.Valid(id) {
		profilesdk.ErrInvalidRequest.WithDescription("malformed denizen id").WriteError(w)
		return "", false
	}
	return id, true
}

// HandleCreate registers a new denizen.
//
//	@Summary		Create denizen
//	@Description	Registers a denizen with a username, optional email and password.
//	@Tags			Denizens
//	@Accept			json
//	@Produce		json
//	@Param			request	body		profilesdk.CreateDenizenRequest		true	"username, email, password"
//	@Success		201		{object}	profilesdk.CreateDenizenResponse	"id of the new denizen"
//	@Failure		400		{object}	profilesdk.ErrorResponse			"Missing username or password, malformed email"
//	@Failure		409		{object}	profilesdk.ErrorResponse			"Username already taken"
//	@Failure		429		{object}	profilesdk.ErrorResponse			"Rate limited"
//	@Router			/v1/denizens [post].
func (h *DenizenHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req profilesdk.CreateDenizenRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		log.Debug("bad create body", slog.Any("err", err))
		profilesdk.ErrInvalidRequest.WithDescription(err.Error()).WriteError(w)
		return
	}

	id, err := h.DenizenService.Create(ctx, domain.CreateDenizen{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, profilesdk.CreateDenizenResponse{ID: id})
}

// HandleRead returns the denizen record without credentials.
//
//	@Summary		Read denizen
//	@Tags			Denizens
//	@Produce		json
//	@Param			id	path		string						true	"Denizen id (ULID)"
//	@Success		200	{object}	profilesdk.DenizenResponse	"id, username, email"
//	@Failure		400	{object}	profilesdk.ErrorResponse	"Malformed id"
//	@Failure		404	{object}	profilesdk.ErrorResponse	"Unknown denizen"
//	@Router			/v1/denizens/{id} [get].
func (h *DenizenHandler) HandleRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	d, err := h.DenizenService.Read(ctx, id)
	if err != nil {
		writeServiceError(w, slogx.FromContext(ctx), err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, profilesdk.DenizenResponse{
		ID:       d.ID,
		Username: d.Username,
		Email:    d.Email,
	})
}

// HandleReadProfile returns the editable profile.
//
//	@Summary		Read profile
//	@Description	Returns the denizen's email, names, group, power mode and linked OAuth accounts.
//	@Tags			Profile
//	@Produce		json
//	@Param			id	path		string						true	"Denizen id (ULID)"
//	@Success		200	{object}	profilesdk.ProfileInfo		"Profile"
//	@Failure		400	{object}	profilesdk.ErrorResponse	"Malformed id"
//	@Failure		404	{object}	profilesdk.ErrorResponse	"Unknown denizen"
//	@Router			/v1/denizens/{id}/profile [get].
func (h *DenizenHandler) HandleReadProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	info, err := h.DenizenService.ReadProfile(ctx, id)
	if err != nil {
		writeServiceError(w, slogx.FromContext(ctx), err)
		return
	}

	links := make([]profilesdk.OAuthLink, 0, len(info.OAuth))
	for _, l := range info.OAuth {
		links = append(links, profilesdk.OAuthLink{Provider: l.Provider, UserID: l.UserID})
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, profilesdk.ProfileInfo{
		ID:        info.ID,
		Username:  info.Username,
		Email:     info.Email,
		OAuth:     links,
		FirstName: info.FirstName,
		LastName:  info.LastName,
		Group:     info.Group,
		PowerMode: info.PowerMode,
	})
}

// HandleUpdateProfile applies a partial profile update.
//
//	@Summary		Update profile
//	@Description	Only the fields present in the body change. An empty email clears it.
//	@Tags			Profile
//	@Accept			json
//	@Param			id		path	string							true	"Denizen id (ULID)"
//	@Param			request	body	profilesdk.ProfileUpdateRequest	true	"Fields to change"
//	@Success		204
//	@Failure		400	{object}	profilesdk.ErrorResponse	"Malformed id, body or email"
//	@Failure		404	{object}	profilesdk.ErrorResponse	"Unknown denizen"
//	@Router			/v1/denizens/{id}/profile [put].
func (h *DenizenHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req profilesdk.ProfileUpdateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		profilesdk.ErrInvalidRequest.WithDescription(err.Error()).WriteError(w)
		return
	}

	err := h.DenizenService.UpdateProfile(ctx, id, domain.ProfileUpdate{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Group:     req.Group,
		PowerMode: req.PowerMode,
	})
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleUpdatePassword changes the password after checking the old one.
//
//	@Summary		Change password
//	@Tags			Profile
//	@Accept			json
//	@Param			id		path	string								true	"Denizen id (ULID)"
//	@Param			request	body	profilesdk.PasswordChangeRequest	true	"old and new password"
//	@Success		204
//	@Failure		400	{object}	profilesdk.ErrorResponse	"Malformed id or body, empty new password"
//	@Failure		403	{object}	profilesdk.ErrorResponse	"Old password is incorrect"
//	@Failure		404	{object}	profilesdk.ErrorResponse	"Unknown denizen"
//	@Failure		429	{object}	profilesdk.ErrorResponse	"Rate limited"
//	@Router			/v1/denizens/{id}/password [put].
func (h *DenizenHandler) HandleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req profilesdk.PasswordChangeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		profilesdk.ErrInvalidRequest.WithDescription(err.Error()).WriteError(w)
		return
	}

	if err := h.DenizenService.UpdatePassword(ctx, id, req.OldPassword, req.NewPassword); err != nil {
		writeServiceError(w, log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
