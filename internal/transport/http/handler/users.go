package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-contacts-api/internal/application/auth"
	"github.com/go-contacts-api/internal/application/user"
	"github.com/go-contacts-api/internal/domain"
	"github.com/go-contacts-api/internal/transport/http/middleware"
)

const avatarField = "avatarUrl"

// UserHandler handles the /api/auth endpoints.
type UserHandler struct {
	auth           auth.Service
	users          user.Service
	uploadDir      string
	maxAvatarBytes int64
}

func NewUserHandler(authSvc auth.Service, userSvc user.Service, uploadDir string, maxAvatarBytes int64) *UserHandler {
	return &UserHandler{auth: authSvc, users: userSvc, uploadDir: uploadDir, maxAvatarBytes: maxAvatarBytes}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	u, err := h.auth.Register(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, RegisterEnvelope{User: toPublicUser(u, true)})
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	token, u, err := h.auth.Login(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, LoginEnvelope{Token: token, User: toPublicUser(u, false)})
}

// Logout is stateless: the client discards its token.
func (h *UserHandler) Logout(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) Current(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized")
		return
	}
	writeJSON(w, http.StatusOK, toPublicUser(u, true))
}

func (h *UserHandler) UpdateSubscription(w http.ResponseWriter, r *http.Request) {
	current, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized")
		return
	}
	var req domain.UpdateSubscriptionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	u, err := h.users.UpdateSubscription(r.Context(), current.UserID, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPublicUser(u, true))
}

func (h *UserHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	current, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxAvatarBytes+(1<<20))
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, http.StatusBadRequest, "File is too large")
			return
		}
		writeError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile(avatarField)
	if err != nil {
		writeError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()
	if header.Size > h.maxAvatarBytes {
		writeError(w, http.StatusBadRequest, "File is too large")
		return
	}

	staged, err := h.stage(file)
	if err != nil {
		writeServiceError(w, r, domain.Wrap(domain.ErrStorage, "Server error", err))
		return
	}

	url, err := h.users.UpdateAvatar(r.Context(), current.UserID, staged, filepath.Base(header.Filename))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, AvatarEnvelope{AvatarURL: url})
}

// stage copies an uploaded part into the upload directory and returns its path.
func (h *UserHandler) stage(src io.Reader) (string, error) {
	f, err := os.CreateTemp(h.uploadDir, "avatar-*")
	if err != nil {
		return "", fmt.Errorf("create staged file: %w", err)
	}
	if _, err := io.Copy(f, src); err != nil {
		f.Close()
		if rmErr := os.Remove(f.Name()); rmErr != nil {
			slog.Warn("failed to remove staged avatar", "path", f.Name(), "err", rmErr)
		}
		return "", fmt.Errorf("write staged file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("close staged file: %w", err)
	}
	return f.Name(), nil
}

func (h *UserHandler) Verify(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.VerifyEmail(r.Context(), chi.URLParam(r, "token")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "Verification successful"})
}

func (h *UserHandler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	var req domain.ResendVerificationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.auth.ResendVerification(r.Context(), req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "Verification email sent"})
}
