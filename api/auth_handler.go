package api

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/gniraula/portfolio-site-backend/config"
	"github.com/gniraula/portfolio-site-backend/errs"
)

type authHandler struct {
	responder    Responder
	logger       zerolog.Logger
	store        sessions.Store
	username     string
	passwordHash string
}

func newAuthHandler(cfg config.Config, store sessions.Store) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		store:        store,
		username:     cfg.AdminUsername,
		passwordHash: cfg.AdminPasswordHash,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// login checks the operator's credentials and marks the session as admin.
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds loginRequest
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		usernameMatch := subtle.ConstantTimeCompare([]byte(creds.Username), []byte(h.username)) == 1
		passwordMatch := bcrypt.CompareHashAndPassword([]byte(h.passwordHash), []byte(creds.Password)) == nil
		if !usernameMatch || !passwordMatch {
			h.logger.Warn().Str("username", creds.Username).Msg("Failed admin login attempt")
			h.responder.WriteError(w, errs.NewUnauthorizedError("invalid credentials"))
			return
		}

		session, _ := h.store.Get(r, sessionName)
		session.Values[sessionKeyLoggedIn] = true
		session.Values[sessionKeyUsername] = creds.Username
		if err := session.Save(r, w); err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to save session", err))
			return
		}

		h.logger.Info().Str("username", creds.Username).Msg("Admin logged in")
		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "logged in",
		})
	}
}

// logout drops the admin session.
func (h authHandler) logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := h.store.Get(r, sessionName)
		delete(session.Values, sessionKeyLoggedIn)
		delete(session.Values, sessionKeyUsername)
		session.Options.MaxAge = -1
		if err := session.Save(r, w); err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to clear session", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "logged out",
		})
	}
}
