package main

import (
	"crypto/subtle"
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

type LoginPayload struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// loginHandler verifies the administrative credentials from the environment
// and issues the access token the mutating endpoints require. The password is
// checked against a bcrypt hash; no credential lives in source.
func (app *application) loginHandler(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	admin := app.config.auth.admin
	usernameOK := subtle.ConstantTimeCompare([]byte(payload.Username), []byte(admin.username)) == 1
	passwordErr := bcrypt.CompareHashAndPassword([]byte(admin.passwordHash), []byte(payload.Password))

	if !usernameOK || passwordErr != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"success": false,
			"error":   "invalid username or password",
		})
		return
	}

	token, err := app.authenticator.GenerateToken(admin.username)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"message":      "Login successful",
		"user":         admin.username,
		"access_token": token,
	})
}
