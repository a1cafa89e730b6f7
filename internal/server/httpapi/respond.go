package httpapi

import (
	"encoding/json"
	"net/http"
)

const (
	msgCreated            = "User created successfully"
	msgLoginOK            = "Login successful"
	msgMissingField       = "Username and password are required"
	msgAlreadyExists      = "User already exists"
	msgInvalidCredentials = "Invalid username or password"
	msgUnauthorized       = "Unauthorized"
	msgInternal           = "Internal server error"
	msgNotFound           = "Not found"
	msgMethodNotAllowed   = "Method not allowed"
)

type messageResponse struct {
	Message string `json:"message"`
}

type loginResponse struct {
	Message      string `json:"message"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type refreshResponse struct {
	AccessToken string `json:"access_token"`
}

type healthResponse struct {
	Status string `json:"status"`
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}
