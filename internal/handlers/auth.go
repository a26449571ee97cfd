package handlers

import (
	"encoding/json"
	"net/http"
)

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if creds.Username == "" || creds.Password == "" {
		h.writeError(w, "username and password are required", http.StatusBadRequest)
		return
	}

	if err := h.client.Login(r.Context(), creds.Username, creds.Password); err != nil {
		h.writeError(w, "Login failed: "+err.Error(), http.StatusUnauthorized)
		return
	}

	h.writeJSON(w, map[string]string{"username": creds.Username})
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := h.client.Logout(); err != nil {
		h.writeError(w, "Logout failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, map[string]string{"status": "signed out"})
}

func (h *Handler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		profile, err := h.client.Profile(r.Context())
		if err != nil {
			h.writeError(w, "Failed to fetch profile: "+err.Error(), http.StatusBadGateway)
			return
		}
		h.writeJSON(w, profile)
	case http.MethodPut:
		var update struct {
			PhoneNumber string `json:"phoneNumber"`
		}
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
		profile, err := h.client.UpdateProfile(r.Context(), update.PhoneNumber)
		if err != nil {
			h.writeError(w, "Failed to update profile: "+err.Error(), http.StatusBadGateway)
			return
		}
		h.writeJSON(w, profile)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
