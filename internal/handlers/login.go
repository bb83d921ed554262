package handlers

import (
	"fmt"
	"html/template"
	"log"
	"net/http"

	"github.com/adyen/swaglabs/internal/models"
	"github.com/adyen/swaglabs/internal/services"
)

// LoginHandler serves the login form at the site root
type LoginHandler struct {
	template *template.Template
	sessions services.SessionStore
}

// LoginData represents the data passed to the login template
type LoginData struct {
	Username  string
	Error     string
	Usernames []string
	Password  string
}

// NewLoginHandler creates a new login handler
func NewLoginHandler(templateDir string, sessions services.SessionStore) (*LoginHandler, error) {
	tmpl, err := parsePage(templateDir, "login.html")
	if err != nil {
		return nil, err
	}

	return &LoginHandler{
		template: tmpl,
		sessions: sessions,
	}, nil
}

// ServeHTTP renders the form on GET and signs the shopper in on POST
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		data := h.data("", "")
		if denied := r.URL.Query().Get("denied"); denied != "" {
			data.Error = fmt.Sprintf("Epic sadface: You can only access '%s' when you are logged in.", denied)
		}
		render(w, h.template, http.StatusOK, data)
	case http.MethodPost:
		h.login(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (h *LoginHandler) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	username := r.PostFormValue("user-name")
	account, err := models.Authenticate(username, r.PostFormValue("password"))
	if err != nil {
		log.Printf("Login rejected for %q: %v", username, err)
		render(w, h.template, http.StatusOK, h.data(username, err.Error()))
		return
	}

	session, err := h.sessions.Create(account)
	if err != nil {
		log.Printf("Error creating session: %v", err)
		http.Error(w, "Failed to sign in", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    session.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	log.Printf("User %s signed in", account.Username)
	http.Redirect(w, r, "/inventory.html", http.StatusSeeOther)
}

func (h *LoginHandler) data(username, errMsg string) LoginData {
	return LoginData{
		Username:  username,
		Error:     errMsg,
		Usernames: models.Usernames(),
		Password:  models.AccountPassword,
	}
}

// LogoutHandler ends the session
type LogoutHandler struct {
	sessions services.SessionStore
}

// NewLogoutHandler creates a new logout handler
func NewLogoutHandler(sessions services.SessionStore) *LogoutHandler {
	return &LogoutHandler{sessions: sessions}
}

// ServeHTTP deletes the session and returns to the login page
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if err := h.sessions.Delete(cookie.Value); err != nil {
			log.Printf("Error deleting session: %v", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:   SessionCookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
