package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/cryptonav/cryptonav/internal/common"
	"github.com/cryptonav/cryptonav/internal/session"
)

// signInPage is the view model for the sign-in form.
type signInPage struct {
	basePage
	Username  string
	FormError string
	Notice    string
}

// signUpPage is the view model for the sign-up form.
type signUpPage struct {
	basePage
	Username  string
	Email     string
	FormError string
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodPost) {
		return
	}

	page := signInPage{basePage: s.base(r, "Sign In")}
	if r.URL.Query().Get("registered") == "1" {
		page.Notice = "Account created. Please sign in."
	}

	if r.Method == http.MethodGet {
		s.render(w, "signin.html", page)
		return
	}

	if err := r.ParseForm(); err != nil {
		page.FormError = "Invalid form submission"
		s.render(w, "signin.html", page)
		return
	}

	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")
	page.Username = username

	if username == "" || password == "" {
		page.FormError = "Username and password are required"
		s.render(w, "signin.html", page)
		return
	}

	if _, err := s.app.Sessions.Login(r.Context(), username, password); err != nil {
		var authErr *session.AuthError
		if errors.As(err, &authErr) {
			page.FormError = authErr.Message
		} else {
			page.FormError = "Sign-in failed"
		}
		s.render(w, "signin.html", page)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodPost) {
		return
	}

	page := signUpPage{basePage: s.base(r, "Sign Up")}

	if r.Method == http.MethodGet {
		s.render(w, "signup.html", page)
		return
	}

	if err := r.ParseForm(); err != nil {
		page.FormError = "Invalid form submission"
		s.render(w, "signup.html", page)
		return
	}

	username := strings.TrimSpace(r.PostFormValue("username"))
	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")
	page.Username = username
	page.Email = email

	if username == "" || email == "" || password == "" {
		page.FormError = "Username, email, and password are required"
		s.render(w, "signup.html", page)
		return
	}

	// Registration does not establish a session; the user signs in explicitly.
	if err := s.app.Sessions.Register(r.Context(), username, email, password); err != nil {
		var authErr *session.AuthError
		if errors.As(err, &authErr) {
			page.FormError = authErr.Message
		} else {
			page.FormError = "Registration failed"
		}
		s.render(w, "signup.html", page)
		return
	}

	http.Redirect(w, r, "/signin?registered=1", http.StatusSeeOther)
}

func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	s.app.Sessions.SignOut()
	http.Redirect(w, r, "/signin", http.StatusSeeOther)
}

// base builds the fields shared by every page from the request context.
func (s *Server) base(r *http.Request, title string) basePage {
	si := common.SessionInfoFromContext(r.Context())
	if si == nil {
		si = &common.SessionInfo{}
	}
	return basePage{Title: title, Session: si}
}
