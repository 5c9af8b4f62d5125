package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"go-shop/middleware"
	"go-shop/models"
	"go-shop/store"
	"go-shop/utils"

	"golang.org/x/crypto/bcrypt"
)

// UserController handles registration, login and profile requests
type UserController struct {
	Users store.Users
}

// NewUserController creates a new UserController
func NewUserController(users store.Users) *UserController {
	return &UserController{Users: users}
}

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

var registerMessages = map[string]string{
	"username":       "Username is required",
	"email.required": "Email is required",
	"email.email":    "Enter a valid email address",
	"password":       "Password is required",
}

func (req *registerRequest) validate() string {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	return checkInput(req, registerMessages)
}

// Register handles user registration
func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if msg := req.validate(); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	// Hash the password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error hashing password")
		return
	}

	user := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  string(hashedPassword),
		Role:      models.RoleUser,
		CreatedAt: time.Now().UTC(),
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	if err := uc.Users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			utils.RespondWithError(w, http.StatusBadRequest, "User already exists")
			return
		}
		respondWithErr(w, r, err, "")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, user)
}

// Login accepts either the username or the email together with the password
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := utils.DecodeJSON(r, &creds); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	login := strings.TrimSpace(creds.Username)
	if login == "" {
		login = strings.TrimSpace(creds.Email)
	}
	if login == "" || creds.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Username or email and password are required")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	user, err := uc.Users.FindUserByLogin(ctx, login)
	if errors.Is(err, store.ErrNotFound) {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		respondWithErr(w, r, err, "")
		return
	}

	// Compare the hashed password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error generating token")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user": map[string]interface{}{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"is_admin": user.IsAdmin(),
		},
	})
}

// GetProfile retrieves the authenticated user's profile
func (uc *UserController) GetProfile(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	user, err := uc.Users.FindUserByID(ctx, principal.UserID)
	if err != nil {
		respondWithErr(w, r, err, "User not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, user)
}
