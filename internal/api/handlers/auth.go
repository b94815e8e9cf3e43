package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/devpatel-io/inklens/internal/activity"
	"github.com/devpatel-io/inklens/internal/api/middleware"
	"github.com/devpatel-io/inklens/internal/api/services"
	"github.com/devpatel-io/inklens/internal/config"
	"github.com/devpatel-io/inklens/internal/models"
	"github.com/devpatel-io/inklens/internal/repositories"
	"github.com/devpatel-io/inklens/internal/utils"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// JWT Claims struct
type Claims struct {
	UserID       string `json:"userId"`
	Username     string `json:"username"`
	SessionToken string `json:"sessionToken"`
	jwt.RegisteredClaims
}

// POST /auth/sign-up
// RegisterUser godoc
// @Summary Register a new account
// @Description Creates an unverified account and emails a verification code.
// @Tags Auth
// @Accept json
// @Produce json
// @Success 201 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Router /api/v1/auth/sign-up [post]
func RegisterUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.JSONResponse(w, http.StatusMethodNotAllowed, utils.Payload{
			Success: false,
			Message: "Method not allowed",
		})
		return
	}

	var input struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid input",
		})
		return
	}

	if input.Email == "" || input.Username == "" || input.Password == "" {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid input",
		})
		return
	}

	user, err := repositories.CreateUser(input.Username, input.Email, input.Password)
	switch {
	case errors.Is(err, repositories.ErrDuplicateIdentity):
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Username or email is already taken",
		})
		return
	case err != nil:
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: "Failed to create account",
		})
		return
	}

	activity.Record(user.ID.String(), "Account Created", "Username: "+user.Username)
	sendVerificationCode(r.Context(), user)

	utils.JSONResponse(w, http.StatusCreated, utils.Payload{
		Success: true,
		Message: "Account created, check your email for the verification code",
	})
}

func sendVerificationCode(ctx context.Context, user *models.User) {
	if services.Mail == nil {
		// Dev setups without SMTP still need to complete signup.
		if config.Envs.Environment == "development" {
			fmt.Printf("verification code for %s: %s\n", user.Email, user.VerifyCode)
		}
		return
	}
	sendCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	body := fmt.Sprintf("Your Inklens verification code is %s", user.VerifyCode)
	if err := services.Mail.Send(sendCtx, user.Email, "Verify your Inklens account", body, ""); err != nil {
		fmt.Println("Failed to send verification email:", err)
	}
}

// POST /auth/verify
// VerifyEmail godoc
// @Summary Verify an account with the emailed code
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Router /api/v1/auth/verify [post]
func VerifyEmail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.JSONResponse(w, http.StatusMethodNotAllowed, utils.Payload{
			Success: false,
			Message: "Method not allowed",
		})
		return
	}

	var input struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil || input.Email == "" || input.Code == "" {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid input",
		})
		return
	}

	err := repositories.VerifyUser(input.Email, input.Code)
	switch {
	case errors.Is(err, repositories.ErrVerificationFailed):
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid verification code",
		})
		return
	case err != nil:
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: "Verification failed",
		})
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Email verified, you can now log in",
	})
}

// POST /auth/login
// LoginUser godoc
// @Summary Log in with username or email
// @Description Authenticates, records a session, and sets the auth cookie.
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} utils.Payload
// @Failure 401 {object} utils.Payload
// @Router /api/v1/auth/login [post]
func LoginUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.JSONResponse(w, http.StatusMethodNotAllowed, utils.Payload{
			Success: false,
			Message: "Method not allowed",
		})
		return
	}

	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid input",
		})
		return
	}

	if input.Username == "" || input.Password == "" {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid input",
		})
		return
	}

	user, err := repositories.Authenticate(input.Username, input.Password)
	switch {
	case errors.Is(err, repositories.ErrInvalidCredentials):
		utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{
			Success: false,
			Message: "Invalid credentials",
		})
		return
	case err != nil:
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: "Database error",
		})
		return
	}

	sessionToken, err := repositories.CreateSession(user.ID, clientIP(r), r.UserAgent())
	if err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: "Failed to record session",
		})
		return
	}

	if err := setAuthCookie(w, user, sessionToken); err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: "Failed to create token",
		})
		return
	}

	activity.Record(user.ID.String(), "Login", "IP: "+clientIP(r))

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Login successful",
	})
}

// setAuthCookie signs a JWT carrying the user identity and session token
// and sets it as the auth cookie.
func setAuthCookie(w http.ResponseWriter, user *models.User, sessionToken string) error {
	secret := config.Envs.JWTSecret
	if secret == "" {
		return errors.New("no JWT secret configured")
	}

	expiration := time.Now().Add(24 * time.Hour)
	claims := &Claims{
		UserID:       user.ID.String(),
		Username:     user.Username,
		SessionToken: sessionToken,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiration),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return err
	}

	isProd := config.Envs.Environment == "production"
	sameSite := http.SameSiteLaxMode
	if isProd {
		sameSite = http.SameSiteNoneMode
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    tokenString,
		Path:     "/",
		MaxAge:   int(time.Until(expiration).Seconds()),
		Secure:   isProd,
		HttpOnly: true,
		SameSite: sameSite,
	})
	return nil
}

// POST /api/v1/auth/logout
// Logout godoc
// @Summary Log out and delete the session record
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.Payload
// @Router /api/v1/auth/logout [post]
func Logout(w http.ResponseWriter, r *http.Request) {
	if userID, ok := middleware.UserIDFromContext(r.Context()); ok {
		if token, ok := middleware.SessionTokenFromContext(r.Context()); ok {
			_ = repositories.DestroySession(userID, token)
		}
		activity.Record(userID.String(), "Logout", "IP: "+clientIP(r))
	}

	isProd := config.Envs.Environment == "production"

	// Delete the token cookie
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   isProd,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Logged out successfully",
	})
}

func HandleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	redirectType := r.URL.Query().Get("redirect") // "login" or "register"
	if redirectType == "" {
		redirectType = "login"
	}

	state, err := GenerateState(map[string]string{"flow": redirectType})
	if err != nil {
		http.Error(w, "Failed to generate OAuth state", http.StatusInternalServerError)
		return
	}

	url := services.GoogleOauthConfig.AuthCodeURL(state)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

func HandleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	state := r.FormValue("state")
	stateData, err := DecodeState(state)
	if err != nil {
		http.Error(w, "Invalid OAuth state", http.StatusBadRequest)
		return
	}

	flowType := stateData["flow"] // "login" or "register"
	code := r.FormValue("code")
	frontend := config.Envs.FrontendURL

	token, err := services.GoogleOauthConfig.Exchange(r.Context(), code)
	if err != nil {
		http.Error(w, "Code exchange failed", http.StatusInternalServerError)
		return
	}

	client := services.GoogleOauthConfig.Client(r.Context(), token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		http.Error(w, "Failed to get user info", http.StatusInternalServerError)
		return
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)

	var googleUser struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.Unmarshal(data, &googleUser); err != nil {
		http.Error(w, "Failed to parse user info", http.StatusInternalServerError)
		return
	}

	var user models.User
	err = repositories.DB.Where("email = ?", googleUser.Email).First(&user).Error

	switch flowType {
	case "register":
		if err == nil {
			http.Redirect(w, r, frontend+"/login?error=user_already_exists", http.StatusTemporaryRedirect)
			return
		}
		// Google identity ownership proves the address, so the account is
		// created verified.
		user = models.User{
			Username: googleUser.Name,
			Email:    googleUser.Email,
			Password: "", // Google-authenticated
			Verified: true,
		}
		if err := repositories.DB.Create(&user).Error; err != nil {
			http.Error(w, "Failed to create user", http.StatusInternalServerError)
			return
		}

	case "login":
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Redirect(w, r, frontend+"/register?error=user_not_found", http.StatusTemporaryRedirect)
			return
		} else if err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}
	}

	sessionToken, err := repositories.CreateSession(user.ID, clientIP(r), r.UserAgent())
	if err != nil {
		http.Error(w, "Failed to record session", http.StatusInternalServerError)
		return
	}

	if err := setAuthCookie(w, &user, sessionToken); err != nil {
		http.Error(w, "Failed to create JWT", http.StatusInternalServerError)
		return
	}

	activity.Record(user.ID.String(), "Login", "Google OAuth, IP: "+clientIP(r))

	redirectURL := frontend + "/?status=success_login"
	if flowType == "register" {
		redirectURL = frontend + "/?status=success_register"
	}
	http.Redirect(w, r, redirectURL, http.StatusTemporaryRedirect)
}
