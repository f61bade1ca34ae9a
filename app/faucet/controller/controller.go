package controller

import (
	"net/http"

	"github.com/go-jose/go-jose/v4/json"
	"github.com/gorilla/mux"
	"github.com/ternoa-network/faucetx/app/faucet/types"
	"github.com/ternoa-network/faucetx/pkg/utils"
)

type Controller struct {
	App        *types.App
	AdminToken string
	AuthUser   string
	Users      map[string]types.User
	JWTSecret  []byte
}

// NewController returns a new controller.
func NewController(app *types.App) *Controller {
	adminToken := utils.Env("ADMIN_TOKEN", "devtoken")
	adminUser := utils.Env("ADMIN_USER", "admin")
	adminUsersJSON := utils.Env("ADMIN_USERS", "")
	adminPass := utils.Env("ADMIN_PASSWORD", "admin")
	jwtSecret := []byte(utils.Env("SESSION_SECRET", "change-me-please"))

	phash, _ := utils.HashOrRead(adminPass)
	users := map[string]types.User{}
	users[adminUser] = types.User{Username: adminUser, Hash: phash, Role: "admin"}
	if adminUsersJSON != "" {
		_ = json.Unmarshal([]byte(adminUsersJSON), &users)
	}

	return &Controller{
		App:        app,
		AdminToken: adminToken,
		AuthUser:   adminUser,
		Users:      users,
		JWTSecret:  jwtSecret,
	}
}

// WithCORS is a middleware that adds CORS headers to the response.
func WithCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		// The claim endpoints are called straight from the wallet web UI,
		// so credentials must work with whatever origin serves it.
		if origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		} else {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Methods", http.MethodGet+", "+http.MethodPost+", "+http.MethodOptions)

		// Fast-path the preflight
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// NewRouter returns a new router with all the routes defined in this file.
func (c *Controller) NewRouter() (*mux.Router, error) {
	r := mux.NewRouter()

	r.Handle("/health", http.HandlerFunc(c.HandleHealth)).Methods(http.MethodGet)

	// Public claim API, kept path-compatible with the wallet UI
	r.Handle("/faucet/claim-test-caps/{walletId}", http.HandlerFunc(c.HandleCurrencyClaim)).Methods(http.MethodGet)
	r.Handle("/faucet/claim-test-nft/{walletId}", http.HandlerFunc(c.HandleNFTClaim)).Methods(http.MethodGet)

	// Admin API - Login/Logout
	r.HandleFunc("/api/auth/login", c.HandleAdminLogin).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/logout", c.HandleAdminLogout).Methods(http.MethodPost)

	// Admin API - queue inspection and manual settlement
	r.Handle("/api/claims/pending", c.RequireAuth(http.HandlerFunc(c.HandlePendingClaims))).Methods(http.MethodGet)
	r.Handle("/api/process", c.RequireAuth(http.HandlerFunc(c.HandleProcess))).Methods(http.MethodPost)

	return r, nil
}
