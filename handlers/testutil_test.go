package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"chowline/config"
	"chowline/handlers"
	"chowline/middleware"
	"chowline/models"
	"chowline/routes"
	"chowline/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// newTestRouter gives each test a fresh database and a fully wired
// router. Redis stays nil (the review cache is nil-safe) and no event
// publisher is set.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	config.JWTSecret = []byte("test_secret")
	config.OpenDB(filepath.Join(t.TempDir(), "test.db"))

	handlers.RegisterValidators()
	handlers.Reviews = nil

	images, err := storage.NewImageStore(t.TempDir(), "/uploads")
	require.NoError(t, err)
	handlers.Images = images

	r := gin.New()
	routes.SetupRoutes(r)
	return r
}

// doJSON performs one request and decodes the JSON response body
func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}, headers ...map[string]string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for _, h := range headers {
		for k, v := range h {
			req.Header.Set(k, v)
		}
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	resp := map[string]interface{}{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	}
	return w, resp
}

// registerUser signs up through the API and returns the token
func registerUser(t *testing.T, r *gin.Engine, email string, role models.UserRole) string {
	t.Helper()
	w, resp := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":     email,
		"password":  "secret123",
		"full_name": "Test " + string(role),
		"role":      role,
	})
	require.Equal(t, http.StatusCreated, w.Code, "register %s: %v", email, resp)
	return resp["token"].(string)
}

// createAdmin seeds an admin directly; there is no self-service path
func createAdmin(t *testing.T) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{Email: "admin@chowline.test", PasswordHash: string(hash)}
	require.NoError(t, config.DB.Create(&user).Error)
	profile := models.Profile{UserID: user.ID, FullName: "Root Admin", Role: models.RoleAdmin}
	require.NoError(t, config.DB.Create(&profile).Error)

	token, err := middleware.GenerateToken(&user, models.RoleAdmin)
	require.NoError(t, err)
	return token
}

// setupRestaurant registers a chef, creates their restaurant and returns
// the chef token plus restaurant and dish IDs for the given menu.
type menuItem struct {
	Name     string
	Price    int64
	Category string
}

func setupRestaurant(t *testing.T, r *gin.Engine, chefEmail string, items []menuItem) (string, uint, []uint) {
	t.Helper()
	token := registerUser(t, r, chefEmail, models.RoleChef)

	w, resp := doJSON(t, r, http.MethodPost, "/api/chef/restaurant", token, gin.H{
		"name":       "Mama Put " + chefEmail,
		"address":    "12 Allen Avenue, Ikeja",
		"categories": []string{"Rice", "Grill", "Drinks"},
	})
	require.Equal(t, http.StatusCreated, w.Code, "create restaurant: %v", resp)
	restaurantID := uint(resp["restaurant"].(map[string]interface{})["id"].(float64))

	var dishIDs []uint
	for _, it := range items {
		w, resp := doJSON(t, r, http.MethodPost, "/api/chef/menu", token, gin.H{
			"name":     it.Name,
			"price":    it.Price,
			"category": it.Category,
		})
		require.Equal(t, http.StatusCreated, w.Code, "add dish %s: %v", it.Name, resp)
		dishIDs = append(dishIDs, uint(resp["dish"].(map[string]interface{})["id"].(float64)))
	}
	return token, restaurantID, dishIDs
}

func orderPath(id interface{}) string {
	return fmt.Sprintf("/api/customer/orders/%v", id)
}
