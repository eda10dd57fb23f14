package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/seanlynch0199/MMIS6191-Roses-CloversProperties/internal/middleware"
	"github.com/seanlynch0199/MMIS6191-Roses-CloversProperties/internal/model"
	"github.com/seanlynch0199/MMIS6191-Roses-CloversProperties/internal/repository"
	"github.com/seanlynch0199/MMIS6191-Roses-CloversProperties/pkg/config"
	"github.com/seanlynch0199/MMIS6191-Roses-CloversProperties/pkg/token"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testPassword = "admin123"

// newTestServer wires an echo instance against an in-memory database, the
// same way main does, and returns it with the token store.
func newTestServer(t *testing.T, ttl time.Duration) (*echo.Echo, *token.Store) {
	t.Helper()

	dsn := fmt.Sprintf("file:handler_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Property{}, &model.Tenant{}, &model.Lease{}))

	store := token.NewStore(ttl)
	authHandler := NewAuthHandler(store, config.AuthConfig{AdminPassword: testPassword})
	propertyHandler := NewPropertyHandler(repository.NewPropertyRepository(db))
	tenantHandler := NewTenantHandler(repository.NewTenantRepository(db))
	leaseHandler := NewLeaseHandler(repository.NewLeaseRepository(db))
	dashboardHandler := NewDashboardHandler(repository.NewStatsRepository(db))

	e := echo.New()
	e.GET("/health", HealthCheck)
	e.GET("/api/properties", propertyHandler.List)
	e.GET("/api/properties/:id", propertyHandler.Get)
	e.POST("/api/admin/login", authHandler.Login)

	admin := e.Group("/api/admin")
	admin.Use(middleware.TokenAuth(store))
	admin.POST("/logout", authHandler.Logout)
	admin.GET("/me", authHandler.Me)
	admin.GET("/dashboard/stats", dashboardHandler.Stats)
	admin.GET("/properties", propertyHandler.List)
	admin.POST("/properties", propertyHandler.Create)
	admin.GET("/properties/:id", propertyHandler.Get)
	admin.PUT("/properties/:id", propertyHandler.Update)
	admin.DELETE("/properties/:id", propertyHandler.Delete)
	admin.GET("/tenants", tenantHandler.List)
	admin.POST("/tenants", tenantHandler.Create)
	admin.GET("/tenants/:id", tenantHandler.Get)
	admin.PUT("/tenants/:id", tenantHandler.Update)
	admin.DELETE("/tenants/:id", tenantHandler.Delete)
	admin.GET("/leases", leaseHandler.List)
	admin.POST("/leases", leaseHandler.Create)
	admin.GET("/leases/:id", leaseHandler.Get)
	admin.PUT("/leases/:id", leaseHandler.Update)
	admin.DELETE("/leases/:id", leaseHandler.Delete)

	return e, store
}

// do runs a request against the test server and returns the recorder.
func do(e *echo.Echo, method, path, bearer, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func jsonDecode(rec *httptest.ResponseRecorder, v interface{}) error {
	return json.Unmarshal(rec.Body.Bytes(), v)
}

// login performs an admin login and returns the issued token.
func login(t *testing.T, e *echo.Echo) string {
	t.Helper()

	rec := do(e, http.MethodPost, "/api/admin/login", "", `{"password":"`+testPassword+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, jsonDecode(rec, &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}
