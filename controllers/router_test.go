package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"itdocsapi/pkg/testdb"
	"itdocsapi/repository"
	"itdocsapi/schema"
	"itdocsapi/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiClient struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

func newAPI(t *testing.T) *apiClient {
	gin.SetMode(gin.TestMode)
	db := testdb.Open(t)
	reg := schema.Default()
	base := repository.NewBaseRepositoryWithDB(db)

	auth := services.NewAuthServiceWithDeps(base, repository.NewAccountRepositoryWithDB(db), []byte("test-secret"), time.Hour)
	require.NoError(t, auth.EnsureAdmin(context.Background(), "admin", "correct horse", ""))

	SetAuthService(auth)
	SetEntityService(services.NewEntityServiceWithDeps(base, repository.NewEntityStoreWithDeps(db, reg), reg, true))
	SetClientService(services.NewClientServiceWithDeps(base, repository.NewClientRepositoryWithDB(db)))
	SetScriptService(services.NewScriptServiceWithDeps(base, repository.NewScriptRepositoryWithDB(db)))
	SetMetadataService(services.NewMetadataServiceWithDeps(reg))
	SetHealthDatabase(db)

	return &apiClient{t: t, router: SetupRouter()}
}

func (a *apiClient) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var payload bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&payload).Encode(body))
	}
	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *apiClient) login() {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/auth/login", gin.H{"username": "admin", "password": "correct horse"})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &resp))
	a.token = resp.Token
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestAPI_RequiresToken(t *testing.T) {
	api := newAPI(t)

	w := api.do(http.MethodGet, "/api/clients", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	api.token = "garbage"
	w = api.do(http.MethodGet, "/api/clients", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	api.token = ""
	w = api.do(http.MethodPost, "/api/auth/login", gin.H{"username": "admin", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = api.do(http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPI_ClientTreeEndToEnd(t *testing.T) {
	api := newAPI(t)
	api.login()

	w := api.do(http.MethodPost, "/api/clients", gin.H{"name": "Acme Corp", "phone": "0102030405"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	clientID := decode(t, w)["id"]

	w = api.do(http.MethodPost, "/api/sites", gin.H{"name": "HQ", "client_id": clientID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	siteID := decode(t, w)["id"]

	w = api.do(http.MethodPost, "/api/addresses", gin.H{"street": "Main St", "zip_code": 12345, "site_id": siteID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = api.do(http.MethodGet, "/api/clients/1/tree", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{
		"id": 1, "name": "Acme Corp", "phone": "0102030405", "maintenance": false,
		"sites": [{"id": 1, "name": "HQ", "address": [{
			"number": null, "street": "Main St", "zip_code": 12345,
			"city": "", "region": "", "country": ""
		}]}]
	}`, w.Body.String())

	w = api.do(http.MethodGet, "/api/clients/tree", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = api.do(http.MethodDelete, "/api/clients/1", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = api.do(http.MethodGet, "/api/addresses", nil)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestAPI_ErrorStatuses(t *testing.T) {
	api := newAPI(t)
	api.login()

	w := api.do(http.MethodPost, "/api/clients", gin.H{"phone": "0102030405"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "name", decode(t, w)["field"])

	w = api.do(http.MethodPost, "/api/sites", gin.H{"name": "HQ", "client_id": 99})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = api.do(http.MethodGet, "/api/sites/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(http.MethodGet, "/api/sites/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(http.MethodGet, "/api/sites?name=1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(http.MethodPost, "/api/services", gin.H{"kind": "pbx"})
	assert.Equal(t, http.StatusNotFound, w.Code, "abstract bases expose no create route")
}

func TestAPI_ServicesAreRedactedAndResolvable(t *testing.T) {
	api := newAPI(t)
	api.login()

	w := api.do(http.MethodPost, "/api/clients", gin.H{"name": "Acme Corp"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = api.do(http.MethodPost, "/api/sites", gin.H{"name": "HQ", "client_id": 1})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = api.do(http.MethodPost, "/api/vpns", gin.H{"client_id": 1, "site_id": 1, "psk": "top-secret", "vpn_type": "ipsec"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	vpn := decode(t, w)
	assert.Equal(t, "********", vpn["psk"])
	assert.Equal(t, "vpn", vpn["kind"])

	w = api.do(http.MethodGet, "/api/services/1/detail", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	detail := decode(t, w)
	assert.Equal(t, "vpn", detail["entity"])

	w = api.do(http.MethodPost, "/api/active-directories", gin.H{"client_id": 1, "site_id": 1, "domain": "corp.local"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = api.do(http.MethodPost, "/api/active-directories", gin.H{"client_id": 1, "site_id": 1, "domain": "corp.local"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAPI_MetadataAndScripts(t *testing.T) {
	api := newAPI(t)
	api.login()

	w := api.do(http.MethodGet, "/api/choices", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decode(t, w), "service_type")

	w = api.do(http.MethodGet, "/api/schema", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = api.do(http.MethodPost, "/api/scripts", gin.H{"title": "hello", "code": "echo hi", "language": "bash"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "friendly", decode(t, w)["style"])

	w = api.do(http.MethodPost, "/api/scripts", gin.H{"title": "bad", "language": "no-such-language"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(http.MethodGet, "/api/scripts/1/view", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "echo hi", decode(t, w)["code"])

	w = api.do(http.MethodGet, "/api/scripts/1/highlight", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
}

func TestAPI_Accounts(t *testing.T) {
	api := newAPI(t)
	api.login()

	w := api.do(http.MethodPost, "/api/account-groups", gin.H{"name": "ops"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = api.do(http.MethodPost, "/api/accounts", gin.H{"username": "jdoe", "password": "longenough", "groups": []uint{1}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "password")

	w = api.do(http.MethodPost, "/api/accounts", gin.H{"username": "short", "password": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(http.MethodGet, "/api/accounts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var accounts []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &accounts))
	assert.Len(t, accounts, 2)
}

func TestAPI_AccountAndGroupCRUD(t *testing.T) {
	api := newAPI(t)
	api.login()

	w := api.do(http.MethodPost, "/api/account-groups", gin.H{"name": "ops"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = api.do(http.MethodPost, "/api/accounts", gin.H{"username": "jdoe", "password": "longenough", "groups": []uint{1}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = api.do(http.MethodGet, "/api/accounts/2", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "jdoe", decode(t, w)["username"])

	w = api.do(http.MethodPut, "/api/accounts/2", gin.H{"username": "john", "password": "anotherpass", "groups": []uint{}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "john", body["username"])
	assert.Empty(t, body["groups"])
	assert.NotContains(t, w.Body.String(), "anotherpass")

	w = api.do(http.MethodPut, "/api/accounts/2", gin.H{"username": "admin"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = api.do(http.MethodGet, "/api/account-groups/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = api.do(http.MethodPut, "/api/account-groups/1", gin.H{"name": "noc"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "noc", decode(t, w)["name"])
	w = api.do(http.MethodDelete, "/api/account-groups/1", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = api.do(http.MethodGet, "/api/account-groups/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(http.MethodDelete, "/api/accounts/2", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = api.do(http.MethodGet, "/api/accounts/2", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAPI_UpdateThroughParentPathKeepsKind(t *testing.T) {
	api := newAPI(t)
	api.login()

	w := api.do(http.MethodPost, "/api/clients", gin.H{"name": "Acme"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = api.do(http.MethodPost, "/api/sites", gin.H{"name": "HQ", "client_id": 1})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = api.do(http.MethodPost, "/api/wans", gin.H{"client_id": 1, "site_id": 1, "provider": "Orange"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = api.do(http.MethodPut, "/api/networks/1", gin.H{"client_id": 1, "site_id": 1, "gateway": "10.0.0.9"})
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Equal(t, "kind", decode(t, w)["field"])

	w = api.do(http.MethodGet, "/api/services/1/detail", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "wan", decode(t, w)["entity"])
}
