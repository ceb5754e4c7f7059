package services

import (
	"context"
	"errors"
	"testing"

	"itdocsapi/models"
	"itdocsapi/pkg/apperr"
	"itdocsapi/pkg/testdb"
	"itdocsapi/repository"
	"itdocsapi/schema"
	"itdocsapi/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newEntityService(t *testing.T, redact bool) (EntityService, *gorm.DB) {
	db := testdb.Open(t)
	reg := schema.Default()
	svc := NewEntityServiceWithDeps(
		repository.NewBaseRepositoryWithDB(db),
		repository.NewEntityStoreWithDeps(db, reg),
		reg,
		redact,
	)
	return svc, db
}

func mustEntity(t *testing.T, svc EntityService, name string) *schema.Entity {
	e, ok := svc.Registry().Get(name)
	require.True(t, ok)
	return e
}

func seedSite(t *testing.T, svc EntityService) (*models.Client, *models.Site) {
	ctx := context.Background()
	client := &models.Client{Name: "Acme Corp"}
	_, err := svc.Create(ctx, mustEntity(t, svc, "client"), client)
	require.NoError(t, err)
	site := &models.Site{Name: "HQ", ClientID: client.ID}
	_, err = svc.Create(ctx, mustEntity(t, svc, "site"), site)
	require.NoError(t, err)
	return client, site
}

func TestEntityService_RedactsSecrets(t *testing.T) {
	svc, _ := newEntityService(t, true)
	ctx := context.Background()
	client, site := seedSite(t, svc)

	router := &models.Router{ManagementIP: "10.0.0.1"}
	router.ClientID = client.ID
	router.SiteID = site.ID
	router.Username = "admin"
	router.Password = "s3cret"
	created, err := svc.Create(ctx, mustEntity(t, svc, "router"), router)
	require.NoError(t, err)

	obj, ok := created.(map[string]interface{})
	require.True(t, ok, "redacted entities render as JSON objects")
	assert.Equal(t, utils.RedactedValue, obj["password"])
	assert.Equal(t, "admin", obj["username"])
	assert.Equal(t, "10.0.0.1", obj["management_ip"])

	got, err := svc.Get(ctx, mustEntity(t, svc, "router"), router.ID)
	require.NoError(t, err)
	assert.Equal(t, utils.RedactedValue, got.(map[string]interface{})["password"])

	items, err := svc.List(ctx, mustEntity(t, svc, "hardware"), map[string]uint{"site_id": site.ID})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, utils.RedactedValue, items[0].(map[string]interface{})["password"])
}

func TestEntityService_PlainWhenRedactionDisabled(t *testing.T) {
	svc, _ := newEntityService(t, false)
	client, site := seedSite(t, svc)

	vpn := &models.Vpn{PSK: "shared-key"}
	vpn.ClientID = client.ID
	vpn.SiteID = site.ID
	created, err := svc.Create(context.Background(), mustEntity(t, svc, "vpn"), vpn)
	require.NoError(t, err)

	assert.Equal(t, "shared-key", created.(*models.Vpn).PSK)
}

func TestEntityService_DetailResolvesSpecialization(t *testing.T) {
	svc, _ := newEntityService(t, false)
	client, site := seedSite(t, svc)

	pbx := &models.Pbx{Hostname: "pbx01"}
	pbx.ClientID = client.ID
	pbx.SiteID = site.ID
	_, err := svc.Create(context.Background(), mustEntity(t, svc, "pbx"), pbx)
	require.NoError(t, err)

	e, obj, err := svc.Detail(context.Background(), mustEntity(t, svc, "service"), pbx.ID)
	require.NoError(t, err)
	assert.Equal(t, "pbx", e.Name)
	assert.Equal(t, "pbx01", obj.(*models.Pbx).Hostname)
}

func TestEntityService_FailedWriteLeavesNoRows(t *testing.T) {
	svc, db := newEntityService(t, false)
	client, site := seedSite(t, svc)

	wifi := &models.Wifi{SSID: "guest", VlanID: 5, ControllerID: 6}
	wifi.ClientID = client.ID
	wifi.SiteID = site.ID
	_, err := svc.Create(context.Background(), mustEntity(t, svc, "wifi"), wifi)

	var rerr *apperr.ReferentialIntegrityError
	require.True(t, errors.As(err, &rerr), "got %v", err)
	var n int64
	require.NoError(t, db.Model(&models.Service{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestEntityService_UpdateAndDelete(t *testing.T) {
	svc, db := newEntityService(t, false)
	ctx := context.Background()
	client, site := seedSite(t, svc)

	updated, err := svc.Update(ctx, mustEntity(t, svc, "site"), site.ID, &models.Site{Name: "Head office", ClientID: client.ID})
	require.NoError(t, err)
	assert.Equal(t, "Head office", updated.(*models.Site).Name)

	require.NoError(t, svc.Delete(ctx, mustEntity(t, svc, "client"), client.ID))
	var n int64
	require.NoError(t, db.Model(&models.Site{}).Count(&n).Error)
	assert.Zero(t, n)

	err = svc.Delete(ctx, mustEntity(t, svc, "client"), client.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound), "got %v", err)
}
