package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"itdocsapi/models"
	"itdocsapi/pkg/apperr"
	"itdocsapi/pkg/testdb"
	"itdocsapi/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientTree_NestsSitesAndAddresses(t *testing.T) {
	db := testdb.Open(t)
	client := models.Client{Name: "Acme Corp", Phone: "0102030405", Maintenance: true}
	require.NoError(t, db.Create(&client).Error)
	site := models.Site{Name: "HQ", ClientID: client.ID}
	require.NoError(t, db.Create(&site).Error)
	number := 12
	require.NoError(t, db.Create(&models.Address{
		Number: &number, Street: "Main St", ZipCode: 12345, City: "Springfield", Country: "US", SiteID: site.ID,
	}).Error)

	svc := NewClientServiceWithDeps(repository.NewBaseRepositoryWithDB(db), repository.NewClientRepositoryWithDB(db))
	view, err := svc.Tree(context.Background(), client.ID)
	require.NoError(t, err)

	assert.Equal(t, "Acme Corp", view.Name)
	assert.True(t, view.Maintenance)
	require.Len(t, view.Sites, 1)
	assert.Equal(t, "HQ", view.Sites[0].Name)
	require.Len(t, view.Sites[0].Address, 1)
	assert.Equal(t, 12345, view.Sites[0].Address[0].ZipCode)

	raw, err := json.Marshal(view)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": 1, "name": "Acme Corp", "phone": "0102030405", "maintenance": true,
		"sites": [{"id": 1, "name": "HQ", "address": [{
			"number": 12, "street": "Main St", "zip_code": 12345,
			"city": "Springfield", "region": "", "country": "US"
		}]}]
	}`, string(raw))
}

func TestClientTree_EmptyCollectionsAndMissingClient(t *testing.T) {
	db := testdb.Open(t)
	require.NoError(t, db.Create(&models.Client{Name: "Globex"}).Error)
	require.NoError(t, db.Create(&models.Client{Name: "Initech"}).Error)

	svc := NewClientServiceWithDeps(repository.NewBaseRepositoryWithDB(db), repository.NewClientRepositoryWithDB(db))

	views, err := svc.Trees(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "Globex", views[0].Name)
	assert.NotNil(t, views[1].Sites)
	assert.Empty(t, views[1].Sites)

	_, err = svc.Tree(context.Background(), 99)
	assert.True(t, errors.Is(err, apperr.ErrNotFound), "got %v", err)
}
