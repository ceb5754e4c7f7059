package repository

import (
	"errors"
	"testing"

	"itdocsapi/models"
	"itdocsapi/pkg/apperr"
	"itdocsapi/pkg/testdb"
	"itdocsapi/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type storeFixture struct {
	t     *testing.T
	db    *gorm.DB
	reg   *schema.Registry
	store EntityStore
}

func newStoreFixture(t *testing.T) *storeFixture {
	db := testdb.Open(t)
	reg := schema.Default()
	return &storeFixture{t: t, db: db, reg: reg, store: NewEntityStoreWithDeps(db, reg)}
}

func (f *storeFixture) entity(name string) *schema.Entity {
	e, ok := f.reg.Get(name)
	require.True(f.t, ok, "entity %s is not registered", name)
	return e
}

func (f *storeFixture) mustCreate(name string, obj interface{}) {
	f.t.Helper()
	require.NoError(f.t, f.store.Create(nil, f.entity(name), obj))
}

func (f *storeFixture) count(table string) int64 {
	f.t.Helper()
	var n int64
	require.NoError(f.t, f.db.Table(table).Count(&n).Error)
	return n
}

func (f *storeFixture) clientWithSite(name string) (*models.Client, *models.Site) {
	client := &models.Client{Name: name}
	f.mustCreate("client", client)
	site := &models.Site{Name: "HQ", ClientID: client.ID}
	f.mustCreate("site", site)
	return client, site
}

func (f *storeFixture) pbx(client *models.Client, site *models.Site) *models.Pbx {
	pbx := &models.Pbx{Hostname: "pbx01"}
	pbx.ClientID = client.ID
	pbx.SiteID = site.ID
	f.mustCreate("pbx", pbx)
	return pbx
}

func (f *storeFixture) activeDirectory(client *models.Client, site *models.Site, domain string) *models.ActiveDirectory {
	ad := &models.ActiveDirectory{Domain: domain}
	ad.ClientID = client.ID
	ad.SiteID = site.ID
	f.mustCreate("active_directory", ad)
	return ad
}

func TestCreate_SpecializationSharesBaseRow(t *testing.T) {
	f := newStoreFixture(t)
	client, site := f.clientWithSite("Acme Corp")

	pbx := f.pbx(client, site)

	require.NotZero(t, pbx.ID)
	assert.Equal(t, pbx.ID, pbx.Service.ID)

	var base models.Service
	require.NoError(t, f.db.First(&base, pbx.ID).Error)
	assert.Equal(t, models.ServiceKindPbx, base.Kind)
	assert.Equal(t, models.ServiceTypePBX, base.Type)
	assert.Equal(t, site.ID, base.SiteID)
}

func TestCreate_IgnoresSuppliedID(t *testing.T) {
	f := newStoreFixture(t)
	f.mustCreate("client", &models.Client{Name: "First"})

	client := &models.Client{ID: 1, Name: "Second"}
	require.NoError(t, f.store.Create(nil, f.entity("client"), client))

	assert.Equal(t, uint(2), client.ID)
	assert.Equal(t, int64(2), f.count("clients"))
}

func TestCreate_KeepsOperatorServiceType(t *testing.T) {
	f := newStoreFixture(t)
	client, site := f.clientWithSite("Acme Corp")

	vpn := &models.Vpn{VpnType: "ipsec"}
	vpn.ClientID = client.ID
	vpn.SiteID = site.ID
	vpn.Type = models.ServiceTypeNetwork
	f.mustCreate("vpn", vpn)

	got, err := f.store.Get(nil, f.entity("vpn"), vpn.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ServiceTypeNetwork, got.(*models.Vpn).Type)
	assert.Equal(t, models.ServiceKindVpn, got.(*models.Vpn).Kind)
}

func TestCreate_RequiredFieldMissing(t *testing.T) {
	f := newStoreFixture(t)

	err := f.store.Create(nil, f.entity("client"), &models.Client{Phone: "0102030405"})

	var verr *apperr.ValidationError
	require.True(t, errors.As(err, &verr), "got %v", err)
	assert.Equal(t, "name", verr.Field)
	assert.Zero(t, f.count("clients"))
}

func TestCreate_InvalidChoice(t *testing.T) {
	f := newStoreFixture(t)
	client, site := f.clientWithSite("Acme Corp")

	vpn := &models.Vpn{VpnType: "wireguard"}
	vpn.ClientID = client.ID
	vpn.SiteID = site.ID
	err := f.store.Create(nil, f.entity("vpn"), vpn)

	var verr *apperr.ValidationError
	require.True(t, errors.As(err, &verr), "got %v", err)
	assert.Equal(t, "vpn_type", verr.Field)
	assert.Zero(t, f.count("services"))
	assert.Zero(t, f.count("vpns"))
}

func TestCreate_ValidChoicesRoundTrip(t *testing.T) {
	f := newStoreFixture(t)
	client, site := f.clientWithSite("Acme Corp")

	wan := &models.Wan{ConnectionType: "PPoE", Technology: "FTTH", Provider: "Orange", BandwidthDown: 1000}
	wan.ClientID = client.ID
	wan.SiteID = site.ID
	f.mustCreate("wan", wan)

	got, err := f.store.Get(nil, f.entity("wan"), wan.ID)
	require.NoError(t, err)
	stored := got.(*models.Wan)
	assert.Equal(t, "PPoE", stored.ConnectionType)
	assert.Equal(t, "FTTH", stored.Technology)
	assert.Equal(t, "WAN", stored.NetType)
	assert.Equal(t, models.ServiceKindWan, stored.Kind)
	assert.Equal(t, models.ServiceTypeNetwork, stored.Type)
	assert.Equal(t, int64(1), f.count("networks"))
}

func TestCreate_MissingReference(t *testing.T) {
	f := newStoreFixture(t)

	err := f.store.Create(nil, f.entity("site"), &models.Site{Name: "HQ", ClientID: 999})

	var rerr *apperr.ReferentialIntegrityError
	require.True(t, errors.As(err, &rerr), "got %v", err)
	assert.Equal(t, "client_id", rerr.Field)
	assert.Equal(t, "client", rerr.RefEntity)
	assert.True(t, errors.Is(err, apperr.ErrReferentialIntegrity))
}

func TestCreate_AbstractBaseRejected(t *testing.T) {
	f := newStoreFixture(t)
	client, site := f.clientWithSite("Acme Corp")

	err := f.store.Create(nil, f.entity("service"), &models.Service{
		Type: models.ServiceTypePBX, Kind: models.ServiceKindPbx, ClientID: client.ID, SiteID: site.ID,
	})

	assert.True(t, errors.Is(err, apperr.ErrValidation), "got %v", err)
	assert.Zero(t, f.count("services"))
}

func TestCreate_OwnerMismatch(t *testing.T) {
	f := newStoreFixture(t)
	acme, _ := f.clientWithSite("Acme Corp")
	_, otherSite := f.clientWithSite("Globex")

	pbx := &models.Pbx{}
	pbx.ClientID = acme.ID
	pbx.SiteID = otherSite.ID
	err := f.store.Create(nil, f.entity("pbx"), pbx)

	var verr *apperr.ValidationError
	require.True(t, errors.As(err, &verr), "got %v", err)
	assert.Equal(t, "client_id", verr.Field)
}

func TestCreate_DuplicateNaturalKeys(t *testing.T) {
	f := newStoreFixture(t)
	client, site := f.clientWithSite("Acme Corp")
	ad := f.activeDirectory(client, site, "corp.local")

	dup := &models.ActiveDirectory{Domain: "corp.local"}
	dup.ClientID = client.ID
	dup.SiteID = site.ID
	err := f.store.Create(nil, f.entity("active_directory"), dup)
	var uerr *apperr.UniquenessViolation
	require.True(t, errors.As(err, &uerr), "got %v", err)
	assert.Equal(t, "domain", uerr.Field)
	assert.Equal(t, int64(1), f.count("active_directories"))

	f.mustCreate("ad_share", &models.AdShare{Path: `\\srv\data`, ActiveDirectoryID: ad.ID})
	err = f.store.Create(nil, f.entity("ad_share"), &models.AdShare{Path: `\\srv\data`, ActiveDirectoryID: ad.ID})
	assert.True(t, errors.Is(err, apperr.ErrUniqueness), "got %v", err)

	network := &models.Network{}
	network.ClientID = client.ID
	network.SiteID = site.ID
	f.mustCreate("network", network)
	f.mustCreate("vlan", &models.Vlan{Tag: 10, NetworkID: network.ID})
	err = f.store.Create(nil, f.entity("vlan"), &models.Vlan{Tag: 10, NetworkID: network.ID})
	require.True(t, errors.As(err, &uerr), "got %v", err)
	assert.Equal(t, "tag", uerr.Field)
}

func TestUpdate_KeepsOwnNaturalKey(t *testing.T) {
	f := newStoreFixture(t)
	client, site := f.clientWithSite("Acme Corp")
	ad := f.activeDirectory(client, site, "corp.local")

	changed := &models.ActiveDirectory{Domain: "corp.local", Virtualization: true}
	changed.ClientID = client.ID
	changed.SiteID = site.ID
	require.NoError(t, f.store.Update(nil, f.entity("active_directory"), ad.ID, changed))

	got, err := f.store.Get(nil, f.entity("active_directory"), ad.ID)
	require.NoError(t, err)
	assert.True(t, got.(*models.ActiveDirectory).Virtualization)
	assert.Equal(t, models.ServiceKindActiveDirectory, got.(*models.ActiveDirectory).Kind)
}

func TestUpdate_ReplacesBaseFields(t *testing.T) {
	f := newStoreFixture(t)
	client, site := f.clientWithSite("Acme Corp")
	branch := &models.Site{Name: "Branch", ClientID: client.ID}
	f.mustCreate("site", branch)
	pbx := f.pbx(client, site)

	moved := &models.Pbx{Hostname: "pbx02", FOP2: true}
	moved.ClientID = client.ID
	moved.SiteID = branch.ID
	require.NoError(t, f.store.Update(nil, f.entity("pbx"), pbx.ID, moved))

	got, err := f.store.Get(nil, f.entity("pbx"), pbx.ID)
	require.NoError(t, err)
	stored := got.(*models.Pbx)
	assert.Equal(t, "pbx02", stored.Hostname)
	assert.True(t, stored.FOP2)
	assert.Equal(t, branch.ID, stored.SiteID)
	assert.Equal(t, int64(1), f.count("services"))
}

func TestUpdate_Errors(t *testing.T) {
	f := newStoreFixture(t)
	client, site := f.clientWithSite("Acme Corp")

	err := f.store.Update(nil, f.entity("client"), 42, &models.Client{Name: "Ghost"})
	assert.True(t, errors.Is(err, apperr.ErrNotFound), "got %v", err)

	err = f.store.Update(nil, f.entity("site"), site.ID, &models.Site{Name: "HQ", ClientID: 77})
	var rerr *apperr.ReferentialIntegrityError
	require.True(t, errors.As(err, &rerr), "got %v", err)
	assert.Equal(t, "client_id", rerr.Field)

	got, err := f.store.Get(nil, f.entity("site"), site.ID)
	require.NoError(t, err)
	assert.Equal(t, client.ID, got.(*models.Site).ClientID)
}

func TestUpdate_RejectsOtherSpecializationPath(t *testing.T) {
	f := newStoreFixture(t)
	client, site := f.clientWithSite("Acme Corp")
	wan := &models.Wan{Provider: "Orange", Technology: "FTTH"}
	wan.ClientID = client.ID
	wan.SiteID = site.ID
	f.mustCreate("wan", wan)

	asNetwork := &models.Network{Gateway: "10.0.0.9"}
	asNetwork.ClientID = client.ID
	asNetwork.SiteID = site.ID
	err := f.store.Update(nil, f.entity("network"), wan.ID, asNetwork)

	var verr *apperr.ValidationError
	require.True(t, errors.As(err, &verr), "got %v", err)
	assert.Equal(t, "kind", verr.Field)

	kind, err := f.store.Resolve(nil, f.entity("service"), wan.ID)
	require.NoError(t, err)
	assert.Equal(t, "wan", kind.Name)
	got, err := f.store.Get(nil, f.entity("wan"), wan.ID)
	require.NoError(t, err)
	stored := got.(*models.Wan)
	assert.Equal(t, models.ServiceKindWan, stored.Kind)
	assert.Equal(t, "WAN", stored.NetType)
	assert.Empty(t, stored.Gateway)

	plain := &models.Network{NetType: "LAN"}
	plain.ClientID = client.ID
	plain.SiteID = site.ID
	f.mustCreate("network", plain)
	plain.Gateway = "10.0.1.1"
	require.NoError(t, f.store.Update(nil, f.entity("network"), plain.ID, plain))
}

func TestWan_AlwaysStoredAsWAN(t *testing.T) {
	f := newStoreFixture(t)
	client, site := f.clientWithSite("Acme Corp")
	wan := &models.Wan{}
	wan.ClientID = client.ID
	wan.SiteID = site.ID
	wan.NetType = "LAN"
	f.mustCreate("wan", wan)

	update := &models.Wan{Provider: "Free"}
	update.ClientID = client.ID
	update.SiteID = site.ID
	update.NetType = "LAN"
	require.NoError(t, f.store.Update(nil, f.entity("wan"), wan.ID, update))

	got, err := f.store.Get(nil, f.entity("wan"), wan.ID)
	require.NoError(t, err)
	assert.Equal(t, "WAN", got.(*models.Wan).NetType)
	assert.Equal(t, "Free", got.(*models.Wan).Provider)
}

func TestGet_NotFound(t *testing.T) {
	f := newStoreFixture(t)

	_, err := f.store.Get(nil, f.entity("pbx"), 7)

	var nerr *apperr.NotFoundError
	require.True(t, errors.As(err, &nerr), "got %v", err)
	assert.Equal(t, "pbx", nerr.Entity)
}

func TestList_FiltersAndLoadsBases(t *testing.T) {
	f := newStoreFixture(t)
	client, site := f.clientWithSite("Acme Corp")
	branch := &models.Site{Name: "Branch", ClientID: client.ID}
	f.mustCreate("site", branch)

	hq := f.pbx(client, site)
	other := f.pbx(client, branch)
	f.mustCreate("queue", &models.Queue{Name: "support", PbxID: hq.ID})
	f.mustCreate("queue", &models.Queue{Name: "sales", PbxID: other.ID})

	all, err := f.store.List(nil, f.entity("pbx"), nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, models.ServiceKindPbx, all[0].(*models.Pbx).Kind)
	assert.Equal(t, site.ID, all[0].(*models.Pbx).SiteID)

	bySite, err := f.store.List(nil, f.entity("pbx"), map[string]uint{"site_id": branch.ID})
	require.NoError(t, err)
	require.Len(t, bySite, 1)
	assert.Equal(t, other.ID, bySite[0].(*models.Pbx).ID)

	queues, err := f.store.List(nil, f.entity("queue"), map[string]uint{"pbx_id": hq.ID})
	require.NoError(t, err)
	require.Len(t, queues, 1)
	assert.Equal(t, "support", queues[0].(*models.Queue).Name)

	_, err = f.store.List(nil, f.entity("queue"), map[string]uint{"name": 1})
	assert.True(t, errors.Is(err, apperr.ErrValidation), "got %v", err)
}

func TestResolve_ReturnsSpecialization(t *testing.T) {
	f := newStoreFixture(t)
	client, site := f.clientWithSite("Acme Corp")
	pbx := f.pbx(client, site)
	wan := &models.Wan{}
	wan.ClientID = client.ID
	wan.SiteID = site.ID
	f.mustCreate("wan", wan)

	e, err := f.store.Resolve(nil, f.entity("service"), pbx.ID)
	require.NoError(t, err)
	assert.Equal(t, "pbx", e.Name)

	e, err = f.store.Resolve(nil, f.entity("service"), wan.ID)
	require.NoError(t, err)
	assert.Equal(t, "wan", e.Name)
}

func TestDelete_ClientCascadesThroughTree(t *testing.T) {
	f := newStoreFixture(t)
	client, site := f.clientWithSite("Acme Corp")
	f.mustCreate("address", &models.Address{Street: "Main St", ZipCode: 12345, SiteID: site.ID})
	pbx := f.pbx(client, site)
	queue := &models.Queue{Name: "support", PbxID: pbx.ID}
	f.mustCreate("queue", queue)
	user := &models.User{FirstName: "Ada", ClientID: client.ID}
	f.mustCreate("user", user)
	f.mustCreate("extension", &models.Extension{Number: 201, UserID: user.ID, PbxID: pbx.ID, QueueID: queue.ID})
	f.mustCreate("credential", &models.Credential{Username: "ada", UserID: user.ID, ServiceID: pbx.ID})

	survivor, survivorSite := f.clientWithSite("Globex")
	f.pbx(survivor, survivorSite)

	require.NoError(t, f.store.Delete(nil, f.entity("client"), client.ID))

	for _, table := range []string{"addresses", "queues", "extensions", "credentials", "users"} {
		assert.Zero(t, f.count(table), table)
	}
	assert.Equal(t, int64(1), f.count("clients"))
	assert.Equal(t, int64(1), f.count("sites"))
	assert.Equal(t, int64(1), f.count("services"))
	assert.Equal(t, int64(1), f.count("pbxes"))
}

func TestDelete_SpecializationRemovesBaseAndCredentials(t *testing.T) {
	f := newStoreFixture(t)
	client, site := f.clientWithSite("Acme Corp")
	pbx := f.pbx(client, site)
	user := &models.User{FirstName: "Ada", ClientID: client.ID}
	f.mustCreate("user", user)
	f.mustCreate("credential", &models.Credential{Username: "admin", UserID: user.ID, ServiceID: pbx.ID})
	f.mustCreate("trunk", &models.Trunk{Name: "sip", PbxID: pbx.ID})

	require.NoError(t, f.store.Delete(nil, f.entity("pbx"), pbx.ID))

	assert.Zero(t, f.count("pbxes"))
	assert.Zero(t, f.count("services"))
	assert.Zero(t, f.count("credentials"))
	assert.Zero(t, f.count("trunks"))
	assert.Equal(t, int64(1), f.count("users"))
}

func TestDelete_PbxRemovesQueuesAndExtensions(t *testing.T) {
	f := newStoreFixture(t)
	client, site := f.clientWithSite("Acme")
	pbx := &models.Pbx{Hostname: "pbx1", OnPremise: true, ServerAddress: "10.0.0.5", FOP2: false}
	pbx.ClientID = client.ID
	pbx.SiteID = site.ID
	f.mustCreate("pbx", pbx)
	user := &models.User{FirstName: "Grace", ClientID: client.ID}
	f.mustCreate("user", user)
	queue := &models.Queue{Number: 1, Name: "support", PbxID: pbx.ID}
	f.mustCreate("queue", queue)
	ext := &models.Extension{Number: 101, UserID: user.ID, PbxID: pbx.ID, QueueID: queue.ID}
	f.mustCreate("extension", ext)

	require.NoError(t, f.store.Delete(nil, f.entity("pbx"), pbx.ID))

	_, err := f.store.Get(nil, f.entity("extension"), ext.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound), "got %v", err)
	_, err = f.store.Get(nil, f.entity("queue"), queue.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound), "got %v", err)
	_, err = f.store.Get(nil, f.entity("user"), user.ID)
	assert.NoError(t, err)
}

func TestDelete_BaseRowRemovesWholeChain(t *testing.T) {
	f := newStoreFixture(t)
	client, site := f.clientWithSite("Acme Corp")
	wan := &models.Wan{}
	wan.ClientID = client.ID
	wan.SiteID = site.ID
	f.mustCreate("wan", wan)
	f.mustCreate("vlan", &models.Vlan{Tag: 20, NetworkID: wan.ID})

	require.NoError(t, f.store.Delete(nil, f.entity("service"), wan.ID))

	assert.Zero(t, f.count("wans"))
	assert.Zero(t, f.count("networks"))
	assert.Zero(t, f.count("services"))
	assert.Zero(t, f.count("vlans"))
}

func TestDelete_GroupClearsPolicyAndCascadesCredentials(t *testing.T) {
	f := newStoreFixture(t)
	client, site := f.clientWithSite("Acme Corp")
	ad := f.activeDirectory(client, site, "corp.local")
	group := &models.Group{Name: "admins", ActiveDirectoryID: ad.ID}
	f.mustCreate("group", group)
	policy := &models.GroupPolicy{Name: "lockout", ActiveDirectoryID: ad.ID, GroupID: &group.ID}
	f.mustCreate("group_policy", policy)
	user := &models.User{FirstName: "Ada", ClientID: client.ID}
	f.mustCreate("user", user)
	f.mustCreate("credential", &models.Credential{Username: "ada", UserID: user.ID, ServiceID: ad.ID, GroupID: &group.ID})

	require.NoError(t, f.store.Delete(nil, f.entity("group"), group.ID))

	got, err := f.store.Get(nil, f.entity("group_policy"), policy.ID)
	require.NoError(t, err)
	assert.Nil(t, got.(*models.GroupPolicy).GroupID)
	assert.Zero(t, f.count("credentials"))
}

func TestDelete_NotFound(t *testing.T) {
	f := newStoreFixture(t)

	err := f.store.Delete(nil, f.entity("site"), 3)

	assert.True(t, errors.Is(err, apperr.ErrNotFound), "got %v", err)
}

func TestStore_RollsBackWithTransaction(t *testing.T) {
	f := newStoreFixture(t)
	client, site := f.clientWithSite("Acme Corp")

	tx := f.db.Begin()
	pbx := &models.Pbx{}
	pbx.ClientID = client.ID
	pbx.SiteID = site.ID
	require.NoError(t, f.store.Create(tx, f.entity("pbx"), pbx))
	require.NoError(t, tx.Rollback().Error)

	assert.Zero(t, f.count("services"))
	assert.Zero(t, f.count("pbxes"))
}
