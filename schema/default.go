package schema

import (
	"sync"

	"itdocsapi/models"
)

var (
	defaultRegistry *Registry
	defaultOnce     sync.Once
)

// Default returns the registry of the infrastructure schema.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = MustNewRegistry(Entities()...)
	})
	return defaultRegistry
}

func cascade(column, target string) Relation {
	return Relation{Column: column, Target: target, OnDelete: Cascade}
}

func optional(column, target string, onDelete OnDelete) Relation {
	return Relation{Column: column, Target: target, OnDelete: onDelete, Nullable: true}
}

func serviceBase(m interface{}) *models.Service {
	switch v := m.(type) {
	case *models.MailServer:
		return &v.Service
	case *models.ActiveDirectory:
		return &v.Service
	case *models.Vpn:
		return &v.Service
	case *models.Pbx:
		return &v.Service
	case *models.Network:
		return &v.Service
	case *models.Wifi:
		return &v.Service
	case *models.Backup:
		return &v.Service
	case *models.AutomationService:
		return &v.Service
	case *models.App:
		return &v.Service
	}
	return nil
}

func hardwareBase(m interface{}) *models.Hardware {
	switch v := m.(type) {
	case *models.Router:
		return &v.Hardware
	case *models.Switch:
		return &v.Hardware
	case *models.Controller:
		return &v.Hardware
	case *models.Ap:
		return &v.Hardware
	case *models.Nas:
		return &v.Hardware
	case *models.Nvr:
		return &v.Hardware
	case *models.Camera:
		return &v.Hardware
	case *models.AutomationDevice:
		return &v.Hardware
	}
	return nil
}

func service(name, path, kind, category string, newFn func() interface{}, rels ...Relation) *Entity {
	return &Entity{
		Name:      name,
		Path:      path,
		Parent:    "service",
		Kind:      kind,
		Category:  category,
		Relations: rels,
		New:       newFn,
		Base:      func(m interface{}) interface{} { return serviceBase(m) },
	}
}

func hardware(name, path, kind string, newFn func() interface{}, rels ...Relation) *Entity {
	return &Entity{
		Name:      name,
		Path:      path,
		Parent:    "hardware",
		Kind:      kind,
		Relations: rels,
		New:       newFn,
		Base:      func(m interface{}) interface{} { return hardwareBase(m) },
	}
}

// Entities lists the entities of the infrastructure schema. A new model is
// exposed only once it is added here.
func Entities() []*Entity {
	wan := service("wan", "wans", models.ServiceKindWan, models.ServiceTypeNetwork,
		func() interface{} { return &models.Wan{} })
	wan.Parent = "network"
	wan.Base = func(m interface{}) interface{} { return &m.(*models.Wan).Network }

	pbx := service("pbx", "pbxes", models.ServiceKindPbx, models.ServiceTypePBX,
		func() interface{} { return &models.Pbx{} })

	vpn := service("vpn", "vpns", models.ServiceKindVpn, models.ServiceTypeSecurity,
		func() interface{} { return &models.Vpn{} })
	vpn.Sensitive = []string{"psk"}

	wifi := service("wifi", "wifis", models.ServiceKindWifi, models.ServiceTypeWifi,
		func() interface{} { return &models.Wifi{} },
		cascade("vlan_id", "vlan"),
		cascade("controller_id", "controller"))
	wifi.Sensitive = []string{"password"}

	app := service("app", "apps", models.ServiceKindApp, models.ServiceTypeApplication,
		func() interface{} { return &models.App{} },
		cascade("script_id", "script"),
		cascade("config_file_id", "config_file"))
	app.Sensitive = []string{"ssh_key"}

	activeDirectory := service("active_directory", "active-directories", models.ServiceKindActiveDirectory,
		models.ServiceTypeActiveDirectory, func() interface{} { return &models.ActiveDirectory{} })
	activeDirectory.Unique = []string{"domain"}

	return []*Entity{
		{
			Name: "client",
			Path: "clients",
			New:  func() interface{} { return &models.Client{} },
		},
		{
			Name:      "site",
			Path:      "sites",
			New:       func() interface{} { return &models.Site{} },
			Relations: []Relation{cascade("client_id", "client")},
		},
		{
			Name:      "address",
			Path:      "addresses",
			New:       func() interface{} { return &models.Address{} },
			Relations: []Relation{cascade("site_id", "site")},
		},
		{
			Name: "script",
			Path: "scripts",
			New:  func() interface{} { return &models.Script{} },
		},
		{
			Name: "config_file",
			Path: "config-files",
			New:  func() interface{} { return &models.ConfigFile{} },
		},
		{
			Name:      "service",
			Path:      "services",
			Abstract:  true,
			SameOwner: true,
			New:       func() interface{} { return &models.Service{} },
			Relations: []Relation{
				cascade("site_id", "site"),
				cascade("client_id", "client"),
			},
		},
		{
			Name:      "hardware",
			Path:      "hardware",
			Abstract:  true,
			SameOwner: true,
			Sensitive: []string{"password"},
			New:       func() interface{} { return &models.Hardware{} },
			Relations: []Relation{
				cascade("client_id", "client"),
				cascade("site_id", "site"),
			},
		},
		service("mail_server", "mail-servers", models.ServiceKindMailServer, models.ServiceTypeEmail,
			func() interface{} { return &models.MailServer{} }),
		activeDirectory,
		vpn,
		pbx,
		service("network", "networks", models.ServiceKindNetwork, models.ServiceTypeNetwork,
			func() interface{} { return &models.Network{} }),
		wan,
		{
			Name:      "vlan",
			Path:      "vlans",
			Unique:    []string{"tag"},
			New:       func() interface{} { return &models.Vlan{} },
			Relations: []Relation{cascade("network_id", "network")},
		},
		hardware("router", "routers", models.HardwareKindRouter,
			func() interface{} { return &models.Router{} }),
		hardware("switch", "switches", models.HardwareKindSwitch,
			func() interface{} { return &models.Switch{} }),
		{
			Name:      "port",
			Path:      "ports",
			New:       func() interface{} { return &models.Port{} },
			Relations: []Relation{cascade("switch_id", "switch")},
		},
		hardware("controller", "controllers", models.HardwareKindController,
			func() interface{} { return &models.Controller{} }),
		wifi,
		hardware("ap", "aps", models.HardwareKindAp,
			func() interface{} { return &models.Ap{} },
			cascade("wifi_id", "wifi")),
		hardware("nas", "nas", models.HardwareKindNas,
			func() interface{} { return &models.Nas{} }),
		hardware("nvr", "nvrs", models.HardwareKindNvr,
			func() interface{} { return &models.Nvr{} }),
		hardware("camera", "cameras", models.HardwareKindCamera,
			func() interface{} { return &models.Camera{} },
			cascade("nvr_id", "nvr")),
		hardware("automation_device", "automation-devices", models.HardwareKindAutomation,
			func() interface{} { return &models.AutomationDevice{} },
			cascade("script_id", "script")),
		{
			Name:      "queue",
			Path:      "queues",
			New:       func() interface{} { return &models.Queue{} },
			Relations: []Relation{cascade("pbx_id", "pbx")},
		},
		{
			Name:      "ivr",
			Path:      "ivrs",
			New:       func() interface{} { return &models.Ivr{} },
			Relations: []Relation{cascade("pbx_id", "pbx")},
		},
		{
			Name:      "schedule",
			Path:      "schedules",
			New:       func() interface{} { return &models.Schedule{} },
			Relations: []Relation{cascade("ivr_id", "ivr")},
		},
		{
			Name:      "trunk",
			Path:      "trunks",
			Sensitive: []string{"credential"},
			New:       func() interface{} { return &models.Trunk{} },
			Relations: []Relation{cascade("pbx_id", "pbx")},
		},
		service("backup", "backups", models.ServiceKindBackup, models.ServiceTypeBackup,
			func() interface{} { return &models.Backup{} },
			cascade("nas_id", "nas"),
			cascade("schedule_id", "schedule")),
		service("automation", "automations", models.ServiceKindAutomation, models.ServiceTypeAutomation,
			func() interface{} { return &models.AutomationService{} },
			cascade("script_id", "script")),
		app,
		{
			Name:      "user",
			Path:      "users",
			New:       func() interface{} { return &models.User{} },
			Relations: []Relation{cascade("client_id", "client")},
		},
		{
			Name:      "ad_share",
			Path:      "ad-shares",
			Unique:    []string{"path"},
			New:       func() interface{} { return &models.AdShare{} },
			Relations: []Relation{cascade("active_directory_id", "active_directory")},
		},
		{
			Name:      "group",
			Path:      "groups",
			New:       func() interface{} { return &models.Group{} },
			Relations: []Relation{cascade("active_directory_id", "active_directory")},
		},
		{
			Name: "group_policy",
			Path: "group-policies",
			New:  func() interface{} { return &models.GroupPolicy{} },
			Relations: []Relation{
				cascade("active_directory_id", "active_directory"),
				optional("group_id", "group", SetNull),
			},
		},
		{
			Name:      "credential",
			Path:      "credentials",
			Sensitive: []string{"password", "key"},
			New:       func() interface{} { return &models.Credential{} },
			Relations: []Relation{
				cascade("user_id", "user"),
				cascade("service_id", "service"),
				optional("group_id", "group", Cascade),
			},
		},
		{
			Name:      "extension",
			Path:      "extensions",
			Sensitive: []string{"password"},
			New:       func() interface{} { return &models.Extension{} },
			Relations: []Relation{
				cascade("user_id", "user"),
				cascade("pbx_id", "pbx"),
				cascade("queue_id", "queue"),
			},
		},
	}
}
