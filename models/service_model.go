package models

// Service specialization kinds stored on the base services row.
const (
	ServiceKindMailServer      = "mail_server"
	ServiceKindActiveDirectory = "active_directory"
	ServiceKindVpn             = "vpn"
	ServiceKindPbx             = "pbx"
	ServiceKindNetwork         = "network"
	ServiceKindWan             = "wan"
	ServiceKindWifi            = "wifi"
	ServiceKindBackup          = "backup"
	ServiceKindAutomation      = "automation"
	ServiceKindApp             = "app"
)

// Service is the base row shared by every service delivered to a client at a site.
// Specializations embed it and share its id; the embedded value is stored in the
// services table, never in the specialization table.
type Service struct {
	ID       uint   `gorm:"primaryKey;column:id" json:"id"`
	Type     string `gorm:"column:type;size:10" json:"type" validate:"required,choice=service_type"`
	Kind     string `gorm:"column:kind;size:20;index" json:"kind" validate:"required,choice=service_kind"`
	SiteID   uint   `gorm:"column:site_id;index" json:"site_id" validate:"required"`
	ClientID uint   `gorm:"column:client_id;index" json:"client_id" validate:"required"`
}

// TableName returns the database table name for Service model.
func (Service) TableName() string {
	return "services"
}

// SetVariant records the concrete specialization. The service type keeps any
// operator supplied value and falls back to the specialization's category.
func (s *Service) SetVariant(kind, category string) {
	s.Kind = kind
	if s.Type == "" {
		s.Type = category
	}
}

// VariantKind returns the stored specialization kind.
func (s *Service) VariantKind() string {
	return s.Kind
}

// MailServer documents a hosted or on-premise mail service.
type MailServer struct {
	Service `gorm:"-"`

	ID         uint   `gorm:"primaryKey;autoIncrement:false;column:id" json:"id"`
	SMTPServer string `gorm:"column:smtp_server;size:30" json:"smtp_server" validate:"max=30"`
	IMAPServer string `gorm:"column:imap_server;size:30" json:"imap_server" validate:"max=30"`
	Provider   string `gorm:"column:provider;size:30" json:"provider" validate:"max=30"`
	DomainName string `gorm:"column:domain_name;size:20" json:"domain_name" validate:"max=20"`
}

// TableName returns the database table name for MailServer model.
func (MailServer) TableName() string {
	return "mail_servers"
}

// ActiveDirectory is a directory service, identified by its domain.
type ActiveDirectory struct {
	Service `gorm:"-"`

	ID                 uint   `gorm:"primaryKey;autoIncrement:false;column:id" json:"id"`
	Domain             string `gorm:"column:domain;size:30;uniqueIndex" json:"domain" validate:"required,max=30"`
	DomainControllerIP string `gorm:"column:domain_controller_ip;size:45" json:"domain_controller_ip" validate:"omitempty,ip"`
	Virtualization     bool   `gorm:"column:virtualization" json:"virtualization"`
	VpnService         bool   `gorm:"column:vpn_service" json:"vpn_service"`
}

// TableName returns the database table name for ActiveDirectory model.
func (ActiveDirectory) TableName() string {
	return "active_directories"
}

// Vpn is a site-to-site or remote access VPN with its IPSEC parameters.
type Vpn struct {
	Service `gorm:"-"`

	ID            uint   `gorm:"primaryKey;autoIncrement:false;column:id" json:"id"`
	ServerAddress string `gorm:"column:server_address;size:45" json:"server_address" validate:"omitempty,ip"`
	Provider      string `gorm:"column:provider;size:30" json:"provider" validate:"max=30"`
	PSK           string `gorm:"column:psk;type:text" json:"psk"`
	VpnType       string `gorm:"column:vpn_type;size:20" json:"vpn_type" validate:"omitempty,choice=vpn_type"`
	Hash          string `gorm:"column:hash;size:30" json:"hash" validate:"omitempty,choice=vpn_hash"`
	DHG           string `gorm:"column:dhg;size:30" json:"dhg" validate:"omitempty,choice=vpn_dhg"`
	Encryption    string `gorm:"column:encryption;size:10" json:"encryption" validate:"omitempty,choice=vpn_encryption"`
}

// TableName returns the database table name for Vpn model.
func (Vpn) TableName() string {
	return "vpns"
}

// Pbx is a phone system. Queues, extensions, trunks and IVRs hang off it.
type Pbx struct {
	Service `gorm:"-"`

	ID            uint   `gorm:"primaryKey;autoIncrement:false;column:id" json:"id"`
	Hostname      string `gorm:"column:hostname;size:30" json:"hostname" validate:"max=30"`
	OnPremise     bool   `gorm:"column:on_premise" json:"on_premise"`
	ServerAddress string `gorm:"column:server_address;size:45" json:"server_address" validate:"omitempty,ip"`
	FOP2          bool   `gorm:"column:fop2" json:"fop2"`
}

// TableName returns the database table name for Pbx model.
func (Pbx) TableName() string {
	return "pbxes"
}

// Network describes an addressed network segment.
type Network struct {
	Service `gorm:"-"`

	ID                uint   `gorm:"primaryKey;autoIncrement:false;column:id" json:"id"`
	Gateway           string `gorm:"column:gateway;size:45" json:"gateway" validate:"omitempty,ip"`
	SubnetMask        string `gorm:"column:subnet_mask;size:45" json:"subnet_mask" validate:"omitempty,ip"`
	NetworkAddress    string `gorm:"column:network_address;size:45" json:"network_address" validate:"omitempty,ip"`
	DHCPServerAddress string `gorm:"column:dhcp_server_address;size:45" json:"dhcp_server_address" validate:"omitempty,ip"`
	VlanID            int    `gorm:"column:vlan_id" json:"vlan_id"`
	DomainName        string `gorm:"column:domain_name;size:50" json:"domain_name" validate:"max=50"`
	DNSAddress        string `gorm:"column:dns_address;size:45" json:"dns_address" validate:"omitempty,ip"`
	NetType           string `gorm:"column:net_type;size:20" json:"net_type" validate:"omitempty,choice=net_type"`
}

// TableName returns the database table name for Network model.
func (Network) TableName() string {
	return "networks"
}

// Wan is an internet uplink. It specializes Network and shares its id.
type Wan struct {
	Network `gorm:"-"`

	ID             uint    `gorm:"primaryKey;autoIncrement:false;column:id" json:"id"`
	BandwidthUp    float64 `gorm:"column:bandwidth_up" json:"bandwidth_up" validate:"gte=0"`
	BandwidthDown  float64 `gorm:"column:bandwidth_down" json:"bandwidth_down" validate:"gte=0"`
	Provider       string  `gorm:"column:provider;size:50" json:"provider" validate:"max=50"`
	ConnectionType string  `gorm:"column:connection_type;size:20" json:"connection_type" validate:"omitempty,choice=wan_connection_type"`
	Technology     string  `gorm:"column:technology;size:10" json:"technology" validate:"omitempty,choice=wan_technology"`
}

// TableName returns the database table name for Wan model.
func (Wan) TableName() string {
	return "wans"
}

// ApplyDefaults marks the underlying network as a WAN. A Wan is never a LAN.
func (w *Wan) ApplyDefaults() {
	w.NetType = "WAN"
}

// Wifi is a wireless network served by a controller on a VLAN.
type Wifi struct {
	Service `gorm:"-"`

	ID           uint   `gorm:"primaryKey;autoIncrement:false;column:id" json:"id"`
	SSID         string `gorm:"column:ssid;size:50" json:"ssid" validate:"required,max=50"`
	Password     string `gorm:"column:password;size:30" json:"password" validate:"max=30"`
	VlanID       uint   `gorm:"column:vlan_id;index" json:"vlan_id" validate:"required"`
	ControllerID uint   `gorm:"column:controller_id;index" json:"controller_id" validate:"required"`
}

// TableName returns the database table name for Wifi model.
func (Wifi) TableName() string {
	return "wifis"
}

// Backup is a backup job writing to a NAS on a schedule.
type Backup struct {
	Service `gorm:"-"`

	ID         uint   `gorm:"primaryKey;autoIncrement:false;column:id" json:"id"`
	NasID      uint   `gorm:"column:nas_id;index" json:"nas_id" validate:"required"`
	ScheduleID uint   `gorm:"column:schedule_id;index" json:"schedule_id" validate:"required"`
	BckType    string `gorm:"column:bck_type;size:15" json:"bck_type" validate:"omitempty,choice=backup_type"`
}

// TableName returns the database table name for Backup model.
func (Backup) TableName() string {
	return "backups"
}

// AutomationService runs a stored script on an automation platform.
type AutomationService struct {
	Service `gorm:"-"`

	ID       uint   `gorm:"primaryKey;autoIncrement:false;column:id" json:"id"`
	Name     string `gorm:"column:name;size:50" json:"name" validate:"max=50"`
	Platform string `gorm:"column:platform;size:30" json:"platform" validate:"max=30"`
	ScriptID uint   `gorm:"column:script_id;index" json:"script_id" validate:"required"`
}

// TableName returns the database table name for AutomationService model.
func (AutomationService) TableName() string {
	return "automation_services"
}

// App is a business application with its deployment script and config file.
type App struct {
	Service `gorm:"-"`

	ID           uint   `gorm:"primaryKey;autoIncrement:false;column:id" json:"id"`
	Name         string `gorm:"column:name;size:50" json:"name" validate:"required,max=50"`
	OpSys        string `gorm:"column:op_sys;size:30" json:"op_sys" validate:"max=30"`
	SSHKey       string `gorm:"column:ssh_key;size:20" json:"ssh_key" validate:"max=20"`
	ScriptID     uint   `gorm:"column:script_id;index" json:"script_id" validate:"required"`
	ConfigFileID uint   `gorm:"column:config_file_id;index" json:"config_file_id" validate:"required"`
}

// TableName returns the database table name for App model.
func (App) TableName() string {
	return "apps"
}
