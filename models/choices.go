package models

// Choice is one value of a closed enumeration together with its display label.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Service types. The stored values follow the legacy inventory exports.
const (
	ServiceTypeEmail           = "e-Mail"
	ServiceTypePBX             = "PBX"
	ServiceTypeActiveDirectory = "AD"
	ServiceTypeNetwork         = "Net"
	ServiceTypeWifi            = "Wifi"
	ServiceTypeSecurity        = "Sec"
	ServiceTypeAutomation      = "Auto"
	ServiceTypeBackup          = "Bck-Up"
	ServiceTypeApplication     = "App"
)

// Choice set names, referenced by `choice=<name>` validate tags.
const (
	ChoiceServiceType   = "service_type"
	ChoiceServiceKind   = "service_kind"
	ChoiceHardwareKind  = "hardware_kind"
	ChoiceVpnType       = "vpn_type"
	ChoiceVpnHash       = "vpn_hash"
	ChoiceVpnDHG        = "vpn_dhg"
	ChoiceVpnEncryption = "vpn_encryption"
	ChoiceNetType       = "net_type"
	ChoiceWanConnection = "wan_connection_type"
	ChoiceWanTechnology = "wan_technology"
	ChoiceBackupType    = "backup_type"
)

// Choices indexes every hand-authored enumeration by choice set name.
// Script language and style come from the highlighting registry instead.
var Choices = map[string][]Choice{
	ChoiceServiceType: {
		{ServiceTypeEmail, "Email"},
		{ServiceTypePBX, "Phone System"},
		{ServiceTypeActiveDirectory, "Active Directory"},
		{ServiceTypeNetwork, "Network"},
		{ServiceTypeWifi, "Wifi-Network"},
		{ServiceTypeSecurity, "Security"},
		{ServiceTypeAutomation, "Automation"},
		{ServiceTypeBackup, "Backup"},
		{ServiceTypeApplication, "Application"},
	},
	ChoiceServiceKind: {
		{ServiceKindMailServer, "Mail server"},
		{ServiceKindActiveDirectory, "Active Directory"},
		{ServiceKindVpn, "VPN"},
		{ServiceKindPbx, "PBX"},
		{ServiceKindNetwork, "Network"},
		{ServiceKindWan, "WAN"},
		{ServiceKindWifi, "Wifi"},
		{ServiceKindBackup, "Backup"},
		{ServiceKindAutomation, "Automation"},
		{ServiceKindApp, "Application"},
	},
	ChoiceHardwareKind: {
		{HardwareKindRouter, "Router"},
		{HardwareKindSwitch, "Switch"},
		{HardwareKindController, "Controller"},
		{HardwareKindAp, "Access point"},
		{HardwareKindNas, "NAS"},
		{HardwareKindNvr, "NVR"},
		{HardwareKindCamera, "Camera"},
		{HardwareKindAutomation, "Automation device"},
	},
	ChoiceVpnType: {
		{"l2tp", "L2TP"},
		{"pptp", "PPTP"},
		{"ipsec", "IPSEC"},
	},
	ChoiceVpnHash: {
		{"sha1", "SHA1"},
		{"sha256", "SHA256"},
	},
	ChoiceVpnDHG: {
		{"modp1024", "DHG14"},
		{"modp2048", "DHG16"},
	},
	ChoiceVpnEncryption: {
		{"aes128", "AES-128"},
		{"aes192", "AES-192"},
	},
	ChoiceNetType: {
		{"LAN", "Local Area Network"},
		{"WAN", "Wide Area Network"},
	},
	ChoiceWanConnection: {
		{"PPoE", "PPoE"},
		{"DHCP", "DHCP"},
		{"Fixe", "Fixe Address"},
	},
	ChoiceWanTechnology: {
		{"FTTH", "Fiber"},
		{"ADSL", "Adsl"},
		{"VDSL", "Vdsl"},
		{"DOCSIS", "Coax"},
	},
	ChoiceBackupType: {
		{"Rsync", "rsync"},
		{"HyperBackup", "Hyper-Backup"},
		{"ActiveBackup", "Active Backup"},
		{"Cobian", "Cobian"},
		{"Veeam", "Veeam"},
	},
}

// IsChoice reports whether value belongs to the named choice set.
func IsChoice(set, value string) bool {
	for _, c := range Choices[set] {
		if c.Value == value {
			return true
		}
	}
	return false
}

// ChoiceLabel returns the display label of value, or value itself when unknown.
func ChoiceLabel(set, value string) string {
	for _, c := range Choices[set] {
		if c.Value == value {
			return c.Label
		}
	}
	return value
}
