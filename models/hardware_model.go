package models

// Hardware specialization kinds stored on the base hardware row.
const (
	HardwareKindRouter     = "router"
	HardwareKindSwitch     = "switch"
	HardwareKindController = "controller"
	HardwareKindAp         = "ap"
	HardwareKindNas        = "nas"
	HardwareKindNvr        = "nvr"
	HardwareKindCamera     = "camera"
	HardwareKindAutomation = "automation"
)

// Hardware is the base row shared by every physical device.
type Hardware struct {
	ID       uint   `gorm:"primaryKey;column:id" json:"id"`
	Kind     string `gorm:"column:kind;size:20;index" json:"kind" validate:"required,choice=hardware_kind"`
	Brand    string `gorm:"column:brand;size:50" json:"brand" validate:"max=50"`
	Model    string `gorm:"column:model;size:50" json:"model" validate:"max=50"`
	Username string `gorm:"column:username;size:30" json:"username" validate:"max=30"`
	Password string `gorm:"column:password;size:30" json:"password" validate:"max=30"`
	ClientID uint   `gorm:"column:client_id;index" json:"client_id" validate:"required"`
	SiteID   uint   `gorm:"column:site_id;index" json:"site_id" validate:"required"`
}

// TableName returns the database table name for Hardware model.
func (Hardware) TableName() string {
	return "hardware"
}

// SetVariant records the concrete device kind.
func (h *Hardware) SetVariant(kind, _ string) {
	h.Kind = kind
}

// VariantKind returns the stored device kind.
func (h *Hardware) VariantKind() string {
	return h.Kind
}

// Router is an edge router.
type Router struct {
	Hardware `gorm:"-"`

	ID           uint   `gorm:"primaryKey;autoIncrement:false;column:id" json:"id"`
	ManagementIP string `gorm:"column:management_ip;size:45" json:"management_ip" validate:"omitempty,ip"`
	ConfigFile   string `gorm:"column:config_file;type:text" json:"config_file"`
}

// TableName returns the database table name for Router model.
func (Router) TableName() string {
	return "routers"
}

// Switch is a managed switch.
type Switch struct {
	Hardware `gorm:"-"`

	ID           uint   `gorm:"primaryKey;autoIncrement:false;column:id" json:"id"`
	ManagementIP string `gorm:"column:management_ip;size:45" json:"management_ip" validate:"omitempty,ip"`
	ConfigFile   string `gorm:"column:config_file;type:text" json:"config_file"`
}

// TableName returns the database table name for Switch model.
func (Switch) TableName() string {
	return "switches"
}

// Port is a physical port of a switch.
type Port struct {
	ID       uint `gorm:"primaryKey;column:id" json:"id"`
	Number   int  `gorm:"column:number" json:"number"`
	Speed    int  `gorm:"column:speed" json:"speed" validate:"gte=0"`
	SwitchID uint `gorm:"column:switch_id;index" json:"switch_id" validate:"required"`
}

// TableName returns the database table name for Port model.
func (Port) TableName() string {
	return "ports"
}

// Controller manages access points, on premise or hosted.
type Controller struct {
	Hardware `gorm:"-"`

	ID           uint   `gorm:"primaryKey;autoIncrement:false;column:id" json:"id"`
	ManagementIP string `gorm:"column:management_ip;size:45" json:"management_ip" validate:"omitempty,ip"`
	OnPremise    bool   `gorm:"column:on_premise" json:"on_premise"`
	Version      string `gorm:"column:version;size:30" json:"version" validate:"max=30"`
}

// TableName returns the database table name for Controller model.
func (Controller) TableName() string {
	return "controllers"
}

// Ap is an access point broadcasting a wifi service.
type Ap struct {
	Hardware `gorm:"-"`

	ID           uint   `gorm:"primaryKey;autoIncrement:false;column:id" json:"id"`
	ManagementIP string `gorm:"column:management_ip;size:45" json:"management_ip" validate:"omitempty,ip"`
	WifiID       uint   `gorm:"column:wifi_id;index" json:"wifi_id" validate:"required"`
}

// TableName returns the database table name for Ap model.
func (Ap) TableName() string {
	return "aps"
}

// Nas is network attached storage, usually the target of backups.
type Nas struct {
	Hardware `gorm:"-"`

	ID           uint   `gorm:"primaryKey;autoIncrement:false;column:id" json:"id"`
	ManagementIP string `gorm:"column:management_ip;size:45" json:"management_ip" validate:"omitempty,ip"`
	QuickConnect string `gorm:"column:quick_connect;size:30" json:"quick_connect" validate:"max=30"`
}

// TableName returns the database table name for Nas model.
func (Nas) TableName() string {
	return "nas"
}

// Nvr is a network video recorder.
type Nvr struct {
	Hardware `gorm:"-"`

	ID           uint `gorm:"primaryKey;autoIncrement:false;column:id" json:"id"`
	Channels     int  `gorm:"column:channels" json:"channels" validate:"gte=0"`
	UsedChannels int  `gorm:"column:used_channels" json:"used_channels" validate:"gte=0,ltefield=Channels"`
}

// TableName returns the database table name for Nvr model.
func (Nvr) TableName() string {
	return "nvrs"
}

// Camera records to an NVR.
type Camera struct {
	Hardware `gorm:"-"`

	ID    uint `gorm:"primaryKey;autoIncrement:false;column:id" json:"id"`
	NvrID uint `gorm:"column:nvr_id;index" json:"nvr_id" validate:"required"`
}

// TableName returns the database table name for Camera model.
func (Camera) TableName() string {
	return "cameras"
}

// AutomationDevice is a device driven by a stored script.
type AutomationDevice struct {
	Hardware `gorm:"-"`

	ID         uint   `gorm:"primaryKey;autoIncrement:false;column:id" json:"id"`
	ConfigFile string `gorm:"column:config_file;type:text" json:"config_file"`
	ScriptID   uint   `gorm:"column:script_id;index" json:"script_id" validate:"required"`
}

// TableName returns the database table name for AutomationDevice model.
func (AutomationDevice) TableName() string {
	return "automation_devices"
}
