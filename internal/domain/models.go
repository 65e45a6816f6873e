// Package domain defines the persistence models for the senior-citizen
// affairs office: officials, barangays, senior citizens, SMS credentials,
// users, and the append-only audit and SMS delivery logs. These types are
// mapped with GORM and form the core data layer of the application.
package domain

import (
	"time"

	"gorm.io/gorm"
)

// Actor identifies the authenticated user a mutating action is attributed
// to. A nil *Actor on a service call means the action is anonymous (or
// system-initiated) and must not produce an audit entry.
type Actor struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Audit action kinds. Recycle-bin transitions get their own kinds (RESTORE,
// PURGE) so the trail distinguishes reversible and permanent removal.
const (
	ActionCreate   = "CREATE"
	ActionUpdate   = "UPDATE"
	ActionDelete   = "DELETE"
	ActionRestore  = "RESTORE"
	ActionPurge    = "PURGE"
	ActionLogin    = "LOGIN"
	ActionLogout   = "LOGOUT"
	ActionRegister = "REGISTER"
)

// Official positions carrying an exclusivity constraint: the office has at
// most one federation head and one vice head at any time.
const (
	PositionHead = "head"
	PositionVice = "vice"
)

// Official represents an officer of the senior-citizens federation.
//
// Image holds the stored filename of the officer's photo, or "" when none
// was uploaded. The file itself lives in the attachment store; Image is
// never left pointing at a deleted file.
type Official struct {
	ID        uint      `json:"id"         gorm:"primaryKey"`
	Name      string    `json:"name"       gorm:"type:varchar(128);not null"`
	Position  string    `json:"position"   gorm:"type:varchar(64);not null;index"`
	Image     string    `json:"image"      gorm:"type:varchar(255)"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for Official.
func (Official) TableName() string { return "officials" }

// Barangay is an administrative district citizens are registered under.
type Barangay struct {
	ID        uint      `json:"id"         gorm:"primaryKey"`
	Name      string    `json:"name"       gorm:"type:varchar(128);not null;uniqueIndex"`
	Captain   string    `json:"captain"    gorm:"type:varchar(128)"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for Barangay.
func (Barangay) TableName() string { return "barangays" }

// Senior citizen status values.
const (
	StatusActive      = "active"
	StatusDeceased    = "deceased"
	StatusTransferred = "transferred"
)

// SeniorCitizen is the registry record of one senior citizen.
//
// Deletion is reversible: DeletedAt marks the row as sitting in the recycle
// bin. Default queries exclude soft-deleted rows (GORM scope); the
// recycle-bin view selects exclusively those rows. Purge removes the row and
// its photo permanently.
//
// Fields:
//   - OscaID: office-issued ID number, unique across the registry.
//   - Photo: stored filename of the citizen's photo, "" when absent.
//   - Status: active | deceased | transferred.
type SeniorCitizen struct {
	ID            uint           `json:"id"             gorm:"primaryKey"`
	OscaID        string         `json:"osca_id"        gorm:"type:varchar(32);not null;uniqueIndex"`
	LastName      string         `json:"last_name"      gorm:"type:varchar(64);not null;index"`
	FirstName     string         `json:"first_name"     gorm:"type:varchar(64);not null"`
	MiddleName    string         `json:"middle_name"    gorm:"type:varchar(64)"`
	Suffix        string         `json:"suffix"         gorm:"type:varchar(16)"`
	BirthDate     string         `json:"birth_date"     gorm:"type:varchar(10)"` // YYYY-MM-DD
	Gender        string         `json:"gender"         gorm:"type:varchar(16);index"`
	CivilStatus   string         `json:"civil_status"   gorm:"type:varchar(32)"`
	Barangay      string         `json:"barangay"       gorm:"type:varchar(128);index"`
	Purok         string         `json:"purok"          gorm:"type:varchar(128)"`
	ContactNumber string         `json:"contact_number" gorm:"type:varchar(32)"`
	Status        string         `json:"status"         gorm:"type:varchar(16);not null;default:'active';index"`
	Photo         string         `json:"photo"          gorm:"type:varchar(255)"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-"              gorm:"index"`
}

// TableName returns the database table name for SeniorCitizen.
func (SeniorCitizen) TableName() string { return "senior_citizens" }

// FullName renders "Last, First Suffix" for audit messages and SMS logs.
func (c SeniorCitizen) FullName() string {
	name := c.LastName + ", " + c.FirstName
	if c.Suffix != "" {
		name += " " + c.Suffix
	}
	return name
}

// SmsCredential holds the outbound gateway credentials. The table contains
// at most one row: saving replaces the existing record in place.
type SmsCredential struct {
	ID         uint      `json:"id"          gorm:"primaryKey"`
	ApiKey     string    `json:"api_key"     gorm:"type:varchar(128);not null"`
	SenderName string    `json:"sender_name" gorm:"type:varchar(32)"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName returns the database table name for SmsCredential.
func (SmsCredential) TableName() string { return "sms_credentials" }

// User is an administrator account. Passwords are stored as bcrypt hashes
// and never serialized.
type User struct {
	ID           uint      `json:"id"    gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"type:varchar(128);not null;uniqueIndex"`
	Name         string    `json:"name"  gorm:"type:varchar(128);not null"`
	Role         string    `json:"role"  gorm:"type:varchar(32);not null;default:'Staff'"`
	PasswordHash string    `json:"-"     gorm:"type:varchar(128);not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// AuditLog is one immutable line of the audit trail. Rows are appended by
// the audit recorder and never updated or deleted by the application.
type AuditLog struct {
	ID         uint      `json:"id"          gorm:"primaryKey"`
	ActorEmail string    `json:"actor_email" gorm:"type:varchar(128);not null;index"`
	ActorRole  string    `json:"actor_role"  gorm:"type:varchar(32);not null"`
	Action     string    `json:"action"      gorm:"type:varchar(16);not null;index"`
	Details    string    `json:"details"     gorm:"type:text;not null"`
	CreatedAt  time.Time `json:"created_at"  gorm:"index"`
}

// TableName returns the database table name for AuditLog.
func (AuditLog) TableName() string { return "audit_logs" }

// SmsLog records one broadcast attempt: what was sent, to how many numbers,
// and what the gateway answered. A row is written whether or not delivery
// succeeded.
type SmsLog struct {
	ID             uint      `json:"id"              gorm:"primaryKey"`
	Message        string    `json:"message"         gorm:"type:text;not null"`
	Recipients     string    `json:"recipients"      gorm:"type:text"` // comma-joined numbers
	RecipientCount int       `json:"recipient_count" gorm:"not null"`
	Status         string    `json:"status"          gorm:"type:varchar(16);not null;index"`
	ProviderRef    string    `json:"provider_ref"    gorm:"type:varchar(64)"`
	CreatedAt      time.Time `json:"created_at"      gorm:"index"`
}

// TableName returns the database table name for SmsLog.
func (SmsLog) TableName() string { return "sms_logs" }
