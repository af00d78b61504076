package driver

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Coordinates = pasangan lat/lng yang disimpan di kolom current_location.
// Selalu diparse sekali ke struct ini, tidak pernah dibaca sebagai blob mentah.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Model untuk tabel drivers
type Driver struct {
	ID              string `json:"id"              gorm:"column:id;primaryKey"`
	FullName        string `json:"fullName"        gorm:"column:full_name"`
	Email           string `json:"email"           gorm:"column:email"`
	PasswordHash    string `json:"-"               gorm:"column:password_hash"`
	ContactNumber   string `json:"contactNumber"   gorm:"column:contact_number"`
	VehicleNumber   string `json:"vehicleNumber"   gorm:"column:vehicle_number"`
	VehicleType     string `json:"vehicleType"     gorm:"column:vehicle_type"` // contoh: "CAR", "AUTO", "BIKE"
	IsEmailVerified bool   `json:"isEmailVerified" gorm:"column:is_email_verified"`
	IsAvailable     bool   `json:"isAvailable"     gorm:"column:is_available"`

	// Snapshot lokasi hasil throttled commit. Sumber "live" tetap di cache;
	// kolom ini fallback "last known" saat entry cache tidak ada.
	CurrentLocation    datatypes.JSONType[Coordinates] `json:"currentLocation"              gorm:"column:current_location"`
	LastLocationUpdate *time.Time                      `json:"lastLocationUpdate,omitempty" gorm:"column:last_location_update"`

	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"column:updated_at"`
}

func (Driver) TableName() string {
	return "drivers"
}

func (d *Driver) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
