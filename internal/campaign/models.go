package campaign

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ShubhamS40/DisplayOnWheels/internal/company"
	"github.com/ShubhamS40/DisplayOnWheels/internal/driver"
)

// Status assignment driver di sebuah campaign
const (
	AssignmentAssigned   = "ASSIGNED"
	AssignmentInProgress = "IN_PROGRESS"
	AssignmentCompleted  = "COMPLETED"
)

// Status approval campaign oleh admin
const (
	ApprovalPending  = "PENDING"
	ApprovalApproved = "APPROVED"
	ApprovalRejected = "REJECTED"
)

// Tabel recharge_plans (katalog paket iklan)
type RechargePlan struct {
	ID           string  `json:"id"           gorm:"column:id;primaryKey"`
	Title        string  `json:"title"        gorm:"column:title"`
	Subtitle     string  `json:"subtitle"     gorm:"column:subtitle"`
	Price        float64 `json:"price"        gorm:"column:price"`
	DurationDays int     `json:"durationDays" gorm:"column:duration_days"`
}

func (RechargePlan) TableName() string {
	return "recharge_plans"
}

// Tabel campaigns
type Campaign struct {
	ID             string     `json:"id"             gorm:"column:id;primaryKey"`
	CompanyID      string     `json:"companyId"      gorm:"column:company_id"`
	PlanID         *string    `json:"planId,omitempty" gorm:"column:plan_id"`
	Title          string     `json:"title"          gorm:"column:title"`
	Description    string     `json:"description"    gorm:"column:description"`
	ApprovalStatus string     `json:"approvalStatus" gorm:"column:approval_status"`
	PosterURL      *string    `json:"posterUrl,omitempty" gorm:"column:poster_url"`
	StartDate      time.Time  `json:"startDate"      gorm:"column:start_date"`
	EndDate        time.Time  `json:"endDate"        gorm:"column:end_date"`
	CreatedAt      time.Time  `json:"createdAt"      gorm:"column:created_at"`

	Company *company.Company `json:"company,omitempty" gorm:"foreignKey:CompanyID"`
	Plan    *RechargePlan    `json:"plan,omitempty"    gorm:"foreignKey:PlanID"`
}

func (Campaign) TableName() string {
	return "campaigns"
}

func (cp *Campaign) BeforeCreate(tx *gorm.DB) error {
	if cp.ID == "" {
		cp.ID = uuid.NewString()
	}
	return nil
}

// Tabel campaign_drivers: assignment driver <-> campaign
type CampaignDriver struct {
	ID         string     `json:"id"         gorm:"column:id;primaryKey"`
	CampaignID string     `json:"campaignId" gorm:"column:campaign_id"`
	DriverID   string     `json:"driverId"   gorm:"column:driver_id"`
	Status     string     `json:"status"     gorm:"column:status"` // ASSIGNED / IN_PROGRESS / COMPLETED
	AssignedAt time.Time  `json:"assignedAt" gorm:"column:assigned_at"`
	LastActive *time.Time `json:"lastActiveAt,omitempty" gorm:"column:last_active_at"`

	// Bukti pemasangan iklan yang diupload driver, diverifikasi admin.
	ProofPhotoURL        *string `json:"proofPhotoUrl,omitempty" gorm:"column:proof_photo_url"`
	IsProofPhotoVerified bool    `json:"isProofPhotoVerified"    gorm:"column:is_proof_photo_verified"`

	Campaign *Campaign      `json:"campaign,omitempty" gorm:"foreignKey:CampaignID"`
	Driver   *driver.Driver `json:"driver,omitempty"   gorm:"foreignKey:DriverID"`
}

func (CampaignDriver) TableName() string {
	return "campaign_drivers"
}

func (cd *CampaignDriver) BeforeCreate(tx *gorm.DB) error {
	if cd.ID == "" {
		cd.ID = uuid.NewString()
	}
	return nil
}

// ActiveAssignmentsByCompany mengembalikan assignment aktif (ASSIGNED / IN_PROGRESS)
// untuk seluruh campaign milik satu company. Dipakai company live-location view.
func ActiveAssignmentsByCompany(db *gorm.DB, companyID string) ([]CampaignDriver, error) {
	var assignments []CampaignDriver
	err := db.
		Joins("JOIN campaigns ON campaigns.id = campaign_drivers.campaign_id").
		Where("campaigns.company_id = ? AND campaign_drivers.status IN ?",
			companyID, []string{AssignmentAssigned, AssignmentInProgress}).
		Preload("Campaign").
		Find(&assignments).Error
	return assignments, err
}
