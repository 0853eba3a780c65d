package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// User is the shared account identity behind consumer and contributor profiles.
type User struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	Name          string       `gorm:"type:text" json:"name"`
	FirstName     string       `gorm:"type:text" json:"first_name"`
	LastName      string       `gorm:"type:text" json:"last_name"`
	Email         string       `gorm:"uniqueIndex;not null" json:"email"`
	Picture       string       `gorm:"type:text" json:"picture,omitempty"`
	AboutMe       string       `gorm:"type:text" json:"about_me,omitempty"`
	TermsAccepted bool         `gorm:"not null;default:false" json:"terms_accepted"`

	AppliedContributor  bool `gorm:"not null;default:false" json:"applied_contributor"`
	ApprovedContributor bool `gorm:"not null;default:false" json:"approved_contributor"`
	Admin               bool `gorm:"not null;default:false" json:"-"`
	Active              bool `gorm:"not null;default:true" json:"active"`

	// Push delivery target, empty until the device registers.
	RegistrationID string `gorm:"type:text" json:"-"`

	MasterNotification bool `gorm:"not null;default:true" json:"master_notification"`
	InAppNotification  bool `gorm:"not null;default:true" json:"in_app_notification"`
	PushNotification   bool `gorm:"not null;default:true" json:"push_notification"`
	EmailNotification  bool `gorm:"not null;default:true" json:"email_notification"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string { return "users" }
