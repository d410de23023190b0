package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/spaarbot/backend/internal/domain/entity"
)

// SubscriptionModel represents the subscriptions table in the database.
type SubscriptionModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name          string          `gorm:"type:varchar(100);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	BillingPeriod string          `gorm:"type:varchar(10);not null"`
	NextRenewal   time.Time       `gorm:"type:date;not null;index"`
	CategoryID    *uuid.UUID      `gorm:"type:uuid;index"`
	IsActive      bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
	DeletedAt     gorm.DeletedAt  `gorm:"index"` // Soft-delete support

	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
	User     *UserModel     `gorm:"foreignKey:UserID;references:ID"`
}

// TableName returns the table name for the SubscriptionModel.
func (SubscriptionModel) TableName() string {
	return "subscriptions"
}

// ToEntity converts a SubscriptionModel to a domain Subscription entity.
func (m *SubscriptionModel) ToEntity() *entity.Subscription {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Subscription{
		ID:            m.ID,
		UserID:        m.UserID,
		Name:          m.Name,
		Amount:        m.Amount,
		BillingPeriod: entity.BillingPeriod(m.BillingPeriod),
		NextRenewal:   m.NextRenewal,
		CategoryID:    m.CategoryID,
		IsActive:      m.IsActive,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		DeletedAt:     deletedAt,
	}
}

// SubscriptionFromEntity creates a SubscriptionModel from a domain Subscription entity.
func SubscriptionFromEntity(subscription *entity.Subscription) *SubscriptionModel {
	var deletedAt gorm.DeletedAt
	if subscription.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *subscription.DeletedAt, Valid: true}
	}

	return &SubscriptionModel{
		ID:            subscription.ID,
		UserID:        subscription.UserID,
		Name:          subscription.Name,
		Amount:        subscription.Amount,
		BillingPeriod: string(subscription.BillingPeriod),
		NextRenewal:   subscription.NextRenewal,
		CategoryID:    subscription.CategoryID,
		IsActive:      subscription.IsActive,
		CreatedAt:     subscription.CreatedAt,
		UpdatedAt:     subscription.UpdatedAt,
		DeletedAt:     deletedAt,
	}
}
