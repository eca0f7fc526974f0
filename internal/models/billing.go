package models

import "time"

type BillingType string

const (
	BillingMonthly   BillingType = "monthly"
	BillingHourly    BillingType = "hourly"
	BillingOneTime   BillingType = "one-time"
	BillingMilestone BillingType = "milestone"
)

type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionPaused    SubscriptionStatus = "paused"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

type MilestoneStatus string

const (
	MilestonePaid     MilestoneStatus = "paid"
	MilestonePending  MilestoneStatus = "pending"
	MilestoneUpcoming MilestoneStatus = "upcoming"
)

// Milestone is one installment of a milestone-billed subscription.
type Milestone struct {
	Label      string          `json:"label" yaml:"label"`
	Percentage float64         `json:"percentage" yaml:"percentage"`
	Amount     float64         `json:"amount" yaml:"amount"`
	Status     MilestoneStatus `json:"status" yaml:"status"`
}

type Subscription struct {
	ID          string             `gorm:"primaryKey;type:varchar(64)" json:"id"`
	ClientID    string             `gorm:"type:varchar(64);not null;index" json:"client_id"`
	ProjectID   string             `gorm:"type:varchar(64)" json:"project_id,omitempty"`
	Name        string             `gorm:"type:varchar(255);not null" json:"name"`
	BillingType BillingType        `gorm:"type:varchar(20);not null" json:"billing_type"`
	Status      SubscriptionStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	TotalValue  float64            `json:"total_value"`
	AmountPaid  float64            `json:"amount_paid"`
	Notes       string             `gorm:"type:text" json:"notes,omitempty"`
	Milestones  []Milestone        `gorm:"serializer:json;type:text" json:"milestones,omitempty"`
	UpdatedAt   time.Time          `json:"-"`
}

// Outstanding is the unpaid part of the subscription value.
func (s Subscription) Outstanding() float64 {
	return s.TotalValue - s.AmountPaid
}

// EODReport is an employee's end-of-day note for one project.
type EODReport struct {
	ID         string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	EmployeeID string    `gorm:"type:varchar(64);not null;index" json:"employee_id"`
	ProjectID  string    `gorm:"type:varchar(64);not null;index" json:"project_id"`
	Date       string    `gorm:"type:varchar(10);not null" json:"date"`
	Content    string    `gorm:"type:text" json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}
