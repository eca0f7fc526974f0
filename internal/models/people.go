package models

import "time"

type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "active"
	ClientStatusInactive ClientStatus = "inactive"
)

type Client struct {
	ID        string       `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name      string       `gorm:"type:varchar(255);not null" json:"name"`
	Company   string       `gorm:"type:varchar(255)" json:"company"`
	Email     string       `gorm:"type:varchar(255);index" json:"email"`
	Phone     string       `gorm:"type:varchar(50)" json:"phone"`
	Status    ClientStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	Industry  string       `gorm:"type:varchar(255)" json:"industry"`
	Address   string       `gorm:"type:varchar(255)" json:"address"`
	CreatedOn string       `gorm:"type:varchar(10)" json:"created_at"`
	UpdatedAt time.Time    `json:"-"`
}

type EmployeeStatus string

const (
	EmployeeStatusAvailable EmployeeStatus = "available"
	EmployeeStatusBusy      EmployeeStatus = "busy"
	EmployeeStatusAway      EmployeeStatus = "away"
	EmployeeStatusOffline   EmployeeStatus = "offline"
)

type Employee struct {
	ID         string         `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name       string         `gorm:"type:varchar(255);not null" json:"name"`
	Email      string         `gorm:"type:varchar(255);index" json:"email"`
	Role       string         `gorm:"type:varchar(255)" json:"role"`
	Department string         `gorm:"type:varchar(255);index" json:"department"`
	Status     EmployeeStatus `gorm:"type:varchar(20);not null;default:'available'" json:"status"`
	UpdatedAt  time.Time      `json:"-"`
}
