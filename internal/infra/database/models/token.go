package models

import (
	"time"
)

type ResumptionToken struct {
	ID               string    `json:"id" gorm:"primaryKey;type:text"`
	Verb             string    `json:"verb" gorm:"type:text;not null"`
	MetadataPrefix   string    `json:"metadataPrefix" gorm:"type:text"`
	Set              string    `json:"set" gorm:"type:text"`
	From             string    `json:"from" gorm:"type:text"`
	Until            string    `json:"until" gorm:"type:text"`
	Cursor           int       `json:"cursor"`
	CompleteListSize int       `json:"completeListSize"`
	After            int64     `json:"after"`
	IssuedAt         time.Time `json:"issuedAt" gorm:"not null"`
	ExpiresAt        time.Time `json:"expiresAt" gorm:"not null;index"`
}
