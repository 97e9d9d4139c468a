package models

import (
	"time"
)

type Asset struct {
	ID       int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	AssetURL string `json:"assetURL" gorm:"type:text"`
}

type ItemSet struct {
	ID          int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string `json:"title" gorm:"type:text"`
	Description string `json:"description" gorm:"type:text"`
	IsPublic    bool   `json:"isPublic" gorm:"not null;index"`
}

type Item struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	IsPublic    bool      `json:"isPublic" gorm:"not null;index"`
	Modified    time.Time `json:"modified" gorm:"not null;index"`
	ThumbnailID *int64    `json:"thumbnailID"`
	Thumbnail   *Asset    `json:"thumbnail" gorm:"foreignKey:ThumbnailID;references:ID;constraint:OnDelete:SET NULL;"`
	ItemSets    []ItemSet `json:"itemSets" gorm:"many2many:item_item_sets;constraint:OnDelete:CASCADE;"`
	Values      []Value   `json:"values" gorm:"constraint:OnDelete:CASCADE;"`
	Media       []Media   `json:"media" gorm:"constraint:OnDelete:CASCADE;"`
}

// Value is one property value of an item. Position orders values of the same term.
type Value struct {
	ID            int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	ItemID        int64  `json:"itemID" gorm:"index;not null"`
	Term          string `json:"term" gorm:"type:text;not null"`
	Position      int    `json:"position" gorm:"not null;default:0"`
	Type          string `json:"type" gorm:"type:text;not null;default:'literal'"`
	Text          string `json:"text" gorm:"type:text"`
	URI           string `json:"uri" gorm:"type:text"`
	Lang          string `json:"lang" gorm:"type:text"`
	ResourceTitle string `json:"resourceTitle" gorm:"type:text"`
	Annotation    string `json:"annotation" gorm:"type:text"` // json: term -> values
}

type Media struct {
	ID            int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	ItemID        int64  `json:"itemID" gorm:"index;not null"`
	Position      int    `json:"position" gorm:"not null;default:0"`
	IsPublic      bool   `json:"isPublic" gorm:"not null"`
	Ingester      string `json:"ingester" gorm:"type:text"`
	OriginalURL   string `json:"originalURL" gorm:"type:text"`
	MediaType     string `json:"mediaType" gorm:"type:text"`
	ThumbnailURLs string `json:"thumbnailURLs" gorm:"type:text"` // json: size -> url
	Data          string `json:"data" gorm:"type:text"`          // json
}
