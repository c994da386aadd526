package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin  Role = "Admin"
	RoleEditor Role = "Editor"
	RoleViewer Role = "Viewer"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleViewer:
		return true
	}
	return false
}

type User struct {
	UserID    string    `gorm:"primaryKey;size:36"             json:"user_id"`
	Email     string    `gorm:"uniqueIndex;not null"           json:"email"`
	Password  string    `gorm:"not null"                       json:"-"`
	Role      Role      `gorm:"index;not null;default:Viewer"  json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.UserID == "" {
		u.UserID = uuid.NewString()
	}
	return nil
}

type Artist struct {
	ArtistID  string    `gorm:"primaryKey;size:36"      json:"artist_id"`
	Name      string    `gorm:"not null"                json:"name"`
	NameKey   string    `gorm:"uniqueIndex;not null"    json:"-"`
	Grammy    int       `gorm:"not null;default:0"      json:"grammy"`
	Hidden    bool      `gorm:"index;not null;default:false" json:"hidden"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Artist) BeforeCreate(tx *gorm.DB) error {
	if a.ArtistID == "" {
		a.ArtistID = uuid.NewString()
	}
	return nil
}

type Album struct {
	AlbumID   string    `gorm:"primaryKey;size:36"      json:"album_id"`
	Name      string    `gorm:"uniqueIndex;not null"    json:"name"`
	Year      int       `gorm:"not null"                json:"year"`
	Hidden    bool      `gorm:"index;not null;default:false" json:"hidden"`
	ArtistID  string    `gorm:"index;size:36"           json:"artist_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Album) BeforeCreate(tx *gorm.DB) error {
	if a.AlbumID == "" {
		a.AlbumID = uuid.NewString()
	}
	return nil
}

type Track struct {
	TrackID   string    `gorm:"primaryKey;size:36"      json:"track_id"`
	Name      string    `gorm:"not null"                json:"name"`
	NameKey   string    `gorm:"uniqueIndex;not null"    json:"-"`
	Duration  int       `gorm:"not null"                json:"duration"`
	Hidden    bool      `gorm:"index;not null;default:false" json:"hidden"`
	ArtistID  string    `gorm:"index;size:36"           json:"artist_id"`
	AlbumID   string    `gorm:"index;size:36"           json:"album_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Track) BeforeCreate(tx *gorm.DB) error {
	if t.TrackID == "" {
		t.TrackID = uuid.NewString()
	}
	return nil
}

type Favourite struct {
	FavoriteID string    `gorm:"primaryKey;size:36"                                   json:"favorite_id"`
	UserID     string    `gorm:"uniqueIndex:idx_fav_user_item;size:36;not null"       json:"user_id"`
	Category   string    `gorm:"uniqueIndex:idx_fav_user_item;index;size:16;not null" json:"category"`
	ItemID     string    `gorm:"uniqueIndex:idx_fav_user_item;size:36;not null"       json:"item_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (f *Favourite) BeforeCreate(tx *gorm.DB) error {
	if f.FavoriteID == "" {
		f.FavoriteID = uuid.NewString()
	}
	return nil
}

func (Favourite) TableName() string {
	return "favourites"
}

// Token is a blacklisted access token. Rows are only ever inserted.
type Token struct {
	ID          uint      `gorm:"primaryKey"                json:"-"`
	TokenHash   string    `gorm:"uniqueIndex;size:64;not null" json:"-"`
	Invalidated bool      `gorm:"not null;default:true"     json:"invalidated"`
	ExpiresAt   time.Time `json:"expires_at"`
	CreatedAt   time.Time `json:"created_at"`
}

func All() []any {
	return []any{&User{}, &Artist{}, &Album{}, &Track{}, &Favourite{}, &Token{}}
}
