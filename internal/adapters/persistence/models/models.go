package models

import (
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Credentials & Sessions
// ============================================================

// User represents users table (credential store)
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// Session represents sessions table
type Session struct {
	ID        string     `gorm:"primaryKey;size:36" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	ExpiresAt time.Time  `gorm:"index;not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Session) TableName() string {
	return "sessions"
}

func (s *Session) IsRevoked() bool {
	return s.RevokedAt != nil
}

// ============================================================
// Thesis catalog
// ============================================================

// Thesis represents theses table
type Thesis struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:500;not null" json:"title"`
	Authors     string    `gorm:"size:500;not null" json:"authors"`
	Year        int       `gorm:"not null;index" json:"year"`
	Adviser     string    `gorm:"size:255;not null" json:"adviser"`
	Abstract    string    `gorm:"type:text;not null" json:"abstract"`
	Keywords    string    `gorm:"type:text;not null" json:"keywords"`
	PDFFilename *string   `gorm:"column:pdf_filename;size:255" json:"-"`
	SearchText  string    `gorm:"type:text" json:"-"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Thesis) TableName() string {
	return "theses"
}

// FoldSearch is the case folding applied to both the stored search text and the query.
// Done in Go because SQLite LOWER() and LIKE only fold ASCII.
func FoldSearch(s string) string {
	return strings.ToLower(s)
}

// SearchKey is the folded text searched by the catalog, one field per line
func (t *Thesis) SearchKey() string {
	return FoldSearch(t.Title + "\n" + t.Authors + "\n" + t.Keywords)
}

// BeforeSave keeps search_text in step with the searchable fields
func (t *Thesis) BeforeSave(tx *gorm.DB) error {
	tx.Statement.SetColumn("SearchText", t.SearchKey())
	return nil
}

// HasAttachment reports whether the record references a stored PDF
func (t *Thesis) HasAttachment() bool {
	return t.PDFFilename != nil && *t.PDFFilename != ""
}

// AttachmentName returns the storage name or "" when absent
func (t *Thesis) AttachmentName() string {
	if !t.HasAttachment() {
		return ""
	}
	return *t.PDFFilename
}

// ThesisResponse DTO
type ThesisResponse struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Authors       string    `json:"authors"`
	Year          int       `json:"year"`
	Adviser       string    `json:"adviser"`
	Abstract      string    `json:"abstract"`
	Keywords      string    `json:"keywords"`
	HasAttachment bool      `json:"has_attachment"`
	DownloadURL   string    `json:"download_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (t *Thesis) ToResponse() *ThesisResponse {
	resp := &ThesisResponse{
		ID:            t.ID,
		Title:         t.Title,
		Authors:       t.Authors,
		Year:          t.Year,
		Adviser:       t.Adviser,
		Abstract:      t.Abstract,
		Keywords:      t.Keywords,
		HasAttachment: t.HasAttachment(),
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
	if resp.HasAttachment {
		resp.DownloadURL = "/download/" + strconv.FormatUint(uint64(t.ID), 10)
	}
	return resp
}

// ThesesToResponse converts a listing
func ThesesToResponse(theses []*Thesis) []*ThesisResponse {
	out := make([]*ThesisResponse, 0, len(theses))
	for _, t := range theses {
		out = append(out, t.ToResponse())
	}
	return out
}

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&User{},
		&Session{},
		&Thesis{},
	); err != nil {
		return err
	}
	return backfillSearchText(db)
}

// backfillSearchText fills search_text for rows written before the column existed
func backfillSearchText(db *gorm.DB) error {
	var stale []*Thesis
	if err := db.Where("search_text = '' OR search_text IS NULL").Find(&stale).Error; err != nil {
		return err
	}
	for _, t := range stale {
		if err := db.Model(t).UpdateColumn("search_text", t.SearchKey()).Error; err != nil {
			return err
		}
	}
	return nil
}
