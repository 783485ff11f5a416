// AngelaMos | 2026
// entity.go

package listing

import (
	"time"

	"github.com/isowebtech/fundify-api/internal/privacy"
)

const (
	StatusActive = "active"
	StatusDraft  = "draft"
	StatusPaused = "paused"
	StatusClosed = "closed"
)

// Listing carries the business_listings row plus the company and founder
// columns joined in by every read query. The joined fields feed the tier
// projection and are never written through this struct.
type Listing struct {
	ID                    string    `db:"id"`
	CompanyID             string    `db:"company_id"`
	OwnerID               string    `db:"user_id"`
	Slug                  string    `db:"slug"`
	Title                 string    `db:"title"`
	ShortPitch            string    `db:"short_pitch"`
	DetailedDescription   string    `db:"detailed_description"`
	Industry              string    `db:"industry"`
	BusinessStage         string    `db:"business_stage"`
	FundingAmountNeeded   int64     `db:"funding_amount_needed"`
	CurrentMonthlyRevenue int64     `db:"current_monthly_revenue"`
	CurrentAnnualRevenue  int64     `db:"current_annual_revenue"`
	EquityOfferedMin      float64   `db:"equity_offered_min"`
	EquityOfferedMax      float64   `db:"equity_offered_max"`
	FundUsagePlan         string    `db:"fund_usage_plan"`
	TargetMarket          string    `db:"target_market"`
	RevenueModel          string    `db:"revenue_model"`
	Status                string    `db:"status"`
	IsFeatured            bool      `db:"is_featured"`
	ViewCount             int       `db:"view_count"`
	InterestCount         int       `db:"interest_count"`
	CreatedAt             time.Time `db:"created_at"`
	UpdatedAt             time.Time `db:"updated_at"`

	CompanyName        string `db:"company_name"`
	LocationCity       string `db:"location_city"`
	LocationState      string `db:"location_state"`
	WebsiteURL         string `db:"website_url"`
	CompanyDescription string `db:"company_description"`
	FounderName        string `db:"founder_name"`
	FounderEmail       string `db:"founder_email"`
	FounderPhone       string `db:"founder_phone"`
}

func (l *Listing) IsOwnedBy(userID string) bool {
	return userID != "" && l.OwnerID == userID
}

type TeamMember struct {
	ID           string    `db:"id"`
	ListingID    string    `db:"business_listing_id"`
	Name         string    `db:"name"`
	Role         string    `db:"role"`
	Experience   string    `db:"experience"`
	LinkedinURL  string    `db:"linkedin_url"`
	IsFounder    bool      `db:"is_founder"`
	DisplayOrder int       `db:"display_order"`
	CreatedAt    time.Time `db:"created_at"`
}

// UploadedFile is a storage pointer record; byte streaming happens outside
// this service.
type UploadedFile struct {
	ID            string              `db:"id"`
	ListingID     string              `db:"business_listing_id"`
	AccessLevel   privacy.AccessLevel `db:"access_level"`
	OriginalName  string              `db:"original_name"`
	StoragePath   string              `db:"storage_path"`
	FileType      string              `db:"file_type"`
	MimeType      string              `db:"mime_type"`
	FileSize      int64               `db:"file_size"`
	DownloadCount int                 `db:"download_count"`
	UploadedAt    time.Time           `db:"uploaded_at"`
}
