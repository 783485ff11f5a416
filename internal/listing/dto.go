// AngelaMos | 2026
// dto.go

package listing

import (
	"time"

	"github.com/isowebtech/fundify-api/internal/privacy"
)

// ListingView is the tier-projected shape of a listing. Gated fields are
// pointers so a withheld field is absent from the JSON entirely rather than
// present-but-null.
type ListingView struct {
	ID                    string  `json:"id"`
	Slug                  string  `json:"slug"`
	Title                 string  `json:"title"`
	ShortPitch            string  `json:"short_pitch"`
	DetailedDescription   string  `json:"detailed_description"`
	Industry              string  `json:"industry"`
	BusinessStage         string  `json:"business_stage"`
	FundingAmountNeeded   int64   `json:"funding_amount_needed"`
	CurrentMonthlyRevenue int64   `json:"current_monthly_revenue"`
	CurrentAnnualRevenue  int64   `json:"current_annual_revenue"`
	EquityOfferedMin      float64 `json:"equity_offered_min"`
	EquityOfferedMax      float64 `json:"equity_offered_max"`
	FundUsagePlan         string  `json:"fund_usage_plan"`
	TargetMarket          string  `json:"target_market"`
	RevenueModel          string  `json:"revenue_model"`
	Status                string  `json:"status"`
	IsFeatured            bool    `json:"is_featured"`
	ViewCount             int     `json:"view_count"`
	InterestCount         int     `json:"interest_count"`

	CompanyName   string `json:"company_name"`
	LocationCity  string `json:"location_city"`
	LocationState string `json:"location_state"`
	FounderName   string `json:"founder_name"`

	WebsiteURL         *string `json:"website_url,omitempty"`
	FounderEmail       *string `json:"founder_email,omitempty"`
	FounderPhone       *string `json:"founder_phone,omitempty"`
	CompanyDescription *string `json:"company_description,omitempty"`

	CreatedAt time.Time `json:"created_at"`

	TeamMembers []TeamMemberView `json:"team_members,omitempty"`
	Files       []FileView       `json:"files,omitempty"`
}

type TeamMemberView struct {
	Name         string `json:"name"`
	Role         string `json:"role"`
	Experience   string `json:"experience,omitempty"`
	LinkedinURL  string `json:"linkedin_url,omitempty"`
	IsFounder    bool   `json:"is_founder"`
	DisplayOrder int    `json:"display_order"`
}

type FileView struct {
	ID           string              `json:"id"`
	OriginalName string              `json:"original_name"`
	FileType     string              `json:"file_type"`
	MimeType     string              `json:"mime_type"`
	FileSize     int64               `json:"file_size"`
	AccessLevel  privacy.AccessLevel `json:"access_level"`
	UploadedAt   time.Time           `json:"uploaded_at"`
}

// FileDownload is what the gate hands back once access is granted; the
// caller streams bytes from StoragePath itself.
type FileDownload struct {
	ID           string `json:"id"`
	OriginalName string `json:"original_name"`
	StoragePath  string `json:"storage_path"`
	MimeType     string `json:"mime_type"`
	FileSize     int64  `json:"file_size"`
}

type BrowseParams struct {
	Industry      string
	BusinessStage string
	MinFunding    int64
	MaxFunding    int64
	Location      string
	Page          int
	PageSize      int
}

func (p *BrowseParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 || p.PageSize > 100 {
		p.PageSize = 20
	}
}

func (p *BrowseParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

type TeamMemberInput struct {
	Name        string `json:"name"         validate:"required,min=1,max=100"`
	Role        string `json:"role"         validate:"required,min=1,max=100"`
	Experience  string `json:"experience"   validate:"max=1000"`
	LinkedinURL string `json:"linkedin_url" validate:"omitempty,url,max=255"`
	IsFounder   bool   `json:"is_founder"`
}

type CreateListingRequest struct {
	CompanyID             string            `json:"company_id"              validate:"required,uuid4"`
	Title                 string            `json:"title"                   validate:"required,min=3,max=200"`
	ShortPitch            string            `json:"short_pitch"             validate:"required,min=10,max=500"`
	DetailedDescription   string            `json:"detailed_description"    validate:"required,min=10"`
	Industry              string            `json:"industry"                validate:"required,max=100"`
	BusinessStage         string            `json:"business_stage"          validate:"required,max=50"`
	FundingAmountNeeded   int64             `json:"funding_amount_needed"   validate:"required,gt=0"`
	CurrentMonthlyRevenue int64             `json:"current_monthly_revenue" validate:"gte=0"`
	CurrentAnnualRevenue  int64             `json:"current_annual_revenue"  validate:"gte=0"`
	EquityOfferedMin      float64           `json:"equity_offered_min"      validate:"gte=0,lte=100"`
	EquityOfferedMax      float64           `json:"equity_offered_max"      validate:"gte=0,lte=100,gtefield=EquityOfferedMin"`
	FundUsagePlan         string            `json:"fund_usage_plan"         validate:"required"`
	TargetMarket          string            `json:"target_market"           validate:"required,max=500"`
	RevenueModel          string            `json:"revenue_model"           validate:"required,max=500"`
	TeamMembers           []TeamMemberInput `json:"team_members"            validate:"dive"`
}

type CreateListingResponse struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
}
