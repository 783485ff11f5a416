// AngelaMos | 2026
// repository.go

package listing

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/isowebtech/fundify-api/internal/core"
)

type Repository interface {
	Create(
		ctx context.Context,
		listing *Listing,
		members []TeamMemberInput,
	) error
	GetByID(ctx context.Context, id string) (*Listing, error)
	GetBySlug(ctx context.Context, slug string) (*Listing, error)
	ListActive(ctx context.Context, params BrowseParams) ([]Listing, int, error)
	Search(
		ctx context.Context,
		query string,
		params BrowseParams,
	) ([]Listing, int, error)
	TeamMembers(ctx context.Context, listingID string) ([]TeamMember, error)
	Files(ctx context.Context, listingID string) ([]UploadedFile, error)
	GetFile(ctx context.Context, fileID string) (*UploadedFile, error)
	TrackView(
		ctx context.Context,
		listingID, viewerUserID, ip, userAgent string,
	) error
	IncrementDownloadCount(ctx context.Context, fileID string) error
	ExistsActive(ctx context.Context, id string) (bool, error)
	Title(ctx context.Context, id string) (string, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Every read joins the company and founder so tier projection never needs a
// second round trip.
const listingColumns = `
	bl.id, bl.company_id, bl.user_id, bl.slug, bl.title, bl.short_pitch,
	bl.detailed_description, bl.industry, bl.business_stage,
	bl.funding_amount_needed, bl.current_monthly_revenue,
	bl.current_annual_revenue, bl.equity_offered_min, bl.equity_offered_max,
	bl.fund_usage_plan, bl.target_market, bl.revenue_model, bl.status,
	bl.is_featured, bl.view_count, bl.interest_count,
	bl.created_at, bl.updated_at,
	c.company_name, c.location_city, c.location_state,
	COALESCE(c.website_url, '') AS website_url,
	COALESCE(c.detailed_description, '') AS company_description,
	u.full_name AS founder_name,
	u.email AS founder_email,
	COALESCE(u.phone, '') AS founder_phone`

const listingFrom = `
	FROM business_listings bl
	JOIN companies c ON bl.company_id = c.id
	JOIN users u ON bl.user_id = u.id`

func (r *repository) Create(
	ctx context.Context,
	listing *Listing,
	members []TeamMemberInput,
) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		slug, err := uniqueSlug(ctx, tx, listing.Title)
		if err != nil {
			return err
		}
		listing.Slug = slug

		query := `
			INSERT INTO business_listings (
				id, company_id, user_id, slug, title, short_pitch,
				detailed_description, industry, business_stage,
				funding_amount_needed, current_monthly_revenue,
				current_annual_revenue, equity_offered_min, equity_offered_max,
				fund_usage_plan, target_market, revenue_model, status
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
				$11, $12, $13, $14, $15, $16, $17, $18
			)
			RETURNING created_at, updated_at`

		row := tx.QueryRowxContext(ctx, query,
			listing.ID,
			listing.CompanyID,
			listing.OwnerID,
			listing.Slug,
			listing.Title,
			listing.ShortPitch,
			listing.DetailedDescription,
			listing.Industry,
			listing.BusinessStage,
			listing.FundingAmountNeeded,
			listing.CurrentMonthlyRevenue,
			listing.CurrentAnnualRevenue,
			listing.EquityOfferedMin,
			listing.EquityOfferedMax,
			listing.FundUsagePlan,
			listing.TargetMarket,
			listing.RevenueModel,
			listing.Status,
		)
		if err := row.Scan(&listing.CreatedAt, &listing.UpdatedAt); err != nil {
			return fmt.Errorf("create listing: %w", err)
		}

		memberQuery := `
			INSERT INTO team_members (
				id, business_listing_id, name, role, experience,
				linkedin_url, is_founder, display_order
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

		for i, m := range members {
			_, err := tx.ExecContext(ctx, memberQuery,
				uuid.New().String(),
				listing.ID,
				m.Name,
				m.Role,
				m.Experience,
				m.LinkedinURL,
				m.IsFounder,
				i+1,
			)
			if err != nil {
				return fmt.Errorf("add team member: %w", err)
			}
		}

		return nil
	})
}

// uniqueSlug appends an incrementing suffix until the slug is free.
func uniqueSlug(ctx context.Context, tx *sqlx.Tx, title string) (string, error) {
	base := Slugify(title)
	if base == "" {
		base = "listing"
	}

	slug := base
	for counter := 1; ; counter++ {
		var exists bool
		err := tx.GetContext(ctx, &exists,
			`SELECT EXISTS(SELECT 1 FROM business_listings WHERE slug = $1)`,
			slug,
		)
		if err != nil {
			return "", fmt.Errorf("check slug: %w", err)
		}

		if !exists {
			return slug, nil
		}

		slug = fmt.Sprintf("%s-%d", base, counter)
	}
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*Listing, error) {
	query := fmt.Sprintf(
		`SELECT %s %s WHERE bl.id = $1`,
		listingColumns,
		listingFrom,
	)

	var listing Listing
	err := r.db.GetContext(ctx, &listing, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get listing: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get listing: %w", err)
	}

	return &listing, nil
}

func (r *repository) GetBySlug(
	ctx context.Context,
	slug string,
) (*Listing, error) {
	query := fmt.Sprintf(
		`SELECT %s %s WHERE bl.slug = $1`,
		listingColumns,
		listingFrom,
	)

	var listing Listing
	err := r.db.GetContext(ctx, &listing, query, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get listing by slug: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get listing by slug: %w", err)
	}

	return &listing, nil
}

func browseConditions(params BrowseParams) ([]string, []any) {
	conditions := []string{"bl.status = 'active'"}
	var args []any

	if params.Industry != "" {
		args = append(args, params.Industry)
		conditions = append(
			conditions,
			fmt.Sprintf("bl.industry = $%d", len(args)),
		)
	}

	if params.BusinessStage != "" {
		args = append(args, params.BusinessStage)
		conditions = append(
			conditions,
			fmt.Sprintf("bl.business_stage = $%d", len(args)),
		)
	}

	if params.MinFunding > 0 {
		args = append(args, params.MinFunding)
		conditions = append(
			conditions,
			fmt.Sprintf("bl.funding_amount_needed >= $%d", len(args)),
		)
	}

	if params.MaxFunding > 0 {
		args = append(args, params.MaxFunding)
		conditions = append(
			conditions,
			fmt.Sprintf("bl.funding_amount_needed <= $%d", len(args)),
		)
	}

	if params.Location != "" {
		args = append(args, params.Location)
		conditions = append(
			conditions,
			fmt.Sprintf("c.location_city = $%d", len(args)),
		)
	}

	return conditions, args
}

func (r *repository) ListActive(
	ctx context.Context,
	params BrowseParams,
) ([]Listing, int, error) {
	params.Normalize()

	conditions, args := browseConditions(params)
	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		`SELECT COUNT(*) %s WHERE %s`,
		listingFrom,
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count listings: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s %s
		WHERE %s
		ORDER BY bl.is_featured DESC, bl.created_at DESC
		LIMIT $%d OFFSET $%d`,
		listingColumns, listingFrom, whereClause, len(args)+1, len(args)+2)

	args = append(args, params.PageSize, params.Offset())

	var listings []Listing
	if err := r.db.SelectContext(ctx, &listings, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list listings: %w", err)
	}

	return listings, total, nil
}

func (r *repository) Search(
	ctx context.Context,
	searchQuery string,
	params BrowseParams,
) ([]Listing, int, error) {
	params.Normalize()

	conditions, args := browseConditions(params)

	args = append(args, searchQuery)
	tsQuery := fmt.Sprintf("plainto_tsquery('english', $%d)", len(args))
	tsVector := `to_tsvector('english',
		bl.title || ' ' || bl.short_pitch || ' ' || bl.detailed_description)`
	conditions = append(
		conditions,
		fmt.Sprintf("%s @@ %s", tsVector, tsQuery),
	)

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		`SELECT COUNT(*) %s WHERE %s`,
		listingFrom,
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count search results: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s %s
		WHERE %s
		ORDER BY ts_rank(%s, %s) DESC, bl.is_featured DESC
		LIMIT $%d OFFSET $%d`,
		listingColumns, listingFrom, whereClause,
		tsVector, tsQuery, len(args)+1, len(args)+2)

	args = append(args, params.PageSize, params.Offset())

	var listings []Listing
	if err := r.db.SelectContext(ctx, &listings, query, args...); err != nil {
		return nil, 0, fmt.Errorf("search listings: %w", err)
	}

	return listings, total, nil
}

func (r *repository) TeamMembers(
	ctx context.Context,
	listingID string,
) ([]TeamMember, error) {
	query := `
		SELECT id, business_listing_id, name, role, experience,
		       linkedin_url, is_founder, display_order, created_at
		FROM team_members
		WHERE business_listing_id = $1
		ORDER BY display_order`

	var members []TeamMember
	if err := r.db.SelectContext(ctx, &members, query, listingID); err != nil {
		return nil, fmt.Errorf("get team members: %w", err)
	}

	return members, nil
}

func (r *repository) Files(
	ctx context.Context,
	listingID string,
) ([]UploadedFile, error) {
	query := `
		SELECT id, business_listing_id, access_level, original_name,
		       storage_path, file_type, mime_type, file_size,
		       download_count, uploaded_at
		FROM uploaded_files
		WHERE business_listing_id = $1
		ORDER BY file_type, uploaded_at`

	var files []UploadedFile
	if err := r.db.SelectContext(ctx, &files, query, listingID); err != nil {
		return nil, fmt.Errorf("get listing files: %w", err)
	}

	return files, nil
}

func (r *repository) GetFile(
	ctx context.Context,
	fileID string,
) (*UploadedFile, error) {
	query := `
		SELECT id, business_listing_id, access_level, original_name,
		       storage_path, file_type, mime_type, file_size,
		       download_count, uploaded_at
		FROM uploaded_files
		WHERE id = $1`

	var file UploadedFile
	err := r.db.GetContext(ctx, &file, query, fileID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get file: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	return &file, nil
}

func (r *repository) TrackView(
	ctx context.Context,
	listingID, viewerUserID, ip, userAgent string,
) error {
	query := `
		INSERT INTO listing_views (
			id, business_listing_id, viewer_user_id, viewer_ip,
			viewer_user_agent, viewed_at
		) VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		uuid.New().String(),
		listingID,
		viewerUserID,
		ip,
		userAgent,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("track view: %w", err)
	}

	counterQuery := `
		UPDATE business_listings
		SET view_count = view_count + 1
		WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, counterQuery, listingID); err != nil {
		return fmt.Errorf("bump view count: %w", err)
	}

	return nil
}

func (r *repository) IncrementDownloadCount(
	ctx context.Context,
	fileID string,
) error {
	query := `
		UPDATE uploaded_files
		SET download_count = download_count + 1
		WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, fileID); err != nil {
		return fmt.Errorf("bump download count: %w", err)
	}

	return nil
}

func (r *repository) ExistsActive(
	ctx context.Context,
	id string,
) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM business_listings
			WHERE id = $1 AND status = 'active'
		)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, id); err != nil {
		return false, fmt.Errorf("check listing active: %w", err)
	}

	return exists, nil
}

func (r *repository) Title(ctx context.Context, id string) (string, error) {
	query := `SELECT title FROM business_listings WHERE id = $1`

	var title string
	err := r.db.GetContext(ctx, &title, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("listing title: %w", core.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("listing title: %w", err)
	}

	return title, nil
}
