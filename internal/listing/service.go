// AngelaMos | 2026
// service.go

package listing

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/isowebtech/fundify-api/internal/core"
	"github.com/isowebtech/fundify-api/internal/privacy"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ViewContext carries the request metadata the view tracker records.
type ViewContext struct {
	IP        string
	UserAgent string
}

func (s *Service) Browse(
	ctx context.Context,
	viewer privacy.Viewer,
	params BrowseParams,
) ([]ListingView, int, error) {
	listings, total, err := s.repo.ListActive(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	return s.projectAll(listings, viewer), total, nil
}

// Search falls back to Browse when the query is empty.
func (s *Service) Search(
	ctx context.Context,
	viewer privacy.Viewer,
	query string,
	params BrowseParams,
) ([]ListingView, int, error) {
	if query == "" {
		return s.Browse(ctx, viewer, params)
	}

	listings, total, err := s.repo.Search(ctx, query, params)
	if err != nil {
		return nil, 0, err
	}

	return s.projectAll(listings, viewer), total, nil
}

// Get projects a single listing for the viewer, attaching team members and
// the files the viewer's tier may see, and records a view event. Listings
// that are not active exist only for their owner.
func (s *Service) Get(
	ctx context.Context,
	viewer privacy.Viewer,
	slug string,
	viewCtx ViewContext,
) (*ListingView, error) {
	listing, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	isOwner := listing.IsOwnedBy(viewer.UserID)

	if listing.Status != StatusActive && !isOwner {
		return nil, fmt.Errorf("get listing: %w", core.ErrNotFound)
	}

	view := project(listing, viewer)

	members, err := s.repo.TeamMembers(ctx, listing.ID)
	if err != nil {
		return nil, err
	}
	view.TeamMembers = toTeamMemberViews(members)

	files, err := s.repo.Files(ctx, listing.ID)
	if err != nil {
		return nil, err
	}
	view.Files = visibleFiles(files, viewer.Tier, isOwner)

	// View tracking must never fail the read.
	if err := s.repo.TrackView(
		ctx,
		listing.ID,
		viewer.UserID,
		viewCtx.IP,
		viewCtx.UserAgent,
	); err != nil {
		s.logger.Warn("view tracking failed",
			"listing_id", listing.ID,
			"error", err,
		)
	}

	return &view, nil
}

func (s *Service) Create(
	ctx context.Context,
	ownerID, ownerRole string,
	req CreateListingRequest,
) (*CreateListingResponse, error) {
	if ownerRole != "entrepreneur" {
		return nil, fmt.Errorf(
			"create listing: only entrepreneurs can list: %w",
			core.ErrForbidden,
		)
	}

	listing := &Listing{
		ID:                    uuid.New().String(),
		CompanyID:             req.CompanyID,
		OwnerID:               ownerID,
		Title:                 req.Title,
		ShortPitch:            req.ShortPitch,
		DetailedDescription:   req.DetailedDescription,
		Industry:              req.Industry,
		BusinessStage:         req.BusinessStage,
		FundingAmountNeeded:   req.FundingAmountNeeded,
		CurrentMonthlyRevenue: req.CurrentMonthlyRevenue,
		CurrentAnnualRevenue:  req.CurrentAnnualRevenue,
		EquityOfferedMin:      req.EquityOfferedMin,
		EquityOfferedMax:      req.EquityOfferedMax,
		FundUsagePlan:         req.FundUsagePlan,
		TargetMarket:          req.TargetMarket,
		RevenueModel:          req.RevenueModel,
		Status:                StatusActive,
	}

	if err := s.repo.Create(ctx, listing, req.TeamMembers); err != nil {
		return nil, err
	}

	return &CreateListingResponse{ID: listing.ID, Slug: listing.Slug}, nil
}

// GetFileDownload runs the access gate for one file and hands back the
// storage pointer. The download counter bump is best-effort.
func (s *Service) GetFileDownload(
	ctx context.Context,
	viewer privacy.Viewer,
	slug, fileID string,
) (*FileDownload, error) {
	listing, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	isOwner := listing.IsOwnedBy(viewer.UserID)

	if listing.Status != StatusActive && !isOwner {
		return nil, fmt.Errorf("download file: %w", core.ErrNotFound)
	}

	file, err := s.repo.GetFile(ctx, fileID)
	if err != nil {
		return nil, err
	}

	if file.ListingID != listing.ID {
		return nil, fmt.Errorf("download file: %w", core.ErrNotFound)
	}

	if !privacy.CanAccessFile(viewer.Tier, file.AccessLevel, isOwner) {
		return nil, fmt.Errorf(
			"download file: tier %s denied for %s: %w",
			viewer.Tier,
			file.AccessLevel,
			core.ErrForbidden,
		)
	}

	if err := s.repo.IncrementDownloadCount(ctx, file.ID); err != nil {
		s.logger.Warn("download counter bump failed",
			"file_id", file.ID,
			"error", err,
		)
	}

	return &FileDownload{
		ID:           file.ID,
		OriginalName: file.OriginalName,
		StoragePath:  file.StoragePath,
		MimeType:     file.MimeType,
		FileSize:     file.FileSize,
	}, nil
}

func (s *Service) projectAll(
	listings []Listing,
	viewer privacy.Viewer,
) []ListingView {
	views := make([]ListingView, 0, len(listings))
	for i := range listings {
		views = append(views, project(&listings[i], viewer))
	}
	return views
}

// project applies the disclosure table to one listing. The owner always gets
// the maximal set, unmasked, regardless of their own tier.
func project(l *Listing, viewer privacy.Viewer) ListingView {
	var fields privacy.FieldSet
	if l.IsOwnedBy(viewer.UserID) {
		fields = privacy.OwnerFields()
	} else {
		fields = privacy.FieldsFor(viewer.Tier)
	}

	view := ListingView{
		ID:                    l.ID,
		Slug:                  l.Slug,
		Title:                 l.Title,
		ShortPitch:            l.ShortPitch,
		DetailedDescription:   l.DetailedDescription,
		Industry:              l.Industry,
		BusinessStage:         l.BusinessStage,
		FundingAmountNeeded:   l.FundingAmountNeeded,
		CurrentMonthlyRevenue: l.CurrentMonthlyRevenue,
		CurrentAnnualRevenue:  l.CurrentAnnualRevenue,
		EquityOfferedMin:      l.EquityOfferedMin,
		EquityOfferedMax:      l.EquityOfferedMax,
		FundUsagePlan:         l.FundUsagePlan,
		TargetMarket:          l.TargetMarket,
		RevenueModel:          l.RevenueModel,
		Status:                l.Status,
		IsFeatured:            l.IsFeatured,
		ViewCount:             l.ViewCount,
		InterestCount:         l.InterestCount,
		CompanyName:           l.CompanyName,
		LocationCity:          l.LocationCity,
		LocationState:         l.LocationState,
		FounderName:           l.FounderName,
		CreatedAt:             l.CreatedAt,
	}

	if fields.MaskNames {
		view.CompanyName = privacy.MaskName(l.CompanyName)
		view.FounderName = privacy.MaskName(l.FounderName)
	}

	if fields.FounderContact {
		view.FounderEmail = &l.FounderEmail
		view.FounderPhone = &l.FounderPhone
	}

	if fields.CompanyWebsite {
		view.WebsiteURL = &l.WebsiteURL
	}

	if fields.CompanyDescription {
		view.CompanyDescription = &l.CompanyDescription
	}

	return view
}

func visibleFiles(
	files []UploadedFile,
	tier privacy.Tier,
	isOwner bool,
) []FileView {
	views := make([]FileView, 0, len(files))
	for _, f := range files {
		if !privacy.CanAccessFile(tier, f.AccessLevel, isOwner) {
			continue
		}
		views = append(views, FileView{
			ID:           f.ID,
			OriginalName: f.OriginalName,
			FileType:     f.FileType,
			MimeType:     f.MimeType,
			FileSize:     f.FileSize,
			AccessLevel:  f.AccessLevel,
			UploadedAt:   f.UploadedAt,
		})
	}
	return views
}

func toTeamMemberViews(members []TeamMember) []TeamMemberView {
	views := make([]TeamMemberView, 0, len(members))
	for _, m := range members {
		views = append(views, TeamMemberView{
			Name:         m.Name,
			Role:         m.Role,
			Experience:   m.Experience,
			LinkedinURL:  m.LinkedinURL,
			IsFounder:    m.IsFounder,
			DisplayOrder: m.DisplayOrder,
		})
	}
	return views
}
