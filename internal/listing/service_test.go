// AngelaMos | 2026
// service_test.go

package listing

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isowebtech/fundify-api/internal/core"
	"github.com/isowebtech/fundify-api/internal/privacy"
)

type fakeRepo struct {
	listing       *Listing
	members       []TeamMember
	files         []UploadedFile
	trackViewErr  error
	downloadErr   error
	trackedViews  int
	downloadBumps int
	created       *Listing
}

func (f *fakeRepo) Create(
	_ context.Context,
	l *Listing,
	_ []TeamMemberInput,
) error {
	l.Slug = Slugify(l.Title)
	f.created = l
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Listing, error) {
	if f.listing == nil || f.listing.ID != id {
		return nil, core.ErrNotFound
	}
	copied := *f.listing
	return &copied, nil
}

func (f *fakeRepo) GetBySlug(_ context.Context, slug string) (*Listing, error) {
	if f.listing == nil || f.listing.Slug != slug {
		return nil, core.ErrNotFound
	}
	copied := *f.listing
	return &copied, nil
}

func (f *fakeRepo) ListActive(
	_ context.Context,
	_ BrowseParams,
) ([]Listing, int, error) {
	if f.listing == nil {
		return nil, 0, nil
	}
	return []Listing{*f.listing}, 1, nil
}

func (f *fakeRepo) Search(
	_ context.Context,
	_ string,
	_ BrowseParams,
) ([]Listing, int, error) {
	return f.ListActive(context.Background(), BrowseParams{})
}

func (f *fakeRepo) TeamMembers(
	_ context.Context,
	_ string,
) ([]TeamMember, error) {
	return f.members, nil
}

func (f *fakeRepo) Files(_ context.Context, _ string) ([]UploadedFile, error) {
	return f.files, nil
}

func (f *fakeRepo) GetFile(
	_ context.Context,
	fileID string,
) (*UploadedFile, error) {
	for i := range f.files {
		if f.files[i].ID == fileID {
			return &f.files[i], nil
		}
	}
	return nil, core.ErrNotFound
}

func (f *fakeRepo) TrackView(
	_ context.Context,
	_, _, _, _ string,
) error {
	f.trackedViews++
	return f.trackViewErr
}

func (f *fakeRepo) IncrementDownloadCount(_ context.Context, _ string) error {
	f.downloadBumps++
	return f.downloadErr
}

func (f *fakeRepo) ExistsActive(_ context.Context, id string) (bool, error) {
	return f.listing != nil && f.listing.ID == id &&
		f.listing.Status == StatusActive, nil
}

func (f *fakeRepo) Title(_ context.Context, _ string) (string, error) {
	if f.listing == nil {
		return "", core.ErrNotFound
	}
	return f.listing.Title, nil
}

func testListing() *Listing {
	return &Listing{
		ID:           "lst-1",
		CompanyID:    "cmp-1",
		OwnerID:      "owner-1",
		Slug:         "technologic-solutions",
		Title:        "TechnoLogic Solutions",
		ShortPitch:   "Industrial automation for mid-size factories",
		Status:       StatusActive,
		CompanyName:  "TechnoLogic Solutions",
		FounderName:  "Rajesh Kumar",
		FounderEmail: "rajesh@technologic.example",
		FounderPhone: "+91 98765 43210",
		WebsiteURL:   "https://technologic.example",
		CompanyDescription: "Twenty engineers building PLC retrofits " +
			"for legacy production lines.",
	}
}

func newTestService(repo Repository) *Service {
	return NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestGetAnonymousMasksAndWithholds(t *testing.T) {
	repo := &fakeRepo{listing: testListing()}
	svc := newTestService(repo)

	viewer := privacy.Viewer{Tier: privacy.TierAnonymous}
	view, err := svc.Get(
		context.Background(),
		viewer,
		"technologic-solutions",
		ViewContext{},
	)
	require.NoError(t, err)

	assert.Equal(t, "Te*******ic So*****ns", view.CompanyName)
	assert.Equal(t, "Ra**sh Ku*ar", view.FounderName)
	assert.Nil(t, view.FounderEmail)
	assert.Nil(t, view.FounderPhone)
	assert.Nil(t, view.WebsiteURL)
	assert.Nil(t, view.CompanyDescription)
}

func TestGetRegisteredSeesContactNotDescription(t *testing.T) {
	repo := &fakeRepo{listing: testListing()}
	svc := newTestService(repo)

	viewer := privacy.Viewer{UserID: "viewer-1", Tier: privacy.TierRegistered}
	view, err := svc.Get(
		context.Background(),
		viewer,
		"technologic-solutions",
		ViewContext{},
	)
	require.NoError(t, err)

	assert.Equal(t, "TechnoLogic Solutions", view.CompanyName)
	assert.Equal(t, "Rajesh Kumar", view.FounderName)
	require.NotNil(t, view.FounderEmail)
	assert.Equal(t, "rajesh@technologic.example", *view.FounderEmail)
	require.NotNil(t, view.WebsiteURL)
	assert.Nil(t, view.CompanyDescription)
}

func TestGetOwnerMatchesPaidProjectionUnmasked(t *testing.T) {
	repo := &fakeRepo{listing: testListing()}
	svc := newTestService(repo)

	// Owner is only registered tier, but sees everything.
	owner := privacy.Viewer{UserID: "owner-1", Tier: privacy.TierRegistered}
	ownerView, err := svc.Get(
		context.Background(),
		owner,
		"technologic-solutions",
		ViewContext{},
	)
	require.NoError(t, err)

	paid := privacy.Viewer{UserID: "someone-else", Tier: privacy.TierPaid}
	paidView, err := svc.Get(
		context.Background(),
		paid,
		"technologic-solutions",
		ViewContext{},
	)
	require.NoError(t, err)

	assert.Equal(t, "Rajesh Kumar", ownerView.FounderName)
	require.NotNil(t, ownerView.CompanyDescription)
	require.NotNil(t, paidView.CompanyDescription)
	assert.Equal(t, *paidView.CompanyDescription, *ownerView.CompanyDescription)
	assert.Equal(t, *paidView.FounderEmail, *ownerView.FounderEmail)
}

func TestGetDraftHiddenFromNonOwners(t *testing.T) {
	l := testListing()
	l.Status = StatusDraft
	repo := &fakeRepo{listing: l}
	svc := newTestService(repo)

	viewer := privacy.Viewer{UserID: "viewer-1", Tier: privacy.TierPaid}
	_, err := svc.Get(
		context.Background(),
		viewer,
		"technologic-solutions",
		ViewContext{},
	)
	assert.ErrorIs(t, err, core.ErrNotFound)

	owner := privacy.Viewer{UserID: "owner-1", Tier: privacy.TierRegistered}
	view, err := svc.Get(
		context.Background(),
		owner,
		"technologic-solutions",
		ViewContext{},
	)
	require.NoError(t, err)
	assert.Equal(t, StatusDraft, view.Status)
}

func TestGetViewTrackingFailureIsSwallowed(t *testing.T) {
	repo := &fakeRepo{
		listing:      testListing(),
		trackViewErr: errors.New("insert failed"),
	}
	svc := newTestService(repo)

	viewer := privacy.Viewer{Tier: privacy.TierAnonymous}
	_, err := svc.Get(
		context.Background(),
		viewer,
		"technologic-solutions",
		ViewContext{},
	)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.trackedViews)
}

func TestGetFiltersFilesByTier(t *testing.T) {
	repo := &fakeRepo{
		listing: testListing(),
		files: []UploadedFile{
			{ID: "f-pub", ListingID: "lst-1", AccessLevel: privacy.AccessPublic},
			{ID: "f-reg", ListingID: "lst-1", AccessLevel: privacy.AccessRegistered},
			{ID: "f-paid", ListingID: "lst-1", AccessLevel: privacy.AccessPaidOnly},
		},
	}
	svc := newTestService(repo)

	cases := []struct {
		name   string
		viewer privacy.Viewer
		want   []string
	}{
		{
			"anonymous sees public only",
			privacy.Viewer{Tier: privacy.TierAnonymous},
			[]string{"f-pub"},
		},
		{
			"registered still public only",
			privacy.Viewer{UserID: "v", Tier: privacy.TierRegistered},
			[]string{"f-pub"},
		},
		{
			"verified adds registered files",
			privacy.Viewer{UserID: "v", Tier: privacy.TierVerified},
			[]string{"f-pub", "f-reg"},
		},
		{
			"paid sees everything",
			privacy.Viewer{UserID: "v", Tier: privacy.TierPaid},
			[]string{"f-pub", "f-reg", "f-paid"},
		},
		{
			"owner override beats tier",
			privacy.Viewer{UserID: "owner-1", Tier: privacy.TierRegistered},
			[]string{"f-pub", "f-reg", "f-paid"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			view, err := svc.Get(
				context.Background(),
				tc.viewer,
				"technologic-solutions",
				ViewContext{},
			)
			require.NoError(t, err)

			got := make([]string, 0, len(view.Files))
			for _, f := range view.Files {
				got = append(got, f.ID)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestGetFileDownloadGate(t *testing.T) {
	repo := &fakeRepo{
		listing: testListing(),
		files: []UploadedFile{
			{
				ID:          "f-paid",
				ListingID:   "lst-1",
				AccessLevel: privacy.AccessPaidOnly,
				StoragePath: "/files/deck.pdf",
			},
		},
	}
	svc := newTestService(repo)

	viewer := privacy.Viewer{UserID: "v", Tier: privacy.TierVerified}
	_, err := svc.GetFileDownload(
		context.Background(),
		viewer,
		"technologic-solutions",
		"f-paid",
	)
	assert.ErrorIs(t, err, core.ErrForbidden)
	assert.Zero(t, repo.downloadBumps)

	paid := privacy.Viewer{UserID: "v", Tier: privacy.TierPaid}
	download, err := svc.GetFileDownload(
		context.Background(),
		paid,
		"technologic-solutions",
		"f-paid",
	)
	require.NoError(t, err)
	assert.Equal(t, "/files/deck.pdf", download.StoragePath)
	assert.Equal(t, 1, repo.downloadBumps)
}

func TestGetFileDownloadCounterFailureIsSwallowed(t *testing.T) {
	repo := &fakeRepo{
		listing: testListing(),
		files: []UploadedFile{
			{ID: "f-pub", ListingID: "lst-1", AccessLevel: privacy.AccessPublic},
		},
		downloadErr: errors.New("update failed"),
	}
	svc := newTestService(repo)

	viewer := privacy.Viewer{Tier: privacy.TierAnonymous}
	_, err := svc.GetFileDownload(
		context.Background(),
		viewer,
		"technologic-solutions",
		"f-pub",
	)
	require.NoError(t, err)
}

func TestCreateRequiresEntrepreneurRole(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	req := CreateListingRequest{CompanyID: "cmp-1", Title: "New Venture"}

	_, err := svc.Create(context.Background(), "u-1", "investor", req)
	assert.ErrorIs(t, err, core.ErrForbidden)
	assert.Nil(t, repo.created)

	resp, err := svc.Create(context.Background(), "u-1", "entrepreneur", req)
	require.NoError(t, err)
	assert.Equal(t, "new-venture", resp.Slug)
	assert.Equal(t, StatusActive, repo.created.Status)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "technologic-solutions", Slugify("TechnoLogic Solutions"))
	assert.Equal(t, "a-b-c", Slugify("  A--B__C!  "))
	assert.Equal(t, "", Slugify("***"))
}
