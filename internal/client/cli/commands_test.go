package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/trackit/internal/client/api"
	"github.com/dmitrijs2005/trackit/internal/client/config"
	"github.com/dmitrijs2005/trackit/internal/client/jobs"
	"github.com/dmitrijs2005/trackit/internal/client/models"
	"github.com/dmitrijs2005/trackit/internal/client/session"
	"github.com/dmitrijs2005/trackit/internal/common"
)

type fakeAPI struct {
	jobs      []models.Job
	loginResp *api.TokenResponse
	guestResp *api.TokenResponse
	err       error

	listCalls   int
	uploadCalls int
	deleteCalls int
}

func (f *fakeAPI) Signup(ctx context.Context, email, username, password string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.User{Email: email, Username: username}, nil
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (*api.TokenResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.loginResp, nil
}

func (f *fakeAPI) GuestLogin(ctx context.Context) (*api.TokenResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.guestResp, nil
}

func (f *fakeAPI) ListJobs(ctx context.Context) ([]models.Job, error) {
	f.listCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.jobs, nil
}

func (f *fakeAPI) CreateJob(ctx context.Context, draft api.JobDraft, resume *api.ResumeFile) (*models.Job, error) {
	if f.err != nil {
		return nil, f.err
	}
	job := models.Job{
		ID:       int64(len(f.jobs) + 1),
		Company:  draft.Company,
		Position: draft.Position,
		Status:   draft.Status,
		Notes:    draft.Notes,
		Resumes:  []models.ResumeVersion{},
	}
	if job.Status == "" {
		job.Status = models.StatusPending
	}
	f.jobs = append(f.jobs, job)
	return &job, nil
}

func (f *fakeAPI) GetJob(ctx context.Context, id int64) (*models.Job, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.jobs {
		if f.jobs[i].ID == id {
			return &f.jobs[i], nil
		}
	}
	return nil, &api.Error{Kind: api.KindNotFound, Status: 404}
}

func (f *fakeAPI) UpdateJob(ctx context.Context, id int64, patch api.JobPatch) (*models.Job, error) {
	job, err := f.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Company != nil {
		job.Company = *patch.Company
	}
	if patch.Status != nil {
		job.Status = *patch.Status
	}
	return job, nil
}

func (f *fakeAPI) DeleteJob(ctx context.Context, id int64) error {
	f.deleteCalls++
	return f.err
}

func (f *fakeAPI) UploadResume(ctx context.Context, jobID int64, file api.ResumeFile) (*models.Job, error) {
	f.uploadCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.GetJob(ctx, jobID)
}

func (f *fakeAPI) DownloadResume(ctx context.Context, jobID, versionID int64) ([]byte, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	return []byte("resume bytes"), "resume.pdf", nil
}

func (f *fakeAPI) DeleteResume(ctx context.Context, jobID, versionID int64) error {
	f.deleteCalls++
	return f.err
}

func newTestApp(t *testing.T, fake *fakeAPI, input string) (*App, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	sess := session.NewStore(
		session.NewFileScope(filepath.Join(dir, "guest.json")),
		session.NewFileScope(filepath.Join(dir, "registered.json")),
	)
	sess.Init()

	out := &bytes.Buffer{}
	return &App{
		config:   &config.Config{BaseURL: "http://localhost:8000", DebounceDelay: 5 * time.Millisecond},
		api:      fake,
		session:  sess,
		store:    jobs.NewStore(fake),
		debounce: jobs.NewDebouncer(5 * time.Millisecond),
		reader:   bufio.NewReader(strings.NewReader(input)),
		out:      out,
	}, out
}

func stubPassword(t *testing.T, password string) {
	t.Helper()
	orig := getPassword
	getPassword = func(_ io.Writer) ([]byte, error) {
		return []byte(password), nil
	}
	t.Cleanup(func() { getPassword = orig })
}

func asGuest(t *testing.T, a *App) {
	t.Helper()
	require.NoError(t, a.session.Login("guest-token", models.User{ID: 99, Username: "guest", IsGuest: true}))
	require.NoError(t, a.store.Load(context.Background(), a.session))
}

func asRegistered(t *testing.T, a *App) {
	t.Helper()
	require.NoError(t, a.session.Login("token", models.User{ID: 1, Email: "u@example.com"}))
	require.NoError(t, a.store.Load(context.Background(), a.session))
}

func TestGuestLoginLoadsSamplesWithoutFetching(t *testing.T) {
	fake := &fakeAPI{
		guestResp: &api.TokenResponse{
			AccessToken: "guest-token",
			User:        models.User{ID: 99, Username: "guest", IsGuest: true},
		},
	}
	a, out := newTestApp(t, fake, "")

	require.NoError(t, a.GuestLogin(context.Background()))

	assert.True(t, a.session.IsGuest())
	assert.Len(t, a.store.Jobs(), 4)
	assert.Zero(t, fake.listCalls)
	assert.Contains(t, out.String(), "demo")
}

func TestLoginFetchesJobs(t *testing.T) {
	fake := &fakeAPI{
		loginResp: &api.TokenResponse{
			AccessToken: "token",
			User:        models.User{ID: 1, Email: "u@example.com"},
		},
		jobs: []models.Job{
			{ID: 10, Company: "Stripe", Position: "Go Engineer", Status: models.StatusApplied},
		},
	}
	a, out := newTestApp(t, fake, "u@example.com\n")
	stubPassword(t, "secret")

	require.NoError(t, a.Login(context.Background()))

	assert.Equal(t, session.StateRegistered, a.session.State())
	assert.Equal(t, 1, fake.listCalls)
	assert.Len(t, a.store.Jobs(), 1)
	assert.Contains(t, out.String(), "Logged in as u@example.com")
}

func TestLoginUnauthorizedStaysLoggedOut(t *testing.T) {
	fake := &fakeAPI{err: &api.Error{Kind: api.KindUnauthorized, Status: 401, Messages: []string{"Incorrect email or password"}}}
	a, out := newTestApp(t, fake, "u@example.com\n")
	stubPassword(t, "wrong")

	err := a.Login(context.Background())

	require.Error(t, err)
	assert.Equal(t, session.StateUnauthenticated, a.session.State())
	assert.Contains(t, out.String(), "Login failed")
}

func TestLogoutClearsListAndFilters(t *testing.T) {
	fake := &fakeAPI{}
	a, _ := newTestApp(t, fake, "")
	asGuest(t, a)
	a.setCriteria(func(c *jobs.Criteria) { c.Company = "goo" })

	require.NoError(t, a.Logout(context.Background()))

	assert.Equal(t, session.StateUnauthenticated, a.session.State())
	assert.Empty(t, a.store.Jobs())
	assert.True(t, a.currentCriteria().Empty())
}

func TestResumeUploadBlockedForGuest(t *testing.T) {
	fake := &fakeAPI{}
	a, out := newTestApp(t, fake, "")
	asGuest(t, a)

	err := a.ResumeUpload(context.Background(), []string{"1", "/tmp/resume.pdf"})

	assert.ErrorIs(t, err, common.ErrGuestRestricted)
	assert.Zero(t, fake.uploadCalls)
	assert.Contains(t, out.String(), "demo mode")
}

func TestResumeDeleteBlockedForGuest(t *testing.T) {
	fake := &fakeAPI{}
	a, _ := newTestApp(t, fake, "")
	asGuest(t, a)

	err := a.ResumeDelete(context.Background(), []string{"1", "1"})

	assert.ErrorIs(t, err, common.ErrGuestRestricted)
	assert.Zero(t, fake.deleteCalls)
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	fake := &fakeAPI{jobs: []models.Job{{ID: 10, Company: "Stripe"}}}
	a, out := newTestApp(t, fake, "n\n")
	asRegistered(t, a)

	require.NoError(t, a.Delete(context.Background(), []string{"10"}))

	assert.Zero(t, fake.deleteCalls)
	assert.Len(t, a.store.Jobs(), 1)
	assert.Contains(t, out.String(), "Cancelled")
}

func TestDeleteConfirmedRemovesJob(t *testing.T) {
	fake := &fakeAPI{jobs: []models.Job{{ID: 10, Company: "Stripe"}}}
	a, _ := newTestApp(t, fake, "y\n")
	asRegistered(t, a)

	require.NoError(t, a.Delete(context.Background(), []string{"10"}))

	assert.Equal(t, 1, fake.deleteCalls)
	assert.Empty(t, a.store.Jobs())
}

func TestAddGuestCreatesLocalRecord(t *testing.T) {
	fake := &fakeAPI{}
	// company, position, status, applied date, notes (empty line ends notes)
	a, out := newTestApp(t, fake, "Netflix\nBackend Engineer\ninterviewing\n2026-08-01\nreferred by a friend\n\n")
	asGuest(t, a)

	require.NoError(t, a.Add(context.Background()))

	held := a.store.Jobs()
	require.Len(t, held, 5)
	created := held[4]
	assert.Equal(t, int64(5), created.ID)
	assert.Equal(t, "Netflix", created.Company)
	assert.Equal(t, models.StatusInterviewing, created.Status)
	assert.Equal(t, "2026-08-01", created.AppliedDate)
	assert.Equal(t, "referred by a friend", created.Notes)
	assert.Contains(t, out.String(), "not saved")
}

func TestAddRejectsEmptyCompany(t *testing.T) {
	fake := &fakeAPI{}
	a, out := newTestApp(t, fake, "\nBackend Engineer\n")
	asGuest(t, a)

	err := a.Add(context.Background())

	require.Error(t, err)
	assert.Len(t, a.store.Jobs(), 4)
	assert.Contains(t, out.String(), "required")
}

func TestSetFilterStatusAppliesImmediately(t *testing.T) {
	fake := &fakeAPI{}
	a, _ := newTestApp(t, fake, "")

	require.NoError(t, a.SetFilter(context.Background(), []string{"status", "applied"}))

	assert.Equal(t, "applied", a.currentCriteria().Status)
}

func TestSetFilterCompanyIsDebounced(t *testing.T) {
	fake := &fakeAPI{}
	a, _ := newTestApp(t, fake, "")

	require.NoError(t, a.SetFilter(context.Background(), []string{"company", "goo"}))

	// Not applied synchronously; only after the trailing delay.
	assert.Empty(t, a.currentCriteria().Company)
	assert.Eventually(t, func() bool {
		return a.currentCriteria().Company == "goo"
	}, time.Second, 2*time.Millisecond)
}

func TestSetFilterResetCancelsPendingUpdate(t *testing.T) {
	fake := &fakeAPI{}
	a, _ := newTestApp(t, fake, "")

	require.NoError(t, a.SetFilter(context.Background(), []string{"company", "goo"}))
	require.NoError(t, a.SetFilter(context.Background(), []string{"reset"}))

	time.Sleep(20 * time.Millisecond)
	assert.True(t, a.currentCriteria().Empty())
}

func TestListAppliesCurrentCriteria(t *testing.T) {
	fake := &fakeAPI{}
	a, out := newTestApp(t, fake, "")
	asGuest(t, a)
	a.setCriteria(func(c *jobs.Criteria) { c.Company = "goo" })

	require.NoError(t, a.List(context.Background()))

	assert.Contains(t, out.String(), "Google")
	assert.NotContains(t, out.String(), "Microsoft")
	assert.Contains(t, out.String(), "1 of 4 job(s)")
}

func TestShowGuestReadsLocalList(t *testing.T) {
	fake := &fakeAPI{}
	a, out := newTestApp(t, fake, "")
	asGuest(t, a)

	require.NoError(t, a.Show(context.Background(), []string{"1"}))

	assert.Contains(t, out.String(), "Google")
	assert.Zero(t, fake.listCalls)
}

func TestShowUnknownIDReportsNotFound(t *testing.T) {
	fake := &fakeAPI{}
	a, out := newTestApp(t, fake, "")
	asGuest(t, a)

	require.NoError(t, a.Show(context.Background(), []string{"42"}))

	assert.Contains(t, out.String(), "not found")
}

func TestEditGuestMutatesLocally(t *testing.T) {
	fake := &fakeAPI{}
	a, _ := newTestApp(t, fake, "status\nrejected\n")
	asGuest(t, a)

	require.NoError(t, a.Edit(context.Background(), []string{"1"}))

	job, ok := a.store.Get(1)
	require.True(t, ok)
	assert.Equal(t, models.StatusRejected, job.Status)
	assert.NotEmpty(t, job.UpdatedAt)
}
