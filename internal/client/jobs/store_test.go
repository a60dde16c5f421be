package jobs

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/trackit/internal/client/models"
	"github.com/dmitrijs2005/trackit/internal/client/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLister struct {
	jobs  []models.Job
	err   error
	calls int
}

func (f *fakeLister) ListJobs(_ context.Context) ([]models.Job, error) {
	f.calls++
	return f.jobs, f.err
}

func sessionInState(t *testing.T, token string, user models.User) *session.Store {
	t.Helper()
	dir := t.TempDir()
	s := session.NewStore(
		session.NewFileScope(filepath.Join(dir, "guest.json")),
		session.NewFileScope(filepath.Join(dir, "credentials.json")),
	)
	s.Init()
	if token != "" {
		require.NoError(t, s.Login(token, user))
	}
	return s
}

func TestLoadRegisteredFetchesOnce(t *testing.T) {
	lister := &fakeLister{jobs: []models.Job{{ID: 10, Company: "Google", Position: "SWE", Status: models.StatusApplied}}}
	store := NewStore(lister)
	sess := sessionInState(t, "tok", models.User{Email: "a@b.c"})

	require.NoError(t, store.Load(context.Background(), sess))
	assert.Equal(t, 1, lister.calls)
	assert.Len(t, store.Jobs(), 1)
}

func TestLoadRegisteredFailureDegradesToEmpty(t *testing.T) {
	lister := &fakeLister{err: errors.New("boom")}
	store := NewStore(lister)
	store.Replace([]models.Job{{ID: 1}})
	sess := sessionInState(t, "tok", models.User{Email: "a@b.c"})

	err := store.Load(context.Background(), sess)
	assert.Error(t, err)
	assert.Empty(t, store.Jobs())
}

func TestLoadGuestUsesSampleDataWithoutNetwork(t *testing.T) {
	lister := &fakeLister{}
	store := NewStore(lister)
	sess := sessionInState(t, "tok", models.User{Username: "Guest_ab", IsGuest: true})

	require.NoError(t, store.Load(context.Background(), sess))
	assert.Zero(t, lister.calls)
	assert.Len(t, store.Jobs(), len(SampleJobs()))
	assert.Equal(t, "Google", store.Jobs()[0].Company)
}

func TestLoadUnauthenticatedClears(t *testing.T) {
	store := NewStore(&fakeLister{})
	store.Replace([]models.Job{{ID: 1}})
	sess := sessionInState(t, "", models.User{})

	require.NoError(t, store.Load(context.Background(), sess))
	assert.Empty(t, store.Jobs())
}

func TestNextGuestIDMonotonicAboveSamples(t *testing.T) {
	store := NewStore(&fakeLister{})
	sess := sessionInState(t, "tok", models.User{IsGuest: true})
	require.NoError(t, store.Load(context.Background(), sess))

	first := store.NextGuestID()
	second := store.NextGuestID()

	for _, sample := range SampleJobs() {
		assert.Greater(t, first, sample.ID)
	}
	assert.Equal(t, first+1, second)
}

func TestUpsertAndRemove(t *testing.T) {
	store := NewStore(&fakeLister{})
	store.Replace([]models.Job{{ID: 1, Company: "A"}, {ID: 2, Company: "B"}})

	store.Upsert(models.Job{ID: 2, Company: "B2"})
	job, ok := store.Get(2)
	require.True(t, ok)
	assert.Equal(t, "B2", job.Company)

	store.Upsert(models.Job{ID: 3, Company: "C"})
	assert.Len(t, store.Jobs(), 3)

	store.Remove(1)
	assert.Equal(t, []int64{2, 3}, ids(store.Jobs()))

	store.Remove(99) // absent id is a no-op
	assert.Len(t, store.Jobs(), 2)
}
