package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/trackit/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBearerHeaderInjection(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]models.Job{})
	}))
	defer srv.Close()

	c := NewRESTClient(srv.URL, func() string { return "token123" })
	_, err := c.ListJobs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer token123", gotAuth)
}

func TestNoHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(&TokenResponse{AccessToken: "t"})
	}))
	defer srv.Close()

	c := NewRESTClient(srv.URL, func() string { return "" })
	_, err := c.GuestLogin(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestErrorDecoding(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind ErrorKind
		wantMsgs []string
	}{
		{
			name:     "detail string",
			status:   http.StatusUnauthorized,
			body:     `{"detail": "Incorrect email or password"}`,
			wantKind: KindUnauthorized,
			wantMsgs: []string{"Incorrect email or password"},
		},
		{
			name:     "detail array of strings",
			status:   http.StatusUnprocessableEntity,
			body:     `{"detail": ["company is required", "invalid status"]}`,
			wantKind: KindValidation,
			wantMsgs: []string{"company is required", "invalid status"},
		},
		{
			name:     "detail array of objects",
			status:   http.StatusUnprocessableEntity,
			body:     `{"detail": [{"loc": ["body", "company"], "msg": "field required"}]}`,
			wantKind: KindValidation,
			wantMsgs: []string{"field required"},
		},
		{
			name:     "not found",
			status:   http.StatusNotFound,
			body:     `{"detail": "Job not found"}`,
			wantKind: KindNotFound,
			wantMsgs: []string{"Job not found"},
		},
		{
			name:     "undecodable body",
			status:   http.StatusInternalServerError,
			body:     `oops`,
			wantKind: KindUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewRESTClient(srv.URL, func() string { return "" })
			_, err := c.GetJob(context.Background(), 1)
			require.Error(t, err)

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.wantKind, apiErr.Kind)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantMsgs, apiErr.Messages)
		})
	}
}

func TestTransportError(t *testing.T) {
	// Closed server: the request never gets an HTTP response.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewRESTClient(srv.URL, func() string { return "" })
	_, err := c.ListJobs(context.Background())
	assert.True(t, IsTransport(err))
}

func TestCreateJobMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Google", r.FormValue("company"))
		assert.Equal(t, "SWE", r.FormValue("position"))
		assert.Equal(t, "applied", r.FormValue("status"))

		file, header, err := r.FormFile("resume")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "cv.pdf", header.Filename)

		_ = json.NewEncoder(w).Encode(&models.Job{ID: 7, Company: "Google", Position: "SWE", Status: models.StatusApplied})
	}))
	defer srv.Close()

	c := NewRESTClient(srv.URL, func() string { return "t" })
	job, err := c.CreateJob(context.Background(),
		JobDraft{Company: "Google", Position: "SWE", Status: models.StatusApplied},
		&ResumeFile{Name: "cv.pdf", Data: []byte("%PDF-")})
	require.NoError(t, err)
	assert.Equal(t, int64(7), job.ID)
}

func TestDownloadResumeFilename(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename="cv.pdf"`)
		_, _ = w.Write([]byte("data"))
	}))
	defer srv.Close()

	c := NewRESTClient(srv.URL, func() string { return "t" })
	data, name, err := c.DownloadResume(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), data)
	assert.Equal(t, "cv.pdf", name)
}
