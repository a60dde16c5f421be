package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/trackit/internal/client/models"
	"github.com/dmitrijs2005/trackit/internal/common"
)

// RESTClient talks to the trackIt backend over HTTP. The access token is
// looked up on every request via tokenFn, so the client always carries the
// current session's credentials without being rebuilt on login/logout.
type RESTClient struct {
	baseURL string
	httpc   *http.Client
	tokenFn func() string
}

// NewRESTClient builds a client for the given base URL. tokenFn may return
// an empty string while no session is active; the Authorization header is
// then omitted.
func NewRESTClient(baseURL string, tokenFn func() string) *RESTClient {
	return &RESTClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{},
		tokenFn: tokenFn,
	}
}

func (c *RESTClient) newRequest(ctx context.Context, method, path string, contentType string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.tokenFn(); token != "" {
		req.Header.Set(common.AuthHeaderName, common.BearerPrefix+token)
	}
	return req, nil
}

// do executes req and returns the response body for 2xx statuses. Any other
// outcome is decoded into *Error here, once, so call sites only ever see the
// tagged form.
func (c *RESTClient) do(req *http.Request) (*http.Response, error) {
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Messages: []string{err.Error()}}
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()
	return nil, decodeError(resp)
}

// decodeError maps a non-2xx response to *Error. The backend reports
// failures as {"detail": ...} where detail is either a plain string or a
// list of validation messages.
func decodeError(resp *http.Response) *Error {
	apiErr := &Error{Status: resp.StatusCode}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		apiErr.Kind = KindUnauthorized
	case http.StatusNotFound:
		apiErr.Kind = KindNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		apiErr.Kind = KindValidation
	default:
		apiErr.Kind = KindUnknown
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return apiErr
	}

	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return apiErr
	}

	var single string
	if err := json.Unmarshal(payload.Detail, &single); err == nil {
		apiErr.Messages = []string{single}
		return apiErr
	}

	var items []json.RawMessage
	if err := json.Unmarshal(payload.Detail, &items); err != nil {
		return apiErr
	}
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			apiErr.Messages = append(apiErr.Messages, s)
			continue
		}
		var field struct {
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(item, &field); err == nil && field.Msg != "" {
			apiErr.Messages = append(apiErr.Messages, field.Msg)
		}
	}
	return apiErr
}

func (c *RESTClient) getJSON(ctx context.Context, path string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *RESTClient) sendJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}
	req, err := c.newRequest(ctx, method, path, "application/json", body)
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *RESTClient) Signup(ctx context.Context, email, username, password string) (*models.User, error) {
	in := map[string]string{"email": email, "username": username, "password": password}
	user := &models.User{}
	if err := c.sendJSON(ctx, http.MethodPost, "/api/auth/signup", in, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (c *RESTClient) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	in := map[string]string{"email": email, "password": password}
	tr := &TokenResponse{}
	if err := c.sendJSON(ctx, http.MethodPost, "/api/auth/login", in, tr); err != nil {
		return nil, err
	}
	return tr, nil
}

func (c *RESTClient) GuestLogin(ctx context.Context) (*TokenResponse, error) {
	tr := &TokenResponse{}
	if err := c.sendJSON(ctx, http.MethodPost, "/api/auth/guest-login", nil, tr); err != nil {
		return nil, err
	}
	return tr, nil
}

func (c *RESTClient) ListJobs(ctx context.Context) ([]models.Job, error) {
	var jobs []models.Job
	if err := c.getJSON(ctx, "/api/jobs/", &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// CreateJob submits the creation form as multipart data so an optional
// resume file can travel in the same request.
func (c *RESTClient) CreateJob(ctx context.Context, draft JobDraft, resume *ResumeFile) (*models.Job, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"company":  draft.Company,
		"position": draft.Position,
	}
	if draft.Notes != "" {
		fields["notes"] = draft.Notes
	}
	if draft.Status != "" {
		fields["status"] = string(draft.Status)
	}
	if draft.AppliedDate != "" {
		fields["applied_date"] = draft.AppliedDate
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, err
		}
	}

	if resume != nil {
		part, err := w.CreateFormFile("resume", resume.Name)
		if err != nil {
			return nil, err
		}
		if _, err := part.Write(resume.Data); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/jobs/", w.FormDataContentType(), &buf)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	job := &models.Job{}
	if err := json.NewDecoder(resp.Body).Decode(job); err != nil {
		return nil, err
	}
	return job, nil
}

func (c *RESTClient) GetJob(ctx context.Context, id int64) (*models.Job, error) {
	job := &models.Job{}
	if err := c.getJSON(ctx, fmt.Sprintf("/api/jobs/%d", id), job); err != nil {
		return nil, err
	}
	return job, nil
}

func (c *RESTClient) UpdateJob(ctx context.Context, id int64, patch JobPatch) (*models.Job, error) {
	job := &models.Job{}
	if err := c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/api/jobs/%d", id), patch, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (c *RESTClient) DeleteJob(ctx context.Context, id int64) error {
	return c.sendJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/jobs/%d", id), nil, nil)
}

func (c *RESTClient) UploadResume(ctx context.Context, jobID int64, file ResumeFile) (*models.Job, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("resume", file.Name)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(file.Data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, fmt.Sprintf("/api/jobs/%d/resume", jobID), w.FormDataContentType(), &buf)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	job := &models.Job{}
	if err := json.NewDecoder(resp.Body).Decode(job); err != nil {
		return nil, err
	}
	return job, nil
}

// DownloadResume fetches a resume version and returns its bytes plus the
// filename suggested by the backend (empty when no disposition is present).
func (c *RESTClient) DownloadResume(ctx context.Context, jobID, versionID int64) ([]byte, string, error) {
	path := fmt.Sprintf("/api/jobs/%d/resume/%d/download", jobID, versionID)
	req, err := c.newRequest(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}

	filename := ""
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			filename = params["filename"]
		}
	}
	return data, filename, nil
}

func (c *RESTClient) DeleteResume(ctx context.Context, jobID, versionID int64) error {
	return c.sendJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/jobs/%d/resume/%d", jobID, versionID), nil, nil)
}
