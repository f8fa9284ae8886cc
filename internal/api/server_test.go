package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"crediq/bureau-xml/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<INProfileResponse>
  <Current_Application>
    <Current_Application_Details>
      <Current_Applicant_Details>
        <First_Name>Ravi</First_Name>
        <Last_Name>Kumar</Last_Name>
        <IncomeTaxPan>ABCDE1234F</IncomeTaxPan>
      </Current_Applicant_Details>
    </Current_Application_Details>
  </Current_Application>
  <CAIS_Account>
    <CAIS_Account_DETAILS>
      <Subscriber_Name>HDFC BANK</Subscriber_Name>
      <Account_Type>10</Account_Type>
      <Portfolio_Type>R</Portfolio_Type>
      <Account_Status>11</Account_Status>
      <Current_Balance>45000</Current_Balance>
    </CAIS_Account_DETAILS>
  </CAIS_Account>
  <SCORE>
    <BureauScore>780</BureauScore>
  </SCORE>
</INProfileResponse>`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	reportStore, err := store.New(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = reportStore.Close() })
	return NewServer(reportStore, nil)
}

func uploadRaw(t *testing.T, srv *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/reports", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/xml")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeResponse(t, rec).Status)
}

func TestUploadReport(t *testing.T) {
	srv := newTestServer(t)

	rec := uploadRaw(t, srv, sampleXML)
	require.Equal(t, http.StatusCreated, rec.Code)

	resp := decodeResponse(t, rec)
	assert.Equal(t, "success", resp.Status)
	assert.Contains(t, rec.Body.String(), "Ravi Kumar")
}

func TestUploadReportMultipart(t *testing.T) {
	srv := newTestServer(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "report.xml")
	require.NoError(t, err)
	_, err = part.Write([]byte(sampleXML))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/api/reports", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "report.xml")
}

func TestUploadRejectsNonReportXML(t *testing.T) {
	srv := newTestServer(t)

	rec := uploadRaw(t, srv, "<Invoice><Total>10</Total></Invoice>")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "error", decodeResponse(t, rec).Status)
}

func TestUploadRejectsEmptyBody(t *testing.T) {
	srv := newTestServer(t)

	rec := uploadRaw(t, srv, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadDuplicateConflicts(t *testing.T) {
	srv := newTestServer(t)

	rec := uploadRaw(t, srv, sampleXML)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = uploadRaw(t, srv, sampleXML)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestListReportsPagination(t *testing.T) {
	srv := newTestServer(t)

	for i := 0; i < 3; i++ {
		// Vary the content so each upload hashes differently.
		rec := uploadRaw(t, srv, strings.Replace(sampleXML, "780", fmt.Sprintf("7%d0", i), 1))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	req := httptest.NewRequest("GET", "/api/reports?limit=2&offset=0", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Reports []json.RawMessage `json:"reports"`
			Total   int               `json:"total"`
			Limit   int               `json:"limit"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.Reports, 2)
	assert.Equal(t, 3, resp.Data.Total)
	assert.Equal(t, 2, resp.Data.Limit)
}

func TestGetAndDeleteReport(t *testing.T) {
	srv := newTestServer(t)

	rec := uploadRaw(t, srv, sampleXML)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.Data.ID)

	req := httptest.NewRequest("GET", "/api/reports/"+created.Data.ID, nil)
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Ravi Kumar")

	req = httptest.NewRequest("DELETE", "/api/reports/"+created.Data.ID, nil)
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest("GET", "/api/reports/"+created.Data.ID, nil)
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetReportNotFound(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest("GET", "/api/reports/nope", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStats(t *testing.T) {
	srv := newTestServer(t)

	rec := uploadRaw(t, srv, sampleXML)
	require.Equal(t, http.StatusCreated, rec.Code)

	req := httptest.NewRequest("GET", "/api/stats", nil)
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			ReportCount  int `json:"reportCount"`
			AccountCount int `json:"accountCount"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Data.ReportCount)
	assert.Equal(t, 1, resp.Data.AccountCount)
}
