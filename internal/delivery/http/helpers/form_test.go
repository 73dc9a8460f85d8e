package helpers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartRequest(t *testing.T, fields map[string]string, file []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if file != nil {
		fw, err := mw.CreateFormFile("image", "cover.png")
		require.NoError(t, err)
		_, err = fw.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/events", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestParseMultipart(t *testing.T) {
	tests := []struct {
		name       string
		req        func(t *testing.T) *http.Request
		maxBytes   int64
		wantOK     bool
		wantStatus int
		wantFields map[string]string
		wantFile   []byte
		wantError  string
	}{
		{
			name: "fields and file",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, map[string]string{"slug": "go-meetup", "title": "Go"}, []byte("imgbytes"))
			},
			wantOK:     true,
			wantFields: map[string]string{"slug": "go-meetup", "title": "Go"},
			wantFile:   []byte("imgbytes"),
		},
		{
			name: "missing file is not an error",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, map[string]string{"slug": "x"}, nil)
			},
			wantOK:     true,
			wantFields: map[string]string{"slug": "x"},
		},
		{
			name: "text field named like the file part is dropped",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, map[string]string{"slug": "x", "image": "https://evil"}, nil)
			},
			wantOK:     true,
			wantFields: map[string]string{"slug": "x"},
		},
		{
			name: "not multipart",
			req: func(t *testing.T) *http.Request {
				req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(`{"slug":"x"}`))
				req.Header.Set("Content-Type", "application/json")
				return req
			},
			wantOK:     false,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "body over the limit",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, map[string]string{"slug": "x"}, bytes.Repeat([]byte{0xff}, 4096))
			},
			maxBytes:   1024,
			wantOK:     false,
			wantStatus: http.StatusRequestEntityTooLarge,
			wantError:  "request body exceeds 1024 bytes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			maxBytes := tt.maxBytes
			if maxBytes == 0 {
				maxBytes = 1 << 20
			}
			form, ok := ParseMultipart(rr, tt.req(t), maxBytes, "image")

			require.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				require.Equal(t, tt.wantStatus, rr.Code)
				var envelope APIResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
				assert.Equal(t, "Invalid form data", envelope.Message)
				assert.NotEmpty(t, envelope.Error)
				if tt.wantError != "" {
					assert.Equal(t, tt.wantError, envelope.Error)
				}
				return
			}
			assert.Equal(t, tt.wantFields, form.Fields)
			assert.Equal(t, tt.wantFile, form.File)
		})
	}
}

type fakeRequest struct{ errs []string }

func (f fakeRequest) Validate() []string { return f.errs }

func TestValidate(t *testing.T) {
	rr := httptest.NewRecorder()
	require.True(t, Validate(rr, fakeRequest{}))

	rr = httptest.NewRecorder()
	require.False(t, Validate(rr, fakeRequest{errs: []string{"slug is required", "title is too long"}}))
	require.Equal(t, http.StatusBadRequest, rr.Code)
	var envelope APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	assert.Equal(t, "slug is required; title is too long", envelope.Error)
}

func TestWriteJSON_EmptyEventsStillEncoded(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteJSON(rr, http.StatusOK, APIResponse{Message: "ok", Events: []string{}})

	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message":"ok","events":[]}`, rr.Body.String())
}
