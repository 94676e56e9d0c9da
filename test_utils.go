package main

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"

	"github.com/mpetrov/teamdrop/internal/service"
	"github.com/mpetrov/teamdrop/internal/storage"
)

// newTestAPI wires a handler against the in-memory provider.
func newTestAPI() (*SubmissionAPI, *storage.MemoryProvider) {
	provider := storage.NewMemoryProvider()
	api := NewSubmissionAPI(service.NewSubmissionService(provider))
	return api, provider
}

// uploadRequest builds a multipart /upload request. Empty id, team or
// files are simply omitted from the form, which is how a broken client
// would send them.
func uploadRequest(loginID, team, replace string, files map[string][]byte) (*http.Request, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	for name, data := range files {
		part, err := writer.CreateFormFile("files", name)
		if err != nil {
			return nil, err
		}
		if _, err := part.Write(data); err != nil {
			return nil, err
		}
	}
	if loginID != "" {
		if err := writer.WriteField("id", loginID); err != nil {
			return nil, err
		}
	}
	if team != "" {
		if err := writer.WriteField("team", team); err != nil {
			return nil, err
		}
	}
	if replace != "" {
		if err := writer.WriteField("replace", replace); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req, nil
}
