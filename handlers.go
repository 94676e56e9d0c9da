package main

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"

	"github.com/mpetrov/teamdrop/internal/service"
)

const maxUploadMemory = 32 << 20

// SubmissionAPI handles HTTP requests and responses
type SubmissionAPI struct {
	submissions *service.SubmissionService
}

// NewSubmissionAPI creates a new HTTP handler with dependencies
func NewSubmissionAPI(submissions *service.SubmissionService) *SubmissionAPI {
	return &SubmissionAPI{submissions: submissions}
}

// UploadHandler receives a multipart upload ("files" parts plus "id",
// "team" and optional "replace" fields) and stores the zipped submission
// in the team's folder.
func (api *SubmissionAPI) UploadHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "No files, ID, or team provided"})
		return
	}

	loginID := r.FormValue("id")
	team := r.FormValue("team")
	replace := r.FormValue("replace") == "true"

	var headers []*multipart.FileHeader
	if r.MultipartForm != nil {
		headers = r.MultipartForm.File["files"]
	}
	if len(headers) == 0 || loginID == "" || team == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "No files, ID, or team provided"})
		return
	}

	files := make([]service.UploadedFile, 0, len(headers))
	for _, header := range headers {
		part, err := header.Open()
		if err != nil {
			log.Printf("Error opening uploaded file %s: %v", header.Filename, err)
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "Internal Server Error"})
			return
		}
		data, err := io.ReadAll(part)
		part.Close()
		if err != nil {
			log.Printf("Error reading uploaded file %s: %v", header.Filename, err)
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "Internal Server Error"})
			return
		}
		files = append(files, service.UploadedFile{Name: header.Filename, Data: data})
	}

	fileID, err := api.submissions.Ingest(r.Context(), team, loginID, files, replace)
	if errors.Is(err, service.ErrArchiveExists) {
		writeJSON(w, http.StatusOK, map[string]any{"exists": true, "message": "File already exists"})
		return
	}
	if err != nil {
		log.Printf("Error during file upload: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "Internal Server Error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": "Files uploaded successfully", "file_id": fileID})
}

// ReportHandler returns the per-team submission summary as JSON.
func (api *SubmissionAPI) ReportHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	entries, err := api.submissions.BuildReport(r.Context())
	if err != nil {
		log.Printf("Error building report: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "Internal Server Error"})
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// DownloadReportHandler returns the same summary as an xlsx attachment.
func (api *SubmissionAPI) DownloadReportHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	entries, err := api.submissions.BuildReport(r.Context())
	if err != nil {
		log.Printf("Error building report: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "Internal Server Error"})
		return
	}

	data, err := service.WriteReportXLSX(entries)
	if err != nil {
		log.Printf("Error exporting report: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "Internal Server Error"})
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="upload_report.xlsx"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
