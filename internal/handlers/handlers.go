// Package handlers provides the HTTP handlers of the page tools API.
//
// A client creates a session, uploads one or more PDFs into it and then runs
// page actions. Every action names a stored document and a page range
// specification such as "1-3,5,7-"; the specification is resolved against
// the document's page count with pagerange.Parse and the resulting page list
// drives the pdfcpu operation.
//
// Example usage:
//
//	h := handlers.NewAPIHandler(sessionManager, uploadDir, outputDir, maxUpload, logger)
//	r := chi.NewRouter()
//	r.Post("/api/sessions/", h.CreateSession)
//
// All handlers are designed to be used with the chi router.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go-pagerange/internal/pagerange"
	"go-pagerange/internal/pdf"
	"go-pagerange/internal/session"
	"go-pagerange/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type APIHandler struct {
	SessionManager *session.SessionManager
	UploadDir      string
	OutputDir      string
	MaxUploadSize  int64
	Logger         *logrus.Logger
}

func NewAPIHandler(sm *session.SessionManager, uploadDir, outputDir string, maxUploadSize int64, logger *logrus.Logger) *APIHandler {
	return &APIHandler{
		SessionManager: sm,
		UploadDir:      uploadDir,
		OutputDir:      outputDir,
		MaxUploadSize:  maxUploadSize,
		Logger:         logger,
	}
}

// PageRequest is the body shared by the page endpoints. File is the stored
// name returned by the upload; it may be omitted when the session holds a
// single document.
type PageRequest struct {
	File      string  `json:"file"`
	Pages     string  `json:"pages"`
	Degrees   int     `json:"degrees,omitempty"`
	Text      string  `json:"text,omitempty"`
	Signature string  `json:"signature,omitempty"` // stored name of an uploaded signature
	X         float64 `json:"x,omitempty"`
	Y         float64 `json:"y,omitempty"`
	Scale     float64 `json:"scale,omitempty"`
}

var (
	errUnknownSignature  = errors.New("signature file not found in session")
	errDocumentNotFound  = errors.New("document not found in session")
	errNoDocument        = errors.New("no document uploaded")
	errDocumentAmbiguous = errors.New("file must be specified when a session holds several documents")
)

// PagesResponse describes a resolved page range specification.
type PagesResponse struct {
	File       string `json:"file"`
	PageCount  int    `json:"pageCount"`
	Pages      []int  `json:"pages"`
	Indices    []int  `json:"indices"`
	Normalized string `json:"normalized"`
}

// ActionResponse is returned by every page action.
type ActionResponse struct {
	DownloadURL string `json:"downloadUrl"`
	Pages       []int  `json:"pages,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *APIHandler) lookupSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sessionID := chi.URLParam(r, "sessionID")
	if !utils.IsUUID(sessionID) {
		http.Error(w, "Invalid session ID", http.StatusBadRequest)
		return nil, false
	}
	s, exists := h.SessionManager.GetSession(sessionID)
	if !exists {
		http.Error(w, "Session not found", http.StatusNotFound)
		return nil, false
	}
	return s, true
}

// resolveDocument finds the document a page request targets.
func resolveDocument(s *session.Session, name string) (session.Document, error) {
	if name != "" {
		doc, ok := s.Document(name)
		if !ok {
			return session.Document{}, fmt.Errorf("%w: %q", errDocumentNotFound, name)
		}
		return doc, nil
	}
	docs := s.GetDocuments()
	switch len(docs) {
	case 0:
		return session.Document{}, errNoDocument
	case 1:
		return docs[0], nil
	default:
		return session.Document{}, errDocumentAmbiguous
	}
}

// documentStatus maps a resolveDocument error to its HTTP status. A request
// that leaves the target open is malformed; a missing document is not found.
func documentStatus(err error) int {
	if errors.Is(err, errDocumentAmbiguous) {
		return http.StatusBadRequest
	}
	return http.StatusNotFound
}

// CreateSession godoc
// @Summary      Create a new session
// @Description  Creates a new page tools session and returns a session ID
// @Tags         sessions
// @Produce      json
// @Success      200  {object}  map[string]string  "{ sessionId: string }"
// @Router       /api/sessions/ [post]
func (h *APIHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	s := h.SessionManager.CreateSession()
	h.Logger.WithField("session", s.ID).Info("session created")
	writeJSON(w, http.StatusOK, map[string]string{"sessionId": s.ID})
}

// UploadFile godoc
// @Summary      Upload a PDF file
// @Description  Uploads a PDF file to the session and reports its page count
// @Tags         files
// @Accept       multipart/form-data
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Param        pdf        formData  file    true  "PDF file"
// @Success      200  {object}  session.Document
// @Failure      400  {string}  string  "Bad request"
// @Failure      404  {string}  string  "Session not found"
// @Router       /api/sessions/{sessionID}/files [post]
func (h *APIHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookupSession(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadSize)
	if err := r.ParseMultipartForm(h.MaxUploadSize); err != nil {
		http.Error(w, "File too large", http.StatusBadRequest)
		return
	}

	file, handler, err := r.FormFile("pdf")
	if err != nil {
		http.Error(w, "Error retrieving file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if filepath.Ext(handler.Filename) != ".pdf" {
		http.Error(w, "Only PDF files are allowed", http.StatusBadRequest)
		return
	}

	header := make([]byte, 5)
	if _, err := io.ReadFull(file, header); err != nil {
		http.Error(w, "Failed to read file", http.StatusBadRequest)
		return
	}
	if string(header) != "%PDF-" {
		http.Error(w, "Uploaded file is not a valid PDF", http.StatusBadRequest)
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		http.Error(w, "Failed to process file", http.StatusInternalServerError)
		return
	}

	name := fmt.Sprintf("%s-%s", utils.GenerateUUID(), utils.SanitizeFilename(handler.Filename))
	path := filepath.Join(h.UploadDir, name)
	dst, err := os.Create(path)
	if err != nil {
		http.Error(w, "Failed to create file", http.StatusInternalServerError)
		return
	}
	_, err = io.Copy(dst, file)
	dst.Close()
	if err != nil {
		os.Remove(path)
		http.Error(w, "Failed to save file", http.StatusInternalServerError)
		return
	}

	pages, err := pdf.PageCount(path)
	if err != nil {
		os.Remove(path)
		h.Logger.WithError(err).WithField("session", s.ID).Warn("rejected unreadable PDF")
		http.Error(w, "Uploaded file is not a valid PDF", http.StatusBadRequest)
		return
	}

	doc := session.Document{Name: name, Path: path, Pages: pages}
	s.AddDocument(doc)
	h.Logger.WithFields(logrus.Fields{"session": s.ID, "file": name, "pages": pages}).Info("document uploaded")
	writeJSON(w, http.StatusOK, doc)
}

// ListFiles godoc
// @Summary      List uploaded documents
// @Description  Lists the documents of the session with their page counts
// @Tags         files
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200  {array}   session.Document
// @Failure      404  {string}  string  "Session not found"
// @Router       /api/sessions/{sessionID}/files [get]
func (h *APIHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookupSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.GetDocuments())
}

// ResolvePages godoc
// @Summary      Resolve a page range specification
// @Description  Resolves a specification such as "1-3,5,7-" against a document without modifying it
// @Tags         pages
// @Accept       json
// @Produce      json
// @Param        sessionID  path      string       true  "Session ID"
// @Param        request    body      PageRequest  true  "File and page specification"
// @Success      200  {object}  PagesResponse
// @Failure      400  {string}  string  "Bad request or file not named"
// @Failure      404  {string}  string  "Session or document not found"
// @Router       /api/sessions/{sessionID}/pages [post]
func (h *APIHandler) ResolvePages(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookupSession(w, r)
	if !ok {
		return
	}
	var req PageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}
	doc, err := resolveDocument(s, req.File)
	if err != nil {
		http.Error(w, err.Error(), documentStatus(err))
		return
	}

	pages := pagerange.Parse(req.Pages, doc.Pages)
	writeJSON(w, http.StatusOK, PagesResponse{
		File:       doc.Name,
		PageCount:  doc.Pages,
		Pages:      pages,
		Indices:    pagerange.ZeroBased(pages),
		Normalized: pagerange.Format(pages),
	})
}

// pageOperation runs one pdf operation from in to out over pages.
type pageOperation func(s *session.Session, in, out string, pages []int, req PageRequest) error

// runPageAction is the common flow of the page actions: resolve the
// document and its pages, run op exclusively for the session, and publish
// the result as the session's output.
func (h *APIHandler) runPageAction(w http.ResponseWriter, r *http.Request, action string, op pageOperation) {
	s, ok := h.lookupSession(w, r)
	if !ok {
		return
	}
	var req PageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}
	doc, err := resolveDocument(s, req.File)
	if err != nil {
		http.Error(w, err.Error(), documentStatus(err))
		return
	}

	pages := pagerange.Parse(req.Pages, doc.Pages)
	if len(pages) == 0 {
		http.Error(w, "No valid pages selected", http.StatusBadRequest)
		return
	}

	if err := s.Begin(); err != nil {
		http.Error(w, "Action already in progress", http.StatusConflict)
		return
	}
	defer s.End()

	log := h.Logger.WithFields(logrus.Fields{
		"session": s.ID,
		"file":    doc.Name,
		"action":  action,
		"pages":   pagerange.Format(pages),
	})

	outputName := utils.OutputName(action)
	outputPath := filepath.Join(h.OutputDir, outputName)
	if err := op(s, doc.Path, outputPath, pages, req); err != nil {
		os.Remove(outputPath)
		if isClientError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.WithError(err).Error("page action failed")
		http.Error(w, fmt.Sprintf("Failed to %s pages", action), http.StatusInternalServerError)
		return
	}

	s.SetOutput(outputPath)
	log.Info("page action done")
	writeJSON(w, http.StatusOK, ActionResponse{
		DownloadURL: fmt.Sprintf("/api/sessions/%s/files/%s", s.ID, outputName),
		Pages:       pages,
	})
}

func isClientError(err error) bool {
	return errors.Is(err, pdf.ErrNoPages) ||
		errors.Is(err, pdf.ErrAllPages) ||
		errors.Is(err, pdf.ErrInvalidRotation) ||
		errors.Is(err, pdf.ErrEmptyStamp) ||
		errors.Is(err, errUnknownSignature)
}

// SelectPages godoc
// @Summary      Copy selected pages
// @Description  Creates a PDF holding the selected pages in the order the specification lists them
// @Tags         actions
// @Accept       json
// @Produce      json
// @Param        sessionID  path      string       true  "Session ID"
// @Param        request    body      PageRequest  true  "File and page specification"
// @Success      200  {object}  ActionResponse
// @Failure      400  {string}  string  "No valid pages selected"
// @Failure      404  {string}  string  "Session or document not found"
// @Failure      409  {string}  string  "Action already in progress"
// @Router       /api/sessions/{sessionID}/actions/select [post]
func (h *APIHandler) SelectPages(w http.ResponseWriter, r *http.Request) {
	h.runPageAction(w, r, "select", func(_ *session.Session, in, out string, pages []int, _ PageRequest) error {
		return pdf.SelectPages(in, out, pages)
	})
}

// RotatePages godoc
// @Summary      Rotate selected pages
// @Description  Rotates the selected pages clockwise by a multiple of 90 degrees
// @Tags         actions
// @Accept       json
// @Produce      json
// @Param        sessionID  path      string       true  "Session ID"
// @Param        request    body      PageRequest  true  "File, page specification and degrees"
// @Success      200  {object}  ActionResponse
// @Failure      400  {string}  string  "Bad request or file not named"
// @Failure      404  {string}  string  "Session or document not found"
// @Failure      409  {string}  string  "Action already in progress"
// @Router       /api/sessions/{sessionID}/actions/rotate [post]
func (h *APIHandler) RotatePages(w http.ResponseWriter, r *http.Request) {
	h.runPageAction(w, r, "rotate", func(_ *session.Session, in, out string, pages []int, req PageRequest) error {
		return pdf.RotatePages(in, out, pages, req.Degrees)
	})
}

// RemovePages godoc
// @Summary      Remove selected pages
// @Description  Creates a copy of the document without the selected pages
// @Tags         actions
// @Accept       json
// @Produce      json
// @Param        sessionID  path      string       true  "Session ID"
// @Param        request    body      PageRequest  true  "File and page specification"
// @Success      200  {object}  ActionResponse
// @Failure      400  {string}  string  "Bad request or file not named"
// @Failure      404  {string}  string  "Session or document not found"
// @Failure      409  {string}  string  "Action already in progress"
// @Router       /api/sessions/{sessionID}/actions/remove [post]
func (h *APIHandler) RemovePages(w http.ResponseWriter, r *http.Request) {
	h.runPageAction(w, r, "remove", func(_ *session.Session, in, out string, pages []int, _ PageRequest) error {
		return pdf.RemovePages(in, out, pages)
	})
}

// StampPages godoc
// @Summary      Stamp text on selected pages
// @Description  Stamps a text watermark on top of the selected pages
// @Tags         actions
// @Accept       json
// @Produce      json
// @Param        sessionID  path      string       true  "Session ID"
// @Param        request    body      PageRequest  true  "File, page specification and text"
// @Success      200  {object}  ActionResponse
// @Failure      400  {string}  string  "Bad request or file not named"
// @Failure      404  {string}  string  "Session or document not found"
// @Failure      409  {string}  string  "Action already in progress"
// @Router       /api/sessions/{sessionID}/actions/stamp [post]
func (h *APIHandler) StampPages(w http.ResponseWriter, r *http.Request) {
	h.runPageAction(w, r, "stamp", func(_ *session.Session, in, out string, pages []int, req PageRequest) error {
		return pdf.StampPages(in, out, pages, req.Text)
	})
}

// SignPages godoc
// @Summary      Sign selected pages
// @Description  Places a previously uploaded signature image on the selected pages at the given coordinates
// @Tags         signature
// @Accept       json
// @Produce      json
// @Param        sessionID  path      string       true  "Session ID"
// @Param        request    body      PageRequest  true  "File, page specification, signature and position"
// @Success      200  {object}  ActionResponse
// @Failure      400  {string}  string  "Bad request or file not named"
// @Failure      404  {string}  string  "Session or document not found"
// @Failure      409  {string}  string  "Action already in progress"
// @Router       /api/sessions/{sessionID}/actions/sign [post]
func (h *APIHandler) SignPages(w http.ResponseWriter, r *http.Request) {
	h.runPageAction(w, r, "sign", func(s *session.Session, in, out string, pages []int, req PageRequest) error {
		sigPath := filepath.Join(h.UploadDir, filepath.Base(req.Signature))
		if req.Signature == "" || !s.HasSignature(sigPath) {
			return errUnknownSignature
		}
		return pdf.SignPages(in, sigPath, pages, req.X, req.Y, req.Scale, out)
	})
}

// UploadSignature godoc
// @Summary      Upload a signature image
// @Description  Uploads a signature image (PNG/JPEG) to the session
// @Tags         signature
// @Accept       multipart/form-data
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Param        signature  formData  file    true  "Signature image file (PNG/JPEG)"
// @Success      200  {object}  map[string]interface{}  "{ filename: string, size: int }"
// @Failure      400  {string}  string  "Bad request - invalid image format"
// @Failure      404  {string}  string  "Session not found"
// @Router       /api/sessions/{sessionID}/signature [post]
func (h *APIHandler) UploadSignature(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookupSession(w, r)
	if !ok {
		return
	}

	const maxSignatureSize = 5 * 1024 * 1024
	r.Body = http.MaxBytesReader(w, r.Body, maxSignatureSize)
	if err := r.ParseMultipartForm(maxSignatureSize); err != nil {
		http.Error(w, "File too large", http.StatusBadRequest)
		return
	}

	file, handler, err := r.FormFile("signature")
	if err != nil {
		http.Error(w, "Error retrieving file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	header := make([]byte, 512)
	n, err := io.ReadFull(file, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		http.Error(w, "Failed to read file", http.StatusBadRequest)
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		http.Error(w, "Failed to process file", http.StatusInternalServerError)
		return
	}

	// The extension has to agree with the sniffed content type.
	validExtensions := map[string][]string{
		"image/jpeg": {".jpg", ".jpeg"},
		"image/png":  {".png"},
	}
	contentType := http.DetectContentType(header[:n])
	extensions, allowed := validExtensions[contentType]
	if !allowed {
		http.Error(w, "Invalid image format. Only PNG and JPEG images are allowed", http.StatusBadRequest)
		return
	}
	if !slices.Contains(extensions, strings.ToLower(filepath.Ext(handler.Filename))) {
		http.Error(w, "File extension doesn't match content type", http.StatusBadRequest)
		return
	}

	filename := fmt.Sprintf("sig-%s-%s", utils.GenerateUUID(), utils.SanitizeFilename(handler.Filename))
	path := filepath.Join(h.UploadDir, filename)
	dst, err := os.Create(path)
	if err != nil {
		http.Error(w, "Failed to create file", http.StatusInternalServerError)
		return
	}
	_, err = io.Copy(dst, file)
	dst.Close()
	if err != nil {
		os.Remove(path)
		http.Error(w, "Failed to save file", http.StatusInternalServerError)
		return
	}

	s.AddSignature(path)
	h.Logger.WithFields(logrus.Fields{"session": s.ID, "file": filename}).Info("signature uploaded")
	writeJSON(w, http.StatusOK, map[string]any{"filename": filename, "size": handler.Size})
}

// UpdateOrder godoc
// @Summary      Set document order
// @Description  Sets the order of uploaded documents for merging
// @Tags         files
// @Accept       json
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Param        files      body      object  true  "{ files: [string] }"
// @Success      200  {object}  map[string]bool  "{ success: true }"
// @Failure      400  {string}  string  "Bad request"
// @Failure      404  {string}  string  "Session not found"
// @Router       /api/sessions/{sessionID}/order [put]
func (h *APIHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookupSession(w, r)
	if !ok {
		return
	}
	var fileOrder struct {
		Files []string `json:"files"`
	}
	if err := json.NewDecoder(r.Body).Decode(&fileOrder); err != nil {
		http.Error(w, "Invalid file order data", http.StatusBadRequest)
		return
	}
	if err := s.SetOrder(fileOrder.Files); err != nil {
		http.Error(w, "Invalid file in order list", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// MergeFiles godoc
// @Summary      Merge uploaded files
// @Description  Merges all uploaded documents of the session in upload order
// @Tags         actions
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200  {object}  ActionResponse
// @Failure      400  {string}  string  "No files to merge"
// @Failure      404  {string}  string  "Session not found"
// @Failure      409  {string}  string  "Action already in progress"
// @Router       /api/sessions/{sessionID}/actions/merge [post]
func (h *APIHandler) MergeFiles(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookupSession(w, r)
	if !ok {
		return
	}
	docs := s.GetDocuments()
	if len(docs) == 0 {
		http.Error(w, "No files to merge", http.StatusBadRequest)
		return
	}
	if err := s.Begin(); err != nil {
		http.Error(w, "Action already in progress", http.StatusConflict)
		return
	}
	defer s.End()

	files := make([]string, len(docs))
	for i, doc := range docs {
		files[i] = doc.Path
	}

	log := h.Logger.WithFields(logrus.Fields{"session": s.ID, "action": "merge", "files": len(files)})
	outputName := utils.OutputName("merged")
	outputPath := filepath.Join(h.OutputDir, outputName)
	if err := pdf.MergePDFs(files, outputPath); err != nil {
		log.WithError(err).Error("merge failed")
		http.Error(w, "Failed to merge PDFs", http.StatusInternalServerError)
		return
	}
	if err := pdf.RemoveBookmarks(outputPath); err != nil {
		log.WithError(err).Warn("could not remove bookmarks")
	}

	s.SetOutput(outputPath)
	log.Info("merge done")
	writeJSON(w, http.StatusOK, ActionResponse{
		DownloadURL: fmt.Sprintf("/api/sessions/%s/files/%s", s.ID, outputName),
	})
}

// DownloadFile godoc
// @Summary      Download the latest output
// @Description  Downloads the PDF produced by the session's latest action
// @Tags         files
// @Produce      application/pdf
// @Param        sessionID  path      string  true  "Session ID"
// @Param        filename   path      string  true  "Output filename"
// @Success      200  {file}  file  "PDF file download"
// @Failure      403  {string}  string  "Unauthorized access to file"
// @Failure      404  {string}  string  "Session or file not found"
// @Router       /api/sessions/{sessionID}/files/{filename} [get]
func (h *APIHandler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookupSession(w, r)
	if !ok {
		return
	}
	filename := chi.URLParam(r, "filename")
	path := filepath.Join(h.OutputDir, filepath.Base(filename))
	if s.GetOutput() != path {
		http.Error(w, "Unauthorized access to file", http.StatusForbidden)
		return
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(path)))
	w.Header().Set("Content-Type", "application/pdf")
	http.ServeFile(w, r, path)
}

// Health godoc
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /healthz [get]
func (h *APIHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
