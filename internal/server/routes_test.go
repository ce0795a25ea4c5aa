package server

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"go-pagerange/internal/config"
	"go-pagerange/internal/handlers"
	"go-pagerange/internal/pdf/pdftest"
	"go-pagerange/internal/session"

	"github.com/sirupsen/logrus"
)

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := config.Default()
	cfg.UploadDir = t.TempDir()
	cfg.OutputDir = t.TempDir()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	s, err := New(cfg, logger)
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}
	ts := httptest.NewServer(s.RegisterRoutes())
	t.Cleanup(ts.Close)
	return ts
}

func createSession(t *testing.T, ts *httptest.Server) string {
	t.Helper()
	resp, err := http.Post(ts.URL+"/api/sessions/", "application/json", nil)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	defer resp.Body.Close()
	var result map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return result["sessionId"]
}

func upload(t *testing.T, ts *httptest.Server, sessionID, filename string, data []byte) *http.Response {
	t.Helper()
	return uploadForm(t, ts.URL+"/api/sessions/"+sessionID+"/files", "pdf", filename, data)
}

func uploadForm(t *testing.T, url, field, filename string, data []byte) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, _ := writer.CreateFormFile(field, filename)
	_, _ = part.Write(data)
	writer.Close()

	req, _ := http.NewRequest("POST", url, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Failed to upload file: %v", err)
	}
	return resp
}

func uploadPDF(t *testing.T, ts *httptest.Server, sessionID string, pages int) session.Document {
	t.Helper()
	resp := upload(t, ts, sessionID, "doc.pdf", pdftest.Bytes(pages))
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected 200 OK, got %d: %s", resp.StatusCode, body)
	}
	var doc session.Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		t.Fatalf("Failed to decode upload response: %v", err)
	}
	return doc
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, _ := json.Marshal(body)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func TestCreateSession(t *testing.T) {
	ts := setupTestServer(t)
	if createSession(t, ts) == "" {
		t.Error("Expected sessionId in response")
	}
}

func TestHealth(t *testing.T) {
	ts := setupTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200 OK, got %d", resp.StatusCode)
	}
}

func TestUploadFile(t *testing.T) {
	ts := setupTestServer(t)
	sessionID := createSession(t, ts)

	t.Run("valid PDF", func(t *testing.T) {
		doc := uploadPDF(t, ts, sessionID, 4)
		if doc.Pages != 4 {
			t.Fatalf("Expected 4 pages, got %d", doc.Pages)
		}
		if !strings.HasSuffix(doc.Name, "-doc.pdf") {
			t.Fatalf("Unexpected stored name %q", doc.Name)
		}
	})

	t.Run("invalid PDF", func(t *testing.T) {
		resp := upload(t, ts, sessionID, "notpdf.pdf", []byte("hello, world"))
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("Expected 400 for invalid PDF, got %d", resp.StatusCode)
		}
	})

	t.Run("broken PDF body", func(t *testing.T) {
		resp := upload(t, ts, sessionID, "broken.pdf", []byte("%PDF-1.4\ngarbage"))
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("Expected 400 for unreadable PDF, got %d", resp.StatusCode)
		}
	})

	t.Run("wrong extension", func(t *testing.T) {
		resp := upload(t, ts, sessionID, "doc.txt", pdftest.Bytes(1))
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("Expected 400 for .txt upload, got %d", resp.StatusCode)
		}
	})

	t.Run("unknown session", func(t *testing.T) {
		resp := upload(t, ts, "00000000-0000-0000-0000-000000000000", "doc.pdf", pdftest.Bytes(1))
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("Expected 404, got %d", resp.StatusCode)
		}
	})

	t.Run("list", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/sessions/" + sessionID + "/files")
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()
		var docs []session.Document
		_ = json.NewDecoder(resp.Body).Decode(&docs)
		if len(docs) != 1 {
			t.Fatalf("Expected 1 stored document, got %d", len(docs))
		}
	})
}

func TestResolvePages(t *testing.T) {
	ts := setupTestServer(t)
	sessionID := createSession(t, ts)
	uploadPDF(t, ts, sessionID, 10)

	tests := []struct {
		spec       string
		pages      []int
		normalized string
	}{
		{"1-3,5,7-8", []int{1, 2, 3, 5, 7, 8}, "1-3,5,7-8"},
		{" 1, 2 ,2, 3 ", []int{1, 2, 3}, "1-3"},
		{"7-", []int{7, 8, 9, 10}, "7-10"},
		{"-3", []int{1, 2, 3}, "1-3"},
		{"a,1-b,4", []int{1, 4}, "1,4"},
		{"", []int{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			resp := postJSON(t, ts.URL+"/api/sessions/"+sessionID+"/pages", handlers.PageRequest{Pages: tt.spec})
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("Expected 200 OK, got %d", resp.StatusCode)
			}
			var got handlers.PagesResponse
			if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
				t.Fatalf("Failed to decode: %v", err)
			}
			if !reflect.DeepEqual(got.Pages, tt.pages) {
				t.Errorf("pages = %v, want %v", got.Pages, tt.pages)
			}
			if got.Normalized != tt.normalized {
				t.Errorf("normalized = %q, want %q", got.Normalized, tt.normalized)
			}
			if got.PageCount != 10 || len(got.Indices) != len(tt.pages) {
				t.Errorf("unexpected response %+v", got)
			}
		})
	}
}

func TestPageActions(t *testing.T) {
	ts := setupTestServer(t)
	sessionID := createSession(t, ts)
	doc := uploadPDF(t, ts, sessionID, 6)
	base := ts.URL + "/api/sessions/" + sessionID

	tests := []struct {
		name   string
		action string
		req    handlers.PageRequest
		status int
	}{
		{"select", "select", handlers.PageRequest{File: doc.Name, Pages: "6,1-2"}, http.StatusOK},
		{"rotate", "rotate", handlers.PageRequest{File: doc.Name, Pages: "2-", Degrees: 90}, http.StatusOK},
		{"rotate bad angle", "rotate", handlers.PageRequest{File: doc.Name, Pages: "1", Degrees: 45}, http.StatusBadRequest},
		{"remove", "remove", handlers.PageRequest{File: doc.Name, Pages: "3-1"}, http.StatusOK},
		{"remove everything", "remove", handlers.PageRequest{File: doc.Name, Pages: "1-"}, http.StatusBadRequest},
		{"stamp", "stamp", handlers.PageRequest{Pages: "-2", Text: "DRAFT"}, http.StatusOK},
		{"stamp without text", "stamp", handlers.PageRequest{Pages: "1"}, http.StatusBadRequest},
		{"no valid pages", "select", handlers.PageRequest{File: doc.Name, Pages: "0,9,x"}, http.StatusBadRequest},
		{"unknown document", "select", handlers.PageRequest{File: "nope.pdf", Pages: "1"}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, base+"/actions/"+tt.action, tt.req)
			defer resp.Body.Close()
			if resp.StatusCode != tt.status {
				body, _ := io.ReadAll(resp.Body)
				t.Fatalf("Expected %d, got %d: %s", tt.status, resp.StatusCode, body)
			}
		})
	}
}

func TestSelectAndDownload(t *testing.T) {
	ts := setupTestServer(t)
	sessionID := createSession(t, ts)
	uploadPDF(t, ts, sessionID, 5)

	resp := postJSON(t, ts.URL+"/api/sessions/"+sessionID+"/actions/select", handlers.PageRequest{Pages: "4-5,1,4"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200 OK, got %d", resp.StatusCode)
	}
	var result handlers.ActionResponse
	_ = json.NewDecoder(resp.Body).Decode(&result)
	if !reflect.DeepEqual(result.Pages, []int{4, 5, 1}) {
		t.Fatalf("Expected pages [4 5 1], got %v", result.Pages)
	}

	dl, err := http.Get(ts.URL + result.DownloadURL)
	if err != nil {
		t.Fatalf("Download failed: %v", err)
	}
	defer dl.Body.Close()
	if dl.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200 OK, got %d", dl.StatusCode)
	}
	data, _ := io.ReadAll(dl.Body)
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatal("Expected a PDF download")
	}
	labels, err := pdftest.Labels(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Reading downloaded pages: %v", err)
	}
	if want := []string{"4", "5", "1"}; !reflect.DeepEqual(labels, want) {
		t.Fatalf("Expected downloaded pages %v, got %v", want, labels)
	}

	forged, err := http.Get(ts.URL + "/api/sessions/" + sessionID + "/files/other.pdf")
	if err != nil {
		t.Fatal(err)
	}
	forged.Body.Close()
	if forged.StatusCode != http.StatusForbidden {
		t.Fatalf("Expected 403 for foreign file, got %d", forged.StatusCode)
	}
}

func TestMergeFiles(t *testing.T) {
	ts := setupTestServer(t)
	sessionID := createSession(t, ts)

	empty, _ := http.Post(ts.URL+"/api/sessions/"+sessionID+"/actions/merge", "application/json", nil)
	empty.Body.Close()
	if empty.StatusCode != http.StatusBadRequest {
		t.Fatalf("Expected 400 without files, got %d", empty.StatusCode)
	}

	uploadPDF(t, ts, sessionID, 2)
	uploadPDF(t, ts, sessionID, 3)

	resp, err := http.Post(ts.URL+"/api/sessions/"+sessionID+"/actions/merge", "application/json", nil)
	if err != nil {
		t.Fatalf("Failed to merge files: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200 OK, got %d", resp.StatusCode)
	}
	var mergeResult handlers.ActionResponse
	_ = json.NewDecoder(resp.Body).Decode(&mergeResult)
	if !strings.Contains(mergeResult.DownloadURL, "/api/sessions/") {
		t.Error("Expected downloadUrl in response")
	}

	// With two documents a page action has to name its file.
	ambiguous := postJSON(t, ts.URL+"/api/sessions/"+sessionID+"/actions/select", handlers.PageRequest{Pages: "1"})
	ambiguous.Body.Close()
	if ambiguous.StatusCode != http.StatusBadRequest {
		t.Fatalf("Expected 400 for ambiguous document, got %d", ambiguous.StatusCode)
	}
	unknown := postJSON(t, ts.URL+"/api/sessions/"+sessionID+"/actions/select", handlers.PageRequest{File: "missing.pdf", Pages: "1"})
	unknown.Body.Close()
	if unknown.StatusCode != http.StatusNotFound {
		t.Fatalf("Expected 404 for unknown document, got %d", unknown.StatusCode)
	}
}

func TestSwaggerDoc(t *testing.T) {
	ts := setupTestServer(t)
	resp, err := http.Get(ts.URL + "/swagger/doc.json")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200 OK from localhost, got %d", resp.StatusCode)
	}
}

func signaturePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for x := 0; x < 40; x++ {
		img.Set(x, 10, color.Black)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestSignPages(t *testing.T) {
	ts := setupTestServer(t)
	sessionID := createSession(t, ts)
	uploadPDF(t, ts, sessionID, 3)
	base := ts.URL + "/api/sessions/" + sessionID

	t.Run("rejects non image", func(t *testing.T) {
		resp := uploadForm(t, base+"/signature", "signature", "sig.png", []byte("plain text"))
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d", resp.StatusCode)
		}
	})

	t.Run("rejects mismatched extension", func(t *testing.T) {
		resp := uploadForm(t, base+"/signature", "signature", "sig.jpg", signaturePNG(t))
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d", resp.StatusCode)
		}
	})

	resp := uploadForm(t, base+"/signature", "signature", "sig.png", signaturePNG(t))
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200 OK, got %d", resp.StatusCode)
	}
	var sig map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&sig)
	sigName, _ := sig["filename"].(string)

	signed := postJSON(t, base+"/actions/sign", handlers.PageRequest{Pages: "2-", Signature: sigName, X: 20, Y: 20, Scale: 0.5})
	defer signed.Body.Close()
	if signed.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(signed.Body)
		t.Fatalf("Expected 200 OK, got %d: %s", signed.StatusCode, body)
	}
	var result handlers.ActionResponse
	_ = json.NewDecoder(signed.Body).Decode(&result)
	if !reflect.DeepEqual(result.Pages, []int{2, 3}) {
		t.Fatalf("Expected pages [2 3], got %v", result.Pages)
	}

	unknown := postJSON(t, base+"/actions/sign", handlers.PageRequest{Pages: "1", Signature: "sig-missing.png"})
	unknown.Body.Close()
	if unknown.StatusCode != http.StatusBadRequest {
		t.Fatalf("Expected 400 for unknown signature, got %d", unknown.StatusCode)
	}
}

func TestUpdateOrder(t *testing.T) {
	ts := setupTestServer(t)
	sessionID := createSession(t, ts)
	first := uploadPDF(t, ts, sessionID, 1)
	second := uploadPDF(t, ts, sessionID, 2)
	url := ts.URL + "/api/sessions/" + sessionID + "/order"

	put := func(files []string) int {
		data, _ := json.Marshal(map[string][]string{"files": files})
		req, _ := http.NewRequest("PUT", url, bytes.NewReader(data))
		req.Header.Set("Content-Type", "application/json")
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		return resp.StatusCode
	}

	if code := put([]string{second.Name, first.Name}); code != http.StatusOK {
		t.Fatalf("Expected 200 OK, got %d", code)
	}
	if code := put([]string{second.Name, "bogus.pdf"}); code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for unknown file, got %d", code)
	}

	resp, err := http.Get(ts.URL + "/api/sessions/" + sessionID + "/files")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var docs []session.Document
	_ = json.NewDecoder(resp.Body).Decode(&docs)
	if len(docs) != 2 || docs[0].Name != second.Name {
		t.Fatalf("Expected %s first, got %+v", second.Name, docs)
	}
}
