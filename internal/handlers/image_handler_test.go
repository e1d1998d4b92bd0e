package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/saltybytes-planner/internal/config"
)

type uploadCall struct {
	key         string
	contentType string
	size        int
}

func newTestImageHandler(call *uploadCall, err error) *ImageHandler {
	return &ImageHandler{
		Cfg: testConfig(),
		Upload: func(ctx context.Context, cfg *config.Config, img []byte, key, contentType string) (string, error) {
			*call = uploadCall{key: key, contentType: contentType, size: len(img)}
			if err != nil {
				return "", err
			}
			return "https://bucket.example.com/" + key, nil
		},
	}
}

func multipartRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if field != "" {
		fw, err := mw.CreateFormFile(field, filename)
		if err != nil {
			t.Fatalf("CreateFormFile error: %v", err)
		}
		fw.Write(content)
	}
	mw.Close()

	req := httptest.NewRequest("POST", "/v1/images/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func serveUpload(handler *ImageHandler, clientID string, req *http.Request) *httptest.ResponseRecorder {
	r := gin.New()
	r.POST("/v1/images/upload", setClient(clientID), handler.UploadImage)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUploadImage_Valid(t *testing.T) {
	var call uploadCall
	handler := newTestImageHandler(&call, nil)

	w := serveUpload(handler, "client-1", multipartRequest(t, "image", "pancakes.PNG", []byte("png-bytes")))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d. body: %s", w.Code, http.StatusOK, w.Body.String())
	}
	if !strings.HasPrefix(call.key, "uploads/client-1/images/") || !strings.HasSuffix(call.key, ".png") {
		t.Errorf("key = %q", call.key)
	}
	if call.contentType != "image/png" {
		t.Errorf("contentType = %q, want image/png", call.contentType)
	}
	if call.size != len("png-bytes") {
		t.Errorf("size = %d", call.size)
	}

	var body map[string]string
	json.Unmarshal(w.Body.Bytes(), &body)
	if body["image_url"] != "https://bucket.example.com/"+call.key {
		t.Errorf("image_url = %q", body["image_url"])
	}
}

func TestUploadImage_MissingFile(t *testing.T) {
	var call uploadCall
	w := serveUpload(newTestImageHandler(&call, nil), "client-1", multipartRequest(t, "", "", nil))

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestUploadImage_UnsupportedType(t *testing.T) {
	var call uploadCall
	w := serveUpload(newTestImageHandler(&call, nil), "client-1", multipartRequest(t, "image", "recipe.gif", []byte("gif")))

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if call.key != "" {
		t.Error("unsupported image should not be uploaded")
	}
}

func TestUploadImage_StorageFailure(t *testing.T) {
	var call uploadCall
	handler := newTestImageHandler(&call, errors.New("bucket unavailable"))

	w := serveUpload(handler, "client-1", multipartRequest(t, "image", "dish.jpg", []byte("jpg")))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	if strings.Contains(w.Body.String(), "bucket unavailable") {
		t.Error("storage errors should not leak to the client")
	}
}

func TestUploadImage_NoClient(t *testing.T) {
	var call uploadCall
	w := serveUpload(newTestImageHandler(&call, nil), "", multipartRequest(t, "image", "dish.jpg", []byte("jpg")))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}
