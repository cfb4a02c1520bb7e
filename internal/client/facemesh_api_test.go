package client

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestDetectLandmarks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/landmarks" {
			t.Errorf("path = %q, want /landmarks", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("method = %q, want POST", r.Method)
		}

		file, header, err := r.FormFile("image")
		if err != nil {
			t.Fatalf("missing image form field: %v", err)
		}
		defer file.Close()
		if header.Filename != "frame.jpg" {
			t.Errorf("filename = %q, want frame.jpg", header.Filename)
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":        "success",
			"face_detected": true,
			"landmarks":     []map[string]float64{{"x": 1.5, "y": 2.5}},
			"image_width":   640,
			"image_height":  480,
		})
	}))
	defer server.Close()

	c := NewFaceMeshAPIClient(server.URL, 5*time.Second, newTestLogger())

	resp, err := c.DetectLandmarks("frame.jpg", []byte("jpegdata"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.FaceDetected {
		t.Error("FaceDetected = false, want true")
	}
	if len(resp.Landmarks) != 1 || resp.Landmarks[0].X != 1.5 || resp.Landmarks[0].Y != 2.5 {
		t.Errorf("unexpected landmarks: %+v", resp.Landmarks)
	}
	if resp.ImageWidth != 640 || resp.ImageHeight != 480 {
		t.Errorf("image size = %dx%d, want 640x480", resp.ImageWidth, resp.ImageHeight)
	}
}

func TestDetectLandmarksServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"model not loaded"}`, http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewFaceMeshAPIClient(server.URL, 5*time.Second, newTestLogger())

	if _, err := c.DetectLandmarks("frame.jpg", []byte("jpegdata")); err == nil {
		t.Error("expected error on 500 response")
	}
}

func TestPredictFatigue(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/predict" {
			t.Errorf("path = %q, want /predict", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"class":       "drowsy",
			"probability": 0.87,
		})
	}))
	defer server.Close()

	c := NewFaceMeshAPIClient(server.URL, 5*time.Second, newTestLogger())

	prediction, err := c.PredictFatigue("frame.jpg", []byte("jpegdata"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prediction.Class != "drowsy" {
		t.Errorf("Class = %q, want drowsy", prediction.Class)
	}
	if prediction.Probability != 0.87 {
		t.Errorf("Probability = %v, want 0.87", prediction.Probability)
	}
}

func TestCheckHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("path = %q, want /health", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":       "healthy",
			"model_loaded": true,
			"version":      "1.0.0",
		})
	}))
	defer server.Close()

	c := NewFaceMeshAPIClient(server.URL, 5*time.Second, newTestLogger())

	health, err := c.CheckHealth()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if health.Status != "healthy" || !health.ModelLoaded {
		t.Errorf("unexpected health response: %+v", health)
	}
}
