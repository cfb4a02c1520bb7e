package service

import (
	"errors"
	"io"
	"testing"

	"netracare-go/internal/client"
	"netracare-go/internal/config"
	"netracare-go/internal/model"
	"netracare-go/internal/repository"
	"netracare-go/internal/tracking"

	"github.com/sirupsen/logrus"
)

// stubDetector возвращает заранее подготовленные ответы детекции
type stubDetector struct {
	responses []*client.LandmarkResponse
	calls     int
}

func (d *stubDetector) DetectLandmarks(filename string, imageData []byte) (*client.LandmarkResponse, error) {
	if d.calls >= len(d.responses) {
		return nil, errors.New("no more stub responses")
	}
	resp := d.responses[d.calls]
	d.calls++
	return resp, nil
}

func (d *stubDetector) PredictFatigue(filename string, imageData []byte) (*client.FatiguePrediction, error) {
	return &client.FatiguePrediction{Class: "notdrowsy", Probability: 0.93}, nil
}

// stubSessionRepo хранит сессии в памяти
type stubSessionRepo struct {
	created []*model.EyeTrackingSession
}

func (r *stubSessionRepo) Create(session *model.EyeTrackingSession) error {
	r.created = append(r.created, session)
	return nil
}

func (r *stubSessionRepo) GetByID(id string, userID uint) (*model.EyeTrackingSession, error) {
	for _, s := range r.created {
		if s.ID == id && s.UserID == userID {
			return s, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubSessionRepo) ListByUser(userID uint, limit, offset int) ([]*model.EyeTrackingSession, int64, error) {
	var sessions []*model.EyeTrackingSession
	for _, s := range r.created {
		if s.UserID == userID {
			sessions = append(sessions, s)
		}
	}
	return sessions, int64(len(sessions)), nil
}

func (r *stubSessionRepo) Delete(id string, userID uint) error {
	for i, s := range r.created {
		if s.ID == id && s.UserID == userID {
			r.created = append(r.created[:i], r.created[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Tracking.EARThreshold = tracking.DefaultEARThreshold
	cfg.Tracking.ConsecFrames = tracking.DefaultConsecFrames
	cfg.Tracking.GazeHorizontalThreshold = tracking.DefaultHorizontalThreshold
	cfg.Tracking.GazeVerticalThreshold = tracking.DefaultVerticalThreshold
	return cfg
}

// syntheticFace строит полный набор ориентиров с открытыми или закрытыми глазами
func syntheticFace(open bool) []tracking.Point {
	landmarks := make([]tracking.Point, tracking.MinLandmarkCount)
	for i := range landmarks {
		landmarks[i] = tracking.Point{X: 100, Y: 100}
	}

	height := 0.5
	if open {
		height = 3.0
	}

	setEye := func(indices []int, baseX float64) {
		landmarks[indices[0]] = tracking.Point{X: baseX, Y: 100}
		landmarks[indices[1]] = tracking.Point{X: baseX + 3, Y: 100 - height}
		landmarks[indices[2]] = tracking.Point{X: baseX + 7, Y: 100 - height}
		landmarks[indices[3]] = tracking.Point{X: baseX + 10, Y: 100}
		landmarks[indices[4]] = tracking.Point{X: baseX + 7, Y: 100 + height}
		landmarks[indices[5]] = tracking.Point{X: baseX + 3, Y: 100 + height}
	}
	setEye(tracking.LeftEyeIndices, 100)
	setEye(tracking.RightEyeIndices, 200)

	// Радужки в центре глаз
	for _, idx := range tracking.LeftIrisIndices {
		landmarks[idx] = tracking.Point{X: 105, Y: 100}
	}
	for _, idx := range tracking.RightIrisIndices {
		landmarks[idx] = tracking.Point{X: 205, Y: 100}
	}

	return landmarks
}

func detection(open bool) *client.LandmarkResponse {
	return &client.LandmarkResponse{
		Status:       "success",
		FaceDetected: true,
		Landmarks:    syntheticFace(open),
	}
}

func noFace() *client.LandmarkResponse {
	return &client.LandmarkResponse{Status: "success", FaceDetected: false}
}

func TestStartSessionCreatesActiveSession(t *testing.T) {
	svc := NewTrackingService(&stubSessionRepo{}, &stubDetector{}, testConfig(), testLogger())

	resp := svc.StartSession(1, &CreateSessionRequest{SessionName: "morning check"})

	if resp.SessionID == "" {
		t.Fatal("expected non-empty session id")
	}
	if resp.EARThreshold != tracking.DefaultEARThreshold {
		t.Errorf("EARThreshold = %v, want %v", resp.EARThreshold, tracking.DefaultEARThreshold)
	}
	if resp.SessionName != "morning check" {
		t.Errorf("SessionName = %q, want %q", resp.SessionName, "morning check")
	}
}

func TestProcessFrameUnknownSession(t *testing.T) {
	svc := NewTrackingService(&stubSessionRepo{}, &stubDetector{}, testConfig(), testLogger())

	_, err := svc.ProcessFrame("missing", 1, "frame.jpg", []byte("data"))
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("error = %v, want ErrSessionNotFound", err)
	}
}

func TestProcessFrameWrongOwner(t *testing.T) {
	svc := NewTrackingService(&stubSessionRepo{}, &stubDetector{}, testConfig(), testLogger())
	resp := svc.StartSession(1, &CreateSessionRequest{})

	_, err := svc.ProcessFrame(resp.SessionID, 2, "frame.jpg", []byte("data"))
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("error = %v, want ErrSessionNotFound for foreign user", err)
	}
}

func TestProcessFrameNoFace(t *testing.T) {
	detector := &stubDetector{responses: []*client.LandmarkResponse{noFace()}}
	svc := NewTrackingService(&stubSessionRepo{}, detector, testConfig(), testLogger())
	session := svc.StartSession(1, &CreateSessionRequest{})

	resp, err := svc.ProcessFrame(session.SessionID, 1, "frame.jpg", []byte("data"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.FaceDetected {
		t.Error("FaceDetected = true, want false")
	}
	if resp.Record != nil {
		t.Error("expected nil record when no face detected")
	}
	if resp.FramesTotal != 1 {
		t.Errorf("FramesTotal = %d, want 1", resp.FramesTotal)
	}
}

func TestProcessFrameWithFace(t *testing.T) {
	detector := &stubDetector{responses: []*client.LandmarkResponse{detection(true)}}
	svc := NewTrackingService(&stubSessionRepo{}, detector, testConfig(), testLogger())
	session := svc.StartSession(1, &CreateSessionRequest{})

	resp, err := svc.ProcessFrame(session.SessionID, 1, "frame.jpg", []byte("data"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.FaceDetected {
		t.Fatal("FaceDetected = false, want true")
	}
	if resp.Record == nil {
		t.Fatal("expected frame record")
	}
	if resp.Record.LeftEAR <= 0 {
		t.Errorf("LeftEAR = %v, want positive", resp.Record.LeftEAR)
	}
	if resp.Record.GazeDirection != tracking.GazeCenter {
		t.Errorf("GazeDirection = %v, want center", resp.Record.GazeDirection)
	}
}

func TestStatisticsEmptySession(t *testing.T) {
	svc := NewTrackingService(&stubSessionRepo{}, &stubDetector{}, testConfig(), testLogger())
	session := svc.StartSession(1, &CreateSessionRequest{})

	_, err := svc.Statistics(session.SessionID, 1)
	if !errors.Is(err, tracking.ErrEmptySession) {
		t.Errorf("error = %v, want ErrEmptySession", err)
	}
}

func TestFinalizeSessionPersistsAndRemoves(t *testing.T) {
	// Полный цикл моргания: открыто, два кадра закрыто, снова открыто
	detector := &stubDetector{responses: []*client.LandmarkResponse{
		detection(true),
		detection(false),
		detection(false),
		detection(true),
		noFace(),
	}}
	repo := &stubSessionRepo{}
	svc := NewTrackingService(repo, detector, testConfig(), testLogger())
	session := svc.StartSession(7, &CreateSessionRequest{SessionName: "blink run", Notes: "test"})

	for i := 0; i < 5; i++ {
		if _, err := svc.ProcessFrame(session.SessionID, 7, "frame.jpg", []byte("data")); err != nil {
			t.Fatalf("frame %d: unexpected error: %v", i, err)
		}
	}

	resp, err := svc.FinalizeSession(session.SessionID, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.TotalBlinks != 1 {
		t.Errorf("TotalBlinks = %d, want 1", resp.TotalBlinks)
	}
	if resp.TotalFrames != 5 {
		t.Errorf("TotalFrames = %d, want 5", resp.TotalFrames)
	}
	if resp.FramesWithFace != 4 {
		t.Errorf("FramesWithFace = %d, want 4", resp.FramesWithFace)
	}
	if resp.DetectionRate != 80 {
		t.Errorf("DetectionRate = %v, want 80", resp.DetectionRate)
	}
	if resp.DataPoints != 4 {
		t.Errorf("DataPoints = %d, want 4", resp.DataPoints)
	}

	if len(repo.created) != 1 {
		t.Fatalf("created sessions = %d, want 1", len(repo.created))
	}
	saved := repo.created[0]
	if saved.ID != session.SessionID {
		t.Errorf("saved ID = %q, want %q", saved.ID, session.SessionID)
	}
	if saved.GazeDistributionMap()[string(tracking.GazeCenter)] != 4 {
		t.Errorf("gaze center count = %d, want 4", saved.GazeDistributionMap()[string(tracking.GazeCenter)])
	}

	// После финализации сессия больше не активна
	if _, err := svc.Statistics(session.SessionID, 7); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("error after finalize = %v, want ErrSessionNotFound", err)
	}
}

func TestResetSessionClearsState(t *testing.T) {
	detector := &stubDetector{responses: []*client.LandmarkResponse{detection(true), detection(true)}}
	svc := NewTrackingService(&stubSessionRepo{}, detector, testConfig(), testLogger())
	session := svc.StartSession(1, &CreateSessionRequest{})

	if _, err := svc.ProcessFrame(session.SessionID, 1, "frame.jpg", []byte("data")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.ResetSession(session.SessionID, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.Statistics(session.SessionID, 1); !errors.Is(err, tracking.ErrEmptySession) {
		t.Errorf("error after reset = %v, want ErrEmptySession", err)
	}

	// Сессия переиспользуется после сброса
	resp, err := svc.ProcessFrame(session.SessionID, 1, "frame.jpg", []byte("data"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.FramesTotal != 1 {
		t.Errorf("FramesTotal after reset = %d, want 1", resp.FramesTotal)
	}
}

func TestAnalyzeFatigue(t *testing.T) {
	svc := NewTrackingService(&stubSessionRepo{}, &stubDetector{}, testConfig(), testLogger())

	resp, err := svc.AnalyzeFatigue("frame.jpg", []byte("data"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Class != "notdrowsy" {
		t.Errorf("Class = %q, want %q", resp.Class, "notdrowsy")
	}
	if resp.Probability != 0.93 {
		t.Errorf("Probability = %v, want 0.93", resp.Probability)
	}
}
