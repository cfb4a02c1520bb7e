package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"netracare-go/internal/tracking"

	"github.com/sirupsen/logrus"
)

// FaceMeshAPIClient клиент для взаимодействия с Python face mesh сервисом.
// Сервис инкапсулирует детекцию ориентиров лица (MediaPipe Face Mesh)
// и CNN классификатор усталости; для ядра анализа обе модели — черные ящики.
type FaceMeshAPIClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewFaceMeshAPIClient создает новый клиент для face mesh сервиса
func NewFaceMeshAPIClient(baseURL string, timeout time.Duration, logger *logrus.Logger) *FaceMeshAPIClient {
	return &FaceMeshAPIClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// LandmarkResponse определяет структуру ответа детекции ориентиров
type LandmarkResponse struct {
	Status       string           `json:"status"`        // Статус выполнения
	FaceDetected bool             `json:"face_detected"` // Обнаружено ли лицо на кадре
	Landmarks    []tracking.Point `json:"landmarks"`     // Точки ориентиров в пиксельных координатах
	ImageWidth   int              `json:"image_width"`   // Ширина исходного изображения
	ImageHeight  int              `json:"image_height"`  // Высота исходного изображения
}

// FatiguePrediction определяет структуру ответа CNN классификатора усталости
type FatiguePrediction struct {
	Class       string  `json:"class"`       // Класс: drowsy / notdrowsy
	Probability float64 `json:"probability"` // Вероятность предсказанного класса
}

// HealthResponse представляет ответ проверки здоровья сервиса
type HealthResponse struct {
	Status      string `json:"status"`       // Статус сервиса (healthy/unhealthy)
	ModelLoaded bool   `json:"model_loaded"` // Загружены ли модели
	Version     string `json:"version"`      // Версия сервиса
}

// DetectLandmarks отправляет кадр на детекцию ориентиров лица
func (c *FaceMeshAPIClient) DetectLandmarks(filename string, imageData []byte) (*LandmarkResponse, error) {
	c.logger.Debug("Отправка кадра на детекцию ориентиров")

	respBody, err := c.postImage("/landmarks", filename, imageData)
	if err != nil {
		return nil, err
	}

	var response LandmarkResponse
	if err := json.Unmarshal(respBody, &response); err != nil {
		return nil, fmt.Errorf("ошибка парсинга JSON ответа: %w", err)
	}

	return &response, nil
}

// PredictFatigue отправляет кадр на классификацию усталости
func (c *FaceMeshAPIClient) PredictFatigue(filename string, imageData []byte) (*FatiguePrediction, error) {
	c.logger.Debug("Отправка кадра на классификацию усталости")

	respBody, err := c.postImage("/predict", filename, imageData)
	if err != nil {
		return nil, err
	}

	var prediction FatiguePrediction
	if err := json.Unmarshal(respBody, &prediction); err != nil {
		return nil, fmt.Errorf("ошибка парсинга JSON ответа: %w", err)
	}

	return &prediction, nil
}

// CheckHealth проверяет состояние face mesh сервиса
func (c *FaceMeshAPIClient) CheckHealth() (*HealthResponse, error) {
	c.logger.Debug("Проверка здоровья face mesh сервиса")

	url := fmt.Sprintf("%s/health", c.baseURL)
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания HTTP запроса: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка отправки HTTP запроса: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("face mesh сервис вернул ошибку: статус %d, тело: %s", resp.StatusCode, string(respBody))
	}

	var healthResponse HealthResponse
	if err := json.Unmarshal(respBody, &healthResponse); err != nil {
		return nil, fmt.Errorf("ошибка парсинга JSON ответа: %w", err)
	}

	return &healthResponse, nil
}

// postImage отправляет изображение multipart запросом и возвращает тело ответа
func (c *FaceMeshAPIClient) postImage(path, filename string, imageData []byte) ([]byte, error) {
	// Создаем multipart form-data
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	imageWriter, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания form field для изображения: %w", err)
	}

	if _, err := imageWriter.Write(imageData); err != nil {
		return nil, fmt.Errorf("ошибка записи данных изображения: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("ошибка закрытия multipart writer: %w", err)
	}

	// Создаем HTTP запрос
	url := fmt.Sprintf("%s%s", c.baseURL, path)
	req, err := http.NewRequest("POST", url, &body)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания HTTP запроса: %w", err)
	}

	req.Header.Set("Content-Type", writer.FormDataContentType())

	// Отправляем запрос
	c.logger.Debugf("Отправка POST запроса на %s", url)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка отправки HTTP запроса: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("face mesh сервис вернул ошибку: статус %d, тело: %s", resp.StatusCode, string(respBody))
	}

	return respBody, nil
}
