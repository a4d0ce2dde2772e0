package platform

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

const (
	pathGetAvailability = "/stylist/get-availability"
	pathSetAvailability = "/stylist/set-availability/{stylistId}"
	pathToggleSlot      = "/stylist/availability/toggle-slot"
	pathDeleteSlot      = "/stylist/delete-availability-slot/{date}"
	pathDeleteDay       = "/stylist/delete-availability/{date}"
)

// Операции для метрик и логов
const (
	OpFetch      = "fetch"
	OpSave       = "save"
	OpToggleSlot = "toggle_slot"
	OpDeleteSlot = "delete_slot"
	OpDeleteDay  = "delete_day"
)

// Client клиент REST API салонной платформы (хранилище расписаний стилистов).
// Каждый вызов выполняется один раз, без повторов.
type Client struct {
	http     *resty.Client
	log      Logger
	observer Observer
}

// NewClient создает клиент платформы. timeout = 0 означает отсутствие таймаута.
func NewClient(baseURL string, timeout time.Duration, log Logger, observer Observer) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetRetryCount(0)

	if timeout > 0 {
		httpClient.SetTimeout(timeout)
	}

	if observer == nil {
		observer = nopObserver{}
	}

	return &Client{
		http:     httpClient,
		log:      log,
		observer: observer,
	}
}

// GetAvailability получает сохраненное расписание стилиста, которому принадлежит токен
func (c *Client) GetAvailability(ctx context.Context, token string) (entries []domain.PersistedEntry, err error) {
	defer c.observe(OpFetch, time.Now(), &err)

	var out availabilityListResponse
	if err := c.do(ctx, token, http.MethodGet, pathGetAvailability, nil, nil, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, &APIError{StatusCode: http.StatusOK, Message: out.Message}
	}

	entries = make([]domain.PersistedEntry, 0, len(out.Data))
	for _, entry := range out.Data {
		entry.Date = normalizeDate(entry.Date)
		if entry.Slots == nil {
			entry.Slots = []domain.PersistedSlot{}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// SetAvailability отправляет расписание стилиста
func (c *Client) SetAvailability(ctx context.Context, token, stylistID string, entries []domain.PayloadEntry) (err error) {
	defer c.observe(OpSave, time.Now(), &err)

	var out response
	err = c.do(ctx, token, http.MethodPost, pathSetAvailability,
		map[string]string{"stylistId": stylistID},
		setAvailabilityRequest{Availability: entries}, &out)
	if err != nil {
		return err
	}
	if !out.Success {
		return &APIError{StatusCode: http.StatusOK, Message: out.Message}
	}
	return nil
}

// ToggleSlot переключает активность слота. Возвращает значения, вычисленные платформой.
func (c *Client) ToggleSlot(ctx context.Context, token string, req ToggleSlotRequest) (result *ToggleSlotResult, err error) {
	defer c.observe(OpToggleSlot, time.Now(), &err)

	var out toggleSlotResponse
	if err := c.do(ctx, token, http.MethodPut, pathToggleSlot, nil, req, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, &APIError{StatusCode: http.StatusOK, Message: out.Message}
	}

	return &ToggleSlotResult{
		Message:     out.Message,
		IsActive:    out.IsActive,
		DayIsActive: out.DayIsActive,
	}, nil
}

// DeleteSlot удаляет один слот. Слот определяется значением from/till, а не id.
func (c *Client) DeleteSlot(ctx context.Context, token, date string, slot domain.TimeSlot) (err error) {
	defer c.observe(OpDeleteSlot, time.Now(), &err)

	var out response
	err = c.do(ctx, token, http.MethodDelete, pathDeleteSlot,
		map[string]string{"date": date}, slot, &out)
	if err != nil {
		return err
	}
	if !out.Success {
		return &APIError{StatusCode: http.StatusOK, Message: out.Message}
	}
	return nil
}

// DeleteDay удаляет расписание на дату целиком
func (c *Client) DeleteDay(ctx context.Context, token, date string) (err error) {
	defer c.observe(OpDeleteDay, time.Now(), &err)

	var out response
	err = c.do(ctx, token, http.MethodDelete, pathDeleteDay,
		map[string]string{"date": date}, nil, &out)
	if err != nil {
		return err
	}
	if !out.Success {
		return &APIError{StatusCode: http.StatusOK, Message: out.Message}
	}
	return nil
}

// do выполняет запрос с bearer-токеном и разбирает ответ в result
func (c *Client) do(
	ctx context.Context,
	token, method, path string,
	pathParams map[string]string,
	body interface{},
	result interface{},
) error {
	var apiErr errorResponse

	req := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(result).
		SetError(&apiErr)

	if pathParams != nil {
		req.SetPathParams(pathParams)
	}
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		c.log.Error("Platform: %s %s failed: %v", method, path, err)
		return fmt.Errorf("%w: %s %s: %v", ErrInternal, method, path, err)
	}

	if resp.IsError() {
		c.log.Warn("Platform: %s %s responded with status %d: %s", method, path, resp.StatusCode(), apiErr.text())
		return &APIError{StatusCode: resp.StatusCode(), Message: apiErr.text()}
	}

	if !resp.IsSuccess() {
		return &APIError{StatusCode: resp.StatusCode()}
	}

	return nil
}

func (c *Client) observe(operation string, started time.Time, err *error) {
	c.observer.ObservePlatformCall(operation, *err, time.Since(started))
}
