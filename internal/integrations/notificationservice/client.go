package notificationservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с NotificationService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента NotificationService.
// Пустой baseURL означает, что уведомления выключены.
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Enabled true, если адрес сервиса задан
func (c *Client) Enabled() bool {
	return c.baseURL != ""
}

// SendReservationConfirmed отправляет уведомление о подтвержденном бронировании
func (c *Client) SendReservationConfirmed(ctx context.Context, n ReservationConfirmed) error {
	url := fmt.Sprintf("%s/internal/notifications/reservations", c.baseURL)

	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	// Повторная доставка того же бронирования не должна порождать второе письмо
	req.Header.Set("Idempotency-Key", fmt.Sprintf("reservation-%d-confirmed", n.ReservationID))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted, http.StatusNoContent:
		return nil
	case http.StatusBadRequest:
		var errResp ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Message != "" {
			return fmt.Errorf("%w: rejected: %s", ErrInvalidResponse, errResp.Message)
		}
		return fmt.Errorf("%w: rejected notification payload", ErrInvalidResponse)
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}

// NotifyReservationConfirmed отправляет уведомление с graceful degradation.
// Любая ошибка превращается в ErrServiceDegraded и логируется: бронирование от нее не зависит.
func (c *Client) NotifyReservationConfirmed(ctx context.Context, n ReservationConfirmed) error {
	if !c.Enabled() {
		return nil
	}

	c.log.Info("Sending confirmation for reservation_id=%d user_id=%d", n.ReservationID, n.UserID)

	if err := c.SendReservationConfirmed(ctx, n); err != nil {
		c.log.Error("NotificationService unavailable, applying graceful degradation for reservation_id=%d: %v",
			n.ReservationID, err)
		return fmt.Errorf("%w: reservation_id=%d, error=%v", ErrServiceDegraded, n.ReservationID, err)
	}

	c.log.Info("Confirmation sent for reservation_id=%d", n.ReservationID)
	return nil
}
