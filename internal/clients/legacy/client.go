package legacy

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client — HTTP-клиент старой системы учёта. Используется только для
// первоначального импорта записей в нашу базу.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   10 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:    100,
				IdleConnTimeout: 90 * time.Second,
			},
		},
	}
}

// FetchAppointmentsPage забирает одну страницу записей. Ответ приводится
// к канонической форме независимо от того, в каком из трёх форматов
// ответила старая система.
func (c *Client) FetchAppointmentsPage(ctx context.Context, page, size int) (AppointmentPage, int, error) {
	endpoint := fmt.Sprintf("%s/appointments", c.BaseURL)

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return AppointmentPage{}, 0, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return AppointmentPage{}, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return AppointmentPage{}, 0, err
	}
	if resp.StatusCode != http.StatusOK {
		return AppointmentPage{}, 0, fmt.Errorf("старая система ответила статусом %d: %s", resp.StatusCode, string(body))
	}

	return DecodeAppointmentPage(body)
}
