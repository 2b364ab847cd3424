package handler

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/ton-connect/ntpclock/internal/calendar"
	"github.com/ton-connect/ntpclock/internal/ntp"
	"github.com/ton-connect/ntpclock/internal/utils"
)

// TimeSource is the part of ntp.TimeProvider the API needs.
type TimeSource interface {
	GetCurrentTime() (calendar.Time, error)
	IsSynchronized() bool
}

type TimeResponse struct {
	calendar.Time
	MonthName    string `json:"month_name"`
	WeekdayName  string `json:"weekday_name"`
	Hour12       int    `json:"hour12"`
	Formatted    string `json:"formatted"`
	Synchronized bool   `json:"synchronized"`
}

type Handler struct {
	source TimeSource
}

func NewHandler(source TimeSource) *Handler {
	return &Handler{source: source}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/time", h.TimeHandler)
	e.GET("/time/report", h.ReportHandler)
}

// TimeHandler returns the current calendar time as JSON.
func (h *Handler) TimeHandler(c echo.Context) error {
	ct, ok := h.read(c)
	if !ok {
		return c.JSON(utils.HttpResError(calendar.FailureMessage, http.StatusServiceUnavailable))
	}
	return c.JSON(http.StatusOK, TimeResponse{
		Time:         ct,
		MonthName:    ct.Month.String(),
		WeekdayName:  ct.Weekday.String(),
		Hour12:       ct.Hour12(),
		Formatted:    ct.String(),
		Synchronized: h.source.IsSynchronized(),
	})
}

// ReportHandler returns the same labelled report the console gets.
func (h *Handler) ReportHandler(c echo.Context) error {
	ct, ok := h.read(c)
	if !ok {
		return c.String(http.StatusServiceUnavailable, calendar.FailureMessage+"\n")
	}
	var buf bytes.Buffer
	if err := calendar.WriteReport(&buf, ct); err != nil {
		return err
	}
	return c.Blob(http.StatusOK, echo.MIMETextPlainCharsetUTF8, buf.Bytes())
}

func (h *Handler) read(c echo.Context) (calendar.Time, bool) {
	ct, err := h.source.GetCurrentTime()
	if err != nil {
		if !errors.Is(err, ntp.ErrTimeUnavailable) {
			logrus.WithError(err).WithField("uri", c.Request().RequestURI).Error("unexpected time read error")
		}
		return calendar.Time{}, false
	}
	return ct, true
}
