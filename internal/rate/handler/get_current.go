package handler

import (
	"errors"
	"net/http"

	"cbrates/internal/domain"

	"github.com/sirupsen/logrus"
)

type CurrentRate struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Nominal int    `json:"nominal"`
	Value   string `json:"value"`
}

type GetCurrentResponse struct {
	Date  string        `json:"date"`
	Rates []CurrentRate `json:"rates"`
}

// GetCurrent godoc
// @Summary Current exchange rates
// @Description Full rate table for the most recent date that has data
// @Tags Rates
// @Produce json
// @Success 200 {object} GetCurrentResponse
// @Failure 404 {object} errorResponse
// @Router /rates/current [get]
func (h *Handler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	date, views, err := h.service.CurrentSnapshot(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNoRatesAvailable) {
			writeError(w, http.StatusNotFound, "no rates available for the last days")
			return
		}
		msg := "ups, couldn't get current rates this time"
		logrus.WithError(err).WithField("handler", "GetCurrent").Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	res := GetCurrentResponse{
		Date:  date.String(),
		Rates: make([]CurrentRate, 0, len(views)),
	}
	for _, v := range views {
		res.Rates = append(res.Rates, CurrentRate{
			Code:    v.Code,
			Name:    v.Name,
			Nominal: v.Nominal,
			Value:   v.Value.String(),
		})
	}
	writeJSON(w, http.StatusOK, res)
}
