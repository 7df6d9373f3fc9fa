package handler

import (
	"errors"
	"net/http"
	"strings"

	"cbrates/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type WeeklyRate struct {
	Date  string `json:"date"`
	Value string `json:"value"`
}

type GetWeeklyResponse struct {
	Code  string       `json:"code"`
	Name  string       `json:"name"`
	Rates []WeeklyRate `json:"rates"`
}

// GetWeekly godoc
// @Summary Weekly rates for one currency
// @Description Trailing seven days of quotes, most recent first
// @Tags Rates
// @Produce json
// @Param code path string true "Currency code, e.g. USD"
// @Success 200 {object} GetWeeklyResponse
// @Failure 400 {object} errorResponse
// @Router /rates/{code}/weekly [get]
func (h *Handler) GetWeekly(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "code")))

	if err := h.validator.ValidateCode(code); err != nil {
		if errors.Is(err, domain.ErrUnknownCode) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	records, err := h.service.WeeklyRates(r.Context(), code)
	if err != nil {
		msg := "ups, couldn't get weekly rates this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetWeekly", "code": code}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	var name string
	if currency, ok := h.service.Currencies()[code]; ok {
		name = currency.Name
	}

	res := GetWeeklyResponse{
		Code:  code,
		Name:  name,
		Rates: make([]WeeklyRate, 0, len(records)),
	}
	for _, rec := range records {
		res.Rates = append(res.Rates, WeeklyRate{
			Date:  rec.Date.String(),
			Value: rec.Value.String(),
		})
	}
	writeJSON(w, http.StatusOK, res)
}
